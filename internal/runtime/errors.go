package runtime

import (
	"fmt"

	"github.com/aretw0/seqline/pkg/domain"
)

// MessageError reports the scenario message that could not be interpreted.
type MessageError struct {
	Index   int
	Message domain.Message
	Err     error
}

func (e *MessageError) Error() string {
	kind := e.Message.Kind
	if kind == "" {
		kind = domain.MessageCall
	}
	return fmt.Sprintf("message %d (%s %s -> %s): %v", e.Index, kind, e.Message.From, e.Message.To, e.Err)
}

func (e *MessageError) Unwrap() error {
	return e.Err
}
