package compiler

import (
	"fmt"
	"strings"
)

// ValidationError lists every problem found in a scenario document.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) add(format string, args ...any) {
	e.Problems = append(e.Problems, fmt.Sprintf(format, args...))
}

func (e *ValidationError) Error() string {
	if len(e.Problems) == 1 {
		return "invalid scenario: " + e.Problems[0]
	}
	return fmt.Sprintf("invalid scenario, found %d errors:\n- %s", len(e.Problems), strings.Join(e.Problems, "\n- "))
}
