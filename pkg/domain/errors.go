package domain

import (
	"errors"
	"fmt"
)

// Lifeline invariant violations. They are never recoverable: the render of the current
// scenario must stop when one of them is returned.
var (
	// ErrCannotDisposeRoot is returned when Dispose is called on a root lifeline.
	ErrCannotDisposeRoot = errors.New("cannot dispose root lifeline")
	// ErrStillActive is returned when Dispose is called on an active lifeline.
	ErrStillActive = errors.New("lifeline is still active")
	// ErrInconsistentDirection is returned when a sub lifeline reports the center direction.
	ErrInconsistentDirection = errors.New("sub lifeline has center direction")
	// ErrAlreadyDisposed is returned when a lifeline is disposed twice.
	ErrAlreadyDisposed = errors.New("lifeline already disposed")
	// ErrNotAlive is returned when Terminate is called on a lifeline that is not alive.
	ErrNotAlive = errors.New("lifeline is not alive")
)

// Interpreter errors, caused by an inconsistent event stream.
var (
	// ErrUnknownParticipant is returned when a message names an undeclared or destroyed participant.
	ErrUnknownParticipant = errors.New("unknown participant")
	// ErrInactiveCaller is returned when the sender of a message cannot currently send.
	ErrInactiveCaller = errors.New("caller is not active")
	// ErrEmptyStack is returned when a return message has no activation to end.
	ErrEmptyStack = errors.New("no activation to return from")
	// ErrAlreadyAlive is returned when a create message targets an object that already exists.
	ErrAlreadyAlive = errors.New("participant is already alive")
	// ErrBusy is returned when a destroy message targets an object with pending activations.
	ErrBusy = errors.New("participant has pending activations")
)

// ErrLayoutNotFound is returned when a layout ID cannot be found in the store.
var ErrLayoutNotFound = errors.New("layout not found")

// DisposeError reports a failed Dispose on the named lifeline.
type DisposeError struct {
	Name string
	Err  error
}

func (e *DisposeError) Error() string {
	return fmt.Sprintf("dispose %s: %v", e.Name, e.Err)
}

func (e *DisposeError) Unwrap() error {
	return e.Err
}

// TerminateError reports a failed Terminate on the named lifeline.
type TerminateError struct {
	Name string
	Err  error
}

func (e *TerminateError) Error() string {
	return fmt.Sprintf("terminate %s: %v", e.Name, e.Err)
}

func (e *TerminateError) Unwrap() error {
	return e.Err
}
