package workflow

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when no row carries the requested id.
	ErrNotFound = errors.New("record not found")

	// ErrConflict is returned when the worksheet changed since the caller
	// read it. The caller should reload and retry by hand.
	ErrConflict = errors.New("record changed since it was loaded")

	// ErrInvalidTransition is returned for a status change the state
	// machine does not allow.
	ErrInvalidTransition = errors.New("invalid status transition")
)

// ValidationError reports a missing or malformed input field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func invalidField(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}
