package task

import (
	"errors"
	"fmt"
)

// Error kinds. Use errors.Is to classify failures returned by this package
// and by the task list manager.
var (
	// ErrValidation reports a field value that breaks a Task rule.
	ErrValidation = errors.New("validation error")
	// ErrType reports a raw argument that cannot be read as the expected type.
	ErrType = errors.New("type error")
)

// ValidationError represents a validation error with context.
type ValidationError struct {
	Field string // Task field the error refers to
	Err   error  // Underlying error
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Err)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Is reports ErrValidation as a match so callers can test the error kind.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// TypeError reports a parameter whose raw value has the wrong type.
type TypeError struct {
	Param string
	Value string
	Want  string
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("%s must be %s, got %q", e.Param, e.Want, e.Value)
}

// Is reports ErrType as a match.
func (e *TypeError) Is(target error) bool {
	return target == ErrType
}
