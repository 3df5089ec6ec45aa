package tasklist

import (
	"errors"
	"fmt"
)

var (
	// ErrIndex reports a 1-based task index outside the current list.
	ErrIndex = errors.New("index error")
	// ErrPersistence reports a failed read or write of the task file.
	ErrPersistence = errors.New("persistence error")
)

// IndexError reports an out-of-range 1-based index. Input is set when the
// typed index did not fit in an int; Index is then clamped and Len unknown.
type IndexError struct {
	Index int
	Len   int
	Input string
}

func (e *IndexError) Error() string {
	if e.Input != "" {
		return fmt.Sprintf("invalid task index %s: out of range", e.Input)
	}
	if e.Len == 0 {
		return fmt.Sprintf("invalid task index %d: the list is empty", e.Index)
	}
	return fmt.Sprintf("invalid task index %d: must be between 1 and %d", e.Index, e.Len)
}

// Is reports ErrIndex as a match.
func (e *IndexError) Is(target error) bool {
	return target == ErrIndex
}

// PersistenceError wraps an I/O failure while saving or loading.
type PersistenceError struct {
	Op   string // "save", "load" or "backup"
	Path string
	Err  error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

// Unwrap returns the original cause.
func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// Is reports ErrPersistence as a match.
func (e *PersistenceError) Is(target error) bool {
	return target == ErrPersistence
}
