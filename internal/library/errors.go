// Package library keeps the collection of named, saved resumes. The whole collection is stored
// as one JSON array under a single well-known key of a storage.KV.
package library

import (
	"errors"
	"fmt"
)

// ErrEmptyName is returned when a resume is saved without a name.
var ErrEmptyName = errors.New("please enter a resume name")

// ErrNotFound is returned when no saved resume has the requested id.
var ErrNotFound = errors.New("saved resume not found")

// Error represents a failed library operation. The in-memory document is never affected.
type Error struct {
	Op      string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("library error (%s): %s: %v", e.Op, e.Message, e.Cause)
	}
	return fmt.Sprintf("library error (%s): %s", e.Op, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// ImportError reports the entries of an import blob that failed validation.
type ImportError struct {
	Index int
	Name  string
	Cause error
}

func (e *ImportError) Error() string {
	return fmt.Sprintf("saved resume %d (%q) is invalid: %v", e.Index, e.Name, e.Cause)
}

func (e *ImportError) Unwrap() error {
	return e.Cause
}
