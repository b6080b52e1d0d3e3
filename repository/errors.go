package repository

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound reports that an expected row is absent.
	ErrNotFound = errors.New("record not found")
	// ErrSectionHasTasks is the delete guard sentinel: a section cannot be
	// deleted while it still owns task templates.
	ErrSectionHasTasks = errors.New("section has tasks")
)

// ValidationError reports a malformed value rejected at the repository
// boundary before it reaches the store.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func invalidField(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}
