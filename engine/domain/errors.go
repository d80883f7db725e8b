package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for the API error taxonomy.
var (
	ErrNotFound      = errors.New("not found")
	ErrFieldRequired = errors.New("field required")
)

// NotFoundError reports a keyed lookup that matched zero rows.
type NotFoundError struct {
	Entity string
}

func (e *NotFoundError) Error() string { return e.Entity + " not found" }

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// ValidationError wraps a sentinel with the offending field.
type ValidationError struct {
	Field   string
	Wrapped error
}

func (e *ValidationError) Error() string {
	if errors.Is(e.Wrapped, ErrFieldRequired) {
		return e.Field + " is required"
	}
	return fmt.Sprintf("validation: %s: %s", e.Field, e.Wrapped)
}

func (e *ValidationError) Unwrap() error { return e.Wrapped }

// Required creates a ValidationError for a missing required field.
func Required(field string) *ValidationError {
	return &ValidationError{Field: field, Wrapped: ErrFieldRequired}
}
