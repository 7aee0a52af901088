package credentials

import (
	"errors"
	"fmt"
)

// ErrNotFound is a sentinel used to signal that a connection identifier
// does not resolve to known credentials.
var ErrNotFound = errors.New("connection identifier not found")

// NotFoundError carries the identifier that failed to resolve and,
// optionally, the underlying store error.
type NotFoundError struct {
	ID    string
	Cause error
}

func (e *NotFoundError) Error() string {
	if e == nil {
		return ErrNotFound.Error()
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %q: %v", ErrNotFound, e.ID, e.Cause)
	}
	return fmt.Sprintf("%s: %q", ErrNotFound, e.ID)
}

// Unwrap returns the underlying store error, if any.
func (e *NotFoundError) Unwrap() error { return e.Cause }

// Is allows matching against the ErrNotFound sentinel.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// NewNotFoundError reports that id is unknown to the resolver.
func NewNotFoundError(id string) error {
	return &NotFoundError{ID: id}
}

// WrapNotFoundError reports that id is unknown, keeping the store error
// available through errors.Unwrap.
func WrapNotFoundError(id string, cause error) error {
	return &NotFoundError{ID: id, Cause: cause}
}

// IsNotFound reports whether err indicates an unknown identifier.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
