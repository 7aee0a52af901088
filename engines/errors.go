package engines

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidArgument is a sentinel for malformed caller input, such as
	// an empty connection identifier. Never worth retrying.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrUnsupportedBackend is a sentinel for a backend type with no
	// registered strategy.
	ErrUnsupportedBackend = errors.New("unsupported backend type")

	// ErrCredentialResolution is a sentinel for an identifier that does
	// not resolve to known credentials.
	ErrCredentialResolution = errors.New("connection identifier not found")

	// ErrHandleConstruction is a sentinel for a failure while building the
	// backend-native handle (bad options, unreachable host).
	ErrHandleConstruction = errors.New("engine construction failed")

	// ErrValidation is a sentinel for a liveness probe failure after the
	// handle was constructed. The factory guarantees the handle is closed
	// before this error surfaces.
	ErrValidation = errors.New("engine validation failed")
)

// InvalidArgumentError reports malformed caller input.
type InvalidArgumentError struct {
	Reason string
}

func (e *InvalidArgumentError) Error() string {
	return fmt.Sprintf("%s: %s", ErrInvalidArgument, e.Reason)
}

// Is allows matching against the ErrInvalidArgument sentinel.
func (e *InvalidArgumentError) Is(target error) bool {
	return target == ErrInvalidArgument
}

// NewInvalidArgumentError wraps reason as an invalid-argument failure.
func NewInvalidArgumentError(reason string) error {
	return &InvalidArgumentError{Reason: reason}
}

// UnsupportedBackendError carries the requested type name and the sorted
// list of registered names so callers can diagnose a typo without
// re-entering the factory.
type UnsupportedBackendError struct {
	Requested string
	Known     []string
}

func (e *UnsupportedBackendError) Error() string {
	if len(e.Known) == 0 {
		return fmt.Sprintf("%s: %q (no strategies registered)", ErrUnsupportedBackend, e.Requested)
	}
	return fmt.Sprintf("%s: %q (registered: %s)", ErrUnsupportedBackend, e.Requested, strings.Join(e.Known, ", "))
}

// Is allows matching against the ErrUnsupportedBackend sentinel.
func (e *UnsupportedBackendError) Is(target error) bool {
	return target == ErrUnsupportedBackend
}

// NewUnsupportedBackendError reports that requested has no registered
// strategy. known must already be sorted.
func NewUnsupportedBackendError(requested string, known []string) error {
	return &UnsupportedBackendError{Requested: requested, Known: known}
}

// CredentialError reports that an identifier did not resolve.
type CredentialError struct {
	ID    string
	Cause error
}

func (e *CredentialError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %q: %v", ErrCredentialResolution, e.ID, e.Cause)
	}
	return fmt.Sprintf("%s: %q", ErrCredentialResolution, e.ID)
}

// Unwrap returns the resolver error.
func (e *CredentialError) Unwrap() error { return e.Cause }

// Is allows matching against the ErrCredentialResolution sentinel.
func (e *CredentialError) Is(target error) bool {
	return target == ErrCredentialResolution
}

// NewCredentialError wraps a resolver failure for id.
func NewCredentialError(id string, cause error) error {
	return &CredentialError{ID: id, Cause: cause}
}

// ConstructionError reports a backend-native construction failure.
type ConstructionError struct {
	Backend string
	ID      string
	Cause   error
}

func (e *ConstructionError) Error() string {
	return fmt.Sprintf("%s: backend %q, connection %q: %v", ErrHandleConstruction, e.Backend, e.ID, e.Cause)
}

// Unwrap returns the underlying driver error.
func (e *ConstructionError) Unwrap() error { return e.Cause }

// Is allows matching against the ErrHandleConstruction sentinel.
func (e *ConstructionError) Is(target error) bool {
	return target == ErrHandleConstruction
}

// NewConstructionError wraps a construction failure for backend/id.
func NewConstructionError(backend, id string, cause error) error {
	return &ConstructionError{Backend: backend, ID: id, Cause: cause}
}

// ValidationError reports a liveness probe failure.
type ValidationError struct {
	Backend string
	ID      string
	Cause   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: backend %q, connection %q: %v", ErrValidation, e.Backend, e.ID, e.Cause)
}

// Unwrap returns the probe error.
func (e *ValidationError) Unwrap() error { return e.Cause }

// Is allows matching against the ErrValidation sentinel.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// NewValidationError wraps a probe failure for backend/id.
func NewValidationError(backend, id string, cause error) error {
	return &ValidationError{Backend: backend, ID: id, Cause: cause}
}

// IsInvalidArgument reports whether err is an invalid-argument failure.
func IsInvalidArgument(err error) bool {
	return errors.Is(err, ErrInvalidArgument)
}

// IsUnsupportedBackend reports whether err is an unknown-backend failure.
func IsUnsupportedBackend(err error) bool {
	return errors.Is(err, ErrUnsupportedBackend)
}

// IsCredentialError reports whether err is a credential-resolution failure.
func IsCredentialError(err error) bool {
	return errors.Is(err, ErrCredentialResolution)
}

// IsConstructionError reports whether err is a handle-construction failure.
func IsConstructionError(err error) bool {
	return errors.Is(err, ErrHandleConstruction)
}

// IsValidationError reports whether err is a liveness-probe failure.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrValidation)
}
