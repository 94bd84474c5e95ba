package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors used across all layers.
var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
	ErrValidation    = errors.New("validation error")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrForbidden     = errors.New("forbidden")
	ErrConflict      = errors.New("conflict")
	ErrTransient     = errors.New("transient store error")

	// ErrVersionConflict is returned by the data gateway when a compare-and-swap
	// write finds that the expected version is no longer current. Services
	// retry on it and surface ErrConflict once retries are exhausted.
	ErrVersionConflict = errors.New("version conflict")

	// ErrEventRecorded is returned by a gateway write whose event id is
	// already in the log: an earlier attempt with the same event committed.
	// Nothing is written.
	ErrEventRecorded = errors.New("event already recorded")
)

// FieldError describes a validation error for a specific field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError contains a list of field-level validation errors.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("validation: %s: %s", e.Errors[0].Field, e.Errors[0].Message)
	}
	return fmt.Sprintf("validation: %d errors", len(e.Errors))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError creates a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Errors: []FieldError{{Field: field, Message: message}},
	}
}

// NewValidationErrors creates a ValidationError from multiple field errors.
func NewValidationErrors(errs []FieldError) *ValidationError {
	return &ValidationError{Errors: errs}
}

// AuthorizationError is returned when an authenticated actor attempts an
// operation reserved for someone else (e.g. accepting an answer on a
// question they did not ask).
type AuthorizationError struct {
	ActorID string
	Action  string
}

func (e *AuthorizationError) Error() string {
	return fmt.Sprintf("authorization: %s not allowed to %s", e.ActorID, e.Action)
}

func (e *AuthorizationError) Unwrap() error { return ErrForbidden }

// ConflictError is returned when optimistic-concurrency retries are exhausted.
// The underlying data is untouched; the caller must refresh and retry.
type ConflictError struct {
	Op       string
	Attempts int
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s: concurrent modification after %d attempts, refresh and retry", e.Op, e.Attempts)
}

func (e *ConflictError) Unwrap() error { return ErrConflict }

// TransientStoreError is returned when the data gateway keeps failing with
// I/O-level errors after the retry budget is spent.
type TransientStoreError struct {
	Op       string
	Attempts int
	Err      error
}

func (e *TransientStoreError) Error() string {
	return fmt.Sprintf("%s: store unavailable after %d attempts: %v", e.Op, e.Attempts, e.Err)
}

func (e *TransientStoreError) Unwrap() []error { return []error{ErrTransient, e.Err} }

// ErrorKind is the closed set of error categories callers branch on.
type ErrorKind string

const (
	KindNone            ErrorKind = ""
	KindValidation      ErrorKind = "VALIDATION"
	KindUnauthenticated ErrorKind = "UNAUTHENTICATED"
	KindAuthorization   ErrorKind = "AUTHORIZATION"
	KindNotFound        ErrorKind = "NOT_FOUND"
	KindConflict        ErrorKind = "CONFLICT"
	KindTransient       ErrorKind = "TRANSIENT"
	KindInternal        ErrorKind = "INTERNAL"
)

// KindOf classifies err. A nil error yields KindNone; anything unrecognized
// is KindInternal.
func KindOf(err error) ErrorKind {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, ErrValidation):
		return KindValidation
	case errors.Is(err, ErrUnauthorized):
		return KindUnauthenticated
	case errors.Is(err, ErrForbidden):
		return KindAuthorization
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	case errors.Is(err, ErrConflict), errors.Is(err, ErrVersionConflict), errors.Is(err, ErrAlreadyExists):
		return KindConflict
	case errors.Is(err, ErrTransient):
		return KindTransient
	default:
		return KindInternal
	}
}
