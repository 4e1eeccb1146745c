package services

import "errors"

// ErrUnauthorized is returned when an authenticated caller targets a
// resource they do not own. Distinct from store.ErrNotFound: the resource
// exists, the caller just may not touch it.
var ErrUnauthorized = errors.New("unauthorized")

// ErrDuplicateApplication is returned when a student applies twice to the
// same job, whether caught by the pre-check or by the storage constraint.
var ErrDuplicateApplication = errors.New("you have already applied for this job")

// ErrInvalidCredentials is returned for any failed login: unknown email,
// wrong password, or a deactivated account. Callers must not distinguish
// the three.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ValidationError reports malformed input on a single field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func newValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}
