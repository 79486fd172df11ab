package model

import "errors"

var (
	// ErrNotFound is returned by stores when no row matches.
	ErrNotFound = errors.New("not found")
	// ErrEmailTaken is returned when the store rejects a duplicate email.
	ErrEmailTaken = errors.New("email already registered")
	// ErrInvalidCredentials covers both unknown email and wrong secret.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrPoolUnavailable means no connection could be leased in time.
	ErrPoolUnavailable = errors.New("database connection unavailable")
	// ErrNotConfigured means the database connection string is missing.
	ErrNotConfigured = errors.New("database is not configured")
)

// ValidationError describes malformed or missing caller input.
type ValidationError struct {
	Field   string
	Message string
}

// NewValidationError creates a ValidationError for the given field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}
