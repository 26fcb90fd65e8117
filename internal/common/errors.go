// Package common defines shared constants and sentinel errors used across
// the server layers. Callers should use errors.Is to match these values.
package common

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// Repository-level errors.
	ErrorNotFound        = errors.New("not found")
	ErrUserNotFound      = fmt.Errorf("user %w", ErrorNotFound)
	ErrListNotFound      = fmt.Errorf("list %w", ErrorNotFound)
	ErrItemNotFound      = fmt.Errorf("item %w", ErrorNotFound)
	ErrDuplicateIdentity = errors.New("email already in use")

	// Request gate errors.
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrForbidden       = errors.New("forbidden")
	ErrInvalidInput    = errors.New("invalid input")

	// Login failure. Does not say whether the email exists.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// Token verification errors.
	ErrInvalidCredential   = errors.New("invalid token")
	ErrExpiredCredential   = errors.New("token expired")
	ErrMalformedCredential = errors.New("malformed token")

	// ErrSessionRevoked is returned when a superseded refresh token is
	// presented and the stored one has been cleared.
	ErrSessionRevoked = fmt.Errorf("%w: refresh token reuse, session revoked", ErrInvalidCredential)
)

// FieldError describes one failed constraint on an input field.
type FieldError struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

// ValidationError carries per-field details for a rejected input.
// It matches ErrInvalidInput with errors.Is.
type ValidationError struct {
	Message string
	Fields  []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Path+": "+f.Message)
	}
	return e.Message + " (" + strings.Join(parts, "; ") + ")"
}

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

// NewValidationError builds a ValidationError for a single field.
func NewValidationError(path, message string) *ValidationError {
	return &ValidationError{
		Message: "Validation failed",
		Fields:  []FieldError{{Path: path, Message: message}},
	}
}
