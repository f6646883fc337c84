package model

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned by stores when the requested record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrUserNotFound means no user matched the supplied username.
	ErrUserNotFound = errors.New("user not found")

	// ErrPasswordMismatch means the user exists but the password did not match.
	ErrPasswordMismatch = errors.New("password mismatch")

	// ErrSessionInvalid means a session payload no longer resolves to a user.
	// Callers treat it as "session gone" and fall back to anonymous.
	ErrSessionInvalid = errors.New("session invalid")

	// ErrUsernameTaken is returned on signup when the username already exists.
	ErrUsernameTaken = errors.New("username already taken")
)

// MissingFieldError reports an empty required field on entity construction.
type MissingFieldError struct {
	Field string
}

// NewMissingFieldError creates a MissingFieldError for the given field.
func NewMissingFieldError(field string) *MissingFieldError {
	return &MissingFieldError{Field: field}
}

// Error implements the error interface.
func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("required field %q is empty", e.Field)
}
