package service

import (
	"errors"

	"healthcare-portal/internal/domain"
)

const (
	MsgCredentialsRequired = "Username and password are required."
	MsgPasswordPolicy      = "Password must be at least 8 characters and contain at least one number."
	MsgInvalidRole         = "Invalid role."
)

var (
	// ErrValidation matches every ValidationError.
	ErrValidation = errors.New("validation failed")
	// ErrInvalidCredentials indicates that provided login credentials are incorrect.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUserAlreadyExists is returned when attempting to register with an existing username.
	ErrUserAlreadyExists = errors.New("user already exists")
	// ErrAccessDenied is returned when an authenticated user lacks the required role.
	ErrAccessDenied = errors.New("access denied")
)

// ValidationError carries the single user-facing message for rejected input.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// Authorize checks the role held by a session against the role a view requires.
func Authorize(role string, required domain.Role) error {
	if domain.Role(role) != required {
		return ErrAccessDenied
	}
	return nil
}
