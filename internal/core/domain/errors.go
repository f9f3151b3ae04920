package domain

import (
	"errors"
	"strings"
)

// Failure taxonomy shared by services, the access guard and the HTTP layer.
var (
	ErrValidation         = errors.New("validation failed")
	ErrDuplicateIdentity  = errors.New("an account with this email or phone already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrNotApproved        = errors.New("account is pending approval")
	ErrDeactivated        = errors.New("account is deactivated")

	ErrUnauthenticated = errors.New("access denied. no token provided")
	ErrTokenExpired    = errors.New("token expired")
	ErrInvalidToken    = errors.New("invalid token")
	ErrTokenRevoked    = errors.New("token revoked")
	ErrActorNotFound   = errors.New("token invalid. account not found")
	ErrAuthInternal    = errors.New("authentication failed")

	ErrForbidden = errors.New("access forbidden")
	ErrNotFound  = errors.New("resource not found")

	ErrUserNotFound     = errors.New("user not found")
	ErrProviderNotFound = errors.New("provider not found")
	ErrVenueNotFound    = errors.New("venue not found")
	ErrCategoryNotFound = errors.New("category not found")
	ErrOfferingNotFound = errors.New("service not found")
	ErrImageNotFound    = errors.New("image not found")
	ErrCategoryExists   = errors.New("category with this name already exists")

	ErrFileTooLarge    = errors.New("file exceeds the upload size limit")
	ErrUnsupportedFile = errors.New("file type is not allowed")
)

// ValidationError carries field-level messages. It matches ErrValidation
// under errors.Is.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return ErrValidation.Error()
	}
	return ErrValidation.Error() + ": " + strings.Join(e.Fields, "; ")
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// NewValidationError returns nil when no messages were collected.
func NewValidationError(fields ...string) error {
	if len(fields) == 0 {
		return nil
	}
	return &ValidationError{Fields: fields}
}

// IsNotFound reports whether err is any of the per-resource not-found errors.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrUserNotFound) ||
		errors.Is(err, ErrProviderNotFound) ||
		errors.Is(err, ErrVenueNotFound) ||
		errors.Is(err, ErrCategoryNotFound) ||
		errors.Is(err, ErrOfferingNotFound) ||
		errors.Is(err, ErrImageNotFound)
}
