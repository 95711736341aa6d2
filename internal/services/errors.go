package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	apperrors "github.com/impulso-stone/mentores-api/pkg/errors"
)

var (
	// ErrValidation is wrapped by every ValidationError
	ErrValidation = fmt.Errorf("validation failed: %w", apperrors.ErrInvalidInput)

	// ErrCategoryNotFound is returned for an unknown category slug
	ErrCategoryNotFound = apperrors.NotFoundError("category")

	// ErrInvalidCredentials is returned for a failed admin login
	ErrInvalidCredentials = fmt.Errorf("invalid credentials: %w", apperrors.ErrUnauthorized)

	// ErrAdminDisabled is returned when no admin credentials are configured
	ErrAdminDisabled = fmt.Errorf("admin access not configured: %w", apperrors.ErrUnavailable)

	// ErrStorageDisabled is returned when photo upload has no bucket configured
	ErrStorageDisabled = fmt.Errorf("photo storage not configured: %w", apperrors.ErrUnavailable)
)

// ValidationError lists the fields that failed, with a message each
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, name+": "+e.Fields[name])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// AsValidationError extracts a ValidationError from err
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
