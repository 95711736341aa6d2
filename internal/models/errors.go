package models

import (
	apperrors "github.com/impulso-stone/mentores-api/pkg/errors"
)

var (
	// ErrMentorNotFound is returned when no mentor has the requested ID
	ErrMentorNotFound = apperrors.NotFoundError("mentor")

	// ErrMentorUnavailable is returned when a mentor can no longer be chosen
	ErrMentorUnavailable = apperrors.ConflictError("mentor is not available")

	// ErrSubmissionNotFound is returned when updating an unknown submission
	ErrSubmissionNotFound = apperrors.NotFoundError("submission")
)
