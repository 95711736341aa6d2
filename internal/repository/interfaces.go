package repository

import (
	"context"

	"github.com/impulso-stone/mentores-api/internal/database/postgres"
	"github.com/impulso-stone/mentores-api/internal/models"
)

// MentorStore is the persistent mentor store
type MentorStore interface {
	// ListMentors fetches all mentors ordered by name
	ListMentors(ctx context.Context) ([]*models.Mentor, error)

	// ListMentorsBySector fetches mentors whose sector contains sector
	ListMentorsBySector(ctx context.Context, sector string, onlyAvailable bool) ([]*models.Mentor, error)

	// GetMentor fetches a single mentor by ID
	GetMentor(ctx context.Context, id string) (*models.Mentor, error)

	// SetMentorAvailability updates the availability flag of a mentor
	SetMentorAvailability(ctx context.Context, id string, disponivel bool) error

	// UpdateMentorPhoto updates a mentor's photo URL
	UpdateMentorPhoto(ctx context.Context, id, fotoURL string) error
}

// SubmissionStore is the persistent submission store
type SubmissionStore interface {
	// CreateSubmission stores a submission and closes its mentor atomically
	CreateSubmission(ctx context.Context, in *models.NewSubmission) (*models.Submission, *models.Mentor, error)

	// ListSubmissions fetches all submissions with their mentor, newest first
	ListSubmissions(ctx context.Context) ([]*models.SubmissionWithMentor, error)

	// UpdateNotificationStatus records message delivery outcomes
	UpdateNotificationStatus(ctx context.Context, result models.DeliveryResult) error
}

var (
	_ MentorStore     = (*postgres.Client)(nil)
	_ SubmissionStore = (*postgres.Client)(nil)
)
