package repository

import (
	"context"

	"github.com/impulso-stone/mentores-api/internal/models"
)

// SubmissionRepositoryInterface defines submission data access
type SubmissionRepositoryInterface interface {
	Create(ctx context.Context, in *models.NewSubmission) (*models.Submission, *models.Mentor, error)
	ListWithMentor(ctx context.Context) ([]*models.SubmissionWithMentor, error)
	UpdateDeliveryStatus(ctx context.Context, result models.DeliveryResult) error
}

// SubmissionRepository handles submission data access
type SubmissionRepository struct {
	store SubmissionStore
}

// NewSubmissionRepository creates a new submission repository
func NewSubmissionRepository(store SubmissionStore) *SubmissionRepository {
	return &SubmissionRepository{store: store}
}

var _ SubmissionRepositoryInterface = (*SubmissionRepository)(nil)

// Create stores a submission and closes its mentor
func (r *SubmissionRepository) Create(ctx context.Context, in *models.NewSubmission) (*models.Submission, *models.Mentor, error) {
	return r.store.CreateSubmission(ctx, in)
}

// ListWithMentor returns all submissions joined with their mentor
func (r *SubmissionRepository) ListWithMentor(ctx context.Context) ([]*models.SubmissionWithMentor, error) {
	return r.store.ListSubmissions(ctx)
}

// UpdateDeliveryStatus persists notification outcomes
func (r *SubmissionRepository) UpdateDeliveryStatus(ctx context.Context, result models.DeliveryResult) error {
	return r.store.UpdateNotificationStatus(ctx, result)
}
