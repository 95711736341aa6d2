package services_test

import (
	"context"

	"github.com/impulso-stone/mentores-api/internal/models"
	"github.com/impulso-stone/mentores-api/internal/notifier"
	"github.com/stretchr/testify/mock"
)

// MockMentorRepository is a mock implementation of MentorRepositoryInterface
type MockMentorRepository struct {
	mock.Mock
}

func (m *MockMentorRepository) List(ctx context.Context, filter models.MentorFilter) ([]*models.Mentor, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Mentor), args.Error(1)
}

func (m *MockMentorRepository) GetByID(ctx context.Context, id string) (*models.Mentor, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Mentor), args.Error(1)
}

func (m *MockMentorRepository) SetAvailability(ctx context.Context, id string, disponivel bool) error {
	args := m.Called(ctx, id, disponivel)
	return args.Error(0)
}

func (m *MockMentorRepository) UpdatePhoto(ctx context.Context, id, fotoURL string) error {
	args := m.Called(ctx, id, fotoURL)
	return args.Error(0)
}

func (m *MockMentorRepository) InvalidateCache() {
	m.Called()
}

// MockSubmissionRepository is a mock implementation of SubmissionRepositoryInterface
type MockSubmissionRepository struct {
	mock.Mock
}

func (m *MockSubmissionRepository) Create(ctx context.Context, in *models.NewSubmission) (*models.Submission, *models.Mentor, error) {
	args := m.Called(ctx, in)
	var (
		sub    *models.Submission
		mentor *models.Mentor
	)
	if args.Get(0) != nil {
		sub = args.Get(0).(*models.Submission)
	}
	if args.Get(1) != nil {
		mentor = args.Get(1).(*models.Mentor)
	}
	return sub, mentor, args.Error(2)
}

func (m *MockSubmissionRepository) ListWithMentor(ctx context.Context) ([]*models.SubmissionWithMentor, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.SubmissionWithMentor), args.Error(1)
}

func (m *MockSubmissionRepository) UpdateDeliveryStatus(ctx context.Context, result models.DeliveryResult) error {
	args := m.Called(ctx, result)
	return args.Error(0)
}

// MockEnqueuer is a mock implementation of notifier.Enqueuer
type MockEnqueuer struct {
	mock.Mock
}

func (m *MockEnqueuer) Enqueue(ctx context.Context, job notifier.Job) error {
	args := m.Called(ctx, job)
	return args.Error(0)
}

// MockUploader is a mock implementation of storage.ImageUploader
type MockUploader struct {
	mock.Mock
}

func (m *MockUploader) UploadImage(ctx context.Context, imageData, key, contentType string) (string, error) {
	args := m.Called(ctx, imageData, key, contentType)
	return args.String(0), args.Error(1)
}
