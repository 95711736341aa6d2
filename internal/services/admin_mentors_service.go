package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/impulso-stone/mentores-api/internal/models"
	"github.com/impulso-stone/mentores-api/internal/repository"
	"github.com/impulso-stone/mentores-api/pkg/logger"
	"github.com/impulso-stone/mentores-api/pkg/storage"
	"go.uber.org/zap"
)

type AdminMentorsService struct {
	mentorRepo repository.MentorRepositoryInterface
	uploader   storage.ImageUploader
}

// NewAdminMentorsService creates the service. A nil uploader disables photo
// upload.
func NewAdminMentorsService(mentorRepo repository.MentorRepositoryInterface, uploader storage.ImageUploader) *AdminMentorsService {
	return &AdminMentorsService{
		mentorRepo: mentorRepo,
		uploader:   uploader,
	}
}

// SetAvailability reopens or closes a mentor and returns the updated profile
func (s *AdminMentorsService) SetAvailability(
	ctx context.Context,
	session *models.AdminSession,
	mentorID string,
	disponivel bool,
) (*models.Mentor, error) {
	if err := s.mentorRepo.SetAvailability(ctx, mentorID, disponivel); err != nil {
		return nil, err
	}

	logger.Info("Mentor availability changed",
		zap.String("mentor_id", mentorID),
		zap.Bool("disponivel", disponivel),
		zap.String("admin", session.Email))

	return s.mentorRepo.GetByID(ctx, mentorID)
}

// UploadPhoto validates a base64 image, stores it and points the mentor's
// foto_url at it.
func (s *AdminMentorsService) UploadPhoto(
	ctx context.Context,
	session *models.AdminSession,
	mentorID string,
	req *models.UploadPhotoRequest,
) (string, error) {
	if s.uploader == nil {
		return "", ErrStorageDisabled
	}

	ext, err := storage.ValidateImageType(req.ContentType)
	if err != nil {
		return "", &ValidationError{Fields: map[string]string{"contentType": err.Error()}}
	}
	if err := storage.ValidateImageSize(req.Image); err != nil {
		return "", &ValidationError{Fields: map[string]string{"image": err.Error()}}
	}

	if _, err := s.mentorRepo.GetByID(ctx, mentorID); err != nil {
		return "", err
	}

	key := fmt.Sprintf("mentores/%s/%s.%s", mentorID, uuid.NewString(), ext)
	url, err := s.uploader.UploadImage(ctx, req.Image, key, req.ContentType)
	if err != nil {
		return "", fmt.Errorf("failed to upload photo: %w", err)
	}

	if err := s.mentorRepo.UpdatePhoto(ctx, mentorID, url); err != nil {
		return "", err
	}

	logger.Info("Mentor photo updated",
		zap.String("mentor_id", mentorID),
		zap.String("file_name", req.FileName),
		zap.String("admin", session.Email))

	return url, nil
}
