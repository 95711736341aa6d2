package services_test

import (
	"context"
	"encoding/base64"
	"strings"
	"testing"

	"github.com/impulso-stone/mentores-api/internal/models"
	"github.com/impulso-stone/mentores-api/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var adminSession = &models.AdminSession{Email: "admin@impulso.org"}

func TestAdminMentorsService_SetAvailability(t *testing.T) {
	repo := new(MockMentorRepository)
	service := services.NewAdminMentorsService(repo, nil)
	ctx := context.Background()

	reopened := &models.Mentor{ID: "m-1", Nome: "Ana", Disponivel: true}
	repo.On("SetAvailability", ctx, "m-1", true).Return(nil).Once()
	repo.On("GetByID", ctx, "m-1").Return(reopened, nil).Once()

	mentor, err := service.SetAvailability(ctx, adminSession, "m-1", true)
	require.NoError(t, err)
	assert.True(t, mentor.Disponivel)
	repo.AssertExpectations(t)
}

func TestAdminMentorsService_SetAvailability_NotFound(t *testing.T) {
	repo := new(MockMentorRepository)
	service := services.NewAdminMentorsService(repo, nil)
	ctx := context.Background()

	repo.On("SetAvailability", ctx, "nope", false).Return(models.ErrMentorNotFound).Once()

	_, err := service.SetAvailability(ctx, adminSession, "nope", false)
	assert.ErrorIs(t, err, models.ErrMentorNotFound)
	repo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestAdminMentorsService_UploadPhoto(t *testing.T) {
	repo := new(MockMentorRepository)
	uploader := new(MockUploader)
	service := services.NewAdminMentorsService(repo, uploader)
	ctx := context.Background()

	image := base64.StdEncoding.EncodeToString([]byte("fake-png-bytes"))
	req := &models.UploadPhotoRequest{Image: image, FileName: "ana.png", ContentType: "image/png"}
	url := "https://cdn.impulso.org/mentores/m-1/abc.png"

	repo.On("GetByID", ctx, "m-1").Return(&models.Mentor{ID: "m-1"}, nil).Once()
	uploader.On("UploadImage", ctx, image, mock.MatchedBy(func(key string) bool {
		return strings.HasPrefix(key, "mentores/m-1/") && strings.HasSuffix(key, ".png")
	}), "image/png").Return(url, nil).Once()
	repo.On("UpdatePhoto", ctx, "m-1", url).Return(nil).Once()

	got, err := service.UploadPhoto(ctx, adminSession, "m-1", req)
	require.NoError(t, err)
	assert.Equal(t, url, got)
	uploader.AssertExpectations(t)
	repo.AssertExpectations(t)
}

func TestAdminMentorsService_UploadPhoto_Rejects(t *testing.T) {
	ctx := context.Background()

	_, err := services.NewAdminMentorsService(new(MockMentorRepository), nil).
		UploadPhoto(ctx, adminSession, "m-1", &models.UploadPhotoRequest{})
	assert.ErrorIs(t, err, services.ErrStorageDisabled)

	uploader := new(MockUploader)
	service := services.NewAdminMentorsService(new(MockMentorRepository), uploader)

	_, err = service.UploadPhoto(ctx, adminSession, "m-1", &models.UploadPhotoRequest{
		Image: "aGVsbG8=", FileName: "a.gif", ContentType: "image/gif",
	})
	assert.ErrorIs(t, err, services.ErrValidation)

	_, err = service.UploadPhoto(ctx, adminSession, "m-1", &models.UploadPhotoRequest{
		Image: "%%%not-base64%%%", FileName: "a.png", ContentType: "image/png",
	})
	assert.ErrorIs(t, err, services.ErrValidation)

	uploader.AssertNotCalled(t, "UploadImage", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
