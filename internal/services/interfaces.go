package services

import (
	"context"

	"github.com/impulso-stone/mentores-api/internal/catalog"
	"github.com/impulso-stone/mentores-api/internal/models"
)

// MentorServiceInterface defines the interface for mentor browsing operations
type MentorServiceInterface interface {
	ListMentors(ctx context.Context, filter models.MentorFilter) ([]*models.Mentor, error)
	GetMentorDetails(ctx context.Context, id string) (*models.MentorDetails, error)
	GetCategories(ctx context.Context) (*catalog.Overview, error)
	GetCategoryMentors(ctx context.Context, slug, query string) (*CategoryMentors, error)
}

// SubmissionServiceInterface defines the choose-mentor workflow
type SubmissionServiceInterface interface {
	ChooseMentor(ctx context.Context, mentorID string, req *models.ChooseMentorRequest) (*models.ChooseMentorResponse, error)
}

// AdminAuthServiceInterface defines the admin login gate
type AdminAuthServiceInterface interface {
	Login(ctx context.Context, req *models.AdminLoginRequest) (*models.AdminSession, string, error)
	ValidateSession(token string) (*models.AdminSession, error)
	GetSessionTTL() int
	GetCookieDomain() string
	GetCookieSecure() bool
}

// AdminSubmissionsServiceInterface defines the admin submissions table
type AdminSubmissionsServiceInterface interface {
	ListSubmissions(ctx context.Context, query models.SubmissionsQuery) (*models.SubmissionsView, error)
}

// AdminMentorsServiceInterface defines admin mentor maintenance
type AdminMentorsServiceInterface interface {
	SetAvailability(ctx context.Context, session *models.AdminSession, mentorID string, disponivel bool) (*models.Mentor, error)
	UploadPhoto(ctx context.Context, session *models.AdminSession, mentorID string, req *models.UploadPhotoRequest) (string, error)
}

// Ensure services implement their interfaces
var _ MentorServiceInterface = (*MentorService)(nil)
var _ SubmissionServiceInterface = (*SubmissionService)(nil)
var _ AdminAuthServiceInterface = (*AdminAuthService)(nil)
var _ AdminSubmissionsServiceInterface = (*AdminSubmissionsService)(nil)
var _ AdminMentorsServiceInterface = (*AdminMentorsService)(nil)
