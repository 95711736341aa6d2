package services

import (
	"context"
	"errors"
	"strings"

	"github.com/impulso-stone/mentores-api/config"
	"github.com/impulso-stone/mentores-api/internal/models"
	"github.com/impulso-stone/mentores-api/pkg/jwt"
	"github.com/impulso-stone/mentores-api/pkg/logger"
	"github.com/impulso-stone/mentores-api/pkg/metrics"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// AdminAuthService checks the configured admin credential and issues
// session tokens.
type AdminAuthService struct {
	config       *config.Config
	tokenManager *jwt.TokenManager
}

func NewAdminAuthService(cfg *config.Config) *AdminAuthService {
	var tokenManager *jwt.TokenManager
	if cfg.AdminEnabled() {
		tokenManager = jwt.NewTokenManager(
			cfg.Admin.JWTSecret,
			cfg.Admin.JWTIssuer,
			cfg.Admin.SessionTTLHours,
		)
	}

	return &AdminAuthService{
		config:       cfg,
		tokenManager: tokenManager,
	}
}

// Login verifies email and password and returns the session with its token.
// Both checks always run so a wrong email costs as much as a wrong password.
func (s *AdminAuthService) Login(ctx context.Context, req *models.AdminLoginRequest) (*models.AdminSession, string, error) {
	if s.tokenManager == nil {
		return nil, "", ErrAdminDisabled
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	emailOK := jwt.TimingSafeCompare(email, strings.ToLower(s.config.Admin.Email))
	passwordErr := bcrypt.CompareHashAndPassword([]byte(s.config.Admin.PasswordHash), []byte(req.Senha))

	if !emailOK || passwordErr != nil {
		metrics.AdminLogins.WithLabelValues("denied").Inc()
		logger.Warn("Admin login denied", zap.String("email", email))
		return nil, "", ErrInvalidCredentials
	}

	token, expiresAt, err := s.tokenManager.GenerateToken(email, models.AdminRole)
	if err != nil {
		metrics.AdminLogins.WithLabelValues("error").Inc()
		logger.Error("Failed to generate admin session token", zap.Error(err))
		return nil, "", err
	}

	metrics.AdminLogins.WithLabelValues("success").Inc()
	logger.Info("Admin logged in", zap.String("email", email))

	return &models.AdminSession{Email: email, ExpiresAt: expiresAt}, token, nil
}

// ValidateSession parses a session token and checks it still belongs to the
// configured admin.
func (s *AdminAuthService) ValidateSession(token string) (*models.AdminSession, error) {
	if s.tokenManager == nil {
		return nil, ErrAdminDisabled
	}

	claims, err := s.tokenManager.ValidateToken(token)
	if err != nil {
		return nil, err
	}

	if claims.Role != models.AdminRole ||
		!jwt.TimingSafeCompare(claims.Email, strings.ToLower(s.config.Admin.Email)) {
		return nil, jwt.ErrInvalidClaim
	}

	session := &models.AdminSession{Email: claims.Email}
	if claims.ExpiresAt != nil {
		session.ExpiresAt = claims.ExpiresAt.Time
	}
	return session, nil
}

func (s *AdminAuthService) GetSessionTTL() int {
	return s.config.Admin.SessionTTLHours
}

func (s *AdminAuthService) GetCookieDomain() string {
	return s.config.Admin.CookieDomain
}

func (s *AdminAuthService) GetCookieSecure() bool {
	return s.config.Admin.CookieSecure
}

// IsSessionError reports whether err means the caller must log in again
func IsSessionError(err error) bool {
	return errors.Is(err, jwt.ErrInvalidToken) ||
		errors.Is(err, jwt.ErrExpiredToken) ||
		errors.Is(err, jwt.ErrInvalidClaim) ||
		errors.Is(err, ErrAdminDisabled)
}
