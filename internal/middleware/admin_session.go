package middleware

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/impulso-stone/mentores-api/internal/models"
	"github.com/impulso-stone/mentores-api/pkg/jwt"
)

const (
	// AdminSessionCookieName is the cookie carrying the admin session token.
	AdminSessionCookieName = "admin_session"

	// AdminSessionContextKey stores the authenticated admin session in request context.
	AdminSessionContextKey = "admin_session"

	// LoginRedirect is where the client sends an unauthenticated admin
	LoginRedirect = "/login"
)

var (
	ErrAdminSessionNotFound = errors.New("admin session not found in context")
	ErrInvalidAdminSession  = errors.New("invalid admin session type")
)

// SessionValidator turns a session token into an admin session
type SessionValidator interface {
	ValidateSession(token string) (*models.AdminSession, error)
}

// AdminSessionMiddleware rejects requests without a valid admin session
// cookie and stores the session in context for handlers.
func AdminSessionMiddleware(validator SessionValidator, cookieDomain string, cookieSecure bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		cookie, err := c.Cookie(AdminSessionCookieName)
		if err != nil || cookie == "" {
			_ = c.Error(fmt.Errorf("missing admin session cookie")) //nolint:errcheck
			abortUnauthorized(c, "Unauthorized")
			return
		}

		session, err := validator.ValidateSession(cookie)
		if err != nil {
			_ = c.Error(fmt.Errorf("invalid admin session token: %w", err)) //nolint:errcheck
			ClearAdminSessionCookie(c, cookieDomain, cookieSecure)
			if errors.Is(err, jwt.ErrExpiredToken) {
				abortUnauthorized(c, "Session expired")
			} else {
				abortUnauthorized(c, "Unauthorized")
			}
			return
		}

		c.Set(AdminSessionContextKey, session)
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"error":    message,
		"redirect": LoginRedirect,
	})
}

func GetAdminSession(c *gin.Context) (*models.AdminSession, error) {
	val, exists := c.Get(AdminSessionContextKey)
	if !exists {
		return nil, ErrAdminSessionNotFound
	}

	session, ok := val.(*models.AdminSession)
	if !ok {
		return nil, ErrInvalidAdminSession
	}

	return session, nil
}

func SetAdminSessionCookie(c *gin.Context, token string, ttlSeconds int, domain string, secure bool) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(AdminSessionCookieName, token, ttlSeconds, "/", domain, secure, true)
}

func ClearAdminSessionCookie(c *gin.Context, domain string, secure bool) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(AdminSessionCookieName, "", -1, "/", domain, secure, true)
}
