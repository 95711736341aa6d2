package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/impulso-stone/mentores-api/internal/services"
	apperrors "github.com/impulso-stone/mentores-api/pkg/errors"
)

// attachError attaches err to the gin context so the observability middleware
// can include the reason in the request log.
func attachError(c *gin.Context, err error) {
	if err != nil {
		_ = c.Error(err) //nolint:errcheck // c.Error returns *gin.Error, not error
	}
}

// respondError sends an error JSON response and attaches the error to the gin context.
func respondError(c *gin.Context, status int, message string, err error) {
	attachError(c, err)
	c.JSON(status, gin.H{"error": message})
}

// respondErrorWithDetails sends an error response with an additional details field.
func respondErrorWithDetails(c *gin.Context, status int, message string, details any, err error) {
	attachError(c, err)
	c.JSON(status, gin.H{"error": message, "details": details})
}

// respondRetryable sends a server error the client may simply try again
func respondRetryable(c *gin.Context, status int, message string, err error) {
	attachError(c, err)
	c.JSON(status, gin.H{"error": message, "retry": true})
}

// respondServiceError maps a service error to a status code. Anything it
// does not recognise is a retryable 500 carrying fallback as the message.
func respondServiceError(c *gin.Context, err error, fallback string) {
	if ve, ok := services.AsValidationError(err); ok {
		respondErrorWithDetails(c, http.StatusBadRequest, "Validation failed", ve.Fields, err)
		return
	}

	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		respondError(c, http.StatusNotFound, notFoundMessage(err), err)
	case errors.Is(err, apperrors.ErrConflict):
		respondError(c, http.StatusConflict, "Mentor is no longer available", err)
	case errors.Is(err, apperrors.ErrUnauthorized):
		respondError(c, http.StatusUnauthorized, "Invalid credentials", err)
	case errors.Is(err, apperrors.ErrUnavailable):
		respondRetryable(c, http.StatusServiceUnavailable, "Service temporarily unavailable", err)
	case errors.Is(err, apperrors.ErrInvalidInput):
		respondError(c, http.StatusBadRequest, "Invalid request", err)
	default:
		respondRetryable(c, http.StatusInternalServerError, fallback, err)
	}
}

func notFoundMessage(err error) string {
	if errors.Is(err, services.ErrCategoryNotFound) {
		return "Category not found"
	}
	return "Mentor not found"
}

// NotFound answers every unmatched route
func NotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
}
