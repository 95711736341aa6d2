package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/impulso-stone/mentores-api/internal/middleware"
	"github.com/impulso-stone/mentores-api/internal/models"
	"github.com/impulso-stone/mentores-api/internal/services"
)

type AdminMentorsHandler struct {
	service services.AdminMentorsServiceInterface
}

func NewAdminMentorsHandler(service services.AdminMentorsServiceInterface) *AdminMentorsHandler {
	return &AdminMentorsHandler{service: service}
}

// SetAvailability handles POST /api/v1/admin/mentors/:id/availability
func (h *AdminMentorsHandler) SetAvailability(c *gin.Context) {
	session, err := middleware.GetAdminSession(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	mentorID, ok := mentorIDParam(c)
	if !ok {
		return
	}

	var req models.AvailabilityRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		respondErrorWithDetails(c, http.StatusBadRequest, "Invalid request body", ParseValidationErrors(bindErr), bindErr)
		return
	}

	mentor, err := h.service.SetAvailability(c.Request.Context(), session, mentorID, *req.Disponivel)
	if err != nil {
		respondServiceError(c, err, "Failed to update mentor")
		return
	}

	c.JSON(http.StatusOK, gin.H{"mentor": mentor})
}

// UploadPhoto handles POST /api/v1/admin/mentors/:id/photo
func (h *AdminMentorsHandler) UploadPhoto(c *gin.Context) {
	session, err := middleware.GetAdminSession(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	mentorID, ok := mentorIDParam(c)
	if !ok {
		return
	}

	var req models.UploadPhotoRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		respondErrorWithDetails(c, http.StatusBadRequest, "Invalid request body", ParseValidationErrors(bindErr), bindErr)
		return
	}

	imageURL, err := h.service.UploadPhoto(c.Request.Context(), session, mentorID, &req)
	if err != nil {
		respondServiceError(c, err, "Failed to upload photo")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"message":  "Foto atualizada",
		"imageUrl": imageURL,
	})
}
