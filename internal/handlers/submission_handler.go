package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/impulso-stone/mentores-api/internal/models"
	"github.com/impulso-stone/mentores-api/internal/services"
)

type SubmissionHandler struct {
	service services.SubmissionServiceInterface
}

func NewSubmissionHandler(service services.SubmissionServiceInterface) *SubmissionHandler {
	return &SubmissionHandler{service: service}
}

// ChooseMentor handles POST /api/v1/mentors/:id/choose
func (h *SubmissionHandler) ChooseMentor(c *gin.Context) {
	id, ok := mentorIDParam(c)
	if !ok {
		return
	}

	var req models.ChooseMentorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErrorWithDetails(c, http.StatusBadRequest, "Validation failed", ParseValidationErrors(err), err)
		return
	}

	resp, err := h.service.ChooseMentor(c.Request.Context(), id, &req)
	if err != nil {
		respondServiceError(c, err, "Failed to submit request")
		return
	}

	c.JSON(http.StatusCreated, resp)
}
