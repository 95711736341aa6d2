package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/impulso-stone/mentores-api/internal/models"
	"github.com/impulso-stone/mentores-api/internal/services"
)

type MentorHandler struct {
	service services.MentorServiceInterface
}

func NewMentorHandler(service services.MentorServiceInterface) *MentorHandler {
	return &MentorHandler{service: service}
}

// ListMentorsResponse is the mentor list payload
type ListMentorsResponse struct {
	Mentores []*models.Mentor `json:"mentores"`
	Total    int              `json:"total"`
}

// ListMentors handles GET /api/v1/mentors?q=&setor=&disponivel=
func (h *MentorHandler) ListMentors(c *gin.Context) {
	filter := models.MentorFilter{
		Query: c.Query("q"),
		Setor: c.Query("setor"),
	}

	if raw := c.Query("disponivel"); raw != "" {
		onlyAvailable, err := strconv.ParseBool(raw)
		if err != nil {
			respondError(c, http.StatusBadRequest, "Invalid disponivel filter", err)
			return
		}
		filter.OnlyAvailable = onlyAvailable
	}

	mentors, err := h.service.ListMentors(c.Request.Context(), filter)
	if err != nil {
		respondServiceError(c, err, "Failed to fetch mentors")
		return
	}

	c.JSON(http.StatusOK, ListMentorsResponse{Mentores: mentors, Total: len(mentors)})
}

// GetMentor handles GET /api/v1/mentors/:id
func (h *MentorHandler) GetMentor(c *gin.Context) {
	id, ok := mentorIDParam(c)
	if !ok {
		return
	}

	details, err := h.service.GetMentorDetails(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err, "Failed to fetch mentor")
		return
	}

	c.JSON(http.StatusOK, details)
}

// mentorIDParam reads :id and answers 400 when it is not a UUID
func mentorIDParam(c *gin.Context) (string, bool) {
	raw := c.Param("id")
	id, err := uuid.Parse(raw)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid mentor ID", err)
		return "", false
	}
	return id.String(), true
}
