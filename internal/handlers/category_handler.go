package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/impulso-stone/mentores-api/internal/services"
)

type CategoryHandler struct {
	service services.MentorServiceInterface
}

func NewCategoryHandler(service services.MentorServiceInterface) *CategoryHandler {
	return &CategoryHandler{service: service}
}

// ListCategories handles GET /api/v1/categories
func (h *CategoryHandler) ListCategories(c *gin.Context) {
	overview, err := h.service.GetCategories(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, "Failed to fetch categories")
		return
	}

	c.JSON(http.StatusOK, overview)
}

// GetCategoryMentors handles GET /api/v1/categories/:slug/mentors?q=
func (h *CategoryHandler) GetCategoryMentors(c *gin.Context) {
	result, err := h.service.GetCategoryMentors(c.Request.Context(), c.Param("slug"), c.Query("q"))
	if err != nil {
		respondServiceError(c, err, "Failed to fetch mentors")
		return
	}

	c.JSON(http.StatusOK, result)
}
