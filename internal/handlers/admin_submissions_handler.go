package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/impulso-stone/mentores-api/internal/models"
	"github.com/impulso-stone/mentores-api/internal/services"
)

type AdminSubmissionsHandler struct {
	service services.AdminSubmissionsServiceInterface
}

func NewAdminSubmissionsHandler(service services.AdminSubmissionsServiceInterface) *AdminSubmissionsHandler {
	return &AdminSubmissionsHandler{service: service}
}

// ListSubmissions handles GET /api/v1/admin/submissions?q=&setor=
func (h *AdminSubmissionsHandler) ListSubmissions(c *gin.Context) {
	var query models.SubmissionsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondErrorWithDetails(c, http.StatusBadRequest, "Invalid filters", ParseValidationErrors(err), err)
		return
	}

	view, err := h.service.ListSubmissions(c.Request.Context(), query)
	if err != nil {
		respondServiceError(c, err, "Failed to fetch submissions")
		return
	}

	c.JSON(http.StatusOK, view)
}
