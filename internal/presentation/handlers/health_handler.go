package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// HealthHandler handles health check requests
type HealthHandler struct {
	summariesEnabled bool
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(summariesEnabled bool) *HealthHandler {
	return &HealthHandler{summariesEnabled: summariesEnabled}
}

// Health handles GET /health
// @Summary Health check
// @Description Returns the health status of the service
// @Tags Health
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:           "healthy",
		Message:          "Service is running",
		SummariesEnabled: h.summariesEnabled,
	})
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status           string `json:"status"`
	Message          string `json:"message"`
	SummariesEnabled bool   `json:"summaries_enabled"`
}
