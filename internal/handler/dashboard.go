package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"driverpay/internal/service"
)

// DashboardHandler serves the dashboard summary.
type DashboardHandler struct {
	dashboardService *service.DashboardService
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// Get handles GET /api/dashboard
func (h *DashboardHandler) Get(c *gin.Context) {
	stats, err := h.dashboardService.Stats(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toDashboardResponse(stats))
}
