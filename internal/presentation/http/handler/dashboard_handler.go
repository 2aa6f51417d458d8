package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/timbangcerdas/timbang-api/internal/application/service"
	"github.com/timbangcerdas/timbang-api/internal/presentation/http/dto/response"
)

// DashboardHandler handles dashboard-related HTTP requests
type DashboardHandler struct {
	dashboardService *service.DashboardService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// GetStats handles getting dashboard statistics
func (h *DashboardHandler) GetStats(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	stats, err := h.dashboardService.GetStats(c.Request.Context(), userID, time.Now())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Statistik berhasil dimuat", stats)
}
