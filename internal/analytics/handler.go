package analytics

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/richxcame/marketplace-intel/pkg/common"
)

// Handler handles HTTP requests for the executive dashboard
type Handler struct {
	service *Service
}

// NewHandler creates a new analytics handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// GetDashboard returns the composite dashboard payload
func (h *Handler) GetDashboard(c *gin.Context) {
	dashboard, err := h.service.GetDashboardMetrics(c.Request.Context())
	if err != nil {
		common.HandleError(c, err, "failed to get dashboard metrics")
		return
	}

	common.SuccessResponse(c, dashboard)
}

// UpsertMarketingSnapshot stores externally supplied marketing figures
func (h *Handler) UpsertMarketingSnapshot(c *gin.Context) {
	var req MarketingSnapshotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	snapshot, err := h.service.UpsertMarketingSnapshot(c.Request.Context(), req)
	if err != nil {
		common.HandleError(c, err, "failed to store marketing snapshot")
		return
	}

	common.SuccessResponseWithStatus(c, http.StatusOK, snapshot, "marketing snapshot stored")
}

// RegisterRoutes registers analytics routes
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/dashboard", h.GetDashboard)
	rg.PUT("/marketing/snapshots", h.UpsertMarketingSnapshot)
}
