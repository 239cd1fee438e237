package forecast

import (
	"github.com/gin-gonic/gin"
	"github.com/richxcame/marketplace-intel/pkg/common"
)

// Handler handles HTTP requests for revenue forecasts
type Handler struct {
	service *Service
}

// NewHandler creates a new forecast handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// GetRevenueTrend returns the revenue history and projection
func (h *Handler) GetRevenueTrend(c *gin.Context) {
	trend, err := h.service.GetRevenueTrend(c.Request.Context())
	if err != nil {
		common.HandleError(c, err, "failed to get revenue trend")
		return
	}

	common.SuccessResponse(c, trend)
}

// RegisterRoutes registers forecast routes
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/revenue/trend", h.GetRevenueTrend)
}
