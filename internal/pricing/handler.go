package pricing

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/richxcame/marketplace-intel/pkg/common"
)

// Handler handles HTTP requests for delivery pricing
type Handler struct {
	service *Service
}

// NewHandler creates a new pricing handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// QuoteDelivery returns the delivery fee for a vendor and customer location
func (h *Handler) QuoteDelivery(c *gin.Context) {
	var req QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	quote, err := h.service.ComputeDeliveryFee(c.Request.Context(), req)
	if err != nil {
		common.HandleError(c, err, "failed to calculate delivery fee")
		return
	}

	common.SuccessResponse(c, quote)
}

// RegisterRoutes registers pricing routes
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	delivery := rg.Group("/delivery")
	{
		delivery.POST("/quote", h.QuoteDelivery)
	}
}
