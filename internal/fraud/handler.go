package fraud

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/richxcame/marketplace-intel/pkg/common"
)

// Handler handles HTTP requests for order risk scoring
type Handler struct {
	service *Service
}

// NewHandler creates a new fraud handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// ScoreOrder scores the order in the path
func (h *Handler) ScoreOrder(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid order ID")
		return
	}

	var req ScoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	assessment, err := h.service.ScoreOrderRisk(c.Request.Context(), orderID, req)
	if err != nil {
		common.HandleError(c, err, "failed to score order risk")
		return
	}

	common.SuccessResponse(c, assessment)
}

// RegisterRoutes registers fraud routes
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	orders := rg.Group("/orders")
	{
		orders.POST("/:id/risk", h.ScoreOrder)
	}
}
