package ranking

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/richxcame/marketplace-intel/pkg/common"
	"github.com/richxcame/marketplace-intel/pkg/validation"
)

// Handler handles HTTP requests for vendor ranking and reliability
type Handler struct {
	service *Service
}

// NewHandler creates a new ranking handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// GetRanking returns the vendor leaderboard
func (h *Handler) GetRanking(c *gin.Context) {
	q := DefaultRankingQuery()
	verr := &validation.ValidationError{}

	if raw, ok := c.GetQuery("lookback_months"); ok {
		v, err := strconv.Atoi(raw)
		if err != nil {
			verr.AddError("lookback_months", "lookback_months must be an integer")
		}
		q.LookbackMonths = v
	}
	if raw, ok := c.GetQuery("limit"); ok {
		v, err := strconv.Atoi(raw)
		if err != nil {
			verr.AddError("limit", "limit must be an integer")
		}
		q.Limit = v
	}
	if verr.HasErrors() {
		common.AppErrorResponse(c, common.NewBadRequestError("invalid ranking parameters", verr))
		return
	}

	ranked, err := h.service.GetRankedVendors(c.Request.Context(), q)
	if err != nil {
		common.HandleError(c, err, "failed to rank vendors")
		return
	}

	common.SuccessResponse(c, ranked)
}

// RefreshReliability recomputes the reliability snapshots for a period
func (h *Handler) RefreshReliability(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.service.RefreshVendorReliability(c.Request.Context(), req)
	if err != nil {
		common.HandleError(c, err, "failed to refresh vendor reliability")
		return
	}

	common.SuccessResponseWithStatus(c, http.StatusOK, result, "vendor reliability refreshed")
}

// GetReliability returns the stored snapshots for a period
func (h *Handler) GetReliability(c *gin.Context) {
	snapshots, err := h.service.GetReliabilitySnapshots(c.Request.Context(), c.Query("period_date"))
	if err != nil {
		common.HandleError(c, err, "failed to get vendor reliability")
		return
	}

	common.SuccessResponse(c, snapshots)
}

// RegisterRoutes registers ranking routes
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	vendors := rg.Group("/vendors")
	{
		vendors.GET("/ranking", h.GetRanking)
		vendors.GET("/reliability", h.GetReliability)
		vendors.POST("/reliability/refresh", h.RefreshReliability)
	}
}
