package cohort

import (
	"github.com/gin-gonic/gin"
	"github.com/richxcame/marketplace-intel/pkg/common"
)

// Handler handles HTTP requests for cohort analysis
type Handler struct {
	service *Service
}

// NewHandler creates a new cohort handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// GetCohorts returns cohort retention
func (h *Handler) GetCohorts(c *gin.Context) {
	cohorts, err := h.service.GetCohortRetention(c.Request.Context())
	if err != nil {
		common.HandleError(c, err, "failed to get cohort retention")
		return
	}

	common.SuccessResponse(c, cohorts)
}

// RegisterRoutes registers cohort routes
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/customers/cohorts", h.GetCohorts)
}
