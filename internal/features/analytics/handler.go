package analytics

import (
	"github.com/gin-gonic/gin"

	"github.com/xyz-asif/nagaralert/internal/pkg/logger"
	"github.com/xyz-asif/nagaralert/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// GetDashboard godoc
// @Summary Analytics dashboard
// @Description Category distribution, 7-day trend, area age, heatmap and counters
// @Tags analytics
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.APIResponse{data=Dashboard}
// @Failure 403 {object} response.APIResponse
// @Failure 500 {object} response.APIResponse
// @Router /v1/analytics [get]
func (h *Handler) GetDashboard(c *gin.Context) {
	d, err := h.service.Dashboard(c.Request.Context())
	if err != nil {
		logger.Error("analytics: load reports: %v", err)
		response.DatabaseError(c, "Failed to load reports")
		return
	}
	response.Success(c, d)
}

// GetSummary godoc
// @Summary Dashboard counters
// @Tags analytics
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.APIResponse{data=Summary}
// @Failure 403 {object} response.APIResponse
// @Router /v1/analytics/summary [get]
func (h *Handler) GetSummary(c *gin.Context) {
	s, err := h.service.Summary(c.Request.Context())
	if err != nil {
		logger.Error("analytics: load reports: %v", err)
		response.DatabaseError(c, "Failed to load reports")
		return
	}
	response.Success(c, s)
}
