package broadcasts

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

// SendBroadcast godoc
// @Summary Send an area alert
// @Description Stores the alert with its citizen reach and pushes it to live subscribers
// @Tags broadcasts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateBroadcastRequest true "Alert"
// @Success 201 {object} response.APIResponse{data=Broadcast}
// @Failure 403 {object} response.APIResponse
// @Failure 422 {object} response.APIResponse
// @Router /v1/broadcasts [post]
func (h *Handler) SendBroadcast(c *gin.Context) {
	var req CreateBroadcastRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindJSONError(c, err)
		return
	}
	if err := ValidateCreateBroadcast(&req); err != nil {
		response.ValidationFailed(c, err.Error())
		return
	}

	b, err := h.service.Send(c.Request.Context(), c.GetString("userID"), req)
	if err != nil {
		logger.Error("broadcast: send: %v", err)
		response.DatabaseError(c, "Failed to send broadcast")
		return
	}

	response.Created(c, b, "Broadcast sent")
}

// ListBroadcasts godoc
// @Summary Broadcast history
// @Tags broadcasts
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.APIResponse{data=[]Broadcast}
// @Router /v1/broadcasts [get]
func (h *Handler) ListBroadcasts(c *gin.Context) {
	items, err := h.service.History(c.Request.Context())
	if err != nil {
		logger.Error("broadcast: list: %v", err)
		response.DatabaseError(c, "Failed to load broadcasts")
		return
	}
	response.Success(c, items)
}
