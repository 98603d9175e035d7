package teams

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

// GetBoard godoc
// @Summary Team task board
// @Description Field teams with live availability and the number of accepted reports awaiting a team
// @Tags teams
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.APIResponse{data=Board}
// @Failure 403 {object} response.APIResponse
// @Router /v1/teams [get]
func (h *Handler) GetBoard(c *gin.Context) {
	board, err := h.service.Board(c.Request.Context())
	if err != nil {
		logger.Error("teams: load reports: %v", err)
		response.DatabaseError(c, "Failed to load reports")
		return
	}
	response.Success(c, board)
}
