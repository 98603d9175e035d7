package users

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/xyz-asif/nagaralert/internal/pkg/logger"
	"github.com/xyz-asif/nagaralert/internal/pkg/response"
	apperrors "github.com/xyz-asif/nagaralert/pkg/errors"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// GetMe godoc
// @Summary Get own profile
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.APIResponse{data=User}
// @Failure 404 {object} response.APIResponse
// @Router /v1/users/me [get]
func (h *Handler) GetMe(c *gin.Context) {
	u, err := h.service.Get(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, u)
}

// UpdateMe godoc
// @Summary Update own profile
// @Description Role and points cannot be changed here
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body UpdateProfileRequest true "Fields to change"
// @Success 200 {object} response.APIResponse{data=User}
// @Failure 400 {object} response.APIResponse
// @Failure 422 {object} response.APIResponse
// @Router /v1/users/me [patch]
func (h *Handler) UpdateMe(c *gin.Context) {
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindJSONError(c, err)
		return
	}
	if err := ValidateUpdateProfile(&req); err != nil {
		response.ValidationFailed(c, err.Error())
		return
	}

	u, err := h.service.UpdateProfile(c.Request.Context(), c.GetString("userID"), req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, u, "Profile updated")
}

// Leaderboard godoc
// @Summary Citizen leaderboard
// @Description Citizens ranked by karma points. The caller is always included and flagged isMe.
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Top N (default 50)"
// @Success 200 {object} response.APIResponse{data=[]LeaderboardEntry}
// @Router /v1/leaderboard [get]
func (h *Handler) Leaderboard(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if err != nil || limit < 1 {
		limit = 50
	}

	entries, err := h.service.Leaderboard(c.Request.Context(), c.GetString("userID"), limit)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, entries)
}

func (h *Handler) writeError(c *gin.Context, err error) {
	if errors.Is(err, apperrors.ErrNotFound) {
		response.NotFound(c, "User not found", "USER_NOT_FOUND")
		return
	}
	logger.Error("User store error: %v", err)
	response.DatabaseError(c, "Failed to access user profiles")
}
