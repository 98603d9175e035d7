package notifications

import (
	"errors"

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

// ListNotifications godoc
// @Summary List notifications
// @Description Karma credits and report status changes, unread first
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number (default 1)"
// @Param limit query int false "Items per page (default 20, max 50)"
// @Param unreadOnly query bool false "Only show unread"
// @Success 200 {object} response.APIResponse{data=PaginatedNotificationsResponse}
// @Failure 401 {object} response.APIResponse
// @Router /v1/notifications [get]
func (h *Handler) ListNotifications(c *gin.Context) {
	var query NotificationListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.BadRequest(c, "Invalid query parameters", "INVALID_QUERY")
		return
	}
	ValidateNotificationListQuery(&query)

	resp, err := h.service.List(c.Request.Context(), c.GetString("userID"), query)
	if err != nil {
		logger.Error("notifications: list: %v", err)
		response.DatabaseError(c, "Failed to fetch notifications")
		return
	}

	response.Success(c, resp)
}

// GetUnreadCount godoc
// @Summary Get unread notification count
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.APIResponse{data=UnreadCountResponse}
// @Router /v1/notifications/unread-count [get]
func (h *Handler) GetUnreadCount(c *gin.Context) {
	count, err := h.service.UnreadCount(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		logger.Error("notifications: count: %v", err)
		response.DatabaseError(c, "Failed to count notifications")
		return
	}

	response.Success(c, UnreadCountResponse{UnreadCount: count})
}

// MarkAsRead godoc
// @Summary Mark notification as read
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Param id path string true "Notification ID"
// @Success 200 {object} response.APIResponse{data=MarkReadResponse}
// @Failure 404 {object} response.APIResponse
// @Router /v1/notifications/{id}/read [patch]
func (h *Handler) MarkAsRead(c *gin.Context) {
	id := c.Param("id")

	// Lookups are scoped to the caller, so another user's id is simply not found
	if err := h.service.MarkRead(c.Request.Context(), c.GetString("userID"), id); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			response.NotFound(c, "Notification not found", "NOTIFICATION_NOT_FOUND")
			return
		}
		logger.Error("notifications: mark read: %v", err)
		response.DatabaseError(c, "Failed to mark as read")
		return
	}

	response.Success(c, MarkReadResponse{ID: id, IsRead: true})
}

// MarkAllAsRead godoc
// @Summary Mark all notifications as read
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.APIResponse{data=MarkAllReadResponse}
// @Router /v1/notifications/read-all [patch]
func (h *Handler) MarkAllAsRead(c *gin.Context) {
	count, err := h.service.MarkAllRead(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		logger.Error("notifications: mark all read: %v", err)
		response.DatabaseError(c, "Failed to mark all as read")
		return
	}

	response.Success(c, MarkAllReadResponse{MarkedCount: count})
}
