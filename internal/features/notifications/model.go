package notifications

import "time"

// Notification type constants
const (
	TypeKarma  = "karma"
	TypeStatus = "status"
)

// Notification is a message to one citizen about their reports or karma
type Notification struct {
	ID          string    `json:"id" bson:"_id"`
	RecipientID string    `json:"recipientId" bson:"recipientId"`
	Type        string    `json:"type" bson:"type" example:"karma"`
	ReportID    string    `json:"reportId,omitempty" bson:"reportId,omitempty"`
	Title       string    `json:"title" bson:"title" example:"50 Karma Points"`
	Message     string    `json:"message" bson:"message"`
	Points      int       `json:"points,omitempty" bson:"points,omitempty"`
	IsRead      bool      `json:"isRead" bson:"isRead"`
	CreatedAt   time.Time `json:"createdAt" bson:"createdAt"`
}

// Request DTOs

type NotificationListQuery struct {
	Page       int  `form:"page,default=1"`
	Limit      int  `form:"limit,default=20"`
	UnreadOnly bool `form:"unreadOnly"`
}

// Response DTOs

type PaginatedNotificationsResponse struct {
	Notifications []Notification `json:"notifications"`
	UnreadCount   int            `json:"unreadCount"`
	Pagination    struct {
		Page       int   `json:"page"`
		Limit      int   `json:"limit"`
		Total      int64 `json:"total"`
		TotalPages int   `json:"totalPages"`
		HasMore    bool  `json:"hasMore"`
	} `json:"pagination"`
}

type UnreadCountResponse struct {
	UnreadCount int `json:"unreadCount"`
}

type MarkReadResponse struct {
	ID     string `json:"id"`
	IsRead bool   `json:"isRead"`
}

type MarkAllReadResponse struct {
	MarkedCount int64 `json:"markedCount"`
}
