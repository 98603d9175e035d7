package reports

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/xyz-asif/nagaralert/internal/features/verify"
)

// Status is the lifecycle state of a report
type Status string

const (
	StatusPending    Status = "Pending"
	StatusAccepted   Status = "Accepted"
	StatusInProgress Status = "In Progress"
	StatusResolved   Status = "Resolved"
	StatusRejected   Status = "Rejected"
)

// NormalizeStatus maps legacy labels onto the canonical states
func NormalizeStatus(s string) Status {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "open", "pending":
		return StatusPending
	case "verified", "accepted":
		return StatusAccepted
	case "in progress", "in_progress", "inprogress":
		return StatusInProgress
	case "resolved":
		return StatusResolved
	case "rejected":
		return StatusRejected
	}
	return Status(s)
}

// IsTerminal reports whether no further transition is allowed
func (s Status) IsTerminal() bool {
	return s == StatusResolved || s == StatusRejected
}

// Valid reports whether s is one of the known states
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusAccepted, StatusInProgress, StatusResolved, StatusRejected:
		return true
	}
	return false
}

// Category of civic issue
type Category string

const (
	CategoryPothole Category = "pothole"
	CategoryGarbage Category = "garbage"
	CategoryLight   Category = "light"
	CategoryWater   Category = "water"
	CategoryFire    Category = "fire"
	CategoryGeneral Category = "general"
)

var knownCategories = map[Category]bool{
	CategoryPothole: true,
	CategoryGarbage: true,
	CategoryLight:   true,
	CategoryWater:   true,
	CategoryFire:    true,
	CategoryGeneral: true,
}

// ParseCategory lowercases and checks the category against the known set
func ParseCategory(s string) (Category, bool) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	return c, knownCategories[c]
}

// Priority is derived from category and AI verification
type Priority string

const (
	PriorityLow      Priority = "Low"
	PriorityMedium   Priority = "Medium"
	PriorityHigh     Priority = "High"
	PriorityCritical Priority = "Critical"
)

// Location of the reported issue. Address is the reverse-geocoded label
// supplied by the client.
type Location struct {
	Latitude  float64 `json:"latitude" bson:"latitude" example:"23.3441"`
	Longitude float64 `json:"longitude" bson:"longitude" example:"85.3096"`
	Address   string  `json:"address" bson:"address" example:"Sector 4, Ranchi"`
}

// Report is a single citizen-submitted civic issue
type Report struct {
	ID           string     `json:"id,omitempty" bson:"_id"`
	Category     Category   `json:"category" bson:"category"`
	Description  string     `json:"description,omitempty" bson:"description,omitempty"`
	Location     Location   `json:"location" bson:"location"`
	ImageURL     string     `json:"imageUrl" bson:"imageUrl"`
	Status       Status     `json:"status" bson:"status"`
	AIVerified   bool       `json:"aiVerified" bson:"aiVerified"`
	AIAnalysis   string     `json:"aiAnalysis" bson:"aiAnalysis"`
	AIConfidence int        `json:"aiConfidence" bson:"aiConfidence"`
	Priority     Priority   `json:"priority" bson:"priority"`
	UserID       string     `json:"userId" bson:"userId"`
	Assignee     string     `json:"assignee,omitempty" bson:"assignee,omitempty"`
	AssignedAt   *time.Time `json:"assignedAt,omitempty" bson:"assignedAt,omitempty"`
	ResolvedAt   *time.Time `json:"resolvedAt,omitempty" bson:"resolvedAt,omitempty"`
	CreatedAt    time.Time  `json:"createdAt" bson:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt" bson:"updatedAt"`
}

// reportAlias breaks the UnmarshalJSON recursion
type reportAlias Report

// UnmarshalJSON accepts the field names older clients wrote: "type" for
// category, "severity" for priority and "timestamp" for createdAt. Legacy
// status labels are normalized.
func (r *Report) UnmarshalJSON(data []byte) error {
	aux := struct {
		*reportAlias
		Type      string          `json:"type"`
		Severity  string          `json:"severity"`
		Timestamp json.RawMessage `json:"timestamp"`
		CreatedAt json.RawMessage `json:"createdAt"`
	}{reportAlias: (*reportAlias)(r)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	if r.Category == "" && aux.Type != "" {
		r.Category = Category(strings.ToLower(aux.Type))
	}
	if r.Priority == "" && aux.Severity != "" {
		r.Priority = Priority(aux.Severity)
	}
	r.Status = NormalizeStatus(string(r.Status))

	created := aux.CreatedAt
	if len(created) == 0 || string(created) == "null" {
		created = aux.Timestamp
	}
	r.CreatedAt = parseInstant(created)

	return nil
}

// parseInstant reads an RFC 3339 string or epoch milliseconds. Anything
// else yields the zero time, which analytics treats as undefined.
func parseInstant(raw json.RawMessage) time.Time {
	if len(raw) == 0 || string(raw) == "null" {
		return time.Time{}
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
			return t
		}
		if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
			return time.UnixMilli(ms)
		}
		return time.Time{}
	}

	var ms float64
	if err := json.Unmarshal(raw, &ms); err == nil && ms > 0 {
		return time.UnixMilli(int64(ms))
	}
	return time.Time{}
}

// SubmitReportRequest is the JSON body of the legacy submit endpoint.
// The image has already been uploaded through /api/upload-image.
type SubmitReportRequest struct {
	Category    string         `json:"category" example:"pothole"`
	Type        string         `json:"type,omitempty"`
	Description string         `json:"description" example:"Deep pothole near the bus stop"`
	Location    Location       `json:"location"`
	ImageURL    string         `json:"imageUrl" binding:"required" example:"https://res.cloudinary.com/demo/image/upload/v1/reports/abc.jpg"`
	AIResult    *verify.Result `json:"aiResult,omitempty"`
}

// TransitionRequest asks for one lifecycle action
type TransitionRequest struct {
	Action Action `json:"action" binding:"required" example:"assign"`
	Team   string `json:"team,omitempty" example:"Road Repair - Unit A"`
}

// ListResponse is the admin incident listing page
type ListResponse struct {
	Items  []Report       `json:"items"`
	Total  int64          `json:"total"`
	Page   int            `json:"page"`
	Limit  int            `json:"limit"`
	Counts map[Status]int `json:"counts"`
}
