package notifications

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/xyz-asif/nagaralert/internal/features/reports"
	"github.com/xyz-asif/nagaralert/internal/pkg/logger"
	"github.com/xyz-asif/nagaralert/internal/pkg/pagination"
)

type Service struct {
	repo  Repository
	now   func() time.Time
	newID func() string
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now, newID: uuid.NewString}
}

func (s *Service) notify(ctx context.Context, n Notification) {
	n.ID = s.newID()
	n.IsRead = false
	n.CreatedAt = s.now().UTC()
	if err := s.repo.Create(ctx, &n); err != nil {
		logger.Error("Failed to notify %s (%s): %v", n.RecipientID, n.Type, err)
	}
}

// KarmaAwarded tells a citizen about points credited for a verified report
func (s *Service) KarmaAwarded(ctx context.Context, uid string, points int) {
	s.notify(ctx, Notification{
		RecipientID: uid,
		Type:        TypeKarma,
		Title:       fmt.Sprintf("%d Karma Points", points),
		Message:     "Your report was verified. Thanks for keeping the city safe!",
		Points:      points,
	})
}

// StatusChanged tells the reporter that an official moved their report
func (s *Service) StatusChanged(ctx context.Context, before, after reports.Report) {
	if after.UserID == "" || before.Status == after.Status {
		return
	}
	s.notify(ctx, Notification{
		RecipientID: after.UserID,
		Type:        TypeStatus,
		ReportID:    after.ID,
		Title:       "Report " + string(after.Status),
		Message:     statusMessage(after),
	})
}

func statusMessage(r reports.Report) string {
	switch r.Status {
	case reports.StatusAccepted:
		return "Your report was accepted and is waiting for a field team."
	case reports.StatusInProgress:
		return r.Assignee + " is working on your report."
	case reports.StatusResolved:
		return "Your report has been resolved."
	case reports.StatusRejected:
		return "Your report was reviewed and rejected."
	default:
		return "Your report is now " + string(r.Status) + "."
	}
}

// List returns one page of the recipient's notifications, unread first
func (s *Service) List(ctx context.Context, recipientID string, query NotificationListQuery) (*PaginatedNotificationsResponse, error) {
	items, err := s.repo.ListForRecipient(ctx, recipientID)
	if err != nil {
		return nil, err
	}
	sortUnreadFirst(items)

	unread := countUnread(items)
	if query.UnreadOnly {
		items = items[:unread]
	}

	p := pagination.New(query.Page, query.Limit, int64(len(items)))
	start, end := p.Bounds()

	resp := &PaginatedNotificationsResponse{
		Notifications: items[start:end],
		UnreadCount:   unread,
	}
	resp.Pagination.Page = p.Page
	resp.Pagination.Limit = p.Limit
	resp.Pagination.Total = p.Total
	resp.Pagination.TotalPages = p.Pages
	resp.Pagination.HasMore = p.HasNext
	return resp, nil
}

func (s *Service) UnreadCount(ctx context.Context, recipientID string) (int, error) {
	items, err := s.repo.ListForRecipient(ctx, recipientID)
	if err != nil {
		return 0, err
	}
	return countUnread(items), nil
}

func (s *Service) MarkRead(ctx context.Context, recipientID, id string) error {
	return s.repo.MarkRead(ctx, recipientID, id)
}

func (s *Service) MarkAllRead(ctx context.Context, recipientID string) (int64, error) {
	return s.repo.MarkAllRead(ctx, recipientID)
}

func sortUnreadFirst(items []Notification) {
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].IsRead != items[j].IsRead {
			return !items[i].IsRead
		}
		if !items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].CreatedAt.After(items[j].CreatedAt)
		}
		return items[i].ID < items[j].ID
	})
}

func countUnread(items []Notification) int {
	n := 0
	for _, item := range items {
		if !item.IsRead {
			n++
		}
	}
	return n
}
