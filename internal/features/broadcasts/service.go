package broadcasts

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/xyz-asif/nagaralert/internal/features/users"
	"github.com/xyz-asif/nagaralert/internal/pkg/logger"
)

// CitizenSource lists the citizens a broadcast can reach
type CitizenSource interface {
	Citizens(ctx context.Context) ([]users.User, error)
}

// Alerter pushes a stored broadcast to live subscribers
type Alerter interface {
	PublishAlert(ctx context.Context, alert interface{}) error
}

type Service struct {
	repo     Repository
	citizens CitizenSource
	alerter  Alerter
	now      func() time.Time
	newID    func() string
}

func NewService(repo Repository, citizens CitizenSource, alerter Alerter) *Service {
	return &Service{
		repo:     repo,
		citizens: citizens,
		alerter:  alerter,
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

// Send stores the broadcast with its computed reach, then pushes it live.
// A failed push is logged; the broadcast is already recorded.
func (s *Service) Send(ctx context.Context, sentBy string, req CreateBroadcastRequest) (*Broadcast, error) {
	citizens, err := s.citizens.Citizens(ctx)
	if err != nil {
		return nil, err
	}

	b := &Broadcast{
		ID:      s.newID(),
		Area:    strings.TrimSpace(req.Area),
		Type:    req.Type,
		Message: strings.TrimSpace(req.Message),
		Reach:   Reach(citizens, req.Area),
		Status:  StatusSent,
		SentBy:  sentBy,
		SentAt:  s.now().UTC(),
	}

	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}

	if s.alerter != nil {
		if err := s.alerter.PublishAlert(ctx, b); err != nil {
			logger.Warn("broadcast %s stored but not pushed: %v", b.ID, err)
		}
	}
	return b, nil
}

// History lists broadcasts newest first
func (s *Service) History(ctx context.Context) ([]Broadcast, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(items, func(i, j int) bool {
		if !items[i].SentAt.Equal(items[j].SentAt) {
			return items[i].SentAt.After(items[j].SentAt)
		}
		return items[i].ID < items[j].ID
	})
	return items, nil
}

// Reach counts citizens whose address mentions the area, ignoring case.
// A Whole City broadcast reaches everyone.
func Reach(citizens []users.User, area string) int {
	area = strings.ToLower(strings.TrimSpace(area))
	if area == "" {
		return 0
	}
	if strings.HasPrefix(area, strings.ToLower(WholeCity)) {
		return len(citizens)
	}

	n := 0
	for _, c := range citizens {
		if strings.Contains(strings.ToLower(c.Address), area) {
			n++
		}
	}
	return n
}
