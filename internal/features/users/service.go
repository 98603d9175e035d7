package users

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/xyz-asif/nagaralert/internal/pkg/logger"
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// Get returns a profile by uid
func (s *Service) Get(ctx context.Context, uid string) (*User, error) {
	return s.repo.Get(ctx, uid)
}

// UpdateProfile applies the editable fields that apply to the user's role
func (s *Service) UpdateProfile(ctx context.Context, uid string, req UpdateProfileRequest) (*User, error) {
	u, err := s.repo.Get(ctx, uid)
	if err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	set := func(key string, v *string, dst *string) {
		if v != nil {
			trimmed := strings.TrimSpace(*v)
			fields[key] = trimmed
			*dst = trimmed
		}
	}
	set("firstName", req.FirstName, &u.FirstName)
	set("lastName", req.LastName, &u.LastName)
	set("mobile", req.Mobile, &u.Mobile)
	if u.Role == RoleCitizen {
		set("address", req.Address, &u.Address)
	} else {
		set("department", req.Department, &u.Department)
	}

	if len(fields) == 0 {
		return u, nil
	}

	u.UpdatedAt = s.now()
	fields["updatedAt"] = u.UpdatedAt
	if err := s.repo.Update(ctx, u.Role, uid, fields); err != nil {
		return nil, err
	}
	return u, nil
}

// AddPoints credits karma. Only positive deltas are accepted.
func (s *Service) AddPoints(ctx context.Context, uid string, delta int) error {
	if delta <= 0 {
		return ErrInvalidDelta
	}
	if err := s.repo.AddPoints(ctx, uid, delta); err != nil {
		return err
	}
	logger.Info("Awarded %d karma to %s", delta, uid)
	return nil
}

// Citizens returns every citizen profile
func (s *Service) Citizens(ctx context.Context) ([]User, error) {
	return s.repo.ListByRole(ctx, RoleCitizen)
}

// Leaderboard ranks citizens by points
func (s *Service) Leaderboard(ctx context.Context, callerUID string, limit int) ([]LeaderboardEntry, error) {
	citizens, err := s.repo.ListByRole(ctx, RoleCitizen)
	if err != nil {
		return nil, err
	}
	return Rank(citizens, callerUID, limit), nil
}

// Rank orders by points descending, ties by name then uid. limit <= 0 keeps everyone.
func Rank(citizens []User, callerUID string, limit int) []LeaderboardEntry {
	sorted := append([]User(nil), citizens...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Points != sorted[j].Points {
			return sorted[i].Points > sorted[j].Points
		}
		ni, nj := strings.ToLower(sorted[i].FullName()), strings.ToLower(sorted[j].FullName())
		if ni != nj {
			return ni < nj
		}
		return sorted[i].UID < sorted[j].UID
	})

	entries := make([]LeaderboardEntry, 0, len(sorted))
	for i, u := range sorted {
		rank := i + 1
		if limit > 0 && rank > limit && u.UID != callerUID {
			continue
		}
		entries = append(entries, LeaderboardEntry{
			Rank:   rank,
			UID:    u.UID,
			Name:   u.FullName(),
			Points: u.Points,
			Badge:  badgeFor(rank),
			IsMe:   u.UID == callerUID,
		})
	}
	return entries
}

func badgeFor(rank int) Badge {
	switch rank {
	case 1:
		return BadgeGold
	case 2:
		return BadgeSilver
	case 3:
		return BadgeBronze
	}
	return BadgeShield
}
