package analytics

import (
	"context"
	"time"

	"github.com/xyz-asif/nagaralert/internal/features/reports"
)

// Source supplies the full report collection
type Source interface {
	All(ctx context.Context) ([]reports.Report, error)
}

type Service struct {
	source Source
	loc    *time.Location
	now    func() time.Time
}

func NewService(source Source, loc *time.Location) *Service {
	if loc == nil {
		loc = time.UTC
	}
	return &Service{source: source, loc: loc, now: time.Now}
}

// Dashboard reads the collection once and derives every view from it
func (s *Service) Dashboard(ctx context.Context) (*Dashboard, error) {
	items, err := s.source.All(ctx)
	if err != nil {
		return nil, err
	}
	d := Aggregate(items, s.now(), s.loc)
	return &d, nil
}

func (s *Service) Summary(ctx context.Context) (*Summary, error) {
	items, err := s.source.All(ctx)
	if err != nil {
		return nil, err
	}
	sum := Summarize(items, s.now(), s.loc)
	return &sum, nil
}
