package teams

import (
	"context"

	"github.com/xyz-asif/nagaralert/internal/features/reports"
)

type Source interface {
	All(ctx context.Context) ([]reports.Report, error)
}

type Service struct {
	source Source
	roster []Team
}

func NewService(source Source) *Service {
	return &Service{source: source, roster: Roster}
}

func (s *Service) Board(ctx context.Context) (*Board, error) {
	items, err := s.source.All(ctx)
	if err != nil {
		return nil, err
	}
	b := BuildBoard(s.roster, items)
	return &b, nil
}

// BuildBoard counts each team's open and in-progress assignments. A team
// with in-progress work is Busy; otherwise it keeps its base availability.
func BuildBoard(roster []Team, items []reports.Report) Board {
	open := map[string]int{}
	active := map[string]int{}
	unassigned := 0

	for _, r := range items {
		status := reports.NormalizeStatus(string(r.Status))
		if status.IsTerminal() {
			continue
		}
		if r.Assignee == "" {
			if status == reports.StatusAccepted {
				unassigned++
			}
			continue
		}
		open[r.Assignee]++
		if status == reports.StatusInProgress {
			active[r.Assignee]++
		}
	}

	out := make([]Team, len(roster))
	for i, t := range roster {
		t.OpenTasks = open[t.Name]
		t.ActiveTasks = active[t.Name]
		if t.ActiveTasks > 0 {
			t.Availability = Busy
		}
		out[i] = t
	}
	return Board{Teams: out, Unassigned: unassigned}
}
