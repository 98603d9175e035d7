package reports

import (
	"sort"
	"strings"
)

// Filter narrows an in-memory report list
type Filter struct {
	Status string `form:"status"`
	Search string `form:"search"`
	UserID string `form:"-"`
}

// Apply returns matching reports, newest first. The input slice is not modified.
func (f Filter) Apply(items []Report) []Report {
	status := strings.TrimSpace(f.Status)
	matchAll := status == "" || strings.EqualFold(status, "all")
	want := NormalizeStatus(status)
	search := strings.ToLower(strings.TrimSpace(f.Search))

	out := make([]Report, 0, len(items))
	for _, r := range items {
		if f.UserID != "" && r.UserID != f.UserID {
			continue
		}
		if !matchAll && NormalizeStatus(string(r.Status)) != want {
			continue
		}
		if search != "" && !matchesSearch(r, search) {
			continue
		}
		out = append(out, r)
	}

	SortNewestFirst(out)
	return out
}

func matchesSearch(r Report, term string) bool {
	return strings.Contains(strings.ToLower(r.ID), term) ||
		strings.Contains(strings.ToLower(r.Location.Address), term) ||
		strings.Contains(strings.ToLower(string(r.Category)), term)
}

// SortNewestFirst orders by createdAt descending, then id for stability
func SortNewestFirst(items []Report) {
	sort.SliceStable(items, func(i, j int) bool {
		if !items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].CreatedAt.After(items[j].CreatedAt)
		}
		return items[i].ID < items[j].ID
	})
}

// CountByStatus tallies reports per canonical status
func CountByStatus(items []Report) map[Status]int {
	counts := map[Status]int{
		StatusPending:    0,
		StatusAccepted:   0,
		StatusInProgress: 0,
		StatusResolved:   0,
		StatusRejected:   0,
	}
	for _, r := range items {
		counts[NormalizeStatus(string(r.Status))]++
	}
	return counts
}
