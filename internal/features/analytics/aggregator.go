package analytics

import (
	"math"
	"sort"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/xyz-asif/nagaralert/internal/features/reports"
)

const (
	trendDays       = 7
	maxAreas        = 5
	maxAreaNameLen  = 15
	otherCategory   = "Other"
	unknownArea     = "Unknown"
	noDataArea      = "No Data"
	dateKeyLayout   = "2006-01-02"
	dateLabelLayout = "Jan 2"
)

var (
	heatmapDays  = []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}
	heatmapBands = []string{"00-05", "05-10", "10-15", "15-20", "20-24"}
)

// Aggregate computes every view against a single reference instant.
// loc decides calendar days and hours; nil means UTC.
func Aggregate(items []reports.Report, now time.Time, loc *time.Location) Dashboard {
	if loc == nil {
		loc = time.UTC
	}
	return Dashboard{
		GeneratedAt: now,
		Categories:  CategoryDistribution(items),
		Trend:       WeeklyTrend(items, now, loc),
		Areas:       AreaAverageAge(items, now),
		Heatmap:     BuildHeatmap(items, loc),
		Summary:     Summarize(items, now, loc),
	}
}

// CategoryDistribution counts reports per title-cased category. Reports
// without a category land in "Other". Ordered by count, then name.
func CategoryDistribution(items []reports.Report) []CategoryCount {
	caser := cases.Title(language.English)
	counts := map[string]int{}
	for _, r := range items {
		name := strings.TrimSpace(string(r.Category))
		if name == "" {
			name = otherCategory
		} else {
			name = caser.String(strings.ToLower(name))
		}
		counts[name]++
	}

	out := make([]CategoryCount, 0, len(counts))
	for name, n := range counts {
		out = append(out, CategoryCount{Name: name, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// WeeklyTrend returns seven zeroed day buckets ending today, oldest first.
// Reports outside the window or without createdAt are dropped.
func WeeklyTrend(items []reports.Report, now time.Time, loc *time.Location) []TrendPoint {
	today := now.In(loc)
	start := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, loc).AddDate(0, 0, -(trendDays - 1))

	points := make([]TrendPoint, trendDays)
	index := make(map[string]int, trendDays)
	for i := 0; i < trendDays; i++ {
		day := start.AddDate(0, 0, i)
		key := day.Format(dateKeyLayout)
		points[i] = TrendPoint{Date: key, Label: day.Format(dateLabelLayout)}
		index[key] = i
	}

	for _, r := range items {
		if r.CreatedAt.IsZero() {
			continue
		}
		if i, ok := index[r.CreatedAt.In(loc).Format(dateKeyLayout)]; ok {
			points[i].Count++
		}
	}
	return points
}

// AreaName is the first comma segment of an address, shortened for charts
func AreaName(address string) string {
	area := strings.TrimSpace(strings.SplitN(address, ",", 2)[0])
	if area == "" {
		return unknownArea
	}
	if runes := []rune(area); len(runes) > maxAreaNameLen {
		return string(runes[:maxAreaNameLen]) + "..."
	}
	return area
}

// AreaAverageAge ranks areas by the mean hours since their reports were
// created and keeps the top five
func AreaAverageAge(items []reports.Report, now time.Time) []AreaAge {
	type acc struct {
		hours float64
		n     int
	}
	groups := map[string]*acc{}
	for _, r := range items {
		if r.CreatedAt.IsZero() {
			continue
		}
		name := AreaName(r.Location.Address)
		g, ok := groups[name]
		if !ok {
			g = &acc{}
			groups[name] = g
		}
		g.hours += now.Sub(r.CreatedAt).Hours()
		g.n++
	}

	if len(groups) == 0 {
		return []AreaAge{{Area: noDataArea}}
	}

	out := make([]AreaAge, 0, len(groups))
	for name, g := range groups {
		out = append(out, AreaAge{
			Area:     name,
			AvgHours: math.Round(g.hours/float64(g.n)*10) / 10,
			Reports:  g.n,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].AvgHours != out[j].AvgHours {
			return out[i].AvgHours > out[j].AvgHours
		}
		return out[i].Area < out[j].Area
	})
	if len(out) > maxAreas {
		out = out[:maxAreas]
	}
	return out
}

// BuildHeatmap puts each report with a createdAt into exactly one cell
func BuildHeatmap(items []reports.Report, loc *time.Location) Heatmap {
	h := Heatmap{Days: heatmapDays, Bands: heatmapBands}
	for _, r := range items {
		if r.CreatedAt.IsZero() {
			continue
		}
		t := r.CreatedAt.In(loc)
		day := (int(t.Weekday()) + 6) % 7
		band := t.Hour() / 5
		h.Cells[day][band]++
		if h.Cells[day][band] > h.Max {
			h.Max = h.Cells[day][band]
		}
	}
	return h
}

// Summarize computes the dashboard counters
func Summarize(items []reports.Report, now time.Time, loc *time.Location) Summary {
	s := Summary{Total: len(items), ByStatus: map[string]int{}}
	for status, n := range reports.CountByStatus(items) {
		s.ByStatus[string(status)] = n
	}

	today := now.In(loc).Format(dateKeyLayout)
	for _, r := range items {
		status := reports.NormalizeStatus(string(r.Status))
		open := !status.IsTerminal()
		if open {
			s.OpenIncidents++
			if r.Priority == reports.PriorityHigh || r.Priority == reports.PriorityCritical {
				s.HighSeverity++
			}
		}
		if r.AIVerified && status == reports.StatusPending {
			s.AIFlagged++
		}
		if status == reports.StatusResolved && r.ResolvedAt != nil && r.ResolvedAt.In(loc).Format(dateKeyLayout) == today {
			s.ResolvedToday++
		}
	}
	return s
}
