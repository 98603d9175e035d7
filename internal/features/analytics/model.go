package analytics

import "time"

// CategoryCount is one slice of the category distribution
type CategoryCount struct {
	Name  string `json:"name" example:"Pothole"`
	Count int    `json:"count" example:"12"`
}

// TrendPoint is one day of the 7-day trend
type TrendPoint struct {
	Date  string `json:"date" example:"2025-01-15"`
	Label string `json:"label" example:"Jan 15"`
	Count int    `json:"count" example:"4"`
}

// AreaAge is the mean age in hours of reports in one area
type AreaAge struct {
	Area     string  `json:"area" example:"Sector 4"`
	AvgHours float64 `json:"avgHours" example:"12.5"`
	Reports  int     `json:"reports" example:"3"`
}

// Heatmap buckets reports by weekday (Mon..Sun) and five time-of-day bands
type Heatmap struct {
	Days  []string  `json:"days"`
	Bands []string  `json:"bands"`
	Cells [7][5]int `json:"cells"`
	Max   int       `json:"max"`
}

// Summary holds the dashboard counters
type Summary struct {
	Total         int            `json:"total"`
	OpenIncidents int            `json:"openIncidents"`
	HighSeverity  int            `json:"highSeverity"`
	AIFlagged     int            `json:"aiFlagged"`
	ResolvedToday int            `json:"resolvedToday"`
	ByStatus      map[string]int `json:"byStatus"`
}

// Dashboard is every derived view computed in one pass
type Dashboard struct {
	GeneratedAt time.Time       `json:"generatedAt"`
	Categories  []CategoryCount `json:"categories"`
	Trend       []TrendPoint    `json:"trend"`
	Areas       []AreaAge       `json:"areas"`
	Heatmap     Heatmap         `json:"heatmap"`
	Summary     Summary         `json:"summary"`
}
