package reports

import (
	"errors"
	"math"
	"strings"
	"time"

	"github.com/xyz-asif/nagaralert/internal/features/verify"
)

// KarmaPerVerifiedReport is awarded to a citizen whose submission the AI verified
const KarmaPerVerifiedReport = 50

// NoAnalysis is stored when verification was skipped or failed
const NoAnalysis = "No analysis available"

var (
	ErrImageRequired = errors.New("image is required")
	ErrUploadFailed  = errors.New("image upload failed")
)

// Draft collects everything known about a submission before it is written
type Draft struct {
	UserID      string
	ImageURL    string
	Category    string
	Description string
	Location    Location
	AI          *verify.Result
}

// categoryKeywords is checked in order, first match wins
var categoryKeywords = []struct {
	category Category
	words    []string
}{
	{CategoryPothole, []string{"pothole"}},
	{CategoryGarbage, []string{"garbage", "trash"}},
	{CategoryLight, []string{"light", "dark"}},
	{CategoryWater, []string{"water", "flood"}},
}

// DeriveCategory picks a category from the AI explanation
func DeriveCategory(explanation string) Category {
	text := strings.ToLower(explanation)
	for _, kw := range categoryKeywords {
		for _, w := range kw.words {
			if strings.Contains(text, w) {
				return kw.category
			}
		}
	}
	return CategoryGeneral
}

// ConfidencePercent converts a 0..1 score to a whole percentage in 0..100
func ConfidencePercent(score float64) int {
	if math.IsNaN(score) {
		return 0
	}
	p := int(math.Round(score * 100))
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}

var basePriority = map[Category]Priority{
	CategoryFire:    PriorityCritical,
	CategoryWater:   PriorityHigh,
	CategoryPothole: PriorityHigh,
	CategoryLight:   PriorityMedium,
	CategoryGarbage: PriorityMedium,
	CategoryGeneral: PriorityLow,
}

var priorityLadder = []Priority{PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical}

// DerivePriority ranks a report by category, one level lower when the AI
// did not confirm it
func DerivePriority(c Category, aiVerified bool) Priority {
	p, ok := basePriority[c]
	if !ok {
		p = PriorityLow
	}
	if aiVerified {
		return p
	}
	for i, step := range priorityLadder {
		if step == p && i > 0 {
			return priorityLadder[i-1]
		}
	}
	return PriorityLow
}

// Build composes a new Pending report. The image must already be uploaded.
func Build(d Draft, now time.Time) (*Report, error) {
	if strings.TrimSpace(d.ImageURL) == "" {
		return nil, ErrImageRequired
	}

	r := &Report{
		Description: strings.TrimSpace(d.Description),
		Location:    d.Location,
		ImageURL:    d.ImageURL,
		Status:      StatusPending,
		UserID:      d.UserID,
		AIAnalysis:  NoAnalysis,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if d.AI != nil {
		r.AIVerified = d.AI.Verified
		r.AIConfidence = ConfidencePercent(d.AI.Confidence)
		if strings.TrimSpace(d.AI.Explanation) != "" {
			r.AIAnalysis = d.AI.Explanation
		}
	}

	if c, ok := ParseCategory(d.Category); ok {
		r.Category = c
	} else if d.AI != nil {
		r.Category = DeriveCategory(d.AI.Explanation)
	} else {
		r.Category = CategoryGeneral
	}

	r.Priority = DerivePriority(r.Category, r.AIVerified)

	return r, nil
}
