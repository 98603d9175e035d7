package reports

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func sampleReports() []Report {
	base := time.Date(2025, 1, 10, 12, 0, 0, 0, time.UTC)
	return []Report{
		{ID: "a1", Category: CategoryPothole, Status: StatusPending, UserID: "u1", Location: Location{Address: "Sector 4, Ranchi"}, CreatedAt: base},
		{ID: "b2", Category: CategoryGarbage, Status: "Verified", UserID: "u2", Location: Location{Address: "Old City"}, CreatedAt: base.Add(time.Hour)},
		{ID: "c3", Category: CategoryWater, Status: StatusResolved, UserID: "u1", Location: Location{Address: "Main Road"}, CreatedAt: base.Add(2 * time.Hour)},
	}
}

func TestFilter_StatusAll(t *testing.T) {
	got := Filter{Status: "All"}.Apply(sampleReports())
	assert.Len(t, got, 3)
	assert.Equal(t, "c3", got[0].ID, "newest first")
}

func TestFilter_StatusAlias(t *testing.T) {
	got := Filter{Status: "Verified"}.Apply(sampleReports())
	assert.Len(t, got, 1)
	assert.Equal(t, "b2", got[0].ID)

	got = Filter{Status: "Accepted"}.Apply(sampleReports())
	assert.Len(t, got, 1)
}

func TestFilter_Search(t *testing.T) {
	assert.Len(t, Filter{Search: "sector"}.Apply(sampleReports()), 1)
	assert.Len(t, Filter{Search: "WATER"}.Apply(sampleReports()), 1)
	assert.Len(t, Filter{Search: "b2"}.Apply(sampleReports()), 1)
	assert.Empty(t, Filter{Search: "nowhere"}.Apply(sampleReports()))
}

func TestFilter_ByUser(t *testing.T) {
	got := Filter{UserID: "u1"}.Apply(sampleReports())
	assert.Len(t, got, 2)
	for _, r := range got {
		assert.Equal(t, "u1", r.UserID)
	}
}

func TestCountByStatus(t *testing.T) {
	counts := CountByStatus(sampleReports())
	assert.Equal(t, 1, counts[StatusPending])
	assert.Equal(t, 1, counts[StatusAccepted])
	assert.Equal(t, 1, counts[StatusResolved])
	assert.Equal(t, 0, counts[StatusRejected])
}
