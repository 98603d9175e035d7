package reports

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportUnmarshal_LegacyFields(t *testing.T) {
	raw := `{"type":"Pothole","severity":"High","status":"Open","timestamp":1736937000000,"location":{"address":"Sector 4, City"}}`

	var r Report
	require.NoError(t, json.Unmarshal([]byte(raw), &r))

	assert.Equal(t, CategoryPothole, r.Category)
	assert.Equal(t, PriorityHigh, r.Priority)
	assert.Equal(t, StatusPending, r.Status)
	assert.True(t, r.CreatedAt.Equal(time.UnixMilli(1736937000000)))
	assert.Equal(t, "Sector 4, City", r.Location.Address)
}

func TestReportUnmarshal_CanonicalWins(t *testing.T) {
	raw := `{"category":"water","type":"garbage","status":"Verified","createdAt":"2025-01-15T10:30:00Z","timestamp":"2020-01-01T00:00:00Z"}`

	var r Report
	require.NoError(t, json.Unmarshal([]byte(raw), &r))

	assert.Equal(t, CategoryWater, r.Category)
	assert.Equal(t, StatusAccepted, r.Status)
	assert.Equal(t, 2025, r.CreatedAt.Year())
}

func TestReportUnmarshal_MissingCreatedAt(t *testing.T) {
	var r Report
	require.NoError(t, json.Unmarshal([]byte(`{"category":"light"}`), &r))
	assert.True(t, r.CreatedAt.IsZero())

	require.NoError(t, json.Unmarshal([]byte(`{"createdAt":"not a date"}`), &r))
	assert.True(t, r.CreatedAt.IsZero())
}

func TestReportJSONRoundTripKeepsInstants(t *testing.T) {
	created := time.Date(2025, 2, 1, 8, 0, 0, 0, time.UTC)
	in := Report{ID: "r1", Category: CategoryFire, Status: StatusInProgress, CreatedAt: created, Assignee: "Rapid Response - Fire"}

	data, err := json.Marshal(in)
	require.NoError(t, err)

	var out Report
	require.NoError(t, json.Unmarshal(data, &out))
	assert.True(t, out.CreatedAt.Equal(created))
	assert.Equal(t, in.Assignee, out.Assignee)
	assert.Equal(t, StatusInProgress, out.Status)
}

func TestNormalizeStatus(t *testing.T) {
	assert.Equal(t, StatusPending, NormalizeStatus(""))
	assert.Equal(t, StatusPending, NormalizeStatus("open"))
	assert.Equal(t, StatusAccepted, NormalizeStatus("Verified"))
	assert.Equal(t, StatusInProgress, NormalizeStatus("in progress"))
	assert.True(t, StatusResolved.IsTerminal())
	assert.False(t, StatusAccepted.IsTerminal())
	assert.False(t, Status("Escalated").Valid())
}
