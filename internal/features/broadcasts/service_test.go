package broadcasts

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xyz-asif/nagaralert/internal/features/users"
	"github.com/xyz-asif/nagaralert/internal/middleware"
	"github.com/xyz-asif/nagaralert/internal/pkg/response"
)

type memRepo struct {
	mu    sync.Mutex
	items []Broadcast
	err   error
}

func (m *memRepo) Create(_ context.Context, b *Broadcast) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.items = append(m.items, *b)
	return nil
}

func (m *memRepo) List(_ context.Context) ([]Broadcast, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Broadcast(nil), m.items...), m.err
}

type citizenList []users.User

func (c citizenList) Citizens(_ context.Context) ([]users.User, error) { return c, nil }

type recordingAlerter struct {
	alerts []interface{}
	err    error
}

func (r *recordingAlerter) PublishAlert(_ context.Context, alert interface{}) error {
	r.alerts = append(r.alerts, alert)
	return r.err
}

var citizens = citizenList{
	{UID: "c1", Address: "12 Main Road, Sector 4, Ranchi"},
	{UID: "c2", Address: "sector 4 market"},
	{UID: "c3", Address: "Old City, Ranchi"},
	{UID: "c4"},
}

var sentAt = time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC)

func newTestService(repo Repository, alerter Alerter) *Service {
	svc := NewService(repo, citizens, alerter)
	svc.now = func() time.Time { return sentAt }
	svc.newID = func() string { return "b-1" }
	return svc
}

func TestReach(t *testing.T) {
	assert.Equal(t, 2, Reach(citizens, "Sector 4"))
	assert.Equal(t, 1, Reach(citizens, " old city "))
	assert.Equal(t, 0, Reach(citizens, "Civil Lines"))
	assert.Equal(t, 4, Reach(citizens, "Whole City (Emergency Only)"))
	assert.Equal(t, 0, Reach(citizens, ""))
}

func TestSend_StoresAndPushes(t *testing.T) {
	repo := &memRepo{}
	alerter := &recordingAlerter{}
	svc := newTestService(repo, alerter)

	b, err := svc.Send(context.Background(), "admin-1", CreateBroadcastRequest{
		Area: "Sector 4", Type: AlertFire, Message: " Avoid Central Market ",
	})

	require.NoError(t, err)
	assert.Equal(t, Broadcast{
		ID: "b-1", Area: "Sector 4", Type: AlertFire, Message: "Avoid Central Market",
		Reach: 2, Status: StatusSent, SentBy: "admin-1", SentAt: sentAt,
	}, *b)
	require.Len(t, repo.items, 1)
	require.Len(t, alerter.alerts, 1)
	assert.Same(t, b, alerter.alerts[0])
}

func TestSend_PushFailureKeepsBroadcast(t *testing.T) {
	repo := &memRepo{}
	svc := newTestService(repo, &recordingAlerter{err: errors.New("relay down")})

	_, err := svc.Send(context.Background(), "admin-1", CreateBroadcastRequest{Area: "Old City", Type: AlertGeneral, Message: "Water cut"})

	require.NoError(t, err)
	assert.Len(t, repo.items, 1)
}

func TestSend_StoreFailureSkipsPush(t *testing.T) {
	alerter := &recordingAlerter{}
	svc := newTestService(&memRepo{err: errors.New("down")}, alerter)

	_, err := svc.Send(context.Background(), "admin-1", CreateBroadcastRequest{Area: "Old City", Type: AlertGeneral, Message: "Water cut"})

	require.Error(t, err)
	assert.Empty(t, alerter.alerts)
}

func TestHistory_NewestFirst(t *testing.T) {
	repo := &memRepo{items: []Broadcast{
		{ID: "old", SentAt: sentAt.Add(-time.Hour)},
		{ID: "new", SentAt: sentAt},
		{ID: "mid", SentAt: sentAt.Add(-time.Minute)},
	}}

	items, err := newTestService(repo, nil).History(context.Background())

	require.NoError(t, err)
	ids := []string{items[0].ID, items[1].ID, items[2].ID}
	assert.Equal(t, []string{"new", "mid", "old"}, ids)
}

func TestValidateCreateBroadcast(t *testing.T) {
	ok := CreateBroadcastRequest{Area: "Sector 4", Type: AlertRoadBlock, Message: "Road closed"}
	assert.NoError(t, ValidateCreateBroadcast(&ok))

	bad := ok
	bad.Type = "Meteor Strike"
	assert.Error(t, ValidateCreateBroadcast(&bad))

	long := ok
	long.Message = strings.Repeat("x", maxMessageLength+1)
	assert.Error(t, ValidateCreateBroadcast(&long))
}

func newTestRouter(svc *Service, role string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	auth := func(c *gin.Context) {
		c.Set("userID", "admin-1")
		c.Set("role", role)
		c.Next()
	}
	RegisterRoutes(r.Group("/api/v1"), svc, auth)
	return r
}

func TestHandler_SendBroadcast(t *testing.T) {
	repo := &memRepo{}
	r := newTestRouter(newTestService(repo, nil), middleware.RoleAdmin)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/broadcasts", strings.NewReader(`{"area":"Sector 4","type":"Fire Alert","message":"Avoid the market"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	var body struct {
		Success bool      `json:"success"`
		Data    Broadcast `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 2, body.Data.Reach)
	assert.Len(t, repo.items, 1)
}

func TestHandler_SendBroadcastRequiresAdmin(t *testing.T) {
	repo := &memRepo{}
	r := newTestRouter(newTestService(repo, nil), middleware.RoleCitizen)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/broadcasts", strings.NewReader(`{"area":"Sector 4","type":"Fire Alert","message":"x"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Empty(t, repo.items)
}

func TestHandler_SendBroadcastValidation(t *testing.T) {
	r := newTestRouter(newTestService(&memRepo{}, nil), middleware.RoleAdmin)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/broadcasts", strings.NewReader(`{"area":"Sector 4","type":"Meteor","message":"x"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	var body response.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "VALIDATION_FAILED", body.Code)
}

func TestHandler_ListBroadcastsForCitizens(t *testing.T) {
	repo := &memRepo{items: []Broadcast{{ID: "b-9", SentAt: sentAt}}}
	r := newTestRouter(newTestService(repo, nil), middleware.RoleCitizen)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/broadcasts", nil))

	assert.Equal(t, http.StatusOK, w.Code)
}
