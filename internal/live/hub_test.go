package live

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xyz-asif/nagaralert/internal/features/reports"
)

type staticSource struct {
	mu    sync.Mutex
	items []reports.Report
	loads int
}

func (s *staticSource) All(context.Context) ([]reports.Report, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loads++
	return append([]reports.Report(nil), s.items...), nil
}

func (s *staticSource) set(items ...reports.Report) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = items
}

type chanRelay struct {
	published chan []byte
	incoming  chan []byte
}

func newChanRelay() *chanRelay {
	return &chanRelay{published: make(chan []byte, 16), incoming: make(chan []byte, 16)}
}

func (r *chanRelay) Publish(_ context.Context, msg []byte) error {
	r.published <- msg
	return nil
}

func (r *chanRelay) Subscribe(context.Context) (<-chan []byte, error) {
	return r.incoming, nil
}

func startHub(t *testing.T, h *Hub) func() {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		h.Run(ctx)
		close(done)
	}()
	return func() {
		cancel()
		<-done
	}
}

func nextEvent(t *testing.T, ch <-chan Event) Event {
	t.Helper()
	select {
	case ev, ok := <-ch:
		require.True(t, ok, "channel closed")
		return ev
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for event")
	}
	return Event{}
}

// waitForSize skips stale snapshots until one with n reports arrives
func waitForSize(t *testing.T, ch <-chan Event, n int) Event {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		select {
		case ev, ok := <-ch:
			require.True(t, ok, "channel closed")
			if len(ev.Reports) == n {
				return ev
			}
		case <-deadline:
			t.Fatalf("no snapshot with %d reports", n)
		}
	}
}

func twoOwners() []reports.Report {
	return []reports.Report{
		{ID: "r1", UserID: "u1", Status: reports.StatusPending},
		{ID: "r2", UserID: "u2", Status: reports.StatusAccepted},
	}
}

func TestHub_CitizenSeesOwnReports(t *testing.T) {
	src := &staticSource{items: twoOwners()}
	h := NewHub(src, nil)
	stop := startHub(t, h)
	defer stop()

	citizen := h.Subscribe("u1", false)
	admin := h.Subscribe("admin", true)

	ev := nextEvent(t, citizen.Snapshots())
	assert.Equal(t, KindSnapshot, ev.Kind)
	require.Len(t, ev.Reports, 1)
	assert.Equal(t, "r1", ev.Reports[0].ID)

	assert.Len(t, nextEvent(t, admin.Snapshots()).Reports, 2)
}

func TestHub_ReportsChangedPushesNewSnapshot(t *testing.T) {
	src := &staticSource{items: twoOwners()[:1]}
	h := NewHub(src, nil)
	stop := startHub(t, h)
	defer stop()

	sub := h.Subscribe("admin", true)
	require.Len(t, nextEvent(t, sub.Snapshots()).Reports, 1)

	src.set(twoOwners()...)
	h.ReportsChanged(context.Background())

	waitForSize(t, sub.Snapshots(), 2)
}

func TestHub_SlowSubscriberGetsLatestOnly(t *testing.T) {
	src := &staticSource{}
	h := NewHub(src, nil)
	sub := h.Subscribe("admin", true)

	src.set(twoOwners()[:1]...)
	h.reload(context.Background())
	src.set(twoOwners()...)
	h.reload(context.Background())

	ev := nextEvent(t, sub.Snapshots())
	assert.Len(t, ev.Reports, 2)
	select {
	case <-sub.Snapshots():
		t.Fatal("stale snapshot was queued")
	default:
	}

	sub.Close()
	assert.Zero(t, h.Subscribers())
}

func TestHub_SubscribeNeverQueuesOlderSnapshot(t *testing.T) {
	src := &staticSource{items: twoOwners()[:1]}
	h := NewHub(src, nil)
	h.reload(context.Background())

	sub := h.Subscribe("admin", true)
	stale := h.Latest()

	// A reload lands between Subscribe reading the snapshot and offering it
	src.set(twoOwners()...)
	h.reload(context.Background())
	sub.offer(stale, 1)

	ev := nextEvent(t, sub.Snapshots())
	assert.Len(t, ev.Reports, 2)
	select {
	case ev := <-sub.Snapshots():
		t.Fatalf("unexpected snapshot with %d reports", len(ev.Reports))
	default:
	}
}

func TestHub_AlertsReachEverySubscriber(t *testing.T) {
	h := NewHub(&staticSource{}, nil)
	a := h.Subscribe("u1", false)
	b := h.Subscribe("u2", false)
	defer a.Close()
	defer b.Close()

	require.NoError(t, h.PublishAlert(context.Background(), map[string]string{"area": "Sector 4"}))

	for _, s := range []*Subscription{a, b} {
		ev := nextEvent(t, s.Alerts())
		assert.Equal(t, KindAlert, ev.Kind)
		assert.JSONEq(t, `{"area":"Sector 4"}`, string(ev.Alert))
	}
}

func TestHub_RelayCrossInstance(t *testing.T) {
	src := &staticSource{items: twoOwners()[:1]}
	relay := newChanRelay()
	h := NewHub(src, relay)
	stop := startHub(t, h)
	defer stop()

	sub := h.Subscribe("admin", true)
	require.Len(t, nextEvent(t, sub.Snapshots()).Reports, 1)

	// own notifications are published but not echoed back
	h.ReportsChanged(context.Background())
	var own relayMessage
	require.NoError(t, json.Unmarshal(<-relay.published, &own))
	assert.Equal(t, KindSnapshot, own.Kind)

	src.set(twoOwners()...)
	msg, _ := json.Marshal(relayMessage{Origin: "other-instance", Kind: KindSnapshot})
	relay.incoming <- msg
	waitForSize(t, sub.Snapshots(), 2)

	alert, _ := json.Marshal(relayMessage{Origin: "other-instance", Kind: KindAlert, Payload: json.RawMessage(`{"type":"Fire Alert"}`)})
	relay.incoming <- alert
	assert.JSONEq(t, `{"type":"Fire Alert"}`, string(nextEvent(t, sub.Alerts()).Alert))
}

func TestHub_ShutdownClosesSubscriptions(t *testing.T) {
	h := NewHub(&staticSource{}, nil)
	stop := startHub(t, h)
	sub := h.Subscribe("u1", false)
	stop()

	for range sub.Snapshots() {
	}
	_, ok := <-sub.Alerts()
	assert.False(t, ok)

	late := h.Subscribe("u2", false)
	_, ok = <-late.Snapshots()
	assert.False(t, ok)
}
