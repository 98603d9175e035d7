package live

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/xyz-asif/nagaralert/internal/features/reports"
	"github.com/xyz-asif/nagaralert/internal/pkg/logger"
)

// Event kinds pushed to subscribers
const (
	KindSnapshot = "snapshot"
	KindAlert    = "alert"
)

// Source yields the full report collection
type Source interface {
	All(ctx context.Context) ([]reports.Report, error)
}

// Event is one websocket frame
type Event struct {
	Kind    string           `json:"kind"`
	Reports []reports.Report `json:"reports,omitempty"`
	Alert   json.RawMessage  `json:"alert,omitempty"`
	At      time.Time        `json:"at"`
}

// Hub keeps the latest report snapshot and fans it out to subscribers.
// Slow subscribers only ever receive the newest snapshot.
type Hub struct {
	source   Source
	relay    Relay
	origin   string
	loadTime time.Duration

	refresh chan struct{}

	mu     sync.RWMutex
	subs   map[*Subscription]struct{}
	latest []reports.Report
	// version increases with every reload so a subscriber never swaps a
	// newer snapshot for an older one
	version uint64
	loaded  bool
	closed  bool
}

// NewHub creates a hub. relay may be nil for a single instance.
func NewHub(source Source, relay Relay) *Hub {
	return &Hub{
		source:   source,
		relay:    relay,
		origin:   uuid.NewString(),
		loadTime: 10 * time.Second,
		refresh:  make(chan struct{}, 1),
		subs:     make(map[*Subscription]struct{}),
	}
}

// Run reloads snapshots on demand until ctx is cancelled, then closes every
// subscription
func (h *Hub) Run(ctx context.Context) {
	var wg sync.WaitGroup
	if h.relay != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			h.listenRelay(ctx)
		}()
	}

	h.signal()
	for {
		select {
		case <-ctx.Done():
			wg.Wait()
			h.shutdown()
			return
		case <-h.refresh:
			h.reload(ctx)
		}
	}
}

// ReportsChanged schedules a reload here and on every other instance
func (h *Hub) ReportsChanged(ctx context.Context) {
	h.signal()
	h.publish(ctx, relayMessage{Origin: h.origin, Kind: KindSnapshot})
}

// PublishAlert pushes an alert to every subscriber on every instance
func (h *Hub) PublishAlert(ctx context.Context, alert interface{}) error {
	payload, err := json.Marshal(alert)
	if err != nil {
		return err
	}
	h.deliverAlert(payload)
	h.publish(ctx, relayMessage{Origin: h.origin, Kind: KindAlert, Payload: payload})
	return nil
}

// Subscribe registers a viewer. Admins see every report, citizens only their own.
func (h *Hub) Subscribe(userID string, admin bool) *Subscription {
	sub := &Subscription{
		hub:    h,
		userID: userID,
		admin:  admin,
		events: make(chan Event, 1),
		alerts: make(chan Event, 8),
	}

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		sub.closeChannels()
		return sub
	}
	h.subs[sub] = struct{}{}
	latest, version, loaded := h.latest, h.version, h.loaded
	h.mu.Unlock()

	if loaded {
		sub.offer(sub.view(latest), version)
	} else {
		h.signal()
	}
	return sub
}

// Latest returns the most recent snapshot
func (h *Hub) Latest() []reports.Report {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.latest
}

// Subscribers returns the number of open subscriptions
func (h *Hub) Subscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}

func (h *Hub) signal() {
	select {
	case h.refresh <- struct{}{}:
	default:
	}
}

func (h *Hub) reload(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, h.loadTime)
	defer cancel()

	items, err := h.source.All(ctx)
	if err != nil {
		logger.Error("Live snapshot reload failed: %v", err)
		return
	}

	h.mu.Lock()
	h.latest = items
	h.version++
	h.loaded = true
	version := h.version
	subs := make([]*Subscription, 0, len(h.subs))
	for s := range h.subs {
		subs = append(subs, s)
	}
	h.mu.Unlock()

	for _, s := range subs {
		s.offer(s.view(items), version)
	}
}

func (h *Hub) deliverAlert(payload json.RawMessage) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	ev := Event{Kind: KindAlert, Alert: payload, At: time.Now()}
	for s := range h.subs {
		select {
		case s.alerts <- ev:
		default:
			logger.Warn("Dropping alert for slow subscriber %s", s.userID)
		}
	}
}

func (h *Hub) remove(s *Subscription) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.subs[s]; ok {
		delete(h.subs, s)
		s.closeChannels()
	}
}

func (h *Hub) shutdown() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	for s := range h.subs {
		delete(h.subs, s)
		s.closeChannels()
	}
}

// Subscription is one viewer's feed
type Subscription struct {
	hub    *Hub
	userID string
	admin  bool
	events chan Event
	alerts chan Event
	once   sync.Once

	mu      sync.Mutex
	version uint64
}

// Snapshots delivers the newest filtered snapshot
func (s *Subscription) Snapshots() <-chan Event { return s.events }

// Alerts delivers broadcast alerts
func (s *Subscription) Alerts() <-chan Event { return s.alerts }

// Close unregisters the subscription
func (s *Subscription) Close() {
	s.hub.remove(s)
}

func (s *Subscription) view(items []reports.Report) []reports.Report {
	if s.admin {
		return items
	}
	return reports.Filter{UserID: s.userID}.Apply(items)
}

// offer replaces any undelivered snapshot with the newer one. Snapshots not
// newer than the last one offered are ignored.
func (s *Subscription) offer(items []reports.Report, version uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if version <= s.version {
		return
	}
	s.version = version

	ev := Event{Kind: KindSnapshot, Reports: items, At: time.Now()}

	s.hub.mu.RLock()
	defer s.hub.mu.RUnlock()
	if _, ok := s.hub.subs[s]; !ok {
		return
	}

	for {
		select {
		case s.events <- ev:
			return
		default:
		}
		select {
		case <-s.events:
		default:
		}
	}
}

func (s *Subscription) closeChannels() {
	s.once.Do(func() {
		close(s.events)
		close(s.alerts)
	})
}
