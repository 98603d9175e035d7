package live

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/xyz-asif/nagaralert/internal/pkg/logger"
)

// Relay carries change notifications between service instances
type Relay interface {
	Publish(ctx context.Context, msg []byte) error
	Subscribe(ctx context.Context) (<-chan []byte, error)
}

type relayMessage struct {
	Origin  string          `json:"origin"`
	Kind    string          `json:"kind"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

func (h *Hub) publish(ctx context.Context, msg relayMessage) {
	if h.relay == nil {
		return
	}
	data, err := json.Marshal(msg)
	if err != nil {
		logger.Error("Failed to encode relay message: %v", err)
		return
	}
	// The local hub already has the change; other instances catch up on their next write
	if err := h.relay.Publish(context.WithoutCancel(ctx), data); err != nil {
		logger.Warn("Failed to relay %s notification: %v", msg.Kind, err)
	}
}

func (h *Hub) listenRelay(ctx context.Context) {
	messages, err := h.relay.Subscribe(ctx)
	if err != nil {
		logger.Error("Live relay subscribe failed: %v", err)
		return
	}

	for {
		select {
		case <-ctx.Done():
			return
		case data, ok := <-messages:
			if !ok {
				return
			}
			var msg relayMessage
			if err := json.Unmarshal(data, &msg); err != nil {
				logger.Warn("Ignoring malformed relay message: %v", err)
				continue
			}
			if msg.Origin == h.origin {
				continue
			}
			switch msg.Kind {
			case KindSnapshot:
				h.signal()
			case KindAlert:
				h.deliverAlert(msg.Payload)
			}
		}
	}
}

// RedisRelay uses Redis pub/sub on a single channel
type RedisRelay struct {
	client  *redis.Client
	channel string
}

// NewRedisRelay connects and pings Redis
func NewRedisRelay(ctx context.Context, addr, password string, db int, channel string) (*RedisRelay, error) {
	if addr == "" {
		return nil, errors.New("redis address is required")
	}
	if channel == "" {
		channel = "nagaralert:reports"
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &RedisRelay{client: client, channel: channel}, nil
}

func (r *RedisRelay) Publish(ctx context.Context, msg []byte) error {
	return r.client.Publish(ctx, r.channel, msg).Err()
}

// Subscribe forwards payloads until ctx is cancelled
func (r *RedisRelay) Subscribe(ctx context.Context) (<-chan []byte, error) {
	pubsub := r.client.Subscribe(ctx, r.channel)
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, fmt.Errorf("failed to subscribe to %s: %w", r.channel, err)
	}

	out := make(chan []byte)
	go func() {
		defer close(out)
		defer pubsub.Close()

		in := pubsub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-in:
				if !ok {
					return
				}
				select {
				case out <- []byte(msg.Payload):
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out, nil
}

// Close releases the Redis connection pool
func (r *RedisRelay) Close() error {
	return r.client.Close()
}
