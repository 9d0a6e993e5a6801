// Package events publishes domain events on Redis pub/sub for background workers.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultChannel = "signalist:events"

// Envelope is the wire format of a published event.
type Envelope struct {
	Name       string          `json:"name"`
	Data       json.RawMessage `json:"data"`
	OccurredAt time.Time       `json:"occurredAt"`
}

// ChannelFromEnv reads EVENTS_CHANNEL.
func ChannelFromEnv() string {
	if ch := os.Getenv("EVENTS_CHANNEL"); ch != "" {
		return ch
	}
	return defaultChannel
}

// RedisPublisher publishes JSON envelopes to one channel.
// A nil client turns Publish into a no-op.
type RedisPublisher struct {
	rdb     *redis.Client
	channel string
}

// NewRedisPublisher creates a publisher for channel.
func NewRedisPublisher(rdb *redis.Client, channel string) *RedisPublisher {
	if channel == "" {
		channel = defaultChannel
	}
	return &RedisPublisher{rdb: rdb, channel: channel}
}

// Publish marshals data into an envelope and publishes it.
func (p *RedisPublisher) Publish(ctx context.Context, name string, data any) error {
	if p.rdb == nil {
		return nil
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshal event %s: %w", name, err)
	}
	body, err := json.Marshal(Envelope{Name: name, Data: raw, OccurredAt: time.Now().UTC()})
	if err != nil {
		return fmt.Errorf("marshal envelope %s: %w", name, err)
	}
	if err := p.rdb.Publish(ctx, p.channel, body).Err(); err != nil {
		return fmt.Errorf("publish %s: %w", name, err)
	}
	return nil
}
