package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"
)

// DefaultStream is used when no stream key is configured.
const DefaultStream = "goal-light:events"

// streamAdder is the slice of the redis client the publisher needs.
type streamAdder interface {
	XAdd(ctx context.Context, a *redis.XAddArgs) *redis.StringCmd
}

// StreamPublisher appends events to a Redis stream.
type StreamPublisher struct {
	client streamAdder
	stream string
}

// NewStreamPublisher wraps an existing client.
func NewStreamPublisher(client streamAdder, stream string) *StreamPublisher {
	if strings.TrimSpace(stream) == "" {
		stream = DefaultStream
	}
	return &StreamPublisher{client: client, stream: stream}
}

// Dial connects to redisURL and returns a publisher plus the client closer.
func Dial(redisURL, stream string) (*StreamPublisher, func() error, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opts)
	return NewStreamPublisher(client, stream), client.Close, nil
}

// Stream reports the target stream key.
func (p *StreamPublisher) Stream() string {
	return p.stream
}

// Publish XADDs the event with its JSON body and routing fields.
func (p *StreamPublisher) Publish(ctx context.Context, ev Event) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	_, err = p.client.XAdd(ctx, &redis.XAddArgs{
		Stream: p.stream,
		Values: map[string]interface{}{
			"data":    string(data),
			"type":    ev.Type,
			"game_id": ev.GameID,
			"status":  ev.Status,
		},
	}).Result()
	if err != nil {
		return fmt.Errorf("publish to stream %s: %w", p.stream, err)
	}
	return nil
}
