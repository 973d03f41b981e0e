package publisher

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// StreamBuilds is the stream downstream consumers read build events from.
const StreamBuilds = "deadball.builds"

// BuildEvent describes one scorecard build's lifecycle transition.
type BuildEvent struct {
	GamePk    int    `json:"game_pk,omitempty"`
	Date      string `json:"date"`
	Team      string `json:"team,omitempty"`
	Status    string `json:"status"` // started | completed | failed
	Detail    string `json:"detail,omitempty"`
	Timestamp int64  `json:"timestamp"`
}

// RedisStreamPublisher publishes build events to a Redis stream
type RedisStreamPublisher struct {
	client *redis.Client
}

// NewRedisStreamPublisher creates a publisher from an existing client
func NewRedisStreamPublisher(client *redis.Client) *RedisStreamPublisher {
	return &RedisStreamPublisher{
		client: client,
	}
}

// PublishBuildEvent appends a build lifecycle event to the stream
func (rsp *RedisStreamPublisher) PublishBuildEvent(ctx context.Context, event BuildEvent) error {
	if event.Timestamp == 0 {
		event.Timestamp = time.Now().Unix()
	}

	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return rsp.client.XAdd(ctx, &redis.XAddArgs{
		Stream: StreamBuilds,
		Values: map[string]interface{}{
			"data":      string(data),
			"timestamp": event.Timestamp,
		},
	}).Err()
}
