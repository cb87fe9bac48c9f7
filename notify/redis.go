package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const channelPrefix = "notifications:"

// Publisher is the part of a redis client used for fan-out.
type Publisher interface {
	Publish(ctx context.Context, channel string, message interface{}) *redis.IntCmd
}

// Message is the JSON payload published for live dashboards.
type Message struct {
	UserID    string    `json:"userId"`
	Type      string    `json:"type"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// RedisPublisher pushes notifications on channel notifications:<userID>.
type RedisPublisher struct {
	Client Publisher
	Clock  func() time.Time
}

func NewRedisPublisher(client Publisher) *RedisPublisher {
	return &RedisPublisher{Client: client, Clock: time.Now}
}

func Channel(userID string) string {
	return channelPrefix + userID
}

func (p *RedisPublisher) Notify(ctx context.Context, userID, kind, message string) error {
	payload, err := json.Marshal(Message{
		UserID:    userID,
		Type:      kind,
		Message:   message,
		Timestamp: p.Clock().UTC(),
	})
	if err != nil {
		return err
	}
	if err := p.Client.Publish(ctx, Channel(userID), payload).Err(); err != nil {
		return fmt.Errorf("publish to %s: %w", Channel(userID), err)
	}
	return nil
}

// NewRedis connects and pings the server.
func NewRedis(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return rdb, nil
}
