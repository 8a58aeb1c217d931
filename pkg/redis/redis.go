package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Config holds the connection settings.
type Config struct {
	Host         string
	Port         int
	Password     string
	DB           int
	PoolSize     int
	StreamMaxLen int64
}

// Client wraps go-redis with the stream size limit used for published events.
type Client struct {
	*redis.Client
	streamMaxLen int64
}

// NewClient connects to Redis and verifies the connection.
func NewClient(cfg Config) (*Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &Client{Client: rdb, streamMaxLen: cfg.StreamMaxLen}, nil
}

// Wrap adapts an existing go-redis client.
func Wrap(rdb *redis.Client, streamMaxLen int64) *Client {
	return &Client{Client: rdb, streamMaxLen: streamMaxLen}
}

// Publish appends values to stream, trimming it to roughly the configured length.
func (c *Client) Publish(ctx context.Context, stream string, values map[string]interface{}) error {
	return c.XAdd(ctx, &redis.XAddArgs{
		Stream: stream,
		Values: values,
		MaxLen: c.streamMaxLen,
		Approx: true,
	}).Err()
}
