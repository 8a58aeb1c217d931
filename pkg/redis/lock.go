package redis

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"golang-market-sentiment/pkg/common"
	"golang-market-sentiment/pkg/logger"

	"github.com/redis/go-redis/v9"
)

// releases the lock only if it is still held by the same token
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// Locker serializes work on a key across processes with SET NX PX.
type Locker struct {
	client       *Client
	ttl          time.Duration
	pollInterval time.Duration
	log          *logger.Logger
}

// NewLocker creates a Locker whose locks expire after ttl if never released.
func NewLocker(client *Client, ttl time.Duration, log *logger.Logger) *Locker {
	return &Locker{client: client, ttl: ttl, pollInterval: 50 * time.Millisecond, log: log}
}

// Lock blocks until the lock for key is acquired or ctx is done.
func (l *Locker) Lock(ctx context.Context, key string) (func(), error) {
	token, err := newToken()
	if err != nil {
		return nil, err
	}
	redisKey := fmt.Sprintf(common.RedisKeyFileLock, key)

	ticker := time.NewTicker(l.pollInterval)
	defer ticker.Stop()

	for {
		ok, err := l.client.SetNX(ctx, redisKey, token, l.ttl).Result()
		if err != nil {
			return nil, fmt.Errorf("failed to acquire lock %s: %w", key, err)
		}
		if ok {
			return func() {
				releaseCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := releaseScript.Run(releaseCtx, l.client, []string{redisKey}, token).Err(); err != nil {
					// the key stays locked until its ttl expires
					l.log.WarnContext(ctx, "Failed to release file lock",
						logger.StringField("key", redisKey),
						logger.Field("ttl", l.ttl),
						logger.ErrorField(err))
				}
			}, nil
		}

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("failed to acquire lock %s: %w", key, ctx.Err())
		case <-ticker.C:
		}
	}
}

func newToken() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
