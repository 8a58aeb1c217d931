package redis

import (
	"context"
	"testing"
	"time"

	"golang-market-sentiment/pkg/logger"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newTestClient(t *testing.T) (*Client, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return Wrap(rdb, 100), mr
}

func TestLocker_SerializesSameKey(t *testing.T) {
	client, mr := newTestClient(t)
	locker := NewLocker(client, time.Minute, logger.NewNop())
	ctx := context.Background()

	unlock, err := locker.Lock(ctx, "stock_data_IBM_5min.csv")
	require.NoError(t, err)
	assert.True(t, mr.Exists("market_file_lock:stock_data_IBM_5min.csv"))

	waitCtx, cancel := context.WithTimeout(ctx, 150*time.Millisecond)
	defer cancel()
	_, err = locker.Lock(waitCtx, "stock_data_IBM_5min.csv")
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	other, err := locker.Lock(ctx, "top_gainers.csv")
	require.NoError(t, err)
	other()

	unlock()
	assert.False(t, mr.Exists("market_file_lock:stock_data_IBM_5min.csv"))

	again, err := locker.Lock(ctx, "stock_data_IBM_5min.csv")
	require.NoError(t, err)
	again()
}

func TestLocker_ReleaseKeepsForeignLock(t *testing.T) {
	client, mr := newTestClient(t)
	locker := NewLocker(client, time.Minute, logger.NewNop())

	unlock, err := locker.Lock(context.Background(), "report.pdf")
	require.NoError(t, err)

	// the lock expired and another process took it over
	require.NoError(t, mr.Set("market_file_lock:report.pdf", "someone-else"))
	unlock()

	got, err := mr.Get("market_file_lock:report.pdf")
	require.NoError(t, err)
	assert.Equal(t, "someone-else", got)
}

func TestLocker_LogsFailedRelease(t *testing.T) {
	client, mr := newTestClient(t)
	core, logs := observer.New(zapcore.WarnLevel)
	locker := NewLocker(client, time.Minute, &logger.Logger{Logger: zap.New(core)})

	unlock, err := locker.Lock(context.Background(), "report.pdf")
	require.NoError(t, err)

	mr.Close()
	unlock()

	entries := logs.FilterMessage("Failed to release file lock").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "market_file_lock:report.pdf", entries[0].ContextMap()["key"])
}

func TestPublish(t *testing.T) {
	client, _ := newTestClient(t)
	ctx := context.Background()

	require.NoError(t, client.Publish(ctx, "market.data.saved", map[string]interface{}{"kind": "series", "name": "a.csv"}))
	require.NoError(t, client.Publish(ctx, "market.data.saved", map[string]interface{}{"kind": "movers", "name": "b.csv"}))

	entries, err := client.XRange(ctx, "market.data.saved", "-", "+").Result()
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "series", entries[0].Values["kind"])
	assert.Equal(t, "b.csv", entries[1].Values["name"])
}
