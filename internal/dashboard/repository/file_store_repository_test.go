package repository

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"golang-market-sentiment/internal/dashboard/config"
	"golang-market-sentiment/internal/entity"
	"golang-market-sentiment/pkg/logger"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []map[string]interface{}
	err    error
}

func (p *recordingPublisher) Publish(ctx context.Context, stream string, values map[string]interface{}) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	values["stream"] = stream
	p.events = append(p.events, values)
	return p.err
}

func newTestFileStore(t *testing.T, events EventPublisher) (FileStoreRepository, string) {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "data")
	cfg := &config.Config{Storage: config.Storage{DataDir: dir}}
	return NewFileStoreRepository(cfg, logger.NewNop(), nil, events), dir
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(b)
}

func TestSaveStockSeries(t *testing.T) {
	events := &recordingPublisher{}
	store, dir := newTestFileStore(t, events)

	points := []entity.SeriesPoint{{
		Timestamp: time.Date(2024, 9, 27, 19, 55, 0, 0, time.UTC),
		Open:      decimal.RequireFromString("220.2000"),
		High:      decimal.RequireFromString("220.3000"),
		Low:       decimal.RequireFromString("220.1500"),
		Close:     decimal.RequireFromString("220.2500"),
		Volume:    340,
	}}

	path, err := store.SaveStockSeries(context.Background(), "IBM", "5min", points)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "stock_data_IBM_5min.csv"), path)
	assert.Equal(t,
		"timestamp,open,high,low,close,volume\n2024-09-27 19:55:00,220.2000,220.3000,220.1500,220.2500,340\n",
		readFile(t, path))

	require.Len(t, events.events, 1)
	assert.Equal(t, "market.data.saved", events.events[0]["stream"])
	assert.Equal(t, "series", events.events[0]["kind"])
	assert.Equal(t, "stock_data_IBM_5min.csv", events.events[0]["name"])
}

func TestSaveStockSeries_OverwritesWholeFile(t *testing.T) {
	store, _ := newTestFileStore(t, nil)
	ctx := context.Background()
	long := make([]entity.SeriesPoint, 10)
	for i := range long {
		long[i] = entity.SeriesPoint{Timestamp: time.Unix(int64(i), 0).UTC(), Volume: int64(i)}
	}

	_, err := store.SaveStockSeries(ctx, "IBM", "1min", long)
	require.NoError(t, err)
	path, err := store.SaveStockSeries(ctx, "IBM", "1min", long[:1])
	require.NoError(t, err)

	assert.Equal(t, "timestamp,open,high,low,close,volume\n1970-01-01 00:00:00,0,0,0,0,0\n", readFile(t, path))
}

func TestSaveStockSeries_RejectsPathLikeSymbol(t *testing.T) {
	store, dir := newTestFileStore(t, nil)

	_, err := store.SaveStockSeries(context.Background(), "../IBM", "5min", nil)

	assert.ErrorIs(t, err, entity.ErrInvalidParameter)
	_, statErr := os.Stat(dir)
	assert.True(t, errors.Is(statErr, os.ErrNotExist))
}

func TestSaveMarketMovers(t *testing.T) {
	store, dir := newTestFileStore(t, nil)
	movers := &entity.MarketMovers{
		Gainers: []entity.Mover{{Rank: 1, Ticker: "ABC", Price: decimal.RequireFromString("1.23"), ChangeAmount: decimal.RequireFromString("0.5"), ChangePercentage: "68.4932%", Volume: 1000}},
		Losers:  []entity.Mover{{Rank: 1, Ticker: "XYZ", Price: decimal.RequireFromString("0.80"), ChangeAmount: decimal.RequireFromString("-0.4"), ChangePercentage: "-33.3333%", Volume: 2000}},
	}

	paths, err := store.SaveMarketMovers(context.Background(), movers)
	require.NoError(t, err)

	assert.Equal(t, []string{filepath.Join(dir, "top_gainers.csv"), filepath.Join(dir, "top_losers.csv")}, paths)
	assert.Equal(t, "ticker,price,change_amount,change_percentage,volume\nABC,1.23,0.5,68.4932%,1000\n", readFile(t, paths[0]))
	assert.Equal(t, "ticker,price,change_amount,change_percentage,volume\nXYZ,0.80,-0.4,-33.3333%,2000\n", readFile(t, paths[1]))
	assert.NoFileExists(t, filepath.Join(dir, "most_actively_traded.csv"))
}

func TestSaveNewsFeed(t *testing.T) {
	store, dir := newTestFileStore(t, nil)

	path, err := store.SaveNewsFeed(context.Background(), "IBM,AAPL", json.RawMessage(`[{"title":"A"}]`))
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "news_sentiment_IBM_AAPL.json"), path)
	assert.Equal(t, "[\n    {\n        \"title\": \"A\"\n    }\n]", readFile(t, path))
}

func TestSaveReport(t *testing.T) {
	store, dir := newTestFileStore(t, nil)

	path, err := store.SaveReport(context.Background(), "IBM", []byte("%PDF-1.3"))
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "news_sentiment_IBM.pdf"), path)
	assert.Equal(t, "%PDF-1.3", readFile(t, path))
}

func TestPublishFailureDoesNotFailSave(t *testing.T) {
	store, _ := newTestFileStore(t, &recordingPublisher{err: errors.New("redis down")})

	_, err := store.SaveReport(context.Background(), "IBM", []byte("x"))

	assert.NoError(t, err)
}

func TestListAndPath(t *testing.T) {
	store, dir := newTestFileStore(t, nil)
	ctx := context.Background()

	files, err := store.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, files)

	_, err = store.SaveReport(ctx, "IBM", []byte("pdf"))
	require.NoError(t, err)
	_, err = store.SaveNewsFeed(ctx, "IBM", json.RawMessage(`[]`))
	require.NoError(t, err)
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested"), 0o755))

	files, err = store.List(ctx)
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, "news_sentiment_IBM.json", files[0].Name)
	assert.Equal(t, "news_sentiment_IBM.pdf", files[1].Name)
	assert.Equal(t, int64(3), files[1].Size)

	path, err := store.Path("news_sentiment_IBM.pdf")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "news_sentiment_IBM.pdf"), path)

	_, err = store.Path("missing.csv")
	assert.ErrorIs(t, err, entity.ErrNotFound)
	_, err = store.Path("nested")
	assert.ErrorIs(t, err, entity.ErrNotFound)

	for _, bad := range []string{"", "../secret", "a/b.csv", ".."} {
		_, err = store.Path(bad)
		assert.ErrorIs(t, err, entity.ErrInvalidParameter, bad)
	}
}

func TestConcurrentSameKeyWrites(t *testing.T) {
	store, _ := newTestFileStore(t, nil)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := store.SaveReport(ctx, "IBM", []byte{byte('a' + i), byte('a' + i)})
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	path, err := store.Path("news_sentiment_IBM.pdf")
	require.NoError(t, err)
	content := readFile(t, path)
	require.Len(t, content, 2)
	assert.Equal(t, content[0], content[1])
}

func TestLocalKeyLocker(t *testing.T) {
	locker := NewLocalKeyLocker()
	ctx := context.Background()

	unlock, err := locker.Lock(ctx, "a")
	require.NoError(t, err)

	acquired := make(chan struct{})
	go func() {
		u, _ := locker.Lock(ctx, "a")
		close(acquired)
		u()
	}()

	other, err := locker.Lock(ctx, "b")
	require.NoError(t, err)
	other()

	select {
	case <-acquired:
		t.Fatal("lock for the same key acquired twice")
	case <-time.After(50 * time.Millisecond):
	}

	unlock()
	select {
	case <-acquired:
	case <-time.After(time.Second):
		t.Fatal("waiting writer never acquired the lock")
	}
}

func TestLocalKeyLocker_HonoursContext(t *testing.T) {
	locker := NewLocalKeyLocker()

	unlock, err := locker.Lock(context.Background(), "a")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err = locker.Lock(ctx, "a")
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	cancelled, cancelNow := context.WithCancel(context.Background())
	cancelNow()
	_, err = locker.Lock(cancelled, "a")
	assert.ErrorIs(t, err, context.Canceled)

	unlock()
	unlock()
	again, err := locker.Lock(context.Background(), "a")
	require.NoError(t, err)
	again()
}

func TestWriteFiles_FailedRenderKeepsPreviousSnapshot(t *testing.T) {
	store, dir := newTestFileStore(t, nil)
	ctx := context.Background()
	previous := &entity.MarketMovers{
		Gainers: []entity.Mover{{Ticker: "OLD", Price: decimal.RequireFromString("1"), ChangeAmount: decimal.Zero}},
		Losers:  []entity.Mover{{Ticker: "OLD", Price: decimal.RequireFromString("1"), ChangeAmount: decimal.Zero}},
	}
	_, err := store.SaveMarketMovers(ctx, previous)
	require.NoError(t, err)
	gainers := readFile(t, filepath.Join(dir, "top_gainers.csv"))

	repo := store.(*fileStoreRepository)
	_, err = repo.writeFiles(ctx, kindMovers, []pendingFile{
		{name: "top_gainers.csv", write: func(w io.Writer) error {
			_, err := io.WriteString(w, "ticker\nNEW\n")
			return err
		}},
		{name: "top_losers.csv", write: func(w io.Writer) error {
			return errors.New("disk full")
		}},
	})

	require.ErrorContains(t, err, "disk full")
	assert.Equal(t, gainers, readFile(t, filepath.Join(dir, "top_gainers.csv")))
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, e := range entries {
		assert.False(t, strings.HasSuffix(e.Name(), ".tmp"), "leftover temp file %s", e.Name())
	}
}
