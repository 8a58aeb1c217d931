package repository

import (
	"bufio"
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"golang-market-sentiment/internal/dashboard/config"
	"golang-market-sentiment/internal/entity"
	"golang-market-sentiment/pkg/common"
	"golang-market-sentiment/pkg/logger"
	"golang-market-sentiment/pkg/utils"

	"github.com/shopspring/decimal"
)

const (
	kindSeries = "series"
	kindMovers = "movers"
	kindFeed   = "news_feed"
	kindReport = "report"
)

var (
	seriesHeader = []string{"timestamp", "open", "high", "low", "close", "volume"}
	moversHeader = []string{"ticker", "price", "change_amount", "change_percentage", "volume"}
)

// KeyLocker serializes writers of the same file.
type KeyLocker interface {
	Lock(ctx context.Context, key string) (unlock func(), err error)
}

// EventPublisher announces saved files.
type EventPublisher interface {
	Publish(ctx context.Context, stream string, values map[string]interface{}) error
}

// FileStoreRepository persists fetched data and rendered reports as flat files.
// Every save replaces the whole file.
type FileStoreRepository interface {
	SaveStockSeries(ctx context.Context, symbol, interval string, points []entity.SeriesPoint) (string, error)
	SaveMarketMovers(ctx context.Context, movers *entity.MarketMovers) ([]string, error)
	SaveNewsFeed(ctx context.Context, tickers string, feed json.RawMessage) (string, error)
	SaveReport(ctx context.Context, tickers string, pdf []byte) (string, error)
	List(ctx context.Context) ([]entity.SavedFile, error)
	// Path resolves a bare file name inside the data directory.
	Path(name string) (string, error)
}

type fileStoreRepository struct {
	dataDir string
	log     *logger.Logger
	locker  KeyLocker
	events  EventPublisher
}

// NewFileStoreRepository creates a FileStoreRepository. A nil locker falls back
// to an in-process lock; a nil publisher disables save events.
func NewFileStoreRepository(cfg *config.Config, log *logger.Logger, locker KeyLocker, events EventPublisher) FileStoreRepository {
	if locker == nil {
		locker = NewLocalKeyLocker()
	}
	return &fileStoreRepository{
		dataDir: cfg.Storage.DataDir,
		log:     log,
		locker:  locker,
		events:  events,
	}
}

func (r *fileStoreRepository) SaveStockSeries(ctx context.Context, symbol, interval string, points []entity.SeriesPoint) (string, error) {
	if !utils.IsValidSymbol(symbol) {
		return "", fmt.Errorf("%w: symbol %q", entity.ErrInvalidParameter, symbol)
	}
	name := fmt.Sprintf(common.StockSeriesFileFormat, symbol, interval)

	return r.writeFile(ctx, kindSeries, name, func(w io.Writer) error {
		rows := make([][]string, 0, len(points)+1)
		rows = append(rows, seriesHeader)
		for _, p := range points {
			rows = append(rows, []string{
				p.Timestamp.Format(utils.SeriesTimestampLayout),
				decimalText(p.Open),
				decimalText(p.High),
				decimalText(p.Low),
				decimalText(p.Close),
				strconv.FormatInt(p.Volume, 10),
			})
		}
		return writeCSV(w, rows)
	})
}

func (r *fileStoreRepository) SaveMarketMovers(ctx context.Context, movers *entity.MarketMovers) ([]string, error) {
	lists := []struct {
		name     string
		movers   []entity.Mover
		optional bool
	}{
		{common.TopGainersFileName, movers.Gainers, false},
		{common.TopLosersFileName, movers.Losers, false},
		{common.MostActiveFileName, movers.MostActive, true},
	}

	var files []pendingFile
	for _, l := range lists {
		if l.optional && len(l.movers) == 0 {
			continue
		}
		rowsFor := l.movers
		files = append(files, pendingFile{name: l.name, write: func(w io.Writer) error {
			rows := make([][]string, 0, len(rowsFor)+1)
			rows = append(rows, moversHeader)
			for _, m := range rowsFor {
				rows = append(rows, []string{
					m.Ticker,
					decimalText(m.Price),
					decimalText(m.ChangeAmount),
					m.ChangePercentage,
					strconv.FormatInt(m.Volume, 10),
				})
			}
			return writeCSV(w, rows)
		}})
	}
	return r.writeFiles(ctx, kindMovers, files)
}

func (r *fileStoreRepository) SaveNewsFeed(ctx context.Context, tickers string, feed json.RawMessage) (string, error) {
	key := utils.TickersKey(tickers)
	if !utils.IsValidSymbol(key) {
		return "", fmt.Errorf("%w: tickers %q", entity.ErrInvalidParameter, tickers)
	}

	var indented bytes.Buffer
	if err := json.Indent(&indented, feed, "", "    "); err != nil {
		return "", fmt.Errorf("failed to format news feed: %w", err)
	}

	return r.writeFile(ctx, kindFeed, fmt.Sprintf(common.NewsSentimentFileFormat, key), func(w io.Writer) error {
		_, err := indented.WriteTo(w)
		return err
	})
}

func (r *fileStoreRepository) SaveReport(ctx context.Context, tickers string, pdf []byte) (string, error) {
	key := utils.TickersKey(tickers)
	if !utils.IsValidSymbol(key) {
		return "", fmt.Errorf("%w: tickers %q", entity.ErrInvalidParameter, tickers)
	}

	return r.writeFile(ctx, kindReport, fmt.Sprintf(common.SentimentReportFileFormat, key), func(w io.Writer) error {
		_, err := w.Write(pdf)
		return err
	})
}

func (r *fileStoreRepository) List(ctx context.Context) ([]entity.SavedFile, error) {
	entries, err := os.ReadDir(r.dataDir)
	if errors.Is(err, fs.ErrNotExist) {
		return []entity.SavedFile{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list data directory: %w", err)
	}

	files := make([]entity.SavedFile, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			r.log.WarnContext(ctx, "Failed to stat saved file", logger.StringField("name", e.Name()), logger.ErrorField(err))
			continue
		}
		files = append(files, entity.SavedFile{
			Name:       e.Name(),
			Size:       info.Size(),
			ModifiedAt: info.ModTime(),
		})
	}
	return files, nil
}

func (r *fileStoreRepository) Path(name string) (string, error) {
	if name == "" || strings.HasPrefix(name, ".") || strings.ContainsAny(name, `/\`) || filepath.Base(name) != name {
		return "", fmt.Errorf("%w: file name %q", entity.ErrInvalidParameter, name)
	}

	path := filepath.Join(r.dataDir, name)
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) || (err == nil && info.IsDir()) {
		return "", fmt.Errorf("%w: %s", entity.ErrNotFound, name)
	}
	if err != nil {
		return "", err
	}
	return path, nil
}

type pendingFile struct {
	name  string
	write func(io.Writer) error
}

// writeFile replaces name in the data directory with the output of write,
// holding the key lock for the file while doing so.
func (r *fileStoreRepository) writeFile(ctx context.Context, kind, name string, write func(io.Writer) error) (string, error) {
	paths, err := r.writeFiles(ctx, kind, []pendingFile{{name: name, write: write}})
	if err != nil {
		return "", err
	}
	return paths[0], nil
}

// writeFiles replaces a set of files that belong to one snapshot. Every file is
// rendered to a temp file before the first rename, so a failed render leaves
// all previous files in place. Locks are taken in the order given.
func (r *fileStoreRepository) writeFiles(ctx context.Context, kind string, files []pendingFile) ([]string, error) {
	if err := os.MkdirAll(r.dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	for _, f := range files {
		unlock, err := r.locker.Lock(ctx, f.name)
		if err != nil {
			return nil, err
		}
		defer unlock()
	}

	temps := make([]string, 0, len(files))
	defer func() {
		for _, t := range temps {
			os.Remove(t)
		}
	}()
	for _, f := range files {
		tmp, err := r.stage(f)
		if err != nil {
			return nil, err
		}
		temps = append(temps, tmp)
	}

	paths := make([]string, 0, len(files))
	for i, f := range files {
		path := filepath.Join(r.dataDir, f.name)
		if err := os.Rename(temps[i], path); err != nil {
			return paths, fmt.Errorf("failed to replace %s: %w", f.name, err)
		}
		paths = append(paths, path)
		r.announce(ctx, kind, f.name, path)
	}
	return paths, nil
}

// stage writes f into a hidden temp file next to its destination.
func (r *fileStoreRepository) stage(f pendingFile) (string, error) {
	tmp, err := os.CreateTemp(r.dataDir, "."+f.name+".*.tmp")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}

	bw := bufio.NewWriter(tmp)
	if err := f.write(bw); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", fmt.Errorf("failed to write %s: %w", f.name, err)
	}
	if err := bw.Flush(); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", fmt.Errorf("failed to write %s: %w", f.name, err)
	}
	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", err
	}
	return tmp.Name(), nil
}

func (r *fileStoreRepository) announce(ctx context.Context, kind, name, path string) {
	var size int64
	if info, err := os.Stat(path); err == nil {
		size = info.Size()
	}

	r.log.InfoContext(ctx, "Saved market data file",
		logger.StringField("kind", kind),
		logger.StringField("path", path),
		logger.Field("bytes", size))

	if r.events == nil {
		return
	}
	err := r.events.Publish(ctx, common.RedisStreamMarketDataSaved, map[string]interface{}{
		"kind":  kind,
		"name":  name,
		"path":  path,
		"bytes": size,
	})
	if err != nil {
		r.log.WarnContext(ctx, "Failed to publish saved file event", logger.StringField("name", name), logger.ErrorField(err))
	}
}

func writeCSV(w io.Writer, rows [][]string) error {
	cw := csv.NewWriter(w)
	if err := cw.WriteAll(rows); err != nil {
		return err
	}
	return cw.Error()
}

// decimalText keeps the number of decimals the upstream value was sent with.
func decimalText(d decimal.Decimal) string {
	if exp := d.Exponent(); exp < 0 {
		return d.StringFixed(-exp)
	}
	return d.String()
}

type localKeyLocker struct {
	mu    sync.Mutex
	locks map[string]chan struct{}
}

// NewLocalKeyLocker returns a KeyLocker that only serializes within this process.
func NewLocalKeyLocker() KeyLocker {
	return &localKeyLocker{locks: make(map[string]chan struct{})}
}

// Lock blocks until the lock for key is acquired or ctx is done.
func (l *localKeyLocker) Lock(ctx context.Context, key string) (func(), error) {
	l.mu.Lock()
	slot, ok := l.locks[key]
	if !ok {
		slot = make(chan struct{}, 1)
		l.locks[key] = slot
	}
	l.mu.Unlock()

	select {
	case slot <- struct{}{}:
		var once sync.Once
		return func() { once.Do(func() { <-slot }) }, nil
	case <-ctx.Done():
		return nil, fmt.Errorf("failed to acquire lock %s: %w", key, ctx.Err())
	}
}
