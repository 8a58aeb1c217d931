package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"testing"
	"time"

	"golang-market-sentiment/internal/dashboard/config"
	"golang-market-sentiment/internal/dashboard/dto"
	"golang-market-sentiment/internal/dashboard/repository"
	"golang-market-sentiment/internal/entity"
	"golang-market-sentiment/pkg/logger"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAlphaVantage struct {
	series     map[string][]entity.SeriesPoint
	movers     *entity.MarketMovers
	feed       *dto.NewsFeed
	err        error
	seriesErr  map[string]error
	newsParams []dto.NewsSentimentParam
	calls      []string
}

func (f *fakeAlphaVantage) Query(ctx context.Context, function string, params url.Values, requiredKeys ...string) (map[string]json.RawMessage, error) {
	return nil, fmt.Errorf("not used")
}

func (f *fakeAlphaVantage) GetIntradaySeries(ctx context.Context, symbol, interval string) ([]entity.SeriesPoint, error) {
	f.calls = append(f.calls, symbol+"/"+interval)
	if err := f.seriesErr[symbol]; err != nil {
		return nil, err
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.series[symbol], nil
}

func (f *fakeAlphaVantage) GetTopMovers(ctx context.Context) (*entity.MarketMovers, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.movers, nil
}

func (f *fakeAlphaVantage) GetNewsSentiment(ctx context.Context, param dto.NewsSentimentParam) (*dto.NewsFeed, error) {
	f.newsParams = append(f.newsParams, param)
	if f.err != nil {
		return nil, f.err
	}
	return f.feed, nil
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		Storage: config.Storage{DataDir: filepath.Join(t.TempDir(), "data")},
		Report:  config.Report{RelevanceThreshold: 0.5, NewsLimit: 50, Sort: "LATEST"},
	}
}

func newTestMarketDataService(t *testing.T, av *fakeAlphaVantage) (MarketDataService, *config.Config) {
	t.Helper()
	cfg := testConfig(t)
	store := repository.NewFileStoreRepository(cfg, logger.NewNop(), nil, nil)
	return NewMarketDataService(cfg, av, store, logger.NewNop()), cfg
}

func samplePoints() []entity.SeriesPoint {
	return []entity.SeriesPoint{{
		Timestamp: time.Date(2024, 9, 27, 19, 55, 0, 0, time.UTC),
		Open:      decimal.RequireFromString("1.5"),
		High:      decimal.RequireFromString("2.5"),
		Low:       decimal.RequireFromString("1.0"),
		Close:     decimal.RequireFromString("2.0"),
		Volume:    10,
	}}
}

func TestFetchStockSeries(t *testing.T) {
	av := &fakeAlphaVantage{series: map[string][]entity.SeriesPoint{"IBM": samplePoints()}}
	svc, cfg := newTestMarketDataService(t, av)

	res, err := svc.FetchStockSeries(context.Background(), " ibm ", "")
	require.NoError(t, err)

	assert.Equal(t, []string{"IBM/1min"}, av.calls)
	assert.Equal(t, "IBM", res.Symbol)
	assert.Equal(t, "1min", res.Interval)
	assert.Equal(t, filepath.Join(cfg.Storage.DataDir, "stock_data_IBM_1min.csv"), res.FilePath)
	assert.FileExists(t, res.FilePath)
	assert.Len(t, res.Points, 1)
}

func TestFetchStockSeries_InvalidInput(t *testing.T) {
	av := &fakeAlphaVantage{}
	svc, _ := newTestMarketDataService(t, av)

	_, err := svc.FetchStockSeries(context.Background(), "IBM", "2min")
	assert.ErrorIs(t, err, entity.ErrInvalidParameter)

	_, err = svc.FetchStockSeries(context.Background(), "../etc", "5min")
	assert.ErrorIs(t, err, entity.ErrInvalidParameter)

	assert.Empty(t, av.calls)
}

func TestFetchStockSeries_UnavailableWritesNothing(t *testing.T) {
	av := &fakeAlphaVantage{err: fmt.Errorf("%w: no series", entity.ErrDataUnavailable)}
	svc, cfg := newTestMarketDataService(t, av)

	_, err := svc.FetchStockSeries(context.Background(), "IBM", "5min")

	assert.ErrorIs(t, err, entity.ErrDataUnavailable)
	_, statErr := os.Stat(filepath.Join(cfg.Storage.DataDir, "stock_data_IBM_5min.csv"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestFetchStockSeriesBatch_ContinuesAfterFailure(t *testing.T) {
	av := &fakeAlphaVantage{
		series:    map[string][]entity.SeriesPoint{"IBM": samplePoints(), "MSFT": samplePoints()},
		seriesErr: map[string]error{"AAPL": fmt.Errorf("%w: no series", entity.ErrDataUnavailable)},
	}
	svc, _ := newTestMarketDataService(t, av)

	results, err := svc.FetchStockSeriesBatch(context.Background(), []string{"ibm", "AAPL", "IBM", "msft"}, "15min")
	require.NoError(t, err)

	assert.Equal(t, []string{"IBM/15min", "AAPL/15min", "MSFT/15min"}, av.calls)
	require.Len(t, results, 3)
	assert.Empty(t, results[0].Error)
	assert.Contains(t, results[1].Error, "data unavailable")
	assert.Empty(t, results[1].FilePath)
	assert.Equal(t, "MSFT", results[2].Symbol)
	assert.NotEmpty(t, results[2].FilePath)
}

func TestFetchStockSeriesBatch_NoSymbols(t *testing.T) {
	svc, _ := newTestMarketDataService(t, &fakeAlphaVantage{})

	_, err := svc.FetchStockSeriesBatch(context.Background(), []string{" ", ""}, "5min")

	assert.ErrorIs(t, err, entity.ErrInvalidParameter)
}

func TestFetchTopMovers(t *testing.T) {
	av := &fakeAlphaVantage{movers: &entity.MarketMovers{
		Gainers: []entity.Mover{{Rank: 1, Ticker: "ABC"}},
		Losers:  []entity.Mover{{Rank: 1, Ticker: "XYZ"}},
	}}
	svc, cfg := newTestMarketDataService(t, av)

	res, err := svc.FetchTopMovers(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "ABC", res.Gainers[0].Ticker)
	assert.Equal(t, []string{
		filepath.Join(cfg.Storage.DataDir, "top_gainers.csv"),
		filepath.Join(cfg.Storage.DataDir, "top_losers.csv"),
	}, res.FilePaths)
}

func TestFetchNewsSentiment_Defaults(t *testing.T) {
	av := &fakeAlphaVantage{feed: &dto.NewsFeed{Raw: json.RawMessage(`[]`)}}
	svc, cfg := newTestMarketDataService(t, av)

	res, err := svc.FetchNewsSentiment(context.Background(), dto.NewsSentimentParam{Tickers: "ibm, aapl", Topics: " earnings "})
	require.NoError(t, err)

	require.Len(t, av.newsParams, 1)
	assert.Equal(t, dto.NewsSentimentParam{Tickers: "IBM,AAPL", Topics: "earnings", Limit: 50, Sort: "LATEST"}, av.newsParams[0])
	assert.Equal(t, "IBM,AAPL", res.Tickers)
	assert.Equal(t, filepath.Join(cfg.Storage.DataDir, "news_sentiment_IBM_AAPL.json"), res.FilePath)
}

func TestFetchNewsSentiment_Validation(t *testing.T) {
	tests := []struct {
		name  string
		param dto.NewsSentimentParam
	}{
		{name: "no tickers", param: dto.NewsSentimentParam{Tickers: " , "}},
		{name: "limit too high", param: dto.NewsSentimentParam{Tickers: "IBM", Limit: 1001}},
		{name: "negative limit", param: dto.NewsSentimentParam{Tickers: "IBM", Limit: -1}},
		{name: "unknown sort", param: dto.NewsSentimentParam{Tickers: "IBM", Sort: "random"}},
		{name: "bad ticker", param: dto.NewsSentimentParam{Tickers: "IBM,a/b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			av := &fakeAlphaVantage{}
			svc, _ := newTestMarketDataService(t, av)

			_, err := svc.FetchNewsSentiment(context.Background(), tt.param)

			assert.ErrorIs(t, err, entity.ErrInvalidParameter)
			assert.Empty(t, av.newsParams)
		})
	}
}

func TestFetchNewsSentiment_AcceptsLowerCaseSort(t *testing.T) {
	av := &fakeAlphaVantage{feed: &dto.NewsFeed{Raw: json.RawMessage(`[]`)}}
	svc, _ := newTestMarketDataService(t, av)

	_, err := svc.FetchNewsSentiment(context.Background(), dto.NewsSentimentParam{Tickers: "IBM", Limit: 1000, Sort: "relevance"})
	require.NoError(t, err)

	assert.Equal(t, "RELEVANCE", av.newsParams[0].Sort)
	assert.Equal(t, 1000, av.newsParams[0].Limit)
}

func TestListSavedFilesAndPath(t *testing.T) {
	av := &fakeAlphaVantage{series: map[string][]entity.SeriesPoint{"IBM": samplePoints()}}
	svc, _ := newTestMarketDataService(t, av)
	ctx := context.Background()

	files, err := svc.ListSavedFiles(ctx)
	require.NoError(t, err)
	assert.Empty(t, files)

	_, err = svc.FetchStockSeries(ctx, "IBM", "5min")
	require.NoError(t, err)

	files, err = svc.ListSavedFiles(ctx)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "stock_data_IBM_5min.csv", files[0].Name)

	path, err := svc.SavedFilePath("stock_data_IBM_5min.csv")
	require.NoError(t, err)
	assert.FileExists(t, path)

	_, err = svc.SavedFilePath("../config.yaml")
	assert.ErrorIs(t, err, entity.ErrInvalidParameter)
}
