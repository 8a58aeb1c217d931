package service

import (
	"context"
	"fmt"
	"strings"

	"golang-market-sentiment/internal/dashboard/config"
	"golang-market-sentiment/internal/dashboard/dto"
	"golang-market-sentiment/internal/dashboard/repository"
	"golang-market-sentiment/internal/entity"
	"golang-market-sentiment/pkg/logger"
	"golang-market-sentiment/pkg/utils"
)

// MarketDataService fetches market data and keeps a copy of every successful fetch on disk.
type MarketDataService interface {
	FetchStockSeries(ctx context.Context, symbol, interval string) (*dto.StockSeriesResult, error)
	// FetchStockSeriesBatch fetches each symbol in turn. A failing symbol is reported in its
	// result and does not stop the others.
	FetchStockSeriesBatch(ctx context.Context, symbols []string, interval string) ([]dto.StockSeriesResult, error)
	FetchTopMovers(ctx context.Context) (*dto.MarketMoversResult, error)
	FetchNewsSentiment(ctx context.Context, param dto.NewsSentimentParam) (*dto.NewsSentimentResult, error)
	ListSavedFiles(ctx context.Context) ([]dto.SavedFileResponse, error)
	SavedFilePath(name string) (string, error)
}

type marketDataService struct {
	cfg   *config.Config
	av    repository.AlphaVantageRepository
	store repository.FileStoreRepository
	log   *logger.Logger
}

// NewMarketDataService creates a new MarketDataService.
func NewMarketDataService(cfg *config.Config, av repository.AlphaVantageRepository, store repository.FileStoreRepository, log *logger.Logger) MarketDataService {
	return &marketDataService{
		cfg:   cfg,
		av:    av,
		store: store,
		log:   log,
	}
}

func (s *marketDataService) FetchStockSeries(ctx context.Context, symbol, interval string) (*dto.StockSeriesResult, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if !utils.IsValidSymbol(symbol) {
		return nil, fmt.Errorf("%w: symbol %q", entity.ErrInvalidParameter, symbol)
	}
	interval, err := normalizeInterval(interval)
	if err != nil {
		return nil, err
	}

	points, err := s.av.GetIntradaySeries(ctx, symbol, interval)
	if err != nil {
		s.log.WarnContext(ctx, "Failed to fetch intraday series",
			logger.StringField("symbol", symbol),
			logger.StringField("interval", interval),
			logger.ErrorField(err))
		return nil, err
	}

	path, err := s.store.SaveStockSeries(ctx, symbol, interval, points)
	if err != nil {
		return nil, fmt.Errorf("failed to save series for %s: %w", symbol, err)
	}

	return &dto.StockSeriesResult{
		Symbol:   symbol,
		Interval: interval,
		FilePath: path,
		Points:   points,
	}, nil
}

func (s *marketDataService) FetchStockSeriesBatch(ctx context.Context, symbols []string, interval string) ([]dto.StockSeriesResult, error) {
	symbols = utils.ParseSymbols(symbols, "")
	if len(symbols) == 0 {
		return nil, fmt.Errorf("%w: at least one symbol is required", entity.ErrInvalidParameter)
	}
	interval, err := normalizeInterval(interval)
	if err != nil {
		return nil, err
	}

	results := make([]dto.StockSeriesResult, 0, len(symbols))
	for _, symbol := range symbols {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		res, err := s.FetchStockSeries(ctx, symbol, interval)
		if err != nil {
			results = append(results, dto.StockSeriesResult{Symbol: symbol, Interval: interval, Error: err.Error()})
			continue
		}
		results = append(results, *res)
	}
	return results, nil
}

func (s *marketDataService) FetchTopMovers(ctx context.Context) (*dto.MarketMoversResult, error) {
	movers, err := s.av.GetTopMovers(ctx)
	if err != nil {
		s.log.WarnContext(ctx, "Failed to fetch top movers", logger.ErrorField(err))
		return nil, err
	}

	paths, err := s.store.SaveMarketMovers(ctx, movers)
	if err != nil {
		return nil, fmt.Errorf("failed to save market movers: %w", err)
	}

	return &dto.MarketMoversResult{MarketMovers: movers, FilePaths: paths}, nil
}

func (s *marketDataService) FetchNewsSentiment(ctx context.Context, param dto.NewsSentimentParam) (*dto.NewsSentimentResult, error) {
	param, err := s.normalizeNewsParam(param)
	if err != nil {
		return nil, err
	}

	feed, err := s.av.GetNewsSentiment(ctx, param)
	if err != nil {
		s.log.WarnContext(ctx, "Failed to fetch news sentiment",
			logger.StringField("tickers", param.Tickers),
			logger.ErrorField(err))
		return nil, err
	}

	path, err := s.store.SaveNewsFeed(ctx, param.Tickers, feed.Raw)
	if err != nil {
		return nil, fmt.Errorf("failed to save news feed for %s: %w", param.Tickers, err)
	}

	return &dto.NewsSentimentResult{
		Tickers:  param.Tickers,
		FilePath: path,
		Articles: feed.Articles,
	}, nil
}

func (s *marketDataService) ListSavedFiles(ctx context.Context) ([]dto.SavedFileResponse, error) {
	files, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}

	resp := make([]dto.SavedFileResponse, 0, len(files))
	for _, f := range files {
		resp = append(resp, dto.SavedFileResponse{Name: f.Name, Size: f.Size, ModifiedAt: f.ModifiedAt})
	}
	return resp, nil
}

func (s *marketDataService) SavedFilePath(name string) (string, error) {
	return s.store.Path(name)
}

func (s *marketDataService) normalizeNewsParam(param dto.NewsSentimentParam) (dto.NewsSentimentParam, error) {
	tickers := utils.ParseSymbols(nil, param.Tickers)
	if len(tickers) == 0 {
		return param, fmt.Errorf("%w: tickers are required", entity.ErrInvalidParameter)
	}
	for _, t := range tickers {
		if !utils.IsValidSymbol(t) {
			return param, fmt.Errorf("%w: ticker %q", entity.ErrInvalidParameter, t)
		}
	}
	param.Tickers = strings.Join(tickers, ",")
	param.Topics = strings.TrimSpace(param.Topics)

	if param.Limit == 0 {
		param.Limit = s.cfg.Report.NewsLimit
		if param.Limit == 0 {
			param.Limit = dto.DefaultNewsLimit
		}
	}
	if param.Limit < 1 || param.Limit > dto.MaxNewsLimit {
		return param, fmt.Errorf("%w: limit %d must be within [1, %d]", entity.ErrInvalidParameter, param.Limit, dto.MaxNewsLimit)
	}

	param.Sort = strings.ToUpper(strings.TrimSpace(param.Sort))
	if param.Sort == "" {
		param.Sort = strings.ToUpper(s.cfg.Report.Sort)
		if param.Sort == "" {
			param.Sort = dto.SortLatest
		}
	}
	if !isSortOrder(param.Sort) {
		return param, fmt.Errorf("%w: sort %q must be one of %s", entity.ErrInvalidParameter, param.Sort, strings.Join(dto.SortOrders, ", "))
	}
	return param, nil
}

func normalizeInterval(interval string) (string, error) {
	interval = strings.ToLower(strings.TrimSpace(interval))
	if interval == "" {
		return entity.DefaultInterval, nil
	}
	if !entity.IsValidInterval(interval) {
		return "", fmt.Errorf("%w: interval %q must be one of %s", entity.ErrInvalidParameter, interval, strings.Join(entity.Intervals, ", "))
	}
	return interval, nil
}

func isSortOrder(sort string) bool {
	for _, o := range dto.SortOrders {
		if o == sort {
			return true
		}
	}
	return false
}
