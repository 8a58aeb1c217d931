package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"golang-market-sentiment/internal/dashboard/config"
	"golang-market-sentiment/internal/dashboard/dto"
	"golang-market-sentiment/internal/entity"
	"golang-market-sentiment/pkg/common"
	"golang-market-sentiment/pkg/logger"
	"golang-market-sentiment/pkg/tracing"
	"golang-market-sentiment/pkg/utils"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"
)

// upstream keys that carry an explanation when the expected data is absent
var upstreamNoticeKeys = []string{"Error Message", "Information", "Note"}

// AlphaVantageRepository fetches market data from the Alpha Vantage query API.
type AlphaVantageRepository interface {
	// Query issues one GET for function and returns the decoded top-level object.
	// It fails with entity.ErrDataUnavailable unless every required key is present.
	Query(ctx context.Context, function string, params url.Values, requiredKeys ...string) (map[string]json.RawMessage, error)
	GetIntradaySeries(ctx context.Context, symbol, interval string) ([]entity.SeriesPoint, error)
	GetTopMovers(ctx context.Context) (*entity.MarketMovers, error)
	GetNewsSentiment(ctx context.Context, param dto.NewsSentimentParam) (*dto.NewsFeed, error)
}

type alphaVantageRepository struct {
	cfg        *config.Config
	log        *logger.Logger
	httpClient *http.Client
}

// NewAlphaVantageRepository creates an AlphaVantageRepository.
func NewAlphaVantageRepository(cfg *config.Config, log *logger.Logger) AlphaVantageRepository {
	return &alphaVantageRepository{
		cfg: cfg,
		log: log,
		httpClient: &http.Client{
			Timeout: cfg.AlphaVantage.Timeout,
		},
	}
}

func (r *alphaVantageRepository) Query(ctx context.Context, function string, params url.Values, requiredKeys ...string) (map[string]json.RawMessage, error) {
	ctx, span := tracing.StartSpan(ctx, "alphavantage."+strings.ToLower(function))
	defer span.End()
	span.SetAttributes(attribute.String("alphavantage.function", function))

	query := url.Values{}
	for k, v := range params {
		query[k] = v
	}
	query.Set("function", function)
	query.Set("apikey", r.cfg.AlphaVantage.APIKey)

	fields := []zap.Field{
		zap.String("function", function),
		zap.Strings("required_keys", requiredKeys),
	}

	body, err := r.sendRequest(ctx, r.cfg.AlphaVantage.BaseURL+"?"+query.Encode(), fields)
	if err != nil {
		span.SetStatus(codes.Error, "request failed")
		return nil, fmt.Errorf("%w: %s request failed", entity.ErrDataUnavailable, function)
	}

	var payload map[string]json.RawMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		r.log.ErrorContext(ctx, "Failed to decode Alpha Vantage response", append(fields, zap.Error(err))...)
		span.SetStatus(codes.Error, "decode failed")
		return nil, fmt.Errorf("%w: %s response is not a JSON object", entity.ErrDataUnavailable, function)
	}

	for _, key := range requiredKeys {
		if _, ok := payload[key]; ok {
			continue
		}
		notice := fields
		for _, nk := range upstreamNoticeKeys {
			if v, ok := payload[nk]; ok {
				notice = append(notice, zap.String("upstream_"+strings.ToLower(strings.ReplaceAll(nk, " ", "_")), string(v)))
			}
		}
		r.log.WarnContext(ctx, "Alpha Vantage response is missing an expected key", append(notice, zap.String("missing_key", key))...)
		span.SetStatus(codes.Error, "missing key")
		return nil, fmt.Errorf("%w: %s response has no %q", entity.ErrDataUnavailable, function, key)
	}

	return payload, nil
}

func (r *alphaVantageRepository) GetIntradaySeries(ctx context.Context, symbol, interval string) ([]entity.SeriesPoint, error) {
	if !entity.IsValidInterval(interval) {
		return nil, fmt.Errorf("%w: interval %q must be one of %s", entity.ErrInvalidParameter, interval, strings.Join(entity.Intervals, ", "))
	}

	seriesKey := fmt.Sprintf("Time Series (%s)", interval)
	payload, err := r.Query(ctx, common.FunctionTimeSeriesIntraday, url.Values{
		"symbol":   {symbol},
		"interval": {interval},
	}, seriesKey)
	if err != nil {
		return nil, err
	}

	var bars map[string]dto.AlphaVantageSeriesBar
	if err := json.Unmarshal(payload[seriesKey], &bars); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", entity.ErrMalformedResponse, seriesKey, err)
	}

	points := make([]entity.SeriesPoint, 0, len(bars))
	for ts, bar := range bars {
		point, err := toSeriesPoint(ts, bar)
		if err != nil {
			return nil, fmt.Errorf("%w: series point %s: %v", entity.ErrMalformedResponse, ts, err)
		}
		points = append(points, point)
	}

	// upstream lists the newest bar first; map decoding loses that order
	sort.Slice(points, func(i, j int) bool {
		return points[i].Timestamp.After(points[j].Timestamp)
	})

	r.log.DebugContext(ctx, "Fetched intraday series",
		logger.StringField("symbol", symbol),
		logger.StringField("interval", interval),
		logger.IntField("points", len(points)))

	return points, nil
}

func (r *alphaVantageRepository) GetTopMovers(ctx context.Context) (*entity.MarketMovers, error) {
	payload, err := r.Query(ctx, common.FunctionTopGainersLosers, nil, "top_gainers", "top_losers")
	if err != nil {
		return nil, err
	}

	var (
		movers = &entity.MarketMovers{}
		lists  = []struct {
			key string
			dst *[]entity.Mover
		}{
			{"top_gainers", &movers.Gainers},
			{"top_losers", &movers.Losers},
			{"most_actively_traded", &movers.MostActive},
		}
	)

	for _, l := range lists {
		raw, ok := payload[l.key]
		if !ok {
			continue
		}
		var items []dto.AlphaVantageMover
		if err := json.Unmarshal(raw, &items); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", entity.ErrMalformedResponse, l.key, err)
		}
		for i, item := range items {
			mover, err := toMover(i+1, item)
			if err != nil {
				return nil, fmt.Errorf("%w: %s[%d]: %v", entity.ErrMalformedResponse, l.key, i, err)
			}
			*l.dst = append(*l.dst, mover)
		}
	}

	if raw, ok := payload["last_updated"]; ok {
		if err := json.Unmarshal(raw, &movers.LastUpdated); err != nil {
			r.log.DebugContext(ctx, "Ignoring undecodable last_updated", zap.ByteString("last_updated", raw), zap.Error(err))
		}
	}

	return movers, nil
}

func (r *alphaVantageRepository) GetNewsSentiment(ctx context.Context, param dto.NewsSentimentParam) (*dto.NewsFeed, error) {
	params := url.Values{
		"tickers": {param.Tickers},
		"limit":   {strconv.Itoa(param.Limit)},
		"sort":    {param.Sort},
	}
	if param.Topics != "" {
		params.Set("topics", param.Topics)
	}

	payload, err := r.Query(ctx, common.FunctionNewsSentiment, params, "feed")
	if err != nil {
		return nil, err
	}

	var items []dto.AlphaVantageFeedItem
	if err := json.Unmarshal(payload["feed"], &items); err != nil {
		return nil, fmt.Errorf("%w: feed: %v", entity.ErrMalformedResponse, err)
	}

	articles := make([]entity.Article, 0, len(items))
	for _, item := range items {
		articles = append(articles, toArticle(item))
	}

	r.log.DebugContext(ctx, "Fetched news sentiment feed",
		logger.StringField("tickers", param.Tickers),
		logger.IntField("articles", len(articles)))

	return &dto.NewsFeed{Raw: payload["feed"], Articles: articles}, nil
}

func (r *alphaVantageRepository) sendRequest(ctx context.Context, endpoint string, fields []zap.Field) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		r.log.ErrorContext(ctx, "Failed to create new http request", append(fields, zap.Error(redactURLError(err)))...)
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := r.httpClient.Do(req)
	if err != nil {
		r.log.ErrorContext(ctx, "Failed to send request to Alpha Vantage API", append(fields, zap.Error(redactURLError(err)))...)
		return nil, err
	}
	defer resp.Body.Close()

	fields = append(fields, zap.Int("status_code", resp.StatusCode), zap.Duration("elapsed", time.Since(start)))
	if resp.StatusCode != http.StatusOK {
		r.log.ErrorContext(ctx, "Received non-OK response from Alpha Vantage API", fields...)
		return nil, fmt.Errorf("unexpected status code %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		r.log.ErrorContext(ctx, "Failed to read response body from Alpha Vantage API", append(fields, zap.Error(err))...)
		return nil, err
	}

	return body, nil
}

// redactURLError drops the request URL, which carries the API key, from transport errors.
func redactURLError(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return fmt.Errorf("%s: %w", urlErr.Op, urlErr.Err)
	}
	return err
}

func toSeriesPoint(ts string, bar dto.AlphaVantageSeriesBar) (entity.SeriesPoint, error) {
	t, err := time.Parse(utils.SeriesTimestampLayout, ts)
	if err != nil {
		return entity.SeriesPoint{}, err
	}

	var point = entity.SeriesPoint{Timestamp: t}
	for _, f := range []struct {
		raw string
		dst *decimal.Decimal
	}{
		{bar.Open, &point.Open},
		{bar.High, &point.High},
		{bar.Low, &point.Low},
		{bar.Close, &point.Close},
	} {
		if *f.dst, err = decimal.NewFromString(f.raw); err != nil {
			return entity.SeriesPoint{}, err
		}
	}

	if point.Volume, err = strconv.ParseInt(bar.Volume, 10, 64); err != nil {
		return entity.SeriesPoint{}, err
	}
	return point, nil
}

func toMover(rank int, item dto.AlphaVantageMover) (entity.Mover, error) {
	price, err := decimal.NewFromString(item.Price)
	if err != nil {
		return entity.Mover{}, err
	}
	change, err := decimal.NewFromString(item.ChangeAmount)
	if err != nil {
		return entity.Mover{}, err
	}
	volume, err := strconv.ParseInt(item.Volume, 10, 64)
	if err != nil {
		return entity.Mover{}, err
	}

	return entity.Mover{
		Rank:             rank,
		Ticker:           item.Ticker,
		Price:            price,
		ChangeAmount:     change,
		ChangePercentage: item.ChangePercentage,
		Volume:           volume,
	}, nil
}

func toArticle(item dto.AlphaVantageFeedItem) entity.Article {
	article := entity.Article{
		Title:          item.Title,
		Summary:        item.Summary,
		URL:            item.URL,
		Source:         item.Source,
		SentimentLabel: item.OverallSentimentLabel,
		PublishedRaw:   item.TimePublished,
	}

	if item.OverallSentimentScore != nil {
		article.SentimentScore = utils.ToPointer(float64(*item.OverallSentimentScore))
	}
	if t, err := utils.ParseCompactTimestamp(item.TimePublished); err == nil {
		article.PublishedAt = &t
	}
	for _, t := range item.Topics {
		article.Topics = append(article.Topics, entity.Topic{
			Name:      t.Topic,
			Relevance: float64(t.RelevanceScore),
		})
	}
	return article
}
