package service

import (
	"context"
	"fmt"
	"strings"

	"golang-market-sentiment/internal/dashboard/config"
	"golang-market-sentiment/internal/dashboard/dto"
	"golang-market-sentiment/internal/dashboard/repository"
	"golang-market-sentiment/internal/entity"
	"golang-market-sentiment/internal/sentiment"
	"golang-market-sentiment/pkg/common"
	"golang-market-sentiment/pkg/logger"
	"golang-market-sentiment/pkg/telegram"
	"golang-market-sentiment/pkg/tracing"
	"golang-market-sentiment/pkg/utils"

	"go.opentelemetry.io/otel/attribute"
)

// ReportRenderer turns filtered articles into a document.
type ReportRenderer interface {
	Render(articles []entity.FilteredArticle, subject string) ([]byte, error)
}

// SentimentReportService builds filtered news sentiment reports.
type SentimentReportService interface {
	GenerateReport(ctx context.Context, req dto.SentimentReportRequest) (*dto.SentimentReportResult, error)
	// ReportFilePath resolves the last saved report for tickers.
	ReportFilePath(tickers string) (string, error)
}

type sentimentReportService struct {
	cfg      *config.Config
	market   MarketDataService
	renderer ReportRenderer
	store    repository.FileStoreRepository
	notifier telegram.Notifier
	log      *logger.Logger
}

// NewSentimentReportService creates a new SentimentReportService. notifier may be nil
// when Telegram delivery is disabled.
func NewSentimentReportService(
	cfg *config.Config,
	market MarketDataService,
	renderer ReportRenderer,
	store repository.FileStoreRepository,
	notifier telegram.Notifier,
	log *logger.Logger,
) SentimentReportService {
	return &sentimentReportService{
		cfg:      cfg,
		market:   market,
		renderer: renderer,
		store:    store,
		notifier: notifier,
		log:      log,
	}
}

func (s *sentimentReportService) GenerateReport(ctx context.Context, req dto.SentimentReportRequest) (*dto.SentimentReportResult, error) {
	threshold := s.cfg.Report.RelevanceThreshold
	if req.Threshold != nil {
		threshold = *req.Threshold
	}
	if err := sentiment.ValidateThreshold(threshold); err != nil {
		return nil, err
	}

	ctx, span := tracing.StartSpan(ctx, "report.generate")
	defer span.End()

	feed, err := s.market.FetchNewsSentiment(ctx, dto.NewsSentimentParam{
		Tickers: req.Tickers,
		Topics:  req.Topics,
		Limit:   req.Limit,
		Sort:    req.Sort,
	})
	if err != nil {
		return nil, err
	}
	subject := feed.Tickers
	span.SetAttributes(attribute.String("report.subject", subject), attribute.Int("report.fetched", len(feed.Articles)))

	filtered := sentiment.ExtractRelevant(feed.Articles, threshold)
	kept := make([]entity.FilteredArticle, 0, len(filtered))
	for i, a := range filtered {
		if err := sentiment.ValidateArticle(a); err != nil {
			s.log.WarnContext(ctx, "Skipping malformed article",
				logger.StringField("subject", subject),
				logger.IntField("index", i),
				logger.StringField("url", a.URL),
				logger.ErrorField(err))
			continue
		}
		kept = append(kept, a)
	}

	pdf, err := s.renderer.Render(kept, subject)
	if err != nil {
		return nil, fmt.Errorf("failed to render report for %s: %w", subject, err)
	}

	path, err := s.store.SaveReport(ctx, subject, pdf)
	if err != nil {
		return nil, fmt.Errorf("failed to save report for %s: %w", subject, err)
	}

	s.log.InfoContext(ctx, "Generated sentiment report",
		logger.StringField("subject", subject),
		logger.Field("threshold", threshold),
		logger.IntField("fetched", len(feed.Articles)),
		logger.IntField("kept", len(kept)),
		logger.IntField("skipped", len(filtered)-len(kept)),
		logger.StringField("path", path))

	result := &dto.SentimentReportResult{
		Subject:   subject,
		Threshold: threshold,
		Articles:  kept,
		Skipped:   len(filtered) - len(kept),
		FilePath:  path,
		FeedPath:  feed.FilePath,
		PDF:       pdf,
	}

	if req.Notify {
		result.Notified = s.notify(ctx, entity.Report{Subject: subject, Threshold: threshold, Articles: kept})
	}

	return result, nil
}

func (s *sentimentReportService) notify(ctx context.Context, report entity.Report) bool {
	if s.notifier == nil {
		s.log.WarnContext(ctx, "Telegram notifier is disabled, report digest not sent", logger.StringField("subject", report.Subject))
		return false
	}

	messages := telegram.FormatSentimentReportForTelegram(report)
	if err := telegram.SendAll(s.notifier, messages); err != nil {
		s.log.ErrorContext(ctx, "Failed to send report digest to Telegram",
			logger.StringField("subject", report.Subject),
			logger.ErrorField(err))
		return false
	}
	return true
}

func (s *sentimentReportService) ReportFilePath(tickers string) (string, error) {
	symbols := utils.ParseSymbols(nil, tickers)
	if len(symbols) == 0 {
		return "", fmt.Errorf("%w: tickers are required", entity.ErrInvalidParameter)
	}
	key := utils.TickersKey(strings.Join(symbols, ","))
	return s.store.Path(fmt.Sprintf(common.SentimentReportFileFormat, key))
}
