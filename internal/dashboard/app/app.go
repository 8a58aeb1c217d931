package app

import (
	"errors"

	"golang-market-sentiment/internal/dashboard/config"
	"golang-market-sentiment/internal/dashboard/repository"
	"golang-market-sentiment/internal/dashboard/service"
	"golang-market-sentiment/internal/report"
	"golang-market-sentiment/pkg/logger"
	"golang-market-sentiment/pkg/redis"
	"golang-market-sentiment/pkg/telegram"
)

// App holds the services shared by the HTTP server and the CLI.
type App struct {
	Market  service.MarketDataService
	Reports service.SentimentReportService
	QA      service.QAService

	redisClient *redis.Client
}

// New wires repositories and services from cfg. Redis and Telegram are only
// connected when enabled.
func New(cfg *config.Config, log *logger.Logger) (*App, error) {
	a := &App{}

	var (
		locker repository.KeyLocker
		events repository.EventPublisher
	)
	if cfg.Redis.Enabled {
		client, err := redis.NewClient(redis.Config{
			Host:         cfg.Redis.Host,
			Port:         cfg.Redis.Port,
			Password:     cfg.Redis.Password,
			DB:           cfg.Redis.DB,
			PoolSize:     cfg.Redis.PoolSize,
			StreamMaxLen: cfg.Redis.StreamMaxLen,
		})
		if err != nil {
			return nil, err
		}
		a.redisClient = client
		locker = redis.NewLocker(client, cfg.Storage.LockTTL, log)
		events = client
		log.Info("Redis file locks and save events enabled", logger.Field("host", cfg.Redis.Host), logger.IntField("port", cfg.Redis.Port))
	}

	var notifier telegram.Notifier
	if cfg.Telegram.Enabled {
		n, err := telegram.NewClient(cfg.Telegram.BotToken, cfg.Telegram.ChatID)
		if err != nil {
			_ = a.Close()
			return nil, err
		}
		notifier = n
	}

	avRepo := repository.NewAlphaVantageRepository(cfg, log)
	storeRepo := repository.NewFileStoreRepository(cfg, log, locker, events)
	qaRepo := repository.NewQAProxyRepository(cfg, log)

	renderer := report.NewPDFRenderer(report.Options{Compress: cfg.Report.Compress})

	a.Market = service.NewMarketDataService(cfg, avRepo, storeRepo, log)
	a.Reports = service.NewSentimentReportService(cfg, a.Market, renderer, storeRepo, notifier, log)
	a.QA = service.NewQAService(qaRepo, log)

	return a, nil
}

// Close releases the Redis connection, if any.
func (a *App) Close() error {
	var errs []error
	if a.redisClient != nil {
		errs = append(errs, a.redisClient.Close())
	}
	return errors.Join(errs...)
}
