package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang-market-sentiment/internal/dashboard/app"
	"golang-market-sentiment/internal/dashboard/config"
	delivery "golang-market-sentiment/internal/dashboard/delivery/http"
	_ "golang-market-sentiment/internal/dashboard/docs"
	"golang-market-sentiment/pkg/logger"
	"golang-market-sentiment/pkg/tracing"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/spf13/cobra"
	swagger "github.com/swaggo/echo-swagger"
)

var configPath string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Starts the market sentiment dashboard API",
	Run:   runServe,
}

func runServe(cmd *cobra.Command, args []string) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Failed to load .env file: %v", err)
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger, err := logger.New(cfg.Logger.Level, cfg.Logger.Encoding)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = appLogger.Sync() }()

	appLogger.Info("Starting Dashboard Service", logger.Field("name", cfg.App.Name), logger.Field("env", cfg.App.Env))

	shutdownTracing, err := tracing.Init(ctx, cfg.Tracing.Enabled, cfg.App.Name, cfg.App.Version)
	if err != nil {
		appLogger.Fatal("Failed to initialize tracing", logger.ErrorField(err))
	}
	defer func() { _ = shutdownTracing(context.Background()) }()

	services, err := app.New(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize services", logger.ErrorField(err))
	}
	defer services.Close()

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())

	apiV1 := e.Group("/api/v1")
	delivery.NewMarketHandler(cfg, services.Market, appLogger).RegisterRoutes(apiV1)
	delivery.NewReportHandler(services.Reports, appLogger).RegisterRoutes(apiV1.Group("/reports/sentiment"))
	delivery.NewFileHandler(services.Market, appLogger).RegisterRoutes(apiV1.Group("/files"))
	delivery.NewQAHandler(services.QA, appLogger).RegisterRoutes(apiV1.Group("/qa"))
	apiV1.GET("/health", delivery.Health)

	e.GET("/swagger/*", swagger.WrapHandler)

	go func() {
		addr := fmt.Sprintf("%s:%d", cfg.API.Host, cfg.API.Port)
		appLogger.Info("HTTP server starting", logger.Field("address", addr))
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			appLogger.Error("HTTP server failed to start", logger.ErrorField(err))
			stop()
		}
	}()

	<-ctx.Done()

	appLogger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("Server forced to shutdown", logger.ErrorField(err))
	}

	appLogger.Info("Server exiting")
}

// @title Market Sentiment Dashboard API
// @version 1.0
// @description Intraday series, market movers, news sentiment feeds and filtered PDF sentiment reports.
// @BasePath /api/v1
func main() {
	rootCmd := &cobra.Command{Use: "dashboard-service"}

	serveCmd.Flags().StringVarP(&configPath, "config", "c", "configs/config-dashboard.yaml", "Path to the configuration file")

	rootCmd.AddCommand(serveCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing dashboard-service CLI: %s\n", err)
		os.Exit(1)
	}
}
