package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"golang-market-sentiment/internal/dashboard/app"
	"golang-market-sentiment/internal/dashboard/config"
	"golang-market-sentiment/pkg/logger"
	"golang-market-sentiment/pkg/output"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	configPath string
	verbose    bool
	printer    = output.NewPrinter(output.UseColors())
)

// cliEnv is everything a subcommand needs, built once per invocation.
type cliEnv struct {
	cfg      *config.Config
	log      *logger.Logger
	services *app.App
}

func setup() (*cliEnv, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Failed to load .env file: %v", err)
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	level := "error"
	if verbose {
		level = "debug"
	}
	appLogger, err := logger.New(level, "console")
	if err != nil {
		return nil, err
	}

	services, err := app.New(cfg, appLogger)
	if err != nil {
		return nil, err
	}
	return &cliEnv{cfg: cfg, log: appLogger, services: services}, nil
}

func (e *cliEnv) close() {
	_ = e.services.Close()
	_ = e.log.Sync()
}

// run wraps a subcommand body with setup, signal handling and error reporting.
func run(fn func(ctx context.Context, env *cliEnv, args []string) error) func(cmd *cobra.Command, args []string) {
	return func(cmd *cobra.Command, args []string) {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		env, err := setup()
		if err != nil {
			printer.Error("%v", err)
			os.Exit(1)
		}

		err = fn(ctx, env, args)
		env.close()
		if err != nil {
			printer.Error("%v", err)
			os.Exit(1)
		}
	}
}

func main() {
	rootCmd := &cobra.Command{
		Use:   "market-cli",
		Short: "Fetch market data and build news sentiment reports from the terminal",
	}
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "configs/config-dashboard.yaml", "Path to the configuration file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log debug output to stderr")

	rootCmd.AddCommand(
		newStockCmd(),
		newMoversCmd(),
		newSentimentCmd(),
		newReportCmd(),
		newFilesCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing market-cli: %s\n", err)
		os.Exit(1)
	}
}
