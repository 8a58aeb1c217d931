package main

import (
	"context"
	"strings"

	"golang-market-sentiment/internal/dashboard/dto"
	"golang-market-sentiment/internal/entity"
	"golang-market-sentiment/pkg/utils"

	"github.com/spf13/cobra"
)

func newStockCmd() *cobra.Command {
	var (
		symbols  string
		interval string
		rows     int
	)
	cmd := &cobra.Command{
		Use:   "stock",
		Short: "Fetch intraday series for one or more symbols",
		Run: run(func(ctx context.Context, env *cliEnv, args []string) error {
			results, err := env.services.Market.FetchStockSeriesBatch(ctx, utils.ParseSymbols(args, symbols), interval)
			if err != nil {
				return err
			}
			for _, r := range results {
				printer.Header(r.Symbol + " (" + r.Interval + ")")
				if r.Error != "" {
					printer.Error("%s: %s", r.Symbol, r.Error)
					continue
				}
				if err := printer.Table(seriesHeaders, seriesRows(r.Points, rows)); err != nil {
					return err
				}
				printer.Success("saved %s", r.FilePath)
			}
			return nil
		}),
	}
	cmd.Flags().StringVarP(&symbols, "symbols", "s", "", "Comma separated symbols, in addition to positional arguments")
	cmd.Flags().StringVarP(&interval, "interval", "i", entity.DefaultInterval, "One of "+strings.Join(entity.Intervals, ", "))
	cmd.Flags().IntVarP(&rows, "rows", "n", 10, "Number of most recent bars to print, 0 for all")
	return cmd
}

func newMoversCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "movers",
		Short: "Fetch top gainers, losers and most actively traded tickers",
		Run: run(func(ctx context.Context, env *cliEnv, args []string) error {
			res, err := env.services.Market.FetchTopMovers(ctx)
			if err != nil {
				return err
			}
			if res.LastUpdated != "" {
				printer.Info("Last updated: %s", res.LastUpdated)
			}
			for _, section := range []struct {
				title  string
				movers []entity.Mover
			}{
				{"Top Gainers", res.Gainers},
				{"Top Losers", res.Losers},
				{"Most Actively Traded", res.MostActive},
			} {
				if len(section.movers) == 0 {
					continue
				}
				printer.Header(section.title)
				if err := printer.Table(moverHeaders, moverRows(section.movers)); err != nil {
					return err
				}
			}
			for _, p := range res.FilePaths {
				printer.Success("saved %s", p)
			}
			return nil
		}),
	}
}

func newSentimentCmd() *cobra.Command {
	var param dto.NewsSentimentParam
	cmd := &cobra.Command{
		Use:   "sentiment",
		Short: "Fetch the news sentiment feed for tickers",
		Run: run(func(ctx context.Context, env *cliEnv, args []string) error {
			res, err := env.services.Market.FetchNewsSentiment(ctx, param)
			if err != nil {
				return err
			}
			printer.Header("News Sentiment: " + res.Tickers)
			if err := printer.Table(articleHeaders, articleRows(printer, res.Articles)); err != nil {
				return err
			}
			printer.Success("saved %s", res.FilePath)
			return nil
		}),
	}
	cmd.Flags().StringVarP(&param.Tickers, "tickers", "t", "", "Comma separated tickers")
	cmd.Flags().StringVar(&param.Topics, "topics", "", "Topic filter")
	cmd.Flags().IntVarP(&param.Limit, "limit", "l", 0, "Number of articles, 1 to 1000 (default from config)")
	cmd.Flags().StringVar(&param.Sort, "sort", "", "One of "+strings.Join(dto.SortOrders, ", ")+" (default from config)")
	_ = cmd.MarkFlagRequired("tickers")
	return cmd
}

func newReportCmd() *cobra.Command {
	var (
		req       dto.SentimentReportRequest
		threshold float64
	)
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Build the filtered PDF sentiment report for tickers",
		Run: run(func(ctx context.Context, env *cliEnv, args []string) error {
			if len(args) > 0 && req.Tickers == "" {
				req.Tickers = strings.Join(args, ",")
			}
			req.Threshold = nil
			if threshold >= 0 {
				req.Threshold = &threshold
			}

			res, err := env.services.Reports.GenerateReport(ctx, req)
			if err != nil {
				return err
			}

			printer.Header("News Sentiment Report: " + res.Subject)
			if len(res.Articles) == 0 {
				printer.Warning("No articles met the relevance threshold (%.2f).", res.Threshold)
			} else if err := printer.Table(reportHeaders, reportRows(printer, res.Articles)); err != nil {
				return err
			}
			if res.Skipped > 0 {
				printer.Warning("skipped %d malformed articles", res.Skipped)
			}
			if req.Notify && !res.Notified {
				printer.Warning("Telegram digest was not sent")
			}
			printer.Success("saved %s", res.FilePath)
			return nil
		}),
	}
	cmd.Flags().StringVarP(&req.Tickers, "tickers", "t", "", "Comma separated tickers")
	cmd.Flags().StringVar(&req.Topics, "topics", "", "Topic filter")
	cmd.Flags().IntVarP(&req.Limit, "limit", "l", 0, "Number of articles, 1 to 1000 (default from config)")
	cmd.Flags().StringVar(&req.Sort, "sort", "", "One of "+strings.Join(dto.SortOrders, ", ")+" (default from config)")
	cmd.Flags().Float64Var(&threshold, "threshold", -1, "Minimum topic relevance in [0, 1] (default from config)")
	cmd.Flags().BoolVar(&req.Notify, "notify", false, "Send the report digest to Telegram")
	return cmd
}

func newFilesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "files",
		Short: "List saved data files",
		Run: run(func(ctx context.Context, env *cliEnv, args []string) error {
			files, err := env.services.Market.ListSavedFiles(ctx)
			if err != nil {
				return err
			}
			if len(files) == 0 {
				printer.Info("No saved data available.")
				return nil
			}
			return printer.Table(fileHeaders, fileRows(files))
		}),
	}
}
