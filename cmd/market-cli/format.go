package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"golang-market-sentiment/internal/dashboard/dto"
	"golang-market-sentiment/internal/entity"
	"golang-market-sentiment/pkg/output"
	"golang-market-sentiment/pkg/utils"
)

var (
	seriesHeaders  = []string{"timestamp", "open", "high", "low", "close", "volume"}
	moverHeaders   = []string{"#", "ticker", "price", "change", "change %", "volume"}
	articleHeaders = []string{"published", "title", "sentiment", "score", "topics"}
	reportHeaders  = []string{"published", "title", "sentiment", "score", "relevant topics"}
	fileHeaders    = []string{"name", "size", "modified"}
)

const maxTitleLen = 60

func seriesRows(points []entity.SeriesPoint, limit int) [][]string {
	if limit > 0 && len(points) > limit {
		points = points[:limit]
	}
	rows := make([][]string, 0, len(points))
	for _, p := range points {
		rows = append(rows, []string{
			p.Timestamp.Format(utils.SeriesTimestampLayout),
			p.Open.String(),
			p.High.String(),
			p.Low.String(),
			p.Close.String(),
			strconv.FormatInt(p.Volume, 10),
		})
	}
	return rows
}

func moverRows(movers []entity.Mover) [][]string {
	rows := make([][]string, 0, len(movers))
	for _, m := range movers {
		rows = append(rows, []string{
			strconv.Itoa(m.Rank),
			m.Ticker,
			m.Price.String(),
			m.ChangeAmount.String(),
			m.ChangePercentage,
			strconv.FormatInt(m.Volume, 10),
		})
	}
	return rows
}

func articleRows(p *output.Printer, articles []entity.Article) [][]string {
	rows := make([][]string, 0, len(articles))
	for _, a := range articles {
		topics := make([]string, 0, len(a.Topics))
		for _, t := range a.Topics {
			topics = append(topics, fmt.Sprintf("%s (%.2f)", t.Name, t.Relevance))
		}
		rows = append(rows, []string{
			published(a.PublishedAt, a.PublishedRaw),
			truncate(a.Title, maxTitleLen),
			p.SentimentLabel(a.SentimentLabel),
			score(a.SentimentScore),
			strings.Join(topics, ", "),
		})
	}
	return rows
}

func reportRows(p *output.Printer, articles []entity.FilteredArticle) [][]string {
	rows := make([][]string, 0, len(articles))
	for _, a := range articles {
		rows = append(rows, []string{
			published(a.PublishedAt, a.PublishedRaw),
			truncate(a.Title, maxTitleLen),
			p.SentimentLabel(a.SentimentLabel),
			score(a.SentimentScore),
			strings.Join(a.QualifyingTopics, ", "),
		})
	}
	return rows
}

func fileRows(files []dto.SavedFileResponse) [][]string {
	rows := make([][]string, 0, len(files))
	for _, f := range files {
		rows = append(rows, []string{
			f.Name,
			strconv.FormatInt(f.Size, 10),
			utils.PrettyDate(f.ModifiedAt),
		})
	}
	return rows
}

func published(at *time.Time, raw string) string {
	switch {
	case at != nil:
		return at.Format(utils.DisplayTimestampLayout)
	case raw == "":
		return "N/A"
	default:
		return raw
	}
}

func score(s *float64) string {
	if s == nil {
		return "N/A"
	}
	return fmt.Sprintf("%.4f", *s)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
