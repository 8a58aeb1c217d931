package dto

import (
	"encoding/json"
	"time"

	"golang-market-sentiment/internal/entity"
)

// ErrorResponse represents a generic error response body.
type ErrorResponse struct {
	Error string `json:"error"`
}

// OptionsResponse lists the choices offered by the dashboard controls.
type OptionsResponse struct {
	PopularSymbols            []string `json:"popular_symbols"`
	Intervals                 []string `json:"intervals"`
	SortOrders                []string `json:"sort_orders"`
	DefaultInterval           string   `json:"default_interval"`
	DefaultNewsLimit          int      `json:"default_news_limit"`
	DefaultRelevanceThreshold float64  `json:"default_relevance_threshold"`
}

// StockSeriesBatchRequest selects symbols from the popular list and/or a comma-separated free text field.
type StockSeriesBatchRequest struct {
	Symbols       []string `json:"symbols"`
	ManualSymbols string   `json:"manual_symbols"`
	Interval      string   `json:"interval"`
}

// StockSeriesResult is the outcome of fetching one symbol.
type StockSeriesResult struct {
	Symbol   string               `json:"symbol"`
	Interval string               `json:"interval"`
	FilePath string               `json:"file_path,omitempty"`
	Points   []entity.SeriesPoint `json:"points,omitempty"`
	Error    string               `json:"error,omitempty"`
}

// MarketMoversResult is the movers snapshot together with the files it was saved to.
type MarketMoversResult struct {
	*entity.MarketMovers
	FilePaths []string `json:"file_paths"`
}

// NewsSentimentResult is a fetched feed together with the file the raw feed was saved to.
type NewsSentimentResult struct {
	Tickers  string           `json:"tickers"`
	FilePath string           `json:"file_path"`
	Articles []entity.Article `json:"articles"`
}

// SentimentReportRequest asks for a filtered PDF report. A nil Threshold uses the configured default.
type SentimentReportRequest struct {
	Tickers   string   `json:"tickers"`
	Topics    string   `json:"topics"`
	Limit     int      `json:"limit"`
	Sort      string   `json:"sort"`
	Threshold *float64 `json:"threshold"`
	Notify    bool     `json:"notify"`
}

// SentimentReportResult summarises a generated report.
type SentimentReportResult struct {
	Subject   string                   `json:"subject"`
	Threshold float64                  `json:"threshold"`
	Articles  []entity.FilteredArticle `json:"articles"`
	Skipped   int                      `json:"skipped"`
	FilePath  string                   `json:"file_path"`
	FeedPath  string                   `json:"feed_path"`
	Notified  bool                     `json:"notified"`
	PDF       []byte                   `json:"-"`
}

// SavedFileResponse describes one file in the data directory.
type SavedFileResponse struct {
	Name       string    `json:"name"`
	Size       int64     `json:"size"`
	ModifiedAt time.Time `json:"modified_at"`
}

// QADocument is one document indexed by the question-answering service.
type QADocument struct {
	Path string `json:"path"`
}

// QAAnswerRequest is a question for the question-answering service.
type QAAnswerRequest struct {
	Prompt string `json:"prompt"`
}

// QAAnswerResponse wraps the answer exactly as the service returned it.
type QAAnswerResponse struct {
	Answer json.RawMessage `json:"answer" swaggertype:"object"`
}

// HealthResponse is the liveness payload.
type HealthResponse struct {
	Status string    `json:"status"`
	Time   time.Time `json:"time"`
}
