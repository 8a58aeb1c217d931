package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"golang-market-sentiment/internal/entity"
)

// Numeric decodes a number the upstream API sends either as a JSON number or as a string.
type Numeric float64

func (n *Numeric) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}

	s := string(data)
	if strings.HasPrefix(s, `"`) {
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
	}

	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return fmt.Errorf("invalid numeric value %q", s)
	}
	*n = Numeric(v)
	return nil
}

// AlphaVantageSeriesBar is one entry of a "Time Series (interval)" object.
type AlphaVantageSeriesBar struct {
	Open   string `json:"1. open"`
	High   string `json:"2. high"`
	Low    string `json:"3. low"`
	Close  string `json:"4. close"`
	Volume string `json:"5. volume"`
}

// AlphaVantageMover is one entry of the top_gainers / top_losers arrays.
type AlphaVantageMover struct {
	Ticker           string `json:"ticker"`
	Price            string `json:"price"`
	ChangeAmount     string `json:"change_amount"`
	ChangePercentage string `json:"change_percentage"`
	Volume           string `json:"volume"`
}

// AlphaVantageTopic is a topic tag of a feed item.
type AlphaVantageTopic struct {
	Topic          string  `json:"topic"`
	RelevanceScore Numeric `json:"relevance_score"`
}

// AlphaVantageFeedItem is one article of the NEWS_SENTIMENT feed.
type AlphaVantageFeedItem struct {
	Title                 string              `json:"title"`
	URL                   string              `json:"url"`
	TimePublished         string              `json:"time_published"`
	Summary               string              `json:"summary"`
	Source                string              `json:"source"`
	Topics                []AlphaVantageTopic `json:"topics"`
	OverallSentimentScore *Numeric            `json:"overall_sentiment_score"`
	OverallSentimentLabel string              `json:"overall_sentiment_label"`
}

// NewsFeed is a decoded NEWS_SENTIMENT response.
type NewsFeed struct {
	// Raw is the upstream feed array exactly as received.
	Raw      json.RawMessage
	Articles []entity.Article
}

// Sort orders accepted by the news sentiment endpoint.
const (
	SortLatest    = "LATEST"
	SortEarliest  = "EARLIEST"
	SortRelevance = "RELEVANCE"
)

// SortOrders lists every accepted sort order.
var SortOrders = []string{SortLatest, SortEarliest, SortRelevance}

const (
	DefaultNewsLimit = 50
	MaxNewsLimit     = 1000
)

// NewsSentimentParam are the query options for a news sentiment fetch.
type NewsSentimentParam struct {
	Tickers string `json:"tickers" query:"tickers"`
	Topics  string `json:"topics" query:"topics"`
	Limit   int    `json:"limit" query:"limit"`
	Sort    string `json:"sort" query:"sort"`
}
