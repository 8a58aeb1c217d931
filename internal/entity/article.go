package entity

import "time"

// Topic is a topic tag attached to an article by the upstream sentiment API.
type Topic struct {
	Name      string  `json:"name"`
	Relevance float64 `json:"relevance"`
}

// Article is a single news sentiment feed entry.
type Article struct {
	Title          string     `json:"title"`
	Summary        string     `json:"summary"`
	URL            string     `json:"url"`
	Source         string     `json:"source,omitempty"`
	SentimentScore *float64   `json:"sentiment_score,omitempty"`
	SentimentLabel string     `json:"sentiment_label"`
	PublishedAt    *time.Time `json:"published_at,omitempty"`
	// PublishedRaw keeps the upstream timestamp so it can be shown when it does not parse.
	PublishedRaw string  `json:"published_raw,omitempty"`
	Topics       []Topic `json:"topics"`
}

// FilteredArticle is an Article reduced to the topics that met a relevance threshold.
type FilteredArticle struct {
	Title            string     `json:"title"`
	Summary          string     `json:"summary"`
	URL              string     `json:"url"`
	Source           string     `json:"source,omitempty"`
	SentimentScore   *float64   `json:"sentiment_score,omitempty"`
	SentimentLabel   string     `json:"sentiment_label"`
	PublishedAt      *time.Time `json:"published_at,omitempty"`
	PublishedRaw     string     `json:"published_raw,omitempty"`
	QualifyingTopics []string   `json:"qualifying_topics"`
}

// Report is the rendered unit: the filtered articles for one subject.
type Report struct {
	Subject   string            `json:"subject"`
	Threshold float64           `json:"threshold"`
	Articles  []FilteredArticle `json:"articles"`
}
