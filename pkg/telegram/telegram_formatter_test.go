package telegram

import (
	"fmt"
	"strings"
	"testing"
	"unicode/utf8"

	"golang-market-sentiment/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func score(v float64) *float64 { return &v }

func TestFormatSentimentReportForTelegram_Empty(t *testing.T) {
	messages := FormatSentimentReportForTelegram(entity.Report{Subject: "IBM", Threshold: 0.5})

	require.Len(t, messages, 1)
	assert.Contains(t, messages[0], "News Sentiment: IBM")
	assert.Contains(t, messages[0], "No articles met the relevance threshold (0.50).")
}

func TestFormatSentimentReportForTelegram_Entry(t *testing.T) {
	report := entity.Report{
		Subject:   "IBM,AAPL",
		Threshold: 0.5,
		Articles: []entity.FilteredArticle{{
			Title:            "IBM beats_estimates",
			URL:              "https://example.com/a",
			SentimentLabel:   "Somewhat-Bullish",
			SentimentScore:   score(0.25),
			QualifyingTopics: []string{"Earnings", "Technology"},
		}},
	}

	messages := FormatSentimentReportForTelegram(report)

	require.Len(t, messages, 1)
	msg := messages[0]
	assert.Contains(t, msg, "Articles: 1, relevance >= 0.50")
	assert.Contains(t, msg, "*IBM beats\\_estimates*")
	assert.Contains(t, msg, "😊 *Sentiment:* Somewhat-Bullish (0.2500)")
	assert.Contains(t, msg, "*Topics:* Earnings, Technology")
	assert.Contains(t, msg, "[Read more](https://example.com/a)")
}

func TestFormatSentimentReportForTelegram_SplitsParts(t *testing.T) {
	report := entity.Report{Subject: "IBM", Threshold: 0.5}
	for i := 0; i < 60; i++ {
		report.Articles = append(report.Articles, entity.FilteredArticle{
			Title:          fmt.Sprintf("Headline %02d %s", i, strings.Repeat("x", 80)),
			URL:            "https://example.com",
			SentimentLabel: "Bearish",
			SentimentScore: score(-0.4),
		})
	}

	messages := FormatSentimentReportForTelegram(report)

	require.Greater(t, len(messages), 1)
	for i, m := range messages {
		assert.LessOrEqual(t, len(m), maxMessageLen)
		if i > 0 {
			assert.Contains(t, m, fmt.Sprintf("Part %d", i+1))
		}
	}
	assert.Contains(t, messages[0], "Headline 00")
	assert.Contains(t, messages[len(messages)-1], "Headline 59")
}

func TestFormatSentimentReportForTelegram_ClipsOversizedEntry(t *testing.T) {
	report := entity.Report{
		Subject:   strings.Repeat("IBM,", 300),
		Threshold: 0.5,
		Articles: []entity.FilteredArticle{
			{
				Title:            strings.Repeat("A", 5000),
				URL:              "https://example.com/long",
				SentimentLabel:   "Neutral",
				SentimentScore:   score(0.01),
				QualifyingTopics: []string{strings.Repeat("_", 3000)},
			},
			{Title: "Second", URL: "https://example.com/" + strings.Repeat("p", 5000), SentimentLabel: "Bullish"},
		},
	}

	messages := FormatSentimentReportForTelegram(report)

	require.NotEmpty(t, messages)
	for _, m := range messages {
		assert.LessOrEqual(t, len(m), maxMessageLen)
		assert.Contains(t, m, "📈", "part without an article")
	}
	assert.Contains(t, messages[0], strings.Repeat("A", 100)+"…*")
	assert.Contains(t, messages[0], "[Read more](https://example.com/long)")
	assert.NotContains(t, strings.Join(messages, ""), "ppppp")
}

func TestClip(t *testing.T) {
	assert.Equal(t, "short", clip("short", 10))
	assert.Equal(t, "abcdefg…", clip("abcdefghijk", 10))
	// never splits a multi-byte rune
	got := clip(strings.Repeat("é", 10), 10)
	assert.True(t, utf8.ValidString(got))
	assert.LessOrEqual(t, len(got), 10)
}
