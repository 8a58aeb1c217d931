package telegram

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"golang-market-sentiment/internal/entity"
)

const maxMessageLen = 4090

// Field limits in raw bytes, before Markdown escaping which can at most double them.
// A clipped entry plus the largest header always fits in maxMessageLen.
const (
	maxSubjectLen = 200
	maxTitleLen   = 600
	maxLabelLen   = 64
	maxTopicsLen  = 400
	maxURLLen     = 1000
)

// FormatSentimentReportForTelegram formats a sentiment report into one or more Markdown messages,
// each kept below the Telegram message size limit.
func FormatSentimentReportForTelegram(report entity.Report) []string {
	subject := escapeMarkdown(clip(report.Subject, maxSubjectLen))
	if len(report.Articles) == 0 {
		return []string{fmt.Sprintf("📰 *News Sentiment: %s*\n\nNo articles met the relevance threshold (%.2f).", subject, report.Threshold)}
	}

	var messages []string
	var currentMessage strings.Builder
	part := 1
	entries := 0

	startNewPart := func() {
		currentMessage.Reset()
		entries = 0
		if part == 1 {
			currentMessage.WriteString(fmt.Sprintf("📰 *News Sentiment: %s* 📰\n", subject))
			currentMessage.WriteString(fmt.Sprintf("Articles: %d, relevance >= %.2f\n\n", len(report.Articles), report.Threshold))
			return
		}
		currentMessage.WriteString(fmt.Sprintf("---*News Sentiment: %s Part %d*---\n\n", subject, part))
	}

	startNewPart()

	for _, a := range report.Articles {
		entry := formatArticle(a)
		if entries > 0 && currentMessage.Len()+len(entry) > maxMessageLen {
			messages = append(messages, currentMessage.String())
			part++
			startNewPart()
		}
		currentMessage.WriteString(entry)
		entries++
	}

	messages = append(messages, currentMessage.String())
	return messages
}

func formatArticle(a entity.FilteredArticle) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("📈 *%s*\n", escapeMarkdown(clip(a.Title, maxTitleLen))))

	score := "N/A"
	if a.SentimentScore != nil {
		score = fmt.Sprintf("%.4f", *a.SentimentScore)
	}
	b.WriteString(fmt.Sprintf("%s *Sentiment:* %s (%s)\n", sentimentIcon(a.SentimentLabel), escapeMarkdown(clip(a.SentimentLabel, maxLabelLen)), clip(score, 32)))

	if len(a.QualifyingTopics) > 0 {
		b.WriteString(fmt.Sprintf("🏷 *Topics:* %s\n", escapeMarkdown(clip(strings.Join(a.QualifyingTopics, ", "), maxTopicsLen))))
	}
	// a clipped URL would be a broken link
	if a.URL != "" && len(a.URL) <= maxURLLen {
		b.WriteString(fmt.Sprintf("🔗 [Read more](%s)\n", a.URL))
	}
	b.WriteString("\n")
	return b.String()
}

// clip shortens s to at most n bytes without splitting a rune, marking the cut with an ellipsis.
func clip(s string, n int) string {
	if len(s) <= n {
		return s
	}
	const ellipsis = "…"
	cut := n - len(ellipsis)
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + ellipsis
}

func sentimentIcon(label string) string {
	l := strings.ToLower(label)
	switch {
	case strings.Contains(l, "bullish"):
		return "😊"
	case strings.Contains(l, "bearish"):
		return "😟"
	default:
		return "😐"
	}
}

var markdownEscaper = strings.NewReplacer("_", "\\_", "*", "\\*", "`", "\\`", "[", "\\[")

// escapeMarkdown escapes the legacy Markdown control characters.
func escapeMarkdown(s string) string {
	return markdownEscaper.Replace(s)
}
