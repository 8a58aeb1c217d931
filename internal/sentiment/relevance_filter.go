// Package sentiment selects the news articles relevant enough to report on.
package sentiment

import (
	"fmt"
	"math"

	"golang-market-sentiment/internal/entity"
)

// DefaultRelevanceThreshold is used when the caller does not supply one.
const DefaultRelevanceThreshold = 0.5

// ValidateThreshold checks that t is a usable relevance threshold.
func ValidateThreshold(t float64) error {
	if math.IsNaN(t) || t < 0 || t > 1 {
		return fmt.Errorf("%w: relevance threshold %v must be within [0, 1]", entity.ErrInvalidParameter, t)
	}
	return nil
}

// ExtractRelevant keeps, for every article, the topics whose relevance is at
// least threshold. Articles left without a qualifying topic are dropped. The
// relative order of articles and of topics is preserved.
func ExtractRelevant(articles []entity.Article, threshold float64) []entity.FilteredArticle {
	filtered := make([]entity.FilteredArticle, 0, len(articles))
	for _, a := range articles {
		var topics []string
		for _, t := range a.Topics {
			if t.Relevance >= threshold {
				topics = append(topics, t.Name)
			}
		}
		if len(topics) == 0 {
			continue
		}

		filtered = append(filtered, entity.FilteredArticle{
			Title:            a.Title,
			Summary:          a.Summary,
			URL:              a.URL,
			Source:           a.Source,
			SentimentScore:   a.SentimentScore,
			SentimentLabel:   a.SentimentLabel,
			PublishedAt:      a.PublishedAt,
			PublishedRaw:     a.PublishedRaw,
			QualifyingTopics: topics,
		})
	}
	return filtered
}

// ValidateArticle reports the first field a report needs that a is missing.
func ValidateArticle(a entity.FilteredArticle) error {
	switch {
	case a.Title == "":
		return fmt.Errorf("%w: missing title", entity.ErrMalformedArticle)
	case a.Summary == "":
		return fmt.Errorf("%w: missing summary", entity.ErrMalformedArticle)
	case a.URL == "":
		return fmt.Errorf("%w: missing url", entity.ErrMalformedArticle)
	case a.SentimentLabel == "":
		return fmt.Errorf("%w: missing sentiment label", entity.ErrMalformedArticle)
	case a.SentimentScore == nil:
		return fmt.Errorf("%w: missing sentiment score", entity.ErrMalformedArticle)
	}
	return nil
}
