// Package metadata holds the extraction heuristics shared by both
// provider adapters: publication-date normalization, fiction/non-fiction
// classification, series-name extraction, ISBN selection, and cover
// image preference.
package metadata

import (
	"strings"

	"github.com/steebus/notion-book-fetch/internal/entity"
)

// Keyword lists for the category scan. Non-fiction is checked before
// fiction; within a category the first matching list wins.
var (
	nonFictionKeywords = []string{
		"non-fiction", "nonfiction", "biography", "history",
		"science", "self-help", "business", "psychology",
		"philosophy", "politics",
	}

	fictionKeywords = []string{
		"fiction", "novel", "fantasy", "sci-fi", "science fiction",
		"thriller", "mystery", "romance",
	}
)

// ClassifyFiction decides Fiction vs Nonfiction from a provider's
// category (or subject) list, falling back to the query text, then to
// Fiction. The tie-break order is fixed: per category, the non-fiction
// list is consulted first.
func ClassifyFiction(categories []string, queryText string) string {
	for _, category := range categories {
		lower := strings.ToLower(category)
		if containsAny(lower, nonFictionKeywords) {
			return entity.StatusNonfiction
		}
		if containsAny(lower, fictionKeywords) {
			return entity.StatusFiction
		}
	}

	// Query-text fallback. "fiction" is checked first, so a query
	// containing "non-fiction" also lands on Fiction.
	q := strings.ToLower(queryText)
	switch {
	case strings.Contains(q, "fiction"):
		return entity.StatusFiction
	case strings.Contains(q, "non-fiction") || strings.Contains(q, "nonfiction"):
		return entity.StatusNonfiction
	default:
		return entity.StatusFiction
	}
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
