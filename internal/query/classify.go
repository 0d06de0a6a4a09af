// Package query turns a sentinel-marked title into a provider search query.
package query

import (
	"strings"

	"github.com/steebus/notion-book-fetch/internal/entity"
)

// Sentinel marks a title for metadata resolution.
const Sentinel = ";"

// HasSentinel reports whether a title is marked for resolution.
func HasSentinel(title string) bool {
	return strings.HasSuffix(title, Sentinel)
}

// Classify strips the sentinel suffix and decides whether the remaining
// text is an ISBN or a free-text title search. ISBN queries carry the
// "isbn:" scheme marker understood by both providers. There is no error
// path: anything not shaped like an ISBN is free text.
func Classify(title string) entity.SearchQuery {
	text := strings.TrimSpace(strings.TrimSuffix(title, Sentinel))
	if compact := compactCandidate(text); isISBN(compact) {
		return entity.SearchQuery{Text: "isbn:" + compact, Kind: entity.QueryISBN}
	}
	return entity.SearchQuery{Text: text, Kind: entity.QueryFreetext}
}

// compactCandidate keeps only digits and the check character X.
func compactCandidate(s string) string {
	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == 'X' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// isISBN accepts 13 all-digit candidates and 10-character candidates
// whose final check character may be a digit or X.
func isISBN(s string) bool {
	switch len(s) {
	case 13:
		return allDigits(s)
	case 10:
		last := s[9]
		return allDigits(s[:9]) && (last == 'X' || (last >= '0' && last <= '9'))
	default:
		return false
	}
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
