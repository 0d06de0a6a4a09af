package metadata

import (
	"fmt"
	"strings"
	"time"

	"github.com/steebus/notion-book-fetch/internal/entity"
)

// NormalizeDate converts a provider publication date into a start-date
// value. Year-only input becomes YYYY-01-01, year-month becomes
// YYYY-MM-01, a full date passes through. Empty or malformed input
// yields nil so the field is simply absent from the upsert.
func NormalizeDate(raw string) *entity.PublishedDate {
	s := strings.TrimSpace(raw)
	switch len(s) {
	case 4:
		if _, err := time.Parse("2006", s); err == nil {
			return &entity.PublishedDate{Start: s + "-01-01"}
		}
	case 7:
		if _, err := time.Parse("2006-01", s); err == nil {
			return &entity.PublishedDate{Start: s + "-01"}
		}
	case 10:
		if _, err := time.Parse("2006-01-02", s); err == nil {
			return &entity.PublishedDate{Start: s}
		}
	}
	return nil
}

// DateFromYear builds a year-precision publication date. Zero means no
// year was reported.
func DateFromYear(year int) *entity.PublishedDate {
	if year <= 0 {
		return nil
	}
	return &entity.PublishedDate{Start: fmt.Sprintf("%04d-01-01", year)}
}
