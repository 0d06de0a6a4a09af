package notion

import (
	"github.com/steebus/notion-book-fetch/internal/entity"
)

// Property names in the target database. The title property is
// addressed by its fixed id "title" rather than its display name.
const (
	propTitle       = "title"
	propDescription = "Description"
	propAuthors     = "Author(s)"
	propRating      = "Rating"
	propGenres      = "Genres"
	propLink        = "Link"
	propPages       = "Pages"
	propCover       = "Cover"
	propSeries      = "Series"
	propDate        = "DatePublished"
	propNonFiction  = "Non/Fiction"
	propISBN        = "ISBN"
	propSearchTerm  = "Search Term"
)

const (
	maxDescriptionLen = 2000
	maxGenres         = 10
)

// BuildPageUpdate maps a resolved BookMetadata onto the page update
// payload. Optional fields are included only when present; when a cover
// image exists, the page cover and icon are both set to it.
func BuildPageUpdate(meta *entity.BookMetadata, originalTitle string) map[string]any {
	properties := map[string]any{
		propTitle:       titleValue(meta.Title),
		propDescription: richTextValue(truncateRunes(meta.Description, maxDescriptionLen)),
		propAuthors:     multiSelectValue(meta.Authors),
		propGenres:      multiSelectValue(truncateList(meta.Categories, maxGenres)),
		propLink:        map[string]any{"url": meta.InfoLink},
		propSearchTerm:  richTextValue(originalTitle),
	}

	if meta.ImageLink != "" {
		properties[propCover] = map[string]any{"url": meta.ImageLink}
	}
	if meta.Rating > 0 {
		properties[propRating] = map[string]any{"number": meta.Rating}
	}
	if meta.PageCount > 0 {
		properties[propPages] = map[string]any{"number": meta.PageCount}
	}
	if meta.PublishedDate != nil {
		properties[propDate] = map[string]any{"date": meta.PublishedDate}
	}
	if meta.FictionStatus != "" {
		properties[propNonFiction] = map[string]any{
			"select": map[string]any{"name": meta.FictionStatus},
		}
	}
	if meta.SeriesName != "" {
		properties[propSeries] = multiSelectValue([]string{meta.SeriesName})
	}
	if meta.ISBN != "" {
		properties[propISBN] = richTextValue(meta.ISBN)
	}

	update := map[string]any{"properties": properties}

	if meta.ImageLink != "" {
		external := map[string]any{
			"type":     "external",
			"external": map[string]any{"url": meta.ImageLink},
		}
		update["cover"] = external
		update["icon"] = external
	}

	return update
}

func titleValue(content string) map[string]any {
	return map[string]any{
		"title": []any{
			map[string]any{"text": map[string]any{"content": content}},
		},
	}
}

func richTextValue(content string) map[string]any {
	return map[string]any{
		"rich_text": []any{
			map[string]any{"text": map[string]any{"content": content}},
		},
	}
}

func multiSelectValue(names []string) map[string]any {
	options := make([]any, 0, len(names))
	for _, name := range names {
		options = append(options, map[string]any{"name": name})
	}
	return map[string]any{"multi_select": options}
}

func truncateRunes(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}

func truncateList(items []string, max int) []string {
	if len(items) <= max {
		return items
	}
	return items[:max]
}
