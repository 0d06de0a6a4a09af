package entity

// Fiction status values written to the record store.
const (
	StatusFiction    = "Fiction"
	StatusNonfiction = "Nonfiction"
)

// PublishedDate is a publication date normalized to a start date
// (year-only and year-month inputs are padded to a full date).
type PublishedDate struct {
	Start string `json:"start"`
}

// BookMetadata is the normalized result of one provider lookup. It is
// built fresh per resolution attempt and never mutated afterwards.
type BookMetadata struct {
	Title         string         `json:"title"`
	Authors       []string       `json:"authors,omitempty"`
	Description   string         `json:"description,omitempty"`
	Categories    []string       `json:"categories,omitempty"`
	Rating        float64        `json:"rating,omitempty"`
	PageCount     int            `json:"page_count,omitempty"`
	InfoLink      string         `json:"info_link,omitempty"`
	ImageLink     string         `json:"image_link,omitempty"`
	PublishedDate *PublishedDate `json:"published_date,omitempty"`
	FictionStatus string         `json:"fiction_status,omitempty"`
	SeriesName    string         `json:"series_name,omitempty"`
	ISBN          string         `json:"isbn,omitempty"`
}
