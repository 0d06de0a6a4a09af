package entity

// QueryKind tags how a search query should be sent to providers.
type QueryKind string

const (
	QueryISBN     QueryKind = "isbn"
	QueryFreetext QueryKind = "freetext"
)

// SourceRecord is one page read from the record store. Title is mutable
// external state and is read once per processing pass.
type SourceRecord struct {
	ID    string
	Title string
}

// SearchQuery is derived from a SourceRecord title by stripping the
// sentinel suffix. Immutable once constructed.
type SearchQuery struct {
	Text string
	Kind QueryKind
}

// UpdateOutcome reports the result of writing one record back.
type UpdateOutcome struct {
	PageID  string
	Title   string
	Success bool
}
