package metadata

// PreferISBN13 picks a 13-digit identifier when one exists, otherwise
// the first candidate. Empty input yields an empty string.
func PreferISBN13(isbns []string) string {
	for _, isbn := range isbns {
		if len(isbn) == 13 {
			return isbn
		}
	}
	if len(isbns) > 0 {
		return isbns[0]
	}
	return ""
}
