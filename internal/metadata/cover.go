package metadata

// coverPreference orders image resolutions highest quality first.
var coverPreference = []string{"extraLarge", "large", "medium", "small", "thumbnail"}

// BestCover picks the highest-quality image link a provider offers.
func BestCover(links map[string]string) string {
	for _, size := range coverPreference {
		if url, ok := links[size]; ok && url != "" {
			return url
		}
	}
	return ""
}
