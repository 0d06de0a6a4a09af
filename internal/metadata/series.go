package metadata

import (
	"regexp"
	"strings"
)

// seriesPatterns recognize series phrasings in titles and subtitles.
// Order is the extraction priority; the leading article is consumed by
// the pattern so the captured name is article-stripped.
var seriesPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:^|\s)(?:The\s)?(.*?)\s+Series(?:\s|$)`),
	regexp.MustCompile(`(?i)(?:^|\s)(?:The\s)?(.*?)\s+Trilogy(?:\s|$)`),
	regexp.MustCompile(`(?i)(?:^|\s)(?:The\s)?(.*?)\s+Saga(?:\s|$)`),
	regexp.MustCompile(`(?i)(?:^|\s)(?:The\s)?(.*?)\s+Chronicles(?:\s|$)`),
	regexp.MustCompile(`(?i)(?:^|\s)(?:The\s)?(.*?)\s+Sequence(?:\s|$)`),
	regexp.MustCompile(`(?i)(?:^|\s)(?:The\s)?(.*?)\s+Duology(?:\s|$)`),
	regexp.MustCompile(`(?i)(?:^|\s)(?:The\s)?(.*?)\s+Quartet(?:\s|$)`),
	regexp.MustCompile(`(?i)Book\s+\d+\s+of\s+(?:the\s+)?(.*?)(?:\s|$)`),
	regexp.MustCompile(`(?i)Volume\s+\d+\s+of\s+(?:the\s+)?(.*?)(?:\s|$)`),
	regexp.MustCompile(`(?i)\((?:The\s+)?(.*?)\s+(?:Series|Book|#)\s*\d*\)`),
	regexp.MustCompile(`(?i)\[(?:The\s+)?(.*?)\s+(?:Series|Book|#)\s*\d*\]`),
}

// ExtractSeries scans title then subtitle with each pattern in priority
// order and returns the first captured series name, trimmed. Empty when
// nothing matches.
func ExtractSeries(title, subtitle string) string {
	for _, pattern := range seriesPatterns {
		if m := pattern.FindStringSubmatch(title); m != nil {
			return strings.TrimSpace(m[1])
		}
		if subtitle != "" {
			if m := pattern.FindStringSubmatch(subtitle); m != nil {
				return strings.TrimSpace(m[1])
			}
		}
	}
	return ""
}
