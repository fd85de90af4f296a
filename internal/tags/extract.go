// Package tags mines hashtags from document summaries and reconciles them with
// the tags already stored on a document.
package tags

import (
	"regexp"
	"strings"
)

// A hashtag is '#' followed by runs of letters, digits or underscores,
// optionally joined by single hyphens: #go, #rate-limit, #日本語.
var hashtagPattern = regexp.MustCompile(`#[\p{L}\p{Nd}_]+(?:-[\p{L}\p{Nd}_]+)*`)

// Extract returns the hashtags in summary without their leading '#', in order
// of first appearance and without duplicates. A nil or blank summary yields an
// empty slice.
func Extract(summary *string) []string {
	if summary == nil {
		return []string{}
	}
	return ExtractString(*summary)
}

func ExtractString(summary string) []string {
	out := []string{}
	if strings.TrimSpace(summary) == "" {
		return out
	}

	seen := make(map[string]struct{})
	for _, match := range hashtagPattern.FindAllString(summary, -1) {
		tag := strings.TrimSpace(strings.TrimPrefix(match, "#"))
		if tag == "" {
			continue
		}
		if _, dup := seen[tag]; dup {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	return out
}
