package news

import (
	"html"
	"strings"
	"time"
)

// Item is a single news article. Link is the identity: two items with the
// same link are the same article no matter how title or description drift
// between fetches.
type Item struct {
	Title       string
	Link        string
	Description string
	// PublishedAt is the zero time when the source date could not be
	// parsed. Sorting treats the zero time as the earliest possible value.
	PublishedAt time.Time
}

var dateFormats = []string{
	time.RFC1123Z, // Naver: "Mon, 02 Jan 2006 15:04:05 +0900"
	time.RFC1123,
	time.RFC822Z,
	time.RFC822,
	time.RFC3339,
}

// ParseDate parses a feed timestamp, returning the zero time for anything
// it cannot make sense of. It never reports an error: an item with a broken
// date still has to be displayed and sorted.
func ParseDate(raw string) time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}
	}
	for _, layout := range dateFormats {
		if t, err := time.Parse(layout, raw); err == nil {
			return t
		}
	}
	return time.Time{}
}

// Clean strips markup tags and decodes HTML entities. Search APIs wrap
// matched terms in <b>...</b> and escape the rest.
func Clean(s string) string {
	var b strings.Builder
	inTag := false
	for _, r := range s {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
		case !inTag:
			b.WriteRune(r)
		}
	}
	return html.UnescapeString(strings.Join(strings.Fields(b.String()), " "))
}
