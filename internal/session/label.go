package session

import "strings"

// ParseLabel splits a feed label of the form "keyword -skip1 -skip2" into
// the search term and its exclude terms. The label itself stays the feed's
// identity; the terms are derived from it on every parse.
func ParseLabel(label string) (include string, excludes []string) {
	var parts []string
	for _, p := range strings.Split(label, "-") {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) == 0 {
		return "", nil
	}
	return parts[0], parts[1:]
}
