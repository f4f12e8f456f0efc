// Package source implements news search backends. Each client turns a
// search term and its exclude terms into cleaned-up news items; transport,
// auth and timeouts stay in here.
package source

import "strings"

// excluded reports whether an item's title or description contains any of
// the exclude terms.
func excluded(title, description string, excludes []string) bool {
	for _, term := range excludes {
		if strings.Contains(title, term) || strings.Contains(description, term) {
			return true
		}
	}
	return false
}
