// Package view computes display-ready item lists from feed state. It never
// mutates its inputs.
package view

import (
	"sort"
	"strings"

	"newsdeck/internal/news"
)

type Order int

const (
	NewestFirst Order = iota
	OldestFirst
)

// Project filters and sorts items for display. The filter is a
// case-insensitive substring match against title or description; an empty
// filter passes everything. Items with the zero-time date sentinel sort as
// the earliest possible value and are never dropped. Ties keep fetch order.
func Project(items []news.Item, filter string, order Order) []news.Item {
	filter = strings.ToLower(strings.TrimSpace(filter))

	out := make([]news.Item, 0, len(items))
	for _, it := range items {
		if filter == "" ||
			strings.Contains(strings.ToLower(it.Title), filter) ||
			strings.Contains(strings.ToLower(it.Description), filter) {
			out = append(out, it)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if order == NewestFirst {
			return out[i].PublishedAt.After(out[j].PublishedAt)
		}
		return out[i].PublishedAt.Before(out[j].PublishedAt)
	})
	return out
}
