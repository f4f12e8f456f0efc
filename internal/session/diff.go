package session

import "newsdeck/internal/news"

// NewLinks returns the links present in fetched but absent from prev.
//
// A cold feed (empty prev) produces no delta: the full initial result of a
// freshly created feed is not a notification-worthy arrival. Only changes
// against prior non-empty state count.
func NewLinks(prev, fetched []news.Item) map[string]struct{} {
	if len(prev) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(prev))
	for _, it := range prev {
		seen[it.Link] = struct{}{}
	}
	var fresh map[string]struct{}
	for _, it := range fetched {
		if _, ok := seen[it.Link]; ok {
			continue
		}
		if fresh == nil {
			fresh = make(map[string]struct{})
		}
		fresh[it.Link] = struct{}{}
	}
	return fresh
}
