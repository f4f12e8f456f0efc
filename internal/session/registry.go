package session

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"newsdeck/internal/news"
)

// Feed is a read-only view of one keyword feed's state.
type Feed struct {
	Label       string
	Include     string
	Excludes    []string
	Items       []news.Item
	NewLinks    map[string]struct{}
	LastUpdated time.Time
	Fetching    bool
}

// Snapshot is the persistable shape of the registry: feed labels in tab
// order, bookmarked items (most recently toggled first) and read links.
type Snapshot struct {
	Labels    []string
	Bookmarks []news.Item
	ReadLinks []string
}

type feedState struct {
	include     string
	excludes    []string
	items       []news.Item
	newLinks    map[string]struct{}
	lastUpdated time.Time
	fetching    bool
}

// Registry is the single source of truth for feeds, bookmarks and read
// marks. Every operation takes the registry lock, so concurrent fetch
// completions and UI commands serialize into one writer at a time.
type Registry struct {
	mu        sync.Mutex
	feeds     map[string]*feedState
	order     []string
	bookmarks []news.Item
	read      map[string]struct{}
	now       func() time.Time
}

func NewRegistry() *Registry {
	return &Registry{
		feeds: make(map[string]*feedState),
		read:  make(map[string]struct{}),
		now:   time.Now,
	}
}

// CreateFeed registers a new feed under label. The label doubles as the
// search query ("keyword -exclude1 -exclude2").
func (r *Registry) CreateFeed(label string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.createFeed(label)
}

func (r *Registry) createFeed(label string) error {
	include, excludes := ParseLabel(label)
	if include == "" {
		return fmt.Errorf("feed label %q has no search term", label)
	}
	if _, ok := r.feeds[label]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateFeed, label)
	}
	r.feeds[label] = &feedState{
		include:  include,
		excludes: excludes,
		newLinks: make(map[string]struct{}),
	}
	r.order = append(r.order, label)
	return nil
}

// RenameFeed moves a feed's state under a new label, keeping its tab
// position, items and accumulated new links. Bookmarks and read marks are
// keyed by link and are unaffected. A fetch in flight for the old label is
// orphaned by the rename: its result and EndFetch are keyed by the old
// label and will miss, so the in-flight flag is reset here to keep the
// renamed feed refreshable.
func (r *Registry) RenameFeed(oldLabel, newLabel string) error {
	include, excludes := ParseLabel(newLabel)
	if include == "" {
		return fmt.Errorf("feed label %q has no search term", newLabel)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	f, ok := r.feeds[oldLabel]
	if !ok {
		return fmt.Errorf("%w: %q", ErrFeedNotFound, oldLabel)
	}
	if oldLabel == newLabel {
		return nil
	}
	if _, ok := r.feeds[newLabel]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateFeed, newLabel)
	}

	f.include = include
	f.excludes = excludes
	f.fetching = false
	delete(r.feeds, oldLabel)
	r.feeds[newLabel] = f
	for i, l := range r.order {
		if l == oldLabel {
			r.order[i] = newLabel
			break
		}
	}
	return nil
}

// RemoveFeed drops a feed unconditionally, even while a fetch for it is in
// flight. The eventual result is discarded when ReplaceItems no longer
// finds the label.
func (r *Registry) RemoveFeed(label string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.feeds[label]; !ok {
		return fmt.Errorf("%w: %q", ErrFeedNotFound, label)
	}
	delete(r.feeds, label)
	for i, l := range r.order {
		if l == label {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

// ReplaceItems swaps a feed's items wholesale with a fresh fetch result,
// first folding the new-link delta against the previous items into the
// feed's accumulated set. Duplicate links within the result keep their
// first occurrence. Returns how many links were new in this fetch.
func (r *Registry) ReplaceItems(label string, items []news.Item) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	f, ok := r.feeds[label]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrFeedNotFound, label)
	}

	deduped := dedupeByLink(items)
	fresh := NewLinks(f.items, deduped)
	for link := range fresh {
		f.newLinks[link] = struct{}{}
	}
	f.items = deduped
	f.lastUpdated = r.now()
	return len(fresh), nil
}

// ClearNewLinks empties a feed's accumulated new links. Called when the
// feed becomes the one the user is looking at. No-op for unknown labels.
func (r *Registry) ClearNewLinks(label string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if f, ok := r.feeds[label]; ok && len(f.newLinks) > 0 {
		f.newLinks = make(map[string]struct{})
	}
}

// BeginFetch marks a feed as having a fetch in flight. It returns false
// with no error when one is already outstanding: the request is dropped,
// not queued, so at most one fetch per feed ever runs.
func (r *Registry) BeginFetch(label string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	f, ok := r.feeds[label]
	if !ok {
		return false, fmt.Errorf("%w: %q", ErrFeedNotFound, label)
	}
	if f.fetching {
		return false, nil
	}
	f.fetching = true
	return true, nil
}

// EndFetch resets the in-flight flag regardless of fetch outcome. Harmless
// when the feed was removed mid-flight.
func (r *Registry) EndFetch(label string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if f, ok := r.feeds[label]; ok {
		f.fetching = false
	}
}

// ToggleBookmark inserts the item at the front of the bookmark list, or
// removes it if an item with the same link is already bookmarked.
func (r *Registry) ToggleBookmark(item news.Item) {
	if item.Link == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, b := range r.bookmarks {
		if b.Link == item.Link {
			r.bookmarks = append(r.bookmarks[:i], r.bookmarks[i+1:]...)
			return
		}
	}
	r.bookmarks = append([]news.Item{item}, r.bookmarks...)
}

func (r *Registry) IsBookmarked(link string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, b := range r.bookmarks {
		if b.Link == link {
			return true
		}
	}
	return false
}

// Bookmarks returns the bookmark list, most recently toggled first.
func (r *Registry) Bookmarks() []news.Item {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]news.Item, len(r.bookmarks))
	copy(out, r.bookmarks)
	return out
}

// MarkRead records a link as read. The link does not have to belong to any
// currently known item; bookmarks can outlive the feed they came from.
func (r *Registry) MarkRead(link string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.read[link] = struct{}{}
}

func (r *Registry) MarkUnread(link string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.read, link)
}

func (r *Registry) IsRead(link string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.read[link]
	return ok
}

// MarkAllRead marks every item's link as read and reports how many were
// not read before, for status display.
func (r *Registry) MarkAllRead(items []news.Item) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	added := 0
	for _, it := range items {
		if _, ok := r.read[it.Link]; !ok {
			r.read[it.Link] = struct{}{}
			added++
		}
	}
	return added
}

// Labels returns the registered feed labels in tab order.
func (r *Registry) Labels() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Feed returns a copy of one feed's state.
func (r *Registry) Feed(label string) (Feed, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	f, ok := r.feeds[label]
	if !ok {
		return Feed{}, false
	}
	items := make([]news.Item, len(f.items))
	copy(items, f.items)
	fresh := make(map[string]struct{}, len(f.newLinks))
	for link := range f.newLinks {
		fresh[link] = struct{}{}
	}
	return Feed{
		Label:       label,
		Include:     f.include,
		Excludes:    append([]string(nil), f.excludes...),
		Items:       items,
		NewLinks:    fresh,
		LastUpdated: f.lastUpdated,
		Fetching:    f.fetching,
	}, true
}

// Snapshot exports the persistable state.
func (r *Registry) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	s := Snapshot{
		Labels:    append([]string(nil), r.order...),
		Bookmarks: append([]news.Item(nil), r.bookmarks...),
	}
	for link := range r.read {
		s.ReadLinks = append(s.ReadLinks, link)
	}
	return s
}

// Restore rebuilds the registry from a saved snapshot: feeds are recreated
// in order, then bookmarks and read links are set directly, with no diff
// or notification side effects. Invalid entries are skipped; when any were,
// the returned error wraps ErrMalformedState and the registry keeps the
// valid remainder.
func (r *Registry) Restore(s Snapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var bad []string
	for _, label := range s.Labels {
		if err := r.createFeed(label); err != nil {
			bad = append(bad, err.Error())
		}
	}

	seen := make(map[string]struct{}, len(s.Bookmarks))
	r.bookmarks = r.bookmarks[:0]
	for _, b := range s.Bookmarks {
		if b.Link == "" {
			bad = append(bad, "bookmark without a link")
			continue
		}
		if _, dup := seen[b.Link]; dup {
			continue
		}
		seen[b.Link] = struct{}{}
		r.bookmarks = append(r.bookmarks, b)
	}

	r.read = make(map[string]struct{}, len(s.ReadLinks))
	for _, link := range s.ReadLinks {
		if link != "" {
			r.read[link] = struct{}{}
		}
	}

	if len(bad) > 0 {
		return fmt.Errorf("%w: %s", ErrMalformedState, strings.Join(bad, "; "))
	}
	return nil
}

func dedupeByLink(items []news.Item) []news.Item {
	seen := make(map[string]struct{}, len(items))
	out := make([]news.Item, 0, len(items))
	for _, it := range items {
		if _, ok := seen[it.Link]; ok {
			continue
		}
		seen[it.Link] = struct{}{}
		out = append(out, it)
	}
	return out
}
