package session

import (
	"errors"
	"testing"

	"newsdeck/internal/news"
)

func TestParseLabel(t *testing.T) {
	tests := []struct {
		label    string
		include  string
		excludes []string
	}{
		{"golang", "golang", nil},
		{"golang -rust -zig", "golang", []string{"rust", "zig"}},
		{"  spaced  - noise ", "spaced", []string{"noise"}},
		{"", "", nil},
		{"- -", "", nil},
	}
	for _, tt := range tests {
		include, excludes := ParseLabel(tt.label)
		if include != tt.include {
			t.Errorf("ParseLabel(%q) include = %q, want %q", tt.label, include, tt.include)
		}
		if len(excludes) != len(tt.excludes) {
			t.Errorf("ParseLabel(%q) excludes = %v, want %v", tt.label, excludes, tt.excludes)
			continue
		}
		for i := range excludes {
			if excludes[i] != tt.excludes[i] {
				t.Errorf("ParseLabel(%q) excludes = %v, want %v", tt.label, excludes, tt.excludes)
			}
		}
	}
}

func TestCreateFeedDuplicate(t *testing.T) {
	r := NewRegistry()
	if err := r.CreateFeed("golang"); err != nil {
		t.Fatalf("create: %v", err)
	}
	err := r.CreateFeed("golang")
	if !errors.Is(err, ErrDuplicateFeed) {
		t.Errorf("expected ErrDuplicateFeed, got %v", err)
	}
	// case-sensitive match: different case is a different feed
	if err := r.CreateFeed("Golang"); err != nil {
		t.Errorf("differently cased label should be allowed, got %v", err)
	}
}

func TestCreateFeedEmptyLabel(t *testing.T) {
	r := NewRegistry()
	if err := r.CreateFeed("  - "); err == nil {
		t.Error("expected error for label without a search term")
	}
}

func TestReplaceItemsPreservesOrderAndDedupes(t *testing.T) {
	r := NewRegistry()
	if err := r.CreateFeed("golang"); err != nil {
		t.Fatalf("create: %v", err)
	}

	fetched := []news.Item{
		{Title: "one", Link: "a"},
		{Title: "two", Link: "b"},
		{Title: "one again", Link: "a"},
		{Title: "three", Link: "c"},
	}
	if _, err := r.ReplaceItems("golang", fetched); err != nil {
		t.Fatalf("replace: %v", err)
	}

	f, ok := r.Feed("golang")
	if !ok {
		t.Fatal("feed missing after replace")
	}
	want := []string{"a", "b", "c"}
	if len(f.Items) != len(want) {
		t.Fatalf("expected %d items, got %d", len(want), len(f.Items))
	}
	for i, link := range want {
		if f.Items[i].Link != link {
			t.Errorf("item %d link = %q, want %q", i, f.Items[i].Link, link)
		}
	}
	if f.LastUpdated.IsZero() {
		t.Error("LastUpdated not stamped")
	}
}

func TestReplaceItemsAccumulatesNewLinks(t *testing.T) {
	r := NewRegistry()
	if err := r.CreateFeed("golang"); err != nil {
		t.Fatalf("create: %v", err)
	}

	n, err := r.ReplaceItems("golang", items("a", "b"))
	if err != nil {
		t.Fatalf("replace: %v", err)
	}
	if n != 0 {
		t.Errorf("cold fetch reported %d new links, want 0", n)
	}

	if n, _ = r.ReplaceItems("golang", items("a", "b", "c")); n != 1 {
		t.Errorf("second fetch reported %d new links, want 1", n)
	}
	if n, _ = r.ReplaceItems("golang", items("c", "d")); n != 1 {
		t.Errorf("third fetch reported %d new links, want 1", n)
	}

	// new links accumulate across fetches until the feed is viewed
	f, _ := r.Feed("golang")
	if len(f.NewLinks) != 2 {
		t.Fatalf("expected 2 accumulated new links, got %v", f.NewLinks)
	}

	r.ClearNewLinks("golang")
	f, _ = r.Feed("golang")
	if len(f.NewLinks) != 0 {
		t.Errorf("expected cleared new links, got %v", f.NewLinks)
	}
}

func TestRenameFeedKeepsStateAndPosition(t *testing.T) {
	r := NewRegistry()
	for _, l := range []string{"first", "second", "third"} {
		if err := r.CreateFeed(l); err != nil {
			t.Fatalf("create %s: %v", l, err)
		}
	}
	if _, err := r.ReplaceItems("second", items("a")); err != nil {
		t.Fatalf("replace: %v", err)
	}
	if ok, err := r.BeginFetch("second"); err != nil || !ok {
		t.Fatalf("BeginFetch = %v, %v", ok, err)
	}

	if err := r.RenameFeed("second", "renamed -noise"); err != nil {
		t.Fatalf("rename: %v", err)
	}

	labels := r.Labels()
	if labels[1] != "renamed -noise" {
		t.Errorf("expected rename to keep tab position, got order %v", labels)
	}
	f, ok := r.Feed("renamed -noise")
	if !ok {
		t.Fatal("renamed feed missing")
	}
	if len(f.Items) != 1 || f.Items[0].Link != "a" {
		t.Errorf("expected items to move with the rename, got %v", f.Items)
	}
	if f.Include != "renamed" || len(f.Excludes) != 1 {
		t.Errorf("expected terms re-parsed from new label, got %q %v", f.Include, f.Excludes)
	}
	// the old label's fetch can no longer reach this feed; the flag must
	// not wedge future fetches
	if f.Fetching {
		t.Error("rename left the in-flight flag set")
	}
	if _, ok := r.Feed("second"); ok {
		t.Error("old label still present after rename")
	}
}

func TestRenameFeedErrors(t *testing.T) {
	r := NewRegistry()
	r.CreateFeed("a")
	r.CreateFeed("b")

	if err := r.RenameFeed("missing", "c"); !errors.Is(err, ErrFeedNotFound) {
		t.Errorf("expected ErrFeedNotFound, got %v", err)
	}
	if err := r.RenameFeed("a", "b"); !errors.Is(err, ErrDuplicateFeed) {
		t.Errorf("expected ErrDuplicateFeed, got %v", err)
	}
	if err := r.RenameFeed("a", "a"); err != nil {
		t.Errorf("rename to same label should be a no-op, got %v", err)
	}
}

func TestRemoveFeed(t *testing.T) {
	r := NewRegistry()
	r.CreateFeed("a")
	if err := r.RemoveFeed("a"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if err := r.RemoveFeed("a"); !errors.Is(err, ErrFeedNotFound) {
		t.Errorf("expected ErrFeedNotFound, got %v", err)
	}
	if len(r.Labels()) != 0 {
		t.Errorf("expected empty order, got %v", r.Labels())
	}
}

func TestToggleBookmarkIdempotentPair(t *testing.T) {
	r := NewRegistry()
	first := news.Item{Title: "one", Link: "a"}
	second := news.Item{Title: "two", Link: "b"}

	r.ToggleBookmark(first)
	r.ToggleBookmark(second)
	if got := r.Bookmarks(); len(got) != 2 || got[0].Link != "b" {
		t.Fatalf("expected most-recent-first bookmarks, got %v", got)
	}

	r.ToggleBookmark(second)
	r.ToggleBookmark(second)
	got := r.Bookmarks()
	if len(got) != 2 || got[0].Link != "b" {
		t.Errorf("double toggle should restore previous state, got %v", got)
	}
	if !r.IsBookmarked("a") || !r.IsBookmarked("b") {
		t.Error("expected both links bookmarked")
	}
}

func TestMarkAllRead(t *testing.T) {
	r := NewRegistry()
	r.MarkRead("a")

	n := r.MarkAllRead(items("a", "b"))
	if n != 1 {
		t.Errorf("expected 1 newly read, got %d", n)
	}
	if !r.IsRead("a") || !r.IsRead("b") {
		t.Error("expected both links read")
	}

	r.MarkUnread("a")
	if r.IsRead("a") {
		t.Error("expected a unread after MarkUnread")
	}
}

func TestBeginFetchGuard(t *testing.T) {
	r := NewRegistry()
	r.CreateFeed("golang")

	ok, err := r.BeginFetch("golang")
	if err != nil || !ok {
		t.Fatalf("first BeginFetch = %v, %v", ok, err)
	}
	if ok, err = r.BeginFetch("golang"); err != nil || ok {
		t.Errorf("second BeginFetch should be dropped, got %v, %v", ok, err)
	}

	r.EndFetch("golang")
	if ok, _ = r.BeginFetch("golang"); !ok {
		t.Error("BeginFetch should succeed again after EndFetch")
	}

	if _, err = r.BeginFetch("missing"); !errors.Is(err, ErrFeedNotFound) {
		t.Errorf("expected ErrFeedNotFound, got %v", err)
	}
}

func TestSnapshotRestoreRoundTrip(t *testing.T) {
	r := NewRegistry()
	r.CreateFeed("golang -rust")
	r.CreateFeed("kubernetes")
	r.ToggleBookmark(news.Item{Title: "keep", Link: "x"})
	r.MarkRead("y")

	restored := NewRegistry()
	if err := restored.Restore(r.Snapshot()); err != nil {
		t.Fatalf("restore: %v", err)
	}

	if got := restored.Labels(); len(got) != 2 || got[0] != "golang -rust" {
		t.Errorf("labels = %v", got)
	}
	if got := restored.Bookmarks(); len(got) != 1 || got[0].Link != "x" {
		t.Errorf("bookmarks = %v", got)
	}
	if !restored.IsRead("y") {
		t.Error("read link lost in round trip")
	}
	// restore must not fabricate new-link state
	f, _ := restored.Feed("kubernetes")
	if len(f.NewLinks) != 0 {
		t.Errorf("restore produced new links: %v", f.NewLinks)
	}
}

func TestRestoreKeepsValidPartOfMalformedState(t *testing.T) {
	r := NewRegistry()
	err := r.Restore(Snapshot{
		Labels: []string{"good", "", "good", "also good"},
		Bookmarks: []news.Item{
			{Title: "ok", Link: "a"},
			{Title: "broken"},
			{Title: "dup", Link: "a"},
		},
		ReadLinks: []string{"r1", ""},
	})
	if !errors.Is(err, ErrMalformedState) {
		t.Fatalf("expected ErrMalformedState, got %v", err)
	}

	if got := r.Labels(); len(got) != 2 {
		t.Errorf("expected the two valid feeds, got %v", got)
	}
	if got := r.Bookmarks(); len(got) != 1 || got[0].Link != "a" {
		t.Errorf("expected one valid bookmark, got %v", got)
	}
	if !r.IsRead("r1") || r.IsRead("") {
		t.Error("read links not filtered correctly")
	}
}
