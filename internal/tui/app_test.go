package tui

import (
	"context"
	"testing"

	"newsdeck/internal/news"
	"newsdeck/internal/refresh"
	"newsdeck/internal/session"
)

type noopFetcher struct{}

func (noopFetcher) Fetch(ctx context.Context, include string, excludes []string) ([]news.Item, error) {
	return nil, nil
}

func testApp(t *testing.T, labels ...string) *App {
	t.Helper()
	reg := session.NewRegistry()
	for _, l := range labels {
		if err := reg.CreateFeed(l); err != nil {
			t.Fatalf("create %s: %v", l, err)
		}
	}
	return NewApp(RunOpts{
		Ctx:      context.Background(),
		Registry: reg,
		Coord:    refresh.New(reg, noopFetcher{}),
	})
}

func TestSelectTabWrapsAndClearsNewLinks(t *testing.T) {
	a := testApp(t, "one", "two")
	if _, err := a.reg.ReplaceItems("one", []news.Item{{Link: "x"}}); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if _, err := a.reg.ReplaceItems("one", []news.Item{{Link: "x"}, {Link: "y"}}); err != nil {
		t.Fatalf("seed: %v", err)
	}
	f, _ := a.reg.Feed("one")
	if len(f.NewLinks) != 1 {
		t.Fatalf("setup: expected 1 new link, got %v", f.NewLinks)
	}

	a.selectTab(1) // into "one"
	if label, ok := a.currentLabel(); !ok || label != "one" {
		t.Fatalf("currentLabel = %q, %v", label, ok)
	}
	f, _ = a.reg.Feed("one")
	if len(f.NewLinks) != 0 {
		t.Errorf("viewing a feed should clear its new links, got %v", f.NewLinks)
	}

	// 3 tabs total: bookmarks, one, two. +1 from "two" wraps to bookmarks.
	a.selectTab(3)
	if _, ok := a.currentLabel(); ok {
		t.Error("expected wrap back to the bookmarks tab")
	}
	a.selectTab(-1)
	if label, _ := a.currentLabel(); label != "two" {
		t.Errorf("expected wrap to last feed tab, got %q", label)
	}
}

func TestSourceItemsPerTab(t *testing.T) {
	a := testApp(t, "one")
	if _, err := a.reg.ReplaceItems("one", []news.Item{{Link: "feed-item"}}); err != nil {
		t.Fatalf("seed: %v", err)
	}
	a.reg.ToggleBookmark(news.Item{Title: "kept", Link: "bookmark-item"})

	if got := a.sourceItems(); len(got) != 1 || got[0].Link != "bookmark-item" {
		t.Errorf("bookmarks tab items = %v", got)
	}
	a.selectTab(1)
	if got := a.sourceItems(); len(got) != 1 || got[0].Link != "feed-item" {
		t.Errorf("feed tab items = %v", got)
	}
}

func TestViewDoesNotMoveCursor(t *testing.T) {
	a := testApp(t, "one")
	a.width = 80
	a.height = 24
	a.selectTab(1)
	a.cursor = 7 // beyond the empty item list

	a.View()
	if a.cursor != 7 {
		t.Errorf("View moved the cursor to %d", a.cursor)
	}
}

func TestTabInfosIncludeNewCounts(t *testing.T) {
	a := testApp(t, "one")
	a.reg.ReplaceItems("one", []news.Item{{Link: "x"}})
	a.reg.ReplaceItems("one", []news.Item{{Link: "x"}, {Link: "y"}, {Link: "z"}})

	tabs := a.tabInfos()
	if len(tabs) != 2 || tabs[0].title != BookmarksTab {
		t.Fatalf("tabs = %+v", tabs)
	}
	if tabs[1].newCount != 2 {
		t.Errorf("new count = %d, want 2", tabs[1].newCount)
	}
}
