package session

import (
	"testing"

	"newsdeck/internal/news"
)

func items(links ...string) []news.Item {
	out := make([]news.Item, len(links))
	for i, l := range links {
		out[i] = news.Item{Title: "t", Link: l}
	}
	return out
}

func TestNewLinksColdStart(t *testing.T) {
	got := NewLinks(nil, items("a", "b"))
	if len(got) != 0 {
		t.Errorf("first fetch of an empty feed should produce no delta, got %v", got)
	}
}

func TestNewLinksDelta(t *testing.T) {
	got := NewLinks(items("a"), items("a", "b"))
	if len(got) != 1 {
		t.Fatalf("expected 1 new link, got %d", len(got))
	}
	if _, ok := got["b"]; !ok {
		t.Errorf("expected delta to contain %q, got %v", "b", got)
	}
}

func TestNewLinksNoChange(t *testing.T) {
	got := NewLinks(items("a", "b"), items("b", "a"))
	if len(got) != 0 {
		t.Errorf("reordered identical result should produce no delta, got %v", got)
	}
}

func TestNewLinksDisappearedItems(t *testing.T) {
	// Items dropping out of the result are not a delta either.
	got := NewLinks(items("a", "b", "c"), items("a"))
	if len(got) != 0 {
		t.Errorf("shrunk result should produce no delta, got %v", got)
	}
}
