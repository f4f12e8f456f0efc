// Package export writes feed items as a numbered plain-text listing.
package export

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"newsdeck/internal/news"
)

// Write renders items as numbered entries with link and summary lines.
func Write(w io.Writer, items []news.Item) error {
	for i, it := range items {
		if _, err := fmt.Fprintf(w, "[%d] %s\n  - link: %s\n  - summary: %s\n\n",
			i+1, it.Title, it.Link, it.Description); err != nil {
			return err
		}
	}
	return nil
}

// ToFile writes the listing to path, refusing to touch an existing file.
func ToFile(path string, items []news.Item) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("creating export file: %w", err)
	}
	if err := Write(f, items); err != nil {
		f.Close()
		return fmt.Errorf("writing export: %w", err)
	}
	return f.Close()
}

// DefaultFilename derives an export filename from a feed label, e.g.
// "golang -rust" on 2026-02-10 becomes "golang_rust_news_20260210.txt".
func DefaultFilename(label string, now time.Time) string {
	name := strings.NewReplacer(" ", "_", "-", "_").Replace(label)
	name = strings.Trim(strings.ReplaceAll(name, "__", "_"), "_")
	if name == "" {
		name = "newsdeck"
	}
	return fmt.Sprintf("%s_news_%s.txt", name, now.Format("20060102"))
}
