package tui

import (
	"fmt"
	"strings"
	"time"

	"newsdeck/internal/news"
)

// itemFlags carries the overlay state a row needs beyond the item itself.
type itemFlags struct {
	read       bool
	bookmarked bool
	fresh      bool
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "no date"
	}
	return t.Format("2006-01-02 15:04")
}

func truncateStr(s string, n int) string {
	if n <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	if n <= 3 {
		return string(runes[:n])
	}
	return string(runes[:n-3]) + "..."
}

func renderListItem(it news.Item, flags itemFlags, selected bool, width int) string {
	if width < 10 {
		width = 30
	}

	marker := "  "
	if selected {
		marker = "> "
	}
	prefix := ""
	if flags.bookmarked {
		prefix = bookmarkMarkStyle.Render("*") + " "
	}

	titleStyle := itemTitleStyle
	switch {
	case selected:
		titleStyle = itemSelectedStyle
	case flags.read:
		titleStyle = itemReadStyle
	}
	title := titleStyle.Render(marker + truncateStr(it.Title, width-6))
	if flags.fresh {
		title += " " + newBadgeStyle.Render("new")
	}

	meta := "  " + itemMetaStyle.Render(formatDate(it.PublishedAt)+" · "+truncateStr(it.Link, width-22))
	desc := "  " + itemDescStyle.Render(truncateStr(it.Description, width-4))

	return prefix + title + "\n" + meta + "\n" + desc
}

func renderList(items []news.Item, flags []itemFlags, cursor, height, width int, empty string) string {
	if len(items) == 0 {
		return "\n  " + itemMetaStyle.Render(empty)
	}

	// 3 content lines + 1 blank per row
	rowHeight := 4
	visible := height / rowHeight
	if visible < 1 {
		visible = 1
	}

	start := 0
	if cursor >= visible {
		start = cursor - visible + 1
	}
	end := start + visible
	if end > len(items) {
		end = len(items)
	}

	var b strings.Builder
	for i := start; i < end; i++ {
		b.WriteString(renderListItem(items[i], flags[i], i == cursor, width))
		if i < end-1 {
			b.WriteString("\n\n")
		}
	}
	if end < len(items) {
		b.WriteString("\n" + itemMetaStyle.Render(fmt.Sprintf("  … %d more", len(items)-end)))
	}
	return b.String()
}
