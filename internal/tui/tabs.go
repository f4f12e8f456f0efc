package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

type tabInfo struct {
	title    string
	newCount int
}

func renderTabBar(tabs []tabInfo, active, width int) string {
	var row string
	for i, t := range tabs {
		label := t.title
		if t.newCount > 0 && i != active {
			label += " " + tabBadgeStyle.Render(fmt.Sprintf("(%d)", t.newCount))
		}
		style := tabInactiveStyle
		if i == active {
			style = tabActiveStyle
		}
		candidate := row
		if i > 0 {
			candidate += " "
		}
		candidate += style.Render(label)
		if lipgloss.Width(candidate) > width && row != "" {
			row += tabInactiveStyle.Render("…")
			break
		}
		row = candidate
	}
	return lipgloss.NewStyle().Width(width).PaddingLeft(1).Render(row)
}
