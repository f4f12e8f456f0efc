package tui

import "github.com/charmbracelet/lipgloss"

var (
	colorPrimary = lipgloss.AdaptiveColor{Light: "#5A56E0", Dark: "#7571F9"}
	colorText    = lipgloss.AdaptiveColor{Light: "#3D3D3D", Dark: "#ABABAB"}
	colorDim     = lipgloss.AdaptiveColor{Light: "#9B9B9B", Dark: "#626262"}
	colorAccent  = lipgloss.AdaptiveColor{Light: "#F25D94", Dark: "#F25D94"}
	colorNew     = lipgloss.AdaptiveColor{Light: "#C22F3E", Dark: "#FF5C68"}
	colorGreen   = lipgloss.AdaptiveColor{Light: "#04B575", Dark: "#25D366"}
	colorTabBg   = lipgloss.AdaptiveColor{Light: "#EEEEEE", Dark: "#2A2A3E"}
	colorBarBg   = lipgloss.AdaptiveColor{Light: "#E8E8E8", Dark: "#16213E"}

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary).
			PaddingLeft(1)

	headerDateStyle = lipgloss.NewStyle().
			Foreground(colorDim)

	tabActiveStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(colorPrimary).
			Padding(0, 1).
			Bold(true)

	tabInactiveStyle = lipgloss.NewStyle().
				Foreground(colorText).
				Background(colorTabBg).
				Padding(0, 1)

	tabBadgeStyle = lipgloss.NewStyle().
			Foreground(colorNew).
			Bold(true)

	itemTitleStyle = lipgloss.NewStyle().
			Foreground(colorPrimary).
			Bold(true)

	itemSelectedStyle = lipgloss.NewStyle().
				Foreground(colorAccent).
				Bold(true)

	itemReadStyle = lipgloss.NewStyle().
			Foreground(colorDim)

	itemMetaStyle = lipgloss.NewStyle().
			Foreground(colorDim)

	itemDescStyle = lipgloss.NewStyle().
			Foreground(colorText)

	newBadgeStyle = lipgloss.NewStyle().
			Foreground(colorNew).
			Bold(true)

	bookmarkMarkStyle = lipgloss.NewStyle().
				Foreground(colorGreen)

	statusBarStyle = lipgloss.NewStyle().
			Background(colorBarBg).
			Foreground(colorText).
			PaddingLeft(1).
			PaddingRight(1)

	statusErrStyle = lipgloss.NewStyle().
			Foreground(colorAccent)

	spinnerStyle = lipgloss.NewStyle().
			Foreground(colorAccent)

	inputPromptStyle = lipgloss.NewStyle().
				Foreground(colorAccent).
				Bold(true)
)
