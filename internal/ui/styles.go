package ui

import (
	"github.com/charmbracelet/lipgloss"
	dark "github.com/thiagokokada/dark-mode-go"
)

// palette is one color scheme for the picker.
type palette struct {
	Border  lipgloss.Color
	Text    lipgloss.Color
	TextDim lipgloss.Color
	Accent  lipgloss.Color
	Green   lipgloss.Color
	Yellow  lipgloss.Color
	Red     lipgloss.Color
}

// Dark - Tokyo Night
var darkColors = palette{
	Border:  lipgloss.Color("#414868"),
	Text:    lipgloss.Color("#c0caf5"),
	TextDim: lipgloss.Color("#787fa0"),
	Accent:  lipgloss.Color("#7aa2f7"),
	Green:   lipgloss.Color("#9ece6a"),
	Yellow:  lipgloss.Color("#e0af68"),
	Red:     lipgloss.Color("#f7768e"),
}

// Light - Tokyo Night Light variant
var lightColors = palette{
	Border:  lipgloss.Color("#9699a3"),
	Text:    lipgloss.Color("#343b58"),
	TextDim: lipgloss.Color("#6a6d7c"),
	Accent:  lipgloss.Color("#34548a"),
	Green:   lipgloss.Color("#485e30"),
	Yellow:  lipgloss.Color("#8f5e15"),
	Red:     lipgloss.Color("#8c4351"),
}

// Active styles, set by InitTheme.
var (
	titleStyle    lipgloss.Style
	tabStyle      lipgloss.Style
	tabActive     lipgloss.Style
	filterStyle   lipgloss.Style
	cursorStyle   lipgloss.Style
	rowStyle      lipgloss.Style
	dimStyle      lipgloss.Style
	newRowStyle   lipgloss.Style
	footerStyle   lipgloss.Style
	emptyStyle    lipgloss.Style
	errorStyle    lipgloss.Style
)

func init() {
	InitTheme("dark")
}

// InitTheme sets the active palette. Accepts "dark", "light", or "system"
// (which asks the OS and falls back to dark when detection fails).
func InitTheme(theme string) {
	c := darkColors
	switch theme {
	case "light":
		c = lightColors
	case "system":
		if isDark, err := dark.IsDarkMode(); err == nil && !isDark {
			c = lightColors
		}
	}

	titleStyle = lipgloss.NewStyle().Foreground(c.Accent).Bold(true)
	tabStyle = lipgloss.NewStyle().Foreground(c.TextDim)
	tabActive = lipgloss.NewStyle().Foreground(c.Accent).Bold(true).Underline(true)
	filterStyle = lipgloss.NewStyle().Foreground(c.Yellow)
	cursorStyle = lipgloss.NewStyle().Foreground(c.Text).Bold(true).Reverse(true)
	rowStyle = lipgloss.NewStyle().Foreground(c.Text)
	dimStyle = lipgloss.NewStyle().Foreground(c.TextDim)
	newRowStyle = lipgloss.NewStyle().Foreground(c.Green)
	footerStyle = lipgloss.NewStyle().Foreground(c.TextDim)
	emptyStyle = lipgloss.NewStyle().Foreground(c.TextDim).Italic(true)
	errorStyle = lipgloss.NewStyle().Foreground(c.Red)
}
