package components

import (
	"strings"

	"github.com/theirongolddev/kcal/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// RenderStatusBar renders the bottom status bar: key hints on the left
// and the last action's flash message on the right.
func RenderStatusBar(width int, flash string, isErr bool) string {
	t := theme.Active

	style := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Width(width)

	flashStyle := lipgloss.NewStyle().Foreground(t.AccentBright)
	if isErr {
		flashStyle = flashStyle.Foreground(t.Warn)
	}

	left := " [?]help  [q]uit"
	right := ""
	if flash != "" {
		right = flashStyle.Render(flash) + " "
	}

	padding := width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 1 {
		padding = 1
	}

	return style.Render(left + strings.Repeat(" ", padding) + right)
}
