package components

import (
	"github.com/theirongolddev/kcal/internal/model"
	"github.com/theirongolddev/kcal/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// RenderDayNav renders the day header, e.g. "‹  Yesterday  ›  2026-03-14".
// The forward arrow is dimmed when the viewing day is today.
func RenderDayNav(day model.DayLabel, width int) string {
	t := theme.Active

	arrowStyle := lipgloss.NewStyle().Foreground(t.Accent).Bold(true)
	disabledStyle := lipgloss.NewStyle().Foreground(t.TextDim)
	labelStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Bold(true)
	keyStyle := lipgloss.NewStyle().Foreground(t.TextMuted)

	next := disabledStyle.Render("›")
	if day.NextDayAvailable {
		next = arrowStyle.Render("›")
	}

	line := arrowStyle.Render("‹") + "  " +
		labelStyle.Render(day.Text) + "  " +
		next + "  " +
		keyStyle.Render(day.Key)

	return lipgloss.PlaceHorizontal(width, lipgloss.Center, line)
}
