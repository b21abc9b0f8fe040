package components

import (
	"fmt"

	"github.com/theirongolddev/kcal/internal/tui/theme"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
)

// ColorForProgress returns the bar color for a day's share of the goal:
// the under color up to 90%, a warning past that, and the over color
// once the goal is exceeded.
func ColorForProgress(pct float64, over bool) lipgloss.Color {
	t := theme.Active
	switch {
	case over:
		return t.Over
	case pct >= 90:
		return t.Warn
	default:
		return t.Under
	}
}

// GoalBar renders a labeled progress bar for pct (0-100) of the goal.
func GoalBar(label string, pct float64, over bool, labelW, barWidth int) string {
	t := theme.Active

	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	if barWidth < 4 {
		barWidth = 4
	}

	color := ColorForProgress(pct, over)
	bar := progress.New(
		progress.WithSolidFill(string(color)),
		progress.WithWidth(barWidth),
		progress.WithoutPercentage(),
	)
	bar.EmptyColor = string(t.TextDim)

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	pctStyle := lipgloss.NewStyle().Foreground(color).Bold(true)

	return labelStyle.Render(fmt.Sprintf("%-*s", labelW, label)) +
		" " +
		bar.ViewAs(pct/100) +
		" " +
		pctStyle.Render(fmt.Sprintf("%3.0f%%", pct))
}
