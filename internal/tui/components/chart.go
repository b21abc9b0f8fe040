package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/theirongolddev/kcal/internal/model"
	"github.com/theirongolddev/kcal/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

const (
	minChartHeight = 3
	maxBarWidth    = 6
)

// CalorieChart renders the 7-day chart as vertical bars scaled to the
// chart's own max, with a dashed goal line and weekday labels beneath.
// width is the space available for the bars and the goal label.
func CalorieChart(c model.Chart, width, height int) string {
	if len(c.Days) == 0 {
		return ""
	}
	if height < minChartHeight {
		height = minChartHeight
	}
	t := theme.Active

	goalLabel := " " + formatGoalLabel(c.Goal)
	n := len(c.Days)
	barW := (width - lipgloss.Width(goalLabel) - (n - 1)) / n
	if barW > maxBarWidth {
		barW = maxBarWidth
	}
	if barW < 1 {
		barW = 1
	}

	barStyle := lipgloss.NewStyle().Foreground(t.Bar)
	viewStyle := lipgloss.NewStyle().Foreground(t.Accent)
	overStyle := lipgloss.NewStyle().Foreground(t.Over)
	goalStyle := lipgloss.NewStyle().Foreground(t.TextDim)
	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	activeLabel := lipgloss.NewStyle().Foreground(t.AccentBright).Bold(true)

	goalRow := int(math.Round(c.GoalLinePercent / 100 * float64(height)))
	full := strings.Repeat("█", barW)
	dash := strings.Repeat("╌", barW)
	blank := strings.Repeat(" ", barW)

	lines := make([]string, 0, height+1)
	for row := height; row >= 1; row-- {
		bottom := float64(row-1) / float64(height) * 100
		onGoal := row == goalRow

		var b strings.Builder
		for i, d := range c.Days {
			if i > 0 {
				if onGoal {
					b.WriteString(goalStyle.Render("╌"))
				} else {
					b.WriteString(" ")
				}
			}
			switch {
			case d.BarHeightPercent > bottom:
				style := barStyle
				switch {
				case d.IsOverGoal:
					style = overStyle
				case d.IsViewingDay:
					style = viewStyle
				}
				b.WriteString(style.Render(full))
			case onGoal:
				b.WriteString(goalStyle.Render(dash))
			default:
				b.WriteString(blank)
			}
		}
		if onGoal {
			b.WriteString(goalStyle.Render(goalLabel))
		}
		lines = append(lines, b.String())
	}

	var labels strings.Builder
	for i, d := range c.Days {
		if i > 0 {
			labels.WriteString(" ")
		}
		cell := lipgloss.PlaceHorizontal(barW, lipgloss.Center, d.Weekday)
		if d.IsViewingDay {
			labels.WriteString(activeLabel.Render(cell))
		} else {
			labels.WriteString(labelStyle.Render(cell))
		}
	}
	lines = append(lines, labels.String())

	return strings.Join(lines, "\n")
}

func formatGoalLabel(goal int) string {
	if goal >= 10_000 {
		return fmt.Sprintf("%.0fk", float64(goal)/1000)
	}
	return fmt.Sprintf("%d", goal)
}
