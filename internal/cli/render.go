package cli

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/kcal/internal/model"
)

// Flexoki Dark, the palette for plain CLI output.
var (
	ColorBorder    = lipgloss.Color("#282726")
	ColorTextDim   = lipgloss.Color("#575653")
	ColorTextMuted = lipgloss.Color("#6F6E69")
	ColorText      = lipgloss.Color("#FFFCF0")
	ColorAccent    = lipgloss.Color("#3AA99F")
	ColorGreen     = lipgloss.Color("#879A39")
	ColorOrange    = lipgloss.Color("#DA702C")
	ColorBlue      = lipgloss.Color("#4385BE")
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(ColorText).Align(lipgloss.Center)
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorAccent)
	valueStyle  = lipgloss.NewStyle().Foreground(ColorText)
	mutedStyle  = lipgloss.NewStyle().Foreground(ColorTextMuted)
	dimStyle    = lipgloss.NewStyle().Foreground(ColorTextDim)
	goodStyle   = lipgloss.NewStyle().Foreground(ColorGreen)
	warnStyle   = lipgloss.NewStyle().Foreground(ColorOrange)
	barStyle    = lipgloss.NewStyle().Foreground(ColorBlue)
	activeStyle = lipgloss.NewStyle().Foreground(ColorAccent)
)

// Table is a bordered text table. The first column is left-aligned and
// the rest are right-aligned. A row holding only "---" draws a separator.
type Table struct {
	Title   string
	Headers []string
	Rows    [][]string
	Widths  []int // optional column widths, auto-calculated if nil
}

// RenderTitle renders a centered title bar in a bordered box.
func RenderTitle(title string) string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorder).
		Width(55).
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(titleStyle.Render(title))
}

// RenderTable renders t with rounded box-drawing borders.
func RenderTable(t Table) string {
	numCols := len(t.Headers)
	if numCols == 0 && len(t.Rows) > 0 {
		numCols = len(t.Rows[0])
	}
	if numCols == 0 {
		return ""
	}

	widths := make([]int, numCols)
	if t.Widths != nil {
		copy(widths, t.Widths)
	} else {
		grow := func(cells []string) {
			for i, c := range cells {
				if i < numCols && lipgloss.Width(c) > widths[i] {
					widths[i] = lipgloss.Width(c)
				}
			}
		}
		grow(t.Headers)
		for _, row := range t.Rows {
			if !isSeparator(row) {
				grow(row)
			}
		}
	}

	var b strings.Builder
	if t.Title != "" {
		b.WriteString("  " + headerStyle.Render(t.Title) + "\n")
	}

	b.WriteString(tableRule(widths, "╭", "┬", "╮"))
	if len(t.Headers) > 0 {
		b.WriteString(tableRow(t.Headers, widths, headerStyle, false))
		b.WriteString(tableRule(widths, "├", "┼", "┤"))
	}
	for _, row := range t.Rows {
		if isSeparator(row) {
			b.WriteString(tableRule(widths, "├", "┼", "┤"))
			continue
		}
		b.WriteString(tableRow(row, widths, valueStyle, true))
	}
	b.WriteString(tableRule(widths, "╰", "┴", "╯"))

	return b.String()
}

func isSeparator(row []string) bool {
	return len(row) == 1 && row[0] == "---"
}

func tableRule(widths []int, left, mid, right string) string {
	parts := make([]string, len(widths))
	for i, w := range widths {
		parts[i] = strings.Repeat("─", w+2)
	}
	return dimStyle.Render(left+strings.Join(parts, mid)+right) + "\n"
}

func tableRow(cells []string, widths []int, style lipgloss.Style, alignRight bool) string {
	sep := dimStyle.Render("│")
	var b strings.Builder
	b.WriteString(sep)
	for i, w := range widths {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		pad := strings.Repeat(" ", max(0, w-lipgloss.Width(cell)))
		if alignRight && i > 0 {
			cell = pad + cell
		} else {
			cell += pad
		}
		b.WriteString(style.Render(" " + cell + " "))
		b.WriteString(sep)
	}
	b.WriteString("\n")
	return b.String()
}

// RenderProgressBar renders a simple text progress bar. Past the total
// the bar is drawn full in the warning color.
func RenderProgressBar(current, total int, width int) string {
	if total <= 0 {
		return ""
	}

	pct := float64(current) / float64(total)
	if pct > 1 {
		pct = 1
	}
	if pct < 0 {
		pct = 0
	}

	filled := int(pct * float64(width))
	if filled > width {
		filled = width
	}

	style := mutedStyle
	if current > total {
		style = warnStyle
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	return fmt.Sprintf("[%s] %s/%s",
		style.Render(bar),
		FormatNumber(int64(current)),
		FormatNumber(int64(total)),
	)
}

// RenderSparkline generates a unicode block sparkline from a series of values.
func RenderSparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}

	blocks := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	peak := values[0]
	for _, v := range values[1:] {
		if v > peak {
			peak = v
		}
	}
	if peak == 0 {
		peak = 1
	}

	var b strings.Builder
	for _, v := range values {
		idx := int(v / peak * float64(len(blocks)-1))
		if idx >= len(blocks) {
			idx = len(blocks) - 1
		}
		if idx < 0 {
			idx = 0
		}
		b.WriteRune(blocks[idx])
	}

	return b.String()
}

// RenderChart draws the 7-day chart as vertical bars, height rows tall,
// with the goal drawn as a dashed line across empty cells.
func RenderChart(c model.Chart, height int) string {
	if height < 2 {
		height = 2
	}
	goalRow := int(math.Round(c.GoalLinePercent / 100 * float64(height)))

	var b strings.Builder
	for row := height; row >= 1; row-- {
		bottom := float64(row-1) / float64(height) * 100
		b.WriteString("  ")
		for _, d := range c.Days {
			switch {
			case d.BarHeightPercent > bottom:
				style := barStyle
				if d.IsOverGoal {
					style = warnStyle
				} else if d.IsViewingDay {
					style = activeStyle
				}
				b.WriteString(style.Render("██"))
				b.WriteString(" ")
			case row == goalRow:
				b.WriteString(dimStyle.Render("╌╌╌"))
			default:
				b.WriteString("   ")
			}
		}
		if row == goalRow {
			b.WriteString(mutedStyle.Render(" goal " + FormatNumber(int64(c.Goal))))
		}
		b.WriteString("\n")
	}

	b.WriteString("  ")
	for _, d := range c.Days {
		label := fmt.Sprintf("%-3s", d.Weekday)
		if d.IsViewingDay {
			b.WriteString(headerStyle.Render(label))
		} else {
			b.WriteString(mutedStyle.Render(label))
		}
	}
	b.WriteString("\n")

	return b.String()
}

// RenderBalance colors a FormatBalance string: green under goal, orange over.
func RenderBalance(calories, goal int) string {
	s := FormatBalance(calories, goal)
	if calories > goal {
		return warnStyle.Render(s)
	}
	return goodStyle.Render(s)
}
