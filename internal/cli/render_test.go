package cli

import (
	"strings"
	"testing"

	"github.com/theirongolddev/kcal/internal/model"

	"github.com/charmbracelet/x/ansi"
)

func TestRenderTable(t *testing.T) {
	out := ansi.Strip(RenderTable(Table{
		Headers: []string{"Date", "Calories"},
		Rows: [][]string{
			{"2024-03-10", "1,850"},
			{"---"},
			{"2024-03-09", "95"},
		},
	}))
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 7 {
		t.Fatalf("lines = %d, want 7:\n%s", len(lines), out)
	}
	for i, l := range lines {
		if w := len([]rune(l)); w != len([]rune(lines[0])) {
			t.Errorf("line %d width = %d, want %d", i, w, len([]rune(lines[0])))
		}
	}
	if lines[0] != "╭────────────┬──────────╮" {
		t.Errorf("top border = %q", lines[0])
	}
	if lines[5] != "│ 2024-03-09 │       95 │" {
		t.Errorf("right-aligned row = %q", lines[5])
	}

	if got := RenderTable(Table{}); got != "" {
		t.Errorf("empty table = %q, want empty", got)
	}
}

func TestRenderProgressBar(t *testing.T) {
	got := RenderProgressBar(500, 2000, 20)
	if n := strings.Count(got, "█"); n != 5 {
		t.Errorf("filled cells = %d, want 5", n)
	}
	if n := strings.Count(got, "░"); n != 15 {
		t.Errorf("empty cells = %d, want 15", n)
	}
	if !strings.Contains(got, "500/2,000") {
		t.Errorf("missing counts in %q", got)
	}

	over := RenderProgressBar(2600, 2000, 10)
	if n := strings.Count(over, "█"); n != 10 {
		t.Errorf("over-goal filled cells = %d, want 10", n)
	}

	if got := RenderProgressBar(10, 0, 10); got != "" {
		t.Errorf("zero total = %q, want empty", got)
	}
}

func TestRenderChart(t *testing.T) {
	c := model.Chart{
		Goal:            2000,
		Max:             2400,
		GoalLinePercent: 100 / 1.2,
		Days: []model.ChartDay{
			{Weekday: "S", BarHeightPercent: 100, IsOverGoal: true},
			{Weekday: "S", BarHeightPercent: 50},
			{Weekday: "M", BarHeightPercent: 2},
			{Weekday: "T", BarHeightPercent: 2},
			{Weekday: "W", BarHeightPercent: 2},
			{Weekday: "T", BarHeightPercent: 2},
			{Weekday: "F", BarHeightPercent: 2, IsViewingDay: true},
		},
	}

	got := RenderChart(c, 5)
	lines := strings.Split(strings.TrimRight(got, "\n"), "\n")
	if len(lines) != 6 {
		t.Fatalf("lines = %d, want 6 (5 rows + labels)", len(lines))
	}

	// 5 rows for the full bar, 3 for the half bar, 1 for each floored bar.
	if n := strings.Count(got, "██"); n != 5+3+5 {
		t.Errorf("bar cells = %d, want 13", n)
	}

	// Goal line at round(0.833*5) = row 4, the second line from the top.
	if !strings.Contains(lines[1], "goal 2,000") {
		t.Errorf("goal label not on row 4: %q", lines[1])
	}
	if strings.Contains(lines[0], "goal") {
		t.Errorf("goal label on top row: %q", lines[0])
	}
	if !strings.Contains(lines[5], "F") {
		t.Errorf("labels row = %q, want weekday letters", lines[5])
	}
}

func TestRenderSparkline(t *testing.T) {
	got := RenderSparkline([]float64{0, 50, 100})
	if got != "▁▄█" {
		t.Errorf("RenderSparkline = %q, want %q", got, "▁▄█")
	}
	if RenderSparkline(nil) != "" {
		t.Error("empty series should render empty")
	}
}
