package tracker

import (
	"testing"

	"github.com/theirongolddev/kcal/internal/model"
)

func TestDashboard_SurplusScenario(t *testing.T) {
	tr, _, _ := newTracker(t, nil)
	_, _ = tr.SetCalories(2500)

	d := tr.Dashboard()
	if d.Remaining != -500 {
		t.Errorf("Remaining = %d, want -500", d.Remaining)
	}
	if d.RemainingLabel != "500 surplus" {
		t.Errorf("RemainingLabel = %q, want \"500 surplus\"", d.RemainingLabel)
	}
	if d.WeeklyLbs != 1.0 {
		t.Errorf("WeeklyLbs = %v, want 1.0", d.WeeklyLbs)
	}
	if d.Trend != model.TrendGain {
		t.Errorf("Trend = %s, want gain", d.Trend)
	}
	if d.Projection != "At this rate, you will gain 1.0 lbs per week." {
		t.Errorf("Projection = %q", d.Projection)
	}
	if d.ProgressPercent != 100 || !d.Over {
		t.Errorf("ProgressPercent = %v, Over = %v; want 100, true", d.ProgressPercent, d.Over)
	}
}

func TestBuildDashboard_LabelsAreExclusive(t *testing.T) {
	day := model.DayLabel{Text: "Today"}
	tests := []struct {
		cals, goal int
		label      string
		trend      model.Trend
		lbs        float64
		progress   float64
	}{
		{0, 2000, "2000 deficit", model.TrendLose, 4.0, 0},
		{1500, 2000, "500 deficit", model.TrendLose, 1.0, 75},
		{2000, 2000, "0 deficit", model.TrendMaintain, 0, 100},
		{2001, 2000, "1 surplus", model.TrendGain, 0, 100},
		{1750, 2000, "250 deficit", model.TrendLose, 0.5, 87.5},
		{3000, 1200, "1800 surplus", model.TrendGain, 3.6, 100},
	}
	for _, tt := range tests {
		d := buildDashboard(day, tt.cals, tt.goal)
		if d.Remaining != tt.goal-tt.cals {
			t.Errorf("(%d/%d) Remaining = %d, want %d", tt.cals, tt.goal, d.Remaining, tt.goal-tt.cals)
		}
		if d.RemainingLabel != tt.label {
			t.Errorf("(%d/%d) label = %q, want %q", tt.cals, tt.goal, d.RemainingLabel, tt.label)
		}
		if d.Trend != tt.trend {
			t.Errorf("(%d/%d) trend = %s, want %s", tt.cals, tt.goal, d.Trend, tt.trend)
		}
		if d.WeeklyLbs != tt.lbs {
			t.Errorf("(%d/%d) lbs = %v, want %v", tt.cals, tt.goal, d.WeeklyLbs, tt.lbs)
		}
		if d.ProgressPercent != tt.progress {
			t.Errorf("(%d/%d) progress = %v, want %v", tt.cals, tt.goal, d.ProgressPercent, tt.progress)
		}
	}
}

func TestDashboard_MaintainMessage(t *testing.T) {
	d := buildDashboard(model.DayLabel{}, 2000, 2000)
	if d.Projection != "At this rate, you will maintain your weight." {
		t.Fatalf("Projection = %q", d.Projection)
	}
}

func TestChart_WindowEndsAtViewingDay(t *testing.T) {
	tr, _, _ := newTracker(t, nil)
	tr.Navigate(Backward)

	c := tr.Chart()
	if len(c.Days) != ChartDays {
		t.Fatalf("len(Days) = %d, want %d", len(c.Days), ChartDays)
	}
	want := []string{
		"2026-03-08", "2026-03-09", "2026-03-10", "2026-03-11",
		"2026-03-12", "2026-03-13", "2026-03-14",
	}
	for i, d := range c.Days {
		if d.Key != want[i] {
			t.Errorf("Days[%d].Key = %s, want %s", i, d.Key, want[i])
		}
		if d.IsViewingDay != (i == ChartDays-1) {
			t.Errorf("Days[%d].IsViewingDay = %v", i, d.IsViewingDay)
		}
	}
	// 2026-03-14 is a Saturday.
	if c.Days[6].Weekday != "S" || c.Days[2].Weekday != "T" {
		t.Errorf("weekday labels = %s, %s", c.Days[6].Weekday, c.Days[2].Weekday)
	}
}

func TestChart_DoesNotMaterializeDays(t *testing.T) {
	tr, _, _ := newTracker(t, nil)
	before := len(tr.State().History)
	tr.Chart()
	if after := len(tr.State().History); after != before {
		t.Fatalf("Chart grew history from %d to %d", before, after)
	}
}

func TestChart_Scaling(t *testing.T) {
	st := model.State{Goal: 2000, History: map[string]int{
		today:        3000,
		"2026-03-14": 1000,
		"2026-03-13": 2500,
	}}
	tr, _, _ := newTracker(t, map[string]string{StateKey: stateJSON(t, st)})

	c := tr.Chart()
	if c.Max != 3600 {
		t.Fatalf("Max = %v, want 3600", c.Max)
	}
	for _, d := range c.Days {
		if c.Max < float64(d.Calories) || c.Max < float64(c.Goal) {
			t.Fatalf("Max %v below day %d or goal %d", c.Max, d.Calories, c.Goal)
		}
		if d.IsOverGoal != (d.Calories > 2000) {
			t.Errorf("%s IsOverGoal = %v with %d", d.Key, d.IsOverGoal, d.Calories)
		}
		if d.BarHeightPercent < MinBarPercent || d.BarHeightPercent > 100 {
			t.Errorf("%s bar = %v out of range", d.Key, d.BarHeightPercent)
		}
	}

	last := c.Days[6]
	if diff := last.BarHeightPercent - 3000.0/3600*100; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("today bar = %v, want %v", last.BarHeightPercent, 3000.0/3600*100)
	}
	if c.Days[0].BarHeightPercent != MinBarPercent {
		t.Errorf("empty day bar = %v, want floor %v", c.Days[0].BarHeightPercent, MinBarPercent)
	}
	if diff := c.GoalLinePercent - 2000.0/3600*100; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("GoalLinePercent = %v", c.GoalLinePercent)
	}
}

func TestChart_GoalDominates(t *testing.T) {
	tr, _, _ := newTracker(t, nil)
	c := tr.Chart()
	if c.Max != 2400 {
		t.Fatalf("Max = %v, want 2400 (goal * 1.2)", c.Max)
	}
	if diff := c.GoalLinePercent - 100/1.2; diff > 1e-9 || diff < -1e-9 {
		t.Fatalf("GoalLinePercent = %v, want %v", c.GoalLinePercent, 100/1.2)
	}
}

func TestWeeklyLbs(t *testing.T) {
	tests := []struct {
		remaining int
		want      float64
	}{
		{0, 0},
		{500, 1.0},
		{-500, 1.0},
		{100, 0.2},
		{-1000, 2.0},
		{249, 0.5},
	}
	for _, tt := range tests {
		if got := WeeklyLbs(tt.remaining); got != tt.want {
			t.Errorf("WeeklyLbs(%d) = %v, want %v", tt.remaining, got, tt.want)
		}
	}
}

func TestDailySeries_FillsGaps(t *testing.T) {
	got := DailySeries([]HistoryEntry{
		{Key: "2026-03-02", Calories: 1900},
		{Key: "2026-02-27", Calories: 2100},
		{Key: "2026-03-01", Calories: 1500},
	})

	want := []HistoryEntry{
		{Key: "2026-02-27", Calories: 2100},
		{Key: "2026-02-28", Calories: 0},
		{Key: "2026-03-01", Calories: 1500},
		{Key: "2026-03-02", Calories: 1900},
	}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d (%+v)", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("series[%d] = %+v, want %+v", i, got[i], want[i])
		}
	}

	if DailySeries(nil) != nil {
		t.Error("empty history should give a nil series")
	}
}
