package model

// DayLabel describes the viewing day relative to today.
type DayLabel struct {
	Key              string `json:"key"`
	Text             string `json:"text"`
	DaysAgo          int    `json:"days_ago"`
	NextDayAvailable bool   `json:"next_day_available"`
}

// Trend is the direction of the projected weekly weight change.
type Trend string

const (
	TrendLose     Trend = "lose"
	TrendGain     Trend = "gain"
	TrendMaintain Trend = "maintain"
)

// Dashboard holds the derived values for the viewing day.
type Dashboard struct {
	Day             DayLabel `json:"day"`
	Calories        int      `json:"calories"`
	Goal            int      `json:"goal"`
	Remaining       int      `json:"remaining"`
	RemainingLabel  string   `json:"remaining_label"`
	Trend           Trend    `json:"trend"`
	WeeklyLbs       float64  `json:"weekly_lbs"`
	Projection      string   `json:"projection"`
	ProgressPercent float64  `json:"progress_percent"`
	Over            bool     `json:"over"`
}

// ChartDay is one bar of the 7-day chart.
type ChartDay struct {
	Key              string  `json:"key"`
	Weekday          string  `json:"weekday"`
	Calories         int     `json:"calories"`
	BarHeightPercent float64 `json:"bar_height_percent"`
	IsViewingDay     bool    `json:"is_viewing_day"`
	IsOverGoal       bool    `json:"is_over_goal"`
}

// Chart is the 7-day window ending at the viewing day, oldest first.
type Chart struct {
	Days            []ChartDay `json:"days"`
	Goal            int        `json:"goal"`
	Max             float64    `json:"max"`
	GoalLinePercent float64    `json:"goal_line_percent"`
}
