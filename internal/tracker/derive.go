package tracker

import (
	"fmt"
	"math"

	"github.com/theirongolddev/kcal/internal/model"
)

const (
	// kcalPerPound approximates the energy in one pound of body mass.
	kcalPerPound = 3500

	// ChartDays is the width of the history chart window.
	ChartDays = 7

	// chartHeadroom keeps the tallest bar and the goal line off the top edge.
	chartHeadroom = 1.2

	// MinBarPercent keeps zero-calorie days visible as a sliver.
	MinBarPercent = 2.0
)

// Dashboard computes the deficit/surplus summary for the viewing day.
func (t *Tracker) Dashboard() model.Dashboard {
	t.mu.Lock()
	defer t.mu.Unlock()

	cals := t.state.History[t.viewing]
	goal := t.state.Goal
	return buildDashboard(t.dayLabel(), cals, goal)
}

func buildDashboard(day model.DayLabel, cals, goal int) model.Dashboard {
	remaining := goal - cals
	d := model.Dashboard{
		Day:       day,
		Calories:  cals,
		Goal:      goal,
		Remaining: remaining,
		Over:      cals > goal,
	}

	if remaining >= 0 {
		d.RemainingLabel = fmt.Sprintf("%d deficit", remaining)
	} else {
		d.RemainingLabel = fmt.Sprintf("%d surplus", -remaining)
	}

	d.WeeklyLbs = WeeklyLbs(remaining)
	switch {
	case remaining > 0:
		d.Trend = model.TrendLose
		d.Projection = fmt.Sprintf("At this rate, you will lose %.1f lbs per week.", d.WeeklyLbs)
	case remaining < 0:
		d.Trend = model.TrendGain
		d.Projection = fmt.Sprintf("At this rate, you will gain %.1f lbs per week.", d.WeeklyLbs)
	default:
		d.Trend = model.TrendMaintain
		d.Projection = "At this rate, you will maintain your weight."
	}

	d.ProgressPercent = percent(float64(cals), float64(goal))
	return d
}

// WeeklyLbs extrapolates one day's deficit or surplus over a week, in
// pounds rounded to one decimal place.
func WeeklyLbs(remaining int) float64 {
	lbs := math.Abs(float64(remaining)) * 7 / kcalPerPound
	return math.Round(lbs*10) / 10
}

// Chart builds the 7-day window ending at the viewing day, oldest first.
// Days without history read as zero and are not recorded.
func (t *Tracker) Chart() model.Chart {
	t.mu.Lock()
	defer t.mu.Unlock()

	goal := t.state.Goal
	peak := goal
	days := make([]model.ChartDay, 0, ChartDays)
	for i := ChartDays - 1; i >= 0; i-- {
		key := shiftKey(t.viewing, -i)
		cals := t.state.History[key]
		if cals > peak {
			peak = cals
		}
		days = append(days, model.ChartDay{
			Key:          key,
			Weekday:      narrowWeekday(key),
			Calories:     cals,
			IsViewingDay: key == t.viewing,
			IsOverGoal:   cals > goal,
		})
	}

	chartMax := float64(peak) * chartHeadroom
	for i := range days {
		days[i].BarHeightPercent = math.Max(percent(float64(days[i].Calories), chartMax), MinBarPercent)
	}

	return model.Chart{
		Days:            days,
		Goal:            goal,
		Max:             chartMax,
		GoalLinePercent: percent(float64(goal), chartMax),
	}
}

// percent returns v/total as a percentage clamped to [0, 100].
func percent(v, total float64) float64 {
	if total <= 0 {
		return 0
	}
	p := v / total * 100
	return math.Min(math.Max(p, 0), 100)
}
