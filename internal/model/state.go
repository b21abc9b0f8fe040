// Package model defines the data types shared across kcal packages.
package model

// DefaultGoal is the daily calorie target used when nothing is persisted.
const DefaultGoal = 2000

// State is the persisted tracker state: a goal plus calories per date key.
type State struct {
	Goal    int            `json:"goal"`
	History map[string]int `json:"history"`
}

// DefaultState returns a fresh state with the given goal and empty history.
func DefaultState(goal int) State {
	if goal <= 0 {
		goal = DefaultGoal
	}
	return State{
		Goal:    goal,
		History: make(map[string]int),
	}
}

// Clone returns a deep copy so callers can't mutate tracker-owned history.
func (s State) Clone() State {
	out := State{Goal: s.Goal, History: make(map[string]int, len(s.History))}
	for k, v := range s.History {
		out.History[k] = v
	}
	return out
}

// Preset is a named, reusable calorie delta. Calories may be negative.
type Preset struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Calories int    `json:"calories"`
}

// DefaultPresets returns the seed list used when no presets are persisted.
func DefaultPresets() []Preset {
	return []Preset{
		{ID: 1, Name: "Apple", Calories: 95},
		{ID: 2, Name: "Banana", Calories: 105},
		{ID: 3, Name: "Coffee", Calories: 5},
		{ID: 4, Name: "Protein Shake", Calories: 150},
	}
}
