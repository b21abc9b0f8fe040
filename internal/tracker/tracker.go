// Package tracker owns the calorie history, the viewing-day navigation, and
// the values derived from them for display.
package tracker

import (
	"errors"
	"log"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/theirongolddev/kcal/internal/model"
)

// ErrUnknownPreset is returned by PresetByName when nothing matches.
var ErrUnknownPreset = errors.New("tracker: unknown preset")

// Quick-adjust amounts offered by the interfaces.
var QuickAmounts = []int{-500, -50, 50, 500}

// Direction selects the neighbour day for Navigate.
type Direction int

const (
	Backward Direction = iota
	Forward
)

// Tracker is the single owner of tracker state. All methods are safe for
// concurrent use; each runs its read-modify-write under one mutex.
type Tracker struct {
	mu      sync.Mutex
	store   *Store
	now     func() time.Time
	state   model.State
	presets []model.Preset
	viewing string
	lastID  int64
}

// Option configures a Tracker.
type Option func(*options)

type options struct {
	now         func() time.Time
	logger      *log.Logger
	defaultGoal int
}

// WithClock overrides time.Now, for tests and fixed-date views.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// WithLogger sets where swallowed load problems are reported.
func WithLogger(l *log.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithDefaultGoal sets the goal used when no state is persisted.
func WithDefaultGoal(goal int) Option {
	return func(o *options) { o.defaultGoal = goal }
}

// New loads state and presets from backend and starts viewing today.
func New(backend Backend, opts ...Option) *Tracker {
	o := options{now: time.Now, defaultGoal: model.DefaultGoal}
	for _, opt := range opts {
		opt(&o)
	}

	t := &Tracker{
		store: NewStore(backend, o.defaultGoal, o.logger),
		now:   o.now,
	}
	today := t.todayKey()
	t.state = t.store.Load(today)
	t.presets = t.store.LoadPresets()
	t.viewing = today
	return t
}

// Reload re-reads persisted state, keeping the current viewing day.
// Used when another process has written the backend.
func (t *Tracker) Reload() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.state = t.store.Load(t.todayKey())
	t.presets = t.store.LoadPresets()
	t.materialize(t.viewing)
}

func (t *Tracker) todayKey() string {
	return DateKey(t.now())
}

// Today returns the current local date key.
func (t *Tracker) Today() string {
	return t.todayKey()
}

// Viewing returns the date key currently displayed and edited.
func (t *Tracker) Viewing() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.viewing
}

// State returns a copy of the goal and history.
func (t *Tracker) State() model.State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state.Clone()
}

// Presets returns a copy of the preset list in insertion order.
func (t *Tracker) Presets() []model.Preset {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]model.Preset, len(t.presets))
	copy(out, t.presets)
	return out
}

// Day returns the label for the viewing day.
func (t *Tracker) Day() model.DayLabel {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.dayLabel()
}

// Navigate moves the viewing day one step. Moving forward from today is a
// no-op. Landing on a day without history records it as 0 in memory only.
func (t *Tracker) Navigate(dir Direction) model.DayLabel {
	t.mu.Lock()
	defer t.mu.Unlock()

	switch dir {
	case Backward:
		t.viewing = shiftKey(t.viewing, -1)
	case Forward:
		if t.viewing >= t.todayKey() {
			return t.dayLabel()
		}
		t.viewing = shiftKey(t.viewing, 1)
	}
	t.materialize(t.viewing)
	return t.dayLabel()
}

// materialize inserts a zero entry for key if absent. Not persisted.
func (t *Tracker) materialize(key string) {
	if _, ok := t.state.History[key]; !ok {
		t.state.History[key] = 0
	}
}

func (t *Tracker) dayLabel() model.DayLabel {
	today := t.todayKey()
	label := model.DayLabel{
		Key:              t.viewing,
		NextDayAvailable: t.viewing < today,
	}
	if t.viewing >= today {
		label.Text = "Today"
		return label
	}
	label.DaysAgo = daysBetween(t.viewing, today)
	if label.DaysAgo == 1 {
		label.Text = "Yesterday"
	} else {
		label.Text = strconv.Itoa(label.DaysAgo) + " days ago"
	}
	return label
}

// AdjustCalories adds delta to the viewing day, clamping the total at zero,
// and persists. It always reports accepted; the error is a write failure.
func (t *Tracker) AdjustCalories(delta int) (bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return true, t.adjust(delta)
}

func (t *Tracker) adjust(delta int) error {
	cals := t.state.History[t.viewing] + delta
	if cals < 0 {
		cals = 0
	}
	next := t.state.Clone()
	next.History[t.viewing] = cals
	return t.commitState(next)
}

// commitState persists next and adopts it only once the write succeeded,
// so a failed save leaves the previous state in place.
func (t *Tracker) commitState(next model.State) error {
	if err := t.store.Save(next); err != nil {
		return err
	}
	t.state = next
	return nil
}

// commitPresets is commitState for the preset list.
func (t *Tracker) commitPresets(next []model.Preset) error {
	if err := t.store.SavePresets(next); err != nil {
		return err
	}
	t.presets = next
	return nil
}

// SetCalories replaces the viewing day's total. Negative values are
// rejected without touching state.
func (t *Tracker) SetCalories(value int) (bool, error) {
	if value < 0 {
		return false, nil
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	next := t.state.Clone()
	next.History[t.viewing] = value
	return true, t.commitState(next)
}

// SetGoal replaces the daily goal. Values <= 0 are rejected.
func (t *Tracker) SetGoal(value int) (bool, error) {
	if value <= 0 {
		return false, nil
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	next := t.state.Clone()
	next.Goal = value
	return true, t.commitState(next)
}

// AddPreset appends a preset. A blank name or zero calories is rejected.
func (t *Tracker) AddPreset(name string, calories int) (model.Preset, bool, error) {
	name = strings.TrimSpace(name)
	if name == "" || calories == 0 {
		return model.Preset{}, false, nil
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	p := model.Preset{ID: t.freshID(), Name: name, Calories: calories}
	next := make([]model.Preset, 0, len(t.presets)+1)
	next = append(next, t.presets...)
	next = append(next, p)
	return p, true, t.commitPresets(next)
}

// freshID returns an id greater than every id handed out or stored.
// It follows the wall clock in milliseconds so ids stay compatible with
// older timestamp-based exports.
func (t *Tracker) freshID() int64 {
	id := t.now().UnixMilli()
	floor := t.lastID
	for _, p := range t.presets {
		if p.ID > floor {
			floor = p.ID
		}
	}
	if id <= floor {
		id = floor + 1
	}
	t.lastID = id
	return id
}

// DeletePreset removes the preset with id. Unknown ids are a no-op.
func (t *Tracker) DeletePreset(id int64) (bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	idx := t.presetIndex(id)
	if idx < 0 {
		return false, nil
	}
	next := make([]model.Preset, 0, len(t.presets)-1)
	next = append(next, t.presets[:idx]...)
	next = append(next, t.presets[idx+1:]...)
	return true, t.commitPresets(next)
}

// ApplyPreset adjusts the viewing day by the preset's calories.
func (t *Tracker) ApplyPreset(id int64) (bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	idx := t.presetIndex(id)
	if idx < 0 {
		return false, nil
	}
	return true, t.adjust(t.presets[idx].Calories)
}

// PresetByName finds a preset by case-insensitive name.
func (t *Tracker) PresetByName(name string) (model.Preset, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	name = strings.TrimSpace(name)
	for _, p := range t.presets {
		if strings.EqualFold(p.Name, name) {
			return p, nil
		}
	}
	return model.Preset{}, ErrUnknownPreset
}

func (t *Tracker) presetIndex(id int64) int {
	for i, p := range t.presets {
		if p.ID == id {
			return i
		}
	}
	return -1
}

// HistoryEntry is one recorded day, as listed by History.
type HistoryEntry struct {
	Key      string `json:"key"`
	Calories int    `json:"calories"`
}

// History returns every recorded day, newest first.
func (t *Tracker) History() []HistoryEntry {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make([]HistoryEntry, 0, len(t.state.History))
	for k, v := range t.state.History {
		out = append(out, HistoryEntry{Key: k, Calories: v})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key > out[j].Key })
	return out
}
