package tracker

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"math"
	"strings"

	"github.com/theirongolddev/kcal/internal/model"
)

// Persistent keys. The names match the browser widget's localStorage keys
// so exported data can be imported unchanged.
const (
	StateKey       = "calorieTrackerStateV2"
	LegacyStateKey = "calorieTrackerState"
	PresetsKey     = "calorieTrackerPresets"
)

// Backend is the string key-value store the tracker persists to.
type Backend interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
}

// Store loads and saves tracker state and presets. Loads never fail:
// unreadable or malformed payloads fall back to defaults.
type Store struct {
	backend     Backend
	defaultGoal int
	logger      *log.Logger
}

// NewStore wraps backend. A nil logger discards load warnings.
func NewStore(backend Backend, defaultGoal int, logger *log.Logger) *Store {
	if defaultGoal <= 0 {
		defaultGoal = model.DefaultGoal
	}
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Store{backend: backend, defaultGoal: defaultGoal, logger: logger}
}

// Load reads the persisted state, migrating the legacy single-day shape
// when only that exists, and guarantees an entry for todayKey.
func (s *Store) Load(todayKey string) model.State {
	st, ok := s.loadCurrent()
	if !ok {
		st, ok = s.loadLegacy()
	}
	if !ok {
		st = model.DefaultState(s.defaultGoal)
	}
	if _, exists := st.History[todayKey]; !exists {
		st.History[todayKey] = 0
	}
	return st
}

// Save writes the full state under StateKey.
func (s *Store) Save(st model.State) error {
	if st.History == nil {
		st.History = map[string]int{}
	}
	data, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("encoding state: %w", err)
	}
	if err := s.backend.Set(StateKey, string(data)); err != nil {
		return fmt.Errorf("saving state: %w", err)
	}
	return nil
}

// LoadPresets returns the persisted presets, or the default seed when none
// are stored or the payload is unreadable. A stored empty list stays empty.
func (s *Store) LoadPresets() []model.Preset {
	raw, ok := s.read(PresetsKey)
	if !ok {
		return model.DefaultPresets()
	}

	var stored []struct {
		ID       *float64 `json:"id"`
		Name     string   `json:"name"`
		Calories *float64 `json:"calories"`
	}
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		s.logger.Printf("ignoring malformed %s: %v", PresetsKey, err)
		return model.DefaultPresets()
	}

	presets := make([]model.Preset, 0, len(stored))
	for _, p := range stored {
		if p.ID == nil || p.Calories == nil || strings.TrimSpace(p.Name) == "" {
			continue
		}
		cal, ok := wholeNumber(*p.Calories)
		if !ok || cal == 0 {
			continue
		}
		id, ok := presetID(*p.ID)
		if !ok {
			continue
		}
		presets = append(presets, model.Preset{ID: id, Name: p.Name, Calories: cal})
	}
	return presets
}

// SavePresets writes the full preset list under PresetsKey.
func (s *Store) SavePresets(presets []model.Preset) error {
	if presets == nil {
		presets = []model.Preset{}
	}
	data, err := json.Marshal(presets)
	if err != nil {
		return fmt.Errorf("encoding presets: %w", err)
	}
	if err := s.backend.Set(PresetsKey, string(data)); err != nil {
		return fmt.Errorf("saving presets: %w", err)
	}
	return nil
}

func (s *Store) read(key string) (string, bool) {
	raw, ok, err := s.backend.Get(key)
	if err != nil {
		s.logger.Printf("reading %s: %v", key, err)
		return "", false
	}
	return raw, ok
}

func (s *Store) loadCurrent() (model.State, bool) {
	raw, ok := s.read(StateKey)
	if !ok {
		return model.State{}, false
	}

	var stored struct {
		Goal    *float64           `json:"goal"`
		History map[string]float64 `json:"history"`
	}
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		s.logger.Printf("ignoring malformed %s: %v", StateKey, err)
		return model.State{}, false
	}

	st := model.DefaultState(s.defaultGoal)
	if stored.Goal != nil {
		if g, ok := wholeNumber(*stored.Goal); ok && g > 0 {
			st.Goal = g
		}
	}
	for key, v := range stored.History {
		cal, ok := wholeNumber(v)
		if !ok || cal < 0 || !ValidDateKey(key) {
			s.logger.Printf("dropping history entry %q=%v", key, v)
			continue
		}
		st.History[key] = cal
	}
	return st, true
}

func (s *Store) loadLegacy() (model.State, bool) {
	raw, ok := s.read(LegacyStateKey)
	if !ok {
		return model.State{}, false
	}

	var old struct {
		Goal        json.RawMessage `json:"goal"`
		Calories    json.RawMessage `json:"calories"`
		LastUpdated json.RawMessage `json:"lastUpdated"`
	}
	if err := json.Unmarshal([]byte(raw), &old); err != nil {
		s.logger.Printf("ignoring malformed %s: %v", LegacyStateKey, err)
		return model.State{}, false
	}

	st := model.DefaultState(s.defaultGoal)
	if g, ok := rawNumber(old.Goal); ok && g > 0 {
		st.Goal = g
	}

	var day string
	if err := json.Unmarshal(old.LastUpdated, &day); err == nil && ValidDateKey(day) {
		if cal, ok := rawNumber(old.Calories); ok && cal >= 0 {
			st.History[day] = cal
		}
	}
	return st, true
}

func rawNumber(raw json.RawMessage) (int, bool) {
	if len(raw) == 0 {
		return 0, false
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err != nil {
		return 0, false
	}
	return wholeNumber(f)
}

// wholeNumber rounds f to an int, rejecting values outside the int32 range.
func wholeNumber(f float64) (int, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || math.Abs(f) > math.MaxInt32 {
		return 0, false
	}
	return int(math.Round(f)), true
}

// presetID accepts any integral id a JSON number can represent exactly,
// which covers the millisecond-timestamp ids of older exports.
func presetID(f float64) (int64, bool) {
	if math.IsNaN(f) || math.Abs(f) > 1<<53 || f != math.Trunc(f) {
		return 0, false
	}
	return int64(f), true
}
