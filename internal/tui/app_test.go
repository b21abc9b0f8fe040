package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/theirongolddev/kcal/internal/store"
	"github.com/theirongolddev/kcal/internal/tracker"
)

func fixedNow() time.Time {
	return time.Date(2026, 3, 15, 9, 0, 0, 0, time.Local)
}

func newTestApp(t *testing.T) (App, *store.Memory) {
	t.Helper()
	mem := store.NewMemory(nil)
	a := NewApp(tracker.New(mem, tracker.WithClock(fixedNow)), nil)
	a.width = 80
	a.height = 40
	return a, mem
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func press(t *testing.T, a App, keys ...string) App {
	t.Helper()
	for _, k := range keys {
		m, _ := a.Update(keyMsg(k))
		next, ok := m.(App)
		if !ok {
			t.Fatalf("Update(%q) returned %T, want App", k, m)
		}
		a = next
	}
	return a
}

func calories(a App) int {
	return a.tracker.Dashboard().Calories
}

func TestQuickAdjustKeys(t *testing.T) {
	a, _ := newTestApp(t)

	steps := []struct {
		key  string
		want int
	}{
		{"=", 50},
		{"+", 550},
		{"_", 50},
		{"-", 0},
		{"-", 0}, // clamped at zero
	}
	for _, s := range steps {
		a = press(t, a, s.key)
		if got := calories(a); got != s.want {
			t.Errorf("after %q calories = %d, want %d", s.key, got, s.want)
		}
	}
}

func TestQuickKeysFollowTrackerAmounts(t *testing.T) {
	km := DefaultKeyMap()
	if len(km.Quick) != len(tracker.QuickAmounts) {
		t.Fatalf("quick keys = %d, want %d", len(km.Quick), len(tracker.QuickAmounts))
	}
	for i, q := range km.Quick {
		if q.Amount != tracker.QuickAmounts[i] {
			t.Errorf("Quick[%d].Amount = %d, want %d", i, q.Amount, tracker.QuickAmounts[i])
		}
	}
	if got := km.Quick[0].Binding.Help().Desc; got != "-500 kcal" {
		t.Errorf("Quick[0] help = %q, want %q", got, "-500 kcal")
	}
	if got := km.Quick[3].Binding.Help().Desc; got != "+500 kcal" {
		t.Errorf("Quick[3] help = %q, want %q", got, "+500 kcal")
	}
}

func TestNavigateKeys(t *testing.T) {
	a, _ := newTestApp(t)

	a = press(t, a, "h")
	if got := a.tracker.Viewing(); got != "2026-03-14" {
		t.Fatalf("after h viewing = %s, want 2026-03-14", got)
	}
	if a.flash != "Yesterday" {
		t.Errorf("flash = %q, want Yesterday", a.flash)
	}

	a = press(t, a, "left", "right", "l")
	if got := a.tracker.Viewing(); got != "2026-03-15" {
		t.Fatalf("viewing = %s, want today", got)
	}

	a.flash = ""
	a = press(t, a, "l")
	if got := a.tracker.Viewing(); got != "2026-03-15" {
		t.Errorf("forward past today moved to %s", got)
	}
	if a.flash != "" {
		t.Errorf("blocked forward flashed %q", a.flash)
	}
}

func TestEditCaloriesPrompt_AcceptsExpression(t *testing.T) {
	a, _ := newTestApp(t)

	a = press(t, a, "e")
	if a.mode != modeEditCalories {
		t.Fatalf("mode = %v, want edit calories", a.mode)
	}
	// Quick-adjust keys are typed into the prompt, not applied.
	a = press(t, a, "250+180")
	if got := calories(a); got != 0 {
		t.Fatalf("calories changed while typing: %d", got)
	}

	a = press(t, a, "enter")
	if a.mode != modeNormal {
		t.Errorf("mode = %v after enter, want normal", a.mode)
	}
	if got := calories(a); got != 430 {
		t.Errorf("calories = %d, want 430", got)
	}
}

func TestEditPrompt_InvalidInputLeavesState(t *testing.T) {
	a, mem := newTestApp(t)

	a = press(t, a, "e", "abc", "enter")
	if a.mode != modeNormal {
		t.Errorf("mode = %v, want normal", a.mode)
	}
	if !a.flashErr {
		t.Error("invalid input did not flash an error")
	}
	if _, ok, _ := mem.Get(tracker.StateKey); ok {
		t.Error("invalid input wrote state")
	}

	a = press(t, a, "e", "-5", "enter")
	if got := calories(a); got != 0 {
		t.Errorf("negative set changed calories to %d", got)
	}
}

func TestEditGoalPrompt(t *testing.T) {
	a, _ := newTestApp(t)

	a = press(t, a, "g", "0", "enter")
	if got := a.tracker.State().Goal; got != 2000 {
		t.Errorf("goal = %d after 0, want 2000", got)
	}

	a = press(t, a, "g", "1800", "enter")
	if got := a.tracker.State().Goal; got != 1800 {
		t.Errorf("goal = %d, want 1800", got)
	}
}

func TestEscCancelsPrompt(t *testing.T) {
	a, _ := newTestApp(t)

	a = press(t, a, "e", "900", "esc")
	if a.mode != modeNormal {
		t.Errorf("mode = %v, want normal", a.mode)
	}
	if got := calories(a); got != 0 {
		t.Errorf("calories = %d, want 0", got)
	}
}

func TestApplyPresetKeys(t *testing.T) {
	a, _ := newTestApp(t)

	a = press(t, a, "1")
	if got := calories(a); got != 95 {
		t.Errorf("after Apple calories = %d, want 95", got)
	}
	a = press(t, a, "4")
	if got := calories(a); got != 245 {
		t.Errorf("after Protein Shake calories = %d, want 245", got)
	}
	a = press(t, a, "9")
	if got := calories(a); got != 245 {
		t.Errorf("empty slot changed calories to %d", got)
	}
}

func TestDeleteMode(t *testing.T) {
	a, _ := newTestApp(t)

	a = press(t, a, "x")
	if a.mode != modeDeletePreset {
		t.Fatalf("mode = %v, want delete", a.mode)
	}
	a = press(t, a, "2")
	presets := a.tracker.Presets()
	if len(presets) != 3 {
		t.Fatalf("presets = %d, want 3", len(presets))
	}
	for _, p := range presets {
		if p.Name == "Banana" {
			t.Error("Banana still present after delete")
		}
	}

	// Any other key cancels without acting on it.
	m, cmd := a.Update(keyMsg("x"))
	a = m.(App)
	m, cmd = a.Update(keyMsg("q"))
	a = m.(App)
	if a.mode != modeNormal {
		t.Errorf("mode = %v, want normal", a.mode)
	}
	if cmd != nil {
		t.Error("q in delete mode returned a command, want plain cancel")
	}
	if len(a.tracker.Presets()) != 3 {
		t.Error("cancel deleted a preset")
	}
}

func TestSubmitPreset(t *testing.T) {
	a, _ := newTestApp(t)

	m, _ := a.submitPreset(presetValues{Name: "Toast", Calories: "2*60"})
	a = m.(App)
	presets := a.tracker.Presets()
	last := presets[len(presets)-1]
	if last.Name != "Toast" || last.Calories != 120 {
		t.Errorf("last preset = %+v, want Toast 120", last)
	}

	m, _ = a.submitPreset(presetValues{Name: "Nothing", Calories: "0"})
	a = m.(App)
	if !a.flashErr {
		t.Error("zero-calorie preset was not refused")
	}
	if len(a.tracker.Presets()) != len(presets) {
		t.Error("zero-calorie preset was added")
	}
}

func TestPresetValidators(t *testing.T) {
	if validatePresetName("  ") == nil {
		t.Error("blank name accepted")
	}
	if validatePresetName("Toast") != nil {
		t.Error("valid name rejected")
	}
	for _, s := range []string{"", "abc", "0", "5-5"} {
		if validatePresetCalories(s) == nil {
			t.Errorf("calories %q accepted", s)
		}
	}
	for _, s := range []string{"120", "-300", "2*60"} {
		if err := validatePresetCalories(s); err != nil {
			t.Errorf("calories %q rejected: %v", s, err)
		}
	}
}

func TestOpenPresetForm_EscCloses(t *testing.T) {
	a, _ := newTestApp(t)

	a = press(t, a, "a")
	if a.mode != modeAddPreset || a.presetForm == nil {
		t.Fatalf("mode = %v, form nil = %v", a.mode, a.presetForm == nil)
	}
	a = press(t, a, "esc")
	if a.mode != modeNormal || a.presetForm != nil {
		t.Errorf("form still open after esc")
	}
}

func TestStoreChangedReloads(t *testing.T) {
	a, mem := newTestApp(t)

	other := tracker.New(mem, tracker.WithClock(fixedNow))
	if _, err := other.SetGoal(1500); err != nil {
		t.Fatal(err)
	}

	m, _ := a.Update(StoreChangedMsg{})
	a = m.(App)
	if got := a.tracker.State().Goal; got != 1500 {
		t.Errorf("goal after reload = %d, want 1500", got)
	}
}

func TestFlashClears(t *testing.T) {
	a, _ := newTestApp(t)

	a = press(t, a, "=")
	if a.flash == "" {
		t.Fatal("no flash after adjust")
	}
	stale := a.flashSeq - 1
	m, _ := a.Update(flashClearMsg{seq: stale})
	a = m.(App)
	if a.flash == "" {
		t.Error("stale clear removed current flash")
	}
	m, _ = a.Update(flashClearMsg{seq: a.flashSeq})
	a = m.(App)
	if a.flash != "" {
		t.Errorf("flash = %q after clear", a.flash)
	}
}

func TestView(t *testing.T) {
	a, _ := newTestApp(t)
	a = press(t, a, "+")

	out := a.View()
	for _, want := range []string{"Today", "Last 7 days", "Apple", "1500 deficit"} {
		if !strings.Contains(out, want) {
			t.Errorf("view missing %q", want)
		}
	}

	a = press(t, a, "?")
	if !strings.Contains(a.View(), "Keyboard Shortcuts") {
		t.Error("help overlay not shown")
	}
	a = press(t, a, "=")
	if a.showHelp {
		t.Error("help still shown after a key")
	}
	if got := calories(a); got != 500 {
		t.Errorf("key that closed help was applied: calories = %d", got)
	}

	a.width = 30
	if !strings.Contains(a.View(), "too narrow") {
		t.Error("narrow terminal message missing")
	}
}
