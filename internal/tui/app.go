// Package tui provides the interactive Bubble Tea calorie widget.
package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/theirongolddev/kcal/internal/cli"
	"github.com/theirongolddev/kcal/internal/model"
	"github.com/theirongolddev/kcal/internal/quantity"
	"github.com/theirongolddev/kcal/internal/tracker"
	"github.com/theirongolddev/kcal/internal/tui/components"
	"github.com/theirongolddev/kcal/internal/tui/theme"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// StoreChangedMsg is sent when another process has written the store.
type StoreChangedMsg struct{}

// flashClearMsg clears the flash if no newer one replaced it.
type flashClearMsg struct{ seq int }

type mode int

const (
	modeNormal mode = iota
	modeEditCalories
	modeEditGoal
	modeDeletePreset
	modeAddPreset
)

const (
	minTerminalWidth = 44
	maxContentWidth  = 96
	chartHeight      = 8
	presetSlots      = 9
	flashDuration    = 3 * time.Second
)

// App is the root Bubble Tea model.
type App struct {
	tracker *tracker.Tracker
	keys    KeyMap
	changes <-chan struct{}

	// UI state
	width    int
	height   int
	mode     mode
	showHelp bool
	showInfo bool

	// Calorie and goal prompts
	input textinput.Model

	// Add-preset form (huh)
	presetForm *huh.Form
	presetVals *presetValues

	flash    string
	flashErr bool
	flashSeq int
}

// NewApp creates the widget over t. Each receive on changes reloads the
// tracker; nil disables reloading.
func NewApp(t *tracker.Tracker, changes <-chan struct{}) App {
	return App{
		tracker: t,
		keys:    DefaultKeyMap(),
		changes: changes,
	}
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnableMouseCellMotion,
		waitForChange(a.changes),
	)
}

func waitForChange(ch <-chan struct{}) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return StoreChangedMsg{}
	}
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.presetForm != nil {
			a.presetForm = a.presetForm.WithWidth(a.contentWidth())
		}
		return a, nil

	case StoreChangedMsg:
		a.tracker.Reload()
		return a, waitForChange(a.changes)

	case flashClearMsg:
		if msg.seq == a.flashSeq {
			a.flash = ""
			a.flashErr = false
		}
		return a, nil

	case tea.MouseMsg:
		return a.updateMouse(msg)

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		switch a.mode {
		case modeAddPreset:
			return a.updatePresetForm(msg)
		case modeEditCalories, modeEditGoal:
			return a.updatePrompt(msg)
		case modeDeletePreset:
			return a.updateDelete(msg)
		}
		return a.updateNormal(msg)
	}

	// Blink and form-internal messages.
	switch a.mode {
	case modeAddPreset:
		return a.updatePresetForm(msg)
	case modeEditCalories, modeEditGoal:
		var cmd tea.Cmd
		a.input, cmd = a.input.Update(msg)
		return a, cmd
	}
	return a, nil
}

func (a App) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Any key dismisses help.
	if a.showHelp {
		a.showHelp = false
		return a, nil
	}

	for _, q := range a.keys.Quick {
		if key.Matches(msg, q.Binding) {
			return a.adjust(q.Amount)
		}
	}

	switch {
	case key.Matches(msg, a.keys.Quit):
		return a, tea.Quit
	case key.Matches(msg, a.keys.Help):
		a.showHelp = true
	case key.Matches(msg, a.keys.Info):
		a.showInfo = !a.showInfo

	case key.Matches(msg, a.keys.PrevDay):
		return a.navigate(tracker.Backward)
	case key.Matches(msg, a.keys.NextDay):
		return a.navigate(tracker.Forward)

	case key.Matches(msg, a.keys.EditCals):
		return a.openPrompt(modeEditCalories)
	case key.Matches(msg, a.keys.EditGoal):
		return a.openPrompt(modeEditGoal)

	case key.Matches(msg, a.keys.AddPreset):
		return a.openPresetForm()
	case key.Matches(msg, a.keys.ApplyPreset):
		return a.applyPreset(slotIndex(msg))
	case key.Matches(msg, a.keys.DeleteMode):
		if len(a.tracker.Presets()) == 0 {
			return a.setFlash("No presets to delete", true)
		}
		a.mode = modeDeletePreset
	}
	return a, nil
}

func (a App) updateMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if a.mode != modeNormal || a.showHelp {
		return a, nil
	}
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		return a.navigate(tracker.Backward)
	case tea.MouseButtonWheelDown:
		return a.navigate(tracker.Forward)
	}
	return a, nil
}

// slotIndex maps "1".."9" to 0..8, or -1.
func slotIndex(msg tea.KeyMsg) int {
	s := msg.String()
	if len(s) != 1 || s[0] < '1' || s[0] > '9' {
		return -1
	}
	return int(s[0] - '1')
}

func (a App) navigate(dir tracker.Direction) (tea.Model, tea.Cmd) {
	before := a.tracker.Viewing()
	day := a.tracker.Navigate(dir)
	if day.Key == before {
		return a, nil
	}
	return a.setFlash(day.Text, false)
}

func (a App) adjust(delta int) (tea.Model, tea.Cmd) {
	if _, err := a.tracker.AdjustCalories(delta); err != nil {
		return a.setFlash(fmt.Sprintf("Save failed: %v", err), true)
	}
	return a.setFlash(cli.FormatSigned(delta)+" kcal", false)
}

func (a App) applyPreset(idx int) (tea.Model, tea.Cmd) {
	presets := a.tracker.Presets()
	if idx < 0 || idx >= len(presets) {
		return a, nil
	}
	p := presets[idx]
	changed, err := a.tracker.ApplyPreset(p.ID)
	switch {
	case err != nil:
		return a.setFlash(fmt.Sprintf("Save failed: %v", err), true)
	case !changed:
		return a, nil
	}
	return a.setFlash(fmt.Sprintf("%s %s kcal", p.Name, cli.FormatSigned(p.Calories)), false)
}

func (a App) updateDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	a.mode = modeNormal

	idx := slotIndex(msg)
	presets := a.tracker.Presets()
	if idx < 0 || idx >= len(presets) {
		return a, nil
	}
	p := presets[idx]
	if _, err := a.tracker.DeletePreset(p.ID); err != nil {
		return a.setFlash(fmt.Sprintf("Save failed: %v", err), true)
	}
	return a.setFlash("Deleted "+p.Name, false)
}

func (a App) openPrompt(m mode) (tea.Model, tea.Cmd) {
	dash := a.tracker.Dashboard()

	ti := textinput.New()
	ti.CharLimit = 32
	ti.Width = 20
	switch m {
	case modeEditCalories:
		ti.Prompt = "Calories: "
		ti.Placeholder = strconv.Itoa(dash.Calories)
	case modeEditGoal:
		ti.Prompt = "Goal: "
		ti.Placeholder = strconv.Itoa(dash.Goal)
	}
	ti.Focus()

	a.input = ti
	a.mode = m
	return a, textinput.Blink
}

// updatePrompt handles keys while a calorie or goal prompt is open.
// Input that does not evaluate to a whole number closes the prompt
// without touching state.
func (a App) updatePrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		a.mode = modeNormal
		return a, nil
	case "enter":
		m := a.mode
		a.mode = modeNormal
		raw := strings.TrimSpace(a.input.Value())
		if raw == "" {
			return a, nil
		}
		n, err := quantity.Parse(raw)
		if err != nil {
			return a.setFlash("Not a number: "+raw, true)
		}
		return a.commitPrompt(m, n)
	}

	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return a, cmd
}

func (a App) commitPrompt(m mode, n int) (tea.Model, tea.Cmd) {
	var (
		changed bool
		err     error
		done    string
		refused string
	)
	switch m {
	case modeEditCalories:
		changed, err = a.tracker.SetCalories(n)
		done = "Calories set to " + cli.FormatNumber(int64(n))
		refused = "Calories can't be negative"
	case modeEditGoal:
		changed, err = a.tracker.SetGoal(n)
		done = "Goal set to " + cli.FormatNumber(int64(n))
		refused = "Goal must be positive"
	}

	switch {
	case err != nil:
		return a.setFlash(fmt.Sprintf("Save failed: %v", err), true)
	case !changed:
		return a.setFlash(refused, true)
	}
	return a.setFlash(done, false)
}

func (a App) setFlash(text string, isErr bool) (tea.Model, tea.Cmd) {
	a.flashSeq++
	a.flash = text
	a.flashErr = isErr
	seq := a.flashSeq
	return a, tea.Tick(flashDuration, func(time.Time) tea.Msg {
		return flashClearMsg{seq: seq}
	})
}

func (a App) contentWidth() int {
	cw := a.width
	if cw > maxContentWidth {
		cw = maxContentWidth
	}
	return cw
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}

	if a.width < minTerminalWidth {
		return a.viewTooNarrow()
	}

	if a.mode == modeAddPreset && a.presetForm != nil {
		return a.viewPresetForm()
	}

	if a.showHelp {
		return a.viewHelp()
	}

	return a.viewMain()
}

func (a App) viewTooNarrow() string {
	h := a.height
	if h < 5 {
		h = 5
	}

	msg := fmt.Sprintf(
		"\n  Terminal too narrow (%d cols)\n\n  kcal needs at least %d columns.\n",
		a.width,
		minTerminalWidth,
	)

	return padHeight(truncateHeight(msg, h), h)
}

func (a App) viewHelp() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Padding(1, 3)

	titleStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Bold(true)
	sectionStyle := lipgloss.NewStyle().Foreground(t.Accent).Bold(true)
	keyStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim)

	var b strings.Builder
	b.WriteString(titleStyle.Render("◈ Keyboard Shortcuts"))
	b.WriteString("\n")

	for _, sec := range a.keys.helpSections() {
		b.WriteString("\n")
		b.WriteString(sectionStyle.Render(sec.title))
		b.WriteString("\n")
		for _, bind := range sec.bindings {
			h := bind.Help()
			fmt.Fprintf(&b, "  %s  %s\n",
				keyStyle.Render(fmt.Sprintf("%-7s", h.Key)),
				descStyle.Render(h.Desc))
		}
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Prompts accept arithmetic, e.g. 250+180"))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Press any key to close"))

	card := cardStyle.Render(b.String())
	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, card)
}

func (a App) viewMain() string {
	t := theme.Active
	cw := a.contentWidth()

	dash := a.tracker.Dashboard()
	chart := a.tracker.Chart()
	presets := a.tracker.Presets()

	balanceColor := t.Under
	if dash.Over {
		balanceColor = t.Over
	}

	sections := []string{
		components.RenderDayNav(dash.Day, cw),
		components.MetricRow([]components.Metric{
			{Label: "Calories", Value: cli.FormatNumber(int64(dash.Calories)), Detail: "of " + cli.FormatNumber(int64(dash.Goal))},
			{Label: "Remaining", Value: dash.RemainingLabel, Color: balanceColor},
			{Label: "Weekly", Value: fmt.Sprintf("%.1f lbs", dash.WeeklyLbs), Detail: string(dash.Trend)},
		}, cw),
		" " + components.GoalBar("Progress", dash.ProgressPercent, dash.Over, 9, cw-9-8),
		components.ContentCard("Last 7 days",
			components.CalorieChart(chart, components.CardInnerWidth(cw), chartHeight), cw),
		a.renderPresets(presets, cw),
	}

	if a.showInfo {
		sections = append(sections, components.ContentCard("Weekly projection", renderProjection(dash), cw))
	}

	if a.mode == modeEditCalories || a.mode == modeEditGoal {
		promptStyle := lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.BorderAccent).
			Width(cw-2).
			Padding(0, 1)
		hint := lipgloss.NewStyle().Foreground(t.TextDim).
			Render("enter to save · esc to cancel · 250+180 works")
		sections = append(sections, promptStyle.Render(a.input.View()+"\n"+hint))
	}

	sections = append(sections, components.RenderStatusBar(cw, a.flash, a.flashErr))

	body := lipgloss.JoinVertical(lipgloss.Left, sections...)
	return lipgloss.PlaceHorizontal(a.width, lipgloss.Center, body)
}

func (a App) renderPresets(presets []model.Preset, cw int) string {
	t := theme.Active

	title := "Presets"
	keyColor := t.Accent
	if a.mode == modeDeletePreset {
		title = "Delete which preset? (1-9, any other key cancels)"
		keyColor = t.Over
	}

	if len(presets) == 0 {
		hint := lipgloss.NewStyle().Foreground(t.TextDim).Render("No presets. Press a to add one.")
		return components.ContentCard(title, hint, cw)
	}

	keyStyle := lipgloss.NewStyle().Foreground(keyColor).Bold(true)
	nameStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)
	calStyle := lipgloss.NewStyle().Foreground(t.TextMuted)

	inner := components.CardInnerWidth(cw)
	lines := make([]string, 0, len(presets))
	for i, p := range presets {
		slot := "[ ]"
		if i < presetSlots {
			slot = fmt.Sprintf("[%d]", i+1)
		}
		name := truncStr(p.Name, inner-16)
		lines = append(lines, fmt.Sprintf("%s %s %s",
			keyStyle.Render(slot),
			nameStyle.Render(fmt.Sprintf("%-*s", inner-16, name)),
			calStyle.Render(fmt.Sprintf("%10s", cli.FormatSigned(p.Calories)))))
	}
	return components.ContentCard(title, strings.Join(lines, "\n"), cw)
}

func renderProjection(dash model.Dashboard) string {
	t := theme.Active
	color := t.TextPrimary
	switch dash.Trend {
	case model.TrendLose:
		color = t.Under
	case model.TrendGain:
		color = t.Over
	}
	msg := lipgloss.NewStyle().Foreground(color).Render(dash.Projection)
	detail := lipgloss.NewStyle().Foreground(t.TextDim).Render(
		fmt.Sprintf("%s kcal × 7 days ÷ 3,500 kcal per lb", cli.FormatNumber(int64(abs(dash.Remaining)))))
	return msg + "\n" + detail
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func truncStr(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	if limit <= 1 {
		return string(runes[:limit])
	}
	return string(runes[:limit-1]) + "…"
}

func truncateHeight(s string, limit int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= limit {
		return s
	}
	return strings.Join(lines[:limit], "\n")
}

func padHeight(s string, h int) string {
	lines := strings.Count(s, "\n") + 1
	if lines >= h {
		return s
	}
	return s + strings.Repeat("\n", h-lines)
}
