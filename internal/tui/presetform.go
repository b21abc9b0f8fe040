package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/theirongolddev/kcal/internal/cli"
	"github.com/theirongolddev/kcal/internal/quantity"
	"github.com/theirongolddev/kcal/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// presetValues holds the add-preset form's bound fields.
type presetValues struct {
	Name     string
	Calories string
}

func newPresetForm(v *presetValues) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Preset name").
				Placeholder("Toast").
				Value(&v.Name).
				Validate(validatePresetName),
			huh.NewInput().
				Title("Calories").
				Description("Negative subtracts, e.g. -300 for a run. 2*120 works.").
				Placeholder("120").
				Value(&v.Calories).
				Validate(validatePresetCalories),
		),
	).WithShowHelp(true)
}

func validatePresetName(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("name is required")
	}
	return nil
}

func validatePresetCalories(s string) error {
	n, err := quantity.Parse(s)
	if err != nil {
		return errors.New("enter a whole number")
	}
	if n == 0 {
		return errors.New("calories can't be zero")
	}
	return nil
}

func (a App) openPresetForm() (tea.Model, tea.Cmd) {
	a.presetVals = &presetValues{}
	a.presetForm = newPresetForm(a.presetVals)
	if a.width > 0 {
		a.presetForm = a.presetForm.WithWidth(a.contentWidth())
	}
	a.mode = modeAddPreset
	return a, a.presetForm.Init()
}

func (a App) closePresetForm() App {
	a.presetForm = nil
	a.presetVals = nil
	a.mode = modeNormal
	return a
}

func (a App) updatePresetForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok && k.String() == "esc" {
		return a.closePresetForm(), nil
	}

	form, cmd := a.presetForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.presetForm = f
	}

	switch a.presetForm.State {
	case huh.StateCompleted:
		vals := *a.presetVals
		return a.closePresetForm().submitPreset(vals)
	case huh.StateAborted:
		return a.closePresetForm(), nil
	}

	return a, cmd
}

// submitPreset adds the preset described by vals. Values the form's
// validators would reject are refused again by the tracker.
func (a App) submitPreset(vals presetValues) (tea.Model, tea.Cmd) {
	n, err := quantity.Parse(vals.Calories)
	if err != nil {
		return a.setFlash("Not a number: "+vals.Calories, true)
	}
	p, changed, err := a.tracker.AddPreset(vals.Name, n)
	switch {
	case err != nil:
		return a.setFlash(fmt.Sprintf("Save failed: %v", err), true)
	case !changed:
		return a.setFlash("Preset needs a name and non-zero calories", true)
	}
	return a.setFlash(fmt.Sprintf("Added %s (%s kcal)", p.Name, cli.FormatSigned(p.Calories)), false)
}

func (a App) viewPresetForm() string {
	t := theme.Active

	title := lipgloss.NewStyle().Foreground(t.AccentBright).Bold(true).Render("◈ New preset")
	hint := lipgloss.NewStyle().Foreground(t.TextDim).Render("esc to cancel")

	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Padding(1, 2).
		Render(title + "\n\n" + a.presetForm.View() + "\n" + hint)

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, card)
}
