package tui

import (
	"fmt"

	"github.com/theirongolddev/kcal/internal/cli"
	"github.com/theirongolddev/kcal/internal/tracker"

	"github.com/charmbracelet/bubbles/key"
)

// quickKeys pairs with tracker.QuickAmounts, smallest amount first.
var quickKeys = []string{"_", "-", "=", "+"}

// QuickKey adjusts the viewing day by Amount.
type QuickKey struct {
	Amount  int
	Binding key.Binding
}

// KeyMap defines the widget's keybindings in normal mode.
type KeyMap struct {
	PrevDay     key.Binding
	NextDay     key.Binding
	Quick       []QuickKey
	EditCals    key.Binding
	EditGoal    key.Binding
	AddPreset   key.Binding
	ApplyPreset key.Binding
	DeleteMode  key.Binding
	Info        key.Binding
	Help        key.Binding
	Quit        key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		PrevDay: key.NewBinding(
			key.WithKeys("h", "left"),
			key.WithHelp("h/←", "previous day"),
		),
		NextDay: key.NewBinding(
			key.WithKeys("l", "right"),
			key.WithHelp("l/→", "next day"),
		),
		Quick: quickBindings(tracker.QuickAmounts),
		EditCals: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "set calories"),
		),
		EditGoal: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "set goal"),
		),
		AddPreset: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add preset"),
		),
		ApplyPreset: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"),
			key.WithHelp("1-9", "apply preset"),
		),
		DeleteMode: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x 1-9", "delete preset"),
		),
		Info: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "weekly projection"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

func quickBindings(amounts []int) []QuickKey {
	out := make([]QuickKey, 0, len(amounts))
	for i, amt := range amounts {
		if i >= len(quickKeys) {
			break
		}
		out = append(out, QuickKey{
			Amount: amt,
			Binding: key.NewBinding(
				key.WithKeys(quickKeys[i]),
				key.WithHelp(quickKeys[i], fmt.Sprintf("%s kcal", cli.FormatSigned(amt))),
			),
		})
	}
	return out
}

// helpSections groups bindings for the help overlay.
func (k KeyMap) helpSections() []struct {
	title    string
	bindings []key.Binding
} {
	return []struct {
		title    string
		bindings []key.Binding
	}{
		{"Navigation", []key.Binding{k.PrevDay, k.NextDay}},
		{"Calories", k.calorieBindings()},
		{"Presets", []key.Binding{k.ApplyPreset, k.AddPreset, k.DeleteMode}},
		{"Other", []key.Binding{k.Info, k.Help, k.Quit}},
	}
}

func (k KeyMap) calorieBindings() []key.Binding {
	out := make([]key.Binding, 0, len(k.Quick)+2)
	for _, q := range k.Quick {
		out = append(out, q.Binding)
	}
	return append(out, k.EditCals, k.EditGoal)
}
