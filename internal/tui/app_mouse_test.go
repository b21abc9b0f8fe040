package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestMouseWheelNavigatesDays(t *testing.T) {
	a, _ := newTestApp(t)

	m, _ := a.Update(tea.MouseMsg{Button: tea.MouseButtonWheelUp, Action: tea.MouseActionPress})
	a = m.(App)
	if got := a.tracker.Viewing(); got != "2026-03-14" {
		t.Fatalf("after wheel up viewing = %s, want 2026-03-14", got)
	}

	m, _ = a.Update(tea.MouseMsg{Button: tea.MouseButtonWheelDown, Action: tea.MouseActionPress})
	a = m.(App)
	if got := a.tracker.Viewing(); got != "2026-03-15" {
		t.Errorf("after wheel down viewing = %s, want today", got)
	}
}

func TestMouseIgnoredWhilePromptOpen(t *testing.T) {
	a, _ := newTestApp(t)
	a = press(t, a, "e")

	m, _ := a.Update(tea.MouseMsg{Button: tea.MouseButtonWheelUp, Action: tea.MouseActionPress})
	a = m.(App)
	if got := a.tracker.Viewing(); got != "2026-03-15" {
		t.Errorf("wheel moved to %s while prompt open", got)
	}
}
