package cmd

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/theirongolddev/kcal/internal/tui"
	"github.com/theirongolddev/kcal/internal/tui/theme"
	"github.com/theirongolddev/kcal/internal/watch"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive tracker",
	RunE:  runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(_ *cobra.Command, _ []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	theme.SetActive(s.cfg.Appearance.Theme)

	// Force TrueColor profile so all background styling produces ANSI codes
	// Without this, lipgloss may default to Ascii profile (no colors)
	lipgloss.SetColorProfile(termenv.TrueColor)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Writes from another kcal process (CLI or daemon) reload the view.
	changes := make(chan struct{}, 1)
	w, err := watch.New(s.db.File(), log.New(os.Stderr, "kcal tui: ", 0))
	if err != nil {
		if !flagQuiet {
			fmt.Fprintf(os.Stderr, "  Live reload disabled: %v\n", err)
		}
	} else {
		defer func() { _ = w.Close() }()
		go w.Run(ctx, func() {
			select {
			case changes <- struct{}{}:
			default:
			}
		})
	}

	app := tui.NewApp(s.tracker, changes)
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	return nil
}
