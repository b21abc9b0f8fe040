package cmd

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/theirongolddev/kcal/internal/config"
	"github.com/theirongolddev/kcal/internal/quantity"
	"github.com/theirongolddev/kcal/internal/tui/theme"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "First-time setup wizard",
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(_ *cobra.Command, _ []string) error {
	// Load existing config or defaults
	cfg, err := config.Load()
	if err != nil {
		cfg = config.DefaultConfig()
	}

	goal := strconv.Itoa(cfg.General.DefaultGoal)
	themeName := cfg.Appearance.Theme
	dir := cfg.General.DataDir

	themeOpts := make([]huh.Option[string], 0, len(theme.All))
	for _, name := range theme.Names() {
		themeOpts = append(themeOpts, huh.NewOption(name, name))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Welcome to kcal!").
				Description("A few settings, all changeable later."),
			huh.NewInput().
				Title("Daily calorie goal").
				Description("Used until you set a goal with `kcal goal`.").
				Value(&goal).
				Validate(validateGoal),
			huh.NewSelect[string]().
				Title("Color theme").
				Options(themeOpts...).
				Value(&themeName),
			huh.NewInput().
				Title("Data directory").
				Description("Leave blank for " + config.DefaultDataDir()).
				Value(&dir),
		),
	)
	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			fmt.Println("  Setup canceled, nothing saved.")
			return nil
		}
		return fmt.Errorf("setup form: %w", err)
	}

	n, _ := quantity.Parse(goal)
	cfg.General.DefaultGoal = n
	cfg.General.DataDir = strings.TrimSpace(dir)
	cfg.Appearance.Theme = themeName

	// Save
	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Println()
	fmt.Printf("  Saved to %s\n", config.ConfigPath())
	fmt.Println("  Run `kcal setup` anytime to reconfigure.")
	fmt.Println()

	return nil
}

func validateGoal(s string) error {
	n, err := quantity.Parse(s)
	if err != nil {
		return errors.New("enter a whole number")
	}
	if n <= 0 {
		return errors.New("goal must be above zero")
	}
	return nil
}
