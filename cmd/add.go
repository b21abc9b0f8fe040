package cmd

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/kcal/internal/cli"
	"github.com/theirongolddev/kcal/internal/quantity"

	"github.com/spf13/cobra"
)

var addCmd = &cobra.Command{
	Use:   "add <amount>",
	Short: "Add calories to the day (negative subtracts; expressions like 250+180 work)",
	Example: `  kcal add 350
  kcal add 250+180
  kcal add -- -50
  kcal add -b 1 600`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAdd,
}

var setCmd = &cobra.Command{
	Use:   "set <calories>",
	Short: "Replace the day's calorie total",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runSet,
}

func init() {
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(setCmd)
}

// parseAmount joins args so unquoted expressions like `250 + 180` work.
func parseAmount(args []string) (int, error) {
	raw := strings.Join(args, " ")
	n, err := quantity.Parse(raw)
	if err != nil {
		return 0, fmt.Errorf("parsing %q: %w", raw, err)
	}
	return n, nil
}

func runAdd(_ *cobra.Command, args []string) error {
	delta, err := parseAmount(args)
	if err != nil {
		return err
	}

	s, err := openSession()
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	changed, err := s.tracker.AdjustCalories(delta)
	if err := mutationResult(changed, err, ""); err != nil {
		return err
	}

	d := s.tracker.Dashboard()
	fmt.Printf("  %s kcal  ->  %s / %s on %s (%s)\n",
		cli.FormatSigned(delta),
		formatNumber(d.Calories), formatNumber(d.Goal),
		d.Day.Text, cli.FormatBalance(d.Calories, d.Goal))
	return nil
}

func runSet(_ *cobra.Command, args []string) error {
	value, err := parseAmount(args)
	if err != nil {
		return err
	}

	s, err := openSession()
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	changed, err := s.tracker.SetCalories(value)
	if err := mutationResult(changed, err, "Calories can't be negative; nothing changed."); err != nil {
		return err
	}

	d := s.tracker.Dashboard()
	fmt.Printf("  %s: %s / %s (%s)\n",
		d.Day.Text, formatNumber(d.Calories), formatNumber(d.Goal),
		cli.FormatBalance(d.Calories, d.Goal))
	return nil
}
