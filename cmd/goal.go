package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var goalCmd = &cobra.Command{
	Use:   "goal [calories]",
	Short: "Show or set the daily calorie goal",
	RunE:  runGoal,
}

func init() {
	rootCmd.AddCommand(goalCmd)
}

func runGoal(_ *cobra.Command, args []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	if len(args) > 0 {
		value, err := parseAmount(args)
		if err != nil {
			return err
		}
		changed, err := s.tracker.SetGoal(value)
		if err := mutationResult(changed, err, "Goal must be positive; nothing changed."); err != nil {
			return err
		}
	}

	fmt.Printf("  Daily goal: %s kcal\n", formatNumber(s.tracker.State().Goal))
	return nil
}
