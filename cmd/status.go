package cmd

import (
	"fmt"

	"github.com/theirongolddev/kcal/internal/cli"
	"github.com/theirongolddev/kcal/internal/model"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show calories, goal and weekly projection for the day",
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(_ *cobra.Command, _ []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	printDashboard(s.tracker.Dashboard())
	return nil
}

func printDashboard(d model.Dashboard) {
	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("%s  %s", d.Day.Text, d.Day.Key)))
	fmt.Println()
	fmt.Printf("  Calories   %s\n", cli.RenderProgressBar(d.Calories, d.Goal, 30))
	fmt.Printf("  Remaining  %s\n", cli.RenderBalance(d.Calories, d.Goal))
	fmt.Printf("  Weekly     %s\n", cli.FormatLbs(d.WeeklyLbs))
	fmt.Println()
	fmt.Printf("  %s\n", d.Projection)
	fmt.Println()
}
