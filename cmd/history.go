package cmd

import (
	"fmt"

	"github.com/theirongolddev/kcal/internal/cli"
	"github.com/theirongolddev/kcal/internal/tracker"

	"github.com/spf13/cobra"
)

var flagHistoryLimit int

// maxTrendDays caps the sparkline to what fits on one line.
const maxTrendDays = 60

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Recorded days, newest first",
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&flagHistoryLimit, "limit", "n", 30, "Max days to show (0 for all)")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(_ *cobra.Command, _ []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	entries := s.tracker.History()
	if flagHistoryLimit > 0 && len(entries) > flagHistoryLimit {
		entries = entries[:flagHistoryLimit]
	}
	goal := s.tracker.State().Goal

	recorded := 0
	for _, e := range entries {
		if e.Calories > 0 {
			recorded++
		}
	}
	if recorded == 0 {
		fmt.Println("\n  No calories recorded yet.")
		return nil
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("HISTORY  Goal %s kcal", formatNumber(goal))))
	fmt.Println()

	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{
			e.Key,
			formatNumber(e.Calories),
			cli.FormatBalance(e.Calories, goal),
		})
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Date", "Calories", "vs Goal"},
		Rows:    rows,
	}))

	// One cell per calendar day, so unrecorded days show as gaps.
	series := tracker.DailySeries(entries)
	if len(series) > maxTrendDays {
		series = series[len(series)-maxTrendDays:]
	}
	trend := make([]float64, len(series))
	for i, e := range series {
		trend[i] = float64(e.Calories)
	}
	fmt.Printf("\n  Trend  %s  %s to %s\n\n", cli.RenderSparkline(trend), series[0].Key, series[len(series)-1].Key)
	return nil
}
