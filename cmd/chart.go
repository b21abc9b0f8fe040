package cmd

import (
	"fmt"

	"github.com/theirongolddev/kcal/internal/cli"

	"github.com/spf13/cobra"
)

var chartCmd = &cobra.Command{
	Use:   "chart",
	Short: "7-day calorie chart ending at the day",
	RunE:  runChart,
}

func init() {
	rootCmd.AddCommand(chartCmd)
}

func runChart(_ *cobra.Command, _ []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	c := s.tracker.Chart()

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("LAST 7 DAYS  %s to %s", c.Days[0].Key, c.Days[len(c.Days)-1].Key)))
	fmt.Println()
	fmt.Print(cli.RenderChart(c, 10))
	fmt.Println()

	rows := make([][]string, 0, len(c.Days))
	for _, d := range c.Days {
		marker := ""
		if d.IsViewingDay {
			marker = "◂"
		}
		rows = append(rows, []string{
			d.Key,
			d.Weekday,
			formatNumber(d.Calories),
			cli.FormatBalance(d.Calories, c.Goal),
			marker,
		})
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Date", "Day", "Calories", "vs Goal", ""},
		Rows:    rows,
	}))
	return nil
}
