package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/theirongolddev/kcal/internal/tracker"

	"github.com/spf13/cobra"
)

var flagExportRaw bool

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write goal, history and presets as JSON to stdout",
	Long: `Export writes the tracker's state and presets as JSON. With --raw it
writes every key in the store with its stored value as a string, the
shape of a browser storage dump. Both forms are accepted by "kcal import".`,
	RunE: runExport,
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import a browser localStorage dump of the tracker",
	Long: `Import reads a JSON object of localStorage keys, such as one saved from
the browser devtools or written by "kcal export". Only the tracker's keys
(calorieTrackerStateV2, calorieTrackerState, calorieTrackerPresets) are
imported; values may be JSON strings or inline objects.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	exportCmd.Flags().BoolVar(&flagExportRaw, "raw", false, "Dump every stored key verbatim")
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
}

func runExport(_ *cobra.Command, _ []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	var data []byte
	if flagExportRaw {
		data, err = tracker.RawDump(s.db)
	} else {
		data, err = s.tracker.Dump()
	}
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(data)
	return err
}

func runImport(_ *cobra.Command, args []string) error {
	//nolint:gosec // import path is chosen by the local user
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading dump: %w", err)
	}

	s, err := openSession()
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	res, err := tracker.Import(s.db, data)
	if errors.Is(err, tracker.ErrEmptyDump) {
		return fmt.Errorf("%s holds none of the tracker's keys", args[0])
	}
	if err != nil {
		return err
	}

	fmt.Printf("  Imported %s\n", strings.Join(res.Imported, ", "))
	if len(res.Skipped) > 0 && !flagQuiet {
		fmt.Fprintf(os.Stderr, "  Skipped %d unrelated keys\n", len(res.Skipped))
	}

	s.tracker.Reload()
	d := s.tracker.Dashboard()
	fmt.Printf("  Goal %s kcal, %d days recorded\n", formatNumber(d.Goal), len(s.tracker.History()))
	return nil
}
