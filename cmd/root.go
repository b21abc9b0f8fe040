package cmd

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/theirongolddev/kcal/internal/cli"
	"github.com/theirongolddev/kcal/internal/config"
	"github.com/theirongolddev/kcal/internal/store"
	"github.com/theirongolddev/kcal/internal/tracker"

	"github.com/spf13/cobra"
)

var (
	flagDataDir string
	flagQuiet   bool
	flagDaysAgo int
)

var rootCmd = &cobra.Command{
	Use:          "kcal",
	Short:        "Offline daily calorie tracker",
	Long:         "Track daily calories against a goal, browse past days, and quick-add presets.",
	RunE:         runStatus,
	SilenceUsage: true,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagDataDir, "data-dir", "d", "", "Data directory (default: $KCAL_DATA_DIR, config, or ~/.local/share/kcal)")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress progress output")
	rootCmd.PersistentFlags().IntVarP(&flagDaysAgo, "days-ago", "b", 0, "Act on the day N days before today")
}

// session is an open store and the tracker over it.
type session struct {
	cfg     config.Config
	db      *store.DB
	tracker *tracker.Tracker
}

// openSession is the shared loading path used by all commands. It opens
// the store and moves the viewing day back --days-ago times.
func openSession() (*session, error) {
	cfg, err := config.Load()
	if err != nil {
		if !flagQuiet {
			fmt.Fprintf(os.Stderr, "  Config unreadable, using defaults: %v\n", err)
		}
		cfg = config.DefaultConfig()
	}
	if flagDaysAgo < 0 {
		return nil, fmt.Errorf("--days-ago must be 0 or more, got %d", flagDaysAgo)
	}

	db, err := store.Open(store.Path(dataDir(cfg)))
	if err != nil {
		return nil, fmt.Errorf("opening store: %w", err)
	}

	tr := tracker.New(db,
		tracker.WithDefaultGoal(cfg.General.DefaultGoal),
		tracker.WithLogger(noteLogger()),
	)
	for i := 0; i < flagDaysAgo; i++ {
		tr.Navigate(tracker.Backward)
	}

	return &session{cfg: cfg, db: db, tracker: tr}, nil
}

func (s *session) Close() error {
	return s.db.Close()
}

func dataDir(cfg config.Config) string {
	if flagDataDir != "" {
		return flagDataDir
	}
	return config.DataDir(cfg)
}

// noteLogger reports recoverable problems, such as a malformed stored
// payload being replaced with defaults, unless --quiet is set.
func noteLogger() *log.Logger {
	if flagQuiet {
		return log.New(io.Discard, "", 0)
	}
	return log.New(os.Stderr, "  note: ", 0)
}

// mutationResult turns a tracker mutator's outcome into a command error.
// Rejected input is reported on stderr but is not a failure.
func mutationResult(changed bool, err error, rejected string) error {
	if err != nil {
		return fmt.Errorf("saving: %w", err)
	}
	if !changed && rejected != "" && !flagQuiet {
		fmt.Fprintf(os.Stderr, "  %s\n", rejected)
	}
	return nil
}

func formatNumber(n int) string {
	return cli.FormatNumber(int64(n))
}
