// Package cmd implements the kcal CLI commands.
package cmd

import (
	"fmt"
	"os"

	"github.com/theirongolddev/kcal/internal/config"
	"github.com/theirongolddev/kcal/internal/store"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	fmt.Printf("  Config file: %s\n", config.ConfigPath())
	if config.Exists() {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	fmt.Println("  [General]")
	if cfg.General.DataDir != "" {
		fmt.Printf("    Data directory: %s\n", cfg.General.DataDir)
	}
	fmt.Printf("    Default goal:   %s kcal\n", formatNumber(cfg.General.DefaultGoal))
	fmt.Println()

	fmt.Println("  [Appearance]")
	fmt.Printf("    Theme: %s\n", cfg.Appearance.Theme)
	fmt.Println()

	fmt.Println("  [Daemon]")
	fmt.Printf("    Address:       %s\n", cfg.Daemon.Addr)
	fmt.Printf("    Events buffer: %d\n", cfg.Daemon.EventsBuffer)
	fmt.Println()

	dir := dataDir(cfg)
	fmt.Printf("  Effective store: %s\n", store.Path(dir))
	switch {
	case flagDataDir != "":
		fmt.Println("    (from --data-dir)")
	case os.Getenv("KCAL_DATA_DIR") != "":
		fmt.Println("    (from KCAL_DATA_DIR)")
	}
	fmt.Println()

	fmt.Println("  Run `kcal setup` to reconfigure.")
	return nil
}
