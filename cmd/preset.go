package cmd

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/theirongolddev/kcal/internal/cli"
	"github.com/theirongolddev/kcal/internal/model"
	"github.com/theirongolddev/kcal/internal/quantity"
	"github.com/theirongolddev/kcal/internal/tracker"

	"github.com/spf13/cobra"
)

var presetCmd = &cobra.Command{
	Use:     "preset",
	Aliases: []string{"presets"},
	Short:   "List, add, remove and apply quick-add presets",
	RunE:    runPresetList,
}

var presetListCmd = &cobra.Command{
	Use:   "list",
	Short: "List presets",
	RunE:  runPresetList,
}

var presetAddCmd = &cobra.Command{
	Use:     "add <name> <calories>",
	Short:   "Add a preset (negative calories subtract)",
	Example: "  kcal preset add Toast 120\n  kcal preset add \"Morning run\" -- -300",
	Args:    cobra.ExactArgs(2),
	RunE:    runPresetAdd,
}

var presetRmCmd = &cobra.Command{
	Use:     "rm <id|name>",
	Aliases: []string{"remove", "delete"},
	Short:   "Remove a preset",
	Args:    cobra.ExactArgs(1),
	RunE:    runPresetRm,
}

var presetApplyCmd = &cobra.Command{
	Use:   "apply <id|name>",
	Short: "Add a preset's calories to the day",
	Args:  cobra.ExactArgs(1),
	RunE:  runPresetApply,
}

func init() {
	presetCmd.AddCommand(presetListCmd)
	presetCmd.AddCommand(presetAddCmd)
	presetCmd.AddCommand(presetRmCmd)
	presetCmd.AddCommand(presetApplyCmd)
	rootCmd.AddCommand(presetCmd)
}

func runPresetList(_ *cobra.Command, _ []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	presets := s.tracker.Presets()
	if len(presets) == 0 {
		fmt.Println("\n  No presets. Add one with `kcal preset add <name> <calories>`.")
		return nil
	}

	rows := make([][]string, 0, len(presets))
	for i, p := range presets {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			p.Name,
			cli.FormatSigned(p.Calories),
			strconv.FormatInt(p.ID, 10),
		})
	}

	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Presets",
		Headers: []string{"#", "Name", "Calories", "ID"},
		Rows:    rows,
	}))
	return nil
}

func runPresetAdd(_ *cobra.Command, args []string) error {
	cals, err := quantity.Parse(args[1])
	if err != nil {
		return fmt.Errorf("parsing calories %q: %w", args[1], err)
	}

	s, err := openSession()
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	p, changed, err := s.tracker.AddPreset(args[0], cals)
	if err := mutationResult(changed, err, "A preset needs a name and non-zero calories; nothing changed."); err != nil {
		return err
	}
	if changed {
		fmt.Printf("  Added %s (%s kcal), id %d\n", p.Name, cli.FormatSigned(p.Calories), p.ID)
	}
	return nil
}

func runPresetRm(_ *cobra.Command, args []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	p, err := resolvePreset(s.tracker, args[0])
	if err != nil {
		return err
	}
	changed, err := s.tracker.DeletePreset(p.ID)
	if err := mutationResult(changed, err, ""); err != nil {
		return err
	}
	fmt.Printf("  Removed %s\n", p.Name)
	return nil
}

func runPresetApply(_ *cobra.Command, args []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	p, err := resolvePreset(s.tracker, args[0])
	if err != nil {
		return err
	}
	changed, err := s.tracker.ApplyPreset(p.ID)
	if err := mutationResult(changed, err, ""); err != nil {
		return err
	}

	d := s.tracker.Dashboard()
	fmt.Printf("  %s %s kcal  ->  %s / %s on %s\n",
		p.Name, cli.FormatSigned(p.Calories),
		formatNumber(d.Calories), formatNumber(d.Goal), d.Day.Text)
	return nil
}

// resolvePreset finds a preset by id or, failing that, by name.
func resolvePreset(t *tracker.Tracker, ref string) (model.Preset, error) {
	if id, err := strconv.ParseInt(ref, 10, 64); err == nil {
		for _, p := range t.Presets() {
			if p.ID == id {
				return p, nil
			}
		}
	}
	p, err := t.PresetByName(ref)
	if errors.Is(err, tracker.ErrUnknownPreset) {
		return p, fmt.Errorf("no preset with id or name %q", ref)
	}
	return p, err
}
