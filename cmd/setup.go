package cmd

import (
	"errors"
	"fmt"

	"github.com/kasa-ledger/kasa/internal/config"
	"github.com/kasa-ledger/kasa/internal/tui"

	"github.com/spf13/cobra"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "First-time setup wizard",
	Args:  cobra.NoArgs,
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(_ *cobra.Command, _ []string) error {
	if !interactive() {
		return errors.New("setup needs a terminal; edit " + config.Path() + " instead")
	}

	// Start from the file so environment overrides are not persisted.
	fileCfg, err := config.LoadFrom(config.Path())
	if err != nil {
		return err
	}

	var vals tui.SetupValues
	ok, err := runForm(tui.NewSetupForm(&vals, fileCfg))
	if err != nil || !ok {
		return err
	}

	if err := tui.ApplySetup(vals, &fileCfg); err != nil {
		return err
	}
	if err := config.Save(fileCfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Println()
	fmt.Printf("  Saved to %s\n", config.Path())
	fmt.Println("  Run `kasa setup` anytime to reconfigure.")
	fmt.Println()
	return nil
}
