// Package cmd implements the kasa CLI commands.
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/kasa-ledger/kasa/internal/config"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	Args:  cobra.NoArgs,
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	fmt.Printf("  Config file: %s\n", config.Path())
	if config.Exists() {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	fmt.Println("  [General]")
	fmt.Printf("    Database:     %s\n", dbPath())
	fmt.Printf("    Currency:     %s\n", cfg.General.Currency)
	fmt.Printf("    Window days:  %d\n", cfg.General.WindowDays)
	fmt.Println()

	fmt.Println("  [Categories]")
	fmt.Printf("    Expense: %s\n", strings.Join(cfg.Categories.Expense, ", "))
	fmt.Printf("    Income:  %s\n", strings.Join(cfg.Categories.Income, ", "))
	fmt.Println()

	fmt.Println("  [Appearance]")
	fmt.Printf("    Theme: %s\n", cfg.Appearance.Theme)
	fmt.Println()

	fmt.Println("  [Log]")
	fmt.Printf("    Level: %s\n", log.GetLevel())
	fmt.Println()

	var overrides []string
	for _, env := range []string{config.EnvDataDir, config.EnvCurrency, config.EnvLogLevel} {
		if v := os.Getenv(env); v != "" {
			overrides = append(overrides, env+"="+v)
		}
	}
	if len(overrides) > 0 {
		fmt.Println("  Environment overrides:")
		for _, o := range overrides {
			fmt.Printf("    %s\n", o)
		}
		fmt.Println()
	}

	fmt.Println("  Run `kasa setup` to reconfigure.")
	return nil
}
