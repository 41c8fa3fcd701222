package cmd

import (
	"fmt"

	"github.com/KasraF/SnipPyLogTool/internal/config"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration",
	Args:  cobra.NoArgs,
	RunE:  runConfig,

	// Runs with a broken config file so it can be inspected or fixed.
	PersistentPreRunE: applyConfigLenient,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	fmt.Printf("  Config file: %s\n", config.Path())
	if _, err := config.Load(); err != nil {
		fmt.Printf("  Status: invalid, using defaults (%v)\n", err)
	} else if config.Exists() {
		fmt.Println("  Status: loaded (flags override file values)")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	workers := "GOMAXPROCS"
	if cfg.General.Workers > 0 {
		workers = fmt.Sprint(cfg.General.Workers)
	}

	fmt.Println("  [General]")
	fmt.Printf("    Log file name: %s\n", cfg.General.LogName)
	fmt.Printf("    Workers:       %s\n", workers)
	fmt.Printf("    Log level:     %s\n", cfg.General.LogLevel)
	fmt.Println()

	fmt.Println("  [Report]")
	fmt.Printf("    Format:    %s\n", cfg.Report.Format)
	fmt.Printf("    Precision: %d\n", cfg.Report.Precision)
	fmt.Printf("    Compare:   %v\n", cfg.Report.Compare)
	fmt.Println()

	fmt.Println("  [Export]")
	fmt.Printf("    Database: %s\n", cfg.Export.DBPath)
	fmt.Println()

	fmt.Println("  [Appearance]")
	fmt.Printf("    Theme:    %s\n", cfg.Appearance.Theme)
	fmt.Printf("    No color: %v\n", cfg.Appearance.NoColor)
	fmt.Println()

	fmt.Println("  Run `snippylog setup` to reconfigure.")
	return nil
}
