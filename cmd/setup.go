package cmd

import (
	"errors"
	"fmt"

	"github.com/KasraF/SnipPyLogTool/internal/config"
	"github.com/KasraF/SnipPyLogTool/internal/source"
	"github.com/KasraF/SnipPyLogTool/internal/tui"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

var setupCmd = &cobra.Command{
	Use:   "setup [path]",
	Short: "Interactive configuration wizard",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runSetup,

	// Runs with a broken config file so it can be inspected or fixed.
	PersistentPreRunE: applyConfigLenient,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(_ *cobra.Command, args []string) error {
	root := rootPath(args)

	// The file config, not cfg: flag overrides must not be persisted.
	fileCfg, err := config.Load()
	if err != nil {
		fileCfg = config.DefaultConfig()
	}

	files, _ := source.ScanPath(root, fileCfg.General.LogName)

	vals := tui.SetupValuesFrom(fileCfg)
	form := tui.NewSetupForm(tui.SetupIntro(len(files), root), &vals)
	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			fmt.Println("  Setup cancelled, nothing saved.")
			return nil
		}
		return fmt.Errorf("setup form: %w", err)
	}

	next := vals.Apply(fileCfg)
	if err := next.Validate(); err != nil {
		return err
	}
	if err := config.Save(next); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("\n  Saved to %s\n", config.Path())
	fmt.Println("  Run `snippylog` to analyze the logs in the current directory.")
	return nil
}
