package cmd

import (
	"fmt"
	"io"

	"github.com/KasraF/SnipPyLogTool/internal/config"
	"github.com/KasraF/SnipPyLogTool/internal/logging"
	"github.com/KasraF/SnipPyLogTool/internal/tui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
)

var tuiCmd = &cobra.Command{
	Use:   "tui [path]",
	Short: "Launch the interactive dashboard",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runTUI,

	// Runs with a broken config file so it can be inspected or fixed.
	PersistentPreRunE: applyConfigLenient,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(_ *cobra.Command, args []string) error {
	// The dashboard shows file errors and faults itself; stderr output
	// would tear the alt screen.
	logging.Init(io.Discard, logging.ParseLevel(cfg.General.LogLevel), true)

	// Background fills need ANSI output even when lipgloss guesses a
	// plainer profile.
	if !cfg.Appearance.NoColor {
		lipgloss.SetColorProfile(termenv.TrueColor)
	}

	app := tui.NewApp(rootPath(args), cfg, !config.Exists())
	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithMouseCellMotion())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
