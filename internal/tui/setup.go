package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/KasraF/SnipPyLogTool/internal/config"
	"github.com/KasraF/SnipPyLogTool/internal/tui/theme"

	"github.com/charmbracelet/huh"
)

// SetupValues holds the answers collected by the setup form.
type SetupValues struct {
	LogName  string
	Format   string
	Compare  bool
	Theme    string
	LogLevel string
}

// SetupValuesFrom seeds the form with the current configuration.
func SetupValuesFrom(cfg config.Config) SetupValues {
	return SetupValues{
		LogName:  cfg.General.LogName,
		Format:   cfg.Report.Format,
		Compare:  cfg.Report.Compare,
		Theme:    cfg.Appearance.Theme,
		LogLevel: cfg.General.LogLevel,
	}
}

// Apply copies the answers onto cfg.
func (v SetupValues) Apply(cfg config.Config) config.Config {
	cfg.General.LogName = strings.TrimSpace(v.LogName)
	cfg.General.LogLevel = v.LogLevel
	cfg.Report.Format = v.Format
	cfg.Report.Compare = v.Compare
	cfg.Appearance.Theme = v.Theme
	return cfg
}

// NewSetupForm builds the configuration form. intro is shown above the
// first group; vals receives the answers.
func NewSetupForm(intro string, vals *SetupValues) *huh.Form {
	themes := theme.All()
	themeOpts := make([]huh.Option[string], 0, len(themes))
	for _, t := range themes {
		themeOpts = append(themeOpts, huh.NewOption(t.Name, t.Name))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("snippylog setup").
				Description(intro),
			huh.NewInput().
				Title("Log file name").
				Description("Looked for in every directory under the path you analyze.").
				Value(&vals.LogName).
				Validate(validateLogName),
			huh.NewSelect[string]().
				Title("Default report format").
				Options(huh.NewOptions(config.Formats...)...).
				Value(&vals.Format),
			huh.NewConfirm().
				Title("Compare example counts across tasks?").
				Affirmative("Yes").
				Negative("No").
				Value(&vals.Compare),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Dashboard theme").
				Options(themeOpts...).
				Value(&vals.Theme),
			huh.NewSelect[string]().
				Title("Log level").
				Description("Diagnostics are written to stderr.").
				Options(huh.NewOptions("debug", "info", "warn", "error")...).
				Value(&vals.LogLevel),
		),
	).WithShowHelp(true)
}

// SetupIntro describes what a load found, for the form's opening note.
func SetupIntro(fileCount int, root string) string {
	if fileCount == 0 {
		return fmt.Sprintf("No log files found under %s yet.", root)
	}
	noun := "files"
	if fileCount == 1 {
		noun = "file"
	}
	return fmt.Sprintf("Found %d log %s under %s.", fileCount, noun, root)
}

func validateLogName(s string) error {
	s = strings.TrimSpace(s)
	switch {
	case s == "":
		return errors.New("log file name is required")
	case strings.ContainsAny(s, `/\`):
		return errors.New("enter a file name, not a path")
	}
	return nil
}

// saveSetupConfig writes the form answers and applies the chosen theme.
func (a *App) saveSetupConfig() error {
	cfg := a.setupVals.Apply(loadConfigOrDefault())
	if err := cfg.Validate(); err != nil {
		return err
	}
	theme.SetActive(cfg.Appearance.Theme)
	a.compare = cfg.Report.Compare
	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}
	return nil
}
