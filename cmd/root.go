// Package cmd implements the snippylog CLI commands.
package cmd

import (
	"fmt"
	"os"
	"slices"

	"github.com/KasraF/SnipPyLogTool/internal/cli"
	"github.com/KasraF/SnipPyLogTool/internal/config"
	"github.com/KasraF/SnipPyLogTool/internal/logging"
	"github.com/KasraF/SnipPyLogTool/internal/model"
	"github.com/KasraF/SnipPyLogTool/internal/pipeline"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
)

var (
	flagLogName  string
	flagWorkers  int
	flagQuiet    bool
	flagLogLevel string
	flagNoColor  bool
	flagTask     string
	flagFormat   string
)

// cfg is the effective configuration: the config file with flag overrides.
var cfg = config.DefaultConfig()

var rootCmd = &cobra.Command{
	Use:   "snippylog [path]",
	Short: "SnipPy editor log analyzer",
	Long: "Analyze SnipPy editor logs: synthesis calls, timings, focus and example edits per task.\n" +
		"path is a log file or a directory searched recursively for log files (default \".\").",
	Args:              cobra.MaximumNArgs(1),
	SilenceUsage:      true,
	PersistentPreRunE: applyConfig,
	RunE:              runSummary,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagLogName, "log-name", "", "Log file name to look for in directories (default from config)")
	pf.IntVarP(&flagWorkers, "workers", "w", 0, "Parallel parse workers (0 = GOMAXPROCS)")
	pf.BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress progress output")
	pf.StringVar(&flagLogLevel, "log-level", "", "Diagnostic log level: debug, info, warn, error")
	pf.BoolVar(&flagNoColor, "no-color", false, "Disable colored output")
	pf.StringVarP(&flagTask, "task", "t", "", "Only report one task (abbreviate, count-duplicates, max-and-min, palindrome)")
	pf.StringVarP(&flagFormat, "format", "f", "", "Output format: table, csv, json, yaml")
}

// applyConfig loads the config file, applies flag overrides and sets up
// logging and the color profile. An unreadable or invalid config file is an
// error.
func applyConfig(cmd *cobra.Command, _ []string) error {
	return loadConfig(cmd, false)
}

// applyConfigLenient is applyConfig for the commands that repair or show
// the config: a broken file falls back to defaults with a warning.
func applyConfigLenient(cmd *cobra.Command, _ []string) error {
	return loadConfig(cmd, true)
}

func loadConfig(cmd *cobra.Command, lenient bool) error {
	c, loadErr := config.Load()
	if loadErr != nil {
		if !lenient {
			return loadErr
		}
		c = config.DefaultConfig()
	}

	flags := cmd.Flags()
	if flags.Changed("log-name") {
		c.General.LogName = flagLogName
	}
	if flags.Changed("workers") {
		c.General.Workers = flagWorkers
	}
	if flags.Changed("log-level") {
		c.General.LogLevel = flagLogLevel
	}
	if flags.Changed("format") {
		c.Report.Format = flagFormat
	}
	if flags.Changed("no-color") {
		c.Appearance.NoColor = flagNoColor
	}
	if err := c.Validate(); err != nil {
		return err
	}
	if flagTask != "" {
		if _, err := model.ParseTask(flagTask); err != nil {
			return err
		}
	}
	cfg = c

	logging.Init(os.Stderr, logging.ParseLevel(cfg.General.LogLevel), cfg.Appearance.NoColor)
	if loadErr != nil {
		logging.Logger.Warn("using default config", "err", loadErr)
	}
	if cfg.Appearance.NoColor || os.Getenv("NO_COLOR") != "" {
		lipgloss.SetColorProfile(termenv.Ascii)
	}
	return nil
}

func rootPath(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return "."
}

// loadData is the shared data loading path used by all report commands.
func loadData(root string) (*pipeline.LoadResult, error) {
	if !flagQuiet {
		fmt.Fprintf(os.Stderr, "  Scanning %s...\n", root)
	}

	progressFn := func(current, total int) {
		if flagQuiet {
			return
		}
		if current%25 == 0 || current == total {
			fmt.Fprintf(os.Stderr, "\r  Parsing [%d/%d]", current, total)
		}
	}

	result, err := pipeline.Load(root, pipeline.LoadOptions{
		LogName: cfg.General.LogName,
		Workers: cfg.General.Workers,
	}, progressFn)
	if err != nil {
		return nil, err
	}

	if !flagQuiet && result.TotalFiles > 0 {
		fmt.Fprintf(os.Stderr, "\r  Parsed %s log files across %d sessions    \n",
			cli.FormatInt(result.ParsedFiles), result.SessionCount)
	}
	return result, nil
}

// fileView is one file's reports after the --task filter.
type fileView struct {
	fr      pipeline.FileResult
	reports []pipeline.TaskReport
	cmp     *pipeline.Comparison // nil when comparisons are off
}

// fileViews applies the --task filter to every file. withCmp attaches the
// comparison, recomputed over the filtered reports when a task is selected.
func fileViews(result *pipeline.LoadResult, withCmp bool) []fileView {
	task, filtered := selectedTask()

	views := make([]fileView, 0, len(result.Files))
	for _, fr := range result.Files {
		v := fileView{fr: fr, reports: fr.Reports}
		if filtered {
			v.reports = slices.DeleteFunc(slices.Clone(fr.Reports), func(r pipeline.TaskReport) bool {
				return r.Task != task
			})
		}
		if withCmp && fr.Err == nil {
			cmp := fr.Comparison
			if filtered {
				cmp = pipeline.Compare(v.reports)
			}
			v.cmp = &cmp
		}
		views = append(views, v)
	}
	return views
}

// selectedTask returns the --task filter, validated in applyConfig.
func selectedTask() (model.Task, bool) {
	if flagTask == "" {
		return 0, false
	}
	t, err := model.ParseTask(flagTask)
	return t, err == nil
}

// noFiles reports an empty scan on stderr. It returns true when there is
// nothing to render.
func noFiles(result *pipeline.LoadResult, root string) bool {
	if result.TotalFiles > 0 {
		return false
	}
	fmt.Fprintf(os.Stderr, "\n  No %s files found under %s.\n", cfg.General.LogName, root)
	return true
}

// printFileHeader prints the title bar and file-level counts for table output.
func printFileHeader(v fileView) {
	fmt.Println()
	fmt.Println(cli.RenderTitle("SESSION " + v.fr.Session))
	fmt.Print(cli.RenderMuted(v.fr.Path))
	if v.fr.Err != nil {
		fmt.Print(cli.RenderError(v.fr.Err.Error()))
		return
	}
	fmt.Print(cli.RenderMuted(fmt.Sprintf("%s lines · %s task entries · %d skipped · %d dropped · %d unrecognized",
		cli.FormatInt(v.fr.Lines), cli.FormatInt(v.fr.File.EntryCount()), len(v.fr.Skipped), v.fr.File.Dropped, v.fr.Unrecognized)))
	fmt.Println()
}

// printFaults prints one warning per faulted task.
func printFaults(reports []pipeline.TaskReport) {
	for _, r := range reports {
		if !r.OK() {
			fmt.Print(cli.RenderWarning(fmt.Sprintf("%s: %v", r.Task, r.Err)))
		}
	}
}

// writeCSVPerFile runs write for every readable file, separating files with
// a File record when there is more than one.
func writeCSVPerFile(views []fileView, write func(v fileView) error) error {
	multi := len(views) > 1
	for _, v := range views {
		if v.fr.Err != nil {
			continue
		}
		if multi {
			if err := cli.WriteFileRecord(os.Stdout, v.fr.Path); err != nil {
				return err
			}
		}
		if err := write(v); err != nil {
			return err
		}
	}
	return nil
}

// writeDocument writes v as JSON or YAML per the configured format.
func writeDocument(v any) error {
	if cfg.Report.Format == "yaml" {
		return cli.WriteYAML(os.Stdout, v)
	}
	return cli.WriteJSON(os.Stdout, v)
}
