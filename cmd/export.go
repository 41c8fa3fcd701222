package cmd

import (
	"fmt"
	"os"

	"github.com/KasraF/SnipPyLogTool/internal/cli"
	"github.com/KasraF/SnipPyLogTool/internal/logging"
	"github.com/KasraF/SnipPyLogTool/internal/pipeline"
	"github.com/KasraF/SnipPyLogTool/internal/store"

	"github.com/spf13/cobra"
)

var flagDBPath string

var exportCmd = &cobra.Command{
	Use:   "export [path]",
	Short: "Write summaries, calls and comparisons to a SQLite database",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVar(&flagDBPath, "db", "", "SQLite database file (default from config)")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	root := rootPath(args)
	dbPath := cfg.Export.DBPath
	if cmd.Flags().Changed("db") {
		dbPath = flagDBPath
	}

	result, err := loadData(root)
	if err != nil {
		return err
	}
	if noFiles(result, root) {
		return nil
	}

	exp, err := store.Open(dbPath)
	if err != nil {
		return err
	}
	defer exp.Close()

	exported := 0
	for _, v := range fileViews(result, true) {
		if v.fr.Err != nil {
			continue
		}
		cmp := pipeline.Comparison{}
		if v.cmp != nil {
			cmp = *v.cmp
		}
		if err := exp.WriteFile(v.fr, v.reports, cmp); err != nil {
			return fmt.Errorf("exporting %s: %w", v.fr.Path, err)
		}
		logging.Logger.Debug("exported", "file", v.fr.Path, "tasks", len(v.reports))
		exported++
	}

	st, err := exp.Stats()
	if err != nil {
		return fmt.Errorf("reading export stats: %w", err)
	}
	if !flagQuiet {
		fmt.Fprintf(os.Stderr, "  Exported %d files to %s\n", exported, dbPath)
		fmt.Fprintf(os.Stderr, "  Database now holds %s files, %s task summaries (%d faults), %s calls, %s comparison rows\n",
			cli.FormatInt(st.Files), cli.FormatInt(st.Summaries), st.Faults,
			cli.FormatInt(st.Calls), cli.FormatInt(st.Comparison))
	}
	return nil
}
