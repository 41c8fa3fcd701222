package cmd

import (
	"fmt"
	"os"

	"github.com/KasraF/SnipPyLogTool/internal/cli"
	"github.com/KasraF/SnipPyLogTool/internal/pipeline"

	"github.com/spf13/cobra"
)

var compareCmd = &cobra.Command{
	Use:   "compare [path]",
	Short: "Compare example counts per call across two tasks",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runCompare,
}

func init() {
	rootCmd.AddCommand(compareCmd)
}

// comparisonDoc is the structured form of one file's comparison.
type comparisonDoc struct {
	Path       string              `json:"path" yaml:"path"`
	Session    string              `json:"session" yaml:"session"`
	Comparison pipeline.Comparison `json:"comparison" yaml:"comparison"`
}

func runCompare(_ *cobra.Command, args []string) error {
	root := rootPath(args)
	result, err := loadData(root)
	if err != nil {
		return err
	}
	if noFiles(result, root) {
		return nil
	}

	views := fileViews(result, true)

	switch cfg.Report.Format {
	case "csv":
		return writeCSVPerFile(views, func(v fileView) error {
			return cli.WriteComparisonCSV(os.Stdout, *v.cmp)
		})
	case "json", "yaml":
		docs := make([]comparisonDoc, 0, len(views))
		for _, v := range views {
			if v.fr.Err != nil {
				continue
			}
			docs = append(docs, comparisonDoc{Path: v.fr.Path, Session: v.fr.Session, Comparison: *v.cmp})
		}
		return writeDocument(docs)
	}

	for _, v := range views {
		printFileHeader(v)
		if v.fr.Err != nil {
			continue
		}
		printFaults(v.reports)
		if v.cmp.Empty() {
			fmt.Print(cli.RenderMuted("No fault-free task to compare."))
			continue
		}
		fmt.Print(cli.RenderTable(cli.ComparisonTable(*v.cmp)))
	}
	fmt.Println()
	return nil
}
