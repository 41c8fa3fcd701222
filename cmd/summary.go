package cmd

import (
	"fmt"
	"os"

	"github.com/KasraF/SnipPyLogTool/internal/cli"

	"github.com/spf13/cobra"
)

var summaryCmd = &cobra.Command{
	Use:   "summary [path]",
	Short: "Per-task summary and example comparison (default command)",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runSummary,
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}

func runSummary(_ *cobra.Command, args []string) error {
	root := rootPath(args)
	result, err := loadData(root)
	if err != nil {
		return err
	}
	if noFiles(result, root) {
		return nil
	}

	views := fileViews(result, cfg.Report.Compare)
	prec := cfg.Report.Precision

	switch cfg.Report.Format {
	case "csv":
		return writeCSVPerFile(views, func(v fileView) error {
			return cli.WriteSummaryCSV(os.Stdout, v.reports, v.cmp, prec)
		})
	case "json", "yaml":
		docs := make([]cli.FileDoc, 0, len(views))
		for _, v := range views {
			if v.fr.Err != nil {
				continue
			}
			docs = append(docs, cli.NewFileDoc(v.fr, v.reports, v.cmp, false))
		}
		return writeDocument(docs)
	}

	for _, v := range views {
		printFileHeader(v)
		if v.fr.Err != nil {
			continue
		}
		if len(v.reports) == 0 {
			fmt.Print(cli.RenderMuted("No entries for the selected tasks."))
			continue
		}
		fmt.Print(cli.RenderTable(cli.SummaryTable(v.reports, prec)))
		printFaults(v.reports)
		if v.cmp != nil && !v.cmp.Empty() {
			fmt.Println()
			fmt.Print(cli.RenderTable(cli.ComparisonTable(*v.cmp)))
		}
	}
	fmt.Println()
	return nil
}
