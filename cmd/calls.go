package cmd

import (
	"fmt"
	"os"

	"github.com/KasraF/SnipPyLogTool/internal/cli"

	"github.com/spf13/cobra"
)

var callsCmd = &cobra.Command{
	Use:   "calls [path]",
	Short: "List every matched synthesis call",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runCalls,
}

func init() {
	rootCmd.AddCommand(callsCmd)
}

func runCalls(_ *cobra.Command, args []string) error {
	root := rootPath(args)
	result, err := loadData(root)
	if err != nil {
		return err
	}
	if noFiles(result, root) {
		return nil
	}

	views := fileViews(result, false)
	prec := cfg.Report.Precision

	switch cfg.Report.Format {
	case "csv":
		return writeCSVPerFile(views, func(v fileView) error {
			return cli.WriteCallsCSV(os.Stdout, v.reports, prec)
		})
	case "json", "yaml":
		docs := make([]cli.FileDoc, 0, len(views))
		for _, v := range views {
			if v.fr.Err != nil {
				continue
			}
			docs = append(docs, cli.NewFileDoc(v.fr, v.reports, nil, true))
		}
		return writeDocument(docs)
	}

	for _, v := range views {
		printFileHeader(v)
		if v.fr.Err != nil {
			continue
		}
		for _, r := range v.reports {
			if !r.OK() {
				fmt.Print(cli.RenderWarning(fmt.Sprintf("%s: %v", r.Task, r.Err)))
				continue
			}
			if len(r.Summary.Calls) == 0 {
				fmt.Print(cli.RenderMuted(r.Task.String() + ": no completed synthesis calls"))
				continue
			}
			fmt.Print(cli.RenderTable(cli.CallsTable(r.Summary, prec)))
			fmt.Print(cli.RenderMuted("durations " + cli.DurationSparkline(r.Summary)))
			fmt.Println()
		}
	}
	return nil
}
