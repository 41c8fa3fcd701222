package cmd

import (
	"fmt"
	"os"

	"github.com/KasraF/SnipPyLogTool/internal/cli"

	"github.com/spf13/cobra"
)

var flagUnrecognized bool

var eventsCmd = &cobra.Command{
	Use:   "events [path]",
	Short: "Count decoded events by kind",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runEvents,
}

func init() {
	eventsCmd.Flags().BoolVar(&flagUnrecognized, "unrecognized", false, "List unrecognized identifiers with their counts")
	rootCmd.AddCommand(eventsCmd)
}

// eventsDoc is the structured form of one file's event breakdown.
type eventsDoc struct {
	Path    string           `json:"path" yaml:"path"`
	Session string           `json:"session" yaml:"session"`
	Tasks   []cli.TaskEvents `json:"tasks" yaml:"tasks"`
}

func runEvents(_ *cobra.Command, args []string) error {
	root := rootPath(args)
	result, err := loadData(root)
	if err != nil {
		return err
	}
	if noFiles(result, root) {
		return nil
	}

	views := fileViews(result, false)
	taskEvents := func(v fileView) []cli.TaskEvents {
		evs := make([]cli.TaskEvents, 0, len(v.reports))
		for _, r := range v.reports {
			evs = append(evs, cli.NewTaskEvents(v.fr.File.Logs[r.Task], flagUnrecognized))
		}
		return evs
	}

	switch cfg.Report.Format {
	case "csv":
		return writeCSVPerFile(views, func(v fileView) error {
			return cli.WriteEventsCSV(os.Stdout, taskEvents(v), flagUnrecognized)
		})
	case "json", "yaml":
		docs := make([]eventsDoc, 0, len(views))
		for _, v := range views {
			if v.fr.Err != nil {
				continue
			}
			docs = append(docs, eventsDoc{Path: v.fr.Path, Session: v.fr.Session, Tasks: taskEvents(v)})
		}
		return writeDocument(docs)
	}

	for _, v := range views {
		printFileHeader(v)
		if v.fr.Err != nil {
			continue
		}
		evs := taskEvents(v)
		if len(evs) == 0 {
			fmt.Print(cli.RenderMuted("No entries for the selected tasks."))
			continue
		}
		fmt.Print(cli.RenderTable(cli.EventsTable(evs)))
		if !flagUnrecognized {
			continue
		}
		for _, ev := range evs {
			if len(ev.Unrecognized) == 0 {
				continue
			}
			fmt.Println()
			fmt.Print(cli.RenderTable(cli.UnrecognizedTable(ev)))
		}
	}
	fmt.Println()
	return nil
}
