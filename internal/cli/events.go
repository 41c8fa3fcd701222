package cli

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/KasraF/SnipPyLogTool/internal/event"
	"github.com/KasraF/SnipPyLogTool/internal/model"
	"github.com/KasraF/SnipPyLogTool/internal/pipeline"
)

// TaskEvents is the event breakdown of one task log.
type TaskEvents struct {
	Task         model.Task                 `json:"task" yaml:"task"`
	Entries      int                        `json:"entries" yaml:"entries"`
	Counts       map[event.Kind]int         `json:"counts" yaml:"counts"`
	Unrecognized []pipeline.IdentifierCount `json:"unrecognized,omitempty" yaml:"unrecognized,omitempty"`
}

// NewTaskEvents tallies log by kind. The unrecognized identifiers are listed
// only when withUnrecognized is set.
func NewTaskEvents(log *model.Log, withUnrecognized bool) TaskEvents {
	ev := TaskEvents{
		Task:    log.Task,
		Entries: len(log.Entries),
		Counts:  pipeline.KindCounts(log),
	}
	if withUnrecognized {
		ev.Unrecognized = pipeline.UnrecognizedIdentifiers(log)
	}
	return ev
}

// EventsTable lays out kind counts with one kind per row and one task per
// column. Kinds absent from every task are left out.
func EventsTable(evs []TaskEvents) Table {
	t := Table{Title: "Events by kind", Headers: []string{"Kind"}}
	for _, ev := range evs {
		t.Headers = append(t.Headers, ev.Task.String())
	}

	for _, k := range event.Kinds {
		row := []string{string(k)}
		seen := false
		for _, ev := range evs {
			n := ev.Counts[k]
			seen = seen || n > 0
			row = append(row, FormatInt(n))
		}
		if seen {
			t.Rows = append(t.Rows, row)
		}
	}

	t.Rows = append(t.Rows, SeparatorRow)
	total := []string{"total"}
	for _, ev := range evs {
		total = append(total, FormatInt(ev.Entries))
	}
	t.Rows = append(t.Rows, total)
	return t
}

// UnrecognizedTable lists the unrecognized identifiers of one task.
func UnrecognizedTable(ev TaskEvents) Table {
	t := Table{
		Title:   ev.Task.String() + " unrecognized identifiers",
		Headers: []string{"Identifier", "Count"},
	}
	for _, u := range ev.Unrecognized {
		t.Rows = append(t.Rows, []string{Truncate(u.Identifier, 60), FormatInt(u.Count)})
	}
	return t
}

// WriteEventsCSV writes one Task,Kind,Count record per non-zero count, or
// Task,Identifier,Count records when unrecognized is set.
func WriteEventsCSV(w io.Writer, evs []TaskEvents, unrecognized bool) error {
	cw := csv.NewWriter(w)
	header := []string{"Task", "Kind", "Count"}
	if unrecognized {
		header[1] = "Identifier"
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	for _, ev := range evs {
		if unrecognized {
			for _, u := range ev.Unrecognized {
				if err := cw.Write([]string{ev.Task.Slug(), u.Identifier, strconv.Itoa(u.Count)}); err != nil {
					return err
				}
			}
			continue
		}
		for _, k := range event.Kinds {
			if n := ev.Counts[k]; n > 0 {
				if err := cw.Write([]string{ev.Task.Slug(), string(k), strconv.Itoa(n)}); err != nil {
					return err
				}
			}
		}
	}
	cw.Flush()
	return cw.Error()
}
