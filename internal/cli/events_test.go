package cli

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/KasraF/SnipPyLogTool/internal/event"
	"github.com/KasraF/SnipPyLogTool/internal/model"
)

func eventLog(task model.Task, evs ...event.Event) *model.Log {
	l := model.NewLog(task)
	for _, ev := range evs {
		l.Append(model.LogEntry{Time: time.UnixMilli(0), Source: "x.py", Event: ev})
	}
	return l
}

func sampleEvents(withUnrecognized bool) []TaskEvents {
	return []TaskEvents{
		NewTaskEvents(eventLog(model.Abbreviate,
			event.SynthStart{Index: 0},
			event.SynthEnd{Index: 0},
			event.Unrecognized{Original: "synth.bogus"},
			event.Unrecognized{Original: "synth.bogus"},
		), withUnrecognized),
		NewTaskEvents(eventLog(model.Palindrome,
			event.FocusExit{},
		), withUnrecognized),
	}
}

func TestEventsTable(t *testing.T) {
	tbl := EventsTable(sampleEvents(false))
	want := [][]string{
		{"synth_start", "1", "0"},
		{"synth_end", "1", "0"},
		{"focus_exit", "0", "1"},
		{"unrecognized", "2", "0"},
		SeparatorRow,
		{"total", "4", "1"},
	}
	if len(tbl.Rows) != len(want) {
		t.Fatalf("rows = %v, want %v", tbl.Rows, want)
	}
	for i := range want {
		if strings.Join(tbl.Rows[i], "|") != strings.Join(want[i], "|") {
			t.Errorf("row %d = %v, want %v", i, tbl.Rows[i], want[i])
		}
	}
}

func TestNewTaskEventsUnrecognized(t *testing.T) {
	if evs := sampleEvents(false); evs[0].Unrecognized != nil {
		t.Error("unrecognized identifiers listed without being asked for")
	}
	evs := sampleEvents(true)
	u := evs[0].Unrecognized
	if len(u) != 1 || u[0].Identifier != "synth.bogus" || u[0].Count != 2 {
		t.Errorf("Unrecognized = %+v", u)
	}
	if rows := UnrecognizedTable(evs[0]).Rows; len(rows) != 1 || rows[0][1] != "2" {
		t.Errorf("UnrecognizedTable rows = %v", rows)
	}
}

func TestWriteEventsCSV(t *testing.T) {
	tests := []struct {
		name         string
		unrecognized bool
		want         string
	}{
		{"kinds", false, "Task,Kind,Count\n" +
			"abbreviate,synth_start,1\n" +
			"abbreviate,synth_end,1\n" +
			"abbreviate,unrecognized,2\n" +
			"palindrome,focus_exit,1\n"},
		{"unrecognized", true, "Task,Identifier,Count\n" +
			"abbreviate,synth.bogus,2\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := WriteEventsCSV(&buf, sampleEvents(tt.unrecognized), tt.unrecognized); err != nil {
				t.Fatal(err)
			}
			if buf.String() != tt.want {
				t.Errorf("got:\n%s\nwant:\n%s", buf.String(), tt.want)
			}
		})
	}
}

func TestWriteFileRecord(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteFileRecord(&buf, "/logs/a,b/snippy.log"); err != nil {
		t.Fatal(err)
	}
	if got := buf.String(); got != "File,\"/logs/a,b/snippy.log\"\n" {
		t.Errorf("WriteFileRecord = %q", got)
	}
}
