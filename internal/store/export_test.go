package store

import (
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/KasraF/SnipPyLogTool/internal/model"
	"github.com/KasraF/SnipPyLogTool/internal/pipeline"
	"github.com/KasraF/SnipPyLogTool/internal/source"
)

func openTemp(t *testing.T) *Export {
	t.Helper()
	e, err := Open(filepath.Join(t.TempDir(), "out", "snippylog.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = e.Close() })
	return e
}

func sampleFile(path string) (pipeline.FileResult, []pipeline.TaskReport) {
	fr := pipeline.FileResult{
		ParseResult: source.ParseResult{
			File:    model.NewLogFile(path, "p1"),
			Lines:   6,
			Skipped: []source.SkippedLine{{Number: 2, Text: "junk"}},
		},
		Path:    path,
		Session: "p1",
	}
	ok := model.Summary{
		Task:          model.Abbreviate,
		SynthCalls:    2,
		Completed:     2,
		Successes:     2,
		AvgDuration:   model.Defined(0.5),
		ExampleCounts: []uint32{1, 2},
		Calls: []model.CallRow{
			{Index: 0, Source: "abbreviate.py", Started: time.UnixMilli(1000), Duration: 500 * time.Millisecond},
			{Index: 1, Source: "abbreviate.py", Started: time.UnixMilli(2000), Duration: 500 * time.Millisecond},
		},
	}
	reports := []pipeline.TaskReport{
		{Task: model.Abbreviate, Summary: ok},
		{Task: model.Palindrome, Err: errors.New("unmatched end")},
	}
	return fr, reports
}

func TestWriteFile(t *testing.T) {
	e := openTemp(t)
	fr, reports := sampleFile("/logs/p1/snippy.log")
	cmp := pipeline.Compare(reports)

	if err := e.WriteFile(fr, reports, cmp); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	st, err := e.Stats()
	if err != nil {
		t.Fatal(err)
	}
	want := Stats{Files: 1, Summaries: 2, Faults: 1, Calls: 2, Comparison: 2}
	if st != want {
		t.Errorf("Stats = %+v, want %+v", st, want)
	}

	var focus sql.NullFloat64
	var avg float64
	err = e.db.QueryRow(`SELECT focus_ratio, avg_duration_secs FROM task_summaries
		WHERE file_path = ? AND task = 'abbreviate'`, fr.Path).Scan(&focus, &avg)
	if err != nil {
		t.Fatal(err)
	}
	if focus.Valid {
		t.Errorf("focus_ratio = %v, want NULL", focus.Float64)
	}
	if avg != 0.5 {
		t.Errorf("avg_duration_secs = %v, want 0.5", avg)
	}

	var rightTask sql.NullString
	if err := e.db.QueryRow(`SELECT right_task FROM example_comparison WHERE position = 0`).Scan(&rightTask); err != nil {
		t.Fatal(err)
	}
	if rightTask.Valid {
		t.Errorf("right_task = %q, want NULL for a single-task comparison", rightTask.String)
	}
}

func TestWriteFile_ReplacesPreviousExport(t *testing.T) {
	e := openTemp(t)
	fr, reports := sampleFile("/logs/p1/snippy.log")
	cmp := pipeline.Compare(reports)

	for i := 0; i < 2; i++ {
		if err := e.WriteFile(fr, reports, cmp); err != nil {
			t.Fatalf("WriteFile #%d: %v", i+1, err)
		}
	}
	other, otherReports := sampleFile("/logs/p2/snippy.log")
	if err := e.WriteFile(other, otherReports, pipeline.Comparison{}); err != nil {
		t.Fatal(err)
	}

	st, err := e.Stats()
	if err != nil {
		t.Fatal(err)
	}
	want := Stats{Files: 2, Summaries: 4, Faults: 2, Calls: 4, Comparison: 2}
	if st != want {
		t.Errorf("Stats = %+v, want %+v", st, want)
	}
}
