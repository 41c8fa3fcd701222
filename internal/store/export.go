// Package store exports analysis results to a SQLite database.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/KasraF/SnipPyLogTool/internal/model"
	"github.com/KasraF/SnipPyLogTool/internal/pipeline"

	_ "modernc.org/sqlite" // register sqlite driver
)

// Export writes analysis results to SQLite. Nothing is read back by the
// analyzer; the database is for downstream queries.
type Export struct {
	db *sql.DB
}

// Open opens or creates the export database at the given path.
func Open(dbPath string) (*Export, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating export dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)&_pragma=foreign_keys(on)")
	if err != nil {
		return nil, fmt.Errorf("opening export db: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Export{db: db}, nil
}

// Close closes the export database.
func (e *Export) Close() error {
	return e.db.Close()
}

// WriteFile replaces everything stored for fr.Path with the given reports
// and comparison, in one transaction.
func (e *Export) WriteFile(fr pipeline.FileResult, reports []pipeline.TaskReport, cmp pipeline.Comparison) error {
	tx, err := e.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	// Cascades to the per-task tables.
	if _, err := tx.Exec("DELETE FROM log_files WHERE file_path = ?", fr.Path); err != nil {
		return err
	}

	dropped := 0
	if fr.File != nil {
		dropped = fr.File.Dropped
	}
	_, err = tx.Exec(`INSERT INTO log_files
		(file_path, session, lines, skipped_lines, dropped_entries, unrecognized, exported_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		fr.Path, fr.Session, fr.Lines, len(fr.Skipped), dropped, fr.Unrecognized,
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting %s: %w", fr.Path, err)
	}

	for _, r := range reports {
		if err := insertReport(tx, fr.Path, r); err != nil {
			return fmt.Errorf("inserting %s/%s: %w", fr.Path, r.Task.Slug(), err)
		}
	}

	for i, row := range cmp.Rows {
		left, right := row[0], pipeline.Count{}
		var rightTask sql.NullString
		if len(row) > 1 {
			right = row[1]
			rightTask = sql.NullString{String: cmp.Tasks[1].Slug(), Valid: true}
		}
		_, err = tx.Exec(`INSERT INTO example_comparison
			(file_path, position, left_task, left_count, right_task, right_count)
			VALUES (?, ?, ?, ?, ?, ?)`,
			fr.Path, i, cmp.Tasks[0].Slug(), nullCount(left), rightTask, nullCount(right),
		)
		if err != nil {
			return fmt.Errorf("inserting comparison row %d: %w", i, err)
		}
	}

	return tx.Commit()
}

func insertReport(tx *sql.Tx, path string, r pipeline.TaskReport) error {
	if !r.OK() {
		_, err := tx.Exec(`INSERT INTO task_summaries (file_path, task, fault) VALUES (?, ?, ?)`,
			path, r.Task.Slug(), r.Err.Error())
		return err
	}

	s := r.Summary
	_, err := tx.Exec(`INSERT INTO task_summaries
		(file_path, task, entries, synth_calls, completed, successes, failures, outstanding,
		 success_rate, total_duration_ms, min_duration_secs, max_duration_secs, avg_duration_secs,
		 total_examples, avg_examples, default_focus, custom_focus, focus_ratio, focus_exits,
		 example_changes, example_includes, example_excludes, example_resets, example_edits,
		 stdout_lines, stderr_lines, unrecognized)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		path, r.Task.Slug(), s.Entries, s.SynthCalls, s.Completed, s.Successes, s.Failures, s.Outstanding,
		nullStat(s.SuccessRate), s.TotalDuration.Milliseconds(), nullStat(s.MinDuration), nullStat(s.MaxDuration), nullStat(s.AvgDuration),
		s.TotalExamples, nullStat(s.AvgExamples), s.DefaultFocus, s.CustomFocus, nullStat(s.FocusRatio), s.FocusExits,
		s.ExampleChanges, s.ExampleIncludes, s.ExampleExcludes, s.ExampleResets, s.ExampleEdits,
		s.StdOutLines, s.StdErrLines, s.Unrecognized,
	)
	if err != nil {
		return err
	}

	for seq, c := range s.Calls {
		_, err = tx.Exec(`INSERT INTO synth_calls
			(file_path, task, seq, call_index, source, line_number, example_count,
			 started_ms, duration_ms, exit_code, result)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			path, r.Task.Slug(), seq, c.Index, c.Source, c.LineNumber, c.ExampleCount,
			c.Started.UnixMilli(), c.Duration.Milliseconds(), c.ExitCode, c.Result,
		)
		if err != nil {
			return err
		}
	}
	return nil
}

func nullStat(s model.Stat) sql.NullFloat64 {
	v, ok := s.Value()
	return sql.NullFloat64{Float64: v, Valid: ok}
}

func nullCount(c pipeline.Count) sql.NullInt64 {
	return sql.NullInt64{Int64: int64(c.N), Valid: c.Present}
}

// Stats holds row counts of the export tables.
type Stats struct {
	Files      int
	Summaries  int
	Faults     int
	Calls      int
	Comparison int
}

// Stats counts the rows currently in the export.
func (e *Export) Stats() (Stats, error) {
	var st Stats
	queries := []struct {
		sql string
		dst *int
	}{
		{"SELECT COUNT(*) FROM log_files", &st.Files},
		{"SELECT COUNT(*) FROM task_summaries", &st.Summaries},
		{"SELECT COUNT(*) FROM task_summaries WHERE fault IS NOT NULL", &st.Faults},
		{"SELECT COUNT(*) FROM synth_calls", &st.Calls},
		{"SELECT COUNT(*) FROM example_comparison", &st.Comparison},
	}
	for _, q := range queries {
		if err := e.db.QueryRow(q.sql).Scan(q.dst); err != nil {
			return st, err
		}
	}
	return st, nil
}
