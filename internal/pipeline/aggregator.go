// Package pipeline loads editor logs and derives per-task summaries and comparisons.
package pipeline

import (
	"errors"
	"fmt"
	"time"

	"github.com/KasraF/SnipPyLogTool/internal/event"
	"github.com/KasraF/SnipPyLogTool/internal/model"
)

var (
	// ErrUnmatchedEnd is a synthesis end with no outstanding start of the same index.
	ErrUnmatchedEnd = errors.New("synthesis end without matching start")
	// ErrIndexReused is a synthesis start whose index is still outstanding.
	ErrIndexReused = errors.New("synthesis index reused while outstanding")
)

// CorrelationError reports a start/end pairing fault in one task log.
type CorrelationError struct {
	Task     model.Task
	Index    uint32 // correlation index of the offending event
	Position int    // 0-based position in the task log
	Err      error
}

func (e *CorrelationError) Error() string {
	return fmt.Sprintf("%s: index %d at entry %d: %v", e.Task, e.Index, e.Position, e.Err)
}

func (e *CorrelationError) Unwrap() error { return e.Err }

// pendingStart is an outstanding SynthStart awaiting its end.
type pendingStart struct {
	at       time.Time
	source   string
	line     uint32
	examples uint32
}

// Summarize derives the metrics of one task log from its entries in
// arrival order. log must have been built with Append so its
// start index is current. A correlation fault aborts the summary and is
// returned as a *CorrelationError together with a zero Summary.
func Summarize(log *model.Log) (model.Summary, error) {
	s := model.Summary{
		Task:    log.Task,
		Entries: len(log.Entries),
	}
	pending := make(map[uint32]pendingStart)

	// Per-call example counts come straight from the start index.
	for _, e := range log.StartEntries() {
		n := e.Event.(event.SynthStart).ExampleCount
		s.SynthCalls++
		s.TotalExamples += int(n)
		s.ExampleCounts = append(s.ExampleCounts, n)
	}

	var (
		minDur, maxDur time.Duration
		sawEnd         bool
	)

	for pos, e := range log.Entries {
		idx, _ := event.CorrelationIndex(e.Event)

		switch ev := e.Event.(type) {
		case event.SynthStart:
			if _, busy := pending[idx]; busy {
				return model.Summary{}, &CorrelationError{Task: log.Task, Index: idx, Position: pos, Err: ErrIndexReused}
			}
			line, _ := event.StartingLineNumber(ev)
			pending[idx] = pendingStart{
				at:       e.Time,
				source:   e.Source,
				line:     line,
				examples: ev.ExampleCount,
			}

		case event.SynthEnd:
			start, ok := pending[idx]
			if !ok {
				return model.Summary{}, &CorrelationError{Task: log.Task, Index: idx, Position: pos, Err: ErrUnmatchedEnd}
			}
			delete(pending, idx)

			d := e.Time.Sub(start.at)
			if !sawEnd || d < minDur {
				minDur = d
			}
			if !sawEnd || d > maxDur {
				maxDur = d
			}
			sawEnd = true

			s.Completed++
			s.TotalDuration += d
			if ev.ExitCode == 0 {
				s.Successes++
			} else {
				s.Failures++
			}
			s.Calls = append(s.Calls, model.CallRow{
				Index:        idx,
				Source:       start.source,
				Started:      start.at,
				Duration:     d,
				LineNumber:   start.line,
				ExampleCount: start.examples,
				ExitCode:     ev.ExitCode,
				Result:       ev.Result,
			})

		case event.SynthStdOut:
			s.StdOutLines++
		case event.SynthStdErr:
			s.StdErrLines++
		case event.FocusDefault:
			s.DefaultFocus++
		case event.FocusCustom:
			s.CustomFocus++
		case event.FocusExit:
			s.FocusExits++
		case event.ExampleBlur, event.ExampleFocus:
			s.ExampleFocusEvents++
		case event.ExampleChanged:
			s.ExampleChanges++
		case event.ExampleIncluded:
			s.ExampleIncludes++
		case event.ExampleExcluded:
			s.ExampleExcludes++
		case event.ExampleAllReset:
			s.ExampleResets++
		case event.Unrecognized:
			s.Unrecognized++
		}
	}

	s.Outstanding = len(pending)
	s.ExampleEdits = s.ExampleChanges + s.ExampleIncludes + s.ExampleExcludes

	calls := float64(s.SynthCalls)
	s.AvgDuration = model.Ratio(s.TotalDuration.Seconds(), calls)
	s.AvgExamples = model.Ratio(float64(s.TotalExamples), calls)
	s.SuccessRate = model.Ratio(float64(s.Successes), calls)
	s.FocusRatio = model.Ratio(float64(s.DefaultFocus), float64(s.CustomFocus))
	if sawEnd {
		s.MinDuration = model.Defined(minDur.Seconds())
		s.MaxDuration = model.Defined(maxDur.Seconds())
	}

	return s, nil
}

// TaskReport is the outcome of summarizing one task of a log file.
type TaskReport struct {
	Task    model.Task
	Summary model.Summary
	Err     error // non-nil when the task log had a correlation fault
}

// OK reports whether the summary is usable.
func (r TaskReport) OK() bool { return r.Err == nil }

// Analyze summarizes every task present in lf, in priority order. A fault in
// one task does not affect the others.
func Analyze(lf *model.LogFile) []TaskReport {
	tasks := lf.Tasks()
	reports := make([]TaskReport, 0, len(tasks))
	for _, t := range tasks {
		sum, err := Summarize(lf.Logs[t])
		reports = append(reports, TaskReport{Task: t, Summary: sum, Err: err})
	}
	return reports
}
