package cli

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/KasraF/SnipPyLogTool/internal/model"
	"github.com/KasraF/SnipPyLogTool/internal/pipeline"
)

// SummaryHeader is the header row of the CSV summary.
var SummaryHeader = []string{
	"Task", "Entries", "Synth Calls", "Succeeded", "Failed",
	"Max Time", "Min Time", "Average Time", "Average Examples",
	"Success Rate", "Default Focus", "Custom Focus", "Focus Ratio",
	"Example Changes", "Example Edits",
}

// TaskDoc is one task section of a structured report.
type TaskDoc struct {
	Task    model.Task     `json:"task" yaml:"task"`
	Summary *model.Summary `json:"summary,omitempty" yaml:"summary,omitempty"`
	Fault   string         `json:"fault,omitempty" yaml:"fault,omitempty"`
}

// FileDoc is the structured report of one log file.
type FileDoc struct {
	Path         string               `json:"path" yaml:"path"`
	Session      string               `json:"session" yaml:"session"`
	Lines        int                  `json:"lines" yaml:"lines"`
	SkippedLines int                  `json:"skipped_lines" yaml:"skipped_lines"`
	Dropped      int                  `json:"dropped_entries" yaml:"dropped_entries"`
	Tasks        []TaskDoc            `json:"tasks" yaml:"tasks"`
	Comparison   *pipeline.Comparison `json:"comparison,omitempty" yaml:"comparison,omitempty"`
}

// NewFileDoc builds the structured report for one file. Calls are omitted
// unless withCalls is set.
func NewFileDoc(fr pipeline.FileResult, reports []pipeline.TaskReport, cmp *pipeline.Comparison, withCalls bool) FileDoc {
	doc := FileDoc{
		Path:         fr.Path,
		Session:      fr.Session,
		Lines:        fr.Lines,
		SkippedLines: len(fr.Skipped),
		Comparison:   cmp,
		Tasks:        make([]TaskDoc, 0, len(reports)),
	}
	if fr.File != nil {
		doc.Dropped = fr.File.Dropped
	}
	for _, r := range reports {
		td := TaskDoc{Task: r.Task}
		if r.OK() {
			s := r.Summary
			if !withCalls {
				s.Calls = nil
			}
			td.Summary = &s
		} else {
			td.Fault = r.Err.Error()
		}
		doc.Tasks = append(doc.Tasks, td)
	}
	return doc
}

// WriteJSON writes v as indented JSON.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// WriteYAML writes v as a YAML document.
func WriteYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

// WriteFileRecord writes the "File,<path>" record that precedes each file
// when CSV output covers more than one log file.
func WriteFileRecord(w io.Writer, path string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"File", path}); err != nil {
		return err
	}
	cw.Flush()
	return cw.Error()
}

// SummaryRecord is one CSV summary row. Faulted tasks carry "fault" in the
// second column and nothing else.
func SummaryRecord(r pipeline.TaskReport, prec int) []string {
	if !r.OK() {
		return []string{r.Task.String(), "fault"}
	}
	s := r.Summary
	return []string{
		s.Task.String(),
		strconv.Itoa(s.Entries),
		strconv.Itoa(s.SynthCalls),
		strconv.Itoa(s.Successes),
		strconv.Itoa(s.Failures),
		s.MaxDuration.Format(prec),
		s.MinDuration.Format(prec),
		s.AvgDuration.Format(prec),
		s.AvgExamples.Format(prec),
		s.SuccessRate.Format(prec),
		strconv.Itoa(s.DefaultFocus),
		strconv.Itoa(s.CustomFocus),
		s.FocusRatio.Format(prec),
		strconv.Itoa(s.ExampleChanges),
		strconv.Itoa(s.ExampleEdits),
	}
}

// WriteSummaryCSV writes the summary rows and, when cmp is non-nil, a blank
// line followed by the comparison.
func WriteSummaryCSV(w io.Writer, reports []pipeline.TaskReport, cmp *pipeline.Comparison, prec int) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(SummaryHeader); err != nil {
		return err
	}
	for _, r := range reports {
		if err := cw.Write(SummaryRecord(r, prec)); err != nil {
			return err
		}
	}
	if cmp != nil && !cmp.Empty() {
		cw.Flush()
		if _, err := io.WriteString(w, "\n"); err != nil {
			return err
		}
		if err := writeComparisonRecords(cw, *cmp); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteComparisonCSV writes the task names as a header followed by one row
// per call position. Absent cells are empty. An empty comparison writes
// nothing.
func WriteComparisonCSV(w io.Writer, cmp pipeline.Comparison) error {
	cw := csv.NewWriter(w)
	if err := writeComparisonRecords(cw, cmp); err != nil {
		return err
	}
	cw.Flush()
	return cw.Error()
}

func writeComparisonRecords(cw *csv.Writer, cmp pipeline.Comparison) error {
	if cmp.Empty() {
		return nil
	}
	header := make([]string, len(cmp.Tasks))
	for i, t := range cmp.Tasks {
		header[i] = t.String()
	}
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, row := range cmp.Rows {
		rec := make([]string, len(row))
		for i, c := range row {
			rec[i] = c.String()
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	return nil
}

// CallHeader is the header row of call listings.
var CallHeader = []string{"Task", "Index", "Line", "Examples", "Started", "Seconds", "Exit", "Result"}

// WriteCallsCSV writes every matched call of the successful reports.
func WriteCallsCSV(w io.Writer, reports []pipeline.TaskReport, prec int) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CallHeader); err != nil {
		return err
	}
	for _, r := range reports {
		if !r.OK() {
			continue
		}
		for _, c := range r.Summary.Calls {
			if err := cw.Write([]string{
				r.Task.Slug(),
				strconv.FormatUint(uint64(c.Index), 10),
				strconv.FormatUint(uint64(c.LineNumber), 10),
				strconv.FormatUint(uint64(c.ExampleCount), 10),
				strconv.FormatInt(c.Started.UnixMilli(), 10),
				strconv.FormatFloat(c.Seconds(), 'f', prec, 64),
				strconv.FormatInt(int64(c.ExitCode), 10),
				c.Result,
			}); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

// SummaryTable lays out the reports with one metric per row and one task
// per column.
func SummaryTable(reports []pipeline.TaskReport, prec int) Table {
	t := Table{Headers: []string{"Metric"}}
	for _, r := range reports {
		t.Headers = append(t.Headers, r.Task.String())
	}

	type metric struct {
		label string
		value func(s model.Summary) string
	}
	metrics := []metric{
		{"Entries", func(s model.Summary) string { return FormatInt(s.Entries) }},
		{"Synth Calls", func(s model.Summary) string { return FormatInt(s.SynthCalls) }},
		{"Succeeded", func(s model.Summary) string { return FormatInt(s.Successes) }},
		{"Failed", func(s model.Summary) string { return FormatInt(s.Failures) }},
		{"Outstanding", func(s model.Summary) string { return FormatInt(s.Outstanding) }},
		{"Success Rate", func(s model.Summary) string { return FormatPercent(s.SuccessRate) }},
		{"", nil},
		{"Max Time", func(s model.Summary) string { return FormatSeconds(s.MaxDuration, prec) }},
		{"Min Time", func(s model.Summary) string { return FormatSeconds(s.MinDuration, prec) }},
		{"Average Time", func(s model.Summary) string { return FormatSeconds(s.AvgDuration, prec) }},
		{"Average Examples", func(s model.Summary) string { return FormatStat(s.AvgExamples, prec) }},
		{"", nil},
		{"Default Focus", func(s model.Summary) string { return FormatInt(s.DefaultFocus) }},
		{"Custom Focus", func(s model.Summary) string { return FormatInt(s.CustomFocus) }},
		{"Focus Ratio", func(s model.Summary) string { return FormatStat(s.FocusRatio, prec) }},
		{"Focus Exits", func(s model.Summary) string { return FormatInt(s.FocusExits) }},
		{"", nil},
		{"Example Changes", func(s model.Summary) string { return FormatInt(s.ExampleChanges) }},
		{"Example Edits", func(s model.Summary) string { return FormatInt(s.ExampleEdits) }},
		{"Example Resets", func(s model.Summary) string { return FormatInt(s.ExampleResets) }},
		{"Stdout / Stderr", func(s model.Summary) string {
			return fmt.Sprintf("%s / %s", FormatInt(s.StdOutLines), FormatInt(s.StdErrLines))
		}},
		{"Unrecognized", func(s model.Summary) string { return FormatInt(s.Unrecognized) }},
	}

	for _, m := range metrics {
		if m.value == nil {
			t.Rows = append(t.Rows, SeparatorRow)
			continue
		}
		row := []string{m.label}
		for _, r := range reports {
			if !r.OK() {
				row = append(row, "fault")
				continue
			}
			row = append(row, m.value(r.Summary))
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

// CallsTable lists the matched calls of one summary.
func CallsTable(s model.Summary, prec int) Table {
	t := Table{
		Title:   fmt.Sprintf("%s (%d calls)", s.Task, len(s.Calls)),
		Headers: []string{"#", "Index", "Line", "Examples", "Started", "Duration", "Outcome", "Result"},
	}
	for i, c := range s.Calls {
		t.Rows = append(t.Rows, []string{
			strconv.Itoa(i + 1),
			strconv.FormatUint(uint64(c.Index), 10),
			strconv.FormatUint(uint64(c.LineNumber), 10),
			strconv.FormatUint(uint64(c.ExampleCount), 10),
			FormatClock(c.Started),
			strconv.FormatFloat(c.Seconds(), 'f', prec, 64) + "s",
			c.Outcome(),
			Truncate(c.Result, 32),
		})
	}
	return t
}

// ComparisonTable renders the per-call example counts side by side.
func ComparisonTable(cmp pipeline.Comparison) Table {
	t := Table{
		Title:   "Examples per call",
		Headers: []string{"Call"},
	}
	for _, task := range cmp.Tasks {
		t.Headers = append(t.Headers, task.String())
	}
	for i, row := range cmp.Rows {
		rec := []string{strconv.Itoa(i + 1)}
		for _, c := range row {
			rec = append(rec, c.String())
		}
		t.Rows = append(t.Rows, rec)
	}
	return t
}

// DurationSparkline plots call durations in encounter order.
func DurationSparkline(s model.Summary) string {
	vals := make([]float64, len(s.Calls))
	for i, c := range s.Calls {
		vals[i] = c.Seconds()
	}
	return RenderSparkline(vals)
}
