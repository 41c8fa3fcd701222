package model

import (
	"encoding/json"
	"strconv"
	"time"
)

// Stat is a derived statistic that may be undefined because its denominator
// was zero. The zero value is undefined.
type Stat struct {
	value   float64
	defined bool
}

// Defined returns a defined Stat holding v.
func Defined(v float64) Stat {
	return Stat{value: v, defined: true}
}

// Ratio returns num/den, or an undefined Stat when den is zero.
func Ratio(num, den float64) Stat {
	if den == 0 {
		return Stat{}
	}
	return Defined(num / den)
}

// Value returns the statistic and whether it is defined.
func (s Stat) Value() (float64, bool) {
	return s.value, s.defined
}

// Valid reports whether the statistic is defined.
func (s Stat) Valid() bool {
	return s.defined
}

// Format renders the value with prec decimals, or "n/a" when undefined.
func (s Stat) Format(prec int) string {
	if !s.defined {
		return "n/a"
	}
	return strconv.FormatFloat(s.value, 'f', prec, 64)
}

func (s Stat) String() string {
	if !s.defined {
		return "n/a"
	}
	return strconv.FormatFloat(s.value, 'g', -1, 64)
}

// MarshalJSON encodes an undefined Stat as null.
func (s Stat) MarshalJSON() ([]byte, error) {
	if !s.defined {
		return []byte("null"), nil
	}
	return json.Marshal(s.value)
}

// MarshalYAML encodes an undefined Stat as null.
func (s Stat) MarshalYAML() (interface{}, error) {
	if !s.defined {
		return nil, nil
	}
	return s.value, nil
}

// CallRow is one matched synthesis call.
type CallRow struct {
	Index        uint32        `json:"index" yaml:"index"`
	Source       string        `json:"source" yaml:"source"`
	Started      time.Time     `json:"started" yaml:"started"`
	Duration     time.Duration `json:"duration_ns" yaml:"duration"`
	LineNumber   uint32        `json:"line_number" yaml:"line_number"`
	ExampleCount uint32        `json:"example_count" yaml:"example_count"`
	ExitCode     int32         `json:"exit_code" yaml:"exit_code"`
	Result       string        `json:"result" yaml:"result"`
}

// Seconds returns the call duration in fractional seconds.
func (c CallRow) Seconds() float64 {
	return c.Duration.Seconds()
}

// Succeeded reports whether the synthesizer exited with code 0.
func (c CallRow) Succeeded() bool {
	return c.ExitCode == 0
}

// Outcome is "ok" for a successful call and "exit N" otherwise.
func (c CallRow) Outcome() string {
	if c.Succeeded() {
		return "ok"
	}
	return "exit " + strconv.FormatInt(int64(c.ExitCode), 10)
}

// Summary holds the metrics derived from one task log.
type Summary struct {
	Task    Task `json:"task" yaml:"task"`
	Entries int  `json:"entries" yaml:"entries"`

	SynthCalls  int  `json:"synth_calls" yaml:"synth_calls"`
	Completed   int  `json:"completed" yaml:"completed"`
	Successes   int  `json:"successes" yaml:"successes"`
	Failures    int  `json:"failures" yaml:"failures"`
	Outstanding int  `json:"outstanding" yaml:"outstanding"` // starts that never ended
	SuccessRate Stat `json:"success_rate" yaml:"success_rate"`

	TotalDuration time.Duration `json:"total_duration_ns" yaml:"total_duration"`
	MinDuration   Stat          `json:"min_duration_secs" yaml:"min_duration_secs"`
	MaxDuration   Stat          `json:"max_duration_secs" yaml:"max_duration_secs"`
	AvgDuration   Stat          `json:"avg_duration_secs" yaml:"avg_duration_secs"`

	TotalExamples int      `json:"total_examples" yaml:"total_examples"`
	AvgExamples   Stat     `json:"avg_examples" yaml:"avg_examples"`
	ExampleCounts []uint32 `json:"example_counts" yaml:"example_counts"`

	DefaultFocus int  `json:"default_focus" yaml:"default_focus"`
	CustomFocus  int  `json:"custom_focus" yaml:"custom_focus"`
	FocusRatio   Stat `json:"focus_ratio" yaml:"focus_ratio"`
	FocusExits   int  `json:"focus_exits" yaml:"focus_exits"`

	ExampleChanges     int `json:"example_changes" yaml:"example_changes"`
	ExampleIncludes    int `json:"example_includes" yaml:"example_includes"`
	ExampleExcludes    int `json:"example_excludes" yaml:"example_excludes"`
	ExampleResets      int `json:"example_resets" yaml:"example_resets"`
	ExampleEdits       int `json:"example_edits" yaml:"example_edits"`
	ExampleFocusEvents int `json:"example_focus_events" yaml:"example_focus_events"`

	StdOutLines  int `json:"stdout_lines" yaml:"stdout_lines"`
	StdErrLines  int `json:"stderr_lines" yaml:"stderr_lines"`
	Unrecognized int `json:"unrecognized" yaml:"unrecognized"`

	Calls []CallRow `json:"calls" yaml:"calls"`
}
