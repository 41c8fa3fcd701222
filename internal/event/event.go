// Package event decodes editor event identifiers into typed events.
package event

import (
	"strconv"
)

// Kind names an event variant.
type Kind string

const (
	KindSynthStart      Kind = "synth_start"
	KindSynthStdOut     Kind = "synth_stdout"
	KindSynthStdErr     Kind = "synth_stderr"
	KindSynthEnd        Kind = "synth_end"
	KindFocusDefault    Kind = "focus_default"
	KindFocusCustom     Kind = "focus_custom"
	KindFocusExit       Kind = "focus_exit"
	KindExampleBlur     Kind = "example_blur"
	KindExampleFocus    Kind = "example_focus"
	KindExampleChanged  Kind = "example_changed"
	KindExampleIncluded Kind = "example_included"
	KindExampleExcluded Kind = "example_excluded"
	KindExampleAllReset Kind = "example_all_reset"
	KindUnrecognized    Kind = "unrecognized"
)

// Kinds lists every variant in display order.
var Kinds = []Kind{
	KindSynthStart, KindSynthEnd, KindSynthStdOut, KindSynthStdErr,
	KindFocusDefault, KindFocusCustom, KindFocusExit,
	KindExampleBlur, KindExampleFocus, KindExampleChanged,
	KindExampleIncluded, KindExampleExcluded, KindExampleAllReset,
	KindUnrecognized,
}

// Event is one decoded log line. The set of implementations is closed.
type Event interface {
	Kind() Kind
	// Identifier re-encodes the dot-separated wire identifier.
	Identifier() string
	// Payload re-encodes the free-form payload column.
	Payload() string
	isEvent()
}

// SynthStart marks the start of a synthesis call.
type SynthStart struct {
	Index        uint32
	LineNumber   uint32
	ExampleCount uint32
}

// SynthStdOut is one line the synthesizer wrote to stdout.
type SynthStdOut struct{ Text string }

// SynthStdErr is one line the synthesizer wrote to stderr.
type SynthStdErr struct{ Text string }

// SynthEnd marks the end of the synthesis call with the same Index.
type SynthEnd struct {
	Index    uint32
	ExitCode int32
	Result   string
}

// FocusDefault means the projection box focused the default output.
type FocusDefault struct{ Text string }

// FocusCustom means the projection box focused a custom output.
type FocusCustom struct{ Text string }

// FocusExit means focus left the projection box.
type FocusExit struct{}

// ExampleBlur means example Index lost focus.
type ExampleBlur struct {
	Index   uint32
	Content string
}

// ExampleFocus means example Index gained focus.
type ExampleFocus struct {
	Index   uint32
	Content string
}

// ExampleChanged records an edit of example Index.
type ExampleChanged struct {
	Index  uint32
	Before string
	After  string
}

// ExampleIncluded means example Index was added to the active set.
type ExampleIncluded struct {
	Index   uint32
	Content string
}

// ExampleExcluded means example Index was removed from the active set.
type ExampleExcluded struct {
	Index   uint32
	Content string
}

// ExampleAllReset means every example was reset.
type ExampleAllReset struct{}

// Unrecognized is the fallback for identifiers that match no known shape.
// Original holds the identifier exactly as read.
type Unrecognized struct{ Original string }

func (SynthStart) Kind() Kind      { return KindSynthStart }
func (SynthStdOut) Kind() Kind     { return KindSynthStdOut }
func (SynthStdErr) Kind() Kind     { return KindSynthStdErr }
func (SynthEnd) Kind() Kind        { return KindSynthEnd }
func (FocusDefault) Kind() Kind    { return KindFocusDefault }
func (FocusCustom) Kind() Kind     { return KindFocusCustom }
func (FocusExit) Kind() Kind       { return KindFocusExit }
func (ExampleBlur) Kind() Kind     { return KindExampleBlur }
func (ExampleFocus) Kind() Kind    { return KindExampleFocus }
func (ExampleChanged) Kind() Kind  { return KindExampleChanged }
func (ExampleIncluded) Kind() Kind { return KindExampleIncluded }
func (ExampleExcluded) Kind() Kind { return KindExampleExcluded }
func (ExampleAllReset) Kind() Kind { return KindExampleAllReset }
func (Unrecognized) Kind() Kind    { return KindUnrecognized }

func (e SynthStart) Identifier() string {
	return "synth.start." + u32(e.Index) + "." + u32(e.LineNumber) + "." + u32(e.ExampleCount)
}
func (SynthStdOut) Identifier() string { return "synth.stdout" }
func (SynthStdErr) Identifier() string { return "synth.stderr" }
func (e SynthEnd) Identifier() string {
	return "synth.end." + u32(e.Index) + "." + strconv.FormatInt(int64(e.ExitCode), 10)
}
func (FocusDefault) Identifier() string { return "focus.projectionBox.focus.default" }
func (FocusCustom) Identifier() string  { return "focus.projectionBox.focus.custom" }
func (FocusExit) Identifier() string    { return "focus.projectionBox.exit" }
func (e ExampleBlur) Identifier() string {
	return "focus.example." + u32(e.Index) + ".blur"
}
func (e ExampleFocus) Identifier() string {
	return "focus.example." + u32(e.Index) + ".focus"
}
func (e ExampleChanged) Identifier() string  { return "example." + u32(e.Index) + ".change" }
func (e ExampleIncluded) Identifier() string { return "example." + u32(e.Index) + ".include" }
func (e ExampleExcluded) Identifier() string { return "example." + u32(e.Index) + ".exclude" }
func (ExampleAllReset) Identifier() string   { return "example.all.reset" }
func (e Unrecognized) Identifier() string    { return e.Original }

func (SynthStart) Payload() string        { return "" }
func (e SynthStdOut) Payload() string     { return e.Text }
func (e SynthStdErr) Payload() string     { return e.Text }
func (e SynthEnd) Payload() string        { return e.Result }
func (e FocusDefault) Payload() string    { return e.Text }
func (e FocusCustom) Payload() string     { return e.Text }
func (FocusExit) Payload() string         { return "" }
func (e ExampleBlur) Payload() string     { return e.Content }
func (e ExampleFocus) Payload() string    { return e.Content }
func (e ExampleChanged) Payload() string  { return e.Before + "," + e.After }
func (e ExampleIncluded) Payload() string { return e.Content }
func (e ExampleExcluded) Payload() string { return e.Content }
func (ExampleAllReset) Payload() string   { return "" }
func (Unrecognized) Payload() string      { return "" }

func (SynthStart) isEvent()      {}
func (SynthStdOut) isEvent()     {}
func (SynthStdErr) isEvent()     {}
func (SynthEnd) isEvent()        {}
func (FocusDefault) isEvent()    {}
func (FocusCustom) isEvent()     {}
func (FocusExit) isEvent()       {}
func (ExampleBlur) isEvent()     {}
func (ExampleFocus) isEvent()    {}
func (ExampleChanged) isEvent()  {}
func (ExampleIncluded) isEvent() {}
func (ExampleExcluded) isEvent() {}
func (ExampleAllReset) isEvent() {}
func (Unrecognized) isEvent()    {}

// CorrelationIndex returns the call or example index carried by e, if any.
func CorrelationIndex(e Event) (uint32, bool) {
	switch e := e.(type) {
	case SynthStart:
		return e.Index, true
	case SynthEnd:
		return e.Index, true
	case ExampleBlur:
		return e.Index, true
	case ExampleFocus:
		return e.Index, true
	case ExampleChanged:
		return e.Index, true
	case ExampleIncluded:
		return e.Index, true
	case ExampleExcluded:
		return e.Index, true
	case SynthStdOut, SynthStdErr, FocusDefault, FocusCustom, FocusExit,
		ExampleAllReset, Unrecognized:
		return 0, false
	}
	return 0, false
}

// StartingLineNumber returns the source line a synthesis call was started from.
// Only SynthStart carries one.
func StartingLineNumber(e Event) (uint32, bool) {
	if s, ok := e.(SynthStart); ok {
		return s.LineNumber, true
	}
	return 0, false
}

func u32(n uint32) string {
	return strconv.FormatUint(uint64(n), 10)
}
