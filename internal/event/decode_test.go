package event

import (
	"fmt"
	"testing"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name       string
		identifier string
		payload    string
		want       Event
	}{
		{"synth start", "synth.start.1.5.3", "", SynthStart{Index: 1, LineNumber: 5, ExampleCount: 3}},
		{"synth end ok", "synth.end.1.0", "x = 1", SynthEnd{Index: 1, ExitCode: 0, Result: "x = 1"}},
		{"synth end negative exit", "synth.end.4.-1", "", SynthEnd{Index: 4, ExitCode: -1}},
		{"stdout", "synth.stdout", "hello, world", SynthStdOut{Text: "hello, world"}},
		{"stderr", "synth.stderr", "Traceback", SynthStdErr{Text: "Traceback"}},
		{"stderr old spelling", "synth.sterr", "oops", SynthStdErr{Text: "oops"}},
		{"focus default", "focus.projectionBox.focus.default", "rs", FocusDefault{Text: "rs"}},
		{"focus custom", "focus.projectionBox.focus.custom", "rs", FocusCustom{Text: "rs"}},
		{"focus exit ignores payload", "focus.projectionBox.exit", "junk", FocusExit{}},
		{"example blur", "focus.example.2.blur", "'ab'", ExampleBlur{Index: 2, Content: "'ab'"}},
		{"example focus", "focus.example.2.focus", "'ab'", ExampleFocus{Index: 2, Content: "'ab'"}},
		{"example change", "example.7.change", "foo,bar", ExampleChanged{Index: 7, Before: "foo", After: "bar"}},
		{"example change extra commas", "example.7.change", "a,b,c", ExampleChanged{Index: 7, Before: "a", After: "b"}},
		{"example change empty sides", "example.0.change", ",", ExampleChanged{Index: 0}},
		{"example include", "example.3.include", "'x'", ExampleIncluded{Index: 3, Content: "'x'"}},
		{"example exclude", "example.3.exclude", "'x'", ExampleExcluded{Index: 3, Content: "'x'"}},
		{"example reset ignores payload", "example.all.reset", "junk", ExampleAllReset{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Decode(tt.identifier, tt.payload)
			if got != tt.want {
				t.Errorf("Decode(%q, %q) = %#v, want %#v", tt.identifier, tt.payload, got, tt.want)
			}
		})
	}
}

func TestDecode_Unrecognized(t *testing.T) {
	tests := []struct {
		identifier string
		payload    string
	}{
		{"", ""},
		{"synth", ""},
		{"synth.start", ""},
		{"synth.start.1.2", ""},
		{"synth.start.1.2.3.4", ""},
		{"synth.start.a.2.3", ""},
		{"synth.start.1.-2.3", ""},
		{"synth.start.4294967296.1.1", ""},
		{"synth.end.1", ""},
		{"synth.end.1.x", ""},
		{"synth.end.1.99999999999", ""},
		{"synth.stdout.extra", ""},
		{"synth.restart", ""},
		{"focus", ""},
		{"focus.projectionBox", ""},
		{"focus.projectionBox.focus", ""},
		{"focus.projectionBox.focus.other", ""},
		{"focus.projectionBox.exit.now", ""},
		{"focus.example.x.blur", ""},
		{"focus.example.1.hover", ""},
		{"focus.example.1", ""},
		{"example", ""},
		{"example.all", ""},
		{"example.all.clear", ""},
		{"example.one.change", "a,b"},
		{"example.1.change", "no comma"},
		{"example.1.rename", ""},
		{"example.1.change.now", "a,b"},
		{"Synth.start.1.2.3", ""},
		{"unknown.event", "payload"},
	}

	for _, tt := range tests {
		t.Run(tt.identifier, func(t *testing.T) {
			got := Decode(tt.identifier, tt.payload)
			u, ok := got.(Unrecognized)
			if !ok {
				t.Fatalf("Decode(%q, %q) = %#v, want Unrecognized", tt.identifier, tt.payload, got)
			}
			if u.Original != tt.identifier {
				t.Errorf("Original = %q, want %q", u.Original, tt.identifier)
			}
		})
	}
}

func TestSynthStartRoundTrip(t *testing.T) {
	values := []uint32{0, 1, 7, 42, 65535, 4294967295}
	for _, i := range values {
		for _, l := range values {
			for _, e := range values {
				id := fmt.Sprintf("synth.start.%d.%d.%d", i, l, e)
				ev, ok := Decode(id, "").(SynthStart)
				if !ok {
					t.Fatalf("Decode(%q) did not produce SynthStart", id)
				}
				if ev.Index != i || ev.LineNumber != l || ev.ExampleCount != e {
					t.Fatalf("Decode(%q) = %+v", id, ev)
				}
				if got := ev.Identifier(); got != id {
					t.Fatalf("Identifier() = %q, want %q", got, id)
				}
			}
		}
	}
}

func TestIdentifierRoundTrip(t *testing.T) {
	events := []Event{
		SynthStart{Index: 3, LineNumber: 12, ExampleCount: 2},
		SynthEnd{Index: 3, ExitCode: 1, Result: "err"},
		SynthStdOut{Text: "out"},
		SynthStdErr{Text: "err"},
		FocusDefault{Text: "d"},
		FocusCustom{Text: "c"},
		FocusExit{},
		ExampleBlur{Index: 1, Content: "b"},
		ExampleFocus{Index: 1, Content: "f"},
		ExampleChanged{Index: 9, Before: "x", After: "y"},
		ExampleIncluded{Index: 2, Content: "i"},
		ExampleExcluded{Index: 2, Content: "e"},
		ExampleAllReset{},
	}

	for _, ev := range events {
		t.Run(string(ev.Kind()), func(t *testing.T) {
			got := Decode(ev.Identifier(), ev.Payload())
			if got != ev {
				t.Errorf("Decode(Identifier(), Payload()) = %#v, want %#v", got, ev)
			}
		})
	}
}

func TestCorrelationIndex(t *testing.T) {
	tests := []struct {
		ev     Event
		want   uint32
		wantOK bool
	}{
		{SynthStart{Index: 4}, 4, true},
		{SynthEnd{Index: 5}, 5, true},
		{ExampleBlur{Index: 6}, 6, true},
		{ExampleFocus{Index: 7}, 7, true},
		{ExampleChanged{Index: 8}, 8, true},
		{ExampleIncluded{Index: 9}, 9, true},
		{ExampleExcluded{Index: 10}, 10, true},
		{SynthStdOut{}, 0, false},
		{SynthStdErr{}, 0, false},
		{FocusDefault{}, 0, false},
		{FocusCustom{}, 0, false},
		{FocusExit{}, 0, false},
		{ExampleAllReset{}, 0, false},
		{Unrecognized{Original: "x"}, 0, false},
	}

	for _, tt := range tests {
		got, ok := CorrelationIndex(tt.ev)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("CorrelationIndex(%#v) = (%d, %v), want (%d, %v)", tt.ev, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestStartingLineNumber(t *testing.T) {
	if n, ok := StartingLineNumber(SynthStart{Index: 1, LineNumber: 17}); !ok || n != 17 {
		t.Errorf("StartingLineNumber(SynthStart) = (%d, %v), want (17, true)", n, ok)
	}
	for _, ev := range []Event{SynthEnd{Index: 1}, ExampleChanged{}, Unrecognized{}} {
		if _, ok := StartingLineNumber(ev); ok {
			t.Errorf("StartingLineNumber(%#v) reported a line number", ev)
		}
	}
}

// FuzzDecode checks that decoding arbitrary input never panics and that the
// fallback always carries the identifier verbatim.
func FuzzDecode(f *testing.F) {
	f.Add("synth.start.1.5.3", "")
	f.Add("synth.end.1.0", "result")
	f.Add("example.7.change", "foo,bar")
	f.Add("focus.example.2.blur", "x")
	f.Add("focus.projectionBox.focus.custom", "")
	f.Add("....", ",,,")
	f.Add("example..change", "")
	f.Add("synth.end.-1.0", "")

	f.Fuzz(func(t *testing.T, identifier, payload string) {
		ev := Decode(identifier, payload)
		if ev == nil {
			t.Fatalf("Decode(%q, %q) returned nil", identifier, payload)
		}
		if u, ok := ev.(Unrecognized); ok && u.Original != identifier {
			t.Fatalf("Unrecognized.Original = %q, want %q", u.Original, identifier)
		}
	})
}
