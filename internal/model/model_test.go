package model

import (
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/KasraF/SnipPyLogTool/internal/event"
)

func TestClassifyTask(t *testing.T) {
	tests := []struct {
		source string
		want   Task
		wantOK bool
	}{
		{"abbreviate_editor_state.py", Abbreviate, true},
		{"5_count_duplicates.py", CountDuplicates, true},
		{"max_and_min.py", MaxAndMin, true},
		{"find_min.py", MaxAndMin, true},
		{"is_palindrome.py", Palindrome, true},
		// Priority: count beats max, abbreviate beats everything.
		{"count_max.py", CountDuplicates, true},
		{"abbreviate_palindrome_count.py", Abbreviate, true},
		{"palindrome_min.py", MaxAndMin, true},
		// Matching is case-sensitive.
		{"Palindrome.py", 0, false},
		{"8_editor_state.py", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			got, ok := ClassifyTask(tt.source)
			if ok != tt.wantOK || (ok && got != tt.want) {
				t.Errorf("ClassifyTask(%q) = (%v, %v), want (%v, %v)", tt.source, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestTaskNames(t *testing.T) {
	tests := []struct {
		task Task
		name string
		slug string
	}{
		{Abbreviate, "Abbreviate", "abbreviate"},
		{CountDuplicates, "Count Duplicates", "count-duplicates"},
		{MaxAndMin, "Max And Min", "max-and-min"},
		{Palindrome, "Palindrome", "palindrome"},
	}
	for _, tt := range tests {
		if tt.task.String() != tt.name {
			t.Errorf("String() = %q, want %q", tt.task.String(), tt.name)
		}
		if tt.task.Slug() != tt.slug {
			t.Errorf("Slug() = %q, want %q", tt.task.Slug(), tt.slug)
		}
		for _, in := range []string{tt.slug, tt.name, " " + tt.name + " "} {
			got, err := ParseTask(in)
			if err != nil || got != tt.task {
				t.Errorf("ParseTask(%q) = (%v, %v), want %v", in, got, err, tt.task)
			}
		}
	}
	if _, err := ParseTask("fizzbuzz"); err == nil {
		t.Error("ParseTask(fizzbuzz) succeeded, want error")
	}
}

func TestLogAppendTracksStarts(t *testing.T) {
	base := time.UnixMilli(1000)
	l := NewLog(Palindrome)
	l.Append(LogEntry{Time: base, Source: "p.py", Event: event.FocusExit{}})
	l.Append(LogEntry{Time: base, Source: "p.py", Event: event.SynthStart{Index: 0, ExampleCount: 2}})
	l.Append(LogEntry{Time: base, Source: "p.py", Event: event.SynthEnd{Index: 0}})
	l.Append(LogEntry{Time: base, Source: "p.py", Event: event.SynthStart{Index: 1, ExampleCount: 3}})

	if len(l.Entries) != 4 {
		t.Fatalf("len(Entries) = %d, want 4", len(l.Entries))
	}
	if len(l.SynthStarts) != 2 || l.SynthStarts[0] != 1 || l.SynthStarts[1] != 3 {
		t.Fatalf("SynthStarts = %v, want [1 3]", l.SynthStarts)
	}
	starts := l.StartEntries()
	if got := starts[1].Event.(event.SynthStart).ExampleCount; got != 3 {
		t.Errorf("second start ExampleCount = %d, want 3", got)
	}
}

func TestLogFileRouting(t *testing.T) {
	f := NewLogFile("/tmp/snippy.log", "tmp")
	now := time.Now()

	if !f.Add(LogEntry{Time: now, Source: "is_palindrome.py", Event: event.FocusExit{}}) {
		t.Fatal("palindrome entry was dropped")
	}
	if !f.Add(LogEntry{Time: now, Source: "abbreviate.py", Event: event.FocusExit{}}) {
		t.Fatal("abbreviate entry was dropped")
	}
	if f.Add(LogEntry{Time: now, Source: "scratch.py", Event: event.FocusExit{}}) {
		t.Fatal("unclassified entry was routed")
	}

	tasks := f.Tasks()
	if len(tasks) != 2 || tasks[0] != Abbreviate || tasks[1] != Palindrome {
		t.Errorf("Tasks() = %v, want [Abbreviate Palindrome]", tasks)
	}
	if f.Dropped != 1 {
		t.Errorf("Dropped = %d, want 1", f.Dropped)
	}
	if f.EntryCount() != 2 {
		t.Errorf("EntryCount() = %d, want 2", f.EntryCount())
	}
}

func TestRatio(t *testing.T) {
	if s := Ratio(3, 0); s.Valid() {
		t.Errorf("Ratio(3, 0) is defined")
	}
	if s := Ratio(0, 0); s.Format(2) != "n/a" {
		t.Errorf("Ratio(0, 0).Format = %q, want n/a", s.Format(2))
	}
	s := Ratio(3, 2)
	v, ok := s.Value()
	if !ok || v != 1.5 {
		t.Errorf("Ratio(3, 2) = (%v, %v), want (1.5, true)", v, ok)
	}
	if s.Format(3) != "1.500" {
		t.Errorf("Format(3) = %q, want 1.500", s.Format(3))
	}
	if z := Ratio(0, 4); !z.Valid() || z.Format(1) != "0.0" {
		t.Errorf("Ratio(0, 4) = %v, want defined 0", z)
	}
	if v, _ := Ratio(1, 3).Value(); math.IsNaN(v) || math.IsInf(v, 0) {
		t.Errorf("Ratio(1, 3) = %v", v)
	}
}

func TestStatJSON(t *testing.T) {
	out, err := json.Marshal(struct {
		A Stat `json:"a"`
		B Stat `json:"b"`
	}{A: Defined(2.5)})
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != `{"a":2.5,"b":null}` {
		t.Errorf("json = %s", out)
	}
}

func TestCallRowOutcome(t *testing.T) {
	ok := CallRow{ExitCode: 0, Duration: 1500 * time.Millisecond}
	if !ok.Succeeded() || ok.Outcome() != "ok" || ok.Seconds() != 1.5 {
		t.Errorf("successful row = %+v (%s, %v)", ok, ok.Outcome(), ok.Seconds())
	}
	bad := CallRow{ExitCode: 2}
	if bad.Succeeded() || bad.Outcome() != "exit 2" {
		t.Errorf("failed row outcome = %q", bad.Outcome())
	}
}
