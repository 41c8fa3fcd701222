package source

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/KasraF/SnipPyLogTool/internal/event"
	"github.com/KasraF/SnipPyLogTool/internal/model"
)

// writeLog creates a temp snippy.log file and returns a DiscoveredFile for it.
func writeLog(t *testing.T, lines ...string) DiscoveredFile {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, DefaultLogName)
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	return DiscoveredFile{
		Path:    path,
		Session: "test-session",
	}
}

func TestSplitRecord(t *testing.T) {
	tests := []struct {
		name   string
		line   string
		want   Record
		wantOK bool
	}{
		{"no payload", "1000,a.py,synth.start.1.5.3", Record{1000, "a.py", "synth.start.1.5.3", ""}, true},
		{"empty payload", "1000,a.py,synth.end.1.0,", Record{1000, "a.py", "synth.end.1.0", ""}, true},
		{"payload with commas", "7,count.py,example.2.change,a,b,c", Record{7, "count.py", "example.2.change", "a,b,c"}, true},
		{"payload keeps spaces", "7,p.py,synth.stdout, hello ", Record{7, "p.py", "synth.stdout", " hello "}, true},
		{"crlf", "7,p.py,synth.stdout,x\r", Record{7, "p.py", "synth.stdout", "x"}, true},
		{"zero epoch", "0,p.py,focus.projectionBox.exit", Record{0, "p.py", "focus.projectionBox.exit", ""}, true},
		{"negative epoch", "-5,p.py,synth.stdout", Record{}, false},
		{"epoch overflow", "99999999999999999999,p.py,synth.stdout", Record{}, false},
		{"missing identifier", "1000,p.py", Record{}, false},
		{"empty source", "1000,,synth.stdout", Record{}, false},
		{"not a number", "abc,p.py,synth.stdout", Record{}, false},
		{"empty", "", Record{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := SplitRecord(tt.line)
			if ok != tt.wantOK {
				t.Fatalf("SplitRecord(%q) ok = %v, want %v", tt.line, ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("SplitRecord(%q) = %+v, want %+v", tt.line, got, tt.want)
			}
		})
	}
}

func TestRecordTimeIsLocal(t *testing.T) {
	r := Record{Millis: 1500}
	want := time.UnixMilli(1500)
	if !r.Time().Equal(want) || r.Time().Location() != time.Local {
		t.Errorf("Time() = %v, want %v in local time", r.Time(), want)
	}
}

func TestParseFile_RoutesByTask(t *testing.T) {
	df := writeLog(t,
		"1000,palindrome.py,synth.start.0.4.2",
		"1500,palindrome.py,synth.end.0.0,x = 1",
		"1600,abbreviate.py,example.1.change,old,new",
		"1700,notes.txt,synth.stdout,ignored",
	)

	res := ParseFile(df)
	if res.Err != nil {
		t.Fatalf("unexpected error: %v", res.Err)
	}
	if res.Lines != 4 {
		t.Errorf("Lines = %d, want 4", res.Lines)
	}
	if res.File.Session != "test-session" {
		t.Errorf("Session = %q, want test-session", res.File.Session)
	}
	if res.File.Dropped != 1 {
		t.Errorf("Dropped = %d, want 1", res.File.Dropped)
	}

	pal := res.File.Logs[model.Palindrome]
	if pal == nil || len(pal.Entries) != 2 {
		t.Fatalf("palindrome log = %+v, want 2 entries", pal)
	}
	if got := pal.Entries[1].Event; got != (event.SynthEnd{Index: 0, ExitCode: 0, Result: "x = 1"}) {
		t.Errorf("second entry = %#v", got)
	}
	if !pal.Entries[0].Time.Equal(time.UnixMilli(1000)) {
		t.Errorf("Time = %v, want %v", pal.Entries[0].Time, time.UnixMilli(1000))
	}

	abbr := res.File.Logs[model.Abbreviate]
	if abbr == nil || abbr.Entries[0].Event != (event.ExampleChanged{Index: 1, Before: "old", After: "new"}) {
		t.Errorf("abbreviate log = %+v", abbr)
	}
}

func TestParseFile_MalformedLines(t *testing.T) {
	df := writeLog(t,
		"garbage",
		"1000,palindrome.py,synth.stdout,hi",
		"",
		"1000,palindrome.py",
		"1001,palindrome.py,synth.bogus",
	)

	res := ParseFile(df)
	if res.Err != nil {
		t.Fatalf("unexpected error: %v", res.Err)
	}
	// Malformed lines should be skipped, not cause a fatal error.
	if len(res.Skipped) != 2 {
		t.Fatalf("Skipped = %+v, want 2 lines", res.Skipped)
	}
	if res.Skipped[0].Number != 1 || res.Skipped[1].Number != 4 {
		t.Errorf("skipped line numbers = %d, %d, want 1, 4", res.Skipped[0].Number, res.Skipped[1].Number)
	}
	if res.Skipped[1].Text != "1000,palindrome.py" {
		t.Errorf("skipped text = %q", res.Skipped[1].Text)
	}
	if res.Unrecognized != 1 {
		t.Errorf("Unrecognized = %d, want 1", res.Unrecognized)
	}
	if n := len(res.File.Logs[model.Palindrome].Entries); n != 2 {
		t.Errorf("palindrome entries = %d, want 2", n)
	}
}

func TestParseFile_EmptyFile(t *testing.T) {
	df := writeLog(t)
	res := ParseFile(df)
	if res.Err != nil {
		t.Fatalf("unexpected error on empty file: %v", res.Err)
	}
	if res.Lines != 0 || len(res.File.Logs) != 0 {
		t.Error("expected no entries for empty file")
	}
}

func TestParseFile_Missing(t *testing.T) {
	res := ParseFile(DiscoveredFile{Path: filepath.Join(t.TempDir(), "nope.log")})
	if res.Err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestParse_PreservesArrivalOrder(t *testing.T) {
	// Timestamps go backwards; order must follow the file, not the clock.
	in := strings.Join([]string{
		"3000,max.py,synth.start.0.1.1",
		"1000,max.py,synth.stdout,a",
		"2000,max.py,synth.end.0.0",
	}, "\n")

	res := Parse(strings.NewReader(in), DiscoveredFile{Path: "mem"})
	entries := res.File.Logs[model.MaxAndMin].Entries
	kinds := []event.Kind{kindOf(entries[0]), kindOf(entries[1]), kindOf(entries[2])}
	want := []event.Kind{event.KindSynthStart, event.KindSynthStdOut, event.KindSynthEnd}
	for i := range want {
		if kinds[i] != want[i] {
			t.Fatalf("kinds = %v, want %v", kinds, want)
		}
	}
}

func kindOf(e model.LogEntry) event.Kind { return e.Event.Kind() }

func TestScanPath(t *testing.T) {
	root := t.TempDir()
	for _, rel := range []string{
		"p01/snippy.log",
		"p02/nested/snippy.log",
		"p02/other.log",
	} {
		path := filepath.Join(root, rel)
		if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, nil, 0o600); err != nil {
			t.Fatal(err)
		}
	}

	files, err := ScanPath(root, "")
	if err != nil {
		t.Fatalf("ScanPath: %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("found %d files, want 2: %+v", len(files), files)
	}
	if files[0].Session != "p01" || files[1].Session != "nested" {
		t.Errorf("sessions = %q, %q", files[0].Session, files[1].Session)
	}
	if CountSessions(files) != 2 {
		t.Errorf("CountSessions = %d, want 2", CountSessions(files))
	}

	// A file root is taken as-is, whatever its name.
	single, err := ScanPath(filepath.Join(root, "p02", "other.log"), "")
	if err != nil || len(single) != 1 || single[0].Session != "p02" {
		t.Errorf("ScanPath(file) = %+v, %v", single, err)
	}

	if _, err := ScanPath(filepath.Join(root, "missing"), ""); err == nil {
		t.Error("expected error for missing root")
	}
}

// FuzzSplitRecord checks that the splitter never panics and that accepted
// lines keep commas out of the fixed columns.
func FuzzSplitRecord(f *testing.F) {
	f.Add("1000,a.py,synth.start.1.5.3")
	f.Add("1000,a.py,example.1.change,a,b")
	f.Add("1000,a.py,synth.stdout,")
	f.Add(",,,")
	f.Add("1,2,3,4\r")
	f.Add("")

	f.Fuzz(func(t *testing.T, line string) {
		rec, ok := SplitRecord(line)
		if !ok {
			return
		}
		if rec.Millis < 0 {
			t.Fatalf("negative timestamp from %q", line)
		}
		if strings.Contains(rec.Source, ",") || strings.Contains(rec.Identifier, ",") {
			t.Fatalf("comma in source/identifier: %+v", rec)
		}
	})
}
