package pipeline

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/KasraF/SnipPyLogTool/internal/model"
)

func writeFile(t *testing.T, path string, lines ...string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o600); err != nil {
		t.Fatal(err)
	}
}

func TestLoad(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a", "snippy.log"),
		"1000,abbreviate.py,synth.start.0.1.3",
		"2000,abbreviate.py,synth.end.0.0,out",
		"2100,palindrome.py,synth.start.0.1.2",
		"2200,palindrome.py,synth.end.0.1,err",
		"bad line",
	)
	writeFile(t, filepath.Join(root, "b", "snippy.log"),
		"1000,palindrome.py,synth.end.4.0",
		"1000,palindrome.py,what.is.this",
	)
	writeFile(t, filepath.Join(root, "c", "ignored.txt"), "1000,palindrome.py,synth.stdout")

	var calls atomic.Int64
	res, err := Load(root, LoadOptions{Workers: 2}, func(current, total int) {
		calls.Add(1)
		if total != 2 {
			t.Errorf("progress total = %d, want 2", total)
		}
	})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if res.TotalFiles != 2 || res.ParsedFiles != 2 || res.FileErrors != 0 {
		t.Errorf("files total=%d parsed=%d errors=%d", res.TotalFiles, res.ParsedFiles, res.FileErrors)
	}
	if calls.Load() != 2 {
		t.Errorf("progress called %d times, want 2", calls.Load())
	}
	if res.SkippedLines != 1 || res.Unrecognized != 1 || res.Faults != 1 {
		t.Errorf("skipped=%d unrecognized=%d faults=%d, want 1 1 1", res.SkippedLines, res.Unrecognized, res.Faults)
	}
	if res.SessionCount != 2 {
		t.Errorf("SessionCount = %d, want 2", res.SessionCount)
	}

	a := res.Files[0]
	if a.Session != "a" || len(a.Reports) != 2 {
		t.Fatalf("first file = %s with %d reports", a.Session, len(a.Reports))
	}
	if a.Reports[0].Task != model.Abbreviate || a.Reports[0].Summary.Successes != 1 {
		t.Errorf("abbreviate report = %+v", a.Reports[0])
	}
	if len(a.Comparison.Rows) != 1 || a.Comparison.Rows[0][0].N != 3 || a.Comparison.Rows[0][1].N != 2 {
		t.Errorf("comparison = %+v", a.Comparison)
	}

	b := res.Files[1]
	if len(b.Faults()) != 1 || !errors.Is(b.Faults()[0].Err, ErrUnmatchedEnd) {
		t.Errorf("second file faults = %+v", b.Faults())
	}
	if !b.Comparison.Empty() {
		t.Errorf("comparison of faulted file = %+v, want empty", b.Comparison)
	}
}

func TestLoad_MissingRoot(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope"), LoadOptions{}, nil)
	if err == nil {
		t.Fatal("expected error for missing root")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("err = %v, want wrapped ErrNotExist", err)
	}
}

func TestLoad_EmptyDir(t *testing.T) {
	res, err := Load(t.TempDir(), LoadOptions{}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if res.TotalFiles != 0 || len(res.Files) != 0 {
		t.Errorf("result = %+v, want empty", res)
	}
}

func TestLoadFiles_PreservesOrder(t *testing.T) {
	root := t.TempDir()
	var files []string
	for _, name := range []string{"p1", "p2", "p3", "p4", "p5", "p6"} {
		path := filepath.Join(root, name, "snippy.log")
		writeFile(t, path, "1,max.py,synth.stdout,"+name)
		files = append(files, path)
	}

	res, err := Load(root, LoadOptions{Workers: 3}, nil)
	if err != nil {
		t.Fatal(err)
	}
	for i, fr := range res.Files {
		if fr.Path != files[i] {
			t.Errorf("Files[%d] = %s, want %s", i, fr.Path, files[i])
		}
	}
}
