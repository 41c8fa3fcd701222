package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/KasraF/SnipPyLogTool/internal/source"
)

// synthLog writes a log with n synthesis calls per task.
func synthLog(b *testing.B, dir string, n int) string {
	b.Helper()
	var sb strings.Builder
	ms := int64(1_600_000_000_000)
	for _, src := range []string{"abbreviate.py", "count_duplicates.py", "max_min.py", "palindrome.py"} {
		for i := 0; i < n; i++ {
			fmt.Fprintf(&sb, "%d,%s,synth.start.%d.%d.%d\n", ms, src, i, i%40, i%7)
			fmt.Fprintf(&sb, "%d,%s,synth.stdout,line %d\n", ms+5, src, i)
			fmt.Fprintf(&sb, "%d,%s,example.%d.change,a%d,b%d\n", ms+7, src, i%7, i, i)
			fmt.Fprintf(&sb, "%d,%s,synth.end.%d.0,result\n", ms+250, src, i)
			ms += 300
		}
	}
	path := filepath.Join(dir, "snippy.log")
	if err := os.MkdirAll(dir, 0o750); err != nil {
		b.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(sb.String()), 0o600); err != nil {
		b.Fatal(err)
	}
	return path
}

func BenchmarkLoad(b *testing.B) {
	root := b.TempDir()
	for i := 0; i < 16; i++ {
		synthLog(b, filepath.Join(root, fmt.Sprintf("p%02d", i)), 500)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		result, err := Load(root, LoadOptions{}, nil)
		if err != nil {
			b.Fatal(err)
		}
		_ = result
	}
}

func BenchmarkParseFile(b *testing.B) {
	path := synthLog(b, b.TempDir(), 5000)
	df := source.DiscoveredFile{Path: path}

	info, err := os.Stat(path)
	if err != nil {
		b.Fatal(err)
	}
	b.Logf("Benchmarking synthetic file: %.1f KB", float64(info.Size())/1024)
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		result := source.ParseFile(df)
		if result.Err != nil {
			b.Fatal(result.Err)
		}
	}
}

func BenchmarkSummarize(b *testing.B) {
	path := synthLog(b, b.TempDir(), 5000)
	res := source.ParseFile(source.DiscoveredFile{Path: path})
	if res.Err != nil {
		b.Fatal(res.Err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = Analyze(res.File)
	}
}
