package pipeline

import (
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/KasraF/SnipPyLogTool/internal/logging"
	"github.com/KasraF/SnipPyLogTool/internal/source"
)

// LoadOptions controls discovery and parsing.
type LoadOptions struct {
	LogName string // file name searched for in directories; defaults to snippy.log
	Workers int    // parse workers; <= 0 means GOMAXPROCS
}

// FileResult is everything derived from one log file.
type FileResult struct {
	source.ParseResult
	Path       string
	Session    string
	Reports    []TaskReport
	Comparison Comparison
}

// Faults returns the reports that ended in a correlation fault.
func (f FileResult) Faults() []TaskReport {
	var out []TaskReport
	for _, r := range f.Reports {
		if !r.OK() {
			out = append(out, r)
		}
	}
	return out
}

// LoadResult holds the output of the full data loading pipeline.
type LoadResult struct {
	Files        []FileResult // in discovery order, including failed files
	TotalFiles   int
	ParsedFiles  int
	FileErrors   int
	SkippedLines int
	Unrecognized int
	Faults       int
	SessionCount int
}

// ProgressFunc is called during loading to report progress.
// current is the number of files processed so far, total is the total count.
type ProgressFunc func(current, total int)

// Load discovers every log file under root and runs each through the
// per-file pipeline on a bounded worker pool. Only a failure to scan root
// is returned; per-file read errors are recorded in FileResult.Err.
func Load(root string, opts LoadOptions, progressFn ProgressFunc) (*LoadResult, error) {
	files, err := source.ScanPath(root, opts.LogName)
	if err != nil {
		return nil, err
	}

	result := &LoadResult{
		TotalFiles:   len(files),
		SessionCount: source.CountSessions(files),
	}
	if len(files) == 0 {
		return result, nil
	}

	results := LoadFiles(files, opts.Workers, progressFn)

	for _, fr := range results {
		if fr.Err != nil {
			result.FileErrors++
			logging.Logger.Error("reading log file", "file", fr.Path, "err", fr.Err)
			continue
		}
		result.ParsedFiles++
		result.SkippedLines += len(fr.Skipped)
		result.Unrecognized += fr.Unrecognized
		for _, r := range fr.Faults() {
			result.Faults++
			logging.Logger.Error("correlation fault", "file", fr.Path, "task", r.Task.Slug(), "err", r.Err)
		}
	}
	result.Files = results

	return result, nil
}

// LoadFiles parses and analyzes files in parallel. Results are returned in
// the order of files.
func LoadFiles(files []source.DiscoveredFile, workers int, progressFn ProgressFunc) []FileResult {
	numWorkers := workers
	if numWorkers < 1 {
		numWorkers = runtime.GOMAXPROCS(0)
	}
	if numWorkers > len(files) {
		numWorkers = len(files)
	}

	work := make(chan int, len(files))
	results := make([]FileResult, len(files))
	var wg sync.WaitGroup
	var processed atomic.Int64

	// Feed work
	for i := range files {
		work <- i
	}
	close(work)

	wg.Add(numWorkers)
	for w := 0; w < numWorkers; w++ {
		go func() {
			defer wg.Done()
			for idx := range work {
				results[idx] = processFile(files[idx])
				n := processed.Add(1)
				if progressFn != nil {
					progressFn(int(n), len(files))
				}
			}
		}()
	}

	wg.Wait()
	return results
}

func processFile(df source.DiscoveredFile) FileResult {
	fr := FileResult{
		ParseResult: source.ParseFile(df),
		Path:        df.Path,
		Session:     df.Session,
	}
	if fr.Err != nil {
		return fr
	}
	fr.Reports = Analyze(fr.File)
	fr.Comparison = Compare(fr.Reports)
	return fr
}
