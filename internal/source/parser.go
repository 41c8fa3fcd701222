// Package source discovers editor log files and parses them into task logs.
package source

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/KasraF/SnipPyLogTool/internal/event"
	"github.com/KasraF/SnipPyLogTool/internal/logging"
	"github.com/KasraF/SnipPyLogTool/internal/model"
)

// recordPattern is <epochMillis>,<source>,<identifier>[,<payload>].
var recordPattern = regexp.MustCompile(`^(\d+),([^,]+),([^,]+)(?:,(.*))?$`)

// ParseResult holds the output of parsing a single log file.
type ParseResult struct {
	File         *model.LogFile
	Lines        int // non-empty lines read
	Skipped      []SkippedLine
	Unrecognized int
	Err          error
}

// SplitRecord splits one line into its columns. ok is false when the line
// does not have the record shape or the timestamp overflows int64.
func SplitRecord(line string) (Record, bool) {
	line = strings.TrimSuffix(line, "\r")
	m := recordPattern.FindStringSubmatch(line)
	if m == nil {
		return Record{}, false
	}
	ms, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		return Record{}, false
	}
	return Record{
		Millis:     ms,
		Source:     m[2],
		Identifier: m[3],
		Payload:    m[4],
	}, true
}

// ParseFile reads the log file at df.Path and routes every decoded entry to
// its task log. Lines without the record shape are collected in Skipped and
// never decoded. A read error is returned in Err; what was read before the
// error is discarded.
func ParseFile(df DiscoveredFile) ParseResult {
	f, err := os.Open(df.Path)
	if err != nil {
		return ParseResult{Err: err}
	}
	defer func() { _ = f.Close() }()

	return Parse(f, df)
}

// Parse is ParseFile over an arbitrary reader.
func Parse(r io.Reader, df DiscoveredFile) ParseResult {
	res := ParseResult{File: model.NewLogFile(df.Path, df.Session)}
	log := logging.Logger.With("file", df.Path)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 256*1024), 8*1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		text := scanner.Text()
		if strings.TrimSpace(text) == "" {
			continue
		}
		res.Lines++

		rec, ok := SplitRecord(text)
		if !ok {
			res.Skipped = append(res.Skipped, SkippedLine{Number: lineNo, Text: text})
			log.Warn("skipping malformed line", "line", lineNo)
			continue
		}

		ev := event.Decode(rec.Identifier, rec.Payload)
		if u, isUnknown := ev.(event.Unrecognized); isUnknown {
			res.Unrecognized++
			log.Debug("unrecognized event", "line", lineNo, "identifier", u.Original)
		}

		res.File.Add(model.LogEntry{
			Time:   rec.Time(),
			Source: rec.Source,
			Event:  ev,
		})
	}

	if err := scanner.Err(); err != nil {
		return ParseResult{Err: fmt.Errorf("reading %s: %w", df.Path, err)}
	}

	if res.File.Dropped > 0 {
		log.Debug("entries matched no task", "count", res.File.Dropped)
	}

	return res
}
