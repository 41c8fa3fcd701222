package source

import "time"

// DefaultLogName is the conventional file name of an editor log.
const DefaultLogName = "snippy.log"

// DiscoveredFile represents a log file found during scanning.
type DiscoveredFile struct {
	Path    string
	Session string // parent directory name (e.g. "participant-07")
}

// Record is one well-formed line of a log file, split into its columns.
type Record struct {
	Millis     int64  // milliseconds since the Unix epoch
	Source     string // originating file/session identifier
	Identifier string // dot-separated event identifier
	Payload    string // verbatim remainder, may contain commas
}

// Time converts the record timestamp to local wall-clock time.
func (r Record) Time() time.Time {
	return time.UnixMilli(r.Millis)
}

// SkippedLine is a line that did not match the record shape.
type SkippedLine struct {
	Number int // 1-based
	Text   string
}
