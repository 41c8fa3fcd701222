// Package model defines domain types for snippylog entries, logs and summaries.
package model

import (
	"time"

	"github.com/KasraF/SnipPyLogTool/internal/event"
)

// LogEntry is one decoded line of an editor log.
type LogEntry struct {
	Time   time.Time // local wall-clock time
	Source string    // originating file/session identifier
	Event  event.Event
}

// Log holds the entries of one task in arrival order.
// Order is significant: it determines call pairing and durations.
type Log struct {
	Task    Task
	Entries []LogEntry

	// SynthStarts holds the positions in Entries of every SynthStart event.
	SynthStarts []int
}

// NewLog returns an empty log for task.
func NewLog(task Task) *Log {
	return &Log{Task: task}
}

// Append adds e to the end of the log.
func (l *Log) Append(e LogEntry) {
	if _, ok := e.Event.(event.SynthStart); ok {
		l.SynthStarts = append(l.SynthStarts, len(l.Entries))
	}
	l.Entries = append(l.Entries, e)
}

// StartEntries returns the SynthStart entries in order.
func (l *Log) StartEntries() []LogEntry {
	out := make([]LogEntry, len(l.SynthStarts))
	for i, pos := range l.SynthStarts {
		out[i] = l.Entries[pos]
	}
	return out
}

// LogFile groups the entries of one log file by task.
type LogFile struct {
	Path    string
	Session string // parent directory name
	Logs    map[Task]*Log

	Dropped int // entries whose source matched no task
}

// NewLogFile returns an empty LogFile for path.
func NewLogFile(path, session string) *LogFile {
	return &LogFile{
		Path:    path,
		Session: session,
		Logs:    make(map[Task]*Log),
	}
}

// Add routes e to the log of its task. It reports false, and counts the
// entry as dropped, when the source matches no task.
func (f *LogFile) Add(e LogEntry) bool {
	task, ok := ClassifyTask(e.Source)
	if !ok {
		f.Dropped++
		return false
	}
	l, exists := f.Logs[task]
	if !exists {
		l = NewLog(task)
		f.Logs[task] = l
	}
	l.Append(e)
	return true
}

// Tasks returns the tasks present in the file, in priority order.
func (f *LogFile) Tasks() []Task {
	var out []Task
	for _, t := range Tasks {
		if _, ok := f.Logs[t]; ok {
			out = append(out, t)
		}
	}
	return out
}

// EntryCount returns the number of classified entries across all tasks.
func (f *LogFile) EntryCount() int {
	n := 0
	for _, l := range f.Logs {
		n += len(l.Entries)
	}
	return n
}
