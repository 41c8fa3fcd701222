package model

import (
	"fmt"
	"strings"
)

// Task is one of the fixed programming exercises a session belongs to.
type Task int

const (
	Abbreviate Task = iota
	CountDuplicates
	MaxAndMin
	Palindrome
)

// Tasks lists every task in classification priority order.
var Tasks = []Task{Abbreviate, CountDuplicates, MaxAndMin, Palindrome}

// taskRules is checked top to bottom; the first rule with a matching
// substring wins. A source containing both "max" and "count" is therefore
// CountDuplicates.
var taskRules = []struct {
	task     Task
	patterns []string
}{
	{Abbreviate, []string{"abbreviate"}},
	{CountDuplicates, []string{"count"}},
	{MaxAndMin, []string{"max", "min"}},
	{Palindrome, []string{"palindrome"}},
}

// ClassifyTask maps a source identifier to its task using case-sensitive
// substring matching. ok is false when no rule matches.
func ClassifyTask(source string) (Task, bool) {
	for _, r := range taskRules {
		for _, p := range r.patterns {
			if strings.Contains(source, p) {
				return r.task, true
			}
		}
	}
	return 0, false
}

func (t Task) String() string {
	switch t {
	case Abbreviate:
		return "Abbreviate"
	case CountDuplicates:
		return "Count Duplicates"
	case MaxAndMin:
		return "Max And Min"
	case Palindrome:
		return "Palindrome"
	}
	return fmt.Sprintf("Task(%d)", int(t))
}

// Slug is the flag and column form of the task name, e.g. "count-duplicates".
func (t Task) Slug() string {
	return strings.ToLower(strings.ReplaceAll(t.String(), " ", "-"))
}

// ParseTask resolves a slug or display name, case-insensitively.
func ParseTask(s string) (Task, error) {
	norm := strings.ToLower(strings.TrimSpace(s))
	for _, t := range Tasks {
		if norm == t.Slug() || norm == strings.ToLower(t.String()) {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown task %q", s)
}

// MarshalText encodes the task as its slug.
func (t Task) MarshalText() ([]byte, error) {
	return []byte(t.Slug()), nil
}
