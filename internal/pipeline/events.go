package pipeline

import (
	"sort"

	"github.com/KasraF/SnipPyLogTool/internal/event"
	"github.com/KasraF/SnipPyLogTool/internal/model"
)

// KindCounts tallies the entries of a task log by event kind.
func KindCounts(log *model.Log) map[event.Kind]int {
	counts := make(map[event.Kind]int)
	for _, e := range log.Entries {
		counts[e.Event.Kind()]++
	}
	return counts
}

// IdentifierCount is an unrecognized identifier and how often it occurred.
type IdentifierCount struct {
	Identifier string `json:"identifier" yaml:"identifier"`
	Count      int    `json:"count" yaml:"count"`
}

// UnrecognizedIdentifiers lists the identifiers that decoded to
// event.Unrecognized, most frequent first.
func UnrecognizedIdentifiers(log *model.Log) []IdentifierCount {
	seen := make(map[string]int)
	for _, e := range log.Entries {
		if u, ok := e.Event.(event.Unrecognized); ok {
			seen[u.Original]++
		}
	}

	out := make([]IdentifierCount, 0, len(seen))
	for id, n := range seen {
		out = append(out, IdentifierCount{Identifier: id, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Identifier < out[j].Identifier
	})
	return out
}
