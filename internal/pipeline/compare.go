package pipeline

import (
	"strconv"

	"github.com/KasraF/SnipPyLogTool/internal/model"
)

// Count is one cell of a comparison; absent cells pad the shorter column.
type Count struct {
	N       uint32
	Present bool
}

func (c Count) String() string {
	if !c.Present {
		return ""
	}
	return strconv.FormatUint(uint64(c.N), 10)
}

// MarshalJSON encodes an absent cell as null.
func (c Count) MarshalJSON() ([]byte, error) {
	if !c.Present {
		return []byte("null"), nil
	}
	return []byte(c.String()), nil
}

// MarshalYAML encodes an absent cell as null.
func (c Count) MarshalYAML() (interface{}, error) {
	if !c.Present {
		return nil, nil
	}
	return c.N, nil
}

// Comparison lines up the per-call example counts of up to two tasks.
// Each row has one cell per entry in Tasks.
type Comparison struct {
	Tasks []model.Task `json:"tasks" yaml:"tasks"`
	Rows  [][]Count    `json:"rows" yaml:"rows"`
}

// Empty reports whether there is nothing to compare.
func (c Comparison) Empty() bool { return len(c.Tasks) == 0 }

// Compare pairs the example counts of the first two successful reports
// position by position. The shorter sequence is padded with absent cells up
// to the length of the longer one. With a single successful report its
// sequence is returned as one column; with none the comparison is empty.
func Compare(reports []TaskReport) Comparison {
	var picked []TaskReport
	for _, r := range reports {
		if r.OK() {
			picked = append(picked, r)
		}
		if len(picked) == 2 {
			break
		}
	}

	var cmp Comparison
	switch len(picked) {
	case 0:
		return cmp
	case 1:
		cmp.Tasks = []model.Task{picked[0].Task}
		for _, n := range picked[0].Summary.ExampleCounts {
			cmp.Rows = append(cmp.Rows, []Count{{N: n, Present: true}})
		}
		return cmp
	}

	cmp.Tasks = []model.Task{picked[0].Task, picked[1].Task}
	for _, pair := range zipLongest(picked[0].Summary.ExampleCounts, picked[1].Summary.ExampleCounts) {
		cmp.Rows = append(cmp.Rows, []Count{pair[0], pair[1]})
	}
	return cmp
}

// zipLongest pairs a and b up to the longer length, marking missing cells absent.
func zipLongest(a, b []uint32) [][2]Count {
	n := max(len(a), len(b))
	out := make([][2]Count, n)
	for i := range n {
		if i < len(a) {
			out[i][0] = Count{N: a[i], Present: true}
		}
		if i < len(b) {
			out[i][1] = Count{N: b[i], Present: true}
		}
	}
	return out
}
