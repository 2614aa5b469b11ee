package convert

import (
	"sort"

	"github.com/dot2archimate/converter/internal/mapping"
	"github.com/dot2archimate/converter/internal/result"
)

// Files converts a set of named DOT documents with one shared config.
// Documents are processed in sorted name order, and a failing document
// never aborts its siblings; callers read the tallies.
func Files(inputs map[string][]byte, cfg *mapping.Config) *result.BatchResult {
	if cfg == nil {
		cfg = mapping.DefaultConfig()
	}
	names := make([]string, 0, len(inputs))
	for name := range inputs {
		names = append(names, name)
	}
	sort.Strings(names)

	out := &result.BatchResult{}
	for _, name := range names {
		res := Convert(string(inputs[name]), cfg)
		out.Results = append(out.Results, result.FileResult{Name: name, Result: res})
		if res.Success {
			out.Converted++
		} else {
			out.Failed++
		}
	}
	return out
}
