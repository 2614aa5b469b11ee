// Package convert runs the full conversion pipeline: DOT text in,
// ArchiMate exchange XML out, with structured diagnostics.
package convert

import (
	"errors"

	"github.com/dot2archimate/converter/internal/archimate"
	"github.com/dot2archimate/converter/internal/dot"
	"github.com/dot2archimate/converter/internal/mapping"
	"github.com/dot2archimate/converter/internal/result"
)

// Convert runs one document through parse, classify/resolve, build, and
// serialize. A nil cfg uses the built-in default rule table. Fatal parse
// failures populate Errors and clear Success; recovered anomalies become
// Warnings alongside the produced XML.
func Convert(src string, cfg *mapping.Config) *result.ConversionResult {
	if cfg == nil {
		cfg = mapping.DefaultConfig()
	}
	out := &result.ConversionResult{Success: true}

	graph, err := dot.Parse(src)
	if err != nil {
		out.Success = false
		var perr *dot.ParseError
		if errors.As(err, &perr) {
			out.Errors = append(out.Errors, result.Error{
				Type:       "parse_error",
				Severity:   "error",
				Message:    perr.Error(),
				Suggestion: "Fix the DOT syntax at the reported position",
			})
		} else {
			out.Errors = append(out.Errors, result.Error{
				Type: "parse_error", Severity: "error", Message: err.Error(),
			})
		}
		return out
	}

	model, warnings := archimate.Build(graph, cfg)
	out.Warnings = warnings
	out.DroppedRelationships = len(warnings)
	out.XML = archimate.Serialize(model, cfg.Namespace, cfg.SchemaLocation)
	return out
}
