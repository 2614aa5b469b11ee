package result

// Error represents a fatal conversion diagnostic (parse or configuration failure).
type Error struct {
	Type       string `json:"type"`
	Severity   string `json:"severity"`
	NodeID     string `json:"node_id,omitempty"`
	Message    string `json:"message"`
	Suggestion string `json:"suggestion,omitempty"`
}

// Warning represents a recovered anomaly (e.g. a dropped relationship).
type Warning struct {
	Type       string `json:"type"`
	Severity   string `json:"severity"`
	NodeID     string `json:"node_id,omitempty"`
	Message    string `json:"message"`
	Suggestion string `json:"suggestion,omitempty"`
}

// ConversionResult is the outcome of converting one DOT document.
type ConversionResult struct {
	Success              bool      `json:"success"`
	XML                  []byte    `json:"-"` // ArchiMate XML, set when Success
	Errors               []Error   `json:"errors,omitempty"`
	Warnings             []Warning `json:"warnings,omitempty"`
	DroppedRelationships int       `json:"dropped_relationships,omitempty"`
}

// FileResult pairs a batch input name with its conversion outcome.
type FileResult struct {
	Name   string            `json:"name"`
	Result *ConversionResult `json:"result"`
}

// BatchResult aggregates per-file outcomes of a batch conversion.
// A failed file never aborts its siblings; callers read the tallies.
type BatchResult struct {
	Results   []FileResult `json:"results"`
	Converted int          `json:"converted"`
	Failed    int          `json:"failed"`
}
