package models

// Endpoint is the fully resolved request plan for a single operation:
// the substituted URL, the HTTP method, and an optional request body.
// A nil *Endpoint stands for an operation whose method is declared in the
// document but not yet supported by synthesis.
type Endpoint struct {
	URL    string `json:"url"`
	Method string `json:"method"`
	Data   []byte `json:"data,omitempty"`
}

// PlannedCheck pairs a declared operation with its synthesized request plan.
// Endpoint is nil for operations whose method synthesis does not support;
// the runner records those as skipped rather than filtering them out.
type PlannedCheck struct {
	Operation Operation
	Endpoint  *Endpoint
}
