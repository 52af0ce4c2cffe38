package models

import "time"

// CheckResult represents the outcome of smoke-testing a single endpoint
type CheckResult struct {
	// Endpoint details
	URL         string `json:"url"`
	Path        string `json:"path"`
	Method      string `json:"method"`
	OperationID string `json:"operation_id,omitempty"`

	// Outcome
	Passed  bool   `json:"passed"`
	Skipped bool   `json:"skipped"`
	Error   string `json:"error,omitempty"`

	// Response details
	StatusCode int           `json:"status_code"`
	Elapsed    time.Duration `json:"elapsed_ns"`
}

// ElapsedMillis returns the elapsed time in milliseconds for display
func (r CheckResult) ElapsedMillis() float64 {
	return float64(r.Elapsed.Microseconds()) / 1000
}

// CheckSummary represents the overall smoke-test results
type CheckSummary struct {
	TotalChecks int           `json:"total_checks"`
	Passed      int           `json:"passed"`
	Failed      int           `json:"failed"`
	Skipped     int           `json:"skipped"`
	Results     []CheckResult `json:"results"`
}

// AddResult adds a check result to the summary
func (s *CheckSummary) AddResult(result CheckResult) {
	s.TotalChecks++
	s.Results = append(s.Results, result)
	switch {
	case result.Skipped:
		s.Skipped++
	case result.Passed:
		s.Passed++
	default:
		s.Failed++
	}
}
