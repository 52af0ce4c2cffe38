package runner

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/apismoke/apismoke/internal/models"
	"golang.org/x/time/rate"
)

// EventType represents the type of check event
type EventType int

const (
	// EventStarting indicates a check is about to start
	EventStarting EventType = iota
	// EventCompleted indicates a check has completed
	EventCompleted
)

// Event represents an event during check execution
type Event struct {
	Type    EventType
	Planned models.PlannedCheck
	Result  *models.CheckResult // nil for Starting events
	Index   int                 // current check index (0-based)
	Total   int                 // total number of checks
}

// OnEvent is a callback function for check events
type OnEvent func(event Event)

// Config holds runner configuration
type Config struct {
	Timeout     time.Duration // per-request timeout (0 = none)
	BearerToken string        // injected as Authorization: Bearer <token> when set
	RateLimit   float64       // max requests per second (0 = unlimited)
}

// Runner executes synthesized smoke checks against a live service
type Runner struct {
	client  *http.Client
	token   string
	limiter *rate.Limiter
}

// New creates a runner instance from the given configuration
func New(cfg Config) *Runner {
	var limiter *rate.Limiter
	if cfg.RateLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), 1)
	}
	return &Runner{
		client:  &http.Client{Timeout: cfg.Timeout},
		token:   cfg.BearerToken,
		limiter: limiter,
	}
}

// RunOne executes a single planned check and reports its outcome. A nil
// request plan yields a skipped result; request failures are captured in the
// result, never returned.
func (r *Runner) RunOne(ctx context.Context, planned models.PlannedCheck) models.CheckResult {
	op := planned.Operation
	result := models.CheckResult{
		Path:        op.Path,
		Method:      op.Method,
		OperationID: op.OperationID,
	}

	endpoint := planned.Endpoint
	if endpoint == nil {
		result.Skipped = true
		result.Error = fmt.Sprintf("method %s not supported yet", op.Method)
		return result
	}
	result.URL = endpoint.URL
	result.Method = endpoint.Method

	if r.limiter != nil {
		if err := r.limiter.Wait(ctx); err != nil {
			result.Error = fmt.Sprintf("rate limit wait: %v", err)
			return result
		}
	}

	var body *bytes.Reader
	if endpoint.Data != nil {
		body = bytes.NewReader(endpoint.Data)
	}

	var req *http.Request
	var err error
	if body != nil {
		req, err = http.NewRequestWithContext(ctx, endpoint.Method, endpoint.URL, body)
	} else {
		req, err = http.NewRequestWithContext(ctx, endpoint.Method, endpoint.URL, nil)
	}
	if err != nil {
		result.Error = fmt.Sprintf("failed to create request: %v", err)
		return result
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "apismoke/1.0")
	if r.token != "" {
		req.Header.Set("Authorization", "Bearer "+r.token)
	}

	startTime := time.Now()
	resp, err := r.client.Do(req)
	result.Elapsed = time.Since(startTime)

	if err != nil {
		result.Error = fmt.Sprintf("request failed: %v", err)
		return result
	}
	resp.Body.Close()

	result.StatusCode = resp.StatusCode

	// A smoke check passes when the service answers at all without a
	// server-side error. 4xx still proves the endpoint is alive.
	if resp.StatusCode < http.StatusInternalServerError {
		result.Passed = true
	} else {
		result.Error = fmt.Sprintf("server error: status %d", resp.StatusCode)
	}

	return result
}

// RunAll executes every planned check sequentially, in listing order, with
// optional live event reporting. No individual failure aborts the run.
func (r *Runner) RunAll(ctx context.Context, planned []models.PlannedCheck, onEvent OnEvent) models.CheckSummary {
	summary := models.CheckSummary{
		Results: make([]models.CheckResult, 0, len(planned)),
	}
	total := len(planned)

	for i, p := range planned {
		if onEvent != nil {
			onEvent(Event{Type: EventStarting, Planned: p, Index: i, Total: total})
		}

		result := r.RunOne(ctx, p)
		summary.AddResult(result)

		if onEvent != nil {
			onEvent(Event{Type: EventCompleted, Planned: p, Result: &result, Index: i, Total: total})
		}
	}

	return summary
}
