// Package summary defines the summarization gateway contract and the
// prompt assembly helpers shared by every summarizing use case.
package summary

import (
	"context"
	"time"
)

// Status tells callers how a summary was produced.
type Status string

const (
	// StatusOK means Text holds a generated summary.
	StatusOK Status = "ok"
	// StatusNoActivity means there was nothing to summarize and Text holds a
	// canned message. The provider was not called.
	StatusNoActivity Status = "no_activity"
	// StatusUnavailable means generation failed; Reason says why.
	StatusUnavailable Status = "unavailable"
	// StatusQuotaExhausted means the provider rejected the call for quota or
	// billing reasons. Callers should not ask again before RetryAfter.
	StatusQuotaExhausted Status = "quota_exhausted"
)

// Result is the outcome of a summarization request.
type Result struct {
	Status     Status
	Text       string
	Reason     string
	RetryAfter time.Duration
}

// OK reports whether the result carries usable text.
func (r Result) OK() bool {
	return r.Status == StatusOK || r.Status == StatusNoActivity
}

// Generated wraps provider text.
func Generated(text string) Result {
	return Result{Status: StatusOK, Text: text}
}

// NoActivity wraps a canned message for empty inputs.
func NoActivity(message string) Result {
	return Result{Status: StatusNoActivity, Text: message}
}

// Unavailable reports a failed generation.
func Unavailable(reason string) Result {
	return Result{Status: StatusUnavailable, Reason: reason}
}

// QuotaExhausted reports a provider quota rejection.
func QuotaExhausted(reason string, retryAfter time.Duration) Result {
	return Result{Status: StatusQuotaExhausted, Reason: reason, RetryAfter: retryAfter}
}

// Summarizer turns a prompt into a short plain-text summary. It never
// returns an error: failures are reported through Result.Status.
type Summarizer interface {
	Summarize(ctx context.Context, prompt string) Result
}
