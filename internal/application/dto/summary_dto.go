package dto

import (
	"math"

	"gitglimpse-core/internal/domain/summary"
)

// SummaryFields is embedded in every summarizing response. Summary is only
// set when SummaryStatus is "ok" or "no_activity".
type SummaryFields struct {
	Summary           string `json:"summary,omitempty"`
	SummaryStatus     string `json:"summary_status,omitempty"`
	SummaryError      string `json:"summary_error,omitempty"`
	RetryAfterSeconds int    `json:"retry_after_seconds,omitempty"`
	Note              string `json:"note,omitempty"`
}

// NewSummaryFields converts a gateway result
func NewSummaryFields(result summary.Result, note string) SummaryFields {
	fields := SummaryFields{
		SummaryStatus: string(result.Status),
		Note:          note,
	}
	if result.OK() {
		fields.Summary = result.Text
	} else {
		fields.SummaryError = result.Reason
	}
	if result.Status == summary.StatusQuotaExhausted {
		fields.RetryAfterSeconds = int(math.Ceil(result.RetryAfter.Seconds()))
	}
	return fields
}
