// Package metrics records per-task render timings and outcomes.
package metrics

import (
	"time"
)

// Outcomes of a render task.
const (
	OutcomeRendered  = "rendered"
	OutcomeCached    = "cached"
	OutcomeFailed    = "failed"
	OutcomeCancelled = "cancelled"
)

// Metric represents a single resolved render task.
type Metric struct {
	TaskID string `json:"task_id,omitempty"`

	// Attribution
	Page     int    `json:"page"`
	Screen   string `json:"screen,omitempty"`
	Priority int    `json:"priority"`

	// Timing
	QueueSeconds     float64 `json:"queue_seconds,omitempty"`
	ExecutionSeconds float64 `json:"execution_seconds,omitempty"`
	TotalSeconds     float64 `json:"total_seconds,omitempty"`
	Attempts         int     `json:"attempts,omitempty"`

	// Status
	Outcome   string `json:"outcome"`
	ErrorType string `json:"error_type,omitempty"`

	// Metadata
	CreatedAt time.Time `json:"created_at"`
}

// Success reports whether the task produced a frame.
func (m *Metric) Success() bool {
	return m.Outcome == OutcomeRendered || m.Outcome == OutcomeCached
}
