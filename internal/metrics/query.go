package metrics

import (
	"time"
)

// Filter specifies query filters.
type Filter struct {
	Page    *int
	Outcome string
	After   time.Time
	Before  time.Time
	Success *bool // nil = any, true = success only, false = errors only
}

func (f Filter) matches(m *Metric) bool {
	if f.Page != nil && m.Page != *f.Page {
		return false
	}
	if f.Outcome != "" && m.Outcome != f.Outcome {
		return false
	}
	if !f.After.IsZero() && !m.CreatedAt.After(f.After) {
		return false
	}
	if !f.Before.IsZero() && !m.CreatedAt.Before(f.Before) {
		return false
	}
	if f.Success != nil && m.Success() != *f.Success {
		return false
	}
	return true
}

// List returns metrics matching the filter, oldest first. A positive limit
// keeps only the most recent matches.
func (r *Recorder) List(f Filter, limit int) []Metric {
	var out []Metric
	for _, m := range r.snapshot() {
		if f.matches(&m) {
			out = append(out, m)
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[len(out)-limit:]
	}
	return out
}
