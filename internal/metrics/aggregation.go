package metrics

import (
	"sort"
	"time"
)

// TotalTime returns the total execution time for metrics matching the filter.
func (r *Recorder) TotalTime(f Filter) time.Duration {
	var total float64
	for _, m := range r.List(f, 0) {
		total += m.ExecutionSeconds
	}
	return time.Duration(total * float64(time.Second))
}

// Summary provides a summary of metrics for a filter.
type Summary struct {
	Count          int           `json:"count"`
	RenderedCount  int           `json:"rendered_count"`
	CachedCount    int           `json:"cached_count"`
	FailedCount    int           `json:"failed_count"`
	CancelledCount int           `json:"cancelled_count"`
	HitRate        float64       `json:"hit_rate"`
	TotalTime      time.Duration `json:"total_time"`
	AvgTimeSeconds float64       `json:"avg_time_seconds"`

	// Latency percentiles of rendered tasks (seconds)
	LatencyP50 float64 `json:"latency_p50"`
	LatencyP95 float64 `json:"latency_p95"`
	LatencyP99 float64 `json:"latency_p99"`
	LatencyMin float64 `json:"latency_min"`
	LatencyMax float64 `json:"latency_max"`

	AvgQueueSeconds float64 `json:"avg_queue_seconds"`
}

// GetSummary returns a summary of metrics matching the filter.
func (r *Recorder) GetSummary(f Filter) *Summary {
	metrics := r.List(f, 0)
	s := &Summary{Count: len(metrics)}
	if len(metrics) == 0 {
		return s
	}

	var latencies []float64
	var queued float64
	for _, m := range metrics {
		switch m.Outcome {
		case OutcomeRendered:
			s.RenderedCount++
			s.TotalTime += time.Duration(m.ExecutionSeconds * float64(time.Second))
			queued += m.QueueSeconds
			if m.TotalSeconds > 0 {
				latencies = append(latencies, m.TotalSeconds)
			}
		case OutcomeCached:
			s.CachedCount++
		case OutcomeFailed:
			s.FailedCount++
		case OutcomeCancelled:
			s.CancelledCount++
		}
	}

	if served := s.RenderedCount + s.CachedCount; served > 0 {
		s.HitRate = float64(s.CachedCount) / float64(served)
	}
	if s.RenderedCount > 0 {
		s.AvgTimeSeconds = s.TotalTime.Seconds() / float64(s.RenderedCount)
		s.AvgQueueSeconds = queued / float64(s.RenderedCount)
	}

	if len(latencies) > 0 {
		sort.Float64s(latencies)
		s.LatencyMin = latencies[0]
		s.LatencyMax = latencies[len(latencies)-1]
		s.LatencyP50 = percentile(latencies, 50)
		s.LatencyP95 = percentile(latencies, 95)
		s.LatencyP99 = percentile(latencies, 99)
	}

	return s
}

// percentile calculates the p-th percentile from a sorted slice of values.
func percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if len(sorted) == 1 {
		return sorted[0]
	}

	n := float64(len(sorted))
	idx := (p / 100.0) * (n - 1)

	// Interpolate between floor and ceil indices
	lower := int(idx)
	upper := lower + 1
	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}

	weight := idx - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}
