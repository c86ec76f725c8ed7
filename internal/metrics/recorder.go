package metrics

import (
	"sync"
	"time"
)

// DefaultCapacity bounds the number of metrics a Recorder retains.
const DefaultCapacity = 4096

// Recorder keeps the most recent metrics in memory. It is safe for
// concurrent use; a nil *Recorder discards everything.
type Recorder struct {
	mu       sync.Mutex
	capacity int
	buf      []Metric
	next     int
	full     bool
	total    int64
}

// NewRecorder creates a recorder retaining up to capacity metrics.
func NewRecorder(capacity int) *Recorder {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Recorder{
		capacity: capacity,
		buf:      make([]Metric, capacity),
	}
}

// Record stores a metric, overwriting the oldest once full.
func (r *Recorder) Record(m Metric) {
	if r == nil {
		return
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now()
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.buf[r.next] = m
	r.next = (r.next + 1) % r.capacity
	if r.next == 0 {
		r.full = true
	}
	r.total++
}

// Total returns how many metrics were ever recorded.
func (r *Recorder) Total() int64 {
	if r == nil {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.total
}

// snapshot returns retained metrics oldest first.
func (r *Recorder) snapshot() []Metric {
	if r == nil {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.full {
		out := make([]Metric, r.next)
		copy(out, r.buf[:r.next])
		return out
	}
	out := make([]Metric, 0, r.capacity)
	out = append(out, r.buf[r.next:]...)
	out = append(out, r.buf[:r.next]...)
	return out
}

// Reset drops all retained metrics.
func (r *Recorder) Reset() {
	if r == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.buf = make([]Metric, r.capacity)
	r.next = 0
	r.full = false
}
