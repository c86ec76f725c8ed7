package metrics

// CountByOutcome returns task counts keyed by outcome.
func (r *Recorder) CountByOutcome(f Filter) map[string]int {
	breakdown := make(map[string]int)
	for _, m := range r.List(f, 0) {
		breakdown[m.Outcome]++
	}
	return breakdown
}

// CountByPage returns task counts keyed by page index.
func (r *Recorder) CountByPage(f Filter) map[int]int {
	breakdown := make(map[int]int)
	for _, m := range r.List(f, 0) {
		breakdown[m.Page]++
	}
	return breakdown
}

// ErrorsByType returns failed task counts keyed by error type.
func (r *Recorder) ErrorsByType(f Filter) map[string]int {
	failed := false
	f.Success = &failed

	breakdown := make(map[string]int)
	for _, m := range r.List(f, 0) {
		breakdown[m.ErrorType]++
	}
	return breakdown
}
