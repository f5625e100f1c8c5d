package pipeline

import "time"

// RunStats tracks aggregate counters across a batch run.
type RunStats struct {
	Total       int
	Succeeded   int
	Failed      int
	Cancelled   int // Interrupted mid-search or never started.
	Probes      int // Spine exports across all jobs.
	ErrorProbes int // Probes that failed for an unexpected reason.
	Elapsed     time.Duration
}

// OK reports whether every job exported successfully.
func (s *RunStats) OK() bool {
	return s.Failed == 0 && s.Cancelled == 0 && s.Succeeded == s.Total
}
