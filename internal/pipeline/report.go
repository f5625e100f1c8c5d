package pipeline

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/backmassage/spinefit/internal/display"
)

// Logger is the subset of logging.Logger used by the pipeline.
type Logger interface {
	Info(string, ...interface{})
	Success(string, ...interface{})
	Warn(string, ...interface{})
	Error(string, ...interface{})
	Progress(string, ...interface{})
	Debug(bool, string, ...interface{})
}

// Reporter owns the completion counter, the running stats, and the per-job
// output. Every update happens under one mutex, so the counter and the
// lines it produces always agree.
type Reporter struct {
	mu        sync.Mutex
	log       Logger
	progress  bool
	start     time.Time
	now       func() time.Time
	completed int
	stats     RunStats
}

// NewReporter creates a Reporter. When progress is set each completion is
// followed by a "Completed i/N" line.
func NewReporter(log Logger, progress bool) *Reporter {
	return &Reporter{
		log:      log,
		progress: progress,
		start:    time.Now(),
		now:      time.Now,
	}
}

// begin resets the counters for a run of total jobs.
func (r *Reporter) begin(total int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.start = r.now()
	r.completed = 0
	r.stats = RunStats{Total: total}
}

// Started logs the start of a job and the workspace it runs in.
func (r *Reporter) Started(job *Job, workspace string) {
	r.log.Info("Processing %s... (%s)", filepath.Base(job.Input), workspace)
}

// Done records a finished job and prints its result line.
func (r *Reporter) Done(job *Job) {
	r.mu.Lock()
	defer r.mu.Unlock()

	res := job.Result
	r.completed++
	r.stats.Probes += len(res.Search.Attempts)
	r.stats.ErrorProbes += res.Search.ErrorProbes()

	secs := display.FormatSeconds(res.Elapsed)
	switch {
	case res.Succeeded():
		r.stats.Succeeded++
		note := ""
		if n := res.Search.ErrorProbes(); n > 0 {
			note = fmt.Sprintf(" [%d probe errors]", n)
		}
		r.log.Success("Export completed for '%s' scale=%s (%s) output='%s' in %ss%s",
			job.Display, display.FormatScale(res.Search.Scale),
			display.FormatDimensions(res.Width, res.Height), job.Output, secs, note)
	case res.Cancelled():
		r.stats.Cancelled++
		r.log.Warn("Cancelled '%s' output='%s' in %ss", job.Display, job.Output, secs)
	default:
		r.stats.Failed++
		r.log.Error("Failed for '%s' output='%s' in %ss", job.Display, job.Output, secs)
		r.log.Error("  %s", res.Reason())
	}

	if r.progress {
		r.log.Progress("Completed %d/%d time=%s", r.completed, r.stats.Total,
			display.FormatElapsed(r.now().Sub(r.start)))
	}
}

// Skipped counts n jobs that never started because the run was cancelled.
func (r *Reporter) Skipped(n int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stats.Cancelled += n
}

// Stats returns a snapshot of the totals so far.
func (r *Reporter) Stats() RunStats {
	r.mu.Lock()
	defer r.mu.Unlock()
	s := r.stats
	s.Elapsed = r.now().Sub(r.start)
	return s
}
