package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/backmassage/spinefit/internal/artifact"
	"github.com/backmassage/spinefit/internal/probe"
	"github.com/backmassage/spinefit/internal/search"
	"github.com/backmassage/spinefit/internal/workspace"
)

// Job is one project export.
type Job struct {
	Input   string // Project file.
	Display string // Label used in log lines.
	Output  string // Export folder.
	Result  Result // Filled in once the job finishes.
}

// Result describes how a Job ended.
type Result struct {
	Search  search.Result
	Width   int // Page dimensions; zero when unknown.
	Height  int
	Elapsed time.Duration
	Err     error // Setup or filesystem failure; Search is empty when set.
}

// Succeeded reports whether the job exported at a confirmed scale.
func (r Result) Succeeded() bool {
	return r.Err == nil && r.Search.Succeeded()
}

// Cancelled reports whether the job was cut short by cancellation.
func (r Result) Cancelled() bool {
	if r.Err != nil {
		return errors.Is(r.Err, context.Canceled) || errors.Is(r.Err, context.DeadlineExceeded)
	}
	return r.Search.Status == search.Cancelled
}

// Reason returns a short explanation for a failed job.
func (r Result) Reason() string {
	if r.Err != nil {
		return r.Err.Error()
	}
	reason := r.Search.Status.String()
	if n := r.Search.ErrorProbes(); n > 0 {
		reason += fmt.Sprintf(" (%d probe errors)", n)
	}
	if last, ok := r.Search.LastError(); ok {
		reason += ", last error: " + firstLine(last)
	}
	return reason
}

// firstLine returns the first non-empty line of a failed probe's detail,
// falling back to its error.
func firstLine(out probe.Outcome) string {
	for _, line := range strings.Split(out.Detail, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			return line
		}
	}
	if out.Err != nil {
		return out.Err.Error()
	}
	return out.Kind.String()
}

// runJob executes a single job: output folder, workspace, search, page
// dimensions, and publishing the confirmed export. The workspace is removed
// on every path.
func (o *Orchestrator) runJob(ctx context.Context, job *Job) Result {
	start := time.Now()
	res := o.searchJob(ctx, job)
	res.Elapsed = time.Since(start)
	return res
}

func (o *Orchestrator) searchJob(ctx context.Context, job *Job) Result {
	if err := ctx.Err(); err != nil {
		return Result{Err: err}
	}
	if err := os.MkdirAll(job.Output, 0o755); err != nil {
		return Result{Err: fmt.Errorf("create output folder: %w", err)}
	}

	ws, err := workspace.New(o.TempDir, o.Template)
	if err != nil {
		return Result{Err: err}
	}
	defer func() {
		if err := ws.Remove(); err != nil {
			o.Reporter.log.Warn("Cannot remove workspace %s: %v", ws.Dir(), err)
		}
	}()
	o.Reporter.Started(job, ws.Dir())

	res := Result{Search: search.Run(ctx, o.NewProber(job, ws), o.Domain, o.Policy)}
	if !res.Search.Succeeded() {
		return res
	}

	// The confirmed export is the last one Spine wrote into staging.
	staging := ws.StagingDir()
	if pages, err := artifact.Find(staging, o.ArtifactExt); err != nil || len(pages) == 0 {
		o.Reporter.log.Warn("Cannot find exported page for %s", job.Display)
	} else if res.Width, res.Height, err = artifact.Dimensions(pages[0]); err != nil {
		o.Reporter.log.Warn("Cannot read page size of %s: %v", filepath.Base(pages[0]), err)
	}
	if _, err := artifact.Publish(staging, job.Output); err != nil {
		return Result{Search: res.Search, Err: err}
	}
	return res
}
