package pipeline

import (
	"context"
	"fmt"
	"os"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/backmassage/spinefit/internal/config"
	"github.com/backmassage/spinefit/internal/display"
	"github.com/backmassage/spinefit/internal/logging"
	"github.com/backmassage/spinefit/internal/naming"
	"github.com/backmassage/spinefit/internal/probe"
	"github.com/backmassage/spinefit/internal/search"
	"github.com/backmassage/spinefit/internal/workspace"
)

// ProberFactory builds the Prober for one job, bound to its workspace.
type ProberFactory func(job *Job, ws *workspace.Workspace) probe.Prober

// Orchestrator runs jobs concurrently. Each job probes sequentially, so at
// most Workers exports run at any moment.
type Orchestrator struct {
	Workers     int // <= 0 means runtime.NumCPU().
	Domain      search.Domain
	Policy      search.Policy
	TempDir     string // Parent for workspaces; empty means os.TempDir().
	Template    []byte // export.json contents.
	ArtifactExt string
	NewProber   ProberFactory
	Reporter    *Reporter
}

// Run executes jobs and returns the final stats. It stops handing out new
// jobs once ctx is cancelled; jobs that never started count as cancelled.
func (o *Orchestrator) Run(ctx context.Context, jobs []*Job) RunStats {
	workers := o.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	o.Reporter.begin(len(jobs))

	var g errgroup.Group
	g.SetLimit(workers)

	started := 0
	for _, job := range jobs {
		if ctx.Err() != nil {
			break
		}
		started++
		job := job
		g.Go(func() error {
			job.Result = o.runJob(ctx, job)
			o.Reporter.Done(job)
			return nil
		})
	}
	_ = g.Wait()

	if skipped := len(jobs) - started; skipped > 0 {
		o.Reporter.log.Warn("Interrupted, %d projects not started", skipped)
		o.Reporter.Skipped(skipped)
	}
	return o.Reporter.Stats()
}

// Plan turns cfg.Input into jobs. A folder is scanned recursively for
// projects (batch mode); anything else is a single project.
func Plan(cfg *config.Config) (jobs []*Job, batch bool, err error) {
	info, err := os.Stat(cfg.Input)
	if err != nil {
		return nil, false, fmt.Errorf("input not found: %w", err)
	}

	files := []string{cfg.Input}
	root := ""
	if info.IsDir() {
		batch, root = true, cfg.Input
		if files, err = Discover(cfg.Input, cfg.ProjectExt); err != nil {
			return nil, true, fmt.Errorf("discover projects: %w", err)
		}
	}

	resolver := naming.NewCollisionResolver()
	for _, f := range files {
		jobs = append(jobs, &Job{
			Input:   f,
			Display: naming.DisplayName(f, root),
			Output:  resolver.Resolve(f, naming.OutputDir(f, cfg.OutputDir, batch)),
		})
	}
	return jobs, batch, nil
}

// Run is the top-level entry point: plan jobs, export them, log a summary.
func Run(ctx context.Context, cfg *config.Config, log *logging.Logger) (RunStats, error) {
	template, err := workspace.LoadTemplate(cfg.ExportJSON)
	if err != nil {
		return RunStats{}, err
	}
	jobs, batch, err := Plan(cfg)
	if err != nil {
		return RunStats{}, err
	}

	if batch {
		log.Info("Found %d spine files. Starting export with %d workers...", len(jobs), cfg.Threads)
	}
	for _, job := range jobs {
		log.Debug(cfg.Verbose, "  %s -> %s", job.Input, job.Output)
	}

	o := &Orchestrator{
		Workers:     cfg.Threads,
		Domain:      search.Domain{Min: cfg.MinScale, Max: cfg.MaxScale},
		Policy:      search.Policy{TryMaxFirst: cfg.TryMaxFirst},
		TempDir:     cfg.TempDir,
		Template:    template,
		ArtifactExt: cfg.ArtifactExt,
		Reporter:    NewReporter(log, batch),
		NewProber: func(job *Job, ws *workspace.Workspace) probe.Prober {
			return &probe.Export{
				Exec:        cfg.SpineExec,
				Input:       job.Input,
				ArtifactExt: cfg.ArtifactExt,
				Workspace:   ws,
				Log:         log,
				Verbose:     cfg.Verbose,
			}
		},
	}
	stats := o.Run(ctx, jobs)
	if batch {
		logSummary(log, &stats)
	}
	return stats, nil
}

func logSummary(log Logger, stats *RunStats) {
	log.Info("==============================")
	log.Info("Done: %d exported, %d failed, %d cancelled", stats.Succeeded, stats.Failed, stats.Cancelled)
	log.Info("Summary report:")
	log.Info("  Projects: %d", stats.Total)
	log.Info("  Exports run: %d", stats.Probes)
	if stats.ErrorProbes > 0 {
		log.Warn("  Unexpected Spine errors: %d", stats.ErrorProbes)
	}
	log.Info("  Total time: %s", display.FormatElapsed(stats.Elapsed))
}
