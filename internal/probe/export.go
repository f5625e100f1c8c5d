package probe

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/backmassage/spinefit/internal/artifact"
	"github.com/backmassage/spinefit/internal/display"
	"github.com/backmassage/spinefit/internal/spine"
	"github.com/backmassage/spinefit/internal/workspace"
)

// Logger is the minimal logging interface needed by Export.
type Logger interface {
	Error(string, ...interface{})
	Debug(bool, string, ...interface{})
}

// Export is the production Prober: every call rewrites the export settings
// in the job's workspace, runs Spine once into the workspace staging folder,
// and inspects what it wrote there. The job's output folder is never touched.
type Export struct {
	Exec        string // Spine executable.
	Input       string // Project file.
	ArtifactExt string // Page image extension, e.g. ".png".
	Workspace   *workspace.Workspace
	Log         Logger
	Verbose     bool
}

// Probe implements Prober. Unexpected failures are logged with the full
// captured output as soon as they happen.
func (e *Export) Probe(ctx context.Context, scale int) Outcome {
	if err := ctx.Err(); err != nil {
		return Failed("cancelled", err)
	}

	staging, err := e.Workspace.ResetStaging()
	if err != nil {
		return e.report(scale, Failed(err.Error(), err))
	}
	cfgPath, err := e.Workspace.WriteConfig(e.Input, staging, scale)
	if err != nil {
		return e.report(scale, Failed(err.Error(), err))
	}

	res := spine.Execute(ctx, spine.Build(e.Exec, spine.Invocation{
		Input:        e.Input,
		Output:       staging,
		ExportConfig: cfgPath,
	}))
	if err := ctx.Err(); err != nil {
		return Failed("cancelled", err)
	}

	pages := 0
	if res.Err == nil {
		if pages, err = artifact.Count(staging, e.ArtifactExt); err != nil {
			return e.report(scale, Failed(err.Error(), err))
		}
	}
	return e.report(scale, Classify(res, pages))
}

func (e *Export) report(scale int, out Outcome) Outcome {
	name := filepath.Base(e.Input)
	if out.Kind != Error {
		e.Log.Debug(e.Verbose, "  %s scale=%s: %s", name, display.FormatScale(scale), out.Kind)
		return out
	}
	e.Log.Error("Error while exporting %s with scale %s:", name, display.FormatScale(scale))
	if out.Err != nil {
		e.Log.Error("  %v", out.Err)
	}
	for _, line := range strings.Split(strings.TrimSpace(out.Detail), "\n") {
		if line != "" {
			e.Log.Error("  %s", line)
		}
	}
	return out
}

// Classify maps one Spine run and the number of pages it left behind to an
// Outcome. pages is only consulted for a zero exit status.
//
//   - the process never started: Error
//   - exit 0, exactly one page: Fits
//   - exit 0, any other page count: DoesNotFit
//   - non-zero exit with the page-overflow message: DoesNotFit
//   - any other non-zero exit: Error
func Classify(res spine.ExecResult, pages int) Outcome {
	if !res.Started {
		return Failed("cannot start Spine", res.Err)
	}
	if res.Err == nil {
		if pages == 1 {
			return Fitted()
		}
		return Overflowed(fmt.Sprintf("export produced %d pages", pages))
	}
	if spine.MatchMisfit(res.Output()) {
		return Overflowed(res.Output())
	}
	return Failed(res.Output(), fmt.Errorf("spine exited with status %d", res.ExitCode))
}
