package probe

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/backmassage/spinefit/internal/spine"
	"github.com/backmassage/spinefit/internal/workspace"
)

func TestClassify(t *testing.T) {
	exitErr := errors.New("exit status 1")
	tests := []struct {
		name  string
		res   spine.ExecResult
		pages int
		want  Kind
	}{
		{"one page", spine.ExecResult{Started: true}, 1, Fits},
		{"two pages", spine.ExecResult{Started: true}, 2, DoesNotFit},
		{"no pages", spine.ExecResult{Started: true}, 0, DoesNotFit},
		{"misfit message", spine.ExecResult{Started: true, ExitCode: 1, Err: exitErr,
			Stderr: "ERROR: Image does not fit within max page width/height"}, 0, DoesNotFit},
		{"unrelated failure", spine.ExecResult{Started: true, ExitCode: 1, Err: exitErr,
			Stderr: "Spine license is not activated"}, 0, Error},
		{"never started", spine.ExecResult{ExitCode: -1, Err: errors.New("not found")}, 0, Error},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.res, tt.pages); got.Kind != tt.want {
				t.Errorf("Classify() = %v, want %v", got.Kind, tt.want)
			}
		})
	}
}

func TestKindString(t *testing.T) {
	for k, want := range map[Kind]string{Fits: "fits", DoesNotFit: "does not fit", Error: "error"} {
		if k.String() != want {
			t.Errorf("%d.String() = %q, want %q", int(k), k.String(), want)
		}
	}
}

func TestFake(t *testing.T) {
	f := FitsUpTo(40)
	f.ErrorAt = func(scale int) bool { return scale == 50 }
	ctx := context.Background()

	if got := f.Probe(ctx, 40).Kind; got != Fits {
		t.Errorf("Probe(40) = %v", got)
	}
	if got := f.Probe(ctx, 42).Kind; got != DoesNotFit {
		t.Errorf("Probe(42) = %v", got)
	}
	if got := f.Probe(ctx, 50).Kind; got != Error {
		t.Errorf("Probe(50) = %v", got)
	}
	if calls := f.Calls(); fmt.Sprint(calls) != "[40 42 50]" {
		t.Errorf("Calls() = %v", calls)
	}
}

func TestGauge_Peak(t *testing.T) {
	g := &Gauge{}
	var wg sync.WaitGroup
	for i := 0; i < 3; i++ {
		f := &Fake{Delay: 50 * time.Millisecond, Gauge: g}
		wg.Add(1)
		go func() {
			defer wg.Done()
			f.Probe(context.Background(), 10)
		}()
	}
	wg.Wait()
	if g.Peak() < 1 || g.Peak() > 3 {
		t.Errorf("Peak() = %d", g.Peak())
	}
}

type recordingLogger struct {
	mu     sync.Mutex
	errors []string
}

func (l *recordingLogger) Error(format string, args ...interface{}) {
	l.mu.Lock()
	l.errors = append(l.errors, fmt.Sprintf(format, args...))
	l.mu.Unlock()
}

func (l *recordingLogger) Debug(bool, string, ...interface{}) {}

// fakeSpine writes a script that behaves like Spine with a 60% page limit.
// Its sixth argument is the per-probe config named export-sNNN.json.
func fakeSpine(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell scripts not supported on windows")
	}
	path := filepath.Join(t.TempDir(), "Spine")
	script := "#!/bin/sh\nout=\"$4\"\nscale=$(basename \"$6\" | sed 's/^export-s0*\\([0-9]*\\)\\.json$/\\1/')\n" + body + "\n"
	if err := os.WriteFile(path, []byte(script), 0o755); err != nil {
		t.Fatalf("write script: %v", err)
	}
	return path
}

const limitedSpine = `if [ "$scale" -le 60 ]; then
  touch "$out/skeleton.png"
  exit 0
fi
echo "ERROR: Image does not fit within max page width/height" >&2
exit 1`

func newExport(t *testing.T, exe string) (*Export, *recordingLogger) {
	t.Helper()
	ws, err := workspace.New(t.TempDir(), []byte(`{"packAtlas":{"scale":[1]}}`))
	if err != nil {
		t.Fatalf("workspace.New: %v", err)
	}
	t.Cleanup(func() { ws.Remove() })
	log := &recordingLogger{}
	return &Export{
		Exec:        exe,
		Input:       "hero.spine",
		ArtifactExt: ".png",
		Workspace:   ws,
		Log:         log,
	}, log
}

func TestExport_Probe(t *testing.T) {
	e, log := newExport(t, fakeSpine(t, limitedSpine))
	ctx := context.Background()

	if got := e.Probe(ctx, 100); got.Kind != DoesNotFit {
		t.Errorf("Probe(100) = %v (%s)", got.Kind, got.Detail)
	}
	if got := e.Probe(ctx, 60); got.Kind != Fits {
		t.Errorf("Probe(60) = %v (%s)", got.Kind, got.Detail)
	}
	if len(log.errors) != 0 {
		t.Errorf("unexpected errors logged: %v", log.errors)
	}
}

func TestExport_WritesIntoStaging(t *testing.T) {
	e, _ := newExport(t, fakeSpine(t, limitedSpine))
	if got := e.Probe(context.Background(), 40); got.Kind != Fits {
		t.Fatalf("Probe = %v", got.Kind)
	}
	if _, err := os.Stat(filepath.Join(e.Workspace.StagingDir(), "skeleton.png")); err != nil {
		t.Errorf("page not written to staging: %v", err)
	}
}

func TestExport_ClearsStalePages(t *testing.T) {
	e, _ := newExport(t, fakeSpine(t, `touch "$out/page$scale.png"`))
	ctx := context.Background()

	if got := e.Probe(ctx, 50); got.Kind != Fits {
		t.Fatalf("first Probe = %v", got.Kind)
	}
	if got := e.Probe(ctx, 40); got.Kind != Fits {
		t.Errorf("second Probe = %v, stale page was counted", got.Kind)
	}
}

func TestExport_MultiplePagesDoNotFit(t *testing.T) {
	e, _ := newExport(t, fakeSpine(t, `touch "$out/a.png" "$out/b.png"`))
	if got := e.Probe(context.Background(), 20); got.Kind != DoesNotFit {
		t.Errorf("Probe = %v, want does not fit", got.Kind)
	}
}

func TestExport_UnexpectedFailureIsLogged(t *testing.T) {
	e, log := newExport(t, fakeSpine(t, `echo "license expired" >&2; exit 2`))

	got := e.Probe(context.Background(), 30)
	if got.Kind != Error {
		t.Fatalf("Probe = %v, want error", got.Kind)
	}
	joined := strings.Join(log.errors, "\n")
	if !strings.Contains(joined, "0.30") || !strings.Contains(joined, "license expired") {
		t.Errorf("logged errors = %q", joined)
	}
}

func TestExport_Cancelled(t *testing.T) {
	e, log := newExport(t, fakeSpine(t, limitedSpine))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	got := e.Probe(ctx, 20)
	if got.Kind != Error || !errors.Is(got.Err, context.Canceled) {
		t.Errorf("Probe = %v err=%v", got.Kind, got.Err)
	}
	if len(log.errors) != 0 {
		t.Errorf("cancellation should not be logged: %v", log.errors)
	}
}
