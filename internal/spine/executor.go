package spine

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"time"
)

// waitDelay bounds how long Execute waits for output pipes after the
// process group has been killed.
const waitDelay = 5 * time.Second

// ExecResult holds the outcome of a single Spine invocation.
type ExecResult struct {
	Stdout   string
	Stderr   string
	ExitCode int   // -1 when the process never started or died from a signal.
	Started  bool  // False when the executable could not be launched at all.
	Err      error // Nil only for a zero exit status.
}

// Output returns stdout followed by stderr, for classification and logging.
func (r ExecResult) Output() string {
	switch {
	case r.Stderr == "":
		return r.Stdout
	case r.Stdout == "":
		return r.Stderr
	default:
		return r.Stdout + "\n" + r.Stderr
	}
}

// Execute runs args synchronously and captures stdout and stderr. Cancelling
// ctx kills the whole process group, not just the launcher.
func Execute(ctx context.Context, args []string) ExecResult {
	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	configureProcess(cmd)
	cmd.Cancel = func() error {
		terminateProcess(cmd)
		return nil
	}
	cmd.WaitDelay = waitDelay

	var stdoutBuf, stderrBuf bytes.Buffer
	cmd.Stdout = &stdoutBuf
	cmd.Stderr = &stderrBuf

	err := cmd.Run()
	res := ExecResult{
		Stdout:  stdoutBuf.String(),
		Stderr:  stderrBuf.String(),
		Started: cmd.Process != nil,
		Err:     err,
	}
	if err == nil {
		return res
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		res.ExitCode = exitErr.ExitCode()
	} else {
		res.ExitCode = -1
	}
	return res
}
