// Package process runs external programs for the build steps.
package process

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/wdkres/internal/interfaces"
)

// ExecRunner implements interfaces.ProcessRunner on top of os/exec.
// Child processes inherit the helper's environment and working directory.
type ExecRunner struct {
	logger arbor.ILogger
}

var _ interfaces.ProcessRunner = (*ExecRunner)(nil)

// NewExecRunner creates a runner that logs every process it starts
func NewExecRunner(logger arbor.ILogger) *ExecRunner {
	return &ExecRunner{logger: logger}
}

// Output runs the command and returns its stdout. On a non-zero exit the
// captured stderr is included in the error.
func (r *ExecRunner) Output(ctx context.Context, name string, args ...string) ([]byte, error) {
	r.logger.Debug().Str("command", name).Strs("args", args).Msg("Running command")

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stderr = &stderr

	out, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return out, fmt.Errorf("%s exited with code %d: %s", name, exitErr.ExitCode(), strings.TrimSpace(stderr.String()))
		}
		return out, fmt.Errorf("failed to run %s: %w", name, err)
	}
	return out, nil
}

// Run starts the command with its output wired to stdout and stderr and
// blocks until it exits. A process that ran and exited non-zero is not an
// error: its exit code is returned for the caller to interpret.
func (r *ExecRunner) Run(ctx context.Context, stdout, stderr io.Writer, name string, args ...string) (int, error) {
	r.logger.Debug().Str("command", name).Strs("args", args).Msg("Starting process")

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return exitErr.ExitCode(), nil
		}
		return -1, err
	}
	return 0, nil
}
