package probe

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"time"

	"github.com/openkraft/devpilot/internal/domain"
)

// ExecRunner implements domain.CommandRunner with os/exec.
type ExecRunner struct {
	Dir string
}

// Run executes a command, capturing output and duration. A missing binary
// reports domain.ExitNotFound and a deadline reports 124.
func (r ExecRunner) Run(ctx context.Context, name string, args ...string) (domain.CommandResult, error) {
	start := time.Now()
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = r.Dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	res := domain.CommandResult{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		Duration: time.Since(start),
	}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			res.ExitCode = exitErr.ExitCode()
		} else {
			res.ExitCode = domain.ExitCannotRun
		}

		switch {
		case ctx.Err() == context.DeadlineExceeded:
			res.ExitCode = 124
		case errors.Is(err, exec.ErrNotFound):
			res.ExitCode = domain.ExitNotFound
		}
	}

	return res, err
}
