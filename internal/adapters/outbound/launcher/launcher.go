// Package launcher runs the dev stack as a child process attached to the
// caller's terminal.
package launcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"time"
)

// DefaultWaitDelay is how long a stopped stack gets to exit after the
// interrupt before it is killed.
const DefaultWaitDelay = 5 * time.Second

// ProcessLauncher implements domain.Launcher.
type ProcessLauncher struct {
	Stdin     io.Reader
	Stdout    io.Writer
	Stderr    io.Writer
	WaitDelay time.Duration
}

// New returns a launcher wired to the process's standard streams.
func New() *ProcessLauncher {
	return &ProcessLauncher{Stdin: os.Stdin, Stdout: os.Stdout, Stderr: os.Stderr, WaitDelay: DefaultWaitDelay}
}

// Launch runs argv in dir and waits for it. A non-zero exit is reported
// through the returned code, not as an error. Cancelling ctx interrupts
// the child.
func (l *ProcessLauncher) Launch(ctx context.Context, dir string, argv []string) (int, error) {
	if len(argv) == 0 || argv[0] == "" {
		return -1, errors.New("empty command")
	}

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Dir = dir
	cmd.Stdin = l.Stdin
	cmd.Stdout = l.Stdout
	cmd.Stderr = l.Stderr
	cmd.Cancel = func() error { return cmd.Process.Signal(os.Interrupt) }
	cmd.WaitDelay = l.WaitDelay

	err := cmd.Run()
	if err == nil {
		return 0, nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode(), nil
	}
	if ctx.Err() != nil {
		return -1, ctx.Err()
	}
	return -1, fmt.Errorf("running %s: %w", argv[0], err)
}
