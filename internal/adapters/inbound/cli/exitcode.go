package cli

import (
	"errors"
	"fmt"

	"github.com/openkraft/devpilot/internal/domain"
)

// Process exit codes. Issues found or left unfixed never change the code.
const (
	ExitSuccess      = 0
	ExitGeneral      = 1
	ExitRootNotFound = 2
	ExitBusy         = 3
)

// StackExitError carries the exit code of the dev stack out of the dev command.
type StackExitError struct {
	Code int
}

func (e *StackExitError) Error() string {
	return fmt.Sprintf("dev stack exited with code %d", e.Code)
}

// ExitCode maps an error returned by Execute to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var stack *StackExitError
	switch {
	case errors.Is(err, domain.ErrProjectRootNotFound):
		return ExitRootNotFound
	case errors.Is(err, domain.ErrBusy):
		return ExitBusy
	case errors.As(err, &stack) && stack.Code > 0:
		return stack.Code
	default:
		return ExitGeneral
	}
}
