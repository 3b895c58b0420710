package cli_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/openkraft/devpilot/internal/adapters/inbound/cli"
	"github.com/openkraft/devpilot/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"success", nil, 0},
		{"general", errors.New("boom"), 1},
		{"root not found", fmt.Errorf("locating: %w", domain.ErrProjectRootNotFound), 2},
		{"busy", fmt.Errorf("acquiring lock: %w", domain.ErrBusy), 3},
		{"stack exit code", &cli.StackExitError{Code: 4}, 4},
		{"stack killed by signal", &cli.StackExitError{Code: -1}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, cli.ExitCode(tt.err))
		})
	}
}
