package probe_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/openkraft/devpilot/internal/adapters/outbound/probe"
	"github.com/openkraft/devpilot/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecRunner_Success(t *testing.T) {
	res, err := probe.ExecRunner{}.Run(context.Background(), "sh", "-c", "echo up")
	if res.ExitCode == domain.ExitNotFound {
		t.Skip("sh not available")
	}
	require.NoError(t, err)
	assert.Equal(t, 0, res.ExitCode)
	assert.Equal(t, "up\n", res.Stdout)
}

func TestExecRunner_ExitCode(t *testing.T) {
	res, err := probe.ExecRunner{}.Run(context.Background(), "sh", "-c", "exit 3")
	if res.ExitCode == domain.ExitNotFound {
		t.Skip("sh not available")
	}
	assert.Error(t, err)
	assert.Equal(t, 3, res.ExitCode)
}

func TestExecRunner_NotFound(t *testing.T) {
	res, err := probe.ExecRunner{}.Run(context.Background(), "nonexistentcommand12345")
	assert.Error(t, err)
	assert.Equal(t, domain.ExitNotFound, res.ExitCode)
}

func TestExecRunner_NotExecutable(t *testing.T) {
	script := filepath.Join(t.TempDir(), "lsof")
	require.NoError(t, os.WriteFile(script, []byte("#!/bin/sh\nexit 0\n"), 0o644))

	res, err := probe.ExecRunner{}.Run(context.Background(), script)
	assert.Error(t, err)
	assert.Equal(t, domain.ExitCannotRun, res.ExitCode)
}

func TestExecRunner_Timeout(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	res, _ := probe.ExecRunner{}.Run(ctx, "sleep", "2")
	if res.ExitCode == domain.ExitNotFound {
		t.Skip("sleep command not found, skipping timeout test")
	}
	assert.Equal(t, 124, res.ExitCode)
}
