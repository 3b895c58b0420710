package log_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/openkraft/devpilot/internal/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]log.Level{
		"debug":   log.LevelDebug,
		"INFO":    log.LevelInfo,
		"":        log.LevelInfo,
		"warning": log.LevelWarn,
		"error":   log.LevelError,
	}
	for in, want := range tests {
		got, err := log.ParseLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := log.ParseLevel("loud")
	assert.Error(t, err)
}

func TestParseFormat(t *testing.T) {
	f, err := log.ParseFormat("json")
	require.NoError(t, err)
	assert.Equal(t, log.FormatJSON, f)

	f, err = log.ParseFormat("console")
	require.NoError(t, err)
	assert.Equal(t, log.FormatText, f)

	_, err = log.ParseFormat("xml")
	assert.Error(t, err)
}

func TestLogger_JSONOutput(t *testing.T) {
	var buf bytes.Buffer
	logger := log.New(log.Config{Level: log.LevelInfo, Format: log.FormatJSON, Output: &buf})

	logger.With("root", "/tmp/app").WithError(errors.New("boom")).Info("scan finished", "issues", 3)

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "scan finished", rec["msg"])
	assert.Equal(t, "/tmp/app", rec["root"])
	assert.Equal(t, "boom", rec["error"])
	assert.EqualValues(t, 3, rec["issues"])
}

func TestLogger_LevelFilters(t *testing.T) {
	var buf bytes.Buffer
	logger := log.New(log.Config{Level: log.LevelWarn, Format: log.FormatText, Output: &buf})

	logger.Info("hidden")
	logger.Debug("hidden")
	assert.Empty(t, buf.String())

	logger.Warn("shown")
	assert.Contains(t, buf.String(), "shown")
	assert.True(t, logger.Enabled(log.LevelError))
	assert.False(t, logger.Enabled(log.LevelInfo))
}

func TestNop(t *testing.T) {
	logger := log.Nop()
	logger.Error("discarded")
	assert.Same(t, logger, logger.WithError(nil))
}
