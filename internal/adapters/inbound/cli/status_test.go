package cli_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusCommand_BeforeAnyRun(t *testing.T) {
	out, err := run(t, "status", "--path", copyFixture(t, "healthy"))
	require.NoError(t, err)
	assert.Equal(t, "fixed=0 skipped=0 failed=0 critical-unresolved=0", lastLine(out))
}

func TestStatusCommand_AfterFix(t *testing.T) {
	root := copyFixture(t, "broken")
	_, err := run(t, "fix", "--path", root)
	require.NoError(t, err)

	out, err := run(t, "status", "--path", root)
	require.NoError(t, err)
	assert.Equal(t, "fixed=6 skipped=6 failed=0 critical-unresolved=2", lastLine(out))
}

func TestStatusCommand_JSON(t *testing.T) {
	root := copyFixture(t, "broken")
	_, err := run(t, "scan", "--path", root)
	require.NoError(t, err)

	out, err := run(t, "status", "--path", root, "--json")
	require.NoError(t, err)

	var result map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Contains(t, result, "root")
	assert.Contains(t, result, "env")
	assert.Contains(t, result, "summary")
	assert.NotNil(t, result["last_run"])
}
