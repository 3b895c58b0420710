package e2e_test

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/openkraft/devpilot/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var binaryPath string

func TestMain(m *testing.M) {
	// Build binary before running tests
	dir, err := os.MkdirTemp("", "devpilot-e2e")
	if err != nil {
		panic(err)
	}
	defer os.RemoveAll(dir)

	binaryPath = filepath.Join(dir, "devpilot")
	cmd := exec.Command("go", "build", "-o", binaryPath, "../../cmd/devpilot")
	if out, err := cmd.CombinedOutput(); err != nil {
		panic("build failed: " + string(out))
	}

	os.Exit(m.Run())
}

// fixture copies testdata/webapp/<name> into a temp dir with ports nothing listens on.
func fixture(t *testing.T, name string) string {
	t.Helper()
	src, _ := filepath.Abs(filepath.Join("../../testdata/webapp", name))
	dst := t.TempDir()
	err := filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, _ := filepath.Rel(src, path)
		target := filepath.Join(dst, rel)
		if d.IsDir() {
			return os.MkdirAll(target, 0o755)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		return os.WriteFile(target, data, 0o644)
	})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dst, ".devpilot.yaml"), []byte("frontend_port: 59173\nbackend_port: 59001\n"), 0o644))
	return dst
}

func run(t *testing.T, args ...string) (string, int) {
	t.Helper()
	cmd := exec.Command(binaryPath, args...)
	var stdout strings.Builder
	cmd.Stdout = &stdout
	err := cmd.Run()
	exitCode := 0
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
		}
	}
	return stdout.String(), exitCode
}

func lastLine(s string) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	return lines[len(lines)-1]
}

// --- Scan Tests ---

func TestE2E_Scan(t *testing.T) {
	out, code := run(t, "scan", "--path", fixture(t, "broken"))
	assert.Equal(t, 0, code, "issues never change the exit code")
	assert.Contains(t, out, "SettingsPage")
	assert.Equal(t, "fixed=0 skipped=0 failed=0 critical-unresolved=2", lastLine(out))
}

func TestE2E_ScanJSON(t *testing.T) {
	out, code := run(t, "scan", "--path", fixture(t, "broken"), "--json")
	assert.Equal(t, 0, code)

	var result struct {
		Report domain.ScanReport `json:"report"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Len(t, result.Report.Issues, 12)
	assert.Equal(t, "devpilot-scan/1", result.Report.ScannerVersion)
}

func TestE2E_ScanNoProjectRoot(t *testing.T) {
	_, code := run(t, "scan", "--path", filepath.Join(t.TempDir(), "missing"))
	assert.Equal(t, 2, code)
}

// --- Fix Tests ---

func TestE2E_FixThenScanIsQuieter(t *testing.T) {
	root := fixture(t, "broken")

	out, code := run(t, "fix", "--path", root)
	assert.Equal(t, 0, code)
	assert.Equal(t, "fixed=6 skipped=6 failed=0 critical-unresolved=2", lastLine(out))

	out, code = run(t, "scan", "--path", root, "--json")
	assert.Equal(t, 0, code)
	var result struct {
		Report domain.ScanReport `json:"report"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Less(t, len(result.Report.Issues), 12)
	assert.False(t, result.Report.Contains(domain.IssueID(domain.KindMissingEnvFlag, ".env#VITE_LOG_LEVEL")))
}

func TestE2E_FixBusy(t *testing.T) {
	root := fixture(t, "broken")
	require.NoError(t, os.MkdirAll(filepath.Join(root, ".devpilot"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, ".devpilot", "remediate.lock"), []byte("pid=4242\n"), 0o644))

	_, code := run(t, "fix", "--path", root)
	assert.Equal(t, 3, code)
}

// --- Status, Console, Version ---

func TestE2E_Status(t *testing.T) {
	root := fixture(t, "healthy")
	_, code := run(t, "scan", "--path", root)
	require.Equal(t, 0, code)

	out, code := run(t, "status", "--path", root)
	assert.Equal(t, 0, code)
	assert.Equal(t, "fixed=0 skipped=0 failed=0 critical-unresolved=0", lastLine(out))
}

func TestE2E_Console(t *testing.T) {
	root := fixture(t, "healthy")

	_, code := run(t, "console", "verbose", "--path", root)
	assert.Equal(t, 0, code)
	env, err := os.ReadFile(filepath.Join(root, ".env"))
	require.NoError(t, err)
	assert.Contains(t, string(env), "VITE_DEBUG_MODE=true")

	_, code = run(t, "console", "loud", "--path", root)
	assert.Equal(t, 1, code)
}

func TestE2E_Version(t *testing.T) {
	out, code := run(t, "version")
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "devpilot")
}
