package lock_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/openkraft/devpilot/internal/adapters/outbound/lock"
	"github.com/openkraft/devpilot/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAcquire_CreatesAndReleasesLockFile(t *testing.T) {
	root := t.TempDir()
	l := lock.New()

	release, err := l.Acquire(root, time.Minute)
	require.NoError(t, err)
	assert.FileExists(t, lock.Path(root))

	release()
	release()
	assert.NoFileExists(t, lock.Path(root))

	release, err = l.Acquire(root, time.Minute)
	require.NoError(t, err)
	release()
}

func TestAcquire_InProcessBusy(t *testing.T) {
	root := t.TempDir()
	l := lock.New()

	release, err := l.Acquire(root, time.Minute)
	require.NoError(t, err)
	defer release()

	_, err = l.Acquire(root, time.Minute)
	assert.ErrorIs(t, err, domain.ErrBusy)
}

func TestAcquire_LockFileHeldByAnotherProcess(t *testing.T) {
	root := t.TempDir()
	path := lock.Path(root)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("pid=4242\n"), 0o644))

	_, err := lock.New().Acquire(root, time.Minute)
	require.ErrorIs(t, err, domain.ErrBusy)
	assert.Contains(t, err.Error(), "pid 4242")
	assert.FileExists(t, path)
}

func TestAcquire_ReclaimsStaleLock(t *testing.T) {
	root := t.TempDir()
	path := lock.Path(root)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("pid=4242\n"), 0o644))
	old := time.Now().Add(-time.Hour)
	require.NoError(t, os.Chtimes(path, old, old))

	release, err := lock.New().Acquire(root, 10*time.Minute)
	require.NoError(t, err)
	defer release()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "pid=4242")
}

func TestAcquire_DistinctRootsDoNotContend(t *testing.T) {
	l := lock.New()
	r1, err := l.Acquire(t.TempDir(), time.Minute)
	require.NoError(t, err)
	defer r1()
	r2, err := l.Acquire(t.TempDir(), time.Minute)
	require.NoError(t, err)
	defer r2()
}
