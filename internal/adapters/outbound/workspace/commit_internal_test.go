package workspace

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/openkraft/devpilot/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seed(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return root
}

func read(t *testing.T, root, rel string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(rel)))
	require.NoError(t, err)
	return string(data)
}

func TestCommit_RenameFailureRestoresReplacedFiles(t *testing.T) {
	root := seed(t, map[string]string{"a.txt": "a-old", "b.txt": "b-old"})
	ws := New(root)

	renames := 0
	ws.rename = func(oldpath, newpath string) error {
		renames++
		if renames == 3 {
			return errors.New("disk full")
		}
		return os.Rename(oldpath, newpath)
	}

	cs := domain.NewChangeset("three files")
	cs.Set("a.txt", []byte("a-new"))
	cs.Set("sub/created.txt", []byte("created"))
	cs.Set("b.txt", []byte("b-new"))

	err := ws.Commit(cs)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")

	assert.Equal(t, "a-old", read(t, root, "a.txt"))
	assert.Equal(t, "b-old", read(t, root, "b.txt"))
	_, statErr := os.Stat(filepath.Join(root, "sub", "created.txt"))
	assert.True(t, errors.Is(statErr, fs.ErrNotExist))

	assertNoTempFiles(t, root)
}

func TestCommit_StagingFailureTouchesNothing(t *testing.T) {
	root := seed(t, map[string]string{"a.txt": "a-old", "b.txt": "b-old"})
	ws := New(root)

	ws.writeFile = func(name string, data []byte, perm fs.FileMode) error {
		if strings.Contains(name, "b.txt") {
			return errors.New("read-only")
		}
		return os.WriteFile(name, data, perm)
	}

	cs := domain.NewChangeset("two files")
	cs.Set("a.txt", []byte("a-new"))
	cs.Set("b.txt", []byte("b-new"))

	require.Error(t, ws.Commit(cs))
	assert.Equal(t, "a-old", read(t, root, "a.txt"))
	assert.Equal(t, "b-old", read(t, root, "b.txt"))
	assertNoTempFiles(t, root)
}

func assertNoTempFiles(t *testing.T, root string) {
	t.Helper()
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		assert.NotContains(t, d.Name(), "devpilot-tmp", path)
		return nil
	})
	require.NoError(t, err)
}
