// Package workspace gives the remediation engine read access to a project
// checkout and commits changesets so that either every file of a fix is
// replaced or none is.
package workspace

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/openkraft/devpilot/internal/domain"
)

// Opener implements domain.WorkspaceOpener for the local filesystem.
type Opener struct{}

func NewOpener() *Opener { return &Opener{} }

func (o *Opener) Open(root string) domain.Workspace { return New(root) }

// FS is a project checkout on the local filesystem.
type FS struct {
	root string

	// seams for failure injection in tests
	rename    func(oldpath, newpath string) error
	writeFile func(name string, data []byte, perm fs.FileMode) error
}

func New(root string) *FS {
	return &FS{root: root, rename: os.Rename, writeFile: os.WriteFile}
}

func (w *FS) Root() string { return w.root }

func (w *FS) ReadFile(rel string) ([]byte, error) {
	abs, err := w.resolve(rel)
	if err != nil {
		return nil, err
	}
	return os.ReadFile(abs)
}

func (w *FS) Exists(rel string) bool {
	abs, err := w.resolve(rel)
	if err != nil {
		return false
	}
	info, err := os.Stat(abs)
	return err == nil && !info.IsDir()
}

// resolve maps a slash-separated relative path into the root, refusing
// anything that would escape it.
func (w *FS) resolve(rel string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(rel))
	if filepath.IsAbs(clean) || clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("path %q escapes the project root", rel)
	}
	return filepath.Join(w.root, clean), nil
}

// staged is one edit written next to its target, waiting to be renamed.
type staged struct {
	target   string
	temp     string
	original []byte
	existed  bool
	perm     fs.FileMode
}

// Commit writes every edit to a temp file in the target's directory, then
// renames them into place. If any step fails, files already replaced are
// restored to their previous content and created files are removed.
func (w *FS) Commit(cs *domain.Changeset) error {
	if cs.Empty() {
		return nil
	}

	var stage []staged
	cleanup := func() {
		for _, s := range stage {
			if s.temp != "" {
				os.Remove(s.temp)
			}
		}
	}

	for _, edit := range cs.Edits {
		target, err := w.resolve(edit.Path)
		if err != nil {
			cleanup()
			return err
		}
		s := staged{target: target, perm: 0o644}
		if info, err := os.Stat(target); err == nil {
			s.existed = true
			s.perm = info.Mode().Perm()
			if s.original, err = os.ReadFile(target); err != nil {
				cleanup()
				return fmt.Errorf("reading %s: %w", edit.Path, err)
			}
		} else if !errors.Is(err, fs.ErrNotExist) {
			cleanup()
			return fmt.Errorf("stat %s: %w", edit.Path, err)
		}

		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			cleanup()
			return fmt.Errorf("creating directory for %s: %w", edit.Path, err)
		}
		s.temp = filepath.Join(filepath.Dir(target), "."+filepath.Base(target)+".devpilot-tmp")
		if err := w.writeFile(s.temp, edit.Content, s.perm); err != nil {
			stage = append(stage, s)
			cleanup()
			return fmt.Errorf("staging %s: %w", edit.Path, err)
		}
		stage = append(stage, s)
	}

	for i, s := range stage {
		if err := w.rename(s.temp, s.target); err != nil {
			restoreErr := w.restore(stage[:i])
			cleanup()
			if restoreErr != nil {
				return fmt.Errorf("replacing %s: %w (restore failed: %v)", s.target, err, restoreErr)
			}
			return fmt.Errorf("replacing %s: %w", s.target, err)
		}
		stage[i].temp = ""
	}
	return nil
}

func (w *FS) restore(replaced []staged) error {
	var errs []error
	for _, s := range replaced {
		if !s.existed {
			if err := os.Remove(s.target); err != nil && !errors.Is(err, fs.ErrNotExist) {
				errs = append(errs, err)
			}
			continue
		}
		if err := os.WriteFile(s.target, s.original, s.perm); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
