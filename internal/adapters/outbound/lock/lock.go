// Package lock serializes remediation passes per project root with an
// in-process guard and an advisory lock file.
package lock

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/openkraft/devpilot/internal/domain"
)

const (
	lockDir  = ".devpilot"
	lockFile = "remediate.lock"
)

// FileLocker implements domain.Locker.
type FileLocker struct {
	mu   sync.Mutex
	held map[string]bool
	now  func() time.Time
}

func New() *FileLocker {
	return &FileLocker{held: make(map[string]bool), now: time.Now}
}

// Path returns the lock file location for a project root.
func Path(root string) string {
	return filepath.Join(root, lockDir, lockFile)
}

// Acquire takes the lock for root without waiting. A lock file older than
// staleAfter is treated as abandoned and reclaimed.
func (l *FileLocker) Acquire(root string, staleAfter time.Duration) (func(), error) {
	key, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", root, err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.held[key] {
		return nil, fmt.Errorf("%s: %w", key, domain.ErrBusy)
	}

	path := Path(key)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating lock directory: %w", err)
	}
	if err := l.create(path, staleAfter); err != nil {
		return nil, err
	}
	l.held[key] = true

	var once sync.Once
	release := func() {
		once.Do(func() {
			os.Remove(path)
			l.mu.Lock()
			delete(l.held, key)
			l.mu.Unlock()
		})
	}
	return release, nil
}

func (l *FileLocker) create(path string, staleAfter time.Duration) error {
	for attempt := 0; attempt < 2; attempt++ {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
		if err == nil {
			_, werr := fmt.Fprintf(f, "pid=%d\nacquired=%s\n", os.Getpid(), l.now().UTC().Format(time.RFC3339))
			cerr := f.Close()
			if werr != nil || cerr != nil {
				os.Remove(path)
				return fmt.Errorf("writing lock file: %w", errors.Join(werr, cerr))
			}
			return nil
		}
		if !errors.Is(err, fs.ErrExist) {
			return fmt.Errorf("creating lock file: %w", err)
		}

		info, statErr := os.Stat(path)
		if statErr != nil {
			// released between open and stat
			continue
		}
		if l.now().Sub(info.ModTime()) <= staleAfter {
			return fmt.Errorf("%s held by %s: %w", path, holder(path), domain.ErrBusy)
		}
		if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("reclaiming stale lock: %w", err)
		}
	}
	return fmt.Errorf("%s: %w", path, domain.ErrBusy)
}

func holder(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return "unknown process"
	}
	for _, line := range strings.Split(string(data), "\n") {
		if pid, ok := strings.CutPrefix(line, "pid="); ok {
			return "pid " + pid
		}
	}
	return "unknown process"
}
