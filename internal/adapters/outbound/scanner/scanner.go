package scanner

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/openkraft/devpilot/internal/domain"
)

var skipDirs = map[string]bool{
	"node_modules": true,
	".git":         true,
	"dist":         true,
	"build":        true,
	"coverage":     true,
	".devpilot":    true,
	".vite":        true,
	".next":        true,
}

// FileScanner implements domain.ProjectScanner by walking the filesystem.
type FileScanner struct{}

func New() *FileScanner {
	return &FileScanner{}
}

// Scan lists every file below projectPath. Excludes match either a
// directory name anywhere in the tree or a root-relative path prefix.
func (s *FileScanner) Scan(projectPath string, excludePaths ...string) (*domain.ScanResult, error) {
	absPath, err := filepath.Abs(projectPath)
	if err != nil {
		return nil, err
	}

	extraSkip := make(map[string]bool, len(excludePaths))
	for _, p := range excludePaths {
		extraSkip[strings.TrimSuffix(filepath.ToSlash(p), "/")] = true
	}

	result := &domain.ScanResult{
		RootPath: absPath,
	}

	err = filepath.WalkDir(absPath, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}

		relPath, _ := filepath.Rel(absPath, path)
		relPath = filepath.ToSlash(relPath)

		if d.IsDir() {
			if path == absPath {
				return nil
			}
			if skipDirs[d.Name()] || extraSkip[d.Name()] || extraSkip[relPath] {
				return filepath.SkipDir
			}
			return nil
		}
		if extraSkip[relPath] {
			return nil
		}

		result.AddFile(relPath)
		return nil
	})

	return result, err
}
