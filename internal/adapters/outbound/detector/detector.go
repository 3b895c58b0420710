package detector

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/openkraft/devpilot/internal/domain"
)

// rootMarkers identify a project root, strongest first.
var rootMarkers = []string{domain.ConfigFileName, "package.json"}

// RootDetector implements domain.RootLocator by walking upward from a
// starting directory until a root marker is found.
type RootDetector struct{}

func New() *RootDetector {
	return &RootDetector{}
}

// Locate returns the absolute project root containing start. A directory
// holding .devpilot.yaml wins over a nearer one holding only package.json,
// so workspace packages resolve to the configured root.
func (d *RootDetector) Locate(start string) (string, error) {
	abs, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", start, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", fmt.Errorf("%s: %w", start, domain.ErrProjectRootNotFound)
	}
	if !info.IsDir() {
		abs = filepath.Dir(abs)
	}

	nearestPackage := ""
	for dir := abs; ; dir = filepath.Dir(dir) {
		if exists(filepath.Join(dir, rootMarkers[0])) {
			return dir, nil
		}
		if nearestPackage == "" && exists(filepath.Join(dir, rootMarkers[1])) {
			nearestPackage = dir
		}
		if filepath.Dir(dir) == dir {
			break
		}
	}
	if nearestPackage != "" {
		return nearestPackage, nil
	}
	return "", fmt.Errorf("no %s or package.json above %s: %w", domain.ConfigFileName, abs, domain.ErrProjectRootNotFound)
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
