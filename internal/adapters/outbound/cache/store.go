package cache

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/openkraft/devpilot/internal/domain"
)

// Store is a file-based implementation of domain.RunStore.
type Store struct{}

// New creates a new file-based run store.
func New() *Store {
	return &Store{}
}

// Load reads the last run record. Returns (nil, nil) if none was written.
func (s *Store) Load(projectPath string) (*domain.RunRecord, error) {
	data, err := os.ReadFile(cachePath(projectPath))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil // no cache is not an error
		}
		return nil, err
	}

	var record domain.RunRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

// Save writes the run record, creating directories as needed. The file is
// replaced by rename so readers never see a torn record.
func (s *Store) Save(projectPath string, record *domain.RunRecord) error {
	if err := os.MkdirAll(cacheDir(projectPath), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(cacheDir(projectPath), "last-run-*.json")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), cachePath(projectPath))
}

func cacheDir(projectPath string) string {
	return filepath.Join(projectPath, ".devpilot", "cache")
}

func cachePath(projectPath string) string {
	return filepath.Join(cacheDir(projectPath), "last-run.json")
}
