package application

import (
	"fmt"

	"github.com/openkraft/devpilot/internal/domain"
)

// Project is a located checkout with its loaded configuration. It is passed
// by reference through the pipeline instead of each step reloading config.
type Project struct {
	Root   string
	Config domain.ProjectConfig
}

// ProjectResolver locates the project root and loads its configuration.
type ProjectResolver struct {
	locator      domain.RootLocator
	configLoader domain.ConfigLoader
}

func NewProjectResolver(locator domain.RootLocator, configLoader domain.ConfigLoader) *ProjectResolver {
	return &ProjectResolver{locator: locator, configLoader: configLoader}
}

// Resolve walks up from path to the project root. A missing root is reported
// as domain.ErrProjectRootNotFound.
func (r *ProjectResolver) Resolve(path string) (*Project, error) {
	if path == "" {
		path = "."
	}
	root, err := r.locator.Locate(path)
	if err != nil {
		return nil, err
	}
	cfg, err := r.configLoader.Load(root)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return &Project{Root: root, Config: cfg}, nil
}
