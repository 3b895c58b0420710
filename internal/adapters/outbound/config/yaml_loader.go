package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/openkraft/devpilot/internal/domain"
	"gopkg.in/yaml.v3"
)

const fileName = domain.ConfigFileName

// YAMLLoader implements domain.ConfigLoader by reading .devpilot.yaml.
type YAMLLoader struct{}

// New creates a YAMLLoader.
func New() *YAMLLoader { return &YAMLLoader{} }

// Load reads .devpilot.yaml from projectPath.
// Returns DefaultConfig if the file does not exist.
func (l *YAMLLoader) Load(projectPath string) (domain.ProjectConfig, error) {
	data, err := os.ReadFile(filepath.Join(projectPath, fileName))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return domain.DefaultConfig(), nil
		}
		return domain.ProjectConfig{}, err
	}

	var raw domain.ProjectConfig
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return domain.ProjectConfig{}, fmt.Errorf("parsing %s: %w", fileName, err)
	}

	cfg := mergeConfig(domain.DefaultConfig(), raw)
	if err := cfg.Validate(); err != nil {
		return domain.ProjectConfig{}, fmt.Errorf("invalid %s: %w", fileName, err)
	}
	return cfg, nil
}

// mergeConfig overlays explicit overrides on top of defaults.
// Explicit (non-zero) values always win; flags and console modes merge per key.
func mergeConfig(base, override domain.ProjectConfig) domain.ProjectConfig {
	result := base

	setString(&result.RoutesFile, override.RoutesFile)
	setString(&result.PagesDir, override.PagesDir)
	setString(&result.ComponentsDir, override.ComponentsDir)
	setString(&result.SourceDir, override.SourceDir)
	setString(&result.EnvFile, override.EnvFile)
	setString(&result.EnvExample, override.EnvExample)
	setString(&result.LockStaleAfter, override.LockStaleAfter)

	if len(override.NavigationFiles) > 0 {
		result.NavigationFiles = override.NavigationFiles
	}
	if len(override.ServerDirs) > 0 {
		result.ServerDirs = override.ServerDirs
	}
	if len(override.NavExclude) > 0 {
		result.NavExclude = override.NavExclude
	}
	if len(override.DevCommand) > 0 {
		result.DevCommand = override.DevCommand
	}
	if len(override.ExcludePaths) > 0 {
		result.ExcludePaths = override.ExcludePaths
	}
	if override.FrontendPort != 0 {
		result.FrontendPort = override.FrontendPort
	}
	if override.BackendPort != 0 {
		result.BackendPort = override.BackendPort
	}

	if len(override.ImportAliases) > 0 {
		aliases := make(map[string]string, len(base.ImportAliases)+len(override.ImportAliases))
		for k, v := range base.ImportAliases {
			aliases[k] = v
		}
		for k, v := range override.ImportAliases {
			aliases[k] = v
		}
		result.ImportAliases = aliases
	}

	if len(override.Flags) > 0 {
		flags := make(map[string]domain.FlagSpec, len(base.Flags)+len(override.Flags))
		for k, v := range base.Flags {
			flags[k] = v
		}
		for k, v := range override.Flags {
			flags[k] = v
		}
		result.Flags = flags
	}

	if len(override.ConsoleModes) > 0 {
		modes := make(map[string]map[string]string, len(base.ConsoleModes))
		for mode, settings := range base.ConsoleModes {
			modes[mode] = copyMap(settings)
		}
		for mode, settings := range override.ConsoleModes {
			if modes[mode] == nil {
				modes[mode] = make(map[string]string, len(settings))
			}
			for k, v := range settings {
				modes[mode][k] = v
			}
		}
		result.ConsoleModes = modes
	}

	return result
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func copyMap(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
