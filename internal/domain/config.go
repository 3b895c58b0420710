package domain

import (
	"fmt"
	"sort"
	"time"
)

// Console mode names understood by the console toggler.
const (
	ConsoleClean   = "clean"
	ConsoleVerbose = "verbose"
)

// FlagSpec declares an env flag the project expects.
type FlagSpec struct {
	Allowed []string `yaml:"allowed" json:"allowed,omitempty"`
	Default string   `yaml:"default" json:"default,omitempty"`
}

// Permits reports whether value is acceptable. An empty allow-list permits anything.
func (f FlagSpec) Permits(value string) bool {
	if len(f.Allowed) == 0 {
		return true
	}
	for _, a := range f.Allowed {
		if a == value {
			return true
		}
	}
	return false
}

// ProjectConfig holds project-level configuration loaded from .devpilot.yaml.
type ProjectConfig struct {
	RoutesFile      string                       `yaml:"routes_file"      json:"routes_file"`
	NavigationFiles []string                     `yaml:"navigation_files" json:"navigation_files"`
	PagesDir        string                       `yaml:"pages_dir"        json:"pages_dir"`
	ComponentsDir   string                       `yaml:"components_dir"   json:"components_dir"`
	SourceDir       string                       `yaml:"source_dir"       json:"source_dir"`
	ServerDirs      []string                     `yaml:"server_dirs"      json:"server_dirs"`
	ImportAliases   map[string]string            `yaml:"import_aliases"   json:"import_aliases,omitempty"`
	NavExclude      []string                     `yaml:"nav_exclude"      json:"nav_exclude,omitempty"`
	EnvFile         string                       `yaml:"env_file"         json:"env_file"`
	EnvExample      string                       `yaml:"env_example"      json:"env_example"`
	Flags           map[string]FlagSpec          `yaml:"flags"            json:"flags,omitempty"`
	ConsoleModes    map[string]map[string]string `yaml:"console_modes"    json:"console_modes,omitempty"`
	FrontendPort    int                          `yaml:"frontend_port"    json:"frontend_port"`
	BackendPort     int                          `yaml:"backend_port"     json:"backend_port"`
	DevCommand      []string                     `yaml:"dev_command"      json:"dev_command"`
	ExcludePaths    []string                     `yaml:"exclude_paths"    json:"exclude_paths,omitempty"`
	LockStaleAfter  string                       `yaml:"lock_stale_after" json:"lock_stale_after,omitempty"`
}

// DefaultConfig returns the conventions of a Vite + React + Express checkout.
func DefaultConfig() ProjectConfig {
	return ProjectConfig{
		RoutesFile:      "src/App.tsx",
		NavigationFiles: []string{"src/components/Navigation.tsx"},
		PagesDir:        "src/pages",
		ComponentsDir:   "src/components",
		SourceDir:       "src",
		ServerDirs:      []string{"server"},
		ImportAliases:   map[string]string{"@/": "src/"},
		NavExclude:      []string{"/login", "/logout", "/register"},
		EnvFile:         ".env",
		EnvExample:      ".env.example",
		Flags: map[string]FlagSpec{
			"VITE_DEBUG_MODE": {Allowed: []string{"true", "false"}, Default: "false"},
			"VITE_LOG_LEVEL":  {Allowed: []string{"error", "warn", "info", "debug"}, Default: "error"},
		},
		ConsoleModes: map[string]map[string]string{
			ConsoleClean:   {"VITE_DEBUG_MODE": "false", "VITE_LOG_LEVEL": "error"},
			ConsoleVerbose: {"VITE_DEBUG_MODE": "true", "VITE_LOG_LEVEL": "debug"},
		},
		FrontendPort:   5173,
		BackendPort:    3001,
		DevCommand:     []string{"npm", "run", "dev:fullstack"},
		LockStaleAfter: "10m",
	}
}

// StaleAfter returns the age after which a remediation lock file is reclaimed.
func (c ProjectConfig) StaleAfter() time.Duration {
	d, err := time.ParseDuration(c.LockStaleAfter)
	if err != nil || d <= 0 {
		return 10 * time.Minute
	}
	return d
}

// FlagNames returns declared flag names in sorted order.
func (c ProjectConfig) FlagNames() []string {
	names := make([]string, 0, len(c.Flags))
	for n := range c.Flags {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// IsNavExcluded reports whether a route path is deliberately kept out of navigation.
func (c ProjectConfig) IsNavExcluded(path string) bool {
	for _, p := range c.NavExclude {
		if p == path {
			return true
		}
	}
	return false
}

// Validate checks the config for invalid values and returns a descriptive error.
func (c ProjectConfig) Validate() error {
	// 1. the routes file and source dir anchor every frontend check
	if c.RoutesFile == "" {
		return fmt.Errorf("routes_file must not be empty")
	}
	if c.SourceDir == "" {
		return fmt.Errorf("source_dir must not be empty")
	}

	// 2. ports must be valid and distinct
	for name, port := range map[string]int{"frontend_port": c.FrontendPort, "backend_port": c.BackendPort} {
		if port <= 0 || port > 65535 {
			return fmt.Errorf("%s = %d (must be between 1 and 65535)", name, port)
		}
	}
	if c.FrontendPort == c.BackendPort {
		return fmt.Errorf("frontend_port and backend_port must differ (both %d)", c.FrontendPort)
	}

	// 3. dev command must name a program
	if len(c.DevCommand) == 0 || c.DevCommand[0] == "" {
		return fmt.Errorf("dev_command must not be empty")
	}

	// 4. flag defaults must be allowed values
	for _, name := range c.FlagNames() {
		spec := c.Flags[name]
		if spec.Default != "" && !spec.Permits(spec.Default) {
			return fmt.Errorf("flags.%s.default %q is not in allowed %v", name, spec.Default, spec.Allowed)
		}
	}

	// 5. both console modes are required
	for _, mode := range []string{ConsoleClean, ConsoleVerbose} {
		if len(c.ConsoleModes[mode]) == 0 {
			return fmt.Errorf("console_modes.%s must set at least one flag", mode)
		}
	}

	// 6. lock_stale_after must parse if set
	if c.LockStaleAfter != "" {
		d, err := time.ParseDuration(c.LockStaleAfter)
		if err != nil {
			return fmt.Errorf("invalid lock_stale_after %q: %w", c.LockStaleAfter, err)
		}
		if d <= 0 {
			return fmt.Errorf("lock_stale_after must be > 0 (got %s)", c.LockStaleAfter)
		}
	}

	return nil
}
