package domain

import (
	"context"
	"time"
)

// ProjectScanner lists the files of a project checkout.
type ProjectScanner interface {
	Scan(projectPath string, excludePaths ...string) (*ScanResult, error)
}

// ScanResult holds the file listing of a project directory. Paths are
// slash-separated and relative to RootPath.
type ScanResult struct {
	RootPath       string   `json:"root_path"`
	AllFiles       []string `json:"all_files"`
	HasPackageJSON bool     `json:"has_package_json"`
	HasConfigFile  bool     `json:"has_config_file"`
}

// ConfigFileName is the per-project configuration file at the root.
const ConfigFileName = ".devpilot.yaml"

// AddFile records a relative path and flags root marker files.
func (s *ScanResult) AddFile(relPath string) {
	s.AllFiles = append(s.AllFiles, relPath)
	switch relPath {
	case "package.json":
		s.HasPackageJSON = true
	case ConfigFileName:
		s.HasConfigFile = true
	}
}

// RootLocator finds the project root from a starting directory.
type RootLocator interface {
	Locate(start string) (string, error)
}

// ConfigLoader loads project configuration.
type ConfigLoader interface {
	Load(projectPath string) (ProjectConfig, error)
}

// SourceParser extracts the project model from frontend and server sources.
type SourceParser interface {
	ParseRoutes(file string, data []byte) []Route
	ParseImports(file string, data []byte) []Import
	ParseLinks(file string, data []byte) []Link
	ParseHandlers(file string, data []byte) []Handler
	// CloneLink rewrites a cloneable link line to point at target with the
	// given label.
	CloneLink(raw, target, label string) (string, bool)
}

// FileReader is read access to project files by relative path.
type FileReader interface {
	ReadFile(path string) ([]byte, error)
	Exists(path string) bool
}

// Workspace is a project checkout that can commit changesets atomically.
type Workspace interface {
	FileReader
	Root() string
	Commit(cs *Changeset) error
}

// WorkspaceOpener opens the workspace rooted at a project path.
type WorkspaceOpener interface {
	Open(root string) Workspace
}

// EnvironmentProbe inspects local process, port and env-file state.
type EnvironmentProbe interface {
	Probe(ctx context.Context, root string, cfg ProjectConfig) EnvironmentStatus
}

// CommandResult is the captured outcome of an external command.
type CommandResult struct {
	Stdout   string
	Stderr   string
	ExitCode int
	Duration time.Duration
}

// Exit codes reported when a command never ran.
const (
	ExitCannotRun = 126 // binary present but could not be started
	ExitNotFound  = 127
)

// CommandRunner executes external commands and captures their output.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) (CommandResult, error)
}

// Launcher runs a long-lived command with inherited standard I/O.
type Launcher interface {
	Launch(ctx context.Context, dir string, argv []string) (int, error)
}

// Locker serializes remediation passes per project root.
type Locker interface {
	Acquire(root string, staleAfter time.Duration) (release func(), err error)
}

// RunStore persists the most recent run record.
type RunStore interface {
	Load(projectPath string) (*RunRecord, error)
	Save(projectPath string, record *RunRecord) error
}

// RunHistory appends and reads run history entries.
type RunHistory interface {
	Save(projectPath string, entry RunEntry) error
	Load(projectPath string) ([]RunEntry, error)
}

// GitInfo answers version-control questions about a checkout.
type GitInfo interface {
	CommitHash(projectPath string) (string, error)
	Branch(projectPath string) (string, error)
	IsDirty(projectPath string) (bool, error)
}
