package application_test

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/openkraft/devpilot/internal/adapters/outbound/cache"
	"github.com/openkraft/devpilot/internal/adapters/outbound/config"
	"github.com/openkraft/devpilot/internal/adapters/outbound/detector"
	"github.com/openkraft/devpilot/internal/adapters/outbound/history"
	"github.com/openkraft/devpilot/internal/adapters/outbound/lock"
	"github.com/openkraft/devpilot/internal/adapters/outbound/parser"
	"github.com/openkraft/devpilot/internal/adapters/outbound/scanner"
	"github.com/openkraft/devpilot/internal/adapters/outbound/workspace"
	"github.com/openkraft/devpilot/internal/application"
	"github.com/openkraft/devpilot/internal/domain"
	"github.com/openkraft/devpilot/internal/domain/fixer"
	"github.com/stretchr/testify/require"
)

const fixtureRoot = "../../testdata/webapp"

// copyFixture copies a webapp fixture into a temp dir so tests may mutate it.
func copyFixture(t *testing.T, name string) string {
	t.Helper()
	src := filepath.Join(fixtureRoot, name)
	dst := t.TempDir()
	err := filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, _ := filepath.Rel(src, path)
		target := filepath.Join(dst, rel)
		if d.IsDir() {
			return os.MkdirAll(target, 0o755)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		return os.WriteFile(target, data, 0o644)
	})
	require.NoError(t, err)
	return dst
}

// snapshot reads every project file outside .devpilot.
func snapshot(t *testing.T, root string) map[string]string {
	t.Helper()
	out := make(map[string]string)
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if d.Name() == ".devpilot" {
				return filepath.SkipDir
			}
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		rel, _ := filepath.Rel(root, path)
		out[filepath.ToSlash(rel)] = string(data)
		return nil
	})
	require.NoError(t, err)
	return out
}

func readFile(t *testing.T, root, rel string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(root, rel))
	require.NoError(t, err)
	return string(data)
}

// fakeProbe returns a fixed status.
type fakeProbe struct {
	status domain.EnvironmentStatus
	calls  int
}

func (p *fakeProbe) Probe(_ context.Context, _ string, cfg domain.ProjectConfig) domain.EnvironmentStatus {
	p.calls++
	s := p.status
	s.FrontendPort = cfg.FrontendPort
	s.BackendPort = cfg.BackendPort
	s.EnvFile = cfg.EnvFile
	return s
}

func unknownProbe() *fakeProbe {
	return &fakeProbe{status: domain.EnvironmentStatus{Frontend: domain.PortUnknown, Backend: domain.PortUnknown}}
}

// fakeGit answers from fixed values; an empty commit means "not a repo".
type fakeGit struct {
	commit string
	branch string
	dirty  bool
}

var errNoRepo = errors.New("opening git repo: repository does not exist")

func (g fakeGit) CommitHash(string) (string, error) {
	if g.commit == "" {
		return "", errNoRepo
	}
	return g.commit, nil
}

func (g fakeGit) Branch(string) (string, error) {
	if g.commit == "" {
		return "", errNoRepo
	}
	return g.branch, nil
}

func (g fakeGit) IsDirty(string) (bool, error) {
	if g.commit == "" {
		return false, errNoRepo
	}
	return g.dirty, nil
}

func resolve(t *testing.T, root string) *application.Project {
	t.Helper()
	project, err := application.NewProjectResolver(detector.New(), config.New()).Resolve(root)
	require.NoError(t, err)
	return project
}

func newScanService(probe domain.EnvironmentProbe) *application.ScanService {
	return newScanServiceWithGit(probe, fakeGit{})
}

func newScanServiceWithGit(probe domain.EnvironmentProbe, git domain.GitInfo) *application.ScanService {
	return application.NewScanService(scanner.New(), parser.New(), probe, workspace.NewOpener(), git, nil)
}

func newRemediationService(opener domain.WorkspaceOpener, locker domain.Locker) *application.RemediationService {
	if opener == nil {
		opener = workspace.NewOpener()
	}
	if locker == nil {
		locker = lock.New()
	}
	return application.NewRemediationService(opener, parser.New(), locker, fixer.Default(), nil)
}

func newRecorder() *application.RunRecorder {
	return application.NewRunRecorder(cache.New(), history.New())
}

func issueKeys(issues []domain.Issue) []string {
	keys := make([]string, 0, len(issues))
	for _, i := range issues {
		keys = append(keys, i.Key())
	}
	sort.Strings(keys)
	return keys
}

func outcomes(results []domain.FixResult) map[string]domain.Outcome {
	out := make(map[string]domain.Outcome, len(results))
	for _, r := range results {
		out[string(r.Kind)+"|"+r.Location] = r.Outcome
	}
	return out
}
