package application_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/openkraft/devpilot/internal/adapters/outbound/cache"
	"github.com/openkraft/devpilot/internal/adapters/outbound/config"
	"github.com/openkraft/devpilot/internal/adapters/outbound/detector"
	"github.com/openkraft/devpilot/internal/adapters/outbound/history"
	"github.com/openkraft/devpilot/internal/application"
	"github.com/openkraft/devpilot/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectResolver_FromSubdirectory(t *testing.T) {
	root := copyFixture(t, "healthy")

	project, err := application.NewProjectResolver(detector.New(), config.New()).Resolve(filepath.Join(root, "src", "pages"))
	require.NoError(t, err)

	abs, _ := filepath.Abs(root)
	assert.Equal(t, abs, project.Root)
	assert.Equal(t, domain.DefaultConfig().RoutesFile, project.Config.RoutesFile)
}

func TestProjectResolver_LoadsConfig(t *testing.T) {
	root := copyFixture(t, "healthy")
	require.NoError(t, os.WriteFile(filepath.Join(root, domain.ConfigFileName), []byte("frontend_port: 3000\n"), 0o644))

	project, err := application.NewProjectResolver(detector.New(), config.New()).Resolve(root)
	require.NoError(t, err)
	assert.Equal(t, 3000, project.Config.FrontendPort)
}

func TestProjectResolver_InvalidConfig(t *testing.T) {
	root := copyFixture(t, "healthy")
	require.NoError(t, os.WriteFile(filepath.Join(root, domain.ConfigFileName), []byte("backend_port: 5173\n"), 0o644))

	_, err := application.NewProjectResolver(detector.New(), config.New()).Resolve(root)
	assert.Error(t, err)
	assert.False(t, domain.IsFatal(err))
}

func TestProjectResolver_NoRoot(t *testing.T) {
	_, err := application.NewProjectResolver(detector.New(), config.New()).Resolve(filepath.Join(t.TempDir(), "missing"))
	assert.ErrorIs(t, err, domain.ErrProjectRootNotFound)
}

func TestRunRecorder_RecordsScanAndFix(t *testing.T) {
	project, report := scanBroken(t)
	recorder := newRecorder()

	scanRecord, err := recorder.Record(project, "scan", report, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, scanRecord.Summary.Fixed)
	assert.Equal(t, 2, scanRecord.Summary.CriticalUnresolved)

	results, err := newRemediationService(nil, nil).Remediate(context.Background(), project, report, domain.RemediationOptions{}, nil)
	require.NoError(t, err)
	_, err = recorder.Record(project, "fix", report, results)
	require.NoError(t, err)

	stored, err := cache.New().Load(project.Root)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Len(t, stored.Results, len(report.Issues))

	entries, err := history.New().Load(project.Root)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "scan", entries[0].Command)
	assert.Equal(t, len(report.Issues), entries[0].Issues)
	assert.Equal(t, "fix", entries[1].Command)
	assert.Equal(t, 6, entries[1].Fixed)
}
