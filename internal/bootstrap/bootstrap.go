// Package bootstrap wires the outbound adapters into the application
// services shared by the CLI and the MCP server.
package bootstrap

import (
	"github.com/openkraft/devpilot/internal/adapters/outbound/cache"
	"github.com/openkraft/devpilot/internal/adapters/outbound/config"
	"github.com/openkraft/devpilot/internal/adapters/outbound/detector"
	"github.com/openkraft/devpilot/internal/adapters/outbound/gitinfo"
	"github.com/openkraft/devpilot/internal/adapters/outbound/history"
	"github.com/openkraft/devpilot/internal/adapters/outbound/launcher"
	"github.com/openkraft/devpilot/internal/adapters/outbound/lock"
	"github.com/openkraft/devpilot/internal/adapters/outbound/parser"
	"github.com/openkraft/devpilot/internal/adapters/outbound/probe"
	"github.com/openkraft/devpilot/internal/adapters/outbound/scanner"
	"github.com/openkraft/devpilot/internal/adapters/outbound/workspace"
	"github.com/openkraft/devpilot/internal/application"
	"github.com/openkraft/devpilot/internal/domain/fixer"
	"github.com/openkraft/devpilot/internal/log"
)

// Services holds one instance of every application service.
type Services struct {
	Resolver    *application.ProjectResolver
	Scan        *application.ScanService
	Remediation *application.RemediationService
	Recorder    *application.RunRecorder
	Status      *application.StatusService
	Console     *application.ConsoleService
	Dev         *application.DevService
	Store       *cache.Store
}

// New builds Services backed by the real filesystem, git and OS probes.
func New(logger *log.Logger) *Services {
	if logger == nil {
		logger = log.Nop()
	}

	var (
		par        = parser.New()
		workspaces = workspace.NewOpener()
		git        = gitinfo.New()
		store      = cache.New()
		runs       = history.New()
		osProbe    = probe.New(probe.ExecRunner{})
	)

	console := application.NewConsoleService(workspaces, logger)
	return &Services{
		Resolver:    application.NewProjectResolver(detector.New(), config.New()),
		Scan:        application.NewScanService(scanner.New(), par, osProbe, workspaces, git, logger),
		Remediation: application.NewRemediationService(workspaces, par, lock.New(), fixer.Default(), logger),
		Recorder:    application.NewRunRecorder(store, runs),
		Status:      application.NewStatusService(osProbe, store, runs, git, logger),
		Console:     console,
		Dev:         application.NewDevService(console, launcher.New(), osProbe, logger),
		Store:       store,
	}
}
