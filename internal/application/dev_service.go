package application

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/openkraft/devpilot/internal/domain"
	"github.com/openkraft/devpilot/internal/log"
)

// DefaultReadinessInterval is how often the dev session polls the stack ports.
const DefaultReadinessInterval = 2 * time.Second

// DevService launches the full dev stack after normalizing console flags.
type DevService struct {
	console  *ConsoleService
	launcher domain.Launcher
	probe    domain.EnvironmentProbe
	logger   *log.Logger
	interval time.Duration
}

func NewDevService(console *ConsoleService, launcher domain.Launcher, probe domain.EnvironmentProbe, logger *log.Logger) *DevService {
	if logger == nil {
		logger = log.Nop()
	}
	return &DevService{
		console:  console,
		launcher: launcher,
		probe:    probe,
		logger:   logger,
		interval: DefaultReadinessInterval,
	}
}

// WithInterval overrides the readiness polling interval.
func (s *DevService) WithInterval(d time.Duration) *DevService {
	cp := *s
	cp.interval = d
	return &cp
}

// Run applies mode (when non-empty), then runs the dev command with
// inherited stdio until it exits or ctx is cancelled. The stack's exit code
// is returned as-is; only failing to start it is an error.
func (s *DevService) Run(ctx context.Context, project *Project, mode string) (int, error) {
	if mode != "" {
		changes, err := s.console.SetMode(project, mode)
		if err != nil {
			return -1, err
		}
		for _, c := range changes {
			s.logger.Info("env flag normalized", "key", c.Key, "value", c.New)
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	watchCtx, stopWatch := context.WithCancel(gctx)
	defer stopWatch()

	code := -1
	g.Go(func() error {
		defer stopWatch()
		s.logger.Info("starting dev stack", "command", project.Config.DevCommand, "dir", project.Root)
		c, err := s.launcher.Launch(gctx, project.Root, project.Config.DevCommand)
		code = c
		return err
	})
	g.Go(func() error {
		s.watchReadiness(watchCtx, project)
		return nil
	})

	if err := g.Wait(); err != nil {
		return code, err
	}
	s.logger.Info("dev stack exited", "code", code)
	return code, nil
}

// watchReadiness logs each stack port the first time it is seen listening.
// It returns once both are up or ctx ends.
func (s *DevService) watchReadiness(ctx context.Context, project *Project) {
	limiter := rate.NewLimiter(rate.Every(s.interval), 1)
	var frontendUp, backendUp bool

	for !frontendUp || !backendUp {
		if err := limiter.Wait(ctx); err != nil {
			return
		}
		status := s.probe.Probe(ctx, project.Root, project.Config)
		if !frontendUp && status.Frontend == domain.PortUp {
			frontendUp = true
			s.logger.Info("frontend is up", "port", status.FrontendPort)
		}
		if !backendUp && status.Backend == domain.PortUp {
			backendUp = true
			s.logger.Info("backend is up", "port", status.BackendPort)
		}
		if status.Frontend == domain.PortUnknown && status.Backend == domain.PortUnknown {
			s.logger.Debug("readiness unknown; port tools unavailable")
			return
		}
	}
}
