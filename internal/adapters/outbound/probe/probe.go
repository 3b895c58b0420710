// Package probe answers point-in-time questions about the local dev
// environment: which stack ports are bound and what the env file says.
package probe

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/openkraft/devpilot/internal/domain"
	"github.com/openkraft/devpilot/internal/domain/envfile"
)

// commandTimeout bounds each port query.
const commandTimeout = 3 * time.Second

// OSProbe implements domain.EnvironmentProbe using lsof, falling back to ss.
type OSProbe struct {
	runner domain.CommandRunner
	now    func() time.Time
}

func New(runner domain.CommandRunner) *OSProbe {
	return &OSProbe{runner: runner, now: time.Now}
}

// Probe never fails. Fields that cannot be determined are reported as
// unknown and named in Degraded.
func (p *OSProbe) Probe(ctx context.Context, root string, cfg domain.ProjectConfig) domain.EnvironmentStatus {
	status := domain.EnvironmentStatus{
		FrontendPort: cfg.FrontendPort,
		BackendPort:  cfg.BackendPort,
		EnvFile:      cfg.EnvFile,
		ProbedAt:     p.now().UTC(),
	}

	status.Frontend = p.portState(ctx, cfg.FrontendPort)
	if status.Frontend == domain.PortUnknown {
		status.Degraded = append(status.Degraded, "frontend")
	}
	status.Backend = p.portState(ctx, cfg.BackendPort)
	if status.Backend == domain.PortUnknown {
		status.Degraded = append(status.Degraded, "backend")
	}

	data, err := os.ReadFile(filepath.Join(root, cfg.EnvFile))
	switch {
	case err == nil:
		status.EnvFilePresent = true
		status.Flags = flagValues(envfile.Parse(data), cfg)
	case errors.Is(err, os.ErrNotExist):
	default:
		status.Degraded = append(status.Degraded, "env_file")
	}
	return status
}

func flagValues(f *envfile.File, cfg domain.ProjectConfig) map[string]string {
	out := make(map[string]string)
	for _, name := range cfg.FlagNames() {
		if v, ok := f.Get(name); ok {
			out[name] = v
		}
	}
	return out
}

// portState asks lsof, then ss. Only a missing or failing tool yields unknown.
func (p *OSProbe) portState(ctx context.Context, port int) domain.PortState {
	if state, ok := p.lsof(ctx, port); ok {
		return state
	}
	if state, ok := p.ss(ctx, port); ok {
		return state
	}
	return domain.PortUnknown
}

func (p *OSProbe) lsof(ctx context.Context, port int) (domain.PortState, bool) {
	ctx, cancel := context.WithTimeout(ctx, commandTimeout)
	defer cancel()

	res, err := p.runner.Run(ctx, "lsof", "-nP", fmt.Sprintf("-iTCP:%d", port), "-sTCP:LISTEN")
	switch {
	case err == nil:
		return listening(res.Stdout, port), true
	case res.ExitCode == 1 && strings.TrimSpace(res.Stdout) == "":
		// lsof exits 1 when nothing matches
		return domain.PortDown, true
	default:
		return domain.PortUnknown, false
	}
}

func (p *OSProbe) ss(ctx context.Context, port int) (domain.PortState, bool) {
	ctx, cancel := context.WithTimeout(ctx, commandTimeout)
	defer cancel()

	res, err := p.runner.Run(ctx, "ss", "-ltnH")
	if err != nil {
		return domain.PortUnknown, false
	}
	for _, line := range strings.Split(res.Stdout, "\n") {
		fields := strings.Fields(line)
		if len(fields) < 4 {
			continue
		}
		if endsWithPort(fields[3], port) {
			return domain.PortUp, true
		}
	}
	return domain.PortDown, true
}

// listening pattern-matches lsof output for a LISTEN socket on port.
func listening(out string, port int) domain.PortState {
	for _, line := range strings.Split(out, "\n") {
		if !strings.Contains(line, "(LISTEN)") {
			continue
		}
		for _, field := range strings.Fields(line) {
			if endsWithPort(field, port) {
				return domain.PortUp
			}
		}
	}
	return domain.PortDown
}

func endsWithPort(addr string, port int) bool {
	i := strings.LastIndex(addr, ":")
	if i < 0 {
		return false
	}
	return addr[i+1:] == strconv.Itoa(port)
}
