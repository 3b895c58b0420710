package application

import (
	"fmt"
	"sort"

	"github.com/openkraft/devpilot/internal/domain"
	"github.com/openkraft/devpilot/internal/domain/envfile"
	"github.com/openkraft/devpilot/internal/log"
)

// ConsoleService switches the env file between clean and verbose console modes.
type ConsoleService struct {
	workspaces domain.WorkspaceOpener
	logger     *log.Logger
}

func NewConsoleService(workspaces domain.WorkspaceOpener, logger *log.Logger) *ConsoleService {
	if logger == nil {
		logger = log.Nop()
	}
	return &ConsoleService{workspaces: workspaces, logger: logger}
}

// SetMode writes the flags of mode into the env file, creating the file if
// needed. Present keys are replaced in place, absent keys appended; running
// it twice changes nothing the second time.
func (s *ConsoleService) SetMode(project *Project, mode string) ([]envfile.Change, error) {
	settings, ok := project.Config.ConsoleModes[mode]
	if !ok {
		return nil, fmt.Errorf("unknown console mode %q (want %s or %s)", mode, domain.ConsoleClean, domain.ConsoleVerbose)
	}

	ws := s.workspaces.Open(project.Root)
	path := project.Config.EnvFile

	var data []byte
	if ws.Exists(path) {
		var err error
		if data, err = ws.ReadFile(path); err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
	}
	f := envfile.Parse(data)

	keys := make([]string, 0, len(settings))
	for k := range settings {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var changes []envfile.Change
	for _, k := range keys {
		if c, changed := f.Set(k, settings[k]); changed {
			changes = append(changes, c)
		}
	}
	if len(changes) == 0 {
		s.logger.Debug("console mode already set", "mode", mode)
		return nil, nil
	}

	cs := domain.NewChangeset(fmt.Sprintf("%s: switch console to %s mode", path, mode))
	cs.Set(path, f.Bytes())
	if err := ws.Commit(cs); err != nil {
		return nil, fmt.Errorf("writing %s: %w", path, err)
	}
	s.logger.Info("console mode set", "mode", mode, "changes", len(changes))
	return changes, nil
}

// Flags returns the current value of every declared flag; unset flags map
// to the empty string.
func (s *ConsoleService) Flags(project *Project) (map[string]string, error) {
	ws := s.workspaces.Open(project.Root)
	out := make(map[string]string, len(project.Config.Flags))
	for _, name := range project.Config.FlagNames() {
		out[name] = ""
	}
	if !ws.Exists(project.Config.EnvFile) {
		return out, nil
	}
	data, err := ws.ReadFile(project.Config.EnvFile)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", project.Config.EnvFile, err)
	}
	f := envfile.Parse(data)
	for name := range out {
		if v, ok := f.Get(name); ok {
			out[name] = v
		}
	}
	return out, nil
}
