package application

import (
	"context"
	"fmt"

	"github.com/openkraft/devpilot/internal/domain"
	"github.com/openkraft/devpilot/internal/log"
)

// historyShown is how many recent runs the status view includes.
const historyShown = 5

// StatusService combines a fresh environment probe with the last recorded
// run, git state and recent history.
type StatusService struct {
	probe   domain.EnvironmentProbe
	store   domain.RunStore
	history domain.RunHistory
	git     domain.GitInfo
	logger  *log.Logger
}

func NewStatusService(
	probe domain.EnvironmentProbe,
	store domain.RunStore,
	history domain.RunHistory,
	git domain.GitInfo,
	logger *log.Logger,
) *StatusService {
	if logger == nil {
		logger = log.Nop()
	}
	return &StatusService{probe: probe, store: store, history: history, git: git, logger: logger}
}

// Report always succeeds. Sub-results that cannot be read are left empty and
// explained in Notes so renderers show them as unknown.
func (s *StatusService) Report(ctx context.Context, project *Project) *domain.StatusSummary {
	summary := &domain.StatusSummary{
		Root: project.Root,
		Env:  s.probe.Probe(ctx, project.Root, project.Config),
	}
	if summary.Env.IsDegraded() {
		summary.Notes = append(summary.Notes, fmt.Sprintf("could not determine: %v", summary.Env.Degraded))
	}

	if commit, err := s.git.CommitHash(project.Root); err == nil {
		summary.Git.Available = true
		summary.Git.Commit = commit
		if branch, err := s.git.Branch(project.Root); err == nil {
			summary.Git.Branch = branch
		}
		if dirty, err := s.git.IsDirty(project.Root); err == nil {
			summary.Git.Dirty = dirty
		}
	} else {
		s.logger.Debug("git info unavailable", "error", err)
	}

	record, err := s.store.Load(project.Root)
	switch {
	case err != nil:
		s.logger.WithError(err).Warn("reading last run failed")
		summary.Notes = append(summary.Notes, "last run record is unreadable; run devpilot scan")
	case record != nil:
		summary.LastRun = record
		if record.IsStale(summary.Git.Commit) {
			summary.Notes = append(summary.Notes, "last run was recorded at a different commit; results may be stale")
		}
	}

	entries, err := s.history.Load(project.Root)
	if err != nil {
		s.logger.WithError(err).Warn("reading run history failed")
	}
	if len(entries) > historyShown {
		entries = entries[len(entries)-historyShown:]
	}
	summary.History = entries

	return summary
}

// LastRunSummary returns the counts for the final summary line: the last fix pass
// when one was recorded, otherwise zero outcomes with the last scan's
// unresolved critical issues.
func LastRunSummary(summary *domain.StatusSummary) domain.FixSummary {
	if summary.LastRun == nil {
		return domain.FixSummary{}
	}
	return domain.Summarize(summary.LastRun.Report, summary.LastRun.Results)
}
