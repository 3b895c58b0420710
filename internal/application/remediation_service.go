package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/openkraft/devpilot/internal/domain"
	"github.com/openkraft/devpilot/internal/domain/fixer"
	"github.com/openkraft/devpilot/internal/log"
)

// ConfirmFunc is asked before a planned changeset is committed. Returning
// false skips the issue.
type ConfirmFunc func(issue domain.Issue, cs *domain.Changeset) (bool, error)

// RemediationService applies fixers to the issues of a scan report.
type RemediationService struct {
	workspaces domain.WorkspaceOpener
	parser     domain.SourceParser
	locker     domain.Locker
	fixers     fixer.Registry
	logger     *log.Logger
}

func NewRemediationService(
	workspaces domain.WorkspaceOpener,
	parser domain.SourceParser,
	locker domain.Locker,
	fixers fixer.Registry,
	logger *log.Logger,
) *RemediationService {
	if logger == nil {
		logger = log.Nop()
	}
	return &RemediationService{
		workspaces: workspaces,
		parser:     parser,
		locker:     locker,
		fixers:     fixers,
		logger:     logger,
	}
}

// Remediate produces exactly one result per issue of report, in remediation
// order (critical first). Individual fixer failures become failed results and
// never stop the batch. A held project lock returns domain.ErrBusy before
// anything is touched. If ctx is cancelled between issues the results so far
// are returned together with ctx.Err().
func (s *RemediationService) Remediate(
	ctx context.Context,
	project *Project,
	report *domain.ScanReport,
	opts domain.RemediationOptions,
	confirm ConfirmFunc,
) ([]domain.FixResult, error) {
	if report == nil {
		return nil, errors.New("no scan report to remediate")
	}

	release, err := s.locker.Acquire(project.Root, project.Config.StaleAfter())
	if err != nil {
		return nil, err
	}
	defer release()

	ws := s.workspaces.Open(project.Root)
	env := &fixer.Env{Files: ws, Parser: s.parser, Config: project.Config}

	results := make([]domain.FixResult, 0, len(report.Issues))
	for _, issue := range domain.RemediationOrder(report.Issues) {
		if err := ctx.Err(); err != nil {
			s.logger.Warn("remediation interrupted", "done", len(results), "total", len(report.Issues))
			return results, err
		}
		result := s.remediateOne(ws, env, issue, opts, confirm)
		s.logger.Debug("issue remediated",
			"issue", issue.ID,
			"kind", issue.Kind,
			"location", issue.Location,
			"outcome", result.Outcome,
		)
		results = append(results, result)
	}

	summary := domain.Summarize(report, results)
	s.logger.Info("remediation complete",
		"root", project.Root,
		"dry_run", opts.DryRun,
		"fixed", summary.Fixed,
		"skipped", summary.Skipped,
		"failed", summary.Failed,
	)
	return results, nil
}

// remediateOne moves one issue from pending to a terminal outcome.
func (s *RemediationService) remediateOne(
	ws domain.Workspace,
	env *fixer.Env,
	issue domain.Issue,
	opts domain.RemediationOptions,
	confirm ConfirmFunc,
) domain.FixResult {
	skipped := func(reason string) domain.FixResult {
		r := domain.ResultFor(issue, domain.OutcomeSkipped)
		r.Reason = reason
		return r
	}
	failed := func(err error) domain.FixResult {
		r := domain.ResultFor(issue, domain.OutcomeFailed)
		r.Error = err.Error()
		return r
	}

	if !issue.AutoFixable {
		return skipped("manual fix required")
	}
	if !opts.Allows(issue.Kind) {
		return skipped("excluded by kind filter")
	}
	f, ok := s.fixers.Lookup(issue.Kind)
	if !ok {
		return skipped(fmt.Sprintf("no fixer for %s", issue.Kind))
	}

	cs, err := f.Plan(env, issue)
	switch {
	case errors.Is(err, domain.ErrAlreadyFixed):
		return skipped("already fixed")
	case errors.Is(err, domain.ErrNotApplicable):
		return skipped(err.Error())
	case err != nil:
		s.logger.WithError(err).Warn("fix planning failed", "issue", issue.ID, "location", issue.Location)
		return failed(fmt.Errorf("planning fix: %w", err))
	case cs.Empty():
		return skipped("already fixed")
	}

	if opts.DryRun {
		r := skipped("dry run")
		r.AppliedChange = cs.Description
		return r
	}
	if confirm != nil {
		ok, err := confirm(issue, cs)
		if err != nil {
			s.logger.WithError(err).Debug("confirmation aborted", "issue", issue.ID)
		}
		if err != nil || !ok {
			return skipped("declined")
		}
	}

	if err := ws.Commit(cs); err != nil {
		s.logger.WithError(err).Warn("fix commit failed", "issue", issue.ID, "files", cs.Paths())
		return failed(fmt.Errorf("writing fix: %w", err))
	}
	r := domain.ResultFor(issue, domain.OutcomeFixed)
	r.AppliedChange = cs.Description
	return r
}
