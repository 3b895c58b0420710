package application

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/openkraft/devpilot/internal/domain"
	"github.com/openkraft/devpilot/internal/domain/check"
	"github.com/openkraft/devpilot/internal/log"
)

// ScannerVersion tags every report with the check battery revision.
const ScannerVersion = "devpilot-scan/1"

// ScanService orchestrates the scan pipeline:
// list files → probe environment → run check battery → assemble report.
type ScanService struct {
	scanner    domain.ProjectScanner
	parser     domain.SourceParser
	probe      domain.EnvironmentProbe
	workspaces domain.WorkspaceOpener
	git        domain.GitInfo
	checks     []check.Check
	logger     *log.Logger
	now        func() time.Time
}

func NewScanService(
	scanner domain.ProjectScanner,
	parser domain.SourceParser,
	probe domain.EnvironmentProbe,
	workspaces domain.WorkspaceOpener,
	git domain.GitInfo,
	logger *log.Logger,
) *ScanService {
	if logger == nil {
		logger = log.Nop()
	}
	return &ScanService{
		scanner:    scanner,
		parser:     parser,
		probe:      probe,
		workspaces: workspaces,
		git:        git,
		checks:     check.Battery(),
		logger:     logger,
		now:        time.Now,
	}
}

// WithChecks replaces the check battery.
func (s *ScanService) WithChecks(checks ...check.Check) *ScanService {
	cp := *s
	cp.checks = checks
	return &cp
}

// Scan runs the battery against the project. Check failures become
// scan_error issues; cancellation returns the partial report with
// Partial set. Only a failure to list the project is returned as an error.
func (s *ScanService) Scan(ctx context.Context, project *Project) (*domain.ScanReport, error) {
	// 1. List files
	listing, err := s.scanner.Scan(project.Root, project.Config.ExcludePaths...)
	if err != nil {
		return nil, fmt.Errorf("listing project files: %w", err)
	}

	// 2. Probe the running stack
	status := s.probe.Probe(ctx, project.Root, project.Config)
	if status.IsDegraded() {
		s.logger.Warn("environment probe degraded", "fields", status.Degraded)
	}

	// 3. Run the battery
	in := &check.Input{
		Root:   project.Root,
		Config: project.Config,
		Files:  listing.AllFiles,
		Status: status,
		Reader: s.workspaces.Open(project.Root),
		Parser: s.parser,
	}
	outcome := check.RunBattery(ctx, s.checks, in)
	for _, issue := range outcome.Issues {
		if issue.Kind == domain.KindScanError {
			s.logger.Warn("check failed", "location", issue.Location, "error", issue.Detail)
		}
	}

	// 4. Assemble
	report := &domain.ScanReport{
		ID:             uuid.NewString(),
		Root:           project.Root,
		ScannerVersion: ScannerVersion,
		Timestamp:      s.now().UTC(),
		Checks:         outcome.Ran,
		Issues:         outcome.Issues,
		Partial:        outcome.Partial,
	}
	if report.Issues == nil {
		report.Issues = []domain.Issue{}
	}
	if hash, err := s.git.CommitHash(project.Root); err == nil {
		report.CommitHash = hash
	} else {
		s.logger.Debug("no commit hash for report", "error", err)
	}

	s.logger.Info("scan complete",
		"root", project.Root,
		"checks", len(report.Checks),
		"issues", len(report.Issues),
		"partial", report.Partial,
	)
	return report, nil
}
