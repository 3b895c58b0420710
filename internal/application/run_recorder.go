package application

import (
	"fmt"
	"time"

	"github.com/openkraft/devpilot/internal/domain"
)

// RunRecorder persists the last scan/fix pair and appends run history.
type RunRecorder struct {
	store   domain.RunStore
	history domain.RunHistory
	now     func() time.Time
}

func NewRunRecorder(store domain.RunStore, history domain.RunHistory) *RunRecorder {
	return &RunRecorder{store: store, history: history, now: time.Now}
}

// Record writes the run record and a history entry for command. results may
// be nil for a scan-only run.
func (r *RunRecorder) Record(project *Project, command string, report *domain.ScanReport, results []domain.FixResult) (*domain.RunRecord, error) {
	record := &domain.RunRecord{
		Report:  report,
		Results: results,
		Summary: domain.Summarize(report, results),
	}
	if err := r.store.Save(project.Root, record); err != nil {
		return record, fmt.Errorf("saving run record: %w", err)
	}

	entry := domain.RunEntry{
		Timestamp:          r.now().UTC().Format(time.RFC3339),
		Command:            command,
		Fixed:              record.Summary.Fixed,
		Skipped:            record.Summary.Skipped,
		Failed:             record.Summary.Failed,
		CriticalUnresolved: record.Summary.CriticalUnresolved,
	}
	if report != nil {
		entry.Issues = len(report.Issues)
		entry.CommitHash = report.CommitHash
	}
	if err := r.history.Save(project.Root, entry); err != nil {
		return record, fmt.Errorf("saving run history: %w", err)
	}
	return record, nil
}
