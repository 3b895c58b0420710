package domain

import "fmt"

type Outcome string

const (
	OutcomeFixed   Outcome = "fixed"
	OutcomeSkipped Outcome = "skipped"
	OutcomeFailed  Outcome = "failed"
)

// FixResult is the outcome of attempting to remediate one issue.
type FixResult struct {
	IssueID       string    `json:"issue_id"`
	Kind          IssueKind `json:"kind"`
	Location      string    `json:"location"`
	Severity      Severity  `json:"severity"`
	Outcome       Outcome   `json:"outcome"`
	AppliedChange string    `json:"applied_change,omitempty"`
	Reason        string    `json:"reason,omitempty"`
	Error         string    `json:"error,omitempty"`
}

// ResultFor starts a result for the given issue.
func ResultFor(issue Issue, outcome Outcome) FixResult {
	return FixResult{
		IssueID:  issue.ID,
		Kind:     issue.Kind,
		Location: issue.Location,
		Severity: issue.Severity,
		Outcome:  outcome,
	}
}

type RemediationOptions struct {
	DryRun bool        `json:"dry_run"`
	Kinds  []IssueKind `json:"kinds,omitempty"`
}

// Allows reports whether the kind filter admits kind. An empty filter admits all.
func (o RemediationOptions) Allows(kind IssueKind) bool {
	if len(o.Kinds) == 0 {
		return true
	}
	for _, k := range o.Kinds {
		if k == kind {
			return true
		}
	}
	return false
}

// FixSummary counts outcomes of a pass.
type FixSummary struct {
	Fixed              int `json:"fixed"`
	Skipped            int `json:"skipped"`
	Failed             int `json:"failed"`
	CriticalUnresolved int `json:"critical_unresolved"`
}

// Summarize tallies results. Critical issues of the report without a fixed
// result count as unresolved; a nil report yields zero unresolved.
func Summarize(report *ScanReport, results []FixResult) FixSummary {
	var s FixSummary
	fixed := make(map[string]bool, len(results))
	for _, r := range results {
		switch r.Outcome {
		case OutcomeFixed:
			s.Fixed++
			fixed[r.IssueID] = true
		case OutcomeSkipped:
			s.Skipped++
		case OutcomeFailed:
			s.Failed++
		}
	}
	if report != nil {
		for _, i := range report.Issues {
			if i.Severity == SeverityCritical && !fixed[i.ID] {
				s.CriticalUnresolved++
			}
		}
	}
	return s
}

func (s FixSummary) String() string {
	return fmt.Sprintf("fixed=%d skipped=%d failed=%d critical-unresolved=%d",
		s.Fixed, s.Skipped, s.Failed, s.CriticalUnresolved)
}
