package domain

import (
	"fmt"
	"sort"
	"time"

	"github.com/zeebo/blake3"
)

// IssueKind classifies a detected problem. The set is open: checks may
// introduce kinds that have no fixer.
type IssueKind string

const (
	KindMissingRoute         IssueKind = "missing_route"
	KindDanglingRoute        IssueKind = "dangling_route"
	KindDuplicateRoute       IssueKind = "duplicate_route"
	KindBrokenLink           IssueKind = "broken_link"
	KindUnlinkedRoute        IssueKind = "unlinked_route"
	KindDuplicateHandler     IssueKind = "duplicate_handler"
	KindOrphanedComponent    IssueKind = "orphaned_component"
	KindMissingEnvFile       IssueKind = "missing_env_file"
	KindMisconfiguredEnvFlag IssueKind = "misconfigured_env_flag"
	KindMissingEnvFlag       IssueKind = "missing_env_flag"
	KindDuplicateEnvKey      IssueKind = "duplicate_env_key"
	KindServiceDown          IssueKind = "service_down"
	KindScanError            IssueKind = "scan_error"
)

type Severity string

const (
	SeverityInfo     Severity = "info"
	SeverityWarning  Severity = "warning"
	SeverityCritical Severity = "critical"
)

// Rank orders severities; higher is more urgent.
func (s Severity) Rank() int {
	switch s {
	case SeverityCritical:
		return 2
	case SeverityWarning:
		return 1
	case SeverityInfo:
		return 0
	default:
		return -1
	}
}

// Issue is a single problem found by a scan pass. Identity is (Kind, Location).
type Issue struct {
	ID          string    `json:"id"`
	Kind        IssueKind `json:"kind"`
	Location    string    `json:"location"`
	Line        int       `json:"line,omitempty"`
	Severity    Severity  `json:"severity"`
	Detail      string    `json:"detail"`
	Suggestion  string    `json:"suggestion,omitempty"`
	AutoFixable bool      `json:"auto_fixable"`
}

// NewIssue builds an issue with its stable ID filled in.
func NewIssue(kind IssueKind, location string, severity Severity, detail string) Issue {
	return Issue{
		ID:       IssueID(kind, location),
		Kind:     kind,
		Location: location,
		Severity: severity,
		Detail:   detail,
	}
}

// IssueID derives a short stable identifier from kind and location.
func IssueID(kind IssueKind, location string) string {
	hasher := blake3.New()
	_, _ = hasher.Write([]byte(string(kind) + "\x00" + location))
	return fmt.Sprintf("%x", hasher.Sum(nil))[:16]
}

// Key returns the identity of the issue.
func (i Issue) Key() string { return string(i.Kind) + "|" + i.Location }

// ScanReport is the ordered output of one scanner pass.
type ScanReport struct {
	ID             string    `json:"id"`
	Root           string    `json:"root"`
	ScannerVersion string    `json:"scanner_version"`
	CommitHash     string    `json:"commit_hash,omitempty"`
	Timestamp      time.Time `json:"timestamp"`
	Checks         []string  `json:"checks"`
	Issues         []Issue   `json:"issues"`
	Partial        bool      `json:"partial,omitempty"`
}

// Contains reports whether an issue with the given ID belongs to the report.
func (r *ScanReport) Contains(id string) bool {
	for _, i := range r.Issues {
		if i.ID == id {
			return true
		}
	}
	return false
}

// CountSeverity counts issues of the given severity.
func (r *ScanReport) CountSeverity(s Severity) int {
	n := 0
	for _, i := range r.Issues {
		if i.Severity == s {
			n++
		}
	}
	return n
}

// AutoFixable returns the issues a remediation pass may mutate files for.
func (r *ScanReport) AutoFixable() []Issue {
	var out []Issue
	for _, i := range r.Issues {
		if i.AutoFixable {
			out = append(out, i)
		}
	}
	return out
}

// SortIssues orders issues by location then kind, in place.
func SortIssues(issues []Issue) {
	sort.SliceStable(issues, func(a, b int) bool {
		if issues[a].Location != issues[b].Location {
			return issues[a].Location < issues[b].Location
		}
		return issues[a].Kind < issues[b].Kind
	})
}

// RemediationOrder returns a copy of issues ordered critical first, then by
// location and kind.
func RemediationOrder(issues []Issue) []Issue {
	out := make([]Issue, len(issues))
	copy(out, issues)
	sort.SliceStable(out, func(a, b int) bool {
		ra, rb := out[a].Severity.Rank(), out[b].Severity.Rank()
		if ra != rb {
			return ra > rb
		}
		if out[a].Location != out[b].Location {
			return out[a].Location < out[b].Location
		}
		return out[a].Kind < out[b].Kind
	})
	return out
}
