package domain

// RunRecord is the most recent scan and its remediation results, if any.
// It is what the cache store keeps under .devpilot/cache.
type RunRecord struct {
	Report  *ScanReport `json:"report"`
	Results []FixResult `json:"results,omitempty"`
	Summary FixSummary  `json:"summary"`
}

// IsStale reports whether the record was produced at a different commit
// than headCommit. Records without commit information are never stale.
func (r *RunRecord) IsStale(headCommit string) bool {
	if r == nil || r.Report == nil || r.Report.CommitHash == "" || headCommit == "" {
		return false
	}
	return r.Report.CommitHash != headCommit
}
