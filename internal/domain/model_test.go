package domain_test

import (
	"testing"

	"github.com/openkraft/devpilot/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestSeverity_Rank(t *testing.T) {
	assert.Greater(t, domain.SeverityCritical.Rank(), domain.SeverityWarning.Rank())
	assert.Greater(t, domain.SeverityWarning.Rank(), domain.SeverityInfo.Rank())
	assert.Equal(t, -1, domain.Severity("bogus").Rank())
}

func TestIssueID_StableAndKeyed(t *testing.T) {
	a := domain.IssueID(domain.KindBrokenLink, "src/components/Navigation.tsx#/About")
	b := domain.IssueID(domain.KindBrokenLink, "src/components/Navigation.tsx#/About")
	c := domain.IssueID(domain.KindUnlinkedRoute, "src/components/Navigation.tsx#/About")

	assert.Len(t, a, 16)
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
}

func TestNewIssue(t *testing.T) {
	i := domain.NewIssue(domain.KindMissingRoute, "src/pages/Settings.tsx", domain.SeverityWarning, "no route")
	assert.Equal(t, domain.IssueID(domain.KindMissingRoute, "src/pages/Settings.tsx"), i.ID)
	assert.Equal(t, "missing_route|src/pages/Settings.tsx", i.Key())
	assert.False(t, i.AutoFixable)
}

func TestSortIssues(t *testing.T) {
	issues := []domain.Issue{
		domain.NewIssue(domain.KindUnlinkedRoute, "b", domain.SeverityInfo, ""),
		domain.NewIssue(domain.KindDuplicateRoute, "b", domain.SeverityWarning, ""),
		domain.NewIssue(domain.KindBrokenLink, "a", domain.SeverityWarning, ""),
	}
	domain.SortIssues(issues)
	assert.Equal(t, "a", issues[0].Location)
	assert.Equal(t, domain.KindDuplicateRoute, issues[1].Kind)
	assert.Equal(t, domain.KindUnlinkedRoute, issues[2].Kind)
}

func TestRemediationOrder_CriticalFirst(t *testing.T) {
	issues := []domain.Issue{
		domain.NewIssue(domain.KindOrphanedComponent, "a", domain.SeverityInfo, ""),
		domain.NewIssue(domain.KindBrokenLink, "z", domain.SeverityWarning, ""),
		domain.NewIssue(domain.KindDanglingRoute, "m", domain.SeverityCritical, ""),
		domain.NewIssue(domain.KindMissingEnvFlag, "b", domain.SeverityWarning, ""),
	}
	ordered := domain.RemediationOrder(issues)

	var locs []string
	for _, i := range ordered {
		locs = append(locs, i.Location)
	}
	assert.Equal(t, []string{"m", "b", "z", "a"}, locs)
	assert.Equal(t, "a", issues[0].Location, "input must not be reordered")
}

func TestScanReport_Queries(t *testing.T) {
	fixable := domain.NewIssue(domain.KindBrokenLink, "x", domain.SeverityWarning, "")
	fixable.AutoFixable = true
	r := &domain.ScanReport{Issues: []domain.Issue{
		fixable,
		domain.NewIssue(domain.KindDanglingRoute, "y", domain.SeverityCritical, ""),
	}}

	assert.True(t, r.Contains(fixable.ID))
	assert.False(t, r.Contains("nope"))
	assert.Equal(t, 1, r.CountSeverity(domain.SeverityCritical))
	assert.Len(t, r.AutoFixable(), 1)
}
