// Package check holds the fixed battery of structural checks run by a scan pass.
package check

import (
	"context"
	"path"
	"strings"

	"github.com/openkraft/devpilot/internal/domain"
)

// Input is the shared read-only view every check works from.
type Input struct {
	Root   string
	Config domain.ProjectConfig
	Files  []string // slash-separated, relative to Root
	Status domain.EnvironmentStatus
	Reader domain.FileReader
	Parser domain.SourceParser
}

// Check is one independent structural check.
type Check interface {
	Name() string
	Run(ctx context.Context, in *Input) ([]domain.Issue, error)
}

// Battery returns the checks of a scan pass in execution order.
func Battery() []Check {
	return []Check{
		RouteTable{},
		Navigation{},
		Handlers{},
		Components{},
		EnvFlags{},
		StackHealth{},
	}
}

// Names lists the names of checks in order.
func Names(checks []Check) []string {
	names := make([]string, 0, len(checks))
	for _, c := range checks {
		names = append(names, c.Name())
	}
	return names
}

// Outcome is the combined output of a battery run.
type Outcome struct {
	Issues  []domain.Issue
	Ran     []string
	Partial bool
}

// RunBattery executes checks in order. A failing check contributes a single
// scan_error issue and the battery moves on. If ctx is cancelled between
// checks the outcome gathered so far is returned with Partial set.
func RunBattery(ctx context.Context, checks []Check, in *Input) Outcome {
	var out Outcome
	seen := make(map[string]bool)

	for _, c := range checks {
		if ctx.Err() != nil {
			out.Partial = true
			break
		}

		issues, err := c.Run(ctx, in)
		if err != nil && ctx.Err() != nil {
			// interrupted, not broken
			out.Partial = true
			break
		}
		if err != nil {
			issues = []domain.Issue{ScanError(c.Name(), err)}
		}
		domain.SortIssues(issues)

		for _, issue := range issues {
			if seen[issue.Key()] {
				continue
			}
			seen[issue.Key()] = true
			out.Issues = append(out.Issues, issue)
		}
		out.Ran = append(out.Ran, c.Name())
	}
	return out
}

// ScanError folds a check failure into the report.
func ScanError(name string, err error) domain.Issue {
	issue := domain.NewIssue(domain.KindScanError, "check:"+name, domain.SeverityWarning, err.Error())
	issue.Suggestion = "re-run the scan after fixing the underlying error"
	return issue
}

// FilesIn returns files below dir whose extension is one of exts, skipping
// tests and stories.
func (in *Input) FilesIn(dir string, exts ...string) []string {
	prefix := strings.TrimSuffix(path.Clean(dir), "/") + "/"
	var out []string
	for _, f := range in.Files {
		if dir != "" && dir != "." && !strings.HasPrefix(f, prefix) {
			continue
		}
		if !hasExt(f, exts...) || isAuxiliary(f) {
			continue
		}
		out = append(out, f)
	}
	return out
}

// HasFile reports whether rel is part of the file listing.
func (in *Input) HasFile(rel string) bool {
	rel = path.Clean(rel)
	for _, f := range in.Files {
		if f == rel {
			return true
		}
	}
	return false
}

// ServerFiles lists handler-bearing sources under every configured server dir.
func (in *Input) ServerFiles() []string {
	var out []string
	for _, dir := range in.Config.ServerDirs {
		out = append(out, in.FilesIn(dir, serverExts...)...)
	}
	return out
}

// NavigationFiles lists configured navigation files present in the checkout.
func (in *Input) NavigationFiles() []string {
	var out []string
	for _, f := range in.Config.NavigationFiles {
		if in.HasFile(f) {
			out = append(out, path.Clean(f))
		}
	}
	return out
}
