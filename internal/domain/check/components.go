package check

import (
	"context"
	"fmt"

	"github.com/openkraft/devpilot/internal/domain"
)

// Components finds component files that nothing imports.
type Components struct{}

func (Components) Name() string { return "components" }

func (Components) Run(ctx context.Context, in *Input) ([]domain.Issue, error) {
	components := in.FilesIn(in.Config.ComponentsDir, componentExts...)
	if len(components) == 0 {
		return nil, nil
	}

	var targets []string
	for _, file := range in.FilesIn(in.Config.SourceDir, sourceExts...) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		data, err := in.Reader.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", file, err)
		}
		for _, imp := range in.Parser.ParseImports(file, data) {
			if target, ok := ResolveImport(file, imp.Spec, in.Config.ImportAliases); ok {
				targets = append(targets, target)
			}
		}
	}

	var issues []domain.Issue
	for _, c := range components {
		if imported(c, targets) {
			continue
		}
		issue := domain.NewIssue(domain.KindOrphanedComponent, c, domain.SeverityInfo,
			fmt.Sprintf("component %s is never imported", ComponentName(c)))
		issue.Suggestion = "use it or delete the file"
		issues = append(issues, issue)
	}
	return issues, nil
}

func imported(file string, targets []string) bool {
	for _, t := range targets {
		if ImportsFile(t, file) {
			return true
		}
	}
	return false
}
