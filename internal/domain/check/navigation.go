package check

import (
	"context"
	"fmt"

	"github.com/openkraft/devpilot/internal/domain"
)

// Navigation resolves navigation links against the route table.
type Navigation struct{}

func (Navigation) Name() string { return "navigation" }

func (Navigation) Run(ctx context.Context, in *Input) ([]domain.Issue, error) {
	routesFile := in.Config.RoutesFile
	if !in.Reader.Exists(routesFile) {
		return nil, nil
	}
	data, err := in.Reader.ReadFile(routesFile)
	if err != nil {
		return nil, fmt.Errorf("reading routes file: %w", err)
	}
	routes := in.Parser.ParseRoutes(routesFile, data)
	paths := RoutePaths(routes)

	navFiles := in.NavigationFiles()
	if len(navFiles) == 0 {
		return nil, nil
	}

	var (
		issues    []domain.Issue
		linked    = make(map[string]bool)
		cloneable bool
	)
	for _, nav := range navFiles {
		navData, err := in.Reader.ReadFile(nav)
		if err != nil {
			return nil, fmt.Errorf("reading navigation file %s: %w", nav, err)
		}
		for _, link := range in.Parser.ParseLinks(nav, navData) {
			cloneable = cloneable || link.Cloneable
			target := LinkPath(link.Target)
			if resolves(target, paths) {
				linked[target] = true
				continue
			}
			issue := domain.NewIssue(domain.KindBrokenLink, nav+"#"+link.Target, domain.SeverityWarning,
				fmt.Sprintf("link to %s matches no route", link.Target))
			issue.Line = link.Line
			if fix, ok := ClosestRoute(link.Target, paths); ok {
				issue.Suggestion = fmt.Sprintf("point the link at %s", fix)
				issue.AutoFixable = true
			} else {
				issue.Suggestion = "add a route for it or remove the link"
			}
			issues = append(issues, issue)
		}
	}

	for _, r := range routes {
		if !IsStaticRoute(r.Path) || linked[r.Path] || in.Config.IsNavExcluded(r.Path) {
			continue
		}
		issue := domain.NewIssue(domain.KindUnlinkedRoute, routesFile+"#"+r.Path, domain.SeverityInfo,
			fmt.Sprintf("route %s is not reachable from navigation", r.Path))
		issue.Line = r.Line
		issue.Suggestion = fmt.Sprintf("add a link to %s labelled %q", r.Path, NavLabel(r.Component, r.Path))
		issue.AutoFixable = cloneable
		issues = append(issues, issue)
	}
	return issues, nil
}

// RoutePaths lists the distinct declared route paths in order.
func RoutePaths(routes []domain.Route) []string {
	seen := make(map[string]bool)
	var out []string
	for _, r := range routes {
		if !seen[r.Path] {
			seen[r.Path] = true
			out = append(out, r.Path)
		}
	}
	return out
}

func resolves(target string, routes []string) bool {
	for _, r := range routes {
		if MatchesRoute(target, r) {
			return true
		}
	}
	return false
}
