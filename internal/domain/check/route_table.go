package check

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/openkraft/devpilot/internal/domain"
)

// RouteTable checks the routes file against the pages directory.
type RouteTable struct{}

func (RouteTable) Name() string { return "route_table" }

func (RouteTable) Run(ctx context.Context, in *Input) ([]domain.Issue, error) {
	routesFile := in.Config.RoutesFile
	if !in.Reader.Exists(routesFile) {
		return nil, nil
	}
	data, err := in.Reader.ReadFile(routesFile)
	if err != nil {
		return nil, fmt.Errorf("reading routes file: %w", err)
	}

	routes := in.Parser.ParseRoutes(routesFile, data)
	imports := in.Parser.ParseImports(routesFile, data)
	importedAs := importTargets(routesFile, imports, in.Config.ImportAliases)
	canInsert := strings.Contains(string(data), "</Routes>")

	var issues []domain.Issue
	issues = append(issues, missingRoutes(in, routesFile, routes, importedAs, canInsert)...)
	issues = append(issues, danglingRoutes(routesFile, data, routes, importedAs)...)
	issues = append(issues, duplicateRoutes(routesFile, routes)...)
	return issues, nil
}

// importTargets maps each imported binding name to its resolved target. Bare
// package imports map to the empty string.
func importTargets(file string, imports []domain.Import, aliases map[string]string) map[string]string {
	out := make(map[string]string)
	for _, imp := range imports {
		target, _ := ResolveImport(file, imp.Spec, aliases)
		for _, name := range imp.Names {
			out[name] = target
		}
	}
	return out
}

// PageRouted reports whether page is rendered by any route, directly by
// component name or through an import that resolves to the page file.
func PageRouted(page string, routes []domain.Route, importedAs map[string]string) bool {
	name := ComponentName(page)
	for _, r := range routes {
		if r.Component == "" {
			continue
		}
		if target, ok := importedAs[r.Component]; ok && target != "" {
			if ImportsFile(target, page) {
				return true
			}
			continue
		}
		if r.Component == name {
			return true
		}
	}
	return false
}

func missingRoutes(in *Input, routesFile string, routes []domain.Route, importedAs map[string]string, canInsert bool) []domain.Issue {
	taken := make(map[string]bool, len(routes))
	for _, r := range routes {
		taken[r.Path] = true
	}

	var issues []domain.Issue
	for _, page := range in.FilesIn(in.Config.PagesDir, componentExts...) {
		if PageRouted(page, routes, importedAs) {
			continue
		}
		name := ComponentName(page)
		if name == "index" {
			continue
		}
		want := RoutePath(name)
		issue := domain.NewIssue(domain.KindMissingRoute, page, domain.SeverityWarning,
			fmt.Sprintf("page %s is not rendered by any route in %s", name, routesFile))
		issue.Suggestion = fmt.Sprintf(`add <Route path="%s" element={<%s />} />`, want, name)
		issue.AutoFixable = canInsert && !taken[want]
		issues = append(issues, issue)
	}
	return issues
}

func danglingRoutes(routesFile string, data []byte, routes []domain.Route, importedAs map[string]string) []domain.Issue {
	var issues []domain.Issue
	for _, r := range routes {
		if r.Component == "" {
			continue
		}
		if _, ok := importedAs[r.Component]; ok {
			continue
		}
		if declaredIn(data, r.Component) {
			continue
		}
		issue := domain.NewIssue(domain.KindDanglingRoute, routesFile+"#"+r.Path, domain.SeverityCritical,
			fmt.Sprintf("route %s renders %s, which is neither imported nor declared", r.Path, r.Component))
		issue.Line = r.Line
		issue.Suggestion = fmt.Sprintf("import %s or remove the route", r.Component)
		issues = append(issues, issue)
	}
	return issues
}

func declaredIn(data []byte, name string) bool {
	decl := regexp.MustCompile(`\b(?:function|const|let|var|class)\s+` + regexp.QuoteMeta(name) + `\b`)
	return decl.Match(data)
}

func duplicateRoutes(routesFile string, routes []domain.Route) []domain.Issue {
	byPath := make(map[string][]domain.Route)
	var order []string
	for _, r := range routes {
		if _, ok := byPath[r.Path]; !ok {
			order = append(order, r.Path)
		}
		byPath[r.Path] = append(byPath[r.Path], r)
	}

	var issues []domain.Issue
	for _, p := range order {
		group := byPath[p]
		if len(group) < 2 {
			continue
		}
		issue := domain.NewIssue(domain.KindDuplicateRoute, routesFile+"#"+p, domain.SeverityWarning,
			fmt.Sprintf("route %s is declared %d times", p, len(group)))
		issue.Line = group[1].Line
		issue.AutoFixable = IdenticalRoutes(group)
		if issue.AutoFixable {
			issue.Suggestion = "remove the repeated declarations"
		} else {
			issue.Suggestion = "keep one declaration; the duplicates render different elements"
		}
		issues = append(issues, issue)
	}
	return issues
}

// IdenticalRoutes reports whether every route in group has the same source line.
func IdenticalRoutes(group []domain.Route) bool {
	first := strings.TrimSpace(group[0].Raw)
	for _, r := range group[1:] {
		if strings.TrimSpace(r.Raw) != first {
			return false
		}
	}
	return true
}
