package fixer

import (
	"errors"
	"fmt"
	"strings"

	"github.com/openkraft/devpilot/internal/domain"
	"github.com/openkraft/devpilot/internal/domain/check"
)

// RouteFixer adds a route (and its import) for a page that has none.
type RouteFixer struct{}

func (RouteFixer) Kinds() []domain.IssueKind { return []domain.IssueKind{domain.KindMissingRoute} }

func (RouteFixer) Plan(env *Env, issue domain.Issue) (*domain.Changeset, error) {
	page := issue.Location
	routesFile := env.Config.RoutesFile
	if !env.Files.Exists(page) || !env.Files.Exists(routesFile) {
		return nil, domain.ErrNotApplicable
	}

	text, data, err := readText(env.Files, routesFile)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", routesFile, err)
	}
	routes := env.Parser.ParseRoutes(routesFile, data)
	imports := env.Parser.ParseImports(routesFile, data)

	importedAs := make(map[string]string)
	for _, imp := range imports {
		target, _ := check.ResolveImport(routesFile, imp.Spec, env.Config.ImportAliases)
		for _, n := range imp.Names {
			importedAs[n] = target
		}
	}
	if check.PageRouted(page, routes, importedAs) {
		return nil, domain.ErrAlreadyFixed
	}

	name := check.ComponentName(page)
	want := check.RoutePath(name)
	target, imported := importedAs[name]
	if imported && !check.ImportsFile(target, page) {
		return nil, fmt.Errorf("%s is already bound to another module: %w", name, domain.ErrNotApplicable)
	}
	for _, r := range routes {
		if r.Path == want {
			return nil, fmt.Errorf("route %s is taken by %s: %w", want, r.Component, domain.ErrNotApplicable)
		}
	}

	closing := -1
	for i, l := range text.lines {
		if strings.Contains(l, "</Routes>") {
			closing = i
			break
		}
	}
	if closing < 0 {
		return nil, fmt.Errorf("no </Routes> in %s: %w", routesFile, domain.ErrNotApplicable)
	}

	indent := indentOf(text.lines[closing]) + "  "
	if len(routes) > 0 {
		indent = indentOf(routes[len(routes)-1].Raw)
	}
	text.insert(closing, fmt.Sprintf(`%s<Route path="%s" element={<%s />} />`, indent, want, name))

	if !imported {
		// after the last import, which sits above the routes
		at := 0
		for _, imp := range imports {
			at = max(at, imp.Line)
		}
		text.insert(at, fmt.Sprintf("import %s from '%s'", name, check.RelativeSpec(routesFile, page)))
	}

	cs := domain.NewChangeset(fmt.Sprintf("add route %s -> %s in %s", want, name, routesFile))
	cs.Set(routesFile, text.bytes())

	// a new static route is linked in the same changeset so the next scan
	// does not report it as unlinked
	if check.IsStaticRoute(want) && !env.Config.IsNavExcluded(want) {
		navFile, content, label, err := planNavLink(env, want, name)
		switch {
		case err == nil:
			cs.Set(navFile, content)
			cs.Description += fmt.Sprintf(", link %q in %s", label, navFile)
		case errors.Is(err, domain.ErrAlreadyFixed), errors.Is(err, domain.ErrNotApplicable):
		default:
			return nil, err
		}
	}
	return cs, nil
}

// DuplicateRouteFixer removes repeated identical route declarations.
type DuplicateRouteFixer struct{}

func (DuplicateRouteFixer) Kinds() []domain.IssueKind {
	return []domain.IssueKind{domain.KindDuplicateRoute}
}

func (DuplicateRouteFixer) Plan(env *Env, issue domain.Issue) (*domain.Changeset, error) {
	routesFile, routePath := check.SplitLocation(issue.Location)
	if !env.Files.Exists(routesFile) {
		return nil, domain.ErrNotApplicable
	}
	text, data, err := readText(env.Files, routesFile)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", routesFile, err)
	}

	var group []domain.Route
	for _, r := range env.Parser.ParseRoutes(routesFile, data) {
		if r.Path == routePath {
			group = append(group, r)
		}
	}
	if len(group) < 2 {
		return nil, domain.ErrAlreadyFixed
	}
	if !check.IdenticalRoutes(group) {
		return nil, fmt.Errorf("declarations of %s differ: %w", routePath, domain.ErrNotApplicable)
	}

	var lines []int
	for _, r := range group[1:] {
		lines = append(lines, r.Line)
	}
	text.remove(lines...)

	cs := domain.NewChangeset(fmt.Sprintf("remove %d duplicate declaration(s) of %s from %s", len(lines), routePath, routesFile))
	cs.Set(routesFile, text.bytes())
	return cs, nil
}
