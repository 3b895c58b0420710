package fixer

import (
	"fmt"
	"strings"

	"github.com/openkraft/devpilot/internal/domain"
	"github.com/openkraft/devpilot/internal/domain/check"
)

func routePaths(env *Env) ([]domain.Route, error) {
	routesFile := env.Config.RoutesFile
	if !env.Files.Exists(routesFile) {
		return nil, fmt.Errorf("%s is missing: %w", routesFile, domain.ErrNotApplicable)
	}
	data, err := env.Files.ReadFile(routesFile)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", routesFile, err)
	}
	return env.Parser.ParseRoutes(routesFile, data), nil
}

// LinkFixer repoints a broken navigation link at the route it most likely meant.
type LinkFixer struct{}

func (LinkFixer) Kinds() []domain.IssueKind { return []domain.IssueKind{domain.KindBrokenLink} }

func (LinkFixer) Plan(env *Env, issue domain.Issue) (*domain.Changeset, error) {
	navFile, target := check.SplitLocation(issue.Location)
	if !env.Files.Exists(navFile) {
		return nil, domain.ErrNotApplicable
	}
	text, data, err := readText(env.Files, navFile)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", navFile, err)
	}

	var hits []domain.Link
	for _, l := range env.Parser.ParseLinks(navFile, data) {
		if l.Target == target {
			hits = append(hits, l)
		}
	}
	if len(hits) == 0 {
		return nil, domain.ErrAlreadyFixed
	}

	routes, err := routePaths(env)
	if err != nil {
		return nil, err
	}
	fixed, ok := check.ClosestRoute(target, check.RoutePaths(routes))
	if !ok {
		return nil, fmt.Errorf("no unique route close to %s: %w", target, domain.ErrNotApplicable)
	}

	for _, h := range hits {
		i := h.Line - 1
		line := text.lines[i]
		line = strings.ReplaceAll(line, `"`+target+`"`, `"`+fixed+`"`)
		line = strings.ReplaceAll(line, `'`+target+`'`, `'`+fixed+`'`)
		text.lines[i] = line
	}

	cs := domain.NewChangeset(fmt.Sprintf("%s: link %s -> %s", navFile, target, fixed))
	cs.Set(navFile, text.bytes())
	return cs, nil
}

// NavigationFixer adds a navigation entry for a route, cloned from an
// existing single-line link.
type NavigationFixer struct{}

func (NavigationFixer) Kinds() []domain.IssueKind {
	return []domain.IssueKind{domain.KindUnlinkedRoute}
}

func (NavigationFixer) Plan(env *Env, issue domain.Issue) (*domain.Changeset, error) {
	_, routePath := check.SplitLocation(issue.Location)

	routes, err := routePaths(env)
	if err != nil {
		return nil, err
	}
	var route *domain.Route
	for i := range routes {
		if routes[i].Path == routePath {
			route = &routes[i]
			break
		}
	}
	if route == nil {
		return nil, domain.ErrNotApplicable
	}

	navFile, content, label, err := planNavLink(env, route.Path, route.Component)
	if err != nil {
		return nil, err
	}
	cs := domain.NewChangeset(fmt.Sprintf("%s: add link to %s labelled %q", navFile, route.Path, label))
	cs.Set(navFile, content)
	return cs, nil
}

// planNavLink returns the navigation file rewritten with a link to
// routePath, cloned from the first single-line link found. It returns
// domain.ErrAlreadyFixed when some navigation file already links the path.
func planNavLink(env *Env, routePath, component string) (navFile string, content []byte, label string, err error) {
	var (
		template domain.Link
		text     *textFile
	)
	for _, nav := range env.Config.NavigationFiles {
		if !env.Files.Exists(nav) {
			continue
		}
		t, data, err := readText(env.Files, nav)
		if err != nil {
			return "", nil, "", fmt.Errorf("reading %s: %w", nav, err)
		}
		for _, l := range env.Parser.ParseLinks(nav, data) {
			if check.LinkPath(l.Target) == routePath {
				return "", nil, "", domain.ErrAlreadyFixed
			}
			if l.Cloneable && text == nil {
				template = l
			}
		}
		if template.Raw != "" && text == nil {
			navFile, text = nav, t
		}
	}
	if text == nil {
		return "", nil, "", fmt.Errorf("no single-line link to clone: %w", domain.ErrNotApplicable)
	}

	label = check.NavLabel(component, routePath)
	line, ok := env.Parser.CloneLink(template.Raw, routePath, label)
	if !ok {
		return "", nil, "", fmt.Errorf("cannot clone %q: %w", strings.TrimSpace(template.Raw), domain.ErrNotApplicable)
	}
	text.insert(template.Line, line)
	return navFile, text.bytes(), label, nil
}
