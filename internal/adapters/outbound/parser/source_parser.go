package parser

import (
	"regexp"
	"strings"

	"github.com/openkraft/devpilot/internal/domain"
)

// SourceParser implements domain.SourceParser with line-oriented pattern
// matching over JSX/TSX and Node server sources. Each JSX element of
// interest is expected on a single line.
type SourceParser struct{}

func New() *SourceParser {
	return &SourceParser{}
}

var (
	routeTag     = regexp.MustCompile(`<Route\b`)
	pathAttr     = regexp.MustCompile(`\bpath\s*=\s*\{?\s*["']([^"']*)["']`)
	indexAttr    = regexp.MustCompile(`\bindex\b`)
	elementAttr  = regexp.MustCompile(`\belement\s*=\s*\{\s*<\s*([A-Z][A-Za-z0-9_]*)`)
	componentRef = regexp.MustCompile(`\bComponent\s*=\s*\{\s*([A-Z][A-Za-z0-9_]*)\s*\}`)

	importFrom   = regexp.MustCompile(`^\s*import\s+(?:type\s+)?(.+?)\s+from\s+["']([^"']+)["']`)
	importBare   = regexp.MustCompile(`^\s*import\s+["']([^"']+)["']`)
	importOpen   = regexp.MustCompile(`^\s*import\s+(?:type\s+)?\{[^}]*$`)
	importClose  = regexp.MustCompile(`^[^'"]*\}\s*from\s+["']([^"']+)["']`)
	lazyImport   = regexp.MustCompile(`(?:const|let|var)\s+([A-Z][A-Za-z0-9_]*)\s*=\s*(?:React\.)?lazy\(\s*\(\)\s*=>\s*import\(\s*["']([^"']+)["']`)
	dynamicImprt = regexp.MustCompile(`\bimport\(\s*["']([^"']+)["']\s*\)`)
	requireCall  = regexp.MustCompile(`\brequire\(\s*["']([^"']+)["']\s*\)`)

	linkAttr    = regexp.MustCompile(`\b(?:to|href)\s*=\s*\{?\s*["'](/(?:[^/"'][^"']*)?)["']`)
	linkElement = regexp.MustCompile(`<(NavLink|Link)\b([^>]*?)\bto\s*=\s*(["'])([^"']*)(["'])([^>]*)>([^<]*)</(?:NavLink|Link)>`)

	handlerCall = regexp.MustCompile("\\b([A-Za-z_$][\\w$]*)\\.(get|post|put|patch|delete|all)\\(\\s*[\"'`](/[^\"'`]*)[\"'`]")
)

// ParseRoutes extracts <Route> declarations. Routes without a path are
// treated as index routes at "/" when marked index, and skipped otherwise.
func (p *SourceParser) ParseRoutes(file string, data []byte) []domain.Route {
	var routes []domain.Route
	for i, line := range splitLines(data) {
		if !routeTag.MatchString(line) {
			continue
		}
		r := domain.Route{File: file, Line: i + 1, Raw: line}
		if m := pathAttr.FindStringSubmatch(line); m != nil {
			r.Path = normalizeRoutePath(m[1])
		} else if indexAttr.MatchString(line) {
			r.Path = "/"
		} else {
			continue
		}
		if m := elementAttr.FindStringSubmatch(line); m != nil {
			r.Component = m[1]
		} else if m := componentRef.FindStringSubmatch(line); m != nil {
			r.Component = m[1]
		}
		routes = append(routes, r)
	}
	return routes
}

func normalizeRoutePath(p string) string {
	if p == "*" || strings.HasPrefix(p, "/") {
		return p
	}
	return "/" + p
}

// ParseImports extracts static, multi-line, lazy and require imports.
func (p *SourceParser) ParseImports(file string, data []byte) []domain.Import {
	var imports []domain.Import
	openLine := 0
	var openNames []string

	for i, line := range splitLines(data) {
		n := i + 1

		if openLine > 0 {
			if m := importClose.FindStringSubmatch(line); m != nil {
				before, _, _ := strings.Cut(line, "}")
				openNames = append(openNames, namedList(before)...)
				imports = append(imports, domain.Import{Names: openNames, Spec: m[1], File: file, Line: openLine})
				openLine, openNames = 0, nil
			} else {
				openNames = append(openNames, namedList(line)...)
			}
			continue
		}

		switch {
		case importFrom.MatchString(line):
			m := importFrom.FindStringSubmatch(line)
			imports = append(imports, domain.Import{Names: importNames(m[1]), Spec: m[2], File: file, Line: n})
			continue
		case importBare.MatchString(line):
			m := importBare.FindStringSubmatch(line)
			imports = append(imports, domain.Import{Spec: m[1], File: file, Line: n})
			continue
		case importOpen.MatchString(line):
			openLine = n
			_, after, _ := strings.Cut(line, "{")
			openNames = namedList(after)
			continue
		}

		if m := lazyImport.FindStringSubmatch(line); m != nil {
			imports = append(imports, domain.Import{Names: []string{m[1]}, Spec: m[2], File: file, Line: n})
			continue
		}
		for _, m := range dynamicImprt.FindAllStringSubmatch(line, -1) {
			imports = append(imports, domain.Import{Spec: m[1], File: file, Line: n})
		}
		for _, m := range requireCall.FindAllStringSubmatch(line, -1) {
			imports = append(imports, domain.Import{Spec: m[1], File: file, Line: n})
		}
	}
	return imports
}

// importNames splits an import clause such as `Foo, { A, B as C }` or
// `* as NS` into local binding names.
func importNames(clause string) []string {
	var names []string
	clause = strings.TrimSpace(clause)
	if before, after, ok := strings.Cut(clause, "{"); ok {
		inner, _, _ := strings.Cut(after, "}")
		names = append(names, namedList(inner)...)
		clause = before
	}
	for _, part := range strings.Split(clause, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if _, alias, ok := strings.Cut(part, " as "); ok {
			part = strings.TrimSpace(alias)
		}
		names = append(names, part)
	}
	return names
}

func namedList(s string) []string {
	var names []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(part), "type "))
		if part == "" {
			continue
		}
		if _, alias, ok := strings.Cut(part, " as "); ok {
			part = strings.TrimSpace(alias)
		}
		names = append(names, part)
	}
	return names
}

// ParseLinks extracts internal navigation targets.
func (p *SourceParser) ParseLinks(file string, data []byte) []domain.Link {
	var links []domain.Link
	for i, line := range splitLines(data) {
		cloneable := len(linkElement.FindAllStringIndex(line, -1)) == 1
		for _, m := range linkAttr.FindAllStringSubmatch(line, -1) {
			links = append(links, domain.Link{
				Target:    m[1],
				File:      file,
				Line:      i + 1,
				Raw:       line,
				Cloneable: cloneable,
			})
		}
	}
	return links
}

// CloneLink rewrites the single link element on raw to point at target and
// display label.
func (p *SourceParser) CloneLink(raw, target, label string) (string, bool) {
	locs := linkElement.FindAllStringSubmatchIndex(raw, -1)
	if len(locs) != 1 {
		return "", false
	}
	m := locs[0]
	// groups: 1 tag, 2 pre-attrs, 3 quote, 4 target, 5 quote, 6 post-attrs, 7 label
	var b strings.Builder
	b.WriteString(raw[:m[8]])
	b.WriteString(target)
	b.WriteString(raw[m[9]:m[14]])
	b.WriteString(label)
	b.WriteString(raw[m[15]:])
	return b.String(), true
}

// ParseHandlers extracts Express-style handler registrations.
func (p *SourceParser) ParseHandlers(file string, data []byte) []domain.Handler {
	var handlers []domain.Handler
	for i, line := range splitLines(data) {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "//") || strings.HasPrefix(trimmed, "*") {
			continue
		}
		for _, m := range handlerCall.FindAllStringSubmatch(line, -1) {
			handlers = append(handlers, domain.Handler{
				Receiver: m[1],
				Method:   strings.ToUpper(m[2]),
				Path:     m[3],
				File:     file,
				Line:     i + 1,
				Raw:      line,
			})
		}
	}
	return handlers
}

func splitLines(data []byte) []string {
	text := strings.ReplaceAll(string(data), "\r\n", "\n")
	return strings.Split(text, "\n")
}
