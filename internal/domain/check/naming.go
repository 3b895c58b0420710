package check

import (
	"sort"
	"strings"

	"github.com/fatih/camelcase"
)

// maxLinkDistance bounds how far a broken link may be from its suggested route.
const maxLinkDistance = 2

var pageSuffixes = map[string]bool{"Page": true, "View": true, "Screen": true}

// componentWords splits a component name, dropping a trailing Page/View/Screen.
func componentWords(component string) []string {
	words := camelcase.Split(component)
	if len(words) > 1 && pageSuffixes[words[len(words)-1]] {
		words = words[:len(words)-1]
	}
	return words
}

// RoutePath derives the conventional route path for a page component:
// SettingsPage -> /settings, UserProfile -> /user-profile, Home -> /.
func RoutePath(component string) string {
	words := componentWords(component)
	if len(words) == 1 && (words[0] == "Home" || words[0] == "Index") {
		return "/"
	}
	parts := make([]string, 0, len(words))
	for _, w := range words {
		if w == "_" || w == "-" {
			continue
		}
		parts = append(parts, strings.ToLower(w))
	}
	return "/" + strings.Join(parts, "-")
}

// NavLabel derives a navigation label from a component name or route path.
func NavLabel(component, routePath string) string {
	if component != "" {
		return strings.Join(componentWords(component), " ")
	}
	trimmed := strings.Trim(routePath, "/")
	if trimmed == "" {
		return "Home"
	}
	words := strings.FieldsFunc(trimmed, func(r rune) bool { return r == '-' || r == '/' || r == '_' })
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// IsStaticRoute reports whether a route path has no params or wildcards.
func IsStaticRoute(p string) bool {
	return p != "" && !strings.ContainsAny(p, ":*")
}

// MatchesRoute reports whether a concrete link target is served by route.
func MatchesRoute(target, route string) bool {
	if target == route {
		return true
	}
	if route == "*" || route == "" {
		return false
	}
	if strings.HasSuffix(route, "/*") {
		base := strings.TrimSuffix(route, "/*")
		return target == base || strings.HasPrefix(target, base+"/")
	}
	ts := strings.Split(strings.Trim(target, "/"), "/")
	rs := strings.Split(strings.Trim(route, "/"), "/")
	if len(ts) != len(rs) {
		return false
	}
	for i := range rs {
		if strings.HasPrefix(rs[i], ":") {
			continue
		}
		if rs[i] != ts[i] {
			return false
		}
	}
	return true
}

// LinkPath strips query and fragment from a link target.
func LinkPath(target string) string {
	if i := strings.IndexAny(target, "?#"); i >= 0 {
		return target[:i]
	}
	return target
}

// ClosestRoute finds the single route a broken target most likely meant.
// Case and trailing-slash normalization wins outright; otherwise the
// unique route within maxLinkDistance edits is returned.
func ClosestRoute(target string, routes []string) (string, bool) {
	norm := normalizeTarget(target)
	var exact []string
	for _, r := range routes {
		if IsStaticRoute(r) && normalizeTarget(r) == norm {
			exact = append(exact, r)
		}
	}
	if len(exact) == 1 {
		return exact[0], true
	}
	if len(exact) > 1 {
		return "", false
	}

	best, bestDist, ties := "", maxLinkDistance+1, 0
	candidates := append([]string(nil), routes...)
	sort.Strings(candidates)
	for _, r := range candidates {
		if !IsStaticRoute(r) {
			continue
		}
		d := levenshtein(norm, normalizeTarget(r))
		switch {
		case d < bestDist:
			best, bestDist, ties = r, d, 1
		case d == bestDist:
			ties++
		}
	}
	if ties != 1 || bestDist > maxLinkDistance {
		return "", false
	}
	return best, true
}

func normalizeTarget(p string) string {
	p = strings.ToLower(LinkPath(p))
	if len(p) > 1 {
		p = strings.TrimRight(p, "/")
	}
	return p
}

func levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	prev := make([]int, len(rb)+1)
	cur := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(ra); i++ {
		cur[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			cur[j] = min(prev[j]+1, cur[j-1]+1, prev[j-1]+cost)
		}
		prev, cur = cur, prev
	}
	return prev[len(rb)]
}
