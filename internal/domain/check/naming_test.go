package check_test

import (
	"testing"

	"github.com/openkraft/devpilot/internal/domain/check"
	"github.com/stretchr/testify/assert"
)

func TestRoutePath(t *testing.T) {
	tests := map[string]string{
		"SettingsPage":    "/settings",
		"UserProfile":     "/user-profile",
		"Home":            "/",
		"HomePage":        "/",
		"ReportsView":     "/reports",
		"Page":            "/page",
		"BillingHistory2": "/billing-history-2",
	}
	for in, want := range tests {
		assert.Equal(t, want, check.RoutePath(in), in)
	}
}

func TestNavLabel(t *testing.T) {
	assert.Equal(t, "User Profile", check.NavLabel("UserProfilePage", "/user-profile"))
	assert.Equal(t, "Release Notes", check.NavLabel("", "/release-notes"))
	assert.Equal(t, "Home", check.NavLabel("", "/"))
}

func TestClosestRoute(t *testing.T) {
	routes := []string{"/", "/about", "/settings", "/users/:id", "/reports", "/report"}
	tests := []struct {
		target string
		want   string
		ok     bool
	}{
		{target: "/About/", want: "/about", ok: true},
		{target: "/setings", want: "/settings", ok: true},
		{target: "/contact", ok: false},
		{target: "/reportz", ok: false}, // equidistant from /reports and /report
	}
	for _, tt := range tests {
		got, ok := check.ClosestRoute(tt.target, routes)
		assert.Equal(t, tt.ok, ok, tt.target)
		assert.Equal(t, tt.want, got, tt.target)
	}
}

func TestMatchesRoute(t *testing.T) {
	assert.True(t, check.MatchesRoute("/users/1", "/users/:id"))
	assert.True(t, check.MatchesRoute("/docs/a/b", "/docs/*"))
	assert.False(t, check.MatchesRoute("/missing", "*"))
	assert.False(t, check.MatchesRoute("/users/1/edit", "/users/:id"))
}

func TestResolveImport(t *testing.T) {
	aliases := map[string]string{"@/": "src/"}

	got, ok := check.ResolveImport("src/App.tsx", "./pages/Home", aliases)
	assert.True(t, ok)
	assert.Equal(t, "src/pages/Home", got)

	got, ok = check.ResolveImport("src/pages/Home.tsx", "../components/Nav.tsx", aliases)
	assert.True(t, ok)
	assert.Equal(t, "src/components/Nav", got)

	got, ok = check.ResolveImport("src/pages/Home.tsx", "@/lib/api", aliases)
	assert.True(t, ok)
	assert.Equal(t, "src/lib/api", got)

	_, ok = check.ResolveImport("src/App.tsx", "react", aliases)
	assert.False(t, ok)
}

func TestRelativeSpec(t *testing.T) {
	assert.Equal(t, "./pages/SettingsPage", check.RelativeSpec("src/App.tsx", "src/pages/SettingsPage.tsx"))
	assert.Equal(t, "../pages/Home", check.RelativeSpec("src/routes/index.tsx", "src/pages/Home.tsx"))
	assert.Equal(t, "./src/pages/Home", check.RelativeSpec("App.tsx", "src/pages/Home.tsx"))
}
