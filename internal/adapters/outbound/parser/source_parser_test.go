package parser_test

import (
	"os"
	"testing"

	"github.com/openkraft/devpilot/internal/adapters/outbound/parser"
	"github.com/openkraft/devpilot/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const healthyApp = "../../../../testdata/webapp/healthy/src/App.tsx"

func TestParseRoutes_Fixture(t *testing.T) {
	data, err := os.ReadFile(healthyApp)
	require.NoError(t, err)

	routes := parser.New().ParseRoutes("src/App.tsx", data)
	require.Len(t, routes, 3)

	got := map[string]string{}
	for _, r := range routes {
		got[r.Path] = r.Component
		assert.Equal(t, "src/App.tsx", r.File)
		assert.Positive(t, r.Line)
	}
	assert.Equal(t, map[string]string{"/": "Home", "/about": "AboutPage", "/settings": "SettingsPage"}, got)
}

func TestParseRoutes_Forms(t *testing.T) {
	src := `<Routes>
  <Route index element={<Home />} />
  <Route path="users/:id" element={<UserPage />} />
  <Route path={"/reports"} Component={Reports} />
  <Route path="*" element={<NotFound />} />
  <Route element={<Layout />} />
</Routes>`

	routes := parser.New().ParseRoutes("src/App.tsx", []byte(src))
	require.Len(t, routes, 4)

	assert.Equal(t, domain.Route{Path: "/", Component: "Home", File: "src/App.tsx", Line: 2,
		Raw: `  <Route index element={<Home />} />`}, routes[0])
	assert.Equal(t, "/users/:id", routes[1].Path)
	assert.Equal(t, "Reports", routes[2].Component)
	assert.Equal(t, "/reports", routes[2].Path)
	assert.Equal(t, "*", routes[3].Path)
	assert.Equal(t, 5, routes[3].Line)
}

func TestParseImports(t *testing.T) {
	src := `import React, { useState as useLocal } from 'react'
import type { Props } from './types'
import './index.css'
import {
  Routes,
  Route,
} from 'react-router-dom'
import * as api from '@/lib/api'
const Reports = lazy(() => import('./pages/Reports'))
const cfg = require("../config")
`
	imports := parser.New().ParseImports("src/App.tsx", []byte(src))
	require.Len(t, imports, 7)

	assert.Equal(t, []string{"useLocal", "React"}, imports[0].Names)
	assert.Equal(t, "react", imports[0].Spec)
	assert.Equal(t, []string{"Props"}, imports[1].Names)
	assert.Equal(t, "./index.css", imports[2].Spec)
	assert.Empty(t, imports[2].Names)

	assert.Equal(t, domain.Import{Names: []string{"Routes", "Route"}, Spec: "react-router-dom", File: "src/App.tsx", Line: 4}, imports[3])
	assert.Equal(t, []string{"api"}, imports[4].Names)
	assert.Equal(t, "@/lib/api", imports[4].Spec)
	assert.Equal(t, domain.Import{Names: []string{"Reports"}, Spec: "./pages/Reports", File: "src/App.tsx", Line: 9}, imports[5])
	assert.Equal(t, "../config", imports[6].Spec)
}

func TestParseLinks(t *testing.T) {
	src := `<nav>
  <NavLink to="/" className="nav">Home</NavLink>
  <a href="/contact">Contact</a>
  <a href="https://example.com">External</a>
  <Link to="/a">A</Link> <Link to="/b">B</Link>
  <img src="//cdn.example.com/logo.png" />
</nav>`

	links := parser.New().ParseLinks("src/components/Navigation.tsx", []byte(src))
	require.Len(t, links, 4)

	assert.Equal(t, "/", links[0].Target)
	assert.True(t, links[0].Cloneable)
	assert.Equal(t, 2, links[0].Line)

	assert.Equal(t, "/contact", links[1].Target)
	assert.False(t, links[1].Cloneable)

	assert.Equal(t, "/a", links[2].Target)
	assert.Equal(t, "/b", links[3].Target)
	assert.False(t, links[2].Cloneable, "two elements on one line")
}

func TestCloneLink(t *testing.T) {
	p := parser.New()

	got, ok := p.CloneLink(`    <NavLink to="/about" className={nav}>About</NavLink>`, "/settings", "Settings")
	require.True(t, ok)
	assert.Equal(t, `    <NavLink to="/settings" className={nav}>Settings</NavLink>`, got)

	got, ok = p.CloneLink(`<Link className='x' to='/'>Home</Link>`, "/release-notes", "Release Notes")
	require.True(t, ok)
	assert.Equal(t, `<Link className='x' to='/release-notes'>Release Notes</Link>`, got)

	_, ok = p.CloneLink(`<a href="/contact">Contact</a>`, "/x", "X")
	assert.False(t, ok)
}

func TestParseHandlers(t *testing.T) {
	src := "const app = express()\n" +
		"app.get('/api/health', (req, res) => res.json({ ok: true }))\n" +
		"// app.get('/api/old', legacy)\n" +
		"router.post(\"/api/users\", create)\n" +
		"app.delete(`/api/users/:id`, remove)\n" +
		"app.use('/static', serve)\n"

	handlers := parser.New().ParseHandlers("server/index.js", []byte(src))
	require.Len(t, handlers, 3)

	assert.Equal(t, "app", handlers[0].Receiver)
	assert.Equal(t, "GET", handlers[0].Method)
	assert.Equal(t, "/api/health", handlers[0].Path)
	assert.Equal(t, 2, handlers[0].Line)

	assert.Equal(t, "router", handlers[1].Receiver)
	assert.Equal(t, "POST", handlers[1].Method)

	assert.Equal(t, "DELETE", handlers[2].Method)
	assert.Equal(t, "/api/users/:id", handlers[2].Path)
}

func TestParse_CRLF(t *testing.T) {
	src := "import Home from './pages/Home'\r\n<Route path=\"/\" element={<Home />} />\r\n"
	p := parser.New()

	routes := p.ParseRoutes("src/App.tsx", []byte(src))
	require.Len(t, routes, 1)
	assert.Equal(t, 2, routes[0].Line)
	assert.NotContains(t, routes[0].Raw, "\r")

	imports := p.ParseImports("src/App.tsx", []byte(src))
	require.Len(t, imports, 1)
	assert.Equal(t, "./pages/Home", imports[0].Spec)
}
