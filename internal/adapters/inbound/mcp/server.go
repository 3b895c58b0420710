package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/openkraft/devpilot/internal/bootstrap"
)

// NewDevpilotMCPServer creates a new MCP server with all devpilot tools and
// resources registered. projectPath is any directory inside the project.
func NewDevpilotMCPServer(projectPath string, services *bootstrap.Services) *server.MCPServer {
	if services == nil {
		services = bootstrap.New(nil)
	}

	s := server.NewMCPServer(
		"devpilot",
		"0.1.0",
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, false),
	)

	h := &handlers{projectPath: projectPath, services: services}
	registerTools(s, h)
	registerResources(s, h)

	return s
}
