package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

const lastRunURI = "devpilot://last-run"

// registerResources registers all devpilot MCP resources on the given server.
func registerResources(s *server.MCPServer, h *handlers) {
	s.AddResource(
		mcplib.NewResource(
			lastRunURI,
			"Last Run",
			mcplib.WithResourceDescription("Report, fix results and summary of the most recent scan or fix"),
			mcplib.WithMIMEType("application/json"),
		),
		h.handleLastRunResource,
	)
}

func (h *handlers) handleLastRunResource(_ context.Context, _ mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
	project, err := h.services.Resolver.Resolve(h.projectPath)
	if err != nil {
		return nil, err
	}
	record, err := h.services.Store.Load(project.Root)
	if err != nil {
		return nil, fmt.Errorf("loading last run: %w", err)
	}

	text := "null"
	if record != nil {
		data, err := json.MarshalIndent(record, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshaling last run: %w", err)
		}
		text = string(data)
	}

	return []mcplib.ResourceContents{
		mcplib.TextResourceContents{
			URI:      lastRunURI,
			MIMEType: "application/json",
			Text:     text,
		},
	}, nil
}
