package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/openkraft/devpilot/internal/application"
	"github.com/openkraft/devpilot/internal/bootstrap"
	"github.com/openkraft/devpilot/internal/domain"
	"github.com/openkraft/devpilot/internal/domain/envfile"
)

type handlers struct {
	projectPath string
	services    *bootstrap.Services
}

// registerTools registers all devpilot MCP tools on the given server.
func registerTools(s *server.MCPServer, h *handlers) {
	// 1. devpilot_scan
	s.AddTool(
		mcplib.NewTool("devpilot_scan",
			mcplib.WithDescription("Scan the project for routing, navigation, handler, env and dev stack issues. Never modifies files."),
		),
		h.handleScan,
	)

	// 2. devpilot_fix
	s.AddTool(
		mcplib.NewTool("devpilot_fix",
			mcplib.WithDescription("Scan the project and apply every safe fix in severity order. Returns one result per issue."),
			mcplib.WithBoolean("dry_run", mcplib.Description("Plan fixes without writing anything")),
			mcplib.WithArray("kinds",
				mcplib.Description("Only fix issues of these kinds (e.g. missing_env_flag, broken_link)"),
				mcplib.WithStringItems(),
			),
		),
		h.handleFix,
	)

	// 3. devpilot_status
	s.AddTool(
		mcplib.NewTool("devpilot_status",
			mcplib.WithDescription("Report dev stack ports, env flags, git state, the last run and recent history"),
		),
		h.handleStatus,
	)

	// 4. devpilot_console
	s.AddTool(
		mcplib.NewTool("devpilot_console",
			mcplib.WithDescription("Switch frontend console verbosity by rewriting env flags"),
			mcplib.WithString("mode",
				mcplib.Required(),
				mcplib.Description("Console mode to apply"),
				mcplib.Enum(domain.ConsoleClean, domain.ConsoleVerbose),
			),
		),
		h.handleConsole,
	)
}

type scanResult struct {
	Report  *domain.ScanReport `json:"report"`
	Summary domain.FixSummary  `json:"summary"`
}

type fixResult struct {
	Results []domain.FixResult `json:"results"`
	Summary domain.FixSummary  `json:"summary"`
	DryRun  bool               `json:"dry_run,omitempty"`
}

type consoleResult struct {
	Mode    string           `json:"mode"`
	File    string           `json:"file"`
	Changes []envfile.Change `json:"changes"`
}

func (h *handlers) handleScan(ctx context.Context, _ mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	project, err := h.services.Resolver.Resolve(h.projectPath)
	if err != nil {
		return errorResult(err.Error()), nil
	}
	report, err := h.services.Scan.Scan(ctx, project)
	if err != nil {
		return errorResult(fmt.Sprintf("scan failed: %v", err)), nil
	}
	_, _ = h.services.Recorder.Record(project, "scan", report, nil) // best-effort
	return jsonResult(scanResult{Report: report, Summary: domain.Summarize(report, nil)})
}

func (h *handlers) handleFix(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	args := request.GetArguments()
	dryRun, _ := args["dry_run"].(bool)
	kinds, _ := args["kinds"].([]any)

	opts := domain.RemediationOptions{DryRun: dryRun}
	for _, k := range kinds {
		if s, ok := k.(string); ok && s != "" {
			opts.Kinds = append(opts.Kinds, domain.IssueKind(s))
		}
	}

	project, err := h.services.Resolver.Resolve(h.projectPath)
	if err != nil {
		return errorResult(err.Error()), nil
	}
	report, err := h.services.Scan.Scan(ctx, project)
	if err != nil {
		return errorResult(fmt.Sprintf("scan failed: %v", err)), nil
	}

	results, err := h.services.Remediation.Remediate(ctx, project, report, opts, nil)
	if errors.Is(err, domain.ErrBusy) {
		return errorResult(err.Error()), nil
	}
	if !opts.DryRun {
		_, _ = h.services.Recorder.Record(project, "fix", report, results) // best-effort
	}
	if err != nil {
		return errorResult(fmt.Sprintf("fix interrupted: %v", err)), nil
	}
	return jsonResult(fixResult{Results: results, Summary: domain.Summarize(report, results), DryRun: opts.DryRun})
}

func (h *handlers) handleStatus(ctx context.Context, _ mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	project, err := h.services.Resolver.Resolve(h.projectPath)
	if err != nil {
		return errorResult(err.Error()), nil
	}
	status := h.services.Status.Report(ctx, project)
	return jsonResult(struct {
		*domain.StatusSummary
		Summary domain.FixSummary `json:"summary"`
	}{status, application.LastRunSummary(status)})
}

func (h *handlers) handleConsole(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	mode, err := request.RequireString("mode")
	if err != nil {
		return errorResult(err.Error()), nil
	}

	project, err := h.services.Resolver.Resolve(h.projectPath)
	if err != nil {
		return errorResult(err.Error()), nil
	}
	changes, err := h.services.Console.SetMode(project, mode)
	if err != nil {
		return errorResult(err.Error()), nil
	}
	if changes == nil {
		changes = []envfile.Change{}
	}
	return jsonResult(consoleResult{Mode: mode, File: project.Config.EnvFile, Changes: changes})
}

// jsonResult marshals v to indented JSON and wraps it in a CallToolResult.
func jsonResult(v any) (*mcplib.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling result: %w", err)
	}
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(string(data))},
	}, nil
}

// errorResult returns an error content result.
func errorResult(msg string) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(msg)},
		IsError: true,
	}
}
