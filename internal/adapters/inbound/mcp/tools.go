package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"path"
	"strings"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/abdidvp/dartlint/internal/adapters/outbound/cache"
	"github.com/abdidvp/dartlint/internal/adapters/outbound/config"
	"github.com/abdidvp/dartlint/internal/adapters/outbound/gitinfo"
	"github.com/abdidvp/dartlint/internal/adapters/outbound/history"
	"github.com/abdidvp/dartlint/internal/adapters/outbound/sourcetree"
	"github.com/abdidvp/dartlint/internal/application"
	"github.com/abdidvp/dartlint/internal/domain"
	"github.com/abdidvp/dartlint/internal/domain/rewrite"
	"github.com/abdidvp/dartlint/internal/domain/usage"
)

// registerTools registers all dartlint MCP tools on the given server.
func registerTools(s *server.MCPServer, projectPath string) {
	// 1. dartlint_scan
	s.AddTool(
		mcplib.NewTool("dartlint_scan",
			mcplib.WithDescription("Scan the project's Dart sources for unused dart: imports and unused local declarations. Returns the report as JSON."),
			mcplib.WithString("only", mcplib.Description("Comma-separated file paths relative to the project root; scans everything when empty")),
			mcplib.WithBoolean("no_cache", mcplib.Description("Discard cached results and check every file")),
		),
		handleScan(projectPath),
	)

	// 2. dartlint_fix
	s.AddTool(
		mcplib.NewTool("dartlint_fix",
			mcplib.WithDescription("Apply the rewrite rule table to every Dart source file and return the modified files"),
			mcplib.WithBoolean("dry_run", mcplib.Description("Report what would change without writing files")),
			mcplib.WithBoolean("diff", mcplib.Description("Include a unified diff per modified file")),
			mcplib.WithString("only", mcplib.Description("Comma-separated file paths relative to the project root")),
		),
		handleFix(projectPath),
	)

	// 3. dartlint_rules
	s.AddTool(
		mcplib.NewTool("dartlint_rules",
			mcplib.WithDescription("List the rewrite rules in execution order with their enabled state"),
		),
		handleRules(projectPath),
	)

	// 4. dartlint_check_file
	s.AddTool(
		mcplib.NewTool("dartlint_check_file",
			mcplib.WithDescription("Run the usage checks on a single file and return its issues"),
			mcplib.WithString("file",
				mcplib.Required(),
				mcplib.Description("Relative path to the file to check"),
			),
		),
		handleCheckFile(projectPath),
	)
}

// newServices creates the standard set of outbound adapters and services.
func newServices() (*application.ScanService, *application.FixService) {
	cfg := config.New()
	hist := history.New()
	git := gitinfo.New()
	return application.NewScanService(sourcetree.OSFactory, cfg, cache.New(), hist, git),
		application.NewFixService(sourcetree.OSFactory, cfg, hist, git)
}

func handleScan(projectPath string) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		args := request.GetArguments()
		opts := domain.ScanOptions{}
		if only, ok := args["only"].(string); ok && strings.TrimSpace(only) != "" {
			opts.Only = splitAndTrim(only)
		}
		opts.NoCache, _ = args["no_cache"].(bool)

		scanSvc, _ := newServices()
		report, err := scanSvc.Scan(ctx, projectPath, opts)
		if err != nil {
			return errorResult(fmt.Sprintf("scan failed: %v", err)), nil
		}
		return jsonResult(report)
	}
}

func handleFix(projectPath string) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		args := request.GetArguments()
		opts := domain.FixOptions{}
		opts.DryRun, _ = args["dry_run"].(bool)
		opts.Diff, _ = args["diff"].(bool)
		if only, ok := args["only"].(string); ok && strings.TrimSpace(only) != "" {
			opts.Only = splitAndTrim(only)
		}

		_, fixSvc := newServices()
		result, err := fixSvc.Fix(ctx, projectPath, opts)
		if err != nil {
			return errorResult(fmt.Sprintf("fix failed: %v", err)), nil
		}
		return jsonResult(result)
	}
}

type ruleInfo struct {
	Order       int    `json:"order"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Enabled     bool   `json:"enabled"`
}

func listRules(projectPath string) ([]ruleInfo, error) {
	cfg, err := config.New().Load(projectPath)
	if err != nil {
		return nil, err
	}
	rules := rewrite.Rules()
	out := make([]ruleInfo, len(rules))
	for i, r := range rules {
		out[i] = ruleInfo{
			Order:       i + 1,
			Name:        r.Name(),
			Description: r.Description(),
			Enabled:     !cfg.IsRuleDisabled(r.Name()),
		}
	}
	return out, nil
}

func handleRules(projectPath string) server.ToolHandlerFunc {
	return func(_ context.Context, _ mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		rules, err := listRules(projectPath)
		if err != nil {
			return errorResult(fmt.Sprintf("loading config: %v", err)), nil
		}
		return jsonResult(rules)
	}
}

func handleCheckFile(projectPath string) server.ToolHandlerFunc {
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		file, err := request.RequireString("file")
		if err != nil {
			return errorResult(err.Error()), nil
		}
		file = path.Clean(strings.TrimPrefix(file, "./"))
		if strings.HasPrefix(file, "../") || path.IsAbs(file) {
			return errorResult(fmt.Sprintf("file %q is outside the project", file)), nil
		}

		cfg, err := config.New().Load(projectPath)
		if err != nil {
			return errorResult(fmt.Sprintf("loading config: %v", err)), nil
		}

		data, err := sourcetree.NewOS(projectPath).ReadFile(file)
		if err != nil {
			return errorResult(fmt.Sprintf("reading %s: %v", file, err)), nil
		}

		issues := usage.CheckWith(domain.SourceFile{Path: file, Content: string(data)}, cfg)
		if issues == nil {
			issues = []domain.Issue{}
		}
		return jsonResult(issues)
	}
}

func splitAndTrim(s string) []string {
	parts := strings.Split(s, ",")
	var result []string
	for _, p := range parts {
		trimmed := strings.TrimSpace(p)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// jsonResult marshals v to JSON and returns it as a text content result.
func jsonResult(v interface{}) (*mcplib.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling result: %w", err)
	}
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(string(data))},
	}, nil
}

// errorResult returns a tool result that indicates an error occurred.
func errorResult(msg string) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(msg)},
		IsError: true,
	}
}
