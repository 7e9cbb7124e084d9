package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/abdidvp/dartlint/internal/adapters/outbound/config"
	"github.com/abdidvp/dartlint/internal/adapters/outbound/history"
)

// registerResources registers all dartlint MCP resources on the given server.
func registerResources(s *server.MCPServer, projectPath string) {
	// 1. dartlint://rules - rewrite rule table
	s.AddResource(
		mcplib.NewResource(
			"dartlint://rules",
			"Rewrite Rules",
			mcplib.WithResourceDescription("Rewrite rules in execution order with their enabled state"),
			mcplib.WithMIMEType("application/json"),
		),
		handleJSONResource("dartlint://rules", func() (any, error) { return listRules(projectPath) }),
	)

	// 2. dartlint://config - effective project configuration
	s.AddResource(
		mcplib.NewResource(
			"dartlint://config",
			"Configuration",
			mcplib.WithResourceDescription("Effective .dartlint.yaml configuration with defaults applied"),
			mcplib.WithMIMEType("application/json"),
		),
		handleJSONResource("dartlint://config", func() (any, error) { return config.New().Load(projectPath) }),
	)

	// 3. dartlint://history - recorded runs
	s.AddResource(
		mcplib.NewResource(
			"dartlint://history",
			"Run History",
			mcplib.WithResourceDescription("Recorded scan and fix runs"),
			mcplib.WithMIMEType("application/json"),
		),
		handleJSONResource("dartlint://history", func() (any, error) { return history.New().Load(projectPath) }),
	)
}

func handleJSONResource(uri string, load func() (any, error)) server.ResourceHandlerFunc {
	return func(_ context.Context, _ mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
		v, err := load()
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", uri, err)
		}

		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshaling %s: %w", uri, err)
		}

		return []mcplib.ResourceContents{
			mcplib.TextResourceContents{
				URI:      uri,
				MIMEType: "application/json",
				Text:     string(data),
			},
		}, nil
	}
}
