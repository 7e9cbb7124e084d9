package mcp

import (
	"github.com/mark3labs/mcp-go/server"
)

// NewDartlintMCPServer creates a new MCP server with all dartlint tools and
// resources registered. The projectPath is the root directory of the Dart
// project to scan and fix.
func NewDartlintMCPServer(projectPath, version string) *server.MCPServer {
	s := server.NewMCPServer(
		"dartlint",
		version,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, false),
	)

	registerTools(s, projectPath)
	registerResources(s, projectPath)

	return s
}
