package cli

import (
	"fmt"

	mcpadapter "github.com/abdidvp/dartlint/internal/adapters/inbound/mcp"

	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"
)

func newMCPCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "MCP server commands",
		Long:  "Commands for running the dartlint MCP (Model Context Protocol) server.",
	}
	cmd.AddCommand(newMCPServeCmd())
	return cmd
}

func newMCPServeCmd() *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start dartlint MCP server (stdio)",
		Long:  "Start the dartlint MCP server using stdio transport. This lets AI coding assistants scan a Dart project and apply rewrite rules.",
		RunE: func(cmd *cobra.Command, args []string) error {
			var pathArgs []string
			if path != "" {
				pathArgs = []string{path}
			}
			absPath, err := projectPath(pathArgs)
			if err != nil {
				return err
			}
			s := mcpadapter.NewDartlintMCPServer(absPath, version)
			if err := server.ServeStdio(s); err != nil {
				return fmt.Errorf("mcp server: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&path, "path", "", "Project path (defaults to current working directory)")

	return cmd
}
