// Package main provides the entry point for the girt CLI.
package main

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	girtmcp "github.com/girtline/girt/internal/mcp"
)

// newServeCmd creates the serve command for running as an MCP server.
func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run as MCP server (stdio transport)",
		Long: `Run girt as a Model Context Protocol (MCP) server over stdio.

This exposes the git operations as MCP tools that any MCP-capable agent
environment can use. Every tool takes an optional path argument; without
it, operations run in the directory the server was started in (or --repo).

Configure in your agent's MCP settings:
  {
    "mcpServers": {
      "girt": {
        "command": "girt",
        "args": ["serve"]
      }
    }
  }

Available tools: commit, diff, merge_base, clone, status, log, resolve`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			eng, err := newEngine(cmd)
			if err != nil {
				return err
			}
			server := girtmcp.NewServer(buildVersion(), eng.svc, eng.oc)
			return server.Run(cmd.Context(), &mcp.StdioTransport{})
		},
	}
}
