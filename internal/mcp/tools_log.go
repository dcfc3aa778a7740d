package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/girtline/girt/internal/git"
)

// --- Status tool ---

// StatusInput is the input for the status tool.
type StatusInput struct {
	Path string `json:"path,omitempty" jsonschema:"working directory (defaults to the server start directory)"`
}

func handleStatus(provider git.Provider, base git.OpContext) mcp.ToolHandlerFor[StatusInput, git.StatusResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input StatusInput) (*mcp.CallToolResult, git.StatusResult, error) {
		res, err := provider.Status(ctx, opContext(input.Path, base))
		if err != nil {
			return nil, git.StatusResult{}, err
		}
		return nil, res, nil
	}
}

// --- Log tool ---

// LogInput is the input for the log tool.
type LogInput struct {
	Path     string `json:"path,omitempty"      jsonschema:"working directory (defaults to the server start directory)"`
	From     string `json:"from,omitempty"      jsonschema:"exclusive lower bound ref of the range"`
	To       string `json:"to,omitempty"        jsonschema:"inclusive upper bound ref (default HEAD)"`
	MaxCount int    `json:"max_count,omitempty" jsonschema:"maximum number of commits to return"`
}

func handleLog(provider git.Provider, base git.OpContext) mcp.ToolHandlerFor[LogInput, git.LogResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input LogInput) (*mcp.CallToolResult, git.LogResult, error) {
		res, err := provider.Log(ctx, git.LogOptions{
			From:     input.From,
			To:       input.To,
			MaxCount: input.MaxCount,
		}, opContext(input.Path, base))
		if err != nil {
			return nil, git.LogResult{}, err
		}
		return nil, res, nil
	}
}
