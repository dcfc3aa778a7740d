package mcp

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/girtline/girt/internal/git"
)

// opContext builds the engine context for a tool call. An empty path
// falls back to the directory the server was started for; the tenant
// always comes from the server.
func opContext(path string, base git.OpContext) git.OpContext {
	oc := base
	if path != "" {
		oc.Dir = path
	}
	return oc
}

// boolPtr returns a pointer to a bool value.
func boolPtr(b bool) *bool {
	return &b
}

// readOnlyAnnotations returns annotations for read-only tools.
func readOnlyAnnotations() *mcp.ToolAnnotations {
	return &mcp.ToolAnnotations{
		ReadOnlyHint:   true,
		IdempotentHint: true,
		OpenWorldHint:  boolPtr(false),
	}
}

// writeAnnotations returns annotations for write tools (additive, not destructive).
func writeAnnotations() *mcp.ToolAnnotations {
	return &mcp.ToolAnnotations{
		DestructiveHint: boolPtr(false),
		OpenWorldHint:   boolPtr(false),
	}
}

// networkAnnotations returns annotations for tools that reach remotes.
func networkAnnotations() *mcp.ToolAnnotations {
	return &mcp.ToolAnnotations{
		DestructiveHint: boolPtr(false),
		OpenWorldHint:   boolPtr(true),
	}
}
