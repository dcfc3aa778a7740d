// Package mcp provides a Model Context Protocol server for girt.
// It exposes git operations as MCP tools that any MCP-capable agent can use.
package mcp

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/girtline/girt/internal/git"
)

// NewServer creates an MCP server with all girt tools registered. The
// base context supplies the working directory for tool calls that do
// not carry their own path, and the tenant recorded on every operation.
func NewServer(version string, provider git.Provider, base git.OpContext) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "girt",
		Version: version,
	}, nil)
	registerTools(server, provider, base)
	return server
}

// registerTools adds all girt tools to the server.
func registerTools(server *mcp.Server, provider git.Provider, base git.OpContext) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "commit",
		Description: "Create a commit in the repository. Supports amend, empty commits, hook bypass, author override, and GPG signing with an optional unsigned retry. Returns the commit hash, author, timestamp, and changed files.",
		Annotations: writeAnnotations(),
	}, handleCommit(provider, base))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "clone",
		Description: "Clone a remote repository into a new local directory. Supports branch selection, shallow depth, bare and mirror layouts, and submodules.",
		Annotations: networkAnnotations(),
	}, handleClone(provider, base))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "diff",
		Description: "Show changes between refs, the index, or the working tree. Returns the rendered diff body plus files-changed, insertion, and deletion counts.",
		Annotations: readOnlyAnnotations(),
	}, handleDiff(provider, base))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "merge_base",
		Description: "Find the best common ancestor of refs, list all common ancestors, or test whether one ref is an ancestor of another.",
		Annotations: readOnlyAnnotations(),
	}, handleMergeBase(provider, base))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "status",
		Description: "Show working tree state: current branch plus staged, unstaged, and untracked paths.",
		Annotations: readOnlyAnnotations(),
	}, handleStatus(provider, base))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "log",
		Description: "List commit history newest first, optionally bounded by a from..to range and a maximum count.",
		Annotations: readOnlyAnnotations(),
	}, handleLog(provider, base))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "resolve",
		Description: "Resolve a ref (branch, tag, or revision expression) to its full commit hash.",
		Annotations: readOnlyAnnotations(),
	}, handleResolve(provider, base))
}
