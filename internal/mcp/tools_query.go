package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/girtline/girt/internal/git"
)

// --- Diff tool ---

// DiffInput is the input for the diff tool.
type DiffInput struct {
	Path             string `json:"path,omitempty"   jsonschema:"working directory (defaults to the server start directory)"`
	Source           string `json:"source,omitempty" jsonschema:"base ref of the comparison"`
	Target           string `json:"target,omitempty" jsonschema:"target ref of the comparison"`
	File             string `json:"file,omitempty"   jsonschema:"limit the diff to one pathspec"`
	Staged           bool   `json:"staged,omitempty" jsonschema:"compare the index against HEAD"`
	IncludeUntracked bool   `json:"include_untracked,omitempty" jsonschema:"count untracked files in files_changed"`
	Stat             bool   `json:"stat,omitempty"      jsonschema:"render a per-file change summary instead of a patch"`
	NameOnly         bool   `json:"name_only,omitempty" jsonschema:"render changed file names instead of a patch"`
	Unified          *int   `json:"unified,omitempty"   jsonschema:"number of context lines in the patch"`
}

func handleDiff(provider git.Provider, base git.OpContext) mcp.ToolHandlerFor[DiffInput, git.DiffResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input DiffInput) (*mcp.CallToolResult, git.DiffResult, error) {
		opts := git.DiffOptions{
			Source:           input.Source,
			Target:           input.Target,
			Staged:           input.Staged,
			IncludeUntracked: input.IncludeUntracked,
			Stat:             input.Stat,
			NameOnly:         input.NameOnly,
			Unified:          input.Unified,
		}
		if input.File != "" {
			opts.Paths = []string{input.File}
		}

		res, err := provider.Diff(ctx, opts, opContext(input.Path, base))
		if err != nil {
			return nil, git.DiffResult{}, err
		}
		return nil, res, nil
	}
}

// --- Merge-base tool ---

// MergeBaseInput is the input for the merge_base tool.
type MergeBaseInput struct {
	Path string   `json:"path,omitempty" jsonschema:"working directory (defaults to the server start directory)"`
	Refs []string `json:"refs"           jsonschema:"refs to compare (is-ancestor takes exactly two)"`
	Mode string   `json:"mode,omitempty" jsonschema:"default, all, or is-ancestor"`
}

func handleMergeBase(provider git.Provider, base git.OpContext) mcp.ToolHandlerFor[MergeBaseInput, git.MergeBaseResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input MergeBaseInput) (*mcp.CallToolResult, git.MergeBaseResult, error) {
		res, err := provider.MergeBase(ctx, git.MergeBaseOptions{
			Refs: input.Refs,
			Mode: git.MergeBaseMode(input.Mode),
		}, opContext(input.Path, base))
		if err != nil {
			return nil, git.MergeBaseResult{}, err
		}
		return nil, res, nil
	}
}

// --- Resolve tool ---

// ResolveInput is the input for the resolve tool.
type ResolveInput struct {
	Path string `json:"path,omitempty" jsonschema:"working directory (defaults to the server start directory)"`
	Ref  string `json:"ref"            jsonschema:"ref to resolve (required)"`
}

func handleResolve(provider git.Provider, base git.OpContext) mcp.ToolHandlerFor[ResolveInput, git.ResolveResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input ResolveInput) (*mcp.CallToolResult, git.ResolveResult, error) {
		res, err := provider.Resolve(ctx, input.Ref, opContext(input.Path, base))
		if err != nil {
			return nil, git.ResolveResult{}, err
		}
		return nil, res, nil
	}
}
