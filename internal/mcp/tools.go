package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/girtline/girt/internal/git"
)

// --- Commit tool ---

// CommitInput is the input for the commit tool.
type CommitInput struct {
	Path          string `json:"path,omitempty"        jsonschema:"working directory (defaults to the server start directory)"`
	Message       string `json:"message,omitempty"     jsonschema:"commit message (required unless amending)"`
	Amend         bool   `json:"amend,omitempty"       jsonschema:"rewrite the current HEAD commit"`
	AllowEmpty    bool   `json:"allow_empty,omitempty" jsonschema:"permit a commit with no staged changes"`
	NoVerify      bool   `json:"no_verify,omitempty"   jsonschema:"skip pre-commit and commit-msg hooks"`
	Author        string `json:"author,omitempty"      jsonschema:"author override in 'Name <email>' form"`
	Sign          *bool  `json:"sign,omitempty"        jsonschema:"sign the commit (defaults to the server signing policy)"`
	ForceUnsigned bool   `json:"force_unsigned_on_failure,omitempty" jsonschema:"retry unsigned once if the signed attempt fails"`
}

func handleCommit(provider git.Provider, base git.OpContext) mcp.ToolHandlerFor[CommitInput, git.CommitResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input CommitInput) (*mcp.CallToolResult, git.CommitResult, error) {
		res, err := provider.Commit(ctx, git.CommitOptions{
			Message:                input.Message,
			Amend:                  input.Amend,
			AllowEmpty:             input.AllowEmpty,
			NoVerify:               input.NoVerify,
			Author:                 input.Author,
			Sign:                   input.Sign,
			ForceUnsignedOnFailure: input.ForceUnsigned,
		}, opContext(input.Path, base))
		if err != nil {
			return nil, git.CommitResult{}, err
		}
		return nil, res, nil
	}
}

// --- Clone tool ---

// CloneInput is the input for the clone tool.
type CloneInput struct {
	Path              string `json:"path,omitempty"   jsonschema:"directory relative destinations resolve against"`
	URL               string `json:"url"              jsonschema:"remote repository URL (required)"`
	LocalPath         string `json:"local_path"       jsonschema:"destination directory (required, must not exist)"`
	Branch            string `json:"branch,omitempty" jsonschema:"branch to check out"`
	Depth             int    `json:"depth,omitempty"  jsonschema:"shallow clone with this history depth"`
	Bare              bool   `json:"bare,omitempty"   jsonschema:"create a bare repository"`
	Mirror            bool   `json:"mirror,omitempty" jsonschema:"create a mirror clone (implies bare)"`
	RecurseSubmodules bool   `json:"recurse_submodules,omitempty" jsonschema:"clone submodules too"`
}

func handleClone(provider git.Provider, base git.OpContext) mcp.ToolHandlerFor[CloneInput, git.CloneResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input CloneInput) (*mcp.CallToolResult, git.CloneResult, error) {
		res, err := provider.Clone(ctx, git.CloneOptions{
			RemoteURL:         input.URL,
			LocalPath:         input.LocalPath,
			Branch:            input.Branch,
			Depth:             input.Depth,
			Bare:              input.Bare,
			Mirror:            input.Mirror,
			RecurseSubmodules: input.RecurseSubmodules,
		}, opContext(input.Path, base))
		if err != nil {
			return nil, git.CloneResult{}, err
		}
		return nil, res, nil
	}
}
