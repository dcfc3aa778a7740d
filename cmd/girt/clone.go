// Package main provides the entry point for the girt CLI.
package main

import (
	"github.com/spf13/cobra"

	"github.com/girtline/girt/internal/git"
	"github.com/girtline/girt/internal/output"
)

// cloneFlags holds the command-line flags for the clone command.
type cloneFlags struct {
	branch            string
	depth             int
	bare              bool
	mirror            bool
	recurseSubmodules bool
}

// newCloneCmd creates the clone command.
func newCloneCmd() *cobra.Command {
	flags := &cloneFlags{}

	cmd := &cobra.Command{
		Use:   "clone <url> <path>",
		Short: "Clone a repository into a new directory",
		Long: `Clone a repository from a remote URL into a new directory.

The destination must not exist yet; a relative path resolves against the
working directory (or --repo). The reported local path is always the
resolved absolute destination.

Examples:
  girt clone https://example.com/repo.git repo          # Plain clone
  girt clone https://example.com/repo.git work/repo     # Nested destination
  girt clone https://example.com/repo.git repo --depth 1
  girt clone git@example.com:infra.git mirror --mirror`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runClone(cmd, args, flags)
		},
	}

	cmd.Flags().StringVar(&flags.branch, "branch", "", "Check out this branch instead of the remote default")
	cmd.Flags().IntVar(&flags.depth, "depth", 0, "Create a shallow clone with this history depth")
	cmd.Flags().BoolVar(&flags.bare, "bare", false, "Create a bare repository")
	cmd.Flags().BoolVar(&flags.mirror, "mirror", false, "Mirror the remote, including all refs")
	cmd.Flags().BoolVar(&flags.recurseSubmodules, "recurse-submodules", false, "Clone submodules as well")

	return cmd
}

// runClone executes the clone command.
func runClone(cmd *cobra.Command, args []string, flags *cloneFlags) error {
	printer := output.NewPrinter(cmd.OutOrStdout(), isJSONMode(cmd), useColor(cmd))

	eng, err := newEngine(cmd)
	if err != nil {
		printer.Error(err)
		return err
	}

	opts := git.CloneOptions{
		RemoteURL:         args[0],
		LocalPath:         args[1],
		Branch:            flags.branch,
		Depth:             flags.depth,
		Bare:              flags.bare,
		Mirror:            flags.mirror,
		RecurseSubmodules: flags.recurseSubmodules,
	}

	res, err := eng.svc.Clone(cmd.Context(), opts, eng.oc)
	if err != nil {
		return fail(printer, err)
	}

	if printer.IsJSON() {
		return printer.WriteJSON(res)
	}

	if res.Branch != "" {
		printer.KeyValue("Branch", printer.Branch(res.Branch))
	}
	return printer.Success(map[string]any{"message": "Cloned into " + res.LocalPath})
}
