// Package main provides the entry point for the girt CLI.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/girtline/girt/internal/git"
	"github.com/girtline/girt/internal/output"
)

// diffFlags holds the command-line flags for the diff command.
type diffFlags struct {
	staged           bool
	includeUntracked bool
	stat             bool
	nameOnly         bool
	unified          int
	path             string
}

// newDiffCmd creates the diff command.
func newDiffCmd() *cobra.Command {
	flags := &diffFlags{}

	cmd := &cobra.Command{
		Use:   "diff [source] [target]",
		Short: "Show changes between commits or the working tree",
		Long: `Show changes between two refs, or the uncommitted changes when no
refs are given.

With no arguments, compares the working tree against HEAD (the index
with --staged). With one ref, compares the working tree against it. With
two refs, compares the pair. Insertion and deletion counts always come
from a separate numeric pass, whatever body format is requested.

Examples:
  girt diff                         # Uncommitted changes
  girt diff --staged                # Staged changes only
  girt diff main feature/login      # Between two branches
  girt diff v1.0.0 v1.1.0 --stat    # Per-file change summary
  girt diff --path src/parser.go    # Single file only`,
		Args: cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDiff(cmd, args, flags)
		},
	}

	cmd.Flags().BoolVar(&flags.staged, "staged", false, "Compare the index against HEAD")
	cmd.Flags().BoolVar(&flags.includeUntracked, "include-untracked", false, "Count untracked files as changed")
	cmd.Flags().BoolVar(&flags.stat, "stat", false, "Show a per-file change summary instead of the patch")
	cmd.Flags().BoolVar(&flags.nameOnly, "name-only", false, "Show only the names of changed files")
	cmd.Flags().IntVar(&flags.unified, "unified", 3, "Number of context lines")
	cmd.Flags().StringVar(&flags.path, "path", "", "Limit the diff to a single path")

	return cmd
}

// runDiff executes the diff command.
func runDiff(cmd *cobra.Command, args []string, flags *diffFlags) error {
	printer := output.NewPrinter(cmd.OutOrStdout(), isJSONMode(cmd), useColor(cmd)).
		WithStderr(cmd.ErrOrStderr())

	eng, err := newEngine(cmd)
	if err != nil {
		printer.Error(err)
		return err
	}

	opts := git.DiffOptions{
		Staged:           flags.staged,
		IncludeUntracked: flags.includeUntracked,
		Stat:             flags.stat,
		NameOnly:         flags.nameOnly,
	}
	if len(args) > 0 {
		opts.Source = args[0]
	}
	if len(args) > 1 {
		opts.Target = args[1]
	}
	if flags.path != "" {
		opts.Paths = []string{flags.path}
	}
	if cmd.Flags().Changed("unified") {
		opts.Unified = intPtr(flags.unified)
	}

	res, err := eng.svc.Diff(cmd.Context(), opts, eng.oc)
	if err != nil {
		return fail(printer, err)
	}

	if printer.IsJSON() {
		return printer.WriteJSON(res)
	}

	// When piped, emit the counts to stderr so the user gets feedback
	if !printer.IsTTY() && res.FilesChanged > 0 {
		printer.Stderr("girt: %s\n", diffSummaryLine(res))
	}

	printHumanDiff(printer, res)
	return nil
}

// printHumanDiff outputs the diff body followed by the aggregate counts.
func printHumanDiff(printer *output.Printer, res git.DiffResult) {
	if res.Diff != "" {
		printer.Println(res.Diff)
	}
	if res.FilesChanged == 0 {
		printer.Println(printer.Dim("no changes"))
		return
	}
	printer.Println(printer.Dim(diffSummaryLine(res)))
}

// diffSummaryLine formats the aggregate counts in git's diffstat phrasing.
func diffSummaryLine(res git.DiffResult) string {
	summary := fmt.Sprintf("%d files changed, %d insertions(+), %d deletions(-)",
		res.FilesChanged, res.Insertions, res.Deletions)
	if res.Binary {
		summary += ", binary"
	}
	return summary
}
