// Package main provides the entry point for the girt CLI.
package main

import (
	"github.com/spf13/cobra"

	"github.com/girtline/girt/internal/git"
	"github.com/girtline/girt/internal/output"
)

// mergeBaseFlags holds the command-line flags for the merge-base command.
type mergeBaseFlags struct {
	all        bool
	isAncestor bool
}

// newMergeBaseCmd creates the merge-base command.
func newMergeBaseCmd() *cobra.Command {
	flags := &mergeBaseFlags{}

	cmd := &cobra.Command{
		Use:   "merge-base <ref> <ref>...",
		Short: "Find the best common ancestor of two or more refs",
		Long: `Find the best common ancestor between refs, for merge and rebase
planning.

Default mode prints the single best ancestor. With --all, every best
ancestor is printed (criss-cross merges have more than one). With
--is-ancestor, no hash is printed; the result states whether the first
ref is an ancestor of the second. Refs with no common history are a
normal outcome, not an error.

Examples:
  girt merge-base main feature/login         # Best common ancestor
  girt merge-base --all main topic           # All best ancestors
  girt merge-base --is-ancestor v1.0.0 main  # Ancestry test`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMergeBase(cmd, args, flags)
		},
	}

	cmd.Flags().BoolVar(&flags.all, "all", false, "Print all best common ancestors")
	cmd.Flags().BoolVar(&flags.isAncestor, "is-ancestor", false, "Test whether the first ref is an ancestor of the second")

	return cmd
}

// runMergeBase executes the merge-base command.
func runMergeBase(cmd *cobra.Command, args []string, flags *mergeBaseFlags) error {
	printer := output.NewPrinter(cmd.OutOrStdout(), isJSONMode(cmd), useColor(cmd))

	if flags.all && flags.isAncestor {
		err := output.NewUserError("--all and --is-ancestor are mutually exclusive")
		printer.Error(err)
		return err
	}

	eng, err := newEngine(cmd)
	if err != nil {
		printer.Error(err)
		return err
	}

	opts := git.MergeBaseOptions{Refs: args}
	switch {
	case flags.all:
		opts.Mode = git.MergeBaseAll
	case flags.isAncestor:
		opts.Mode = git.MergeBaseIsAncestor
	}

	res, err := eng.svc.MergeBase(cmd.Context(), opts, eng.oc)
	if err != nil {
		return fail(printer, err)
	}

	if printer.IsJSON() {
		return printer.WriteJSON(res)
	}

	printHumanMergeBase(printer, res)
	return nil
}

// printHumanMergeBase outputs a merge-base result in human-readable form.
func printHumanMergeBase(printer *output.Printer, res git.MergeBaseResult) {
	switch {
	case res.IsAncestor != nil:
		verdict := "is an ancestor of"
		if !*res.IsAncestor {
			verdict = "is not an ancestor of"
		}
		printer.Print("%s %s %s\n", res.Refs[0], verdict, res.Refs[1])
	case len(res.MergeBases) > 0:
		for _, hash := range res.MergeBases {
			printer.Println(printer.Hash(hash))
		}
	case res.MergeBase != "":
		printer.Println(printer.Hash(res.MergeBase))
	default:
		printer.Println(printer.Dim("no common ancestor"))
	}
}
