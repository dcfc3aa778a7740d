// Package main provides the entry point for the girt CLI.
package main

import (
	"github.com/spf13/cobra"

	"github.com/girtline/girt/internal/output"
)

// newResolveCmd creates the resolve command.
func newResolveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <ref>",
		Short: "Resolve a ref to a commit hash",
		Long: `Resolve a branch, tag, or revision expression to its commit hash.

Any rev-parse expression works: HEAD~3, main^2, v1.0.0^{commit}. A ref
that does not exist in the repository is rejected as bad input, not a
system failure.

Examples:
  girt resolve HEAD            # Hash of the current commit
  girt resolve main            # Tip of main
  girt resolve v1.2.0 --json   # Structured result`,
		Args: cobra.ExactArgs(1),
		RunE: runResolve,
	}
}

// runResolve executes the resolve command.
func runResolve(cmd *cobra.Command, args []string) error {
	printer := output.NewPrinter(cmd.OutOrStdout(), isJSONMode(cmd), useColor(cmd))

	eng, err := newEngine(cmd)
	if err != nil {
		printer.Error(err)
		return err
	}

	res, err := eng.svc.Resolve(cmd.Context(), args[0], eng.oc)
	if err != nil {
		return fail(printer, err)
	}

	if printer.IsJSON() {
		return printer.WriteJSON(res)
	}

	line := printer.Hash(res.Hash)
	if res.Symbolic != "" {
		line += " " + printer.Dim(res.Symbolic)
	}
	printer.Println(line)
	return nil
}
