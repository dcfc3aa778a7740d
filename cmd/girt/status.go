// Package main provides the entry point for the girt CLI.
package main

import (
	"github.com/spf13/cobra"

	"github.com/girtline/girt/internal/git"
	"github.com/girtline/girt/internal/output"
)

// newStatusCmd creates the status command.
func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show working tree state",
		Long: `Show the working tree state of the repository.

Paths are grouped by where the change lives: staged (in the index),
unstaged (tracked but modified), and untracked. A repository with none
of the three is clean.

Examples:
  girt status          # Human-readable working tree state
  girt status --json   # Structured state for scripting`,
		RunE: runStatus,
	}
}

// runStatus executes the status command.
func runStatus(cmd *cobra.Command, _ []string) error {
	printer := output.NewPrinter(cmd.OutOrStdout(), isJSONMode(cmd), useColor(cmd))

	eng, err := newEngine(cmd)
	if err != nil {
		printer.Error(err)
		return err
	}

	res, err := eng.svc.Status(cmd.Context(), eng.oc)
	if err != nil {
		return fail(printer, err)
	}

	if printer.IsJSON() {
		return printer.WriteJSON(res)
	}

	printHumanStatus(printer, res)
	return nil
}

// printHumanStatus outputs status in human-readable format.
func printHumanStatus(printer *output.Printer, res git.StatusResult) {
	printer.Section("Working Tree")
	if res.Branch != "" {
		printer.KeyValue("Branch", printer.Branch(res.Branch))
	}
	printer.KeyValue("Clean", formatBool(res.Clean))

	printPathGroup(printer, "Staged", res.Staged)
	printPathGroup(printer, "Unstaged", res.Unstaged)
	printPathGroup(printer, "Untracked", res.Untracked)
}

// printPathGroup prints a named group of paths, skipping empty groups.
func printPathGroup(printer *output.Printer, title string, paths []string) {
	if len(paths) == 0 {
		return
	}
	printer.Section(title)
	for _, p := range paths {
		printer.Println("  " + p)
	}
}

// formatBool returns a human-readable boolean string.
func formatBool(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
