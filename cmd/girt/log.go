// Package main provides the entry point for the girt CLI.
package main

import (
	"github.com/spf13/cobra"

	"github.com/girtline/girt/internal/git"
	"github.com/girtline/girt/internal/output"
)

// logFlags holds the command-line flags for the log command.
type logFlags struct {
	from     string
	to       string
	maxCount int
}

// newLogCmd creates the log command.
func newLogCmd() *cobra.Command {
	flags := &logFlags{}

	cmd := &cobra.Command{
		Use:   "log",
		Short: "List commit history",
		Long: `List commits, newest first.

With --from, history starts after the given ref (exclusive) and runs up
to --to (inclusive, HEAD when omitted). Without --from, the full history
behind --to is listed.

Examples:
  girt log                          # Full history of HEAD
  girt log -n 10                    # Last ten commits
  girt log --from v1.0.0            # Commits since the v1.0.0 tag
  girt log --from main --to topic   # Commits on topic not on main`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runLog(cmd, flags)
		},
	}

	cmd.Flags().StringVar(&flags.from, "from", "", "Exclusive lower bound of the range")
	cmd.Flags().StringVar(&flags.to, "to", "", "Inclusive upper bound of the range (default HEAD)")
	cmd.Flags().IntVarP(&flags.maxCount, "max-count", "n", 0, "Limit the number of commits (0 = no limit)")

	return cmd
}

// runLog executes the log command.
func runLog(cmd *cobra.Command, flags *logFlags) error {
	printer := output.NewPrinter(cmd.OutOrStdout(), isJSONMode(cmd), useColor(cmd))

	eng, err := newEngine(cmd)
	if err != nil {
		printer.Error(err)
		return err
	}

	opts := git.LogOptions{
		From:     flags.from,
		To:       flags.to,
		MaxCount: flags.maxCount,
	}

	res, err := eng.svc.Log(cmd.Context(), opts, eng.oc)
	if err != nil {
		return fail(printer, err)
	}

	if printer.IsJSON() {
		return printer.WriteJSON(res)
	}

	printHumanLog(printer, res)
	return nil
}

// printHumanLog outputs the commit list in compact table format:
// Hash | Date | Author | Subject.
func printHumanLog(printer *output.Printer, res git.LogResult) {
	if res.Count == 0 {
		printer.Println(printer.Dim("no commits"))
		return
	}

	headers := []string{"Hash", "Date", "Author", "Subject"}
	rows := make([][]string, 0, res.Count)
	for _, c := range res.Commits {
		rows = append(rows, []string{
			c.ShortHash,
			c.Timestamp.Format("2006-01-02"),
			c.Author,
			c.Subject,
		})
	}

	printer.Table(headers, rows)
}
