// Package main provides the entry point for the girt CLI.
package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/girtline/girt/internal/git"
	"github.com/girtline/girt/internal/output"
)

// commitFlags holds the command-line flags for the commit command.
type commitFlags struct {
	message       string
	amend         bool
	allowEmpty    bool
	noVerify      bool
	author        string
	sign          bool
	noSign        bool
	forceUnsigned bool
}

// newCommitCmd creates the commit command.
func newCommitCmd() *cobra.Command {
	flags := &commitFlags{}

	cmd := &cobra.Command{
		Use:   "commit",
		Short: "Record staged changes as a commit",
		Long: `Record the staged changes as a new commit.

The message travels as a single argv entry, so any text is safe: quotes,
dollar signs, and backticks reach git unchanged. Signing follows the
configured policy unless --sign or --no-sign overrides it; when a signed
commit fails and --force-unsigned is set, the commit is retried once
without a signature.

Examples:
  girt commit -m "Fix parser crash"      # Commit staged changes
  girt commit -m "Rework API" --amend    # Replace the tip commit
  girt commit -m "Release" --sign        # Force a GPG-signed commit
  girt commit -m "WIP" --json            # Structured result for scripting`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCommit(cmd, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.message, "message", "m", "", "Commit message (required unless amending)")
	cmd.Flags().BoolVar(&flags.amend, "amend", false, "Replace the tip commit instead of adding a new one")
	cmd.Flags().BoolVar(&flags.allowEmpty, "allow-empty", false, "Allow a commit with no staged changes")
	cmd.Flags().BoolVar(&flags.noVerify, "no-verify", false, "Skip pre-commit and commit-msg hooks")
	cmd.Flags().StringVar(&flags.author, "author", "", "Override the author ('Name <email>')")
	cmd.Flags().BoolVar(&flags.sign, "sign", false, "GPG-sign the commit regardless of configuration")
	cmd.Flags().BoolVar(&flags.noSign, "no-sign", false, "Do not sign, regardless of configuration")
	cmd.Flags().BoolVar(&flags.forceUnsigned, "force-unsigned", false, "Retry once without signing if the signed commit fails")

	return cmd
}

// runCommit executes the commit command.
func runCommit(cmd *cobra.Command, flags *commitFlags) error {
	printer := output.NewPrinter(cmd.OutOrStdout(), isJSONMode(cmd), useColor(cmd)).
		WithStderr(cmd.ErrOrStderr())

	if flags.sign && flags.noSign {
		err := output.NewUserError("--sign and --no-sign are mutually exclusive")
		printer.Error(err)
		return err
	}

	eng, err := newEngine(cmd)
	if err != nil {
		printer.Error(err)
		return err
	}

	opts := git.CommitOptions{
		Message:    flags.message,
		Amend:      flags.amend,
		AllowEmpty: flags.allowEmpty,
		NoVerify:   flags.noVerify,
		Author:     flags.author,
	}
	switch {
	case flags.sign:
		opts.Sign = boolPtr(true)
	case flags.noSign:
		opts.Sign = boolPtr(false)
	}
	opts.ForceUnsignedOnFailure = eng.cfg.ForceUnsignedOnFailure
	if cmd.Flags().Changed("force-unsigned") {
		opts.ForceUnsignedOnFailure = flags.forceUnsigned
	}

	res, err := eng.svc.Commit(cmd.Context(), opts, eng.oc)
	if err != nil {
		return fail(printer, err)
	}

	if printer.IsJSON() {
		return printer.WriteJSON(res)
	}

	wantSign := eng.cfg.SignCommits
	if opts.Sign != nil {
		wantSign = *opts.Sign
	}
	if wantSign && !res.Signed {
		printer.Warn("signed commit failed, retried without a signature")
	}

	printHumanCommit(printer, res)
	return printer.Success(map[string]any{
		"message": fmt.Sprintf("Created commit %s", shortHash(res.Hash)),
	})
}

// printHumanCommit outputs a commit result in human-readable format.
func printHumanCommit(printer *output.Printer, res git.CommitResult) {
	printer.Section("Commit")
	printer.KeyValue("Hash", printer.Hash(shortHash(res.Hash)))
	printer.KeyValue("Message", res.Message)
	if res.Author != "" {
		printer.KeyValue("Author", res.Author)
	}
	printer.KeyValue("Signed", formatBool(res.Signed))
	if len(res.FilesChanged) > 0 {
		printer.KeyValue("Files", strconv.Itoa(len(res.FilesChanged)))
	}
}
