// Package main provides the entry point for the girt CLI.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/lipgloss"
	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/girtline/girt/internal/config"
	"github.com/girtline/girt/internal/envfile"
	"github.com/girtline/girt/internal/git"
	"github.com/girtline/girt/internal/output"
)

// Build info set via ldflags at build time by goreleaser.
// Example: go build -ldflags "-X main.version=1.0.0 -X main.commit=abc123 -X main.date=2024-01-01"
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// isJSONMode reads the --json persistent flag from the command hierarchy.
func isJSONMode(cmd *cobra.Command) bool {
	flag := cmd.Flags().Lookup("json")
	if flag == nil {
		// Walk up to root to find the persistent flag
		flag = cmd.Root().PersistentFlags().Lookup("json")
	}
	return flag != nil && flag.Value.String() == "true"
}

// isDebugMode reads the --debug persistent flag from the command hierarchy.
func isDebugMode(cmd *cobra.Command) bool {
	flag := cmd.Flags().Lookup("debug")
	if flag == nil {
		flag = cmd.Root().PersistentFlags().Lookup("debug")
	}
	return flag != nil && flag.Value.String() == "true"
}

// useColor resolves the --color persistent flag against TTY detection.
func useColor(cmd *cobra.Command) bool {
	mode := "auto"
	if flag := cmd.Root().PersistentFlags().Lookup("color"); flag != nil {
		mode = flag.Value.String()
	}
	return output.ResolveColorMode(mode, output.IsTTY(cmd.OutOrStdout()))
}

// repoDir reads the --repo persistent flag. Empty means the process
// working directory.
func repoDir(cmd *cobra.Command) string {
	if flag := cmd.Root().PersistentFlags().Lookup("repo"); flag != nil {
		return flag.Value.String()
	}
	return ""
}

// buildVersion returns the full version string including commit and date.
func buildVersion() string {
	if commit == "none" && date == "unknown" {
		return version
	}
	shortCommit := commit
	if len(commit) > 7 {
		shortCommit = commit[:7]
	}
	return fmt.Sprintf("%s (%s, %s)", version, shortCommit, date)
}

// shortHash abbreviates a full object name for display.
func shortHash(hash string) string {
	if len(hash) > 12 {
		return hash[:12]
	}
	return hash
}

func boolPtr(b bool) *bool { return &b }

func intPtr(n int) *int { return &n }

func main() {
	code := run()
	os.Exit(code)
}

func run() int {
	cmd := newRootCmd()
	err := fang.Execute(context.Background(), cmd, fang.WithVersion(buildVersion()))
	return output.GetExitCode(err)
}

// engine bundles what every command needs: the service, the operation
// context built from the root flags, and the loaded configuration.
type engine struct {
	svc *git.Service
	oc  git.OpContext
	cfg *config.Config
}

// newEngine loads configuration and builds the git service for one
// command invocation. Configuration problems are user errors.
func newEngine(cmd *cobra.Command) (*engine, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, output.NewUserError(err.Error())
	}
	timeout, err := cfg.TimeoutDuration()
	if err != nil {
		return nil, output.NewUserError(err.Error())
	}

	svc := git.NewService(git.Config{
		Bin:         cfg.GitBin,
		SignCommits: cfg.SignCommits,
		Timeout:     timeout,
		Logger:      newLogger(cmd),
	})
	oc := git.OpContext{Dir: repoDir(cmd), Tenant: cfg.Tenant}

	return &engine{svc: svc, oc: oc, cfg: cfg}, nil
}

// newLogger builds the engine logger. With --debug, argv, durations and
// exit codes stream to stderr; otherwise engine logging is off.
func newLogger(cmd *cobra.Command) hclog.Logger {
	if !isDebugMode(cmd) {
		return hclog.NewNullLogger()
	}
	return hclog.New(&hclog.LoggerOptions{
		Name:   "girt",
		Level:  hclog.Debug,
		Output: cmd.ErrOrStderr(),
	})
}

// wrapExit maps engine failures onto process exit codes: validation
// failures are user errors, environment and execution failures are
// system errors, and cancellation exits like an interrupt.
func wrapExit(err error) error {
	if err == nil {
		return nil
	}
	switch git.KindOf(err) {
	case git.KindValidation:
		return output.NewUserError(err.Error())
	case git.KindCanceled:
		return output.NewCanceledError(err.Error())
	case git.KindEnvironment, git.KindExecution:
		return output.NewSystemErrorWithCause(err.Error(), err)
	}
	return err
}

// fail prints err and converts it for exit-code mapping. Errors already
// carrying an exit code pass through unchanged.
func fail(printer *output.Printer, err error) error {
	var exitErr *output.ExitError
	if !errors.As(err, &exitErr) {
		err = wrapExit(err)
	}
	printer.Error(err)
	return err
}

// newRootCmd creates the root command for the girt CLI.
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "girt",
		Short: "A typed execution engine for the git CLI",
		Long: `Girt - a typed execution engine wrapping the git command line.

Girt runs git operations as typed requests instead of shell strings:
  - Options become argv entries, never interpolated shell text
  - Every invocation honors context cancellation and timeouts
  - Loose git output is parsed into structured results
  - Failures carry a stable kind: validation, environment, execution, canceled

All commands support --json for structured output.`,
		Version:       buildVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// If --json flag is set but no subcommand, output JSON error
			if isJSONMode(cmd) {
				printer := output.NewPrinter(cmd.OutOrStdout(), true, false)
				err := output.NewUserError("no command specified. Run 'girt --help' for usage")
				printer.Error(err)
				return err
			}
			// Otherwise show help
			return cmd.Help()
		},
	}

	// Load .env.local (then .env) so GIRT_* overrides work without
	// exporting them. Environment variables already set take precedence.
	cmd.PersistentPreRunE = func(_ *cobra.Command, _ []string) error {
		loadEnvFiles()
		return nil
	}

	// Persistent flags available to all subcommands
	cmd.PersistentFlags().Bool("json", false, "Output in JSON format")
	cmd.PersistentFlags().String("repo", "", "Working directory for git operations (default: current directory)")
	cmd.PersistentFlags().Bool("debug", false, "Stream engine debug logs to stderr")
	cmd.PersistentFlags().String("color", "auto", "Color output: auto, always, or never")

	// Configure lipgloss for TTY detection
	lipgloss.SetHasDarkBackground(true)

	// Define command groups and add commands
	addCommandGroups(cmd)
	addCommands(cmd)

	return cmd
}

// loadEnvFiles loads env files in priority order. First match for each
// variable wins; environment variables already set always take precedence.
//
// Resolution order:
//  1. $CWD/.env.local   (per-repo override, gitignored)
//  2. $CWD/.env         (per-repo)
//  3. ~/.config/girt/env (global fallback)
func loadEnvFiles() {
	_ = envfile.Load(".env.local")
	_ = envfile.Load(".env")

	if dir := config.Dir(); dir != "" {
		_ = envfile.Load(filepath.Join(dir, "env"))
	}
}

// addCommandGroups defines the command groups for help output.
func addCommandGroups(cmd *cobra.Command) {
	cmd.AddGroup(&cobra.Group{ID: "core", Title: "Core Commands:"})
	cmd.AddGroup(&cobra.Group{ID: "query", Title: "Query Commands:"})
	cmd.AddGroup(&cobra.Group{ID: "agent", Title: "Agent Commands:"})
	cmd.AddGroup(&cobra.Group{ID: "admin", Title: "Admin Commands:"})
}

// addCommands adds all subcommands with their group assignments.
func addCommands(cmd *cobra.Command) {
	// Core commands: repository writes
	addGroupedCommand(cmd, newCommitCmd(), "core")
	addGroupedCommand(cmd, newCloneCmd(), "core")

	// Query commands: read-only inspection
	addGroupedCommand(cmd, newStatusCmd(), "query")
	addGroupedCommand(cmd, newDiffCmd(), "query")
	addGroupedCommand(cmd, newLogCmd(), "query")
	addGroupedCommand(cmd, newMergeBaseCmd(), "query")
	addGroupedCommand(cmd, newResolveCmd(), "query")

	// Agent commands: MCP server
	addGroupedCommand(cmd, newServeCmd(), "agent")

	// Admin commands: diagnostics
	addGroupedCommand(cmd, newDoctorCmd(), "admin")
}

// addGroupedCommand adds a subcommand with a group assignment.
func addGroupedCommand(parent *cobra.Command, child *cobra.Command, groupID string) {
	child.GroupID = groupID
	parent.AddCommand(child)
}
