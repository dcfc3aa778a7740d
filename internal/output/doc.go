// Package output provides structured output handling for the girt CLI.
//
// This package handles both human-readable and JSON output formats, supporting
// the agent-friendly design principle that all commands should work well for
// both human users and automated agents.
//
// # Printer
//
// The Printer is the primary interface for command output. It automatically
// handles format switching based on the --json flag and TTY detection:
//
//	printer := output.NewPrinter(cmd.OutOrStdout(), jsonFlag, output.IsTTY(cmd.OutOrStdout()))
//
//	// For typed results
//	printer.WriteJSON(result)
//
//	// For simple success output
//	printer.Success(map[string]any{"message": "Cloned into /work/proj"})
//
//	// For error output
//	printer.Error(err)
//
//	// For raw output
//	printer.Println("Some text")
//	printer.Print("Formatted: %s\n", value)
//
// # JSON Mode
//
// When JSON mode is enabled (via --json flag), all output is structured:
//
//	// Success: {"success": true, "hash": "...", ...}
//	// Error: {"error": "message", "code": N}
//
// # Styling
//
// For human-readable output, the package provides lipgloss-based styling
// that automatically disables when output is piped:
//
//	printer.styles.Error   // Red, bold
//	printer.styles.Success // Green
//	printer.styles.Warning // Yellow
//	printer.styles.Hash    // Yellow (commit hashes)
//	printer.styles.Branch  // Green (branch names)
//
// # Exit Codes
//
// The package defines standard exit codes and error types:
//
//	output.ExitSuccess     // 0:   Success
//	output.ExitUserError   // 1:   User error (bad args, unknown refs)
//	output.ExitSystemError // 2:   System error (git missing or failed, I/O error)
//	output.ExitCanceled    // 130: Canceled (interrupt, timeout)
//
// # Error Types
//
// Use the error constructors to create properly-coded errors:
//
//	output.NewUserError("unknown ref: HEAD~99")
//	output.NewSystemError("git executable not found")
//	output.NewCanceledError("operation canceled")
//
// These errors carry exit codes that are used for both JSON error output
// and process exit codes.
package output
