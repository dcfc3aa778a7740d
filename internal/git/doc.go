// Package git executes version-control operations by shelling out to the
// git binary and parsing its textual output into typed results.
//
// The package is organized as a small pipeline: pure per-operation
// builders produce argument vectors, a Runner spawns the process and
// captures complete stdout/stderr, tolerant parsers turn loose text into
// structs, and a single mapper classifies failures into a fixed taxonomy.
// The Service type composes the pipeline and implements Provider, the
// contract consumed by the CLI commands and the MCP tool layer.
//
// # Running Operations
//
// Construct one Service per process and call its operation methods with a
// context and an OpContext naming the working directory:
//
//	svc := git.NewService(git.Config{})
//	res, err := svc.Commit(ctx, git.CommitOptions{Message: "fix parser"},
//		git.OpContext{Dir: "/work/repo"})
//
// Every operation resolves the working directory to an absolute path
// before any command is built, so relative-path ambiguity never reaches
// the spawned process.
//
// # Exit Codes Are Data
//
// The Runner never converts a non-zero exit into an error by itself. It
// returns a Result carrying the exit code and both output streams, and
// each operation decides which exit codes are expected outcomes. This is
// what lets an ancestry check report "not an ancestor" as a successful
// result instead of a failure.
//
// # Error Handling
//
// All failures are *Error values with a Kind from a fixed taxonomy:
//
//	KindValidation  - bad options, rejected before any process spawns
//	KindEnvironment - git missing, permission denied, bad working directory
//	KindExecution   - git ran and exited non-zero in an unexpected way
//	KindCanceled    - the caller's context was canceled or timed out
//
// Execution failures carry the captured stderr as their message and the
// underlying error as their cause:
//
//	res, err := svc.Diff(ctx, git.DiffOptions{Source: "main"}, oc)
//	var gerr *git.Error
//	if errors.As(err, &gerr) && gerr.Kind == git.KindExecution {
//	    // stderr text is in gerr.Message
//	}
package git
