package git

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os/exec"
	"strings"
)

// Kind classifies an operation failure.
type Kind string

const (
	// KindValidation marks options rejected before any process spawned.
	KindValidation Kind = "validation"
	// KindEnvironment marks failures outside git itself: binary missing,
	// bad working directory, permissions.
	KindEnvironment Kind = "environment"
	// KindExecution marks a git process that ran and exited non-zero in a
	// way the operation does not treat as an expected outcome.
	KindExecution Kind = "execution"
	// KindCanceled marks an operation cut short by context cancellation
	// or deadline expiry.
	KindCanceled Kind = "canceled"
)

// Error is the single failure type returned by every operation. Kind
// drives programmatic handling; Message carries the human-readable
// diagnostic, which for execution failures is the captured stderr.
type Error struct {
	Kind     Kind
	Op       string // operation that failed, e.g. "commit"
	Message  string
	ExitCode int // set for KindExecution, zero otherwise
	Cause    error
}

func (e *Error) Error() string {
	switch {
	case e.Kind == KindExecution && e.Op != "":
		return fmt.Sprintf("git %s failed (exit %d): %s", e.Op, e.ExitCode, e.Message)
	case e.Op != "":
		return fmt.Sprintf("git %s: %s", e.Op, e.Message)
	default:
		return e.Message
	}
}

func (e *Error) Unwrap() error { return e.Cause }

// NewValidationError reports options rejected before execution.
func NewValidationError(op, message string) *Error {
	return &Error{Kind: KindValidation, Op: op, Message: message}
}

// NewEnvironmentError reports a failure to reach the git binary or the
// working directory.
func NewEnvironmentError(op, message string, cause error) *Error {
	return &Error{Kind: KindEnvironment, Op: op, Message: message, Cause: cause}
}

// NewExecutionError reports an unexpected non-zero exit from git.
func NewExecutionError(op, message string, exitCode int, cause error) *Error {
	return &Error{Kind: KindExecution, Op: op, Message: message, ExitCode: exitCode, Cause: cause}
}

// NewCanceledError reports an operation cut short by its context.
func NewCanceledError(op string, cause error) *Error {
	msg := "operation canceled"
	if errors.Is(cause, context.DeadlineExceeded) {
		msg = "operation timed out"
	}
	return &Error{Kind: KindCanceled, Op: op, Message: msg, Cause: cause}
}

// KindOf returns the Kind of err, or "" when err is not an *Error.
func KindOf(err error) Kind {
	var gerr *Error
	if errors.As(err, &gerr) {
		return gerr.Kind
	}
	return ""
}

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, k Kind) bool {
	return KindOf(err) == k
}

// mapRunError classifies a raw error surfaced by a Runner. Errors that
// are already *Error values pass through unchanged, so operations can
// wrap each other without double-classifying.
func mapRunError(op string, err error) *Error {
	var gerr *Error
	if errors.As(err, &gerr) {
		return gerr
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return NewCanceledError(op, err)
	}
	var execErr *exec.Error
	if errors.As(err, &execErr) {
		return NewEnvironmentError(op, "git not found: ensure git is installed and in PATH", err)
	}
	var pathErr *fs.PathError
	if errors.As(err, &pathErr) {
		return NewEnvironmentError(op, "working directory unusable: "+pathErr.Path, err)
	}
	return NewEnvironmentError(op, err.Error(), err)
}

// executionError builds a KindExecution error from a non-zero exit,
// promoting captured stderr to the message.
func executionError(op string, res Result) *Error {
	msg := strings.TrimSpace(res.Stderr)
	if msg == "" {
		msg = fmt.Sprintf("exit status %d", res.ExitCode)
	}
	return NewExecutionError(op, msg, res.ExitCode, nil)
}
