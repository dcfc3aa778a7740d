package git

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"time"

	"github.com/hashicorp/go-hclog"
)

// defaultGitBin is the executable looked up on PATH when no explicit
// binary is configured.
const defaultGitBin = "git"

// Result is the complete outcome of one git invocation. A non-zero
// ExitCode is not an error at this layer; operations interpret it.
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Runner spawns a git process in dir with the given argument vector and
// captures its output. Implementations return an error only when the
// process could not run to completion: spawn failures, unusable working
// directories, context cancellation. A process that ran and exited,
// with any code, yields a Result and a nil error.
type Runner interface {
	Run(ctx context.Context, dir string, args ...string) (Result, error)
}

// ExecRunner runs git via os/exec. Arguments are always passed as a
// discrete vector, never through a shell, so no input string can change
// the command shape.
type ExecRunner struct {
	// Bin is the git executable; looked up on PATH when not absolute.
	// Empty means "git".
	Bin string
	// Timeout caps each invocation when positive. The caller's context
	// deadline still applies if sooner.
	Timeout time.Duration

	logger hclog.Logger
}

// NewExecRunner returns a runner using the default git binary. A nil
// logger is replaced with a no-op logger.
func NewExecRunner(logger hclog.Logger) *ExecRunner {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &ExecRunner{Bin: defaultGitBin, logger: logger}
}

// Run executes git with args in dir. The child process reads from the
// null device and inherits the parent environment.
func (r *ExecRunner) Run(ctx context.Context, dir string, args ...string) (Result, error) {
	if r.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}

	bin := r.Bin
	if bin == "" {
		bin = defaultGitBin
	}

	cmd := exec.CommandContext(ctx, bin, args...)
	cmd.Dir = dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	r.logger.Debug("running git", "dir", dir, "args", args)
	start := time.Now()

	err := cmd.Run()
	if err != nil {
		// A killed process reports "signal: killed"; the context error
		// is the truthful cause when the context is done.
		if ctxErr := ctx.Err(); ctxErr != nil {
			r.logger.Debug("git canceled", "args", args, "error", ctxErr)
			return Result{}, ctxErr
		}

		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			res := Result{
				Stdout:   stdout.String(),
				Stderr:   stderr.String(),
				ExitCode: exitErr.ExitCode(),
			}
			r.logger.Debug("git exited", "code", res.ExitCode, "duration", time.Since(start))
			return res, nil
		}

		r.logger.Debug("git spawn failed", "error", err)
		return Result{}, err
	}

	res := Result{Stdout: stdout.String(), Stderr: stderr.String()}
	r.logger.Debug("git exited", "code", 0, "duration", time.Since(start))
	return res, nil
}

// Available reports whether the configured git binary can be found.
func (r *ExecRunner) Available() bool {
	bin := r.Bin
	if bin == "" {
		bin = defaultGitBin
	}
	_, err := exec.LookPath(bin)
	return err == nil
}
