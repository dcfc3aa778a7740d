package git

import (
	"context"
	"path/filepath"
	"time"

	"github.com/hashicorp/go-hclog"
)

// DefaultTenant is recorded on operations whose caller did not name a
// tenant.
const DefaultTenant = "default-tenant"

// OpContext carries per-call settings that are not operation options:
// where to run and on whose behalf.
type OpContext struct {
	// Dir is the working directory for the operation. Relative paths are
	// resolved against the process working directory; empty means the
	// process working directory itself.
	Dir string
	// Tenant identifies the caller in log records. Empty defaults to
	// DefaultTenant.
	Tenant string
}

func (oc OpContext) tenant() string {
	if oc.Tenant == "" {
		return DefaultTenant
	}
	return oc.Tenant
}

// Config holds process-wide engine settings.
type Config struct {
	// Bin overrides the git executable. Empty means "git" on PATH.
	Bin string
	// SignCommits makes commits GPG-signed unless a call overrides it.
	SignCommits bool
	// Timeout caps each git invocation when positive.
	Timeout time.Duration
	// Logger receives debug and warn records. Nil disables logging.
	Logger hclog.Logger
}

// Provider is the per-operation contract consumed by the CLI commands
// and the MCP tool layer. Service is the canonical implementation; tests
// substitute scripted fakes.
type Provider interface {
	Commit(ctx context.Context, opts CommitOptions, oc OpContext) (CommitResult, error)
	Diff(ctx context.Context, opts DiffOptions, oc OpContext) (DiffResult, error)
	MergeBase(ctx context.Context, opts MergeBaseOptions, oc OpContext) (MergeBaseResult, error)
	Clone(ctx context.Context, opts CloneOptions, oc OpContext) (CloneResult, error)
	Status(ctx context.Context, oc OpContext) (StatusResult, error)
	Log(ctx context.Context, opts LogOptions, oc OpContext) (LogResult, error)
	Resolve(ctx context.Context, ref string, oc OpContext) (ResolveResult, error)
}

// Service implements Provider by running the git CLI.
type Service struct {
	runner        Runner
	signByDefault bool
	logger        hclog.Logger
}

var _ Provider = (*Service)(nil)

// NewService builds a Service backed by an ExecRunner.
func NewService(cfg Config) *Service {
	logger := cfg.Logger
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	runner := NewExecRunner(logger)
	if cfg.Bin != "" {
		runner.Bin = cfg.Bin
	}
	runner.Timeout = cfg.Timeout
	return &Service{runner: runner, signByDefault: cfg.SignCommits, logger: logger}
}

// NewServiceWithRunner builds a Service on a caller-supplied Runner.
func NewServiceWithRunner(cfg Config, runner Runner) *Service {
	logger := cfg.Logger
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Service{runner: runner, signByDefault: cfg.SignCommits, logger: logger}
}

// resolveDir normalizes the operation working directory to an absolute
// path before any command is built.
func resolveDir(op string, oc OpContext) (string, error) {
	dir := oc.Dir
	if dir == "" {
		dir = "."
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", NewEnvironmentError(op, "cannot resolve working directory "+dir, err)
	}
	return abs, nil
}

// run invokes the runner and classifies raw runner errors. Non-zero
// exits are not errors here; they come back in the Result.
func (s *Service) run(ctx context.Context, op, dir string, args ...string) (Result, error) {
	res, err := s.runner.Run(ctx, dir, args...)
	if err != nil {
		return Result{}, mapRunError(op, err)
	}
	return res, nil
}
