package git

import (
	"context"
	"strings"
)

const opResolve = "resolve"

// ResolveResult is a ref resolved to the full hash it names. Symbolic
// carries the short ref name when git knows one, like "main" for HEAD.
type ResolveResult struct {
	Ref      string `json:"ref"`
	Hash     string `json:"hash"`
	Symbolic string `json:"symbolic,omitempty"`
}

// Resolve maps a ref to a commit hash. A ref that does not exist in the
// repository is a validation failure; the ref came from the caller.
func (s *Service) Resolve(ctx context.Context, ref string, oc OpContext) (ResolveResult, error) {
	if ref == "" {
		return ResolveResult{}, NewValidationError(opResolve, "ref is required")
	}

	dir, err := resolveDir(opResolve, oc)
	if err != nil {
		return ResolveResult{}, err
	}

	s.logger.Debug("resolve requested", "tenant", oc.tenant(), "dir", dir, "ref", ref)

	res, err := s.run(ctx, opResolve, dir, "rev-parse", "--verify", ref)
	if err != nil {
		return ResolveResult{}, err
	}
	if res.ExitCode != 0 {
		stderr := strings.ToLower(res.Stderr)
		if strings.Contains(stderr, "needed a single revision") ||
			strings.Contains(stderr, "unknown revision") {
			return ResolveResult{}, NewValidationError(opResolve, "unknown ref "+ref)
		}
		return ResolveResult{}, executionError(opResolve, res)
	}
	hash := strings.TrimSpace(res.Stdout)

	// Second query for the symbolic short name. A bare hash has none;
	// git prints an empty line for it.
	sym, err := s.run(ctx, opResolve, dir, "rev-parse", "--abbrev-ref", ref)
	if err != nil {
		return ResolveResult{}, err
	}
	symbolic := ""
	if sym.ExitCode == 0 {
		symbolic = strings.TrimSpace(sym.Stdout)
	}
	if symbolic == hash {
		symbolic = ""
	}

	return ResolveResult{Ref: ref, Hash: hash, Symbolic: symbolic}, nil
}
