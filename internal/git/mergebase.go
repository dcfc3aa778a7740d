package git

import (
	"context"
	"strings"
)

const opMergeBase = "merge-base"

// MergeBaseMode selects how refs are compared.
type MergeBaseMode string

const (
	// MergeBaseDefault finds the best common ancestor of the refs.
	MergeBaseDefault MergeBaseMode = "default"
	// MergeBaseAll lists every common ancestor.
	MergeBaseAll MergeBaseMode = "all"
	// MergeBaseIsAncestor tests whether the first ref is an ancestor of
	// the second.
	MergeBaseIsAncestor MergeBaseMode = "is-ancestor"
)

// MergeBaseOptions name the refs to compare and the comparison mode.
type MergeBaseOptions struct {
	Refs []string
	// Mode defaults to MergeBaseDefault when empty.
	Mode MergeBaseMode
}

// MergeBaseResult reports common ancestry. MergeBase is set in default
// mode when an ancestor exists; MergeBases in all mode; IsAncestor only
// in is-ancestor mode. An absent MergeBase with Success true means the
// histories share no common ancestor.
type MergeBaseResult struct {
	Success    bool          `json:"success"`
	MergeBase  string        `json:"merge_base,omitempty"`
	MergeBases []string      `json:"merge_bases,omitempty"`
	IsAncestor *bool         `json:"is_ancestor,omitempty"`
	Refs       []string      `json:"refs"`
	Mode       MergeBaseMode `json:"mode"`
}

func buildMergeBaseArgs(refs []string, mode MergeBaseMode) []string {
	args := []string{"merge-base"}
	switch mode {
	case MergeBaseAll:
		args = append(args, "--all")
	case MergeBaseIsAncestor:
		args = append(args, "--is-ancestor")
	}
	return append(args, refs...)
}

// MergeBase finds common ancestors or tests ancestry between refs.
// Negative outcomes that git signals through exit code 1 without
// diagnostics, a failed ancestry test or unrelated histories, are
// successful results, not errors.
func (s *Service) MergeBase(ctx context.Context, opts MergeBaseOptions, oc OpContext) (MergeBaseResult, error) {
	mode := opts.Mode
	if mode == "" {
		mode = MergeBaseDefault
	}

	if len(opts.Refs) == 0 {
		return MergeBaseResult{}, NewValidationError(opMergeBase, "at least one ref is required")
	}
	switch mode {
	case MergeBaseDefault, MergeBaseAll:
	case MergeBaseIsAncestor:
		if len(opts.Refs) != 2 {
			return MergeBaseResult{}, NewValidationError(opMergeBase, "is-ancestor requires exactly two refs")
		}
	default:
		return MergeBaseResult{}, NewValidationError(opMergeBase, "unknown mode "+string(mode))
	}

	dir, err := resolveDir(opMergeBase, oc)
	if err != nil {
		return MergeBaseResult{}, err
	}

	s.logger.Debug("merge-base requested", "tenant", oc.tenant(), "dir", dir,
		"mode", mode, "refs", opts.Refs)

	res, err := s.run(ctx, opMergeBase, dir, buildMergeBaseArgs(opts.Refs, mode)...)
	if err != nil {
		return MergeBaseResult{}, err
	}

	out := MergeBaseResult{Refs: opts.Refs, Mode: mode}

	if mode == MergeBaseIsAncestor {
		switch res.ExitCode {
		case 0:
			out.Success = true
			out.IsAncestor = boolPtr(true)
		case 1:
			out.Success = true
			out.IsAncestor = boolPtr(false)
		default:
			return MergeBaseResult{}, executionError(opMergeBase, res)
		}
		return out, nil
	}

	// git exits 1 with silent stderr when the histories are unrelated;
	// that is a valid "no common ancestor" outcome.
	noAncestor := res.ExitCode == 1 && strings.TrimSpace(res.Stderr) == ""
	if res.ExitCode != 0 && !noAncestor {
		return MergeBaseResult{}, executionError(opMergeBase, res)
	}

	out.Success = true
	hashes := parseHashLines(res.Stdout)
	if mode == MergeBaseAll {
		out.MergeBases = hashes
	} else if len(hashes) > 0 {
		out.MergeBase = hashes[0]
	}
	return out, nil
}

// parseHashLines splits output into trimmed non-empty lines, preserving
// order.
func parseHashLines(out string) []string {
	var hashes []string
	for _, line := range strings.Split(out, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			hashes = append(hashes, line)
		}
	}
	return hashes
}

func boolPtr(b bool) *bool { return &b }
