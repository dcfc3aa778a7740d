package git

import (
	"context"
	"strconv"
	"strings"
)

const opDiff = "diff"

// DiffOptions select what to compare and how to render the body. Source
// and Target are refs; empty means the working tree against the index
// (or HEAD when Staged is set).
type DiffOptions struct {
	Source string
	Target string
	// Paths scopes the diff to a single pathspec. More than one entry is
	// rejected; multi-path filtering is a stated limitation.
	Paths []string
	// Staged compares the index against HEAD.
	Staged bool
	// IncludeUntracked counts untracked files in FilesChanged.
	IncludeUntracked bool
	// Stat renders the body as a per-file change summary.
	Stat bool
	// NameOnly renders the body as changed file names.
	NameOnly bool
	// Unified sets the context line count when non-nil.
	Unified *int
}

// DiffResult carries the rendered diff body plus aggregate counts. The
// counts always come from a numeric stat pass, whatever body rendering
// was requested.
type DiffResult struct {
	Diff         string `json:"diff"`
	FilesChanged int    `json:"files_changed"`
	Insertions   int    `json:"insertions"`
	Deletions    int    `json:"deletions"`
	Binary       bool   `json:"binary"`
}

// buildDiffArgs assembles the argument vector for the body pass, or for
// the numeric stat pass when numstat is set. The stat pass drops the
// rendering flags, which are incompatible with numeric output.
func buildDiffArgs(opts DiffOptions, numstat bool) []string {
	args := []string{"diff"}
	if numstat {
		args = append(args, "--numstat")
	} else {
		switch {
		case opts.Stat:
			args = append(args, "--stat")
		case opts.NameOnly:
			args = append(args, "--name-only")
		}
		if opts.Unified != nil {
			args = append(args, "-U"+strconv.Itoa(*opts.Unified))
		}
	}
	if opts.Staged {
		args = append(args, "--cached")
	}
	if opts.Source != "" {
		args = append(args, opts.Source)
	}
	if opts.Target != "" {
		args = append(args, opts.Target)
	}
	if len(opts.Paths) == 1 {
		args = append(args, "--", opts.Paths[0])
	}
	return args
}

// Diff compares two tree states and returns the rendered body together
// with file/insertion/deletion counts. It always runs a second numeric
// stat pass to populate the counts.
func (s *Service) Diff(ctx context.Context, opts DiffOptions, oc OpContext) (DiffResult, error) {
	if len(opts.Paths) > 1 {
		return DiffResult{}, NewValidationError(opDiff, "at most one path filter is supported")
	}

	dir, err := resolveDir(opDiff, oc)
	if err != nil {
		return DiffResult{}, err
	}

	s.logger.Debug("diff requested", "tenant", oc.tenant(), "dir", dir,
		"source", opts.Source, "target", opts.Target, "staged", opts.Staged)

	body, err := s.run(ctx, opDiff, dir, buildDiffArgs(opts, false)...)
	if err != nil {
		return DiffResult{}, err
	}
	if body.ExitCode != 0 {
		return DiffResult{}, executionError(opDiff, body)
	}

	stat, err := s.run(ctx, opDiff, dir, buildDiffArgs(opts, true)...)
	if err != nil {
		return DiffResult{}, err
	}
	if stat.ExitCode != 0 {
		return DiffResult{}, executionError(opDiff, stat)
	}

	sum := parseNumstat(stat.Stdout)
	out := DiffResult{
		Diff:         body.Stdout,
		FilesChanged: len(sum.Files),
		Insertions:   sum.Additions,
		Deletions:    sum.Deletions,
		Binary:       sum.Binary,
	}

	// Untracked files never show up in a diff against the index, so
	// count them from a working tree listing.
	if opts.IncludeUntracked && !opts.Staged {
		res, err := s.run(ctx, opDiff, dir, "status", "--porcelain")
		if err != nil {
			return DiffResult{}, err
		}
		if res.ExitCode != 0 {
			return DiffResult{}, executionError(opDiff, res)
		}
		out.FilesChanged += len(parsePorcelainStatus(res.Stdout).Untracked)
	}

	return out, nil
}

// diffSummary is the decoded numeric stat output.
type diffSummary struct {
	Files     []string
	Additions int
	Deletions int
	Binary    bool
}

// parseNumstat decodes per-file numeric stat lines of the form
// "added<TAB>deleted<TAB>path". Binary files report "-" in place of the
// counts; they are counted in Files but excluded from the totals.
// Rename arrows collapse to the post-rename path.
func parseNumstat(out string) diffSummary {
	var sum diffSummary
	for _, line := range strings.Split(out, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		parts := strings.SplitN(line, "\t", 3)
		if len(parts) < 3 {
			continue
		}
		added, addedOK := parseChangeCount(parts[0])
		deleted, deletedOK := parseChangeCount(parts[1])
		sum.Files = append(sum.Files, renameTarget(parts[2]))
		if !addedOK || !deletedOK {
			sum.Binary = true
			continue
		}
		sum.Additions += added
		sum.Deletions += deleted
	}
	return sum
}

// renameTarget reduces a rename path to its post-rename form. Git
// writes renames as "old => new", compressing shared segments into
// braces like "internal/{old => new}/x.go".
func renameTarget(path string) string {
	arrow := strings.Index(path, " => ")
	if arrow < 0 {
		return path
	}
	open := strings.Index(path, "{")
	if open < 0 || open > arrow {
		return path[arrow+4:]
	}
	closing := strings.Index(path[arrow:], "}")
	if closing < 0 {
		return path[arrow+4:]
	}
	closing += arrow
	out := path[:open] + path[arrow+4:closing] + path[closing+1:]
	out = strings.ReplaceAll(out, "//", "/")
	return strings.TrimPrefix(out, "/")
}

// parseChangeCount reads one numstat counter. The "-" marker and any
// unparseable token report not-ok, which callers treat as binary.
func parseChangeCount(s string) (int, bool) {
	if s == "-" {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}
