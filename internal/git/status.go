package git

import (
	"context"
	"strconv"
	"strings"
)

const opStatus = "status"

// StatusResult summarizes the working tree from a porcelain listing. A
// path can appear in both Staged and Unstaged when it has changes in
// the index and further edits on disk.
type StatusResult struct {
	Branch    string   `json:"branch,omitempty"`
	Staged    []string `json:"staged,omitempty"`
	Unstaged  []string `json:"unstaged,omitempty"`
	Untracked []string `json:"untracked,omitempty"`
	Clean     bool     `json:"clean"`
}

// Status reports the working tree state of the repository.
func (s *Service) Status(ctx context.Context, oc OpContext) (StatusResult, error) {
	dir, err := resolveDir(opStatus, oc)
	if err != nil {
		return StatusResult{}, err
	}

	s.logger.Debug("status requested", "tenant", oc.tenant(), "dir", dir)

	res, err := s.run(ctx, opStatus, dir, "status", "--porcelain", "--branch")
	if err != nil {
		return StatusResult{}, err
	}
	if res.ExitCode != 0 {
		return StatusResult{}, executionError(opStatus, res)
	}
	return parsePorcelainStatus(res.Stdout), nil
}

// parsePorcelainStatus decodes machine-readable status lines: a branch
// header, then one XY-prefixed line per path. Unrecognized lines are
// skipped rather than failing the parse.
func parsePorcelainStatus(out string) StatusResult {
	var st StatusResult
	for _, line := range strings.Split(out, "\n") {
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "## ") {
			st.Branch = parseBranchHeader(line[3:])
			continue
		}
		if len(line) < 4 {
			continue
		}
		index, worktree := line[0], line[1]
		path := cleanStatusPath(line[3:])
		switch {
		case index == '?' && worktree == '?':
			st.Untracked = append(st.Untracked, path)
		case index == '!':
			// ignored entries only appear with --ignored
		default:
			if index != ' ' {
				st.Staged = append(st.Staged, path)
			}
			if worktree != ' ' {
				st.Unstaged = append(st.Unstaged, path)
			}
		}
	}
	st.Clean = len(st.Staged) == 0 && len(st.Unstaged) == 0 && len(st.Untracked) == 0
	return st
}

// parseBranchHeader extracts the local branch name from the porcelain
// branch header, which may carry upstream and ahead/behind decoration.
func parseBranchHeader(s string) string {
	if rest, ok := strings.CutPrefix(s, "No commits yet on "); ok {
		return rest
	}
	branch, _, _ := strings.Cut(s, "...")
	if idx := strings.Index(branch, " ["); idx >= 0 {
		branch = branch[:idx]
	}
	return strings.TrimSpace(branch)
}

// cleanStatusPath unwraps rename arrows and quoted paths so callers
// always see the current on-disk path.
func cleanStatusPath(p string) string {
	if idx := strings.Index(p, " -> "); idx >= 0 {
		p = p[idx+4:]
	}
	if len(p) >= 2 && strings.HasPrefix(p, `"`) && strings.HasSuffix(p, `"`) {
		if unquoted, err := strconv.Unquote(p); err == nil {
			p = unquoted
		}
	}
	return p
}
