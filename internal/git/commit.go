package git

import (
	"context"
	"strconv"
	"strings"
	"time"
)

// fieldSeparator delimits fields within one record of formatted git
// output. Chosen to never occur in ordinary commit metadata.
const fieldSeparator = "---FIELD---"

// recordSeparator delimits the metadata header from the trailing file
// list in commit read-back output.
const recordSeparator = "---RECORD---"

// commitMetaFormat is the pretty format of the commit read-back query:
// author name and epoch timestamp, field-delimited, closed by the
// record separator. The file list follows as plain lines.
const commitMetaFormat = "%an" + fieldSeparator + "%at" + recordSeparator

const opCommit = "commit"

// CommitOptions control a single commit attempt. Message is required
// unless Amend is set.
type CommitOptions struct {
	Message    string
	Amend      bool
	AllowEmpty bool
	NoVerify   bool
	// Author overrides the commit author, in "Name <email>" form.
	Author string
	// Sign overrides the configured signing policy when non-nil.
	Sign *bool
	// ForceUnsignedOnFailure retries exactly once without signing when
	// the signed attempt fails.
	ForceUnsignedOnFailure bool
}

// CommitResult reports a completed commit. Hash, Author, Timestamp and
// FilesChanged come from a read-back of HEAD after the write; they stay
// zero-valued if the read-back cannot complete.
type CommitResult struct {
	Success      bool      `json:"success"`
	Hash         string    `json:"hash"`
	Message      string    `json:"message"`
	Author       string    `json:"author,omitempty"`
	Timestamp    time.Time `json:"timestamp"`
	FilesChanged []string  `json:"files_changed,omitempty"`
	Signed       bool      `json:"signed"`
}

// buildCommitArgs assembles the commit argument vector. Signing is
// always explicit in the vector so repository configuration cannot
// override the decided policy.
func buildCommitArgs(opts CommitOptions, signed bool) []string {
	args := []string{"commit"}
	if signed {
		args = append(args, "-S")
	} else {
		args = append(args, "--no-gpg-sign")
	}
	if opts.Amend {
		args = append(args, "--amend")
		if opts.Message == "" {
			args = append(args, "--no-edit")
		}
	}
	if opts.AllowEmpty {
		args = append(args, "--allow-empty")
	}
	if opts.NoVerify {
		args = append(args, "--no-verify")
	}
	if opts.Author != "" {
		args = append(args, "--author="+opts.Author)
	}
	if opts.Message != "" {
		args = append(args, "-m", opts.Message)
	}
	return args
}

// Commit records staged changes as a new commit, retrying once without
// signing when the signed attempt fails and the options allow it. After
// the write succeeds, the new HEAD is read back to fill the result.
func (s *Service) Commit(ctx context.Context, opts CommitOptions, oc OpContext) (CommitResult, error) {
	if opts.Message == "" && !opts.Amend {
		return CommitResult{}, NewValidationError(opCommit, "commit message is required")
	}

	dir, err := resolveDir(opCommit, oc)
	if err != nil {
		return CommitResult{}, err
	}

	signed := s.signByDefault
	if opts.Sign != nil {
		signed = *opts.Sign
	}

	s.logger.Debug("commit requested", "tenant", oc.tenant(), "dir", dir,
		"amend", opts.Amend, "signed", signed)

	res, err := s.run(ctx, opCommit, dir, buildCommitArgs(opts, signed)...)
	if err != nil {
		return CommitResult{}, err
	}
	if res.ExitCode != 0 && signed && opts.ForceUnsignedOnFailure {
		s.logger.Warn("signed commit failed, retrying unsigned",
			"tenant", oc.tenant(), "stderr", strings.TrimSpace(res.Stderr))
		signed = false
		res, err = s.run(ctx, opCommit, dir, buildCommitArgs(opts, false)...)
		if err != nil {
			return CommitResult{}, err
		}
	}
	if res.ExitCode != 0 {
		return CommitResult{}, executionError(opCommit, res)
	}

	out := CommitResult{Success: true, Message: opts.Message, Signed: signed}
	s.readBackHead(ctx, dir, &out)
	return out, nil
}

// readBackHead fills hash, author, timestamp and changed files from the
// current HEAD. The commit already exists at this point, so failures
// here degrade the result instead of failing the call.
func (s *Service) readBackHead(ctx context.Context, dir string, out *CommitResult) {
	res, err := s.run(ctx, opCommit, dir, "rev-parse", "HEAD")
	if err != nil || res.ExitCode != 0 {
		s.logger.Warn("commit read-back failed", "dir", dir, "stderr", strings.TrimSpace(res.Stderr))
		return
	}
	out.Hash = strings.TrimSpace(res.Stdout)

	res, err = s.run(ctx, opCommit, dir, "show", "--name-only", "--format="+commitMetaFormat, "HEAD")
	if err != nil || res.ExitCode != 0 {
		s.logger.Warn("commit metadata query failed", "dir", dir, "stderr", strings.TrimSpace(res.Stderr))
		return
	}
	meta := parseCommitMeta(res.Stdout)
	out.Author = meta.Author
	out.Timestamp = meta.Timestamp
	out.FilesChanged = meta.Files
}

// commitMeta is the decoded form of the read-back payload.
type commitMeta struct {
	Author    string
	Timestamp time.Time
	Files     []string
}

// parseCommitMeta decodes the two-segment read-back payload: a
// field-delimited author/timestamp header closed by the record
// separator, then a newline-separated file list. Missing segments or
// fields degrade to zero values, never an error.
func parseCommitMeta(out string) commitMeta {
	var meta commitMeta

	header := out
	if idx := strings.Index(out, recordSeparator); idx >= 0 {
		header = out[:idx]
		for _, line := range strings.Split(out[idx+len(recordSeparator):], "\n") {
			if line = strings.TrimSpace(line); line != "" {
				meta.Files = append(meta.Files, line)
			}
		}
	}

	fields := strings.Split(header, fieldSeparator)
	if len(fields) > 0 {
		meta.Author = strings.TrimSpace(fields[0])
	}
	if len(fields) > 1 {
		if epoch, err := strconv.ParseInt(strings.TrimSpace(fields[1]), 10, 64); err == nil && epoch > 0 {
			meta.Timestamp = time.Unix(epoch, 0).UTC()
		}
	}
	return meta
}
