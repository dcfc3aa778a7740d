package git

import (
	"context"
	"strconv"
	"strings"
	"time"
)

const opLog = "log"

// commitSeparator delimits commits in formatted log output.
const commitSeparator = "---COMMIT-BOUNDARY---"

// logFormat lays out one commit per record: hash, short hash, subject,
// body, author name, author email, epoch timestamp.
var logFormat = strings.Join([]string{
	"%H",
	"%h",
	"%s",
	"%b",
	"%an",
	"%ae",
	"%at",
}, fieldSeparator) + commitSeparator

// CommitInfo is one commit from a history query.
type CommitInfo struct {
	Hash        string    `json:"hash"`
	ShortHash   string    `json:"short_hash"`
	Subject     string    `json:"subject"`
	Body        string    `json:"body,omitempty"`
	Author      string    `json:"author"`
	AuthorEmail string    `json:"author_email"`
	Timestamp   time.Time `json:"timestamp"`
}

// LogOptions select the history slice to read.
type LogOptions struct {
	// From is the exclusive lower bound of the range; empty reads the
	// full history behind To.
	From string
	// To is the inclusive upper bound; empty means HEAD.
	To string
	// MaxCount caps the number of commits when positive.
	MaxCount int
}

// LogResult lists commits newest first.
type LogResult struct {
	Commits []CommitInfo `json:"commits"`
	Count   int          `json:"count"`
}

func buildLogArgs(opts LogOptions) []string {
	args := []string{"log", "--pretty=format:" + logFormat}
	if opts.MaxCount > 0 {
		args = append(args, "-n", strconv.Itoa(opts.MaxCount))
	}
	switch {
	case opts.From != "":
		to := opts.To
		if to == "" {
			to = "HEAD"
		}
		args = append(args, opts.From+".."+to)
	case opts.To != "":
		args = append(args, opts.To)
	}
	return args
}

// Log reads commit history. An empty range is a successful empty
// result, not an error.
func (s *Service) Log(ctx context.Context, opts LogOptions, oc OpContext) (LogResult, error) {
	dir, err := resolveDir(opLog, oc)
	if err != nil {
		return LogResult{}, err
	}

	s.logger.Debug("log requested", "tenant", oc.tenant(), "dir", dir,
		"from", opts.From, "to", opts.To, "max", opts.MaxCount)

	res, err := s.run(ctx, opLog, dir, buildLogArgs(opts)...)
	if err != nil {
		return LogResult{}, err
	}
	if res.ExitCode != 0 {
		return LogResult{}, executionError(opLog, res)
	}

	commits := parseCommitLog(res.Stdout)
	return LogResult{Commits: commits, Count: len(commits)}, nil
}

// parseCommitLog decodes sentinel-delimited log output. Records missing
// fields are skipped, never fatal.
func parseCommitLog(out string) []CommitInfo {
	if strings.TrimSpace(out) == "" {
		return nil
	}

	var commits []CommitInfo
	for _, record := range strings.Split(out, commitSeparator) {
		record = strings.TrimSpace(record)
		if record == "" {
			continue
		}
		if info, ok := parseCommitRecord(record); ok {
			commits = append(commits, info)
		}
	}
	return commits
}

func parseCommitRecord(record string) (CommitInfo, bool) {
	fields := strings.Split(record, fieldSeparator)
	if len(fields) < 7 {
		return CommitInfo{}, false
	}

	var ts time.Time
	if epoch, err := strconv.ParseInt(strings.TrimSpace(fields[6]), 10, 64); err == nil && epoch > 0 {
		ts = time.Unix(epoch, 0).UTC()
	}

	return CommitInfo{
		Hash:        strings.TrimSpace(fields[0]),
		ShortHash:   strings.TrimSpace(fields[1]),
		Subject:     strings.TrimSpace(fields[2]),
		Body:        strings.TrimSpace(fields[3]),
		Author:      strings.TrimSpace(fields[4]),
		AuthorEmail: strings.TrimSpace(fields[5]),
		Timestamp:   ts,
	}, true
}
