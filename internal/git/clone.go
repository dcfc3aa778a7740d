package git

import (
	"context"
	"net/url"
	"path/filepath"
	"strconv"
)

const opClone = "clone"

// CloneOptions describe the remote to clone and where to put it.
type CloneOptions struct {
	RemoteURL string
	// LocalPath is the clone destination; it must not exist yet.
	// Relative paths resolve against the operation's working directory.
	LocalPath         string
	Branch            string
	Depth             int
	Bare              bool
	Mirror            bool
	RecurseSubmodules bool
}

// CloneResult reports where the repository landed. LocalPath is always
// the resolved absolute destination.
type CloneResult struct {
	Success   bool   `json:"success"`
	LocalPath string `json:"local_path"`
	RemoteURL string `json:"remote_url"`
	Branch    string `json:"branch,omitempty"`
}

func buildCloneArgs(opts CloneOptions, dest string) []string {
	args := []string{"clone"}
	if opts.Branch != "" {
		args = append(args, "--branch", opts.Branch)
	}
	if opts.Depth > 0 {
		args = append(args, "--depth", strconv.Itoa(opts.Depth))
	}
	if opts.Mirror {
		args = append(args, "--mirror")
	} else if opts.Bare {
		args = append(args, "--bare")
	}
	if opts.RecurseSubmodules {
		args = append(args, "--recurse-submodules")
	}
	return append(args, opts.RemoteURL, dest)
}

// Clone fetches a repository into a new directory. The destination must
// not exist, so the process runs in the destination's parent with the
// final path segment as the destination argument.
func (s *Service) Clone(ctx context.Context, opts CloneOptions, oc OpContext) (CloneResult, error) {
	if opts.RemoteURL == "" {
		return CloneResult{}, NewValidationError(opClone, "remote url is required")
	}
	if opts.LocalPath == "" {
		return CloneResult{}, NewValidationError(opClone, "local path is required")
	}

	path := opts.LocalPath
	if !filepath.IsAbs(path) && oc.Dir != "" {
		path = filepath.Join(oc.Dir, path)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return CloneResult{}, NewEnvironmentError(opClone, "cannot resolve local path "+opts.LocalPath, err)
	}
	parent := filepath.Dir(abs)
	dest := filepath.Base(abs)

	s.logger.Debug("clone requested", "tenant", oc.tenant(),
		"remote", redactRemote(opts.RemoteURL), "dest", abs)

	res, err := s.run(ctx, opClone, parent, buildCloneArgs(opts, dest)...)
	if err != nil {
		return CloneResult{}, err
	}
	if res.ExitCode != 0 {
		return CloneResult{}, executionError(opClone, res)
	}

	return CloneResult{
		Success:   true,
		LocalPath: abs,
		RemoteURL: opts.RemoteURL,
		Branch:    opts.Branch,
	}, nil
}

// redactRemote hides embedded credentials when a remote URL is logged.
func redactRemote(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.User == nil {
		return raw
	}
	return u.Redacted()
}
