// Package main provides the entry point for the girt CLI.
package main

import (
	"context"

	"github.com/girtline/girt/internal/git"
)

// runEnvironmentChecks verifies the git installation itself. Both checks
// share one version query; a missing binary fails both.
func runEnvironmentChecks(ctx context.Context, eng *engine) []checkResult {
	ver, err := eng.svc.GitVersion(ctx)

	checks := make([]checkResult, 0, 2)
	checks = append(checks, checkGitBinary(eng.cfg.GitBin, ver, err))
	checks = append(checks, checkGitVersion(ver, err))
	return checks
}

// checkGitBinary reports whether the configured git executable runs.
func checkGitBinary(bin string, ver git.Version, err error) checkResult {
	if err != nil {
		hint := "Install git and ensure it is in PATH"
		if bin != "" {
			hint = "Check the git_bin setting in config.yaml"
		}
		return checkResult{
			Name:    "Git Binary",
			Status:  checkFail,
			Message: err.Error(),
			Hint:    hint,
		}
	}
	return checkResult{
		Name:    "Git Binary",
		Status:  checkPass,
		Message: ver.Raw,
	}
}

// checkGitVersion enforces the minimum supported git version.
func checkGitVersion(ver git.Version, err error) checkResult {
	if err != nil {
		return checkResult{
			Name:    "Git Version",
			Status:  checkFail,
			Message: "could not determine git version",
		}
	}
	if !ver.AtLeast(2, 5) {
		return checkResult{
			Name:    "Git Version",
			Status:  checkFail,
			Message: ver.String() + " is older than the required 2.5",
			Hint:    "Upgrade git to 2.5 or newer",
		}
	}
	return checkResult{
		Name:    "Git Version",
		Status:  checkPass,
		Message: ver.String() + " meets the 2.5 minimum",
	}
}

// runRepositoryChecks verifies the working directory and signing setup.
func runRepositoryChecks(ctx context.Context, eng *engine) []checkResult {
	checks := make([]checkResult, 0, 2)
	checks = append(checks, checkRepository(ctx, eng))
	checks = append(checks, checkSigningKey(ctx, eng))
	return checks
}

// checkRepository reports whether the working directory is inside a
// repository.
func checkRepository(ctx context.Context, eng *engine) checkResult {
	_, err := eng.svc.Status(ctx, eng.oc)
	if err == nil {
		return checkResult{
			Name:    "Repository",
			Status:  checkPass,
			Message: "working directory is a git repository",
		}
	}
	if git.IsKind(err, git.KindExecution) {
		return checkResult{
			Name:    "Repository",
			Status:  checkFail,
			Message: "working directory is not a git repository",
			Hint:    "Run girt from inside a repository or pass --repo",
		}
	}
	return checkResult{
		Name:    "Repository",
		Status:  checkWarn,
		Message: "could not check: " + err.Error(),
	}
}

// checkSigningKey verifies a signing key is configured when commits are
// signed by default.
func checkSigningKey(ctx context.Context, eng *engine) checkResult {
	if !eng.cfg.SignCommits {
		return checkResult{
			Name:    "Signing Key",
			Status:  checkPass,
			Message: "commit signing is off",
		}
	}

	key, err := eng.svc.ConfigValue(ctx, "user.signingkey", eng.oc)
	if err != nil {
		return checkResult{
			Name:    "Signing Key",
			Status:  checkWarn,
			Message: "could not check: " + err.Error(),
		}
	}
	if key == "" {
		return checkResult{
			Name:    "Signing Key",
			Status:  checkFail,
			Message: "sign_commits is on but user.signingkey is not set",
			Hint:    "Run 'git config user.signingkey <KEYID>' or turn sign_commits off",
		}
	}
	return checkResult{
		Name:    "Signing Key",
		Status:  checkPass,
		Message: "signing key configured (" + key + ")",
	}
}
