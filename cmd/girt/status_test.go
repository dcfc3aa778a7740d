package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

func TestStatusCommand(t *testing.T) {
	tempDir := initTestRepo(t)

	// One modification per working tree bucket
	writeTestFile(t, tempDir, "a.txt", "changed\n")              // tracked, unstaged
	writeTestFile(t, tempDir, "b.txt", "staged content\n")       // staged
	runGit(t, tempDir, "add", "b.txt")
	writeTestFile(t, tempDir, "c.txt", "untracked content\n")    // untracked

	branch := runGitOutput(t, tempDir, "rev-parse", "--abbrev-ref", "HEAD")

	runInDir(t, tempDir, func() {
		var buf bytes.Buffer

		cmd := newRootCmd()
		cmd.SetOut(&buf)
		cmd.SetErr(&buf)
		cmd.SetArgs([]string{"status", "--json"})

		if err := cmd.Execute(); err != nil {
			t.Fatalf("command failed: %v", err)
		}

		var result map[string]any
		if err := json.Unmarshal(buf.Bytes(), &result); err != nil {
			t.Fatalf("failed to parse JSON output: %v\nOutput: %s", err, buf.String())
		}

		if result["branch"] != branch {
			t.Errorf("branch = %v, want %q", result["branch"], branch)
		}
		if result["clean"] != false {
			t.Errorf("clean = %v, want false", result["clean"])
		}
		assertPathIn(t, result, "staged", "b.txt")
		assertPathIn(t, result, "unstaged", "a.txt")
		assertPathIn(t, result, "untracked", "c.txt")
	})
}

func TestStatusCleanRepo(t *testing.T) {
	tempDir := initTestRepo(t)

	runInDir(t, tempDir, func() {
		var buf bytes.Buffer

		cmd := newRootCmd()
		cmd.SetOut(&buf)
		cmd.SetErr(&buf)
		cmd.SetArgs([]string{"status", "--json"})

		if err := cmd.Execute(); err != nil {
			t.Fatalf("command failed: %v", err)
		}

		var result map[string]any
		if err := json.Unmarshal(buf.Bytes(), &result); err != nil {
			t.Fatalf("failed to parse JSON output: %v\nOutput: %s", err, buf.String())
		}

		if result["clean"] != true {
			t.Errorf("clean = %v, want true", result["clean"])
		}
	})
}

func TestStatusNotARepo(t *testing.T) {
	requireGit(t)
	isolateEnv(t)
	tempDir := t.TempDir()

	runInDir(t, tempDir, func() {
		var buf bytes.Buffer

		cmd := newRootCmd()
		cmd.SetOut(&buf)
		cmd.SetErr(&buf)
		cmd.SetArgs([]string{"status", "--json"})

		err := cmd.Execute()
		if err == nil {
			t.Fatal("expected error for non-repo directory")
		}

		// Verify JSON error output
		var result map[string]any
		if jsonErr := json.Unmarshal(buf.Bytes(), &result); jsonErr != nil {
			t.Fatalf("failed to parse JSON error output: %v\nOutput: %s", jsonErr, buf.String())
		}

		// Check error code is 2 (system error)
		code, ok := result["code"].(float64)
		if !ok {
			t.Fatalf("missing or invalid 'code' in error output: %v", result)
		}
		if code != 2 {
			t.Errorf("error code = %v, want 2 (system error)", code)
		}
	})
}

func TestStatusHumanOutput(t *testing.T) {
	tempDir := initTestRepo(t)
	writeTestFile(t, tempDir, "new.txt", "untracked\n")

	runInDir(t, tempDir, func() {
		var buf bytes.Buffer

		cmd := newRootCmd()
		cmd.SetOut(&buf)
		cmd.SetErr(&buf)
		cmd.SetArgs([]string{"status"}) // No --json flag = human output

		if err := cmd.Execute(); err != nil {
			t.Fatalf("command failed: %v", err)
		}

		out := buf.String()

		checks := []string{
			"Working Tree",
			"Clean",
			"Untracked",
			"new.txt",
		}

		for _, check := range checks {
			if !strings.Contains(out, check) {
				t.Errorf("human output missing %q\nOutput: %s", check, out)
			}
		}
	})
}

// assertPathIn checks that a JSON string array field contains a path.
func assertPathIn(t *testing.T, result map[string]any, field, path string) {
	t.Helper()
	raw, ok := result[field].([]any)
	if !ok {
		t.Errorf("field %q missing or not an array: %v", field, result[field])
		return
	}
	for _, item := range raw {
		if item == path {
			return
		}
	}
	t.Errorf("field %q = %v, want it to contain %q", field, raw, path)
}

// requireGit skips the test when no git binary is installed.
func requireGit(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}
}

// isolateEnv points girt at an empty config home so host configuration
// cannot leak into command tests.
func isolateEnv(t *testing.T) {
	t.Helper()
	t.Setenv("GIRT_CONFIG_HOME", t.TempDir())
	for _, key := range []string{"GIRT_GIT_BIN", "GIRT_SIGN_COMMITS", "GIRT_FORCE_UNSIGNED", "GIRT_TENANT", "GIRT_TIMEOUT"} {
		t.Setenv(key, "")
	}
}

// initTestRepo creates a repository with one commit and an isolated
// girt environment, returning its path.
func initTestRepo(t *testing.T) string {
	t.Helper()
	requireGit(t)
	isolateEnv(t)

	tempDir := t.TempDir()
	runGit(t, tempDir, "init")
	runGit(t, tempDir, "config", "user.email", "test@test.com")
	runGit(t, tempDir, "config", "user.name", "Test User")
	runGit(t, tempDir, "config", "commit.gpgsign", "false")

	writeTestFile(t, tempDir, "a.txt", "test content\n")
	runGit(t, tempDir, "add", "a.txt")
	runGit(t, tempDir, "commit", "-m", "Initial commit")

	return tempDir
}

// writeTestFile writes a file inside the test repository.
func writeTestFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0600); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
}

// runInDir changes to the given directory, runs testFunc, then restores the original directory.
func runInDir(t *testing.T, dir string, testFunc func()) {
	t.Helper()
	oldDir, err := os.Getwd()
	if err != nil {
		t.Fatalf("failed to get working dir: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("failed to chdir to %s: %v", dir, err)
	}
	defer func() {
		if err := os.Chdir(oldDir); err != nil {
			t.Errorf("failed to restore dir: %v", err)
		}
	}()
	testFunc()
}

// runGit runs a git command in the given directory.
func runGit(t *testing.T, dir string, args ...string) {
	t.Helper()
	ctx := context.Background()
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("git %v failed: %v\nOutput: %s", args, err, out)
	}
}

// runGitOutput runs a git command and returns trimmed stdout.
func runGitOutput(t *testing.T, dir string, args ...string) string {
	t.Helper()
	ctx := context.Background()
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir
	out, err := cmd.Output()
	if err != nil {
		t.Fatalf("git %v failed: %v", args, err)
	}
	return strings.TrimSpace(string(out))
}
