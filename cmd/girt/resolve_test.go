package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestResolveCommand(t *testing.T) {
	tempDir := initTestRepo(t)
	head := runGitOutput(t, tempDir, "rev-parse", "HEAD")
	branch := runGitOutput(t, tempDir, "rev-parse", "--abbrev-ref", "HEAD")

	runInDir(t, tempDir, func() {
		var buf bytes.Buffer

		cmd := newRootCmd()
		cmd.SetOut(&buf)
		cmd.SetErr(&buf)
		cmd.SetArgs([]string{"resolve", "HEAD", "--json"})

		if err := cmd.Execute(); err != nil {
			t.Fatalf("command failed: %v", err)
		}

		var result map[string]any
		if err := json.Unmarshal(buf.Bytes(), &result); err != nil {
			t.Fatalf("failed to parse JSON output: %v\nOutput: %s", err, buf.String())
		}

		if result["hash"] != head {
			t.Errorf("hash = %v, want %q", result["hash"], head)
		}
		if result["ref"] != "HEAD" {
			t.Errorf("ref = %v, want %q", result["ref"], "HEAD")
		}
		if result["symbolic"] != branch {
			t.Errorf("symbolic = %v, want %q", result["symbolic"], branch)
		}
	})
}

func TestResolveHashHasNoSymbolicName(t *testing.T) {
	tempDir := initTestRepo(t)
	head := runGitOutput(t, tempDir, "rev-parse", "HEAD")

	runInDir(t, tempDir, func() {
		var buf bytes.Buffer

		cmd := newRootCmd()
		cmd.SetOut(&buf)
		cmd.SetErr(&buf)
		cmd.SetArgs([]string{"resolve", head, "--json"})

		if err := cmd.Execute(); err != nil {
			t.Fatalf("command failed: %v", err)
		}

		var result map[string]any
		if err := json.Unmarshal(buf.Bytes(), &result); err != nil {
			t.Fatalf("failed to parse JSON output: %v\nOutput: %s", err, buf.String())
		}

		if result["hash"] != head {
			t.Errorf("hash = %v, want %q", result["hash"], head)
		}
		if _, ok := result["symbolic"]; ok {
			t.Errorf("symbolic = %v, want omitted for a raw hash", result["symbolic"])
		}
	})
}

func TestResolveUnknownRef(t *testing.T) {
	tempDir := initTestRepo(t)

	runInDir(t, tempDir, func() {
		var buf bytes.Buffer

		cmd := newRootCmd()
		cmd.SetOut(&buf)
		cmd.SetErr(&buf)
		cmd.SetArgs([]string{"resolve", "no-such-ref", "--json"})

		err := cmd.Execute()
		if err == nil {
			t.Fatal("expected error for unknown ref")
		}

		var result map[string]any
		if jsonErr := json.Unmarshal(buf.Bytes(), &result); jsonErr != nil {
			t.Fatalf("failed to parse JSON error output: %v\nOutput: %s", jsonErr, buf.String())
		}

		// Unknown refs are the caller's mistake, not git's.
		code, ok := result["code"].(float64)
		if !ok {
			t.Fatalf("missing or invalid 'code' in error output: %v", result)
		}
		if code != 1 {
			t.Errorf("error code = %v, want 1 (user error)", code)
		}
	})
}

func TestResolveHumanOutput(t *testing.T) {
	tempDir := initTestRepo(t)
	head := runGitOutput(t, tempDir, "rev-parse", "HEAD")
	branch := runGitOutput(t, tempDir, "rev-parse", "--abbrev-ref", "HEAD")

	runInDir(t, tempDir, func() {
		var buf bytes.Buffer

		cmd := newRootCmd()
		cmd.SetOut(&buf)
		cmd.SetErr(&buf)
		cmd.SetArgs([]string{"resolve", "HEAD"})

		if err := cmd.Execute(); err != nil {
			t.Fatalf("command failed: %v", err)
		}

		got := buf.String()
		if !strings.Contains(got, head) {
			t.Errorf("human output missing hash %q\nOutput: %s", head, got)
		}
		if !strings.Contains(got, branch) {
			t.Errorf("human output missing symbolic name %q\nOutput: %s", branch, got)
		}
	})
}
