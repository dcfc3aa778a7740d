package git

import (
	"context"
	"reflect"
	"testing"
)

func TestBuildMergeBaseArgs(t *testing.T) {
	tests := []struct {
		name string
		refs []string
		mode MergeBaseMode
		want []string
	}{
		{
			name: "default mode adds no flag",
			refs: []string{"main", "feature"},
			mode: MergeBaseDefault,
			want: []string{"merge-base", "main", "feature"},
		},
		{
			name: "all mode",
			refs: []string{"a", "b", "c"},
			mode: MergeBaseAll,
			want: []string{"merge-base", "--all", "a", "b", "c"},
		},
		{
			name: "is-ancestor mode",
			refs: []string{"a", "b"},
			mode: MergeBaseIsAncestor,
			want: []string{"merge-base", "--is-ancestor", "a", "b"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := buildMergeBaseArgs(tt.refs, tt.mode)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("buildMergeBaseArgs() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMergeBaseValidation(t *testing.T) {
	tests := []struct {
		name string
		opts MergeBaseOptions
	}{
		{
			name: "no refs",
			opts: MergeBaseOptions{},
		},
		{
			name: "is-ancestor with one ref",
			opts: MergeBaseOptions{Refs: []string{"a"}, Mode: MergeBaseIsAncestor},
		},
		{
			name: "is-ancestor with three refs",
			opts: MergeBaseOptions{Refs: []string{"a", "b", "c"}, Mode: MergeBaseIsAncestor},
		},
		{
			name: "unknown mode",
			opts: MergeBaseOptions{Refs: []string{"a"}, Mode: "octopus"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, runner := newFakeService()
			_, err := svc.MergeBase(context.Background(), tt.opts, OpContext{Dir: "/tmp"})
			if !IsKind(err, KindValidation) {
				t.Fatalf("MergeBase() error = %v, want validation", err)
			}
			if len(runner.calls) != 0 {
				t.Errorf("got %d runner calls, want none before validation", len(runner.calls))
			}
		})
	}
}

func TestMergeBaseIsAncestorOutcomes(t *testing.T) {
	refs := []string{"a", "b"}

	t.Run("exit 0 means ancestor", func(t *testing.T) {
		svc, _ := newFakeService(Result{})
		res, err := svc.MergeBase(context.Background(),
			MergeBaseOptions{Refs: refs, Mode: MergeBaseIsAncestor}, OpContext{Dir: "/tmp"})
		if err != nil {
			t.Fatalf("MergeBase() error = %v", err)
		}
		if !res.Success || res.IsAncestor == nil || !*res.IsAncestor {
			t.Errorf("result = %+v, want successful positive ancestry", res)
		}
	})

	t.Run("exit 1 is a successful negative, not an error", func(t *testing.T) {
		svc, _ := newFakeService(Result{ExitCode: 1})
		res, err := svc.MergeBase(context.Background(),
			MergeBaseOptions{Refs: refs, Mode: MergeBaseIsAncestor}, OpContext{Dir: "/tmp"})
		if err != nil {
			t.Fatalf("MergeBase() error = %v, want nil", err)
		}
		if !res.Success {
			t.Error("Success = false, want true")
		}
		if res.IsAncestor == nil || *res.IsAncestor {
			t.Errorf("IsAncestor = %v, want false", res.IsAncestor)
		}
		if res.MergeBase != "" {
			t.Errorf("MergeBase = %q, want empty", res.MergeBase)
		}
	})

	t.Run("other exits are execution failures", func(t *testing.T) {
		svc, _ := newFakeService(Result{ExitCode: 128, Stderr: "fatal: not a valid object name\n"})
		_, err := svc.MergeBase(context.Background(),
			MergeBaseOptions{Refs: refs, Mode: MergeBaseIsAncestor}, OpContext{Dir: "/tmp"})
		if !IsKind(err, KindExecution) {
			t.Fatalf("MergeBase() error = %v, want execution failure", err)
		}
	})
}

func TestMergeBaseDefaultMode(t *testing.T) {
	refs := []string{"main", "feature"}

	t.Run("first hash wins", func(t *testing.T) {
		svc, _ := newFakeService(Result{Stdout: "abc123\ndef456\n"})
		res, err := svc.MergeBase(context.Background(),
			MergeBaseOptions{Refs: refs}, OpContext{Dir: "/tmp"})
		if err != nil {
			t.Fatalf("MergeBase() error = %v", err)
		}
		if res.MergeBase != "abc123" {
			t.Errorf("MergeBase = %q, want abc123", res.MergeBase)
		}
		if res.Mode != MergeBaseDefault {
			t.Errorf("Mode = %q, want default filled in", res.Mode)
		}
		if !reflect.DeepEqual(res.Refs, refs) {
			t.Errorf("Refs = %v, want echo of input", res.Refs)
		}
	})

	t.Run("unrelated histories yield an empty success", func(t *testing.T) {
		svc, _ := newFakeService(Result{ExitCode: 1})
		res, err := svc.MergeBase(context.Background(),
			MergeBaseOptions{Refs: refs}, OpContext{Dir: "/tmp"})
		if err != nil {
			t.Fatalf("MergeBase() error = %v, want nil for unrelated histories", err)
		}
		if !res.Success || res.MergeBase != "" {
			t.Errorf("result = %+v, want empty success", res)
		}
	})

	t.Run("exit 1 with diagnostics is still a failure", func(t *testing.T) {
		svc, _ := newFakeService(Result{ExitCode: 1, Stderr: "fatal: something broke\n"})
		_, err := svc.MergeBase(context.Background(),
			MergeBaseOptions{Refs: refs}, OpContext{Dir: "/tmp"})
		if !IsKind(err, KindExecution) {
			t.Fatalf("MergeBase() error = %v, want execution failure", err)
		}
	})
}

func TestMergeBaseAllMode(t *testing.T) {
	svc, _ := newFakeService(Result{Stdout: "abc123\ndef456\n"})
	res, err := svc.MergeBase(context.Background(),
		MergeBaseOptions{Refs: []string{"a", "b", "c"}, Mode: MergeBaseAll}, OpContext{Dir: "/tmp"})
	if err != nil {
		t.Fatalf("MergeBase() error = %v", err)
	}
	if !reflect.DeepEqual(res.MergeBases, []string{"abc123", "def456"}) {
		t.Errorf("MergeBases = %v, want both hashes in order", res.MergeBases)
	}
	if res.MergeBase != "" {
		t.Errorf("MergeBase = %q, want empty in all mode", res.MergeBase)
	}
}

func TestParseHashLines(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{name: "empty", input: ""},
		{name: "blank lines dropped", input: "\n\nabc\n\ndef\n", want: []string{"abc", "def"}},
		{name: "single hash", input: "abc123\n", want: []string{"abc123"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := parseHashLines(tt.input); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("parseHashLines() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMergeBaseRealRepo(t *testing.T) {
	svc := newTestService(t)

	setupBranches := func(t *testing.T) (dir, base, mainTip, featureTip string) {
		t.Helper()
		dir = initGitRepo(t)
		base = commitFile(t, dir, "a.txt", "one\n", "base")
		mustGit(t, dir, "checkout", "-q", "-b", "feature")
		featureTip = commitFile(t, dir, "b.txt", "two\n", "feature work")
		mustGit(t, dir, "checkout", "-q", "-")
		mainTip = commitFile(t, dir, "c.txt", "three\n", "main work")
		return dir, base, mainTip, featureTip
	}

	t.Run("default mode finds the fork point", func(t *testing.T) {
		dir, base, _, _ := setupBranches(t)

		res, err := svc.MergeBase(context.Background(),
			MergeBaseOptions{Refs: []string{"HEAD", "feature"}}, OpContext{Dir: dir})
		if err != nil {
			t.Fatalf("MergeBase() error = %v", err)
		}
		if res.MergeBase != base {
			t.Errorf("MergeBase = %q, want fork point %q", res.MergeBase, base)
		}
	})

	t.Run("ancestry both ways", func(t *testing.T) {
		dir, base, _, featureTip := setupBranches(t)

		res, err := svc.MergeBase(context.Background(), MergeBaseOptions{
			Refs: []string{base, "HEAD"},
			Mode: MergeBaseIsAncestor,
		}, OpContext{Dir: dir})
		if err != nil {
			t.Fatalf("MergeBase() error = %v", err)
		}
		if res.IsAncestor == nil || !*res.IsAncestor {
			t.Error("base commit should be an ancestor of HEAD")
		}

		res, err = svc.MergeBase(context.Background(), MergeBaseOptions{
			Refs: []string{featureTip, "HEAD"},
			Mode: MergeBaseIsAncestor,
		}, OpContext{Dir: dir})
		if err != nil {
			t.Fatalf("MergeBase() error = %v", err)
		}
		if res.IsAncestor == nil || *res.IsAncestor {
			t.Error("feature tip should not be an ancestor of main")
		}
	})

	t.Run("unrelated histories", func(t *testing.T) {
		dir, _, _, _ := setupBranches(t)
		mustGit(t, dir, "checkout", "-q", "--orphan", "island")
		mustGit(t, dir, "commit", "-q", "--no-gpg-sign", "-m", "isolated")

		res, err := svc.MergeBase(context.Background(),
			MergeBaseOptions{Refs: []string{"island", "feature"}}, OpContext{Dir: dir})
		if err != nil {
			t.Fatalf("MergeBase() error = %v, want empty success", err)
		}
		if !res.Success || res.MergeBase != "" {
			t.Errorf("result = %+v, want no common ancestor", res)
		}
	})

	t.Run("bad ref is an execution failure", func(t *testing.T) {
		dir, _, _, _ := setupBranches(t)

		_, err := svc.MergeBase(context.Background(),
			MergeBaseOptions{Refs: []string{"HEAD", "no-such-branch"}}, OpContext{Dir: dir})
		if !IsKind(err, KindExecution) {
			t.Fatalf("MergeBase() error = %v, want execution failure", err)
		}
	})
}
