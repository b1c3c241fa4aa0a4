package main

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"zedtex/zedtex/pkg/cli"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// committedFile creates a repository holding name with committed content,
// then overwrites the working copy with working.
func committedFile(t *testing.T, name, committed, working string) string {
	t.Helper()
	dir := t.TempDir()
	repo, err := gogit.PlainInit(dir, false)
	if err != nil {
		t.Fatalf("failed to init repo: %v", err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(committed), 0o644); err != nil {
		t.Fatal(err)
	}
	wt, err := repo.Worktree()
	if err != nil {
		t.Fatal(err)
	}
	if _, err := wt.Add(name); err != nil {
		t.Fatal(err)
	}
	_, err = wt.Commit("add "+name, &gogit.CommitOptions{
		Author: &object.Signature{Name: "Test User", Email: "test@example.com", When: time.Now()},
	})
	if err != nil {
		t.Fatalf("failed to commit: %v", err)
	}
	if err := os.WriteFile(path, []byte(working), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestCompile_Rev(t *testing.T) {
	useConfig(t, nil)
	resetCompileFlags(t)
	compileFlags.rev = "HEAD"

	path := committedFile(t, "hw.txt", "p or q", "p and")

	cmd, stdout, stderr := newTestCommand()
	if err := runCompile(cmd, []string{path}); err != nil {
		t.Fatalf("runCompile() error = %v\n%s", err, stderr.String())
	}
	if want := `\[ p \lor q \]` + "\n"; stdout.String() != want {
		t.Errorf("stdout = %q, want the committed source %q", stdout.String(), want)
	}
}

func TestCompile_RevErrors(t *testing.T) {
	useConfig(t, nil)
	resetCompileFlags(t)
	compileFlags.rev = "HEAD"

	cmd, _, _ := newTestCommand()
	err := runCompile(cmd, []string{"-"})
	var flagErr *cli.FlagError
	if !errors.As(err, &flagErr) || flagErr.Flag != "rev" {
		t.Fatalf("runCompile(-) error = %v, want a --rev flag error", err)
	}

	path := committedFile(t, "hw.txt", "p", "p")
	compileFlags.rev = "no-such-branch"
	cmd, _, stderr := newTestCommand()
	err = runCompile(cmd, []string{path})
	var failure *cli.CompileFailure
	if !errors.As(err, &failure) {
		t.Fatalf("runCompile() error = %v, want a compile failure", err)
	}
	if !strings.Contains(stderr.String(), "no-such-branch") {
		t.Errorf("stderr = %q, want the revision named", stderr.String())
	}
}

func TestReadSource_Name(t *testing.T) {
	path := committedFile(t, "a.txt", "given A", "")

	src, name, err := readSource(nil, path, "HEAD")
	if err != nil {
		t.Fatalf("readSource() error = %v", err)
	}
	if src != "given A" {
		t.Errorf("source = %q", src)
	}
	prefix := path + "@"
	if !strings.HasPrefix(name, prefix) || len(name) != len(prefix)+7 {
		t.Errorf("name = %q, want %s<short sha>", name, prefix)
	}
}
