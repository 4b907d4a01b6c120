//go:build integration

package integration_test

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/lexkit-labs/lexkit/internal/layout"
	"github.com/lexkit-labs/lexkit/internal/scaffold"
	"github.com/lexkit-labs/lexkit/internal/verify"
)

// TestFullFlowScaffoldAndVerify tests: scaffold -> verify clean -> drift -> rescaffold -> verify clean.
func TestFullFlowScaffoldAndVerify(t *testing.T) {
	env := setupTestEnv(t)

	report, err := scaffoldProject(t, env)
	if err != nil {
		t.Fatalf("scaffold: %v", err)
	}
	if !report.RootCreated {
		t.Error("expected the project root to be created")
	}

	assertDirExists(t, filepath.Join(env.ProjectDir, "data", "raw", "policies"))
	assertFileContains(t, filepath.Join(env.ProjectDir, "requirements.txt"), "flask==2.3.3")
	assertFileEmpty(t, filepath.Join(env.ProjectDir, "src", "__init__.py"))

	if res := verifyProject(t, env); !res.OK() {
		t.Fatalf("fresh project has problems: %+v", res.Problems())
	}

	// Local edits: one template drifts, one marker gains content.
	writeFile(t, filepath.Join(env.ProjectDir, ".gitignore"), "*.pyc\n")
	writeFile(t, filepath.Join(env.ProjectDir, "src", "core", "__init__.py"), "VERSION = '1'\n")

	res := verifyProject(t, env)
	problems := res.Problems()
	if len(problems) != 1 || problems[0].Path != ".gitignore" || problems[0].Status != verify.StatusDrift {
		t.Fatalf("problems = %+v, want only .gitignore drift", problems)
	}

	// Rescaffolding restores templates and keeps marker content.
	report, err = scaffoldProject(t, env)
	if err != nil {
		t.Fatalf("rescaffold: %v", err)
	}
	if e, _ := report.Entry(".gitignore"); e.Action != scaffold.ActionOverwritten {
		t.Errorf(".gitignore action = %s, want overwritten", e.Action)
	}
	assertFileContains(t, filepath.Join(env.ProjectDir, "src", "core", "__init__.py"), "VERSION = '1'")

	if res := verifyProject(t, env); !res.OK() {
		t.Errorf("rescaffolded project has problems: %+v", res.Problems())
	}
}

// TestFullFlowIdempotent runs the scaffold twice and compares the trees.
func TestFullFlowIdempotent(t *testing.T) {
	env := setupTestEnv(t)

	if _, err := scaffoldProject(t, env); err != nil {
		t.Fatalf("first scaffold: %v", err)
	}
	first := listTree(t, env.ProjectDir)

	report, err := scaffoldProject(t, env)
	if err != nil {
		t.Fatalf("second scaffold: %v", err)
	}
	second := listTree(t, env.ProjectDir)

	if len(first) != len(second) {
		t.Fatalf("tree size changed: %d -> %d entries", len(first), len(second))
	}
	for p, size := range first {
		if second[p] != size {
			t.Errorf("%s changed size: %d -> %d", p, size, second[p])
		}
	}

	s := report.Summary()
	if s.Created != 0 || s.Overwritten != len(env.Layout.Templates) {
		t.Errorf("second run summary = %+v", s)
	}
}

// TestFullFlowPartialFailure blocks one directory with a file and expects
// everything else to be provisioned.
func TestFullFlowPartialFailure(t *testing.T) {
	env := setupTestEnv(t)
	writeFile(t, filepath.Join(env.ProjectDir, "scripts"), "#!/bin/sh\n")

	report, err := scaffoldProject(t, env)
	var partial *scaffold.PartialFailureError
	if !errors.As(err, &partial) {
		t.Fatalf("error = %v, want *PartialFailureError", err)
	}
	if len(partial.Failures) != 1 || partial.Failures[0].Path != "scripts" {
		t.Fatalf("failures = %v, want only scripts", partial.Failures)
	}
	if !errors.Is(err, scaffold.ErrCollision) {
		t.Error("errors.Is(err, ErrCollision) = false")
	}
	if got := report.Summary().Created; got != env.Layout.Len()-1 {
		t.Errorf("created = %d, want %d", got, env.Layout.Len()-1)
	}

	res := verifyProject(t, env)
	problems := res.Problems()
	if len(problems) != 1 || problems[0].Status != verify.StatusCollision {
		t.Errorf("verify problems = %+v, want one collision", problems)
	}
}

// TestFullFlowReadOnlyTree scaffolds into a directory the user cannot write.
func TestFullFlowReadOnlyTree(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("directory permissions are not enforced on Windows")
	}
	if os.Geteuid() == 0 {
		t.Skip("root ignores directory permissions")
	}

	env := setupTestEnv(t)
	if err := os.MkdirAll(env.ProjectDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.Chmod(env.ProjectDir, 0o555); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Chmod(env.ProjectDir, 0o755) })

	_, err := scaffoldProject(t, env)
	if err == nil {
		t.Fatal("scaffold into a read-only root succeeded")
	}
	if !scaffold.IsPermission(err) {
		t.Errorf("IsPermission(%v) = false", err)
	}
}

// TestFullFlowEveryPathVerified checks that verify reports each layout path once.
func TestFullFlowEveryPathVerified(t *testing.T) {
	env := setupTestEnv(t)
	if _, err := scaffoldProject(t, env); err != nil {
		t.Fatal(err)
	}

	seen := make(map[string]bool)
	for _, f := range verifyProject(t, env).Findings {
		if seen[f.Path] {
			t.Errorf("duplicate finding for %s", f.Path)
		}
		seen[f.Path] = true
	}
	for _, d := range env.Layout.Directories {
		if !seen[d.Path] {
			t.Errorf("no finding for directory %s", d.Path)
		}
	}
	for _, f := range append(env.Layout.Markers, env.Layout.Templates...) {
		if !seen[f.Path] {
			t.Errorf("no finding for %s", f.Path)
		}
		assertFileExists(t, layout.Abs(env.ProjectDir, f.Path))
	}
}

func listTree(t *testing.T, root string) map[string]int64 {
	t.Helper()
	out := make(map[string]int64)
	err := filepath.Walk(root, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		rel, _ := filepath.Rel(root, p)
		if info.IsDir() {
			out[rel] = -1
		} else {
			out[rel] = info.Size()
		}
		return nil
	})
	if err != nil {
		t.Fatalf("walking %s: %v", root, err)
	}
	return out
}
