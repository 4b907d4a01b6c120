//go:build integration

package integration_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/afero"

	"github.com/lexkit-labs/lexkit/internal/layout"
	"github.com/lexkit-labs/lexkit/internal/scaffold"
	"github.com/lexkit-labs/lexkit/internal/verify"
)

// testEnv holds an isolated home and project root.
type testEnv struct {
	HomeDir    string // HOME, holds .lexkit/config.yaml
	ProjectDir string // scaffold root, not created yet
	Layout     *layout.Layout
}

// setupTestEnv creates isolated temp directories and points HOME at one of
// them so no run reads the developer's settings.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		HomeDir:    t.TempDir(),
		ProjectDir: filepath.Join(t.TempDir(), "legal-assistant"),
	}
	t.Setenv("HOME", env.HomeDir)
	t.Setenv("USERPROFILE", env.HomeDir)

	l, err := layout.Default()
	if err != nil {
		t.Fatalf("loading layout: %v", err)
	}
	env.Layout = l
	return env
}

// scaffoldProject provisions env.ProjectDir on the real filesystem.
func scaffoldProject(t *testing.T, env *testEnv) (*scaffold.Report, error) {
	t.Helper()
	return scaffold.New(afero.NewOsFs(), env.Layout, scaffold.DefaultOptions()).Scaffold(context.Background(), env.ProjectDir)
}

// verifyProject checks env.ProjectDir on the real filesystem.
func verifyProject(t *testing.T, env *testEnv) *verify.Result {
	t.Helper()
	res, err := verify.Check(afero.NewOsFs(), env.Layout, env.ProjectDir)
	if err != nil {
		t.Fatalf("verify.Check: %v", err)
	}
	return res
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("creating parent dir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

func assertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("expected file to exist: %s", path)
	}
}

func assertDirExists(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		t.Errorf("expected directory to exist: %s", path)
		return
	}
	if err != nil {
		t.Errorf("stat %s: %v", path, err)
		return
	}
	if !info.IsDir() {
		t.Errorf("expected %s to be a directory", path)
	}
}

func assertFileContains(t *testing.T, path, substr string) {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	if !strings.Contains(string(data), substr) {
		t.Errorf("file %s does not contain %q", path, substr)
	}
}

func assertFileEmpty(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat %s: %v", path, err)
	}
	if info.Size() != 0 {
		t.Errorf("%s is %d bytes, want empty", path, info.Size())
	}
}
