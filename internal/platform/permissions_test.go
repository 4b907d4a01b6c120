package platform

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/spf13/afero"
)

func TestChmod(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "test.txt")
	if err := os.WriteFile(path, []byte("test"), 0o600); err != nil {
		t.Fatal(err)
	}

	if err := Chmod(afero.NewOsFs(), path, FilePerm); err != nil {
		t.Fatalf("Chmod failed: %v", err)
	}

	if runtime.GOOS != "windows" {
		info, err := os.Stat(path)
		if err != nil {
			t.Fatal(err)
		}
		if perm := info.Mode().Perm(); perm != FilePerm {
			t.Errorf("permissions = %o, want %o", perm, FilePerm)
		}
	}
}

func TestChmodMemFs(t *testing.T) {
	fsys := afero.NewMemMapFs()
	if err := afero.WriteFile(fsys, "/a/b.txt", []byte("x"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := Chmod(fsys, "/a/b.txt", FilePerm); err != nil {
		t.Fatalf("Chmod failed: %v", err)
	}
	if runtime.GOOS != "windows" {
		info, err := fsys.Stat("/a/b.txt")
		if err != nil {
			t.Fatal(err)
		}
		if perm := info.Mode().Perm(); perm != FilePerm {
			t.Errorf("permissions = %o, want %o", perm, FilePerm)
		}
	}
}

func TestChmodMissing(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("Chmod is a no-op on Windows")
	}
	if err := Chmod(afero.NewMemMapFs(), "/missing", FilePerm); err == nil {
		t.Error("expected error for missing path")
	}
}
