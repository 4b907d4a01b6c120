package layout

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"
)

const testdataDir = "testdata"

func readTestdata(t *testing.T, name string) []byte {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(testdataDir, name))
	if err != nil {
		t.Fatalf("reading %s: %v", name, err)
	}
	return data
}

var testTemplates = fstest.MapFS{
	"readme": &fstest.MapFile{Data: []byte("# mini\n")},
}

func TestDefault_Counts(t *testing.T) {
	l, err := Default()
	if err != nil {
		t.Fatalf("Default() error: %v", err)
	}
	if l.Name != "legal-assistant" {
		t.Errorf("Name = %q, want %q", l.Name, "legal-assistant")
	}
	if got := len(l.Directories); got != 27 {
		t.Errorf("directories = %d, want 27", got)
	}

	var modules, retention int
	for _, m := range l.Markers {
		switch m.Kind {
		case KindModule:
			modules++
		case KindRetention:
			retention++
		}
		if !m.EmptyMarker() {
			t.Errorf("marker %s should be an empty marker", m.Path)
		}
	}
	if modules != 8 {
		t.Errorf("module markers = %d, want 8", modules)
	}
	if retention != 4 {
		t.Errorf("retention markers = %d, want 4", retention)
	}
	if got := len(l.Templates); got != 3 {
		t.Errorf("templates = %d, want 3", got)
	}
}

func TestDefault_RequiredPaths(t *testing.T) {
	l, err := Default()
	if err != nil {
		t.Fatalf("Default() error: %v", err)
	}

	dirs := make(map[string]bool)
	for _, d := range l.Directories {
		dirs[d.Path] = true
	}
	for _, want := range []string{
		"data/raw/policies",
		"data/raw/judicial_regulations",
		"src/rag",
		"web/static/images",
		"tests/fixtures",
		"database/vector_db",
	} {
		if !dirs[want] {
			t.Errorf("directory %s missing from layout", want)
		}
	}

	for _, want := range []string{".gitignore", "requirements.txt", ".env.example"} {
		tmpl, ok := l.Template(want)
		if !ok {
			t.Errorf("template %s missing from layout", want)
			continue
		}
		if len(tmpl.Content) == 0 {
			t.Errorf("template %s has empty content", want)
		}
		if tmpl.Kind != KindTemplate {
			t.Errorf("template %s kind = %q, want %q", want, tmpl.Kind, KindTemplate)
		}
	}
}

func TestDefault_RequirementsPinFlask(t *testing.T) {
	l, err := Default()
	if err != nil {
		t.Fatalf("Default() error: %v", err)
	}
	tmpl, _ := l.Template("requirements.txt")
	if !strings.Contains(string(tmpl.Content), "flask==2.3.3\n") {
		t.Errorf("requirements.txt does not pin flask==2.3.3:\n%s", tmpl.Content)
	}
}

func TestDefault_ReturnsCopy(t *testing.T) {
	a, err := Default()
	if err != nil {
		t.Fatalf("Default() error: %v", err)
	}
	a.Directories[0].Path = "mutated"
	a.Templates[0].Content[0] = 'X'

	b, err := Default()
	if err != nil {
		t.Fatalf("Default() error: %v", err)
	}
	if b.Directories[0].Path == "mutated" {
		t.Error("mutating a returned layout changed the shared directory table")
	}
	if b.Templates[0].Content[0] == 'X' {
		t.Error("mutating a returned layout changed a shared template body")
	}
}

func TestParse_Minimal(t *testing.T) {
	l, err := Parse(readTestdata(t, "valid-minimal.yaml"), testTemplates)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if l.Len() != 5 {
		t.Errorf("Len() = %d, want 5", l.Len())
	}
	tmpl, ok := l.Template("README.md")
	if !ok {
		t.Fatal("README.md template not found")
	}
	if string(tmpl.Content) != "# mini\n" {
		t.Errorf("README.md content = %q", tmpl.Content)
	}
}

func TestParse_MissingTemplateSource(t *testing.T) {
	_, err := Parse(readTestdata(t, "valid-minimal.yaml"), fstest.MapFS{})
	if err == nil {
		t.Fatal("expected error for missing template source")
	}
	if !strings.Contains(err.Error(), "readme") {
		t.Errorf("error should name the source, got: %v", err)
	}
}

func TestParse_ConsistencyErrors(t *testing.T) {
	tests := []struct {
		file   string
		substr string
	}{
		{"invalid-duplicate-path.yaml", "declared as"},
		{"invalid-file-on-directory.yaml", "collides"},
	}

	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			_, err := Parse(readTestdata(t, tt.file), testTemplates)
			if err == nil {
				t.Fatalf("expected error for %s", tt.file)
			}
			if !strings.Contains(err.Error(), tt.substr) {
				t.Errorf("error = %v, want it to contain %q", err, tt.substr)
			}
		})
	}
}

func TestParse_SchemaErrorType(t *testing.T) {
	_, err := Parse(readTestdata(t, "invalid-bad-kind.yaml"), testTemplates)
	var invalid *InvalidError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected *InvalidError, got %T (%v)", err, err)
	}
	if len(invalid.Issues) == 0 {
		t.Error("expected at least one issue")
	}
}

func TestFileSpecDir(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"src/core/__init__.py", "src/core"},
		{".gitignore", ""},
		{"data/processed/.gitkeep", "data/processed"},
	}
	for _, tt := range tests {
		got := FileSpec{Path: tt.path}.Dir()
		if got != tt.want {
			t.Errorf("Dir(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestAbs(t *testing.T) {
	root := filepath.Join("tmp", "proj")
	if got, want := Abs(root, "data/raw/laws"), filepath.Join(root, "data", "raw", "laws"); got != want {
		t.Errorf("Abs() = %q, want %q", got, want)
	}
	if got := Abs(root, ""); got != root {
		t.Errorf("Abs(root, \"\") = %q, want %q", got, root)
	}
}
