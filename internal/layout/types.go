package layout

import (
	"path/filepath"
	"strings"
)

// Kind identifies what a layout entry is and how it is provisioned.
type Kind string

// Entry kinds.
const (
	KindDirectory Kind = "directory"
	KindModule    Kind = "module"
	KindRetention Kind = "retention"
	KindTemplate  Kind = "template"
)

// DirectorySpec is a directory created with all missing ancestors.
type DirectorySpec struct {
	Path string // slash-separated, relative to the scaffold root
}

// Segments returns the path components of the directory.
func (d DirectorySpec) Segments() []string {
	return strings.Split(d.Path, "/")
}

// FileSpec is a file and the rule that produces its content.
type FileSpec struct {
	Path    string `yaml:"path"`
	Kind    Kind   `yaml:"kind"`
	Source  string `yaml:"source,omitempty"` // template body name under templates/
	Content []byte `yaml:"-"`
}

// EmptyMarker reports whether the file is created empty and never overwritten.
func (f FileSpec) EmptyMarker() bool {
	return f.Kind == KindModule || f.Kind == KindRetention
}

// Segments returns the path components of the file.
func (f FileSpec) Segments() []string {
	return strings.Split(f.Path, "/")
}

// Dir returns the slash-separated parent directory, or "" for root-level files.
func (f FileSpec) Dir() string {
	i := strings.LastIndex(f.Path, "/")
	if i < 0 {
		return ""
	}
	return f.Path[:i]
}

// Layout is the complete project skeleton.
type Layout struct {
	Name        string
	Version     string
	Directories []DirectorySpec
	Markers     []FileSpec
	Templates   []FileSpec
}

// Len returns the total number of entries across all sections.
func (l *Layout) Len() int {
	return len(l.Directories) + len(l.Markers) + len(l.Templates)
}

// Template returns the template spec for the given slash path.
func (l *Layout) Template(path string) (FileSpec, bool) {
	for _, t := range l.Templates {
		if t.Path == path {
			return t, true
		}
	}
	return FileSpec{}, false
}

// Clone returns a deep copy, including template bodies.
func (l *Layout) Clone() *Layout {
	c := &Layout{
		Name:        l.Name,
		Version:     l.Version,
		Directories: append([]DirectorySpec(nil), l.Directories...),
		Markers:     append([]FileSpec(nil), l.Markers...),
		Templates:   make([]FileSpec, len(l.Templates)),
	}
	for i, t := range l.Templates {
		t.Content = append([]byte(nil), t.Content...)
		c.Templates[i] = t
	}
	return c
}

// Abs joins a slash-separated layout path onto root using the OS separator.
func Abs(root, rel string) string {
	if rel == "" {
		return root
	}
	return filepath.Join(root, filepath.FromSlash(rel))
}
