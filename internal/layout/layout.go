package layout

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"strings"
	"sync"

	"go.yaml.in/yaml/v3"
)

//go:embed layout.yaml
var manifestBytes []byte

//go:embed templates
var templateFS embed.FS

var (
	defaultOnce   sync.Once
	defaultLayout *Layout
	defaultErr    error
)

// manifestDoc is the on-disk shape of layout.yaml.
type manifestDoc struct {
	Name        string     `yaml:"name"`
	Version     string     `yaml:"version"`
	Directories []string   `yaml:"directories"`
	Markers     []FileSpec `yaml:"markers"`
	Templates   []FileSpec `yaml:"templates"`
}

// Default returns a copy of the embedded project layout. The manifest is
// parsed and validated once; a broken embedded manifest is reported on every call.
func Default() (*Layout, error) {
	defaultOnce.Do(func() {
		templates, err := fs.Sub(templateFS, "templates")
		if err != nil {
			defaultErr = fmt.Errorf("opening embedded templates: %w", err)
			return
		}
		defaultLayout, defaultErr = Parse(manifestBytes, templates)
	})
	if defaultErr != nil {
		return nil, defaultErr
	}
	return defaultLayout.Clone(), nil
}

// Raw returns the embedded manifest exactly as shipped.
func Raw() []byte {
	return append([]byte(nil), manifestBytes...)
}

// TemplateBody returns the embedded body of a named template source.
func TemplateBody(source string) ([]byte, error) {
	data, err := fs.ReadFile(templateFS, path.Join("templates", source))
	if err != nil {
		return nil, fmt.Errorf("reading template %s: %w", source, err)
	}
	return data, nil
}

// Parse validates a manifest against the schema, resolves template bodies
// from templates and checks cross-entry consistency.
func Parse(data []byte, templates fs.FS) (*Layout, error) {
	result, err := Validate(data)
	if err != nil {
		return nil, err
	}
	if !result.Valid {
		return nil, &InvalidError{Issues: result.Issues}
	}

	var doc manifestDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing layout manifest: %w", err)
	}

	l := &Layout{
		Name:    doc.Name,
		Version: doc.Version,
	}
	for _, d := range doc.Directories {
		l.Directories = append(l.Directories, DirectorySpec{Path: d})
	}
	l.Markers = doc.Markers

	for _, t := range doc.Templates {
		body, err := fs.ReadFile(templates, t.Source)
		if err != nil {
			return nil, fmt.Errorf("template %s: reading source %q: %w", t.Path, t.Source, err)
		}
		t.Kind = KindTemplate
		t.Content = body
		l.Templates = append(l.Templates, t)
	}

	if err := checkConsistency(l); err != nil {
		return nil, err
	}
	return l, nil
}

// checkConsistency rejects layouts where two entries claim the same path or
// a file sits where a directory is declared.
func checkConsistency(l *Layout) error {
	owner := make(map[string]Kind, l.Len())
	claim := func(p string, k Kind) error {
		if prev, ok := owner[p]; ok {
			return fmt.Errorf("layout path %s declared as %s and %s", p, prev, k)
		}
		owner[p] = k
		return nil
	}

	dirs := make(map[string]bool)
	for _, d := range l.Directories {
		if err := claim(d.Path, KindDirectory); err != nil {
			return err
		}
		// Every ancestor of a declared directory is implicitly a directory.
		segs := d.Segments()
		for i := 1; i <= len(segs); i++ {
			dirs[strings.Join(segs[:i], "/")] = true
		}
	}

	for _, m := range l.Markers {
		if !m.EmptyMarker() {
			return fmt.Errorf("layout marker %s has kind %s", m.Path, m.Kind)
		}
	}

	files := append(append([]FileSpec(nil), l.Markers...), l.Templates...)
	for _, f := range files {
		if err := claim(f.Path, f.Kind); err != nil {
			return err
		}
		if dirs[f.Path] {
			return fmt.Errorf("layout file %s collides with a declared directory", f.Path)
		}
	}
	return nil
}
