package verify

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"

	udiff "github.com/aymanbagabas/go-udiff"
	"github.com/spf13/afero"

	"github.com/lexkit-labs/lexkit/internal/envfile"
	"github.com/lexkit-labs/lexkit/internal/layout"
	"github.com/lexkit-labs/lexkit/internal/requirements"
)

// Status is the verdict for one layout path.
type Status string

// Statuses reported by Check.
const (
	StatusOK        Status = "ok"
	StatusMissing   Status = "missing"
	StatusCollision Status = "collision"
	StatusDrift     Status = "drift"
	StatusError     Status = "error"
)

// Finding is the verdict for one layout path.
type Finding struct {
	Path    string
	Kind    layout.Kind
	Status  Status
	Details []string // human-readable specifics, e.g. changed pins
	Diff    string   // unified diff for drifted templates
}

// Result is the outcome of checking a tree.
type Result struct {
	Root     string
	Findings []Finding
}

// Problems returns the findings that are not OK.
func (r *Result) Problems() []Finding {
	var out []Finding
	for _, f := range r.Findings {
		if f.Status != StatusOK {
			out = append(out, f)
		}
	}
	return out
}

// OK reports whether every path matches the layout.
func (r *Result) OK() bool { return len(r.Problems()) == 0 }

// Count returns the number of findings with status s.
func (r *Result) Count(s Status) int {
	n := 0
	for _, f := range r.Findings {
		if f.Status == s {
			n++
		}
	}
	return n
}

// Check inspects root against l without modifying anything. Only a missing
// or unreadable root is returned as an error; everything else is a finding.
func Check(fsys afero.Fs, l *layout.Layout, root string) (*Result, error) {
	info, err := fsys.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("checking root %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("root %s is not a directory", root)
	}

	res := &Result{Root: root}
	for _, d := range l.Directories {
		res.Findings = append(res.Findings, checkDir(fsys, root, d))
	}
	for _, m := range l.Markers {
		res.Findings = append(res.Findings, checkMarker(fsys, root, m))
	}
	for _, t := range l.Templates {
		res.Findings = append(res.Findings, checkTemplate(fsys, root, t))
	}
	return res, nil
}

func checkDir(fsys afero.Fs, root string, d layout.DirectorySpec) Finding {
	f := Finding{Path: d.Path, Kind: layout.KindDirectory}
	isDir, err := statKind(fsys, root, d.Path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		f.Status = StatusMissing
	case errors.Is(err, errCollision):
		f.Status = StatusCollision
		f.Details = []string{err.Error()}
	case err != nil:
		f.Status = StatusError
		f.Details = []string{err.Error()}
	case !isDir:
		f.Status = StatusCollision
		f.Details = []string{d.Path + " is a file"}
	default:
		f.Status = StatusOK
	}
	return f
}

func checkMarker(fsys afero.Fs, root string, m layout.FileSpec) Finding {
	f := Finding{Path: m.Path, Kind: m.Kind}
	isDir, err := statKind(fsys, root, m.Path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		f.Status = StatusMissing
	case errors.Is(err, errCollision):
		f.Status = StatusCollision
		f.Details = []string{err.Error()}
	case err != nil:
		f.Status = StatusError
		f.Details = []string{err.Error()}
	case isDir:
		f.Status = StatusCollision
		f.Details = []string{m.Path + " is a directory"}
	default:
		f.Status = StatusOK
	}
	return f
}

func checkTemplate(fsys afero.Fs, root string, t layout.FileSpec) Finding {
	f := checkMarker(fsys, root, t)
	if f.Status != StatusOK {
		return f
	}

	got, err := afero.ReadFile(fsys, layout.Abs(root, t.Path))
	if err != nil {
		f.Status = StatusError
		f.Details = []string{err.Error()}
		return f
	}
	if bytes.Equal(got, t.Content) {
		return f
	}

	f.Status = StatusDrift
	f.Diff = udiff.Unified("canonical/"+t.Path, t.Path, string(t.Content), string(got))
	f.Details = templateDetails(t, got)
	return f
}

// templateDetails explains drift in terms the file's format understands.
func templateDetails(t layout.FileSpec, got []byte) []string {
	switch path.Base(t.Path) {
	case "requirements.txt":
		want, err := requirements.Parse(t.Content)
		if err != nil {
			return []string{"canonical requirements: " + err.Error()}
		}
		have, err := requirements.Parse(got)
		if err != nil {
			return []string{err.Error()}
		}
		var out []string
		for _, c := range requirements.Compare(want, have) {
			out = append(out, c.String())
		}
		return out
	case ".env.example":
		d, err := envfile.CompareKeys(t.Content, got)
		if err != nil {
			return []string{err.Error()}
		}
		if d.Empty() {
			return []string{"keys match, values differ"}
		}
		var out []string
		if len(d.Missing) > 0 {
			out = append(out, "missing keys: "+strings.Join(d.Missing, ", "))
		}
		if len(d.Extra) > 0 {
			out = append(out, "extra keys: "+strings.Join(d.Extra, ", "))
		}
		return out
	}
	return nil
}

var errCollision = errors.New("path collision")

// statKind reports whether rel under root is a directory. It walks from the
// root so a file standing in for an ancestor is reported as a collision
// rather than as a missing path.
func statKind(fsys afero.Fs, root, rel string) (bool, error) {
	segs := strings.Split(rel, "/")
	for i := range segs {
		p := strings.Join(segs[:i+1], "/")
		info, err := fsys.Stat(layout.Abs(root, p))
		if err != nil {
			return false, err
		}
		if i == len(segs)-1 {
			return info.IsDir(), nil
		}
		if !info.IsDir() {
			return false, fmt.Errorf("%w: %s is a file", errCollision, p)
		}
	}
	return false, nil
}
