package scaffold

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/lexkit-labs/lexkit/internal/layout"
	"github.com/lexkit-labs/lexkit/internal/platform"
)

// ensureRoot creates root if it is missing. It reports whether it did.
func (s *Scaffolder) ensureRoot(ctx context.Context, root string) (bool, error) {
	created := false
	err := s.retry(ctx, func() error {
		info, err := s.fs.Stat(root)
		if err == nil {
			if !info.IsDir() {
				return fmt.Errorf("%w: %s exists but is not a directory", ErrCollision, root)
			}
			return nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return err
		}
		if err := s.fs.MkdirAll(root, platform.DirPerm); err != nil {
			return err
		}
		created = true
		return nil
	})
	if err != nil {
		return false, newPathError("mkdir", root, err)
	}
	return created, nil
}

func (s *Scaffolder) ensureDir(ctx context.Context, root string, d layout.DirectorySpec) Entry {
	e := Entry{Path: d.Path, Kind: layout.KindDirectory}
	err := s.retry(ctx, func() error {
		var err error
		e.Action, err = s.mkdir(root, d.Segments())
		return err
	})
	return finish(e, "mkdir", err)
}

func (s *Scaffolder) ensureMarker(ctx context.Context, root string, f layout.FileSpec) Entry {
	e := Entry{Path: f.Path, Kind: f.Kind}
	err := s.retry(ctx, func() error {
		var err error
		e.Action, err = s.touch(root, f)
		return err
	})
	return finish(e, "create", err)
}

func (s *Scaffolder) writeTemplate(ctx context.Context, root string, f layout.FileSpec) Entry {
	e := Entry{Path: f.Path, Kind: f.Kind}
	err := s.retry(ctx, func() error {
		var err error
		e.Action, err = s.overwrite(root, f)
		return err
	})
	if err == nil {
		e.Bytes = int64(len(f.Content))
	}
	return finish(e, "write", err)
}

func finish(e Entry, op string, err error) Entry {
	if err != nil {
		e.Action = ActionFailed
		e.Bytes = 0
		e.Err = newPathError(op, e.Path, err)
	}
	return e
}

// mkdir creates the directory named by segments under root.
func (s *Scaffolder) mkdir(root string, segments []string) (Action, error) {
	existed, err := s.walk(root, segments)
	if err != nil {
		return "", err
	}
	if existed {
		return ActionPresent, nil
	}
	if err := s.fs.MkdirAll(layout.Abs(root, path.Join(segments...)), platform.DirPerm); err != nil {
		return "", err
	}
	return ActionCreated, nil
}

// touch creates an empty marker unless something already sits at its path.
// Existing content is never touched.
func (s *Scaffolder) touch(root string, f layout.FileSpec) (Action, error) {
	if err := s.ensureParent(root, f); err != nil {
		return "", err
	}

	p := layout.Abs(root, f.Path)
	if info, err := s.fs.Stat(p); err == nil {
		if info.IsDir() {
			return "", fmt.Errorf("%w: %s is a directory", ErrCollision, f.Path)
		}
		return ActionPresent, nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return "", err
	}

	// O_EXCL guards against a file appearing between Stat and create.
	file, err := s.fs.OpenFile(p, os.O_WRONLY|os.O_CREATE|os.O_EXCL, platform.FilePerm)
	if errors.Is(err, fs.ErrExist) {
		return ActionPresent, nil
	}
	if err != nil {
		return "", err
	}
	if err := file.Close(); err != nil {
		return "", err
	}
	return ActionCreated, nil
}

// overwrite replaces a template with its canonical content.
func (s *Scaffolder) overwrite(root string, f layout.FileSpec) (Action, error) {
	if err := s.ensureParent(root, f); err != nil {
		return "", err
	}

	p := layout.Abs(root, f.Path)
	action := ActionCreated
	if info, err := s.fs.Stat(p); err == nil {
		if info.IsDir() {
			return "", fmt.Errorf("%w: %s is a directory", ErrCollision, f.Path)
		}
		action = ActionOverwritten
	} else if !errors.Is(err, fs.ErrNotExist) {
		return "", err
	}

	if err := writeFileAtomic(s.fs, p, f.Content, platform.FilePerm); err != nil {
		return "", err
	}
	return action, nil
}

// ensureParent makes sure the directory holding f exists so a file never
// depends on a sibling directory entry having succeeded.
func (s *Scaffolder) ensureParent(root string, f layout.FileSpec) error {
	dir := f.Dir()
	if dir == "" {
		return nil
	}
	_, err := s.mkdir(root, layout.DirectorySpec{Path: dir}.Segments())
	return err
}

// walk checks each component of segments under root. It fails with
// ErrCollision at the first component that exists but is not a directory and
// reports whether the full path already exists.
func (s *Scaffolder) walk(root string, segments []string) (bool, error) {
	cur := root
	for i, seg := range segments {
		cur = filepath.Join(cur, seg)
		info, err := s.fs.Stat(cur)
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		if err != nil {
			return false, err
		}
		if !info.IsDir() {
			return false, fmt.Errorf("%w: %s exists but is not a directory", ErrCollision, path.Join(segments[:i+1]...))
		}
	}
	return true, nil
}

// writeFileAtomic writes data to a temp file beside p and renames it into
// place, so readers never observe a half-written template.
func writeFileAtomic(fsys afero.Fs, p string, data []byte, perm os.FileMode) error {
	tmp, err := afero.TempFile(fsys, filepath.Dir(p), ".lexkit-tmp-*")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()

	success := false
	defer func() {
		if !success {
			_ = fsys.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := platform.Chmod(fsys, tmpPath, perm); err != nil {
		return err
	}
	if err := fsys.Rename(tmpPath, p); err != nil {
		return err
	}

	success = true
	return nil
}
