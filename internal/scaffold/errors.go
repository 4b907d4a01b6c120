package scaffold

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"
)

// Code classifies a per-path failure.
type Code string

const (
	// CodePermission means the process lacks rights on the path.
	CodePermission Code = "permission"
	// CodeFilesystem covers collisions and every other filesystem failure.
	CodeFilesystem Code = "filesystem"
	// CodeCanceled means the run was canceled before the path was attempted.
	CodeCanceled Code = "canceled"
)

// ErrCollision marks a path occupied by the wrong kind of entry, such as a
// regular file where a directory is expected.
var ErrCollision = errors.New("path collision")

// PathError is the failure of one layout path.
type PathError struct {
	Code Code
	Op   string // mkdir, create, write
	Path string // slash-separated, relative to the scaffold root
	Err  error
}

func (e *PathError) Error() string {
	return fmt.Sprintf("%s: %s %s: %v", e.Code, e.Op, e.Path, e.Err)
}

func (e *PathError) Unwrap() error { return e.Err }

// newPathError wraps err with the code derived from its cause.
func newPathError(op, path string, err error) *PathError {
	code := CodeFilesystem
	switch {
	case errors.Is(err, fs.ErrPermission):
		code = CodePermission
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		code = CodeCanceled
	}
	return &PathError{Code: code, Op: op, Path: path, Err: err}
}

// PartialFailureError aggregates the per-path failures of one run. The paths
// that did not fail were still provisioned.
type PartialFailureError struct {
	Failures  []*PathError
	Attempted int
}

func (e *PartialFailureError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d of %d paths failed", len(e.Failures), e.Attempted)
	for _, f := range e.Failures {
		b.WriteString("\n  ")
		b.WriteString(f.Error())
	}
	return b.String()
}

// Unwrap exposes every failure to errors.Is and errors.As.
func (e *PartialFailureError) Unwrap() []error {
	errs := make([]error, len(e.Failures))
	for i, f := range e.Failures {
		errs[i] = f
	}
	return errs
}

// CodeOf returns the code of the first PathError in err's tree, or "" if none.
func CodeOf(err error) Code {
	var pe *PathError
	if errors.As(err, &pe) {
		return pe.Code
	}
	return ""
}

// IsPermission reports whether err is, or contains, a permission failure.
func IsPermission(err error) bool { return hasCode(err, CodePermission) }

// IsFilesystem reports whether err is, or contains, a filesystem failure.
func IsFilesystem(err error) bool { return hasCode(err, CodeFilesystem) }

func hasCode(err error, code Code) bool {
	var partial *PartialFailureError
	if errors.As(err, &partial) {
		for _, f := range partial.Failures {
			if f.Code == code {
				return true
			}
		}
		return false
	}
	return CodeOf(err) == code
}
