package scaffold

import (
	"github.com/lexkit-labs/lexkit/internal/layout"
)

// Action is what a run did to one path.
type Action string

// Actions recorded in a report.
const (
	ActionCreated     Action = "created"
	ActionPresent     Action = "present"
	ActionOverwritten Action = "overwritten"
	ActionFailed      Action = "failed"
)

// Entry is the outcome for one layout path.
type Entry struct {
	Path   string // slash-separated, relative to Root
	Kind   layout.Kind
	Action Action
	Bytes  int64 // bytes written, templates only
	Err    *PathError
}

// Report lists every layout path in manifest order: directories, markers, templates.
type Report struct {
	Root        string
	RootCreated bool
	DryRun      bool
	Entries     []Entry
}

// Summary counts entries per action.
type Summary struct {
	Created     int
	Present     int
	Overwritten int
	Failed      int
	Bytes       int64
}

// Total returns the number of entries counted.
func (s Summary) Total() int {
	return s.Created + s.Present + s.Overwritten + s.Failed
}

// Summary tallies the report.
func (r *Report) Summary() Summary {
	var s Summary
	for _, e := range r.Entries {
		switch e.Action {
		case ActionCreated:
			s.Created++
		case ActionPresent:
			s.Present++
		case ActionOverwritten:
			s.Overwritten++
		case ActionFailed:
			s.Failed++
		}
		s.Bytes += e.Bytes
	}
	return s
}

// Failures returns the errors of failed entries in report order.
func (r *Report) Failures() []*PathError {
	var out []*PathError
	for _, e := range r.Entries {
		if e.Err != nil {
			out = append(out, e.Err)
		}
	}
	return out
}

// Paths returns the entry paths that ended with the given action.
func (r *Report) Paths(a Action) []string {
	var out []string
	for _, e := range r.Entries {
		if e.Action == a {
			out = append(out, e.Path)
		}
	}
	return out
}

// Entry looks up the entry for a slash path.
func (r *Report) Entry(path string) (Entry, bool) {
	for _, e := range r.Entries {
		if e.Path == path {
			return e, true
		}
	}
	return Entry{}, false
}
