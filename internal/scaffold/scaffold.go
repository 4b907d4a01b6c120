package scaffold

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/sourcegraph/conc/pool"
	"github.com/spf13/afero"

	"github.com/lexkit-labs/lexkit/internal/layout"
	"github.com/lexkit-labs/lexkit/internal/platform"
)

// Default tuning values.
const (
	DefaultWorkers       = 4
	DefaultRetries       = 3
	DefaultRetryInterval = 50 * time.Millisecond
)

// Options tunes a Scaffolder. Zero values fall back to the defaults above,
// except Retries where zero disables retrying.
type Options struct {
	Workers       int
	Retries       int
	RetryInterval time.Duration
	DryRun        bool // recorded in the report; the caller supplies the overlay fs
}

// DefaultOptions returns the options used by the CLI when nothing is configured.
func DefaultOptions() Options {
	return Options{
		Workers:       DefaultWorkers,
		Retries:       DefaultRetries,
		RetryInterval: DefaultRetryInterval,
	}
}

// Scaffolder provisions a layout onto a filesystem.
type Scaffolder struct {
	fs     afero.Fs
	layout *layout.Layout
	opts   Options
}

// New creates a Scaffolder writing through fsys.
func New(fsys afero.Fs, l *layout.Layout, opts Options) *Scaffolder {
	if opts.Workers < 1 {
		opts.Workers = DefaultWorkers
	}
	if opts.Retries < 0 {
		opts.Retries = 0
	}
	if opts.RetryInterval <= 0 {
		opts.RetryInterval = DefaultRetryInterval
	}
	return &Scaffolder{fs: fsys, layout: l, opts: opts}
}

// DryRunFs layers an in-memory overlay over a read-only view of base, so a
// run reports exactly what it would do while nothing reaches base.
func DryRunFs(base afero.Fs) afero.Fs {
	return afero.NewCopyOnWriteFs(afero.NewReadOnlyFs(base), afero.NewMemMapFs())
}

// Scaffold provisions the layout under root. When root itself cannot be
// provisioned the returned error is that single *PathError. Otherwise every
// entry is attempted and, if any failed, a *PartialFailureError is returned
// together with the complete report.
func (s *Scaffolder) Scaffold(ctx context.Context, root string) (*Report, error) {
	report := &Report{Root: root, DryRun: s.opts.DryRun}

	created, err := s.ensureRoot(ctx, root)
	if err != nil {
		return report, err
	}
	report.RootCreated = created

	// Phases run in order so a marker never races its parent directory and
	// the present/created split stays deterministic.
	dirs := make([]Entry, len(s.layout.Directories))
	s.each(len(dirs), func(i int) {
		dirs[i] = s.ensureDir(ctx, root, s.layout.Directories[i])
	})

	markers := make([]Entry, len(s.layout.Markers))
	s.each(len(markers), func(i int) {
		markers[i] = s.ensureMarker(ctx, root, s.layout.Markers[i])
	})

	templates := make([]Entry, len(s.layout.Templates))
	s.each(len(templates), func(i int) {
		templates[i] = s.writeTemplate(ctx, root, s.layout.Templates[i])
	})

	report.Entries = make([]Entry, 0, s.layout.Len())
	report.Entries = append(report.Entries, dirs...)
	report.Entries = append(report.Entries, markers...)
	report.Entries = append(report.Entries, templates...)

	if failures := report.Failures(); len(failures) > 0 {
		return report, &PartialFailureError{Failures: failures, Attempted: len(report.Entries)}
	}
	return report, nil
}

// each runs fn for 0..n-1 on the bounded pool and waits for all of them.
func (s *Scaffolder) each(n int, fn func(i int)) {
	p := pool.New().WithMaxGoroutines(s.opts.Workers)
	for i := 0; i < n; i++ {
		p.Go(func() { fn(i) })
	}
	p.Wait()
}

// retry runs op until it succeeds, fails permanently, or runs out of attempts.
// Only transient OS errors are retried.
func (s *Scaffolder) retry(ctx context.Context, op func() error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = s.opts.RetryInterval
	b.MaxInterval = 20 * s.opts.RetryInterval

	_, err := backoff.Retry(ctx, func() (struct{}, error) {
		err := op()
		if err != nil && !platform.IsTransient(err) {
			return struct{}{}, backoff.Permanent(err)
		}
		return struct{}{}, err
	}, backoff.WithBackOff(b), backoff.WithMaxTries(uint(s.opts.Retries+1)))
	return err
}
