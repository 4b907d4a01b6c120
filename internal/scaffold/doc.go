// Package scaffold provisions a project skeleton described by a layout table.
// It powers "lexkit init": directories are created with their ancestors, empty
// marker files are created only when absent, and literal templates are always
// rewritten. Every path is attempted independently on a bounded worker pool and
// failures are collected into a single aggregate error beside a full report.
package scaffold
