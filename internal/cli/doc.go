// Package cli defines the Cobra command tree for the lexkit CLI. Each file
// in this package registers one top-level command (init, verify, layout, etc.)
// with the root command. Command implementations delegate to internal packages
// for the work and only handle flag parsing and output formatting.
package cli
