// Package layout holds the fixed project skeleton that lexkit provisions:
// the directory list, the empty marker files and the literal templates. The
// table is an embedded YAML manifest validated against an embedded JSON Schema
// on first use and handed out as a copy, so no caller can mutate it.
package layout
