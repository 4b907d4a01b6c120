// Package verify checks an existing project tree against the layout without
// touching it. It backs "lexkit verify" and reports, per path, whether the
// entry is present with the right type and whether templates still match
// their canonical content.
package verify
