// Package platform hides the operating-system differences lexkit cares about:
// permission bits, which are ignored on Windows, and which OS errors count as
// transient and are worth retrying.
package platform
