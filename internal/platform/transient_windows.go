//go:build windows

package platform

import "syscall"

// Antivirus scanners and indexers briefly hold files open on Windows.
var osTransient = []syscall.Errno{
	32, // ERROR_SHARING_VIOLATION
	33, // ERROR_LOCK_VIOLATION
}
