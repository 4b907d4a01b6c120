package platform

import (
	"errors"
	"syscall"
)

// commonTransient are errnos that signal a retryable condition on every OS.
var commonTransient = []syscall.Errno{
	syscall.EINTR,
	syscall.EAGAIN,
	syscall.EBUSY,
}

// IsTransient reports whether err is an OS error that may succeed on retry.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	var errno syscall.Errno
	if !errors.As(err, &errno) {
		return false
	}
	for _, e := range commonTransient {
		if errno == e {
			return true
		}
	}
	for _, e := range osTransient {
		if errno == e {
			return true
		}
	}
	return false
}
