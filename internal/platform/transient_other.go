//go:build !windows

package platform

import "syscall"

var osTransient = []syscall.Errno{
	syscall.ETXTBSY,
}
