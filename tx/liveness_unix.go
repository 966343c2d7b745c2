//go:build unix

package tx

import (
	"errors"

	"golang.org/x/sys/unix"
)

// processAlive reports whether pid names a live process.
//
// Signal 0 performs the permission and existence checks without delivering
// anything. EPERM means the process exists but is not ours: alive.
func processAlive(pid int) bool {
	if pid <= 0 {
		return false
	}
	err := unix.Kill(pid, 0)
	if err == nil {
		return true
	}
	return errors.Is(err, unix.EPERM)
}
