//go:build windows

package tx

import (
	"errors"

	"golang.org/x/sys/windows"
)

// STILL_ACTIVE: the exit code GetExitCodeProcess reports for a live process.
const statusStillActive = 259

// processAlive reports whether pid names a live process.
//
// On Windows, a handle with PROCESS_QUERY_LIMITED_INFORMATION is enough to
// read the exit code. Access denied means the process exists but belongs
// to someone else, which still counts as alive.
func processAlive(pid int) bool {
	if pid <= 0 {
		return false
	}
	h, err := windows.OpenProcess(windows.PROCESS_QUERY_LIMITED_INFORMATION, false, uint32(pid))
	if err != nil {
		return errors.Is(err, windows.ERROR_ACCESS_DENIED)
	}
	defer windows.CloseHandle(h)
	var code uint32
	if err := windows.GetExitCodeProcess(h, &code); err != nil {
		return false
	}
	return code == statusStillActive
}
