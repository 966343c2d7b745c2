//go:build !unix && !windows

package tx

// processAlive reports false on platforms without a process probe, so
// pending reverts are always replayed there.
func processAlive(pid int) bool { return false }
