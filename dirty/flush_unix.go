//go:build linux || freebsd || darwin

package dirty

import "golang.org/x/sys/unix"

// msync flushes a memory region to its backing file via msync(2).
func msync(data []byte) error {
	if len(data) == 0 {
		return nil
	}
	return unix.Msync(data, unix.MS_SYNC)
}
