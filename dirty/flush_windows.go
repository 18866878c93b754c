//go:build windows

package dirty

import (
	"unsafe"

	"golang.org/x/sys/windows"
)

// msync flushes a memory-mapped region to its backing file via
// FlushViewOfFile.
func msync(data []byte) error {
	if len(data) == 0 {
		return nil
	}
	return windows.FlushViewOfFile(uintptr(unsafe.Pointer(&data[0])), uintptr(len(data)))
}
