//go:build windows

package arena

import (
	"unsafe"

	"golang.org/x/sys/windows"
)

func mmap(size int) ([]byte, error) {
	addr, err := windows.VirtualAlloc(0, uintptr(size), windows.MEM_COMMIT|windows.MEM_RESERVE, windows.PAGE_READWRITE)
	if err != nil {
		return nil, err
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(addr)), size), nil
}

func munmap(region []byte) error {
	addr := uintptr(unsafe.Pointer(&region[0]))
	return windows.VirtualFree(addr, 0, windows.MEM_RELEASE)
}
