package bareheap

import "errors"

var (
	// ErrAllocationNotFound is returned by the raw allocator's free (and
	// Heap.Dealloc panics with it) when the given pointer does not fall
	// inside any record currently tracked by the heap.
	ErrAllocationNotFound = errors.New("bareheap: pointer does not belong to this heap")

	// ErrDoubleFreeDetected is returned by the raw allocator's free (and
	// Heap.Dealloc panics with it) when the record containing the given
	// pointer is already marked free.
	ErrDoubleFreeDetected = errors.New("bareheap: double free detected")
)
