// Package arena provisions OS-backed backing storage for a bareheap.Heap
// via an anonymous memory mapping, as an alternative to an ordinary Go
// slice.
//
// # Overview
//
// bareheap.Heap has no opinion on where its backing bytes come from: a
// static array, a make([]byte, n), or a region handed back by this
// package all work identically from the allocator's point of view. arena
// exists for hosts that want the heap's memory to live outside the Go
// garbage collector's reach. The mapping is anonymous: no file backs it,
// so nothing written to it is persisted.
//
// # Usage
//
//	region, err := arena.New(1 << 20)
//	if err != nil { ... }
//	defer arena.Release(region)
//	h := bareheap.New(region)
package arena
