// Package dirty tracks byte ranges modified in a heap's backing storage
// and flushes them to durable storage with platform msync/FlushViewOfFile
// calls.
//
// # Overview
//
// A bareheap.Heap backed by a plain Go slice has nothing to flush — its
// storage only lives in process memory. A Heap backed by a shared mapping
// of a file is different: the backing pages are shared with the kernel's
// page cache, and the host may want to msync them incrementally rather
// than on every single header write. Tracker accumulates the byte ranges a
// Heap reports via its DirtyTracker hook and flushes them in one batch,
// coalesced into page-aligned spans to minimize syscalls. A region from
// arena.New is an anonymous mapping with no file behind it, so flushing it
// succeeds but writes nothing to disk; the example below only shows the
// wiring.
//
// # Usage
//
//	region, _ := arena.New(1 << 20)
//	h := bareheap.New(region)
//	t := dirty.NewTracker()
//	h.SetDirtyTracker(t)
//	// ... allocate and free through h ...
//	t.Flush(region)
//
// # Thread safety
//
// Tracker is not safe for concurrent use, matching Heap itself.
package dirty
