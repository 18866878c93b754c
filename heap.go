// Package bareheap implements a fixed-capacity, single-threaded heap
// allocator over a caller-supplied byte slice: no dynamic growth, no
// syscalls, no dependency on an OS allocator underneath it. It is meant
// for hosts that already know their worst-case memory budget up front —
// embedded firmware, arena-style request scratch space, anything that
// wants malloc/free semantics without trusting the platform allocator.
//
// # Overview
//
// Heap is the allocator type; RecordView and DirtyTracker only serve its
// Dump and SetDirtyTracker methods. Heap wraps a best-fit, split-on-alloc,
// right-coalesce-on-free record allocator (rawAllocator) with an
// alignment- and zero-size-aware public contract, mirroring the shape of
// core::alloc::GlobalAlloc: Alloc takes a size and alignment and returns a
// pointer; Dealloc takes the same size and alignment back and frees it.
//
// # Algorithm
//
// Every live or free region of the backing slice is a record: a 4-byte
// header encoding state (free/used) and payload size, followed by that
// many payload bytes. Alloc does a linear best-fit scan over records in
// storage order, splitting the chosen record if the remainder is large
// enough to host another header. Dealloc marks the containing record free
// and merges it with its immediate right neighbor if that neighbor is
// also free. Left neighbors are never consulted, so two free records can
// end up adjacent without being merged — accepted fragmentation, not a
// bug; see rawAllocator.coalesceRight.
//
// # Alignment
//
// The backing slice is naturally 4-byte aligned by construction (every
// record boundary is a multiple of 4), so requests with alignment <= 4
// cost nothing extra. Alignment stronger than that is satisfied by
// over-allocation: Alloc requests size+align-4 bytes from the raw
// allocator and returns the smallest pointer at or after the payload start
// that is congruent to 0 modulo align, wasting at most align-4 bytes ahead
// of the returned pointer inside the record's payload. Dealloc forwards
// that (possibly interior) pointer unchanged, since the raw allocator's
// free locates a record by containment anywhere in its payload.
//
// # Zero-size requests
//
// A zero-size Alloc never touches the underlying allocator: it returns a
// non-null sentinel pointer whose address equals the requested alignment,
// the same trick Go's own runtime uses for its zerobase allocations.
// Dealloc recognizes a zero-size request and is a no-op for it.
//
// # Thread safety
//
// None. A Heap must not be used from more than one goroutine without
// external synchronization.
//
// # Related packages
//
//   - github.com/minihive/bareheap/arena: OS-backed backing storage via mmap.
//   - github.com/minihive/bareheap/dirty: byte-range tracking and msync
//     flushing for a heap whose backing storage is a file mapping.
package bareheap

import (
	"log/slog"
	"unsafe"

	"github.com/minihive/bareheap/internal/trace"
)

// minCapacity is the smallest buffer New will accept: one header plus one
// 4-byte payload.
const minCapacity = 8

// Heap is a fixed-capacity allocator over a single backing byte slice.
type Heap struct {
	raw    *rawAllocator
	logger *slog.Logger
}

// New wraps buf as a heap. len(buf) must be at least 8 and a multiple of
// 4; New panics otherwise, since both are programming errors the caller
// must fix, not conditions a recoverable error would help with.
//
// buf is typically a package-level array the host places in static
// storage (Go has no const generics, so the "compile-time capacity" of
// the original design becomes an ordinary slice length chosen by the
// caller at construction time).
func New(buf []byte) *Heap {
	if len(buf) < minCapacity {
		panic("bareheap: heap too small: minimum size is 8 bytes")
	}
	if len(buf)%4 != 0 {
		panic("bareheap: heap size must be a multiple of 4")
	}
	return &Heap{
		raw:    newRawAllocator(buf),
		logger: trace.Default(),
	}
}

// NewCapacity allocates a fresh n-byte backing slice and wraps it as a
// heap. It panics under the same conditions as New.
func NewCapacity(n int) *Heap {
	return New(make([]byte, n))
}

// SetLogger directs debug-level allocation tracing to l. Passing nil
// restores the default discarding logger. This never affects allocator
// behavior, only observability.
func (h *Heap) SetLogger(l *slog.Logger) {
	if l == nil {
		l = trace.Default()
	}
	h.logger = l
}

// SetDirtyTracker attaches t so every header write the allocator performs
// reports its byte range. Pass nil to detach. See package dirty for a
// ready-made tracker suited to mmap-backed heaps.
func (h *Heap) SetDirtyTracker(t DirtyTracker) {
	h.raw.tracker = t
}

// Alloc reserves size bytes aligned to align and returns a pointer to
// them, or nil if the heap has no free record large enough. align must be
// a power of two; Alloc panics otherwise.
//
// For align <= 4, the raw allocator's own payload alignment already
// satisfies the request, so Alloc forwards size unchanged. For align > 4,
// Alloc over-allocates by align-4 bytes and returns the up-aligned pointer
// inside the resulting payload, per the alignment adapter's over-allocation
// algorithm.
func (h *Heap) Alloc(size, align uintptr) unsafe.Pointer {
	if align == 0 || align&(align-1) != 0 {
		panic("bareheap: alignment must be a power of two")
	}
	if size == 0 {
		h.logger.Debug("alloc zero-size", "align", align)
		return unsafe.Pointer(align)
	}

	n := size
	if align > headerSize {
		n = size + align - headerSize
	}
	payload, ok := h.raw.alloc(uint32(n))
	if !ok {
		h.logger.Debug("alloc failed", "size", size, "align", align)
		return nil
	}
	base := unsafe.Pointer(&payload[0])
	waste := (align - uintptr(base)%align) % align
	ptr := unsafe.Pointer(uintptr(base) + waste)
	h.logger.Debug("alloc", "size", size, "align", align, "ptr", ptr)
	return ptr
}

// Dealloc releases the allocation at ptr, previously returned by Alloc
// with the same size and align. Passing a pointer that does not own an
// allocation, or one already freed, is a caller error and panics — the
// same contract core::alloc::GlobalAlloc imposes on its dealloc method.
func (h *Heap) Dealloc(ptr unsafe.Pointer, size, align uintptr) {
	if size == 0 {
		h.logger.Debug("dealloc zero-size", "align", align)
		return
	}
	if err := h.raw.free(ptr); err != nil {
		panic(err)
	}
	h.logger.Debug("dealloc", "size", size, "align", align, "ptr", ptr)
}

// RecordView is a read-only snapshot of one record: its offset within the
// backing buffer, its state, and its payload size. Dump uses it to expose
// the buffer's layout for introspection and testing without leaking the
// package's unexported offset/entry types.
type RecordView struct {
	Offset uint32
	Used   bool
	Size   uint32
}

// Dump returns a snapshot of every record in the heap, in storage order.
// It is read-only introspection, not a metrics subsystem: nothing in the
// package consults it to make allocation decisions.
func (h *Heap) Dump() []RecordView {
	var views []RecordView
	for o := range h.raw.buf.entries() {
		e := h.raw.buf.headerAt(o)
		views = append(views, RecordView{
			Offset: uint32(o),
			Used:   e.state() == stateUsed,
			Size:   e.size,
		})
	}
	return views
}
