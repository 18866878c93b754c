package bareheap

import "unsafe"

// DirtyTracker receives the byte ranges the raw allocator touches, so a
// host backing the heap with persistent storage (a memory-mapped file, for
// example) knows exactly what to flush. A nil tracker disables this
// entirely; nothing about the allocation algorithm depends on it.
type DirtyTracker interface {
	Add(off, length int)
}

// rawAllocator implements the best-fit, split-on-alloc,
// right-coalesce-on-free algorithm over a single buffer. It has no
// knowledge of alignment or of the zero-size/sentinel-pointer rules; those
// are the alignment adapter's concern (see Heap).
type rawAllocator struct {
	buf     *buffer
	tracker DirtyTracker
}

func newRawAllocator(data []byte) *rawAllocator {
	return &rawAllocator{buf: newBuffer(data)}
}

func roundUp4(n uint32) uint32 {
	return (n + 3) &^ 3
}

func (r *rawAllocator) markDirty(o offset, length uint32) {
	if r.tracker == nil {
		return
	}
	r.tracker.Add(int(o), int(length))
}

// alloc finds the best-fitting free record for n bytes (rounded up to a
// multiple of 4), splits it if worthwhile, and returns the payload slice.
// It reports false if no free record is large enough.
//
// Best fit means: the smallest free record that still satisfies the
// request, breaking ties by lowest offset. Iterating entries() in storage
// order and only replacing the current best on a strictly smaller size
// gives the lowest-offset record automatically on ties. An exact size
// match ends the scan immediately, since nothing can beat it.
func (r *rawAllocator) alloc(n uint32) ([]byte, bool) {
	n = roundUp4(n)

	var best offset
	var bestEntry entry
	found := false

	for o := range r.buf.entries() {
		e := r.buf.headerAt(o)
		if e.state() != stateFree || e.size < n {
			continue
		}
		if e.size == n {
			best, bestEntry, found = o, e, true
			break
		}
		if !found || e.size < bestEntry.size {
			best, bestEntry, found = o, e, true
		}
	}
	if !found {
		return nil, false
	}

	remainder := bestEntry.size - n
	if remainder == 0 {
		r.buf.setHeaderAt(best, entryUsed(bestEntry.size))
		r.markDirty(best, headerSize)
	} else {
		r.buf.setHeaderAt(best, entryUsed(n))
		tailOff := offset(uint32(best) + headerSize + n)
		r.buf.setHeaderAt(tailOff, entryFree(remainder-headerSize))
		r.markDirty(best, headerSize)
		r.markDirty(tailOff, headerSize)
	}
	return r.buf.payloadOf(best), true
}

// free locates the used record containing ptr and marks it free, then
// coalesces it with its immediate right neighbor if that neighbor is also
// free. It reports ErrAllocationNotFound if ptr falls inside no record's
// payload, and ErrDoubleFreeDetected if the containing record is already
// free.
func (r *rawAllocator) free(ptr unsafe.Pointer) error {
	base := uintptr(unsafe.Pointer(&r.buf.data[0]))
	target := uintptr(ptr)

	for o := range r.buf.entries() {
		e := r.buf.headerAt(o)
		payloadStart := base + uintptr(o) + headerSize
		payloadEnd := payloadStart + uintptr(e.size)
		if target < payloadStart || target >= payloadEnd {
			continue
		}
		if e.state() == stateFree {
			return ErrDoubleFreeDetected
		}
		r.buf.setHeaderAt(o, entryFree(e.size))
		r.markDirty(o, headerSize)
		r.coalesceRight(o)
		return nil
	}
	return ErrAllocationNotFound
}

// coalesceRight merges the free record at o with its immediate successor
// if that successor is also free. Left neighbors are never consulted: the
// record starting at o has no back-pointer to its own predecessor, and
// finding one would require a linear rescan from offset 0. The resulting
// fragmentation from two adjacent free records that both arrived at
// freeness independently is accepted, not corrected.
func (r *rawAllocator) coalesceRight(o offset) {
	next, ok := r.buf.followingOffset(o)
	if !ok {
		return
	}
	e := r.buf.headerAt(o)
	ne := r.buf.headerAt(next)
	if ne.state() != stateFree {
		return
	}
	merged := e.size + headerSize + ne.size
	r.buf.setHeaderAt(o, entryFree(merged))
	r.markDirty(o, headerSize)
}
