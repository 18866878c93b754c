package bareheap

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dumpShape(h *Heap) []RecordView {
	views := h.Dump()
	for i := range views {
		views[i].Offset = 0 // shape comparisons below only care about used/size
	}
	return views
}

func rv(used bool, size uint32) RecordView {
	return RecordView{Used: used, Size: size}
}

// TestWalkthrough_MatchesOriginalDocExample reproduces, step by step, the
// twelve-step worked example from the algorithm's original design
// documentation: a 32-byte heap (4-byte header + 28 payload bytes) taken
// through a sequence of allocations and frees that ends with two adjacent
// but unmerged free records, the canonical illustration of why only
// right-coalescing is performed.
func TestWalkthrough_MatchesOriginalDocExample(t *testing.T) {
	h := NewCapacity(32)
	assert.Equal(t, []RecordView{rv(false, 28)}, dumpShape(h))

	// 2. alloc 8 -> splits the only free record.
	a := h.Alloc(8, 4)
	require.NotNil(t, a)
	assert.Equal(t, []RecordView{rv(true, 8), rv(false, 16)}, dumpShape(h))

	// 3. alloc 4 -> splits again.
	b := h.Alloc(4, 4)
	require.NotNil(t, b)
	assert.Equal(t, []RecordView{rv(true, 8), rv(true, 4), rv(false, 8)}, dumpShape(h))

	// 4. alloc 16 -> fails, not enough contiguous free space.
	assert.Nil(t, h.Alloc(16, 4))
	assert.Equal(t, []RecordView{rv(true, 8), rv(true, 4), rv(false, 8)}, dumpShape(h))

	// 5. alloc 5 (rounds to 8) -> absorbs the last free record whole.
	c := h.Alloc(5, 4)
	require.NotNil(t, c)
	assert.Equal(t, []RecordView{rv(true, 8), rv(true, 4), rv(true, 8)}, dumpShape(h))

	// 6. alloc 1 -> fails, heap is full.
	assert.Nil(t, h.Alloc(1, 4))

	// 7. free C -> restores the step-3 picture.
	h.Dealloc(c, 5, 4)
	assert.Equal(t, []RecordView{rv(true, 8), rv(true, 4), rv(false, 8)}, dumpShape(h))

	// 8. free A -> A's slot goes free; no left-neighbor to merge with.
	h.Dealloc(a, 8, 4)
	assert.Equal(t, []RecordView{rv(false, 8), rv(true, 4), rv(false, 8)}, dumpShape(h))

	// 9. alloc 8 -> two equally-sized free records tie; lowest offset wins.
	d := h.Alloc(8, 4)
	require.NotNil(t, d)
	assert.Equal(t, []RecordView{rv(true, 8), rv(true, 4), rv(false, 8)}, dumpShape(h))

	// 10. free B -> merges right with the trailing free record.
	h.Dealloc(b, 4, 4)
	assert.Equal(t, []RecordView{rv(true, 8), rv(false, 16)}, dumpShape(h))

	// 11a. alloc 8 (new block E) -> splits the merged free record.
	e := h.Alloc(8, 4)
	require.NotNil(t, e)
	assert.Equal(t, []RecordView{rv(true, 8), rv(true, 8), rv(false, 4)}, dumpShape(h))

	// 11b. free D (the first block) -> its right neighbor (E) is used, no merge.
	h.Dealloc(d, 8, 4)
	assert.Equal(t, []RecordView{rv(false, 8), rv(true, 8), rv(false, 4)}, dumpShape(h))

	// 12. free E -> merges right with the trailing free record, leaving two
	// adjacent free records that nothing will ever merge into one, since
	// left-coalescing is not performed.
	h.Dealloc(e, 8, 4)
	assert.Equal(t, []RecordView{rv(false, 8), rv(false, 16)}, dumpShape(h))
}

func TestHeap_NewPanicsOnTooSmallBuffer(t *testing.T) {
	assert.Panics(t, func() { NewCapacity(4) })
}

func TestHeap_NewPanicsOnMisalignedBuffer(t *testing.T) {
	assert.Panics(t, func() { NewCapacity(9) })
}

func TestHeap_AllocZeroSizeReturnsSentinel(t *testing.T) {
	h := NewCapacity(16)
	p := h.Alloc(0, 4)
	assert.Equal(t, unsafe.Pointer(uintptr(4)), p)
	// distinct alignments produce distinct sentinels
	p1 := h.Alloc(0, 1)
	assert.Equal(t, unsafe.Pointer(uintptr(1)), p1)
}

func TestHeap_DeallocZeroSizeIsNoop(t *testing.T) {
	h := NewCapacity(16)
	p := h.Alloc(0, 4)
	assert.NotPanics(t, func() { h.Dealloc(p, 0, 4) })
}

func TestHeap_AllocRejectsNonPowerOfTwoAlignment(t *testing.T) {
	h := NewCapacity(16)
	assert.Panics(t, func() { h.Alloc(4, 3) })
}

// TestHeap_AllocOverAlignmentSatisfiesAndRestoresOnFree mirrors the
// alignment-adapter scenario from the algorithm's original design
// documentation: on a 64-byte heap, alloc(size=1, alignment=16) returns a
// 16-byte-aligned pointer, and freeing it restores a single Free(60)
// record.
func TestHeap_AllocOverAlignmentSatisfiesAndRestoresOnFree(t *testing.T) {
	h := NewCapacity(64)

	p := h.Alloc(1, 16)
	require.NotNil(t, p)
	assert.Equal(t, uintptr(0), uintptr(p)%16)

	h.Dealloc(p, 1, 16)
	assert.Equal(t, []RecordView{rv(false, 60)}, dumpShape(h))
}

func TestHeap_AllocOverAlignmentWastesAtMostAlignMinusHeaderBytes(t *testing.T) {
	h := NewCapacity(64)

	p := h.Alloc(1, 16)
	require.NotNil(t, p)

	payloadStart := uintptr(unsafe.Pointer(&h.raw.buf.data[headerSize]))
	assert.Less(t, uintptr(p)-payloadStart, uintptr(16-headerSize+1))
}

func TestHeap_DeallocOfUnknownPointerPanics(t *testing.T) {
	h := NewCapacity(16)
	var stray byte
	assert.Panics(t, func() { h.Dealloc(unsafe.Pointer(&stray), 4, 4) })
}

func TestHeap_DeallocDoubleFreePanics(t *testing.T) {
	h := NewCapacity(16)
	p := h.Alloc(4, 4)
	require.NotNil(t, p)
	h.Dealloc(p, 4, 4)
	assert.Panics(t, func() { h.Dealloc(p, 4, 4) })
}

func TestHeap_DirtyTrackerReceivesWrites(t *testing.T) {
	h := NewCapacity(16)
	rt := &recordingTracker{}
	h.SetDirtyTracker(rt)

	p := h.Alloc(4, 4)
	require.NotNil(t, p)
	assert.NotEmpty(t, rt.ranges)

	before := len(rt.ranges)
	h.Dealloc(p, 4, 4)
	assert.Greater(t, len(rt.ranges), before)
}
