package dirty

import "sort"

const defaultRangeCapacity = 64

// Range is a dirty byte range, offsets relative to the start of the
// tracked backing storage.
type Range struct {
	Off int
	Len int
}

// DirtyTracker is the interface a bareheap.Heap expects of its tracker:
// just a way to report a dirty range. It exists so bareheap never has to
// import this package — any type with an Add method, including *Tracker,
// satisfies bareheap.DirtyTracker structurally.
type DirtyTracker interface {
	Add(off, length int)
}

// FlushableTracker extends DirtyTracker with the ability to persist what
// it has recorded.
type FlushableTracker interface {
	DirtyTracker
	Flush(data []byte) error
}

// Tracker accumulates dirty ranges reported by a Heap and flushes them with
// msync (FlushViewOfFile on Windows) in one coalesced batch.
//
// Not thread-safe. Only one goroutine should drive a Tracker at a time,
// matching the Heap it is attached to.
type Tracker struct {
	ranges   []Range
	pageSize int
}

// NewTracker creates an empty tracker using the standard 4KB page size.
func NewTracker() *Tracker {
	return &Tracker{
		ranges:   make([]Range, 0, defaultRangeCapacity),
		pageSize: 4096,
	}
}

// Add records a dirty range. It only appends to a slice, so it is safe to
// call on every header write without worrying about cost.
func (t *Tracker) Add(off, length int) {
	t.ranges = append(t.ranges, Range{Off: off, Len: length})
}

// Reset discards all recorded ranges without flushing them.
func (t *Tracker) Reset() {
	t.ranges = t.ranges[:0]
}

// DebugRanges returns the raw, uncoalesced ranges recorded so far.
func (t *Tracker) DebugRanges() []Range {
	out := make([]Range, len(t.ranges))
	copy(out, t.ranges)
	return out
}

// Ranges returns the current dirty ranges, page-aligned, sorted, and
// merged where they overlap or touch.
func (t *Tracker) Ranges() []Range {
	return t.coalesce()
}

// Flush msyncs every coalesced dirty range against data, then clears the
// tracker. data must be the same backing storage the offsets were
// recorded against (typically an arena.New region).
func (t *Tracker) Flush(data []byte) error {
	if len(t.ranges) == 0 {
		return nil
	}
	for _, r := range t.coalesce() {
		start, end := r.Off, r.Off+r.Len
		if end > len(data) {
			end = len(data)
		}
		if start >= end {
			continue
		}
		if err := msync(data[start:end]); err != nil {
			return err
		}
	}
	t.Reset()
	return nil
}

// coalesce page-aligns every recorded range, sorts them, and merges
// overlapping or adjacent ones into the minimal set of spans covering the
// same bytes.
func (t *Tracker) coalesce() []Range {
	if len(t.ranges) == 0 {
		return nil
	}

	aligned := make([]Range, len(t.ranges))
	for i, r := range t.ranges {
		start := (r.Off / t.pageSize) * t.pageSize
		end := r.Off + r.Len
		if end%t.pageSize != 0 {
			end = (end/t.pageSize + 1) * t.pageSize
		}
		aligned[i] = Range{Off: start, Len: end - start}
	}

	sort.Slice(aligned, func(i, j int) bool { return aligned[i].Off < aligned[j].Off })

	merged := make([]Range, 0, len(aligned))
	current := aligned[0]
	for _, next := range aligned[1:] {
		if next.Off <= current.Off+current.Len {
			if end := next.Off + next.Len; end > current.Off+current.Len {
				current.Len = end - current.Off
			}
			continue
		}
		merged = append(merged, current)
		current = next
	}
	merged = append(merged, current)
	return merged
}
