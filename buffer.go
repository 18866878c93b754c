package bareheap

import "iter"

// offset is a validated byte index into a buffer's backing storage: it is
// guaranteed, by construction, to point at the start of a real record
// header. Only this package can produce one, so code outside the package
// can never fabricate an offset that doesn't correspond to an actual
// record.
type offset uint32

// buffer owns the raw backing storage and exposes it only in terms of
// whole records addressed by validated offsets. It never interprets
// record contents beyond the 4-byte header.
type buffer struct {
	data []byte
}

// newBuffer wraps data as a fresh, single-record buffer: one free record
// spanning the entire capacity. It does not validate len(data); Heap.New
// does that before the raw allocator calls this.
func newBuffer(data []byte) *buffer {
	b := &buffer{data: data}
	putEntry(b.data, entryFree(uint32(len(data))-headerSize))
	return b
}

// headerAt decodes the record header at o.
func (b *buffer) headerAt(o offset) entry {
	return readEntry(b.data[o:])
}

// setHeaderAt overwrites the record header at o.
func (b *buffer) setHeaderAt(o offset, e entry) {
	putEntry(b.data[o:], e)
}

// payloadOf returns the payload bytes of the record at o, i.e. everything
// after its header. The returned slice aliases the buffer's storage.
func (b *buffer) payloadOf(o offset) []byte {
	e := b.headerAt(o)
	start := uint32(o) + headerSize
	return b.data[start : start+e.size]
}

// followingOffset returns the offset of the record immediately after o, or
// false if o's record runs to the end of the buffer.
func (b *buffer) followingOffset(o offset) (offset, bool) {
	e := b.headerAt(o)
	next := uint32(o) + e.recordSize()
	if next >= uint32(len(b.data)) {
		return 0, false
	}
	return offset(next), true
}

// entries yields every record's offset in ascending (storage) order. It is
// the validated-offset equivalent of a lazy forward iterator over the
// record list.
func (b *buffer) entries() iter.Seq[offset] {
	return func(yield func(offset) bool) {
		o := offset(0)
		for {
			if !yield(o) {
				return
			}
			next, ok := b.followingOffset(o)
			if !ok {
				return
			}
			o = next
		}
	}
}
