package bareheap

import "encoding/binary"

// headerSize is the number of bytes every record spends on its own
// bookkeeping, regardless of state.
const headerSize = 4

// state distinguishes a free record from one currently handed out to a
// caller.
type state uint8

const (
	stateFree state = iota
	stateUsed
)

// entry is the decoded form of a 4-byte record header: the record's state
// and the size of its payload (the bytes following the header, always a
// multiple of 4).
//
// The header packs both fields into a single little-endian uint32: the top
// bit is the state flag (1 = used, 0 = free) and the remaining 31 bits are
// the size. A sign-bit/two's-complement encoding was considered and
// rejected: it has no distinct representation for negative zero, so
// Used(0) and Free(0) would collide on the same raw value and the codec
// would not be a bijection at size 0.
type entry struct {
	st   state
	size uint32
}

// usedFlag marks a header's top bit to indicate the used state; the
// remaining bits hold the size.
const usedFlag = uint32(1) << 31

func entryFree(size uint32) entry {
	return entry{st: stateFree, size: size}
}

func entryUsed(size uint32) entry {
	return entry{st: stateUsed, size: size}
}

func (e entry) state() state {
	return e.st
}

// payloadSize returns the number of payload bytes following the header.
func (e entry) payloadSize() uint32 {
	return e.size
}

// recordSize returns the total footprint of the record, header included.
func (e entry) recordSize() uint32 {
	return headerSize + e.size
}

// asRaw packs the entry into its 4-byte on-buffer representation.
func (e entry) asRaw() uint32 {
	if e.st == stateUsed {
		return e.size | usedFlag
	}
	return e.size
}

// entryFromRaw decodes a 4-byte on-buffer representation back into an entry.
func entryFromRaw(raw uint32) entry {
	if raw&usedFlag != 0 {
		return entryUsed(raw &^ usedFlag)
	}
	return entryFree(raw)
}

// putEntry writes e's raw encoding into dst, which must be at least
// headerSize bytes long.
func putEntry(dst []byte, e entry) {
	binary.LittleEndian.PutUint32(dst, e.asRaw())
}

// readEntry decodes the header stored at the start of src, which must be
// at least headerSize bytes long.
func readEntry(src []byte) entry {
	return entryFromRaw(binary.LittleEndian.Uint32(src))
}
