package format

import "encoding/binary"

// Binary encoding for heap boundary-tag words.
//
// Every block header and footer is a little-endian 64-bit word. The low 32
// bits carry a 1-bit allocated flag (bit 0) and a 31-bit block size
// (bits 1-31); the high 4 bytes are reserved padding that keeps payloads
// 8-byte aligned. The word layout is a wire format: it lives in memory the
// client can see, so it is read and written through explicit mask/shift
// accessors rather than any struct layout.
//
// Implementation: encoding/binary.LittleEndian. The compiler inlines and
// optimizes these calls well; unsafe variants measured no faster.

const (
	// WordSize is the size in bytes of a header or footer word.
	WordSize = 8

	// allocBit is the allocated flag in the low 32 bits of a word.
	allocBit = 0x1

	// sizeShift positions the 31-bit size field above the allocated flag.
	sizeShift = 1

	// MaxBlockSize is the largest encodable block size (31-bit field).
	MaxBlockSize = 1<<31 - 1
)

// PutWord writes a boundary-tag word at off encoding size and the allocated flag.
func PutWord(b []byte, off int, size int, allocated bool) {
	w := uint64(uint32(size)) << sizeShift
	if allocated {
		w |= allocBit
	}
	binary.LittleEndian.PutUint64(b[off:off+WordSize], w)
}

// ReadWord decodes the boundary-tag word at off.
func ReadWord(b []byte, off int) (size int, allocated bool) {
	w := binary.LittleEndian.Uint64(b[off : off+WordSize])
	return int(uint32(w) >> sizeShift), w&allocBit != 0
}

// PutU64 writes a uint64 value at off in little-endian format.
// Used for the in-band free-list link slots and list heads.
func PutU64(b []byte, off int, v uint64) {
	binary.LittleEndian.PutUint64(b[off:off+WordSize], v)
}

// ReadU64 reads a uint64 value at off in little-endian format.
func ReadU64(b []byte, off int) uint64 {
	return binary.LittleEndian.Uint64(b[off : off+WordSize])
}
