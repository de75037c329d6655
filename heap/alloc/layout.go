package alloc

import "github.com/maxgonick/segheap/internal/format"

// Block layout and boundary-tag address arithmetic. A block reference is
// the offset of its header word within the heap region; the payload starts
// one word later. Pure arithmetic, no allocator state.

const (
	// Overhead is the bookkeeping cost of a block: header plus footer.
	Overhead = 2 * format.WordSize

	// MinBlockSize is the smallest legal block: header, footer, and the
	// two free-list link slots.
	MinBlockSize = 32

	// HeadArraySize is the in-band segregated-list head array at the base
	// of the region.
	HeadArraySize = NumClasses * format.WordSize

	// prologueOff is the offset of the prologue sentinel header.
	prologueOff = HeadArraySize

	// firstBlockOff is the offset of the first real block.
	firstBlockOff = prologueOff + format.WordSize
)

// blockSize returns the total size of the block at b.
func blockSize(data []byte, b int) int {
	size, _ := format.ReadWord(data, b)
	return size
}

// blockAllocated reports the allocated flag of the block at b.
func blockAllocated(data []byte, b int) bool {
	_, allocated := format.ReadWord(data, b)
	return allocated
}

// footerOf returns the footer offset of the block at b.
func footerOf(data []byte, b int) int {
	return b + blockSize(data, b) - format.WordSize
}

// nextBlock returns the block starting where b ends. Valid for any
// non-epilogue block.
func nextBlock(data []byte, b int) int {
	return b + blockSize(data, b)
}

// prevBlock returns the block ending just before b by reading the footer
// word immediately preceding b's header. Valid for any non-prologue block;
// correct only because allocated blocks maintain truthful footers.
func prevBlock(data []byte, b int) int {
	psize, _ := format.ReadWord(data, b-format.WordSize)
	return b - psize
}

// writeBlock writes matching header and footer for a block of the given
// size at b. The free-list link slots are left untouched.
func writeBlock(data []byte, b, size int, allocated bool) {
	format.PutWord(data, b, size, allocated)
	format.PutWord(data, b+size-format.WordSize, size, allocated)
}
