package alloc

import "github.com/maxgonick/segheap/internal/format"

// coalesce merges the just-freed block b with up to two adjacent free
// neighbors and returns the surviving block. b must already be free and on
// the list matching its size; every pop and push below uses the class
// derived from the block's size at that instant.
//
// The prologue and epilogue sentinels are permanently allocated, so the
// previous footer and next header are always readable and the merge cases
// degrade gracefully at the heap edges.
func (a *Allocator) coalesce(data []byte, b int) int {
	size := blockSize(data, b)
	next := nextBlock(data, b)
	pSize, pAlloc := format.ReadWord(data, b-format.WordSize) // previous footer
	nSize, nAlloc := format.ReadWord(data, next)              // next header

	switch {
	case pAlloc && nAlloc: // case 1: both neighbors allocated
		return b

	case pAlloc && !nAlloc: // case 2: absorb next
		a.pop(data, b, SizeClass(size))
		a.pop(data, next, SizeClass(nSize))
		size += nSize
		writeBlock(data, b, size, false)
		a.push(data, b, SizeClass(size))
		a.stats.CoalesceForward++
		return b

	case !pAlloc && nAlloc: // case 3: merge into previous
		prev := b - pSize
		a.pop(data, b, SizeClass(size))
		a.pop(data, prev, SizeClass(pSize))
		size += pSize
		writeBlock(data, prev, size, false)
		a.push(data, prev, SizeClass(size))
		a.stats.CoalesceBackward++
		return prev

	default: // case 4: merge all three into previous
		prev := b - pSize
		a.pop(data, prev, SizeClass(pSize))
		a.pop(data, b, SizeClass(size))
		a.pop(data, next, SizeClass(nSize))
		size += pSize + nSize
		writeBlock(data, prev, size, false)
		a.push(data, prev, SizeClass(size))
		a.stats.CoalesceForward++
		a.stats.CoalesceBackward++
		return prev
	}
}
