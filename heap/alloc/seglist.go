package alloc

import "github.com/maxgonick/segheap/internal/format"

// Segregated free lists. The NumClasses list heads occupy the first words
// of the heap region; each free block carries next and prev link slots in
// the first two payload words. All links are block offsets, with 0 as the
// null reference (offset 0 is inside the head array and never names a
// block).

func headOf(data []byte, k int) int {
	return int(format.ReadU64(data, k*format.WordSize))
}

func setHead(data []byte, k, b int) {
	format.PutU64(data, k*format.WordSize, uint64(b))
}

func nextFree(data []byte, b int) int {
	return int(format.ReadU64(data, b+format.WordSize))
}

func prevFree(data []byte, b int) int {
	return int(format.ReadU64(data, b+2*format.WordSize))
}

func setNextFree(data []byte, b, n int) {
	format.PutU64(data, b+format.WordSize, uint64(n))
}

func setPrevFree(data []byte, b, p int) {
	format.PutU64(data, b+2*format.WordSize, uint64(p))
}

// push inserts b at the head of list k (LIFO). b must not currently be on
// any list.
func (a *Allocator) push(data []byte, b, k int) {
	old := headOf(data, k)
	setNextFree(data, b, old)
	setPrevFree(data, b, 0)
	if old != 0 {
		setPrevFree(data, old, b)
	}
	setHead(data, k, b)
}

// pop unlinks b from list k using its in-band links. k must be the class
// matching b's current size.
func (a *Allocator) pop(data []byte, b, k int) {
	p := prevFree(data, b)
	n := nextFree(data, b)
	switch {
	case p == 0 && n == 0:
		// sole element
		setHead(data, k, 0)
	case p == 0:
		// first element
		setHead(data, k, n)
		setPrevFree(data, n, 0)
	case n == 0:
		// last element
		setNextFree(data, p, 0)
	default:
		setNextFree(data, p, n)
		setPrevFree(data, n, p)
	}
	setNextFree(data, b, 0)
	setPrevFree(data, b, 0)
}

// firstFit returns the first free block with size >= asize, searching the
// class for asize and then every larger class in insertion (LIFO) order.
// Returns 0 if no block fits.
func (a *Allocator) firstFit(data []byte, asize int) int {
	for k := SizeClass(asize); k < NumClasses; k++ {
		for b := headOf(data, k); b != 0; b = nextFree(data, b) {
			if blockSize(data, b) >= asize {
				return b
			}
		}
	}
	return 0
}
