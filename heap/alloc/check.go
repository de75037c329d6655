package alloc

import (
	"fmt"
	"io"

	"github.com/maxgonick/segheap/internal/format"
)

// CheckHeap walks the heap and writes consistency diagnostics to w,
// returning the number of problems found. With verbose set it also prints
// every block. It never aborts; the verify package offers the same
// invariants as structured errors for tests.
func (a *Allocator) CheckHeap(w io.Writer, verbose bool) int {
	data := a.mem.Bytes()
	problems := 0

	if verbose {
		fmt.Fprintf(w, "heap (%d bytes):\n", len(data))
	}

	psize, palloc := format.ReadWord(data, prologueOff)
	if psize != format.WordSize || !palloc {
		fmt.Fprintf(w, "bad prologue header\n")
		problems++
	}

	prevWasFree := false
	b := firstBlockOff
	for {
		if b+format.WordSize > len(data) {
			fmt.Fprintf(w, "block %d: walked past end of heap\n", b)
			problems++
			return problems
		}
		size, allocated := format.ReadWord(data, b)
		if size == 0 {
			break
		}
		if verbose {
			a.printBlock(w, data, b)
		}
		problems += checkBlock(w, data, b)
		if !allocated {
			if prevWasFree {
				fmt.Fprintf(w, "block %d: adjacent free blocks\n", b)
				problems++
			}
			prevWasFree = true
		} else {
			prevWasFree = false
		}
		b += size
	}

	if verbose {
		a.printBlock(w, data, b)
	}
	esize, ealloc := format.ReadWord(data, b)
	if esize != 0 || !ealloc || b != len(data)-format.WordSize {
		fmt.Fprintf(w, "bad epilogue header\n")
		problems++
	}
	return problems
}

func (a *Allocator) printBlock(w io.Writer, data []byte, b int) {
	hsize, halloc := format.ReadWord(data, b)
	if hsize == 0 {
		fmt.Fprintf(w, "%8d: EOL\n", b)
		return
	}
	fsize, falloc := format.ReadWord(data, b+hsize-format.WordSize)
	fmt.Fprintf(w, "%8d: header [%d:%c] footer [%d:%c]\n",
		b, hsize, flagChar(halloc), fsize, flagChar(falloc))
}

func checkBlock(w io.Writer, data []byte, b int) int {
	problems := 0
	size, allocated := format.ReadWord(data, b)
	if !format.Aligned8(b + format.WordSize) {
		fmt.Fprintf(w, "block %d: payload not aligned\n", b)
		problems++
	}
	if size < MinBlockSize || !format.Aligned8(size) {
		fmt.Fprintf(w, "block %d: bad size %d\n", b, size)
		problems++
		return problems
	}
	if b+size > len(data) {
		fmt.Fprintf(w, "block %d: size %d overruns heap\n", b, size)
		problems++
		return problems
	}
	fsize, falloc := format.ReadWord(data, b+size-format.WordSize)
	if fsize != size || falloc != allocated {
		fmt.Fprintf(w, "block %d: header does not match footer\n", b)
		problems++
	}
	return problems
}

func flagChar(allocated bool) byte {
	if allocated {
		return 'a'
	}
	return 'f'
}
