package verify

import (
	"fmt"

	"github.com/maxgonick/segheap/heap/alloc"
	"github.com/maxgonick/segheap/internal/format"
)

// Problem describes one violated invariant.
type Problem struct {
	Check  string // category, e.g. "heap", "freelist"
	Offset int    // block or list-head offset, -1 if not applicable
	Msg    string
}

func (p *Problem) Error() string {
	if p.Offset < 0 {
		return fmt.Sprintf("verify: %s: %s", p.Check, p.Msg)
	}
	return fmt.Sprintf("verify: %s: offset %d: %s", p.Check, p.Offset, p.Msg)
}

func heapProblem(off int, msg string, args ...any) error {
	return &Problem{Check: "heap", Offset: off, Msg: fmt.Sprintf(msg, args...)}
}

func listProblem(off int, msg string, args ...any) error {
	return &Problem{Check: "freelist", Offset: off, Msg: fmt.Sprintf(msg, args...)}
}

// All runs every validation category.
func All(data []byte) []error {
	errs := Heap(data)
	errs = append(errs, FreeLists(data)...)
	return errs
}

// Heap validates the block structure: the prologue and epilogue sentinels,
// header/footer agreement and payload alignment for every block, the
// absence of adjacent free blocks, and that the block sizes sum to the
// region size minus the head array.
func Heap(data []byte) []error {
	var errs []error

	minLen := alloc.HeadArraySize + 2*format.WordSize
	if len(data) < minLen {
		return []error{heapProblem(-1, "region too small: %d bytes", len(data))}
	}

	prologue := alloc.HeadArraySize
	psize, palloc := format.ReadWord(data, prologue)
	if psize != format.WordSize || !palloc {
		errs = append(errs, heapProblem(prologue, "bad prologue [%d:%v]", psize, palloc))
	}

	sum := format.WordSize // prologue
	prevWasFree := false
	b := prologue + format.WordSize
	for {
		if b+format.WordSize > len(data) {
			errs = append(errs, heapProblem(b, "walk ran past end of region"))
			return errs
		}
		size, allocated := format.ReadWord(data, b)
		if size == 0 {
			if !allocated {
				errs = append(errs, heapProblem(b, "epilogue not marked allocated"))
			}
			if b != len(data)-format.WordSize {
				errs = append(errs, heapProblem(b, "epilogue not at end of region"))
			}
			break
		}
		if size < alloc.MinBlockSize || !format.Aligned8(size) {
			errs = append(errs, heapProblem(b, "bad block size %d", size))
			return errs
		}
		if !format.Aligned8(b + format.WordSize) {
			errs = append(errs, heapProblem(b, "payload not 8-byte aligned"))
		}
		if b+size > len(data)-format.WordSize {
			errs = append(errs, heapProblem(b, "block overruns region"))
			return errs
		}
		fsize, falloc := format.ReadWord(data, b+size-format.WordSize)
		if fsize != size || falloc != allocated {
			errs = append(errs, heapProblem(b,
				"footer [%d:%v] does not match header [%d:%v]", fsize, falloc, size, allocated))
		}
		if !allocated && prevWasFree {
			errs = append(errs, heapProblem(b, "adjacent free blocks"))
		}
		prevWasFree = !allocated
		sum += size
		b += size
	}
	sum += format.WordSize // epilogue

	if want := len(data) - alloc.HeadArraySize; sum != want {
		errs = append(errs, heapProblem(-1, "block sizes sum to %d, want %d", sum, want))
	}
	return errs
}

// FreeLists validates every segregated list: head.prev is null, links are
// mutually consistent, members are free blocks of the matching class, no
// block appears twice, and the lists cover exactly the free blocks found by
// walking the heap.
func FreeLists(data []byte) []error {
	var errs []error

	// Free blocks according to the heap walk.
	walked := make(map[int]int) // block offset -> size
	b := alloc.HeadArraySize + format.WordSize
	for b+format.WordSize <= len(data) {
		size, allocated := format.ReadWord(data, b)
		if size == 0 {
			break
		}
		if size < alloc.MinBlockSize || b+size > len(data)-format.WordSize {
			// Heap reports structural damage; the list check cannot proceed.
			return errs
		}
		if !allocated {
			walked[b] = size
		}
		b += size
	}

	listed := make(map[int]bool)
	for k := 0; k < alloc.NumClasses; k++ {
		headSlot := k * format.WordSize
		prev := 0
		n := int(format.ReadU64(data, headSlot))
		for steps := 0; n != 0; steps++ {
			if steps > len(data)/alloc.MinBlockSize {
				errs = append(errs, listProblem(headSlot, "class %d: list does not terminate", k))
				break
			}
			if listed[n] {
				errs = append(errs, listProblem(n, "block linked more than once"))
				break
			}
			listed[n] = true

			size, ok := walked[n]
			if !ok {
				errs = append(errs, listProblem(n, "class %d: listed block is not a free block", k))
				break
			}
			if alloc.SizeClass(size) != k {
				errs = append(errs, listProblem(n,
					"size %d belongs in class %d, found in class %d", size, alloc.SizeClass(size), k))
			}
			if got := int(format.ReadU64(data, n+2*format.WordSize)); got != prev {
				errs = append(errs, listProblem(n, "prev link is %d, want %d", got, prev))
			}
			prev = n
			n = int(format.ReadU64(data, n+format.WordSize))
		}
	}

	for off := range walked {
		if !listed[off] {
			errs = append(errs, listProblem(off, "free block missing from its class list"))
		}
	}
	return errs
}
