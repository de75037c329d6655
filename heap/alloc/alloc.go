package alloc

import (
	"fmt"

	"github.com/maxgonick/segheap/heap"
	"github.com/maxgonick/segheap/internal/format"
)

const (
	// ChunkSize is the default heap extension and the initial free block
	// size (plus overhead).
	ChunkSize = 1 << 16

	// FastPathMax is the largest adjusted block size served by the
	// small-request growth path.
	FastPathMax = 96
)

// Ref is a payload reference: the offset of an allocated payload within the
// heap region. The zero value is the null reference.
type Ref = int

// NullRef is the null payload reference.
const NullRef Ref = 0

// Allocator manages one heap region. Construct with New; the zero value is
// not usable.
type Allocator struct {
	mem   heap.Memory
	stats Stats
}

// New initializes a fresh heap on mem and returns the allocator. mem must
// not have been extended yet. The initial region holds the list-head array,
// the prologue, one free block of ChunkSize - Overhead in the largest
// class, and the epilogue.
func New(mem heap.Memory) (*Allocator, error) {
	if mem.Size() != 0 {
		return nil, ErrNotEmpty
	}
	if _, err := mem.Extend(HeadArraySize + ChunkSize); err != nil {
		return nil, fmt.Errorf("alloc: initial grow: %w", err)
	}
	a := &Allocator{mem: mem}
	data := mem.Bytes()

	for k := 0; k < NumClasses; k++ {
		setHead(data, k, 0)
	}
	format.PutWord(data, prologueOff, format.WordSize, true)

	b := firstBlockOff
	size := ChunkSize - Overhead
	writeBlock(data, b, size, false)
	a.push(data, b, SizeClass(size))

	format.PutWord(data, b+size, 0, true) // epilogue
	return a, nil
}

// adjust converts a payload request into a block size: overhead added,
// aligned to 8, and raised to the minimum block size.
func adjust(n int) int {
	asize := format.Align8(n + Overhead)
	if asize < MinBlockSize {
		asize = MinBlockSize
	}
	return asize
}

// extend grows the heap by words*8 bytes. The word that was the epilogue
// becomes the header of a fresh free block, which is pushed onto its class
// list and optionally coalesced with a free predecessor. Returns the
// (possibly coalesced) block and the refreshed region.
func (a *Allocator) extend(words int, doCoalesce bool) (int, []byte, error) {
	n := words * format.WordSize
	old, err := a.mem.Extend(n)
	if err != nil {
		return 0, nil, err
	}
	data := a.mem.Bytes()
	a.stats.GrowCalls++
	a.stats.GrowBytes += int64(n)

	b := old - format.WordSize // reinterpret the old epilogue as a header
	writeBlock(data, b, n, false)
	a.push(data, b, SizeClass(n))
	format.PutWord(data, b+n, 0, true) // new epilogue

	if doCoalesce {
		b = a.coalesce(data, b)
	}
	return b, data, nil
}

// place carves an allocation of asize bytes out of the free block b, which
// must be on its class list with size >= asize. The block is split when the
// remainder is a viable block; a splinter remainder is absorbed into the
// allocation. Returns the payload slice.
func (a *Allocator) place(data []byte, b, asize int) []byte {
	size := blockSize(data, b)
	a.pop(data, b, SizeClass(size))
	if rem := size - asize; rem >= MinBlockSize {
		writeBlock(data, b, asize, true)
		nb := b + asize
		writeBlock(data, nb, rem, false)
		a.push(data, nb, SizeClass(rem))
		a.stats.Splits++
		size = asize
	} else {
		writeBlock(data, b, size, true)
	}
	return data[b+format.WordSize : b+size-format.WordSize]
}

// Alloc allocates a block with at least n writable payload bytes. The
// returned payload is 8-byte aligned within the heap. A zero request
// returns the null reference with no error; an exhausted extender returns
// ErrNoSpace.
func (a *Allocator) Alloc(n int) (Ref, []byte, error) {
	a.stats.AllocCalls++
	if n < 0 || n > format.MaxBlockSize&^(format.Alignment-1)-Overhead {
		return NullRef, nil, ErrBadRequest
	}
	if n == 0 {
		return NullRef, nil, nil
	}
	asize := adjust(n)

	// Small-request fast path: grow by exactly the adjusted size instead
	// of carving splinters out of large free blocks. The fresh block is
	// consumed whole by place, so no free neighbors are left behind.
	if asize <= FastPathMax {
		if b, data, err := a.extend(asize/format.WordSize, false); err == nil {
			a.stats.FastPath++
			return Ref(b + format.WordSize), a.place(data, b, asize), nil
		}
		// The extender refused; an existing free block may still fit.
	}

	data := a.mem.Bytes()
	if b := a.firstFit(data, asize); b != 0 {
		return Ref(b + format.WordSize), a.place(data, b, asize), nil
	}

	grow := asize
	if grow < ChunkSize {
		grow = ChunkSize
	}
	b, data, err := a.extend(grow/format.WordSize, true)
	if err != nil {
		return NullRef, nil, ErrNoSpace
	}
	return Ref(b + format.WordSize), a.place(data, b, asize), nil
}

// Free releases the block behind a payload reference previously returned by
// Alloc or Realloc and coalesces it with free neighbors. Freeing the null
// reference is a no-op. Passing any other reference not obtained from this
// allocator is undefined; only out-of-range references are detected.
func (a *Allocator) Free(ref Ref) error {
	a.stats.FreeCalls++
	if ref == NullRef {
		return nil
	}
	data := a.mem.Bytes()
	b := ref - format.WordSize
	if b < firstBlockOff || b+format.WordSize > len(data) {
		return ErrBadRef
	}
	size := blockSize(data, b)
	if size < MinBlockSize || b+size > len(data)-format.WordSize {
		return ErrBadRef
	}
	writeBlock(data, b, size, false)
	a.push(data, b, SizeClass(size))
	a.coalesce(data, b)
	return nil
}

// Realloc resizes the allocation behind ref to at least n bytes, copying
// min(n, old payload size) bytes and freeing the old block. Realloc on the
// null reference behaves as Alloc.
//
// Allocation failure is fatal: the old payload is still live and callers
// cannot recover, so Realloc panics with a diagnostic instead of returning
// an error. A zero n is fatal for the same reason, since the inner
// allocation yields the null payload.
func (a *Allocator) Realloc(ref Ref, n int) (Ref, []byte, error) {
	a.stats.ReallocCalls++
	if ref == NullRef {
		return a.Alloc(n)
	}
	data := a.mem.Bytes()
	b := ref - format.WordSize
	if b < firstBlockOff || b+format.WordSize > len(data) {
		return NullRef, nil, ErrBadRef
	}
	oldSize := blockSize(data, b)
	if oldSize < MinBlockSize || b+oldSize > len(data)-format.WordSize {
		return NullRef, nil, ErrBadRef
	}

	newRef, payload, err := a.Alloc(n)
	if err != nil || newRef == NullRef {
		panic(fmt.Sprintf("alloc: realloc(%d) cannot allocate: %v", n, err))
	}

	// Copy only the old payload, never the neighbor's boundary tags: the
	// old payload is the block minus both words.
	data = a.mem.Bytes()
	copyLen := oldSize - Overhead
	if n < copyLen {
		copyLen = n
	}
	copy(payload[:copyLen], data[ref:ref+copyLen])

	if err := a.Free(ref); err != nil {
		return NullRef, nil, err
	}
	return newRef, payload, nil
}

// HeapSize returns the current size of the managed region in bytes.
func (a *Allocator) HeapSize() int {
	return a.mem.Size()
}
