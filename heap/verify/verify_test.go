package verify

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/maxgonick/segheap/heap/alloc"
	"github.com/maxgonick/segheap/internal/format"
	"github.com/maxgonick/segheap/internal/membrk"
)

func buildHeap(t *testing.T) (*alloc.Allocator, *membrk.Mem) {
	t.Helper()
	mem := membrk.New(0)
	a, err := alloc.New(mem)
	require.NoError(t, err)
	return a, mem
}

func TestCleanHeapPasses(t *testing.T) {
	a, mem := buildHeap(t)
	require.Empty(t, All(mem.Bytes()))

	p, _, err := a.Alloc(300)
	require.NoError(t, err)
	_, _, err = a.Alloc(50)
	require.NoError(t, err)
	require.NoError(t, a.Free(p))
	require.Empty(t, All(mem.Bytes()))
}

func TestDetectsFooterMismatch(t *testing.T) {
	a, mem := buildHeap(t)
	p, _, err := a.Alloc(100)
	require.NoError(t, err)

	data := mem.Bytes()
	b := p - format.WordSize
	// Rewrite the footer with a different size.
	format.PutWord(data, b+120-format.WordSize, 128, true)

	errs := Heap(data)
	require.NotEmpty(t, errs)
	require.Contains(t, errs[0].Error(), "does not match header")
}

func TestDetectsBrokenPrevLink(t *testing.T) {
	_, mem := buildHeap(t)
	data := mem.Bytes()

	// The initial free block's prev slot must be null; corrupt it.
	b := alloc.HeadArraySize + format.WordSize
	format.PutU64(data, b+2*format.WordSize, 12345)

	errs := FreeLists(data)
	require.NotEmpty(t, errs)
	require.Contains(t, errs[0].Error(), "prev link")
}

func TestDetectsMissingListMembership(t *testing.T) {
	_, mem := buildHeap(t)
	data := mem.Bytes()

	// Empty the largest class head: the initial free block is now orphaned.
	format.PutU64(data, (alloc.NumClasses-1)*format.WordSize, 0)

	errs := FreeLists(data)
	require.NotEmpty(t, errs)
	require.Contains(t, errs[0].Error(), "missing from its class list")
}

func TestDetectsAdjacentFreeBlocks(t *testing.T) {
	// Hand-build a region: head array, prologue, two adjacent free
	// 32-byte blocks (correctly listed), epilogue.
	size := alloc.HeadArraySize + format.WordSize + 32 + 32 + format.WordSize
	data := make([]byte, size)

	prologue := alloc.HeadArraySize
	format.PutWord(data, prologue, format.WordSize, true)

	b1 := prologue + format.WordSize
	b2 := b1 + 32
	for _, b := range []int{b1, b2} {
		format.PutWord(data, b, 32, false)
		format.PutWord(data, b+32-format.WordSize, 32, false)
	}
	// Class 0 list: b2 (head) -> b1.
	format.PutU64(data, 0, uint64(b2))
	format.PutU64(data, b2+format.WordSize, uint64(b1))   // b2.next
	format.PutU64(data, b2+2*format.WordSize, 0)          // b2.prev
	format.PutU64(data, b1+format.WordSize, 0)            // b1.next
	format.PutU64(data, b1+2*format.WordSize, uint64(b2)) // b1.prev

	format.PutWord(data, b2+32, 0, true) // epilogue

	errs := Heap(data)
	require.Len(t, errs, 1)
	require.Contains(t, errs[0].Error(), "adjacent free blocks")
	require.Empty(t, FreeLists(data))
}

func TestDetectsWrongClass(t *testing.T) {
	_, mem := buildHeap(t)
	data := mem.Bytes()

	// Move the initial free block's link from the top class to class 0.
	b := alloc.HeadArraySize + format.WordSize
	format.PutU64(data, (alloc.NumClasses-1)*format.WordSize, 0)
	format.PutU64(data, 0, uint64(b))

	errs := FreeLists(data)
	require.NotEmpty(t, errs)
	require.Contains(t, errs[0].Error(), "belongs in class")
}

func TestDetectsBadEpilogue(t *testing.T) {
	_, mem := buildHeap(t)
	data := mem.Bytes()

	format.PutWord(data, len(data)-format.WordSize, 0, false)
	errs := Heap(data)
	require.NotEmpty(t, errs)
	require.Contains(t, errs[0].Error(), "epilogue")
}
