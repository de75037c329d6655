package alloc_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/maxgonick/segheap/heap/alloc"
	"github.com/maxgonick/segheap/heap/verify"
	"github.com/maxgonick/segheap/internal/membrk"
)

const initHeapSize = alloc.HeadArraySize + alloc.ChunkSize

func newAllocator(t *testing.T, limit int) (*alloc.Allocator, *membrk.Mem) {
	t.Helper()
	mem := membrk.New(limit)
	a, err := alloc.New(mem)
	require.NoError(t, err)
	return a, mem
}

func requireConsistent(t *testing.T, mem *membrk.Mem) {
	t.Helper()
	for _, err := range verify.All(mem.Bytes()) {
		t.Errorf("invariant violated: %v", err)
	}
}

func TestAllocZeroReturnsNull(t *testing.T) {
	a, mem := newAllocator(t, 0)
	ref, payload, err := a.Alloc(0)
	require.NoError(t, err)
	require.Equal(t, alloc.NullRef, ref)
	require.Nil(t, payload)
	require.Equal(t, initHeapSize, mem.Size()) // heap untouched
}

func TestAllocNegativeRejected(t *testing.T) {
	a, _ := newAllocator(t, 0)
	_, _, err := a.Alloc(-1)
	require.ErrorIs(t, err, alloc.ErrBadRequest)
}

func TestAlignmentLaw(t *testing.T) {
	a, _ := newAllocator(t, 0)
	for _, n := range []int{1, 2, 7, 8, 15, 16, 17, 100, 1000, 4096, 70000} {
		ref, payload, err := a.Alloc(n)
		require.NoError(t, err, "alloc(%d)", n)
		require.Zero(t, ref%8, "alloc(%d) payload not aligned", n)
		require.GreaterOrEqual(t, len(payload), n, "alloc(%d) truncated", n)
	}
}

func TestRoundTripLaw(t *testing.T) {
	a, mem := newAllocator(t, 0)

	ref, _, err := a.Alloc(5000)
	require.NoError(t, err)
	requireConsistent(t, mem)

	require.NoError(t, a.Free(ref))
	requireConsistent(t, mem)

	// Back to a single free block of the original size.
	ref2, _, err := a.Alloc(5000)
	require.NoError(t, err)
	require.Equal(t, ref, ref2)
}

func TestQuiescentInvariantsAcrossMixedOps(t *testing.T) {
	a, mem := newAllocator(t, 0)

	var refs []alloc.Ref
	for _, n := range []int{16, 200, 4000, 64, 100000, 24, 512} {
		ref, _, err := a.Alloc(n)
		require.NoError(t, err)
		refs = append(refs, ref)
		requireConsistent(t, mem)
	}
	for i := 0; i < len(refs); i += 2 {
		require.NoError(t, a.Free(refs[i]))
		requireConsistent(t, mem)
	}
	for i := 1; i < len(refs); i += 2 {
		ref, _, err := a.Realloc(refs[i], 300)
		require.NoError(t, err)
		refs[i] = ref
		requireConsistent(t, mem)
	}
	for i := 1; i < len(refs); i += 2 {
		require.NoError(t, a.Free(refs[i]))
		requireConsistent(t, mem)
	}
}

func TestOutOfMemory(t *testing.T) {
	a, _ := newAllocator(t, initHeapSize) // no room to grow

	_, _, err := a.Alloc(70000)
	require.ErrorIs(t, err, alloc.ErrNoSpace)
}

func TestFastPathFallsBackToFreeList(t *testing.T) {
	a, _ := newAllocator(t, initHeapSize)

	// The fast path cannot extend, but the initial free block serves the
	// request through the ordinary first-fit path.
	ref, payload, err := a.Alloc(16)
	require.NoError(t, err)
	require.NotEqual(t, alloc.NullRef, ref)
	require.GreaterOrEqual(t, len(payload), 16)
	require.Zero(t, a.Stats().FastPath)
}

func TestFreeBadRefs(t *testing.T) {
	a, _ := newAllocator(t, 0)

	require.NoError(t, a.Free(alloc.NullRef))
	require.ErrorIs(t, a.Free(3), alloc.ErrBadRef)
	require.ErrorIs(t, a.Free(1<<30), alloc.ErrBadRef)
}

func TestReallocGrowPreservesPrefix(t *testing.T) {
	a, mem := newAllocator(t, 0)

	p, payload, err := a.Alloc(100)
	require.NoError(t, err)
	for i := 0; i < 100; i++ {
		payload[i] = byte(i)
	}

	q, qbuf, err := a.Realloc(p, 200)
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(qbuf), 200)
	for i := 0; i < 100; i++ {
		require.Equal(t, byte(i), qbuf[i], "byte %d lost in realloc", i)
	}
	requireConsistent(t, mem)

	// The new block was allocated before the old one was freed.
	require.NotEqual(t, p, q)

	// The old block was freed and its region is reusable.
	p2, _, err := a.Alloc(100)
	require.NoError(t, err)
	require.Equal(t, p, p2)
}

func TestReallocShrinkCopiesRequestedBytes(t *testing.T) {
	a, mem := newAllocator(t, 0)

	p, payload, err := a.Alloc(100)
	require.NoError(t, err)
	for i := 0; i < 100; i++ {
		payload[i] = byte(100 - i)
	}

	_, qbuf, err := a.Realloc(p, 40)
	require.NoError(t, err)
	for i := 0; i < 40; i++ {
		require.Equal(t, byte(100-i), qbuf[i])
	}
	requireConsistent(t, mem)
}

func TestReallocNullBehavesAsAlloc(t *testing.T) {
	a, _ := newAllocator(t, 0)
	ref, payload, err := a.Realloc(alloc.NullRef, 64)
	require.NoError(t, err)
	require.NotEqual(t, alloc.NullRef, ref)
	require.GreaterOrEqual(t, len(payload), 64)
}

func TestReallocBadRef(t *testing.T) {
	a, _ := newAllocator(t, 0)
	_, _, err := a.Realloc(7, 64)
	require.ErrorIs(t, err, alloc.ErrBadRef)
}

func TestReallocOutOfMemoryIsFatal(t *testing.T) {
	a, _ := newAllocator(t, initHeapSize)

	p, _, err := a.Alloc(100)
	require.NoError(t, err)

	require.Panics(t, func() { a.Realloc(p, 70000) })
}

func TestCheckHeapCleanAndCorrupt(t *testing.T) {
	a, mem := newAllocator(t, 0)

	p, _, err := a.Alloc(100)
	require.NoError(t, err)

	var out bytes.Buffer
	require.Zero(t, a.CheckHeap(&out, false))
	require.Empty(t, out.String())

	out.Reset()
	require.Zero(t, a.CheckHeap(&out, true))
	require.Contains(t, out.String(), "header")

	// Smash the allocated block's footer and expect a diagnostic.
	data := mem.Bytes()
	footer := p - 8 + 120 - 8 // block of adjusted size 120
	copy(data[footer:footer+8], []byte{0xff, 0xff, 0, 0, 0, 0, 0, 0})
	out.Reset()
	require.NotZero(t, a.CheckHeap(&out, false))
	require.Contains(t, out.String(), "footer")
}
