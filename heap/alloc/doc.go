// Package alloc implements a dynamic memory allocator over a single
// contiguous, monotonically-growable heap region.
//
// # Overview
//
// The allocator manages the region handed to it by a heap.Memory extender
// using in-band bookkeeping: every block carries an 8-byte header and an
// 8-byte footer (boundary tags), free blocks are threaded onto segregated
// doubly-linked free lists stored inside the blocks themselves, and the
// list-head array lives at the base of the region. No allocator state
// exists outside the managed bytes.
//
// # Operations
//
//   - New(mem): initialize a fresh heap (head array, sentinels, one free
//     block of ChunkSize - Overhead)
//   - Alloc(n): first-fit allocation with splitting, plus a small-request
//     growth fast path
//   - Free(ref): clear the block and coalesce with free neighbors
//   - Realloc(ref, n): allocate-copy-free; fatal on allocation failure
//   - CheckHeap(w, verbose): print consistency diagnostics
//
// # Block layout
//
// Header and footer are identical 64-bit words: bit 0 is the allocated
// flag, bits 1-31 the total block size in bytes, the high 4 bytes reserved.
// Free-block payloads start with two 8-byte link slots (next, prev) holding
// block offsets; offset 0 is the null reference. Allocated blocks keep
// truthful footers so the coalescer can walk backwards.
//
// # Size classes
//
// The free lists are segregated into NumClasses (11) classes. A block of
// size s belongs to class min(10, floor(log2 s) - 5), clamped at 0, so all
// 32..63-byte blocks share class 0 and everything from 32KB up shares the
// final class. Within a class the search order is LIFO insertion order and
// the first acceptable block wins.
//
// # Heap layout
//
//	[ head array (88 bytes) ][ prologue ][ blocks ... ][ epilogue ]
//
// The prologue (allocated, size 8) and epilogue (allocated, size 0) are
// permanent sentinels so the coalescer can read the previous footer and
// next header of any real block without bounds tests.
//
// # Thread safety
//
// Allocator instances are not thread-safe, and no operation may re-enter
// the allocator from inside the extender.
package alloc
