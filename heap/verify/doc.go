// Package verify validates heap-allocator invariants over the raw region
// bytes. It is primarily used in tests to confirm that every public
// operation leaves the heap at a consistent quiescent point.
//
// Validation categories:
//
//   - Heap structure: sentinels, block walk, boundary-tag agreement,
//     payload alignment, coalescing completeness, size accounting
//   - Free lists: well-formed doubly-linked lists, class membership,
//     exact correspondence with the free blocks found by the heap walk
//
// All checks take the region bytes directly — the allocator keeps its
// entire state in-band, so nothing else is needed:
//
//	if errs := verify.All(mem.Bytes()); len(errs) != 0 {
//	    for _, err := range errs {
//	        fmt.Println(err)
//	    }
//	}
package verify
