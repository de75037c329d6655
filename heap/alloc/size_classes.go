package alloc

import (
	"fmt"
	"math/bits"
)

const (
	// NumClasses is the number of segregated free lists.
	NumClasses = 11

	// classBias shifts class 0 to cover the smallest legal blocks:
	// floor(log2 MinBlockSize) == 5, so a 32-byte block lands in class 0.
	classBias = 5
)

// SizeClass returns the free-list index for a block of the given size:
// min(NumClasses-1, floor(log2 size) - classBias), clamped at 0.
//
// The size must be at least MinBlockSize; the log2 expression would
// underflow below that, and no reachable block is ever smaller.
func SizeClass(size int) int {
	if size < MinBlockSize {
		panic(fmt.Sprintf("alloc: size class of %d below minimum block size", size))
	}
	k := bits.Len(uint(size)) - 1 - classBias
	if k >= NumClasses {
		k = NumClasses - 1
	}
	return k
}
