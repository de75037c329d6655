package main

import (
	"github.com/maxgonick/segheap/heap"
	"github.com/maxgonick/segheap/internal/membrk"
	"github.com/maxgonick/segheap/internal/mmapbrk"
)

// newMemory builds the heap region selected by the global flags.
func newMemory() (heap.Memory, func() error, error) {
	if useMmap {
		limit := heapLimit
		if limit <= 0 {
			limit = membrk.DefaultLimit
		}
		m, err := mmapbrk.New(limit)
		if err != nil {
			return nil, nil, err
		}
		return m, m.Close, nil
	}
	m := membrk.New(heapLimit)
	return m, func() error { return nil }, nil
}
