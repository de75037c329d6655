package alloc

import "errors"

var (
	// ErrNoSpace indicates that no free block was large enough and growing
	// the heap failed.
	ErrNoSpace = errors.New("alloc: out of memory")

	// ErrBadRef indicates an invalid or out-of-bounds payload reference.
	ErrBadRef = errors.New("alloc: bad payload reference")

	// ErrBadRequest indicates a negative or unencodable request size.
	ErrBadRequest = errors.New("alloc: bad request size")

	// ErrNotEmpty indicates that New was given a memory region that has
	// already been extended.
	ErrNotEmpty = errors.New("alloc: memory region not empty")
)
