// Package membrk is a slice-backed heap extender.
//
// The full capacity is allocated once at construction and the region grows
// by moving a high-water mark, so slices handed out by Bytes never move.
// This is the extender used by tests and trace replay; it plays the role of
// a simulated sbrk with a hard memory cap.
package membrk

import "errors"

// ErrExhausted indicates an Extend past the configured capacity.
var ErrExhausted = errors.New("membrk: out of memory")

// ErrBadExtend indicates an Extend of zero or negative length.
var ErrBadExtend = errors.New("membrk: extend length must be positive")

// DefaultLimit is the capacity used by New when the caller passes 0.
const DefaultLimit = 20 * (1 << 20)

// Mem is a fixed-capacity in-memory heap region.
type Mem struct {
	buf  []byte
	size int
}

// New returns a region with the given capacity in bytes. A limit of 0
// selects DefaultLimit.
func New(limit int) *Mem {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Mem{buf: make([]byte, limit)}
}

// Bytes returns the currently extended region.
func (m *Mem) Bytes() []byte { return m.buf[:m.size] }

// Size returns the current region length.
func (m *Mem) Size() int { return m.size }

// Extend grows the region by n bytes and returns the previous size.
func (m *Mem) Extend(n int) (int, error) {
	if n <= 0 {
		return 0, ErrBadExtend
	}
	if m.size+n > len(m.buf) {
		return 0, ErrExhausted
	}
	old := m.size
	m.size += n
	return old, nil
}
