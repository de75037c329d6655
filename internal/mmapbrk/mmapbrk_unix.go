//go:build unix

// Package mmapbrk is a heap extender backed by an anonymous memory mapping.
//
// The maximum region is reserved in one Mmap call at construction, and
// Extend only advances a high-water mark inside it. The mapping never moves,
// so payload slices stay valid for the life of the region.
package mmapbrk

import (
	"errors"
	"fmt"

	"golang.org/x/sys/unix"
)

// ErrExhausted indicates an Extend past the reserved mapping.
var ErrExhausted = errors.New("mmapbrk: out of memory")

// ErrBadExtend indicates an Extend of zero or negative length.
var ErrBadExtend = errors.New("mmapbrk: extend length must be positive")

// Mem is a heap region inside a reserved anonymous mapping.
type Mem struct {
	data []byte
	size int
}

// New reserves an anonymous mapping of limit bytes.
func New(limit int) (*Mem, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("mmapbrk: bad limit %d", limit)
	}
	data, err := unix.Mmap(-1, 0, limit,
		unix.PROT_READ|unix.PROT_WRITE,
		unix.MAP_PRIVATE|unix.MAP_ANON)
	if err != nil {
		return nil, fmt.Errorf("mmapbrk: mmap %d bytes: %w", limit, err)
	}
	return &Mem{data: data}, nil
}

// Bytes returns the currently extended region.
func (m *Mem) Bytes() []byte { return m.data[:m.size] }

// Size returns the current region length.
func (m *Mem) Size() int { return m.size }

// Extend grows the region by n bytes and returns the previous size.
func (m *Mem) Extend(n int) (int, error) {
	if n <= 0 {
		return 0, ErrBadExtend
	}
	if m.size+n > len(m.data) {
		return 0, ErrExhausted
	}
	old := m.size
	m.size += n
	return old, nil
}

// Close unmaps the region. The region must not be used afterwards.
func (m *Mem) Close() error {
	if m.data == nil {
		return nil
	}
	err := unix.Munmap(m.data)
	m.data = nil
	m.size = 0
	if errors.Is(err, unix.EINVAL) {
		// Treat double-unmap as no-op for callers.
		return nil
	}
	return err
}
