//go:build !unix

package mmapbrk

import (
	"errors"
	"fmt"
)

var ErrExhausted = errors.New("mmapbrk: out of memory")

var ErrBadExtend = errors.New("mmapbrk: extend length must be positive")

// Mem falls back to a fixed slice on platforms without the unix mmap path.
type Mem struct {
	data []byte
	size int
}

func New(limit int) (*Mem, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("mmapbrk: bad limit %d", limit)
	}
	return &Mem{data: make([]byte, limit)}, nil
}

func (m *Mem) Bytes() []byte { return m.data[:m.size] }

func (m *Mem) Size() int { return m.size }

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

func (m *Mem) Close() error {
	m.data = nil
	m.size = 0
	return nil
}
