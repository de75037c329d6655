package membrk

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExtendReturnsPreviousSize(t *testing.T) {
	m := New(1024)
	require.Zero(t, m.Size())

	old, err := m.Extend(100)
	require.NoError(t, err)
	require.Zero(t, old)
	require.Equal(t, 100, m.Size())

	old, err = m.Extend(924)
	require.NoError(t, err)
	require.Equal(t, 100, old)
	require.Equal(t, 1024, m.Size())
}

func TestExtendPastLimit(t *testing.T) {
	m := New(64)
	_, err := m.Extend(64)
	require.NoError(t, err)
	_, err = m.Extend(1)
	require.ErrorIs(t, err, ErrExhausted)
	require.Equal(t, 64, m.Size()) // region unchanged on failure
}

func TestExtendRejectsNonPositive(t *testing.T) {
	m := New(64)
	_, err := m.Extend(0)
	require.ErrorIs(t, err, ErrBadExtend)
	_, err = m.Extend(-8)
	require.ErrorIs(t, err, ErrBadExtend)
}

func TestBytesShareBacking(t *testing.T) {
	m := New(256)
	_, err := m.Extend(128)
	require.NoError(t, err)
	before := m.Bytes()

	_, err = m.Extend(64)
	require.NoError(t, err)
	m.Bytes()[50] = 7
	require.Equal(t, byte(7), before[50])
}

func TestDefaultLimit(t *testing.T) {
	m := New(0)
	_, err := m.Extend(DefaultLimit)
	require.NoError(t, err)
	_, err = m.Extend(1)
	require.ErrorIs(t, err, ErrExhausted)
}
