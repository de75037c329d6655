package format

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWordRoundTrip(t *testing.T) {
	buf := make([]byte, 16)

	PutWord(buf, 0, 65520, false)
	size, allocated := ReadWord(buf, 0)
	require.Equal(t, 65520, size)
	require.False(t, allocated)

	PutWord(buf, 8, 32, true)
	size, allocated = ReadWord(buf, 8)
	require.Equal(t, 32, size)
	require.True(t, allocated)
}

func TestWordBitLayout(t *testing.T) {
	buf := make([]byte, 8)

	// size 32, allocated: low 32 bits are 32<<1 | 1, high 4 bytes reserved.
	PutWord(buf, 0, 32, true)
	require.Equal(t, byte(65), buf[0])
	require.Equal(t, []byte{0, 0, 0, 0, 0, 0, 0}, buf[1:])
}

func TestWordMaxSize(t *testing.T) {
	buf := make([]byte, 8)
	PutWord(buf, 0, MaxBlockSize, true)
	size, allocated := ReadWord(buf, 0)
	require.Equal(t, MaxBlockSize, size)
	require.True(t, allocated)
}

func TestU64RoundTrip(t *testing.T) {
	buf := make([]byte, 8)
	PutU64(buf, 0, 0xDEADBEEF01234567)
	require.Equal(t, uint64(0xDEADBEEF01234567), ReadU64(buf, 0))
}
