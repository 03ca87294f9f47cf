package entropy

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSource_Read(t *testing.T) {
	src := New()
	defer src.Close()

	buf := make([]byte, 32)
	n, err := src.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, 32, n)
}

func TestSource_ReadBlock(t *testing.T) {
	src := New()
	defer src.Close()

	block, err := src.ReadBlock(KeyBytes)
	require.NoError(t, err)
	assert.Len(t, block, KeyBytes)
}

func TestSource_RandomInRange(t *testing.T) {
	src := New()
	defer src.Close()

	max := big.NewInt(1000)
	for i := 0; i < 50; i++ {
		n, err := src.RandomInRange(max)
		require.NoError(t, err)
		assert.True(t, n.Sign() >= 0)
		assert.True(t, n.Cmp(max) < 0)
	}
}

func TestSource_LazyOpenIsIdempotent(t *testing.T) {
	src := New()
	defer src.Close()

	buf := make([]byte, 8)
	_, err := src.Read(buf)
	require.NoError(t, err)
	_, err = src.Read(buf)
	require.NoError(t, err)
}
