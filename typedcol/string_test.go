package typedcol

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/objcol/internal/arena"
	"github.com/arloliu/objcol/value"
)

func TestStringColumnInsertAndReadAt(t *testing.T) {
	c := NewStringColumn()
	require.NoError(t, c.Insert(value.FromString("hello")))
	require.NoError(t, c.Insert(value.Null()))
	require.NoError(t, c.Insert(value.FromString("")))

	require.Equal(t, 3, c.Len())
	assert.True(t, c.ReadAt(0).Equal(value.FromString("hello")))
	assert.True(t, c.IsDefaultAt(1))
	assert.True(t, c.ReadAt(2).Equal(value.FromString("")))
	assert.False(t, c.IsDefaultAt(2))
}

func TestStringColumnArenaRoundTrip(t *testing.T) {
	c := NewStringColumn()
	require.NoError(t, c.Insert(value.FromString("object column")))

	a := arena.New(64)
	start, length := c.SerializeAt(0, a)

	out := NewStringColumn()
	n, err := out.DeserializeAndInsert(a.At(start, length))
	require.NoError(t, err)
	assert.Equal(t, length, n)
	assert.True(t, out.ReadAt(0).Equal(value.FromString("object column")))
}

func TestStringColumnCompressRoundTrip(t *testing.T) {
	c := NewStringColumn()
	for _, s := range []string{"a", "bb", "ccc", ""} {
		require.NoError(t, c.Insert(value.FromString(s)))
	}
	require.NoError(t, c.Insert(value.Null()))

	handle, err := c.Compress()
	require.NoError(t, err)

	decompressed, err := handle.Decompress()
	require.NoError(t, err)
	out := decompressed.(*StringColumn)
	require.Equal(t, c.Len(), out.Len())
	for i := 0; i < c.Len(); i++ {
		assert.True(t, c.ReadAt(i).Equal(out.ReadAt(i)))
	}
}

func TestStringColumnFilterAndScatter(t *testing.T) {
	c := NewStringColumn()
	for _, s := range []string{"x", "y", "z"} {
		require.NoError(t, c.Insert(value.FromString(s)))
	}

	filtered := c.Filter([]bool{true, false, true}).(*StringColumn)
	require.Equal(t, 2, filtered.Len())
	assert.True(t, filtered.ReadAt(0).Equal(value.FromString("x")))
	assert.True(t, filtered.ReadAt(1).Equal(value.FromString("z")))

	shards := c.Scatter(2, []int{0, 1, 0})
	s0 := shards[0].(*StringColumn)
	assert.Equal(t, 2, s0.Len())
}
