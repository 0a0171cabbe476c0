package typedcol

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/objcol/value"
)

func TestBoolColumnInsertAndReadAt(t *testing.T) {
	c := NewBoolColumn()
	require.NoError(t, c.Insert(value.FromBool(true)))
	require.NoError(t, c.Insert(value.Null()))
	require.NoError(t, c.Insert(value.FromBool(false)))

	assert.True(t, c.ReadAt(0).Equal(value.FromBool(true)))
	assert.True(t, c.IsDefaultAt(1))
	assert.True(t, c.ReadAt(2).Equal(value.FromBool(false)))
}

func TestBoolColumnCompressRoundTrip(t *testing.T) {
	c := NewBoolColumn()
	for _, v := range []bool{true, false, true, true} {
		require.NoError(t, c.Insert(value.FromBool(v)))
	}

	handle, err := c.Compress()
	require.NoError(t, err)
	decompressed, err := handle.Decompress()
	require.NoError(t, err)
	out := decompressed.(*BoolColumn)
	assert.Equal(t, c.values, out.values)
}

func TestFloat64ColumnInsertAndCompressRoundTrip(t *testing.T) {
	c := NewFloat64Column()
	require.NoError(t, c.Insert(value.FromFloat64(3.14)))
	require.NoError(t, c.Insert(value.Null()))

	handle, err := c.Compress()
	require.NoError(t, err)
	decompressed, err := handle.Decompress()
	require.NoError(t, err)
	out := decompressed.(*Float64Column)
	assert.True(t, out.ReadAt(0).Equal(value.FromFloat64(3.14)))
	assert.True(t, out.IsDefaultAt(1))
}
