package dynamiccol

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/objcol/internal/arena"
	"github.com/arloliu/objcol/value"
)

func TestColumnInsertHeterogeneousValues(t *testing.T) {
	c := New(4)
	require.NoError(t, c.Insert(value.FromString("x")))
	require.NoError(t, c.Insert(value.FromInt64(5)))
	require.NoError(t, c.Insert(value.Null()))

	assert.Equal(t, 3, c.Len())
	assert.True(t, c.ReadAt(0).Equal(value.FromString("x")))
	assert.True(t, c.ReadAt(1).Equal(value.FromInt64(5)))
	assert.True(t, c.IsNullAt(2))
	assert.Equal(t, 1, c.NumberOfDefaultRows())
}

func TestColumnTypeCapRejectsExtraKinds(t *testing.T) {
	c := New(2)
	require.NoError(t, c.Insert(value.FromString("a")))
	require.NoError(t, c.Insert(value.FromInt64(1)))
	// A third distinct kind exceeds the cap.
	assert.Error(t, c.Insert(value.FromFloat64(1.5)))
	assert.False(t, c.TryInsert(value.FromBool(true)))
	// Repeats of an already-tracked kind remain fine.
	assert.NoError(t, c.Insert(value.FromString("b")))
	// Null never counts against the cap.
	assert.NoError(t, c.Insert(value.Null()))
}

func TestColumnArenaRoundTrip(t *testing.T) {
	c := New(4)
	require.NoError(t, c.Insert(value.FromFloat64(2.5)))
	require.NoError(t, c.Insert(value.Null()))
	require.NoError(t, c.Insert(value.FromString("dyn")))

	a := arena.New(128)
	out := New(4)
	for i := 0; i < c.Len(); i++ {
		start, length := c.SerializeAt(i, a)
		n, err := out.DeserializeAndInsert(a.At(start, length))
		require.NoError(t, err)
		assert.Equal(t, length, n)
	}

	assert.True(t, out.ReadAt(0).Equal(value.FromFloat64(2.5)))
	assert.True(t, out.IsNullAt(1))
	assert.True(t, out.ReadAt(2).Equal(value.FromString("dyn")))
}

func TestColumnCompressRoundTrip(t *testing.T) {
	c := New(4)
	require.NoError(t, c.Insert(value.FromInt64(1)))
	require.NoError(t, c.Insert(value.FromString("hi")))
	require.NoError(t, c.Insert(value.Null()))

	handle, err := c.Compress()
	require.NoError(t, err)
	assert.Equal(t, 3, handle.Len())

	decompressed, err := handle.Decompress()
	require.NoError(t, err)
	out := decompressed.(*Column)
	require.Equal(t, c.Len(), out.Len())
	for i := 0; i < c.Len(); i++ {
		assert.True(t, c.ReadAt(i).Equal(out.ReadAt(i)))
	}
}

func TestColumnFilterPermuteScatter(t *testing.T) {
	c := New(4)
	for _, v := range []value.Value{value.FromInt64(1), value.FromInt64(2), value.FromInt64(3)} {
		require.NoError(t, c.Insert(v))
	}

	filtered := c.Filter([]bool{true, false, true}).(*Column)
	require.Equal(t, 2, filtered.Len())
	assert.True(t, filtered.ReadAt(0).Equal(value.FromInt64(1)))
	assert.True(t, filtered.ReadAt(1).Equal(value.FromInt64(3)))

	shards := c.Scatter(2, []int{0, 1, 0})
	s0 := shards[0].(*Column)
	assert.Equal(t, 2, s0.Len())
}

func TestColumnTakeDynamicStructureRequiresEmpty(t *testing.T) {
	c := New(4)
	require.NoError(t, c.Insert(value.FromInt64(1)))
	assert.Error(t, c.TakeDynamicStructureFromSourceColumns(nil))

	empty := New(4)
	assert.NoError(t, empty.TakeDynamicStructureFromSourceColumns(nil))
}
