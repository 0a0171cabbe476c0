package column_test

import (
	"hash/fnv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/objcol/column"
	"github.com/arloliu/objcol/dynamiccol"
	"github.com/arloliu/objcol/internal/arena"
	"github.com/arloliu/objcol/typedcol"
	"github.com/arloliu/objcol/value"
)

func dynamicFactory(maxTypes int) column.DynamicColumnOps { return dynamiccol.New(maxTypes) }

func newTestColumn(t *testing.T, maxDynamicPaths, maxDynamicTypes int) *column.ObjectColumn {
	t.Helper()
	c, err := column.New(
		column.WithTypedPath("name", typedcol.NewStringColumn()),
		column.WithTypedPath("age", typedcol.NewInt64Column()),
		column.WithMaxDynamicPaths(maxDynamicPaths),
		column.WithMaxDynamicTypes(maxDynamicTypes),
		column.WithDynamicColumnFactory(dynamicFactory),
	)
	require.NoError(t, err)

	return c
}

func row(name string, age int64, extra ...column.RowEntry) column.Row {
	r := column.Row{
		{Path: "name", Value: value.FromString(name)},
		{Path: "age", Value: value.FromInt64(age)},
	}

	return append(r, extra...)
}

func TestObjectColumnInsertAndReadRow(t *testing.T) {
	c := newTestColumn(t, 2, 2)

	require.NoError(t, c.Insert(row("alice", 30,
		column.RowEntry{Path: "city", Value: value.FromString("nyc")},
	)))
	require.NoError(t, c.Insert(row("bob", 25,
		column.RowEntry{Path: "city", Value: value.FromString("sf")},
		column.RowEntry{Path: "zip", Value: value.FromInt64(94107)},
	)))
	// A third dynamic path beyond the cap of 2 spills to shared data.
	require.NoError(t, c.Insert(row("carol", 40,
		column.RowEntry{Path: "city", Value: value.FromString("la")},
		column.RowEntry{Path: "zip", Value: value.FromInt64(90001)},
		column.RowEntry{Path: "country", Value: value.FromString("us")},
	)))

	require.NoError(t, c.Finalize())
	assert.Equal(t, 3, c.Size())
	assert.ElementsMatch(t, []string{"city", "zip"}, c.GetDynamicPaths())

	r2 := c.ReadRow(2)
	found := make(map[string]value.Value)
	for _, e := range r2 {
		found[e.Path] = e.Value
	}
	assert.True(t, found["name"].Equal(value.FromString("carol")))
	assert.True(t, found["country"].Equal(value.FromString("us")))
}

func TestObjectColumnInsertPadsUnwrittenPaths(t *testing.T) {
	c := newTestColumn(t, 2, 2)
	require.NoError(t, c.Insert(row("alice", 30,
		column.RowEntry{Path: "city", Value: value.FromString("nyc")},
	)))
	require.NoError(t, c.Insert(row("bob", 25)))

	dynCol, ok := c.GetDynamicColumn("city")
	require.True(t, ok)
	assert.True(t, dynCol.IsNullAt(1))
}

func TestObjectColumnTryInsertRollsBackOnFailure(t *testing.T) {
	c := newTestColumn(t, 1, 1)
	require.NoError(t, c.Insert(row("alice", 30)))

	bad := row("bob", 25)
	bad[0].Value = value.FromInt64(1) // "name" expects a string

	ok := c.TryInsert(bad)
	assert.False(t, ok)
	assert.Equal(t, 1, c.Size())
	require.NoError(t, c.Finalize())
}

func TestObjectColumnTryInsertRollsBackNewDynamicPath(t *testing.T) {
	c := newTestColumn(t, 2, 2)
	require.NoError(t, c.Insert(row("alice", 30)))
	require.Empty(t, c.GetDynamicPaths())

	bad := column.Row{
		{Path: "city", Value: value.FromString("sf")}, // would create a new dynamic path
		{Path: "name", Value: value.FromInt64(1)},      // "name" expects a string, fails
	}

	ok := c.TryInsert(bad)
	assert.False(t, ok)
	assert.Equal(t, 1, c.Size())
	assert.Empty(t, c.GetDynamicPaths())
	require.NoError(t, c.Finalize())
}

func TestObjectColumnIsDefaultAt(t *testing.T) {
	c := newTestColumn(t, 2, 2)
	c.Default()
	assert.True(t, c.IsDefaultAt(0))

	require.NoError(t, c.Insert(row("alice", 30)))
	assert.False(t, c.IsDefaultAt(1))
}

func TestObjectColumnPopBackAndExpand(t *testing.T) {
	c := newTestColumn(t, 2, 2)
	require.NoError(t, c.Insert(row("alice", 30)))
	require.NoError(t, c.Insert(row("bob", 25)))

	c.PopBack(1)
	assert.Equal(t, 1, c.Size())

	c.Expand(2)
	assert.Equal(t, 3, c.Size())
	assert.True(t, c.IsDefaultAt(1))
	assert.True(t, c.IsDefaultAt(2))
}

func TestObjectColumnInsertRangeFrom(t *testing.T) {
	src := newTestColumn(t, 1, 2)
	require.NoError(t, src.Insert(row("alice", 30,
		column.RowEntry{Path: "city", Value: value.FromString("nyc")},
		column.RowEntry{Path: "zip", Value: value.FromInt64(10001)},
	)))
	require.NoError(t, src.Insert(row("bob", 25,
		column.RowEntry{Path: "city", Value: value.FromString("sf")},
	)))

	dst := newTestColumn(t, 1, 2)
	require.NoError(t, dst.InsertRangeFrom(src, 0, 2))
	require.NoError(t, dst.Finalize())
	assert.Equal(t, 2, dst.Size())

	r0 := dst.ReadRow(0)
	found := make(map[string]value.Value)
	for _, e := range r0 {
		found[e.Path] = e.Value
	}
	assert.True(t, found["city"].Equal(value.FromString("nyc")))
	assert.True(t, found["zip"].Equal(value.FromInt64(10001)))
}

func TestObjectColumnBulkOps(t *testing.T) {
	c := newTestColumn(t, 2, 2)
	require.NoError(t, c.Insert(row("alice", 30,
		column.RowEntry{Path: "city", Value: value.FromString("nyc")},
	)))
	require.NoError(t, c.Insert(row("bob", 25,
		column.RowEntry{Path: "city", Value: value.FromString("sf")},
	)))
	require.NoError(t, c.Insert(row("carol", 40,
		column.RowEntry{Path: "city", Value: value.FromString("la")},
	)))

	filtered := c.Filter([]bool{true, false, true})
	assert.Equal(t, 2, filtered.Size())

	permuted := c.Permute([]int{2, 0, 1}, 0)
	r0 := permuted.ReadRow(0)
	assert.Equal(t, "carol", mustName(r0))

	replicated := c.Replicate([]int{2, 0, 1})
	assert.Equal(t, 3, replicated.Size())

	shards := c.Scatter(2, []int{0, 1, 0})
	assert.Equal(t, 2, shards[0].Size())
	assert.Equal(t, 1, shards[1].Size())
}

func mustName(r column.Row) string {
	for _, e := range r {
		if e.Path == "name" {
			s, _ := e.Value.String()
			return s
		}
	}

	return ""
}

func TestObjectColumnStructureEquals(t *testing.T) {
	a := newTestColumn(t, 2, 2)
	b := newTestColumn(t, 2, 2)
	assert.True(t, a.StructureEquals(b))

	c := newTestColumn(t, 3, 2)
	assert.False(t, a.StructureEquals(c))
}

func TestObjectColumnArenaRoundTrip(t *testing.T) {
	src := newTestColumn(t, 1, 2)
	require.NoError(t, src.Insert(row("alice", 30,
		column.RowEntry{Path: "city", Value: value.FromString("nyc")},
		column.RowEntry{Path: "zip", Value: value.FromInt64(10001)},
	)))
	require.NoError(t, src.Insert(row("bob", 25)))

	a := arena.New(256)
	dst := newTestColumn(t, 1, 2)
	for i := 0; i < src.Size(); i++ {
		start, length, err := src.SerializeRowIntoArena(i, a)
		require.NoError(t, err)
		n, err := dst.DeserializeAndInsertFromArena(a.At(start, length))
		require.NoError(t, err)
		assert.Equal(t, length, n)
	}

	require.NoError(t, dst.Finalize())
	assert.Equal(t, 2, dst.Size())

	r0 := dst.ReadRow(0)
	found := make(map[string]value.Value)
	for _, e := range r0 {
		found[e.Path] = e.Value
	}
	assert.True(t, found["city"].Equal(value.FromString("nyc")))
	assert.True(t, found["zip"].Equal(value.FromInt64(10001)))
}

func TestObjectColumnSkipSerializedRow(t *testing.T) {
	src := newTestColumn(t, 1, 2)
	require.NoError(t, src.Insert(row("alice", 30,
		column.RowEntry{Path: "city", Value: value.FromString("nyc")},
	)))
	require.NoError(t, src.Insert(row("bob", 25)))

	a := arena.New(256)
	_, len0, err := src.SerializeRowIntoArena(0, a)
	require.NoError(t, err)
	_, len1, err := src.SerializeRowIntoArena(1, a)
	require.NoError(t, err)

	buf := a.Bytes()
	consumed, err := src.SkipSerializedRow(buf)
	require.NoError(t, err)
	assert.Equal(t, len0, consumed)

	consumed2, err := src.SkipSerializedRow(buf[consumed:])
	require.NoError(t, err)
	assert.Equal(t, len1, consumed2)
}

func TestObjectColumnCompressRoundTrip(t *testing.T) {
	src := newTestColumn(t, 1, 2)
	require.NoError(t, src.Insert(row("alice", 30,
		column.RowEntry{Path: "city", Value: value.FromString("nyc")},
	)))
	require.NoError(t, src.Insert(row("bob", 25)))

	handle, err := src.Compress()
	require.NoError(t, err)
	assert.Equal(t, 2, handle.Len())

	out, err := handle.Decompress()
	require.NoError(t, err)
	assert.Equal(t, 2, out.Size())

	r0 := out.ReadRow(0)
	found := make(map[string]value.Value)
	for _, e := range r0 {
		found[e.Path] = e.Value
	}
	assert.True(t, found["name"].Equal(value.FromString("alice")))
	assert.True(t, found["city"].Equal(value.FromString("nyc")))
}

func TestObjectColumnUpdateHashDistinguishesRows(t *testing.T) {
	c := newTestColumn(t, 1, 2)
	require.NoError(t, c.Insert(row("alice", 30,
		column.RowEntry{Path: "city", Value: value.FromString("nyc")},
	)))
	require.NoError(t, c.Insert(row("bob", 25,
		column.RowEntry{Path: "city", Value: value.FromString("sf")},
	)))

	h0 := fnv.New64a()
	c.UpdateHash(0, h0)
	h1 := fnv.New64a()
	c.UpdateHash(1, h1)

	assert.NotEqual(t, h0.Sum64(), h1.Sum64())
}

func TestObjectColumnHashDistinguishesRowsAndIsStable(t *testing.T) {
	c := newTestColumn(t, 1, 2)
	require.NoError(t, c.Insert(row("alice", 30,
		column.RowEntry{Path: "city", Value: value.FromString("nyc")},
	)))
	require.NoError(t, c.Insert(row("bob", 25,
		column.RowEntry{Path: "city", Value: value.FromString("sf")},
	)))

	assert.Equal(t, c.Hash(0), c.Hash(0))
	assert.NotEqual(t, c.Hash(0), c.Hash(1))
}

func TestObjectColumnTakeDynamicStructureFromSourceColumns(t *testing.T) {
	a := newTestColumn(t, 1, 2)
	require.NoError(t, a.Insert(row("alice", 30,
		column.RowEntry{Path: "city", Value: value.FromString("nyc")},
	)))
	require.NoError(t, a.Insert(row("bob", 25,
		column.RowEntry{Path: "city", Value: value.FromString("sf")},
	)))

	b := newTestColumn(t, 1, 2)
	require.NoError(t, b.Insert(row("carol", 40,
		column.RowEntry{Path: "zip", Value: value.FromInt64(10001)},
	)))
	require.NoError(t, b.Insert(row("dan", 22,
		column.RowEntry{Path: "zip", Value: value.FromInt64(20002)},
	)))
	require.NoError(t, b.Insert(row("erin", 33,
		column.RowEntry{Path: "zip", Value: value.FromInt64(30003)},
	)))

	merged := newTestColumn(t, 1, 2)
	require.NoError(t, merged.TakeDynamicStructureFromSourceColumns([]*column.ObjectColumn{a, b}))

	// zip has 3 non-null rows across sources, city has 2; with a cap of 1
	// dynamic path, zip wins.
	assert.Equal(t, []string{"zip"}, merged.GetDynamicPaths())
	assert.Equal(t, column.StatSourceMerge, merged.Statistics().Source)
	assert.Equal(t, 3, merged.Statistics().Data["zip"])
}

func TestObjectColumnTakeDynamicStructureRequiresEmpty(t *testing.T) {
	c := newTestColumn(t, 1, 2)
	require.NoError(t, c.Insert(row("alice", 30)))
	assert.Error(t, c.TakeDynamicStructureFromSourceColumns(nil))
}
