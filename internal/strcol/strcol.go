// Package strcol implements the offset-indexed byte-string column used as a
// storage primitive by column.SharedDataStore: a flat byte buffer plus an
// offsets slice delimiting each entry, the same layout ClickHouse's
// ColumnString uses and the layout the teacher's blob format uses for
// variable-length payload sections.
package strcol

import "bytes"

// Column is an append-only sequence of byte strings.
type Column struct {
	data    []byte
	offsets []int // offsets[i] is the end offset (exclusive) of entry i; len(offsets) == Len()
}

// New creates an empty Column.
func New() *Column {
	return &Column{}
}

// Len returns the number of entries.
func (c *Column) Len() int {
	return len(c.offsets)
}

// ByteSize returns the number of data bytes stored (excludes offset overhead).
func (c *Column) ByteSize() int {
	return len(c.data)
}

// AllocatedBytes returns the total memory footprint including offsets.
func (c *Column) AllocatedBytes() int {
	return cap(c.data) + cap(c.offsets)*8
}

// start returns the start offset of entry i.
func (c *Column) start(i int) int {
	if i == 0 {
		return 0
	}

	return c.offsets[i-1]
}

// At returns the raw bytes of entry i. The returned slice aliases the
// column's internal buffer and must not be retained across mutation.
func (c *Column) At(i int) []byte {
	return c.data[c.start(i):c.offsets[i]]
}

// Append adds a new entry containing a copy of b.
func (c *Column) Append(b []byte) {
	c.data = append(c.data, b...)
	c.offsets = append(c.offsets, len(c.data))
}

// Reserve pre-allocates capacity for at least n additional entries.
func (c *Column) Reserve(n int) {
	if cap(c.offsets)-len(c.offsets) < n {
		newOffsets := make([]int, len(c.offsets), len(c.offsets)+n)
		copy(newOffsets, c.offsets)
		c.offsets = newOffsets
	}
}

// PopBack removes the last n entries.
func (c *Column) PopBack(n int) {
	if n <= 0 {
		return
	}
	newLen := len(c.offsets) - n
	c.data = c.data[:c.start(newLen)]
	c.offsets = c.offsets[:newLen]
}

// AppendFrom copies entry n of src as a new entry of c.
func (c *Column) AppendFrom(src *Column, n int) {
	c.Append(src.At(n))
}

// AppendRangeFrom copies entries [start, start+length) of src, preserving order.
func (c *Column) AppendRangeFrom(src *Column, start, length int) {
	for i := start; i < start+length; i++ {
		c.Append(src.At(i))
	}
}

// Filter keeps only entries whose mask element is true.
func (c *Column) Filter(mask []bool) *Column {
	out := New()
	out.Reserve(len(mask))
	for i, keep := range mask {
		if keep {
			out.AppendFrom(c, i)
		}
	}

	return out
}

// Permute reorders entries according to perm (perm[i] is the source index
// for output position i), stopping after limit entries (0 means all).
func (c *Column) Permute(perm []int, limit int) *Column {
	if limit <= 0 || limit > len(perm) {
		limit = len(perm)
	}
	out := New()
	out.Reserve(limit)
	for i := 0; i < limit; i++ {
		out.AppendFrom(c, perm[i])
	}

	return out
}

// Index gathers entries at the given indexes.
func (c *Column) Index(idx []int, limit int) *Column {
	return c.Permute(idx, limit)
}

// Replicate repeats entry i counts[i] times.
func (c *Column) Replicate(counts []int) *Column {
	out := New()
	for i, n := range counts {
		for ; n > 0; n-- {
			out.AppendFrom(c, i)
		}
	}

	return out
}

// Scatter splits entries into k shards according to selector (selector[i]
// is the shard index for entry i).
func (c *Column) Scatter(k int, selector []int) []*Column {
	shards := make([]*Column, k)
	for i := range shards {
		shards[i] = New()
	}
	for i, s := range selector {
		shards[s].AppendFrom(c, i)
	}

	return shards
}

// Cursor is a random-access iterator over a contiguous range of a Column,
// giving SharedDataStore.LowerBound the index arithmetic and deref-to-slice
// primitives it needs without exposing the Column's internals.
type Cursor struct {
	col *Column
	idx int
}

// NewCursor returns a Cursor positioned at entry idx of col.
func NewCursor(col *Column, idx int) Cursor {
	return Cursor{col: col, idx: idx}
}

// Index returns the cursor's current entry index.
func (c Cursor) Index() int {
	return c.idx
}

// Advance returns a new cursor n entries ahead.
func (c Cursor) Advance(n int) Cursor {
	return Cursor{col: c.col, idx: c.idx + n}
}

// Deref returns the bytes at the cursor's current position.
func (c Cursor) Deref() []byte {
	return c.col.At(c.idx)
}

// LowerBound returns the first index in [start, end) whose entry is >=
// target in byte-lexicographic order, or end if none qualifies. It runs
// in O(log(end-start)) via binary search directly over the column, with no
// intermediate allocation.
func LowerBound(col *Column, start, end int, target []byte) int {
	lo, hi := start, end
	for lo < hi {
		mid := lo + (hi-lo)/2
		cur := NewCursor(col, mid)
		if bytes.Compare(cur.Deref(), target) < 0 {
			lo = mid + 1
		} else {
			hi = mid
		}
	}

	return lo
}
