// Package dynamiccol implements the self-describing dynamic sub-column an
// ObjectColumn's dynamic_paths table holds: unlike a typedcol column, each
// row may carry a different value.Kind, up to a per-path cap on the
// number of distinct non-null kinds (max_dynamic_types) a path may hold
// before it would need a further fallback representation.
package dynamiccol

import (
	"encoding/binary"
	"fmt"
	"hash"

	"github.com/arloliu/objcol/column"
	"github.com/arloliu/objcol/compress"
	"github.com/arloliu/objcol/errs"
	"github.com/arloliu/objcol/internal/arena"
	"github.com/arloliu/objcol/value"
)

// Column is a dynamic sub-column: a sequence of heterogeneous scalar
// values (including null, meaning "absent" per invariant 5) self-limited
// to maxTypes distinct non-null kinds.
type Column struct {
	values   []value.Value
	maxTypes int
	kinds    map[value.Kind]struct{}
}

var _ column.DynamicColumnOps = (*Column)(nil)

// New creates an empty dynamic column capped at maxTypes distinct
// non-null value kinds.
func New(maxTypes int) *Column {
	return &Column{maxTypes: maxTypes, kinds: make(map[value.Kind]struct{})}
}

// MaxTypes returns the column's type-diversity cap.
func (c *Column) MaxTypes() int { return c.maxTypes }

func (c *Column) Len() int { return len(c.values) }

func (c *Column) IsDefaultAt(n int) bool { return c.values[n].IsNull() }

func (c *Column) IsNullAt(n int) bool { return c.values[n].IsNull() }

func (c *Column) ReadAt(n int) value.Value { return c.values[n] }

// NumberOfDefaultRows returns the count of null (absent) rows, the
// fallback non-null-tally source StructureSelector uses when a source
// column carries no persisted statistics.
func (c *Column) NumberOfDefaultRows() int {
	n := 0
	for _, v := range c.values {
		if v.IsNull() {
			n++
		}
	}

	return n
}

func (c *Column) canAccept(v value.Value) bool {
	if v.IsNull() {
		return true
	}
	if _, ok := c.kinds[v.Kind()]; ok {
		return true
	}

	return len(c.kinds) < c.maxTypes
}

func (c *Column) track(v value.Value) {
	if !v.IsNull() {
		c.kinds[v.Kind()] = struct{}{}
	}
}

func (c *Column) Insert(v value.Value) error {
	if !c.canAccept(v) {
		return fmt.Errorf("%w: already holds %d distinct types", errs.ErrDynamicPathCapacityExceeded, c.maxTypes)
	}
	c.track(v)
	c.values = append(c.values, v)

	return nil
}

func (c *Column) TryInsert(v value.Value) bool {
	if !c.canAccept(v) {
		return false
	}
	c.track(v)
	c.values = append(c.values, v)

	return true
}

func (c *Column) asDynamic(src column.ColumnOps) (*Column, error) {
	s, ok := src.(*Column)
	if !ok {
		return nil, fmt.Errorf("%w: expected *dynamiccol.Column", errs.ErrColumnTypeMismatch)
	}

	return s, nil
}

// InsertFrom copies a row verbatim, tracking the source value's kind
// without re-checking the type cap: the source column already validated
// it under the same (or a looser) cap when the value was first inserted.
func (c *Column) InsertFrom(src column.ColumnOps, n int) error {
	s, err := c.asDynamic(src)
	if err != nil {
		return err
	}
	v := s.values[n]
	c.track(v)
	c.values = append(c.values, v)

	return nil
}

func (c *Column) InsertRangeFrom(src column.ColumnOps, start, length int) error {
	s, err := c.asDynamic(src)
	if err != nil {
		return err
	}
	for i := start; i < start+length; i++ {
		v := s.values[i]
		c.track(v)
		c.values = append(c.values, v)
	}

	return nil
}

func (c *Column) InsertDefault() {
	c.values = append(c.values, value.Null())
}

func (c *Column) InsertManyDefaults(n int) {
	for i := 0; i < n; i++ {
		c.InsertDefault()
	}
}

func (c *Column) PopBack(n int) {
	c.values = c.values[:len(c.values)-n]
}

func (c *Column) Reserve(n int) {
	if cap(c.values)-len(c.values) < n {
		nv := make([]value.Value, len(c.values), len(c.values)+n)
		copy(nv, c.values)
		c.values = nv
	}
}

func (c *Column) Filter(mask []bool) column.ColumnOps {
	out := New(c.maxTypes)
	out.Reserve(len(mask))
	for i, keep := range mask {
		if keep {
			out.track(c.values[i])
			out.values = append(out.values, c.values[i])
		}
	}

	return out
}

func (c *Column) Permute(perm []int, limit int) column.ColumnOps {
	if limit <= 0 || limit > len(perm) {
		limit = len(perm)
	}
	out := New(c.maxTypes)
	out.Reserve(limit)
	for i := 0; i < limit; i++ {
		v := c.values[perm[i]]
		out.track(v)
		out.values = append(out.values, v)
	}

	return out
}

func (c *Column) Index(idx []int, limit int) column.ColumnOps { return c.Permute(idx, limit) }

func (c *Column) Replicate(counts []int) column.ColumnOps {
	out := New(c.maxTypes)
	for i, n := range counts {
		for ; n > 0; n-- {
			out.track(c.values[i])
			out.values = append(out.values, c.values[i])
		}
	}

	return out
}

func (c *Column) Scatter(k int, selector []int) []column.ColumnOps {
	shards := make([]*Column, k)
	for i := range shards {
		shards[i] = New(c.maxTypes)
	}
	for i, d := range selector {
		shards[d].track(c.values[i])
		shards[d].values = append(shards[d].values, c.values[i])
	}
	out := make([]column.ColumnOps, k)
	for i, s := range shards {
		out[i] = s
	}

	return out
}

func (c *Column) CloneEmpty() column.ColumnOps { return New(c.maxTypes) }

func (c *Column) CloneResized(n int) column.ColumnOps {
	out := New(c.maxTypes)
	out.InsertManyDefaults(n)

	return out
}

// StructureEquals compares only the type-diversity cap: dynamic paths are
// value-level, not structural, per ObjectColumn.StructureEquals (§4.4).
func (c *Column) StructureEquals(other column.ColumnOps) bool {
	o, ok := other.(*Column)

	return ok && o.maxTypes == c.maxTypes
}

func (c *Column) ByteSize() int {
	size := 0
	for _, v := range c.values {
		size += valueByteSize(v)
	}

	return size
}

func (c *Column) AllocatedBytes() int { return cap(c.values) * 32 }

func valueByteSize(v value.Value) int {
	switch v.Kind() {
	case value.KindNull:
		return 1
	case value.KindBool:
		return 2
	case value.KindInt64:
		return 9
	case value.KindFloat64:
		return 9
	case value.KindString:
		s, _ := v.String()
		return 9 + len(s)
	default:
		return 1
	}
}

func (c *Column) UpdateHash(n int, h hash.Hash64) {
	v := c.values[n]
	h.Write([]byte{byte(v.Kind())})
	switch v.Kind() {
	case value.KindBool:
		b, _ := v.Bool()
		if b {
			h.Write([]byte{1})
		} else {
			h.Write([]byte{0})
		}
	case value.KindInt64:
		i, _ := v.Int64()
		var buf [8]byte
		binary.LittleEndian.PutUint64(buf[:], uint64(i))
		h.Write(buf[:])
	case value.KindFloat64:
		f, _ := v.Float64()
		var buf [8]byte
		binary.LittleEndian.PutUint64(buf[:], uint64(int64(f*1e9)))
		h.Write(buf[:])
	case value.KindString:
		s, _ := v.String()
		h.Write([]byte(s))
	}
}

// arena entry layout: u8 null-flag, [u64 encoded-length, msgpack bytes if flag==1].
func (c *Column) SerializeAt(n int, a *arena.Arena) (int, int) {
	v := c.values[n]
	if v.IsNull() {
		return a.Write([]byte{0}), 1
	}

	encoded, err := value.DefaultCodec.EncodeToBytes(v)
	if err != nil {
		// The codec only fails on values this column never holds
		// (unsupported Go types reaching msgpack); treat as null rather
		// than panicking a bulk operation.
		return a.Write([]byte{0}), 1
	}

	header := make([]byte, 9)
	header[0] = 1
	binary.LittleEndian.PutUint64(header[1:], uint64(len(encoded)))
	start := a.Write(header)
	a.Write(encoded)

	return start, len(header) + len(encoded)
}

func (c *Column) DeserializeAndInsert(buf []byte) (int, error) {
	if len(buf) < 1 {
		return 0, errs.ErrTruncatedArenaEntry
	}
	if buf[0] == 0 {
		c.InsertDefault()
		return 1, nil
	}
	if len(buf) < 9 {
		return 0, errs.ErrTruncatedArenaEntry
	}
	n := int(binary.LittleEndian.Uint64(buf[1:9]))
	if len(buf) < 9+n {
		return 0, errs.ErrTruncatedArenaEntry
	}
	v, err := value.DefaultCodec.DecodeBytes(buf[9 : 9+n])
	if err != nil {
		return 0, err
	}
	if err := c.Insert(v); err != nil {
		return 0, err
	}

	return 9 + n, nil
}

func (c *Column) SkipSerialized(buf []byte) int {
	if len(buf) > 0 && buf[0] == 0 {
		return 1
	}

	n := int(binary.LittleEndian.Uint64(buf[1:9]))

	return 9 + n
}

func (c *Column) Compress() (*column.CompressHandle, error) {
	codec := compress.NewZstdCodec()
	tmp := arena.New(c.ByteSize())
	for i := range c.values {
		c.SerializeAt(i, tmp)
	}
	raw := tmp.Bytes()

	compressed, err := codec.Compress(raw)
	if err != nil {
		return nil, err
	}

	rows := len(c.values)
	maxTypes := c.maxTypes

	return column.NewCompressHandle(rows, len(compressed), func() (column.ColumnOps, error) {
		decompressed, err := codec.Decompress(compressed)
		if err != nil {
			return nil, err
		}
		out := New(maxTypes)
		out.Reserve(rows)
		pos := 0
		for i := 0; i < rows; i++ {
			n, err := out.DeserializeAndInsert(decompressed[pos:])
			if err != nil {
				return nil, err
			}
			pos += n
		}

		return out, nil
	}), nil
}

// TakeDynamicStructureFromSourceColumns resets nested dynamic structure
// from sources. Flat scalar dynamic columns (no nested object-in-object
// structure is in scope) have nothing further to select, so this
// degenerates to the emptiness precondition every StructureSelector step
// must hold before rebuilding; it exists so Column satisfies
// column.DynamicColumnOps and so a future nested-object extension has a
// seam to implement actual recursion in.
func (c *Column) TakeDynamicStructureFromSourceColumns(sources []column.DynamicColumnOps) error {
	if c.Len() != 0 {
		return errs.ErrNonEmptyColumn
	}

	return nil
}
