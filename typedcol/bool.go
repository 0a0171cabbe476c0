package typedcol

import (
	"fmt"
	"hash"

	"github.com/arloliu/objcol/column"
	"github.com/arloliu/objcol/compress"
	"github.com/arloliu/objcol/errs"
	"github.com/arloliu/objcol/internal/arena"
	"github.com/arloliu/objcol/value"
)

// BoolColumn is a dense typed column of bool values.
type BoolColumn struct {
	values []bool
	nulls  []bool
}

var _ column.ColumnOps = (*BoolColumn)(nil)

// NewBoolColumn creates an empty BoolColumn.
func NewBoolColumn() *BoolColumn { return &BoolColumn{} }

func (c *BoolColumn) Len() int { return len(c.values) }

func (c *BoolColumn) IsDefaultAt(n int) bool { return c.nulls[n] }

func (c *BoolColumn) ReadAt(n int) value.Value {
	if c.nulls[n] {
		return value.Null()
	}

	return value.FromBool(c.values[n])
}

func (c *BoolColumn) Insert(v value.Value) error {
	if v.IsNull() {
		c.InsertDefault()
		return nil
	}

	bv, ok := v.Bool()
	if !ok {
		return fmt.Errorf("%w: expected Bool, got %s", errs.ErrValueTypeMismatch, v.Kind())
	}
	c.values = append(c.values, bv)
	c.nulls = append(c.nulls, false)

	return nil
}

func (c *BoolColumn) TryInsert(v value.Value) bool {
	if v.IsNull() {
		c.InsertDefault()
		return true
	}

	bv, ok := v.Bool()
	if !ok {
		return false
	}
	c.values = append(c.values, bv)
	c.nulls = append(c.nulls, false)

	return true
}

func (c *BoolColumn) asBool(src column.ColumnOps) (*BoolColumn, error) {
	s, ok := src.(*BoolColumn)
	if !ok {
		return nil, fmt.Errorf("%w: expected *BoolColumn", errs.ErrColumnTypeMismatch)
	}

	return s, nil
}

func (c *BoolColumn) InsertFrom(src column.ColumnOps, n int) error {
	s, err := c.asBool(src)
	if err != nil {
		return err
	}
	c.values = append(c.values, s.values[n])
	c.nulls = append(c.nulls, s.nulls[n])

	return nil
}

func (c *BoolColumn) InsertRangeFrom(src column.ColumnOps, start, length int) error {
	s, err := c.asBool(src)
	if err != nil {
		return err
	}
	c.values = append(c.values, s.values[start:start+length]...)
	c.nulls = append(c.nulls, s.nulls[start:start+length]...)

	return nil
}

func (c *BoolColumn) InsertDefault() {
	c.values = append(c.values, false)
	c.nulls = append(c.nulls, true)
}

func (c *BoolColumn) InsertManyDefaults(n int) {
	for i := 0; i < n; i++ {
		c.InsertDefault()
	}
}

func (c *BoolColumn) PopBack(n int) {
	l := len(c.values) - n
	c.values = c.values[:l]
	c.nulls = c.nulls[:l]
}

func (c *BoolColumn) Reserve(n int) {
	if cap(c.values)-len(c.values) < n {
		nv := make([]bool, len(c.values), len(c.values)+n)
		copy(nv, c.values)
		c.values = nv
	}
	if cap(c.nulls)-len(c.nulls) < n {
		nn := make([]bool, len(c.nulls), len(c.nulls)+n)
		copy(nn, c.nulls)
		c.nulls = nn
	}
}

func (c *BoolColumn) Filter(mask []bool) column.ColumnOps {
	out := NewBoolColumn()
	out.Reserve(len(mask))
	for i, keep := range mask {
		if keep {
			out.values = append(out.values, c.values[i])
			out.nulls = append(out.nulls, c.nulls[i])
		}
	}

	return out
}

func (c *BoolColumn) Permute(perm []int, limit int) column.ColumnOps {
	if limit <= 0 || limit > len(perm) {
		limit = len(perm)
	}
	out := NewBoolColumn()
	out.Reserve(limit)
	for i := 0; i < limit; i++ {
		out.values = append(out.values, c.values[perm[i]])
		out.nulls = append(out.nulls, c.nulls[perm[i]])
	}

	return out
}

func (c *BoolColumn) Index(idx []int, limit int) column.ColumnOps { return c.Permute(idx, limit) }

func (c *BoolColumn) Replicate(counts []int) column.ColumnOps {
	out := NewBoolColumn()
	for i, n := range counts {
		for ; n > 0; n-- {
			out.values = append(out.values, c.values[i])
			out.nulls = append(out.nulls, c.nulls[i])
		}
	}

	return out
}

func (c *BoolColumn) Scatter(k int, selector []int) []column.ColumnOps {
	shards := make([]*BoolColumn, k)
	for i := range shards {
		shards[i] = NewBoolColumn()
	}
	for i, d := range selector {
		shards[d].values = append(shards[d].values, c.values[i])
		shards[d].nulls = append(shards[d].nulls, c.nulls[i])
	}
	out := make([]column.ColumnOps, k)
	for i, s := range shards {
		out[i] = s
	}

	return out
}

func (c *BoolColumn) CloneEmpty() column.ColumnOps { return NewBoolColumn() }

func (c *BoolColumn) CloneResized(n int) column.ColumnOps {
	out := NewBoolColumn()
	out.InsertManyDefaults(n)

	return out
}

func (c *BoolColumn) StructureEquals(other column.ColumnOps) bool {
	_, ok := other.(*BoolColumn)

	return ok
}

func (c *BoolColumn) ByteSize() int { return len(c.values) + len(c.nulls) }

func (c *BoolColumn) AllocatedBytes() int { return cap(c.values) + cap(c.nulls) }

func (c *BoolColumn) UpdateHash(n int, h hash.Hash64) {
	if c.nulls[n] {
		h.Write([]byte{0})
		return
	}
	if c.values[n] {
		h.Write([]byte{1, 1})
	} else {
		h.Write([]byte{1, 0})
	}
}

// arena entry layout: u8 tag (0 = null, 1 = false, 2 = true).
func (c *BoolColumn) SerializeAt(n int, a *arena.Arena) (int, int) {
	tag := byte(0)
	if !c.nulls[n] {
		if c.values[n] {
			tag = 2
		} else {
			tag = 1
		}
	}

	return a.Write([]byte{tag}), 1
}

func (c *BoolColumn) DeserializeAndInsert(buf []byte) (int, error) {
	if len(buf) < 1 {
		return 0, errs.ErrTruncatedArenaEntry
	}
	switch buf[0] {
	case 0:
		c.InsertDefault()
	case 1:
		c.values = append(c.values, false)
		c.nulls = append(c.nulls, false)
	case 2:
		c.values = append(c.values, true)
		c.nulls = append(c.nulls, false)
	default:
		return 0, errs.ErrTruncatedArenaEntry
	}

	return 1, nil
}

func (c *BoolColumn) SkipSerialized(buf []byte) int { return 1 }

func (c *BoolColumn) Compress() (*column.CompressHandle, error) {
	codec := compress.NewS2Codec()
	raw := make([]byte, len(c.values))
	tmp := arena.New(len(c.values))
	for i := range c.values {
		start, length := c.SerializeAt(i, tmp)
		copy(raw[i:i+length], tmp.At(start, length))
	}

	compressed, err := codec.Compress(raw)
	if err != nil {
		return nil, err
	}

	rows := len(c.values)

	return column.NewCompressHandle(rows, len(compressed), func() (column.ColumnOps, error) {
		decompressed, err := codec.Decompress(compressed)
		if err != nil {
			return nil, err
		}
		out := NewBoolColumn()
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
