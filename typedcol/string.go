package typedcol

import (
	"encoding/binary"
	"fmt"
	"hash"

	"github.com/arloliu/objcol/column"
	"github.com/arloliu/objcol/compress"
	"github.com/arloliu/objcol/errs"
	"github.com/arloliu/objcol/internal/arena"
	"github.com/arloliu/objcol/internal/strcol"
	"github.com/arloliu/objcol/value"
)

// StringColumn is a dense typed column of string values, backed by an
// offset-indexed byte-string column rather than a []string so its arena
// and compress codecs operate on one contiguous buffer.
type StringColumn struct {
	data  *strcol.Column
	nulls []bool
}

var _ column.ColumnOps = (*StringColumn)(nil)

// NewStringColumn creates an empty StringColumn.
func NewStringColumn() *StringColumn {
	return &StringColumn{data: strcol.New()}
}

func (c *StringColumn) Len() int { return c.data.Len() }

func (c *StringColumn) IsDefaultAt(n int) bool { return c.nulls[n] }

func (c *StringColumn) ReadAt(n int) value.Value {
	if c.nulls[n] {
		return value.Null()
	}

	return value.FromString(string(c.data.At(n)))
}

func (c *StringColumn) Insert(v value.Value) error {
	if v.IsNull() {
		c.InsertDefault()
		return nil
	}

	sv, ok := v.String()
	if !ok {
		return fmt.Errorf("%w: expected String, got %s", errs.ErrValueTypeMismatch, v.Kind())
	}
	c.data.Append([]byte(sv))
	c.nulls = append(c.nulls, false)

	return nil
}

func (c *StringColumn) TryInsert(v value.Value) bool {
	if v.IsNull() {
		c.InsertDefault()
		return true
	}

	sv, ok := v.String()
	if !ok {
		return false
	}
	c.data.Append([]byte(sv))
	c.nulls = append(c.nulls, false)

	return true
}

func (c *StringColumn) asString(src column.ColumnOps) (*StringColumn, error) {
	s, ok := src.(*StringColumn)
	if !ok {
		return nil, fmt.Errorf("%w: expected *StringColumn", errs.ErrColumnTypeMismatch)
	}

	return s, nil
}

func (c *StringColumn) InsertFrom(src column.ColumnOps, n int) error {
	s, err := c.asString(src)
	if err != nil {
		return err
	}
	c.data.AppendFrom(s.data, n)
	c.nulls = append(c.nulls, s.nulls[n])

	return nil
}

func (c *StringColumn) InsertRangeFrom(src column.ColumnOps, start, length int) error {
	s, err := c.asString(src)
	if err != nil {
		return err
	}
	c.data.AppendRangeFrom(s.data, start, length)
	c.nulls = append(c.nulls, s.nulls[start:start+length]...)

	return nil
}

func (c *StringColumn) InsertDefault() {
	c.data.Append(nil)
	c.nulls = append(c.nulls, true)
}

func (c *StringColumn) InsertManyDefaults(n int) {
	for i := 0; i < n; i++ {
		c.InsertDefault()
	}
}

func (c *StringColumn) PopBack(n int) {
	c.data.PopBack(n)
	c.nulls = c.nulls[:len(c.nulls)-n]
}

func (c *StringColumn) Reserve(n int) {
	c.data.Reserve(n)
	if cap(c.nulls)-len(c.nulls) < n {
		nn := make([]bool, len(c.nulls), len(c.nulls)+n)
		copy(nn, c.nulls)
		c.nulls = nn
	}
}

func (c *StringColumn) Filter(mask []bool) column.ColumnOps {
	out := NewStringColumn()
	out.data = c.data.Filter(mask)
	for i, keep := range mask {
		if keep {
			out.nulls = append(out.nulls, c.nulls[i])
		}
	}

	return out
}

func (c *StringColumn) Permute(perm []int, limit int) column.ColumnOps {
	if limit <= 0 || limit > len(perm) {
		limit = len(perm)
	}
	out := NewStringColumn()
	out.data = c.data.Permute(perm, limit)
	for i := 0; i < limit; i++ {
		out.nulls = append(out.nulls, c.nulls[perm[i]])
	}

	return out
}

func (c *StringColumn) Index(idx []int, limit int) column.ColumnOps { return c.Permute(idx, limit) }

func (c *StringColumn) Replicate(counts []int) column.ColumnOps {
	out := NewStringColumn()
	out.data = c.data.Replicate(counts)
	for i, n := range counts {
		for ; n > 0; n-- {
			out.nulls = append(out.nulls, c.nulls[i])
		}
	}

	return out
}

func (c *StringColumn) Scatter(k int, selector []int) []column.ColumnOps {
	shardData := c.data.Scatter(k, selector)
	shards := make([]*StringColumn, k)
	for i := range shards {
		shards[i] = &StringColumn{data: shardData[i]}
	}
	for i, d := range selector {
		shards[d].nulls = append(shards[d].nulls, c.nulls[i])
	}
	out := make([]column.ColumnOps, k)
	for i, s := range shards {
		out[i] = s
	}

	return out
}

func (c *StringColumn) CloneEmpty() column.ColumnOps { return NewStringColumn() }

func (c *StringColumn) CloneResized(n int) column.ColumnOps {
	out := NewStringColumn()
	out.InsertManyDefaults(n)

	return out
}

func (c *StringColumn) StructureEquals(other column.ColumnOps) bool {
	_, ok := other.(*StringColumn)

	return ok
}

func (c *StringColumn) ByteSize() int { return c.data.ByteSize() + len(c.nulls) }

func (c *StringColumn) AllocatedBytes() int { return c.data.AllocatedBytes() + cap(c.nulls) }

func (c *StringColumn) UpdateHash(n int, h hash.Hash64) {
	if c.nulls[n] {
		h.Write([]byte{0})
		return
	}
	h.Write([]byte{1})
	h.Write(c.data.At(n))
}

// arena entry layout: u8 null-flag, [u64 length, bytes if flag==1].
func (c *StringColumn) SerializeAt(n int, a *arena.Arena) (int, int) {
	if c.nulls[n] {
		return a.Write([]byte{0}), 1
	}

	s := c.data.At(n)
	header := make([]byte, 9)
	header[0] = 1
	binary.LittleEndian.PutUint64(header[1:], uint64(len(s)))
	start := a.Write(header)
	a.Write(s)

	return start, len(header) + len(s)
}

func (c *StringColumn) DeserializeAndInsert(buf []byte) (int, error) {
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
	c.data.Append(buf[9 : 9+n])
	c.nulls = append(c.nulls, false)

	return 9 + n, nil
}

func (c *StringColumn) SkipSerialized(buf []byte) int {
	if len(buf) > 0 && buf[0] == 0 {
		return 1
	}

	n := int(binary.LittleEndian.Uint64(buf[1:9]))

	return 9 + n
}

func (c *StringColumn) Compress() (*column.CompressHandle, error) {
	codec := compress.NewZstdCodec()
	tmp := arena.New(c.data.ByteSize() + len(c.nulls)*9)
	for i := 0; i < c.Len(); i++ {
		c.SerializeAt(i, tmp)
	}
	raw := tmp.Bytes()

	compressed, err := codec.Compress(raw)
	if err != nil {
		return nil, err
	}

	rows := c.Len()

	return column.NewCompressHandle(rows, len(compressed), func() (column.ColumnOps, error) {
		decompressed, err := codec.Decompress(compressed)
		if err != nil {
			return nil, err
		}
		out := NewStringColumn()
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
