package typedcol

import (
	"encoding/binary"
	"fmt"
	"hash"
	"math"

	"github.com/arloliu/objcol/column"
	"github.com/arloliu/objcol/compress"
	"github.com/arloliu/objcol/errs"
	"github.com/arloliu/objcol/internal/arena"
	"github.com/arloliu/objcol/value"
)

// Float64Column is a dense typed column of float64 values.
type Float64Column struct {
	values []float64
	nulls  []bool
}

var _ column.ColumnOps = (*Float64Column)(nil)

// NewFloat64Column creates an empty Float64Column.
func NewFloat64Column() *Float64Column { return &Float64Column{} }

func (c *Float64Column) Len() int { return len(c.values) }

func (c *Float64Column) IsDefaultAt(n int) bool { return c.nulls[n] }

func (c *Float64Column) ReadAt(n int) value.Value {
	if c.nulls[n] {
		return value.Null()
	}

	return value.FromFloat64(c.values[n])
}

func (c *Float64Column) Insert(v value.Value) error {
	if v.IsNull() {
		c.InsertDefault()
		return nil
	}

	fv, ok := v.Float64()
	if !ok {
		return fmt.Errorf("%w: expected Float64, got %s", errs.ErrValueTypeMismatch, v.Kind())
	}
	c.values = append(c.values, fv)
	c.nulls = append(c.nulls, false)

	return nil
}

func (c *Float64Column) TryInsert(v value.Value) bool {
	if v.IsNull() {
		c.InsertDefault()
		return true
	}

	fv, ok := v.Float64()
	if !ok {
		return false
	}
	c.values = append(c.values, fv)
	c.nulls = append(c.nulls, false)

	return true
}

func (c *Float64Column) asFloat64(src column.ColumnOps) (*Float64Column, error) {
	s, ok := src.(*Float64Column)
	if !ok {
		return nil, fmt.Errorf("%w: expected *Float64Column", errs.ErrColumnTypeMismatch)
	}

	return s, nil
}

func (c *Float64Column) InsertFrom(src column.ColumnOps, n int) error {
	s, err := c.asFloat64(src)
	if err != nil {
		return err
	}
	c.values = append(c.values, s.values[n])
	c.nulls = append(c.nulls, s.nulls[n])

	return nil
}

func (c *Float64Column) InsertRangeFrom(src column.ColumnOps, start, length int) error {
	s, err := c.asFloat64(src)
	if err != nil {
		return err
	}
	c.values = append(c.values, s.values[start:start+length]...)
	c.nulls = append(c.nulls, s.nulls[start:start+length]...)

	return nil
}

func (c *Float64Column) InsertDefault() {
	c.values = append(c.values, 0)
	c.nulls = append(c.nulls, true)
}

func (c *Float64Column) InsertManyDefaults(n int) {
	for i := 0; i < n; i++ {
		c.InsertDefault()
	}
}

func (c *Float64Column) PopBack(n int) {
	l := len(c.values) - n
	c.values = c.values[:l]
	c.nulls = c.nulls[:l]
}

func (c *Float64Column) Reserve(n int) {
	if cap(c.values)-len(c.values) < n {
		nv := make([]float64, len(c.values), len(c.values)+n)
		copy(nv, c.values)
		c.values = nv
	}
	if cap(c.nulls)-len(c.nulls) < n {
		nn := make([]bool, len(c.nulls), len(c.nulls)+n)
		copy(nn, c.nulls)
		c.nulls = nn
	}
}

func (c *Float64Column) Filter(mask []bool) column.ColumnOps {
	out := NewFloat64Column()
	out.Reserve(len(mask))
	for i, keep := range mask {
		if keep {
			out.values = append(out.values, c.values[i])
			out.nulls = append(out.nulls, c.nulls[i])
		}
	}

	return out
}

func (c *Float64Column) Permute(perm []int, limit int) column.ColumnOps {
	if limit <= 0 || limit > len(perm) {
		limit = len(perm)
	}
	out := NewFloat64Column()
	out.Reserve(limit)
	for i := 0; i < limit; i++ {
		out.values = append(out.values, c.values[perm[i]])
		out.nulls = append(out.nulls, c.nulls[perm[i]])
	}

	return out
}

func (c *Float64Column) Index(idx []int, limit int) column.ColumnOps {
	return c.Permute(idx, limit)
}

func (c *Float64Column) Replicate(counts []int) column.ColumnOps {
	out := NewFloat64Column()
	for i, n := range counts {
		for ; n > 0; n-- {
			out.values = append(out.values, c.values[i])
			out.nulls = append(out.nulls, c.nulls[i])
		}
	}

	return out
}

func (c *Float64Column) Scatter(k int, selector []int) []column.ColumnOps {
	shards := make([]*Float64Column, k)
	for i := range shards {
		shards[i] = NewFloat64Column()
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

func (c *Float64Column) CloneEmpty() column.ColumnOps { return NewFloat64Column() }

func (c *Float64Column) CloneResized(n int) column.ColumnOps {
	out := NewFloat64Column()
	out.InsertManyDefaults(n)

	return out
}

func (c *Float64Column) StructureEquals(other column.ColumnOps) bool {
	_, ok := other.(*Float64Column)

	return ok
}

func (c *Float64Column) ByteSize() int { return len(c.values)*8 + len(c.nulls) }

func (c *Float64Column) AllocatedBytes() int { return cap(c.values)*8 + cap(c.nulls) }

func (c *Float64Column) UpdateHash(n int, h hash.Hash64) {
	if c.nulls[n] {
		h.Write([]byte{0})
		return
	}
	var buf [9]byte
	buf[0] = 1
	binary.LittleEndian.PutUint64(buf[1:], math.Float64bits(c.values[n]))
	h.Write(buf[:])
}

// arena entry layout: u8 null-flag, [f64 value if flag==1].
func (c *Float64Column) SerializeAt(n int, a *arena.Arena) (int, int) {
	if c.nulls[n] {
		return a.Write([]byte{0}), 1
	}

	var buf [9]byte
	buf[0] = 1
	binary.LittleEndian.PutUint64(buf[1:], math.Float64bits(c.values[n]))

	return a.Write(buf[:]), len(buf)
}

func (c *Float64Column) DeserializeAndInsert(buf []byte) (int, error) {
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
	v := math.Float64frombits(binary.LittleEndian.Uint64(buf[1:9]))
	c.values = append(c.values, v)
	c.nulls = append(c.nulls, false)

	return 9, nil
}

func (c *Float64Column) SkipSerialized(buf []byte) int {
	if len(buf) > 0 && buf[0] == 0 {
		return 1
	}

	return 9
}

func (c *Float64Column) Compress() (*column.CompressHandle, error) {
	codec := compress.NewZstdCodec()
	raw := make([]byte, 0, len(c.values)*9)
	tmp := arena.New(len(c.values) * 9)
	for i := range c.values {
		start, length := c.SerializeAt(i, tmp)
		raw = append(raw, tmp.At(start, length)...)
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
		out := NewFloat64Column()
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
