// Package column implements ObjectColumn: a columnar container for
// semi-structured object rows, combining a fixed set of typed paths, a
// capped set of self-describing dynamic paths, and a shared-data overflow
// area for everything beyond the dynamic-path cap.
package column

import (
	"hash"

	"github.com/arloliu/objcol/internal/arena"
	"github.com/arloliu/objcol/value"
)

// ColumnOps is the capability interface every typed or dynamic sub-column
// of an ObjectColumn implements. ObjectColumn dispatches through this
// interface rather than switching on a kind tag, so adding a new scalar
// type never touches ObjectColumn itself.
type ColumnOps interface {
	// Len returns the number of rows.
	Len() int
	// IsDefaultAt reports whether row n holds the column's default value.
	IsDefaultAt(n int) bool
	// ReadAt returns the value at row n (Null for an absent dynamic value).
	ReadAt(n int) value.Value

	// Insert appends v, panicking-free; callers that need fallible
	// insertion use TryInsert.
	Insert(v value.Value) error
	// TryInsert appends v, reporting success without panicking or
	// leaving partial state on failure.
	TryInsert(v value.Value) bool
	// InsertFrom copies row n of src as a new row of the receiver.
	InsertFrom(src ColumnOps, n int) error
	// InsertRangeFrom copies rows [start, start+length) of src.
	InsertRangeFrom(src ColumnOps, start, length int) error
	// InsertDefault appends one default-valued row.
	InsertDefault()
	// InsertManyDefaults appends n default-valued rows.
	InsertManyDefaults(n int)
	// PopBack removes the last n rows.
	PopBack(n int)
	// Reserve pre-allocates capacity for at least n additional rows.
	Reserve(n int)

	// Filter, Permute, Index, Replicate, Scatter produce new columns with
	// rearranged rows; the receiver is never mutated.
	Filter(mask []bool) ColumnOps
	Permute(perm []int, limit int) ColumnOps
	Index(idx []int, limit int) ColumnOps
	Replicate(counts []int) ColumnOps
	Scatter(k int, selector []int) []ColumnOps

	// CloneEmpty returns a new column of the same structure with zero rows.
	CloneEmpty() ColumnOps
	// CloneResized returns a new column of the same structure with n
	// default rows.
	CloneResized(n int) ColumnOps
	// StructureEquals reports whether other has the same declared shape
	// (type, not values).
	StructureEquals(other ColumnOps) bool

	// ByteSize returns the number of bytes the column's values occupy.
	ByteSize() int
	// AllocatedBytes returns the column's total memory footprint.
	AllocatedBytes() int
	// UpdateHash folds row n's value into h.
	UpdateHash(n int, h hash.Hash64)

	// SerializeAt writes row n's self-describing arena encoding
	// (excluding the path name) into a and returns its span.
	SerializeAt(n int, a *arena.Arena) (start, length int)
	// DeserializeAndInsert reads one arena-encoded value from the front
	// of buf, appends it as a new row, and returns the bytes consumed.
	DeserializeAndInsert(buf []byte) (consumed int, err error)
	// SkipSerialized returns the byte length of one arena-encoded value
	// at the front of buf without materializing it.
	SkipSerialized(buf []byte) (consumed int)

	// Compress returns a lazily-decompressible handle for the column.
	Compress() (*CompressHandle, error)
}

// DynamicColumnOps extends ColumnOps with the capabilities specific to
// self-describing dynamic paths.
type DynamicColumnOps interface {
	ColumnOps

	// IsNullAt reports whether row n holds a null value.
	IsNullAt(n int) bool
	// NumberOfDefaultRows returns how many rows hold the default (absent)
	// value, used by StructureSelector when per-part statistics are
	// unavailable.
	NumberOfDefaultRows() int
	// TakeDynamicStructureFromSourceColumns resets the receiver's nested
	// dynamic structure (if any) by recursing the structure-selection
	// routine over sources. The receiver must be empty.
	TakeDynamicStructureFromSourceColumns(sources []DynamicColumnOps) error
}
