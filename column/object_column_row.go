package column

import (
	"github.com/arloliu/objcol/value"
)

// RowEntry is one (path, value) pair of a row passed to Insert/TryInsert.
type RowEntry struct {
	Path  string
	Value value.Value
}

// Row is a caller-provided object row. Callers are expected to present
// entries sorted by Path; Insert/TryInsert sort the subset that lands in
// shared data regardless, so an unsorted Row is handled correctly but
// less efficiently.
type Row []RowEntry

// Insert appends row, resolving each path against typed paths, then
// dynamic paths, then (capacity permitting) a newly created dynamic
// path, then shared-data overflow. Non-null shared-data overflow entries
// are written in sorted order (invariant 3); null values past capacity
// are dropped (invariant 5, boundary B2). Every sub-column not written
// this row is padded with a default so invariant 1 holds on return.
func (c *ObjectColumn) Insert(row Row) error {
	n := c.Size()
	written := make(map[string]bool, len(row))
	var spill []Entry

	for _, e := range row {
		written[e.Path] = true

		if col, ok := c.typedPaths.Get(e.Path); ok {
			if err := col.Insert(e.Value); err != nil {
				return err
			}

			continue
		}

		if col, ok := c.dynamicPaths.Get(e.Path); ok {
			if err := col.Insert(e.Value); err != nil {
				return err
			}

			continue
		}

		if c.dynamicPaths.Len() < c.maxDynamicPaths {
			newCol := c.newDynamicColumn()
			newCol.InsertManyDefaults(n)
			if err := newCol.Insert(e.Value); err != nil {
				return err
			}
			c.dynamicPaths.Set(e.Path, newCol)

			continue
		}

		if !e.Value.IsNull() {
			encoded, err := value.DefaultCodec.EncodeToBytes(e.Value)
			if err != nil {
				return err
			}
			spill = append(spill, Entry{Path: e.Path, Value: encoded})
		}
		// Capacity hit with a null value: dropped silently (invariant 5).
	}

	SortEntries(spill)
	c.sharedData.AppendRow(spill)

	c.padUnwritten(written)

	return nil
}

// padUnwritten appends one default row to every typed/dynamic column not
// present in written, bringing every sub-column back to a common length.
func (c *ObjectColumn) padUnwritten(written map[string]bool) {
	for i := 0; i < c.typedPaths.Len(); i++ {
		path, col := c.typedPaths.At(i)
		if !written[path] {
			col.InsertDefault()
		}
	}
	for i := 0; i < c.dynamicPaths.Len(); i++ {
		path, col := c.dynamicPaths.At(i)
		if !written[path] {
			col.InsertDefault()
		}
	}
}

// TryInsert is Insert's fallible counterpart: on any sub-column failure,
// every sub-column is rolled back to its pre-call length and false is
// returned, with no partial row left behind. Shared-data is never
// partially mutated in the first place (spill entries are staged in a
// local slice and only appended once every other entry has succeeded),
// so no separate shared-data rollback bookkeeping is needed.
func (c *ObjectColumn) TryInsert(row Row) bool {
	n := c.Size()
	written := make(map[string]bool, len(row))
	var spill []Entry
	var newPaths []string
	ok := true

	for _, e := range row {
		written[e.Path] = true

		switch {
		case c.typedPaths.Has(e.Path):
			col, _ := c.typedPaths.Get(e.Path)
			if !col.TryInsert(e.Value) {
				ok = false
			}
		case c.dynamicPaths.Has(e.Path):
			col, _ := c.dynamicPaths.Get(e.Path)
			if !col.TryInsert(e.Value) {
				ok = false
			}
		case c.dynamicPaths.Len() < c.maxDynamicPaths:
			newCol := c.newDynamicColumn()
			newCol.InsertManyDefaults(n)
			if !newCol.TryInsert(e.Value) {
				ok = false
			} else {
				c.dynamicPaths.Set(e.Path, newCol)
				newPaths = append(newPaths, e.Path)
			}
		default:
			if !e.Value.IsNull() {
				encoded, err := value.DefaultCodec.EncodeToBytes(e.Value)
				if err != nil {
					ok = false
				} else {
					spill = append(spill, Entry{Path: e.Path, Value: encoded})
				}
			}
		}

		if !ok {
			break
		}
	}

	if !ok {
		c.rollbackTo(n, newPaths)

		return false
	}

	SortEntries(spill)
	c.sharedData.AppendRow(spill)
	c.padUnwritten(written)

	return true
}

// rollbackTo pops every sub-column back to n rows and removes any
// dynamic path registered during the failed attempt (newPaths), so the
// column's path set, not just its row counts, returns to its pre-call
// state.
func (c *ObjectColumn) rollbackTo(n int, newPaths []string) {
	for i := 0; i < c.typedPaths.Len(); i++ {
		_, col := c.typedPaths.At(i)
		if col.Len() > n {
			col.PopBack(col.Len() - n)
		}
	}
	for i := 0; i < c.dynamicPaths.Len(); i++ {
		_, col := c.dynamicPaths.At(i)
		if col.Len() > n {
			col.PopBack(col.Len() - n)
		}
	}
	for _, path := range newPaths {
		c.dynamicPaths.Delete(path)
	}
}

// InsertFrom copies row `row` of src as one new row of the receiver.
func (c *ObjectColumn) InsertFrom(src *ObjectColumn, row int) error {
	return c.InsertRangeFrom(src, row, 1)
}

// InsertRangeFrom copies rows [start, start+length) of src. Typed paths
// are copied directly (the schemas are assumed equal; an absent typed
// path on the destination is a caller contract violation). Dynamic paths
// are copied directly where already present on the destination, created
// fresh where there is spare dynamic-path capacity, and otherwise
// deferred into the shared-data merge below. The merge interleaves each
// target row's source shared-data run with the deferred-path values in
// sorted order in O(k+m) per row via MergeRowSorted, not a sort.
func (c *ObjectColumn) InsertRangeFrom(src *ObjectColumn, start, length int) error {
	for i := 0; i < c.typedPaths.Len(); i++ {
		path, dstCol := c.typedPaths.At(i)
		srcCol, ok := src.typedPaths.Get(path)
		if !ok {
			return errUnknownTypedPath(path)
		}
		if err := dstCol.InsertRangeFrom(srcCol, start, length); err != nil {
			return err
		}
	}

	type deferredPath struct {
		path string
		col  DynamicColumnOps
	}

	var deferred []deferredPath
	written := make(map[string]bool)

	for i := 0; i < src.dynamicPaths.Len(); i++ {
		path, srcCol := src.dynamicPaths.At(i)

		if dstCol, ok := c.dynamicPaths.Get(path); ok {
			if err := dstCol.InsertRangeFrom(srcCol, start, length); err != nil {
				return err
			}
			written[path] = true

			continue
		}

		if c.dynamicPaths.Len() < c.maxDynamicPaths {
			newCol := c.newDynamicColumn()
			newCol.InsertManyDefaults(c.Size())
			if err := newCol.InsertRangeFrom(srcCol, start, length); err != nil {
				return err
			}
			c.dynamicPaths.Set(path, newCol)
			written[path] = true

			continue
		}

		deferred = append(deferred, deferredPath{path: path, col: srcCol})
	}

	for r := start; r < start+length; r++ {
		sourceRow := src.sharedData.RowEntries(r)

		var spill []Entry
		for _, d := range deferred {
			v := d.col.ReadAt(r)
			if v.IsNull() {
				continue
			}
			encoded, err := value.DefaultCodec.EncodeToBytes(v)
			if err != nil {
				return err
			}
			spill = append(spill, Entry{Path: d.path, Value: encoded})
		}
		SortEntries(spill)
		c.sharedData.AppendRow(MergeRowSorted(sourceRow, spill))
	}

	for i := 0; i < c.dynamicPaths.Len(); i++ {
		path, col := c.dynamicPaths.At(i)
		if !written[path] {
			col.InsertManyDefaults(length)
		}
	}

	return nil
}

// ReadRow materializes row n as a Row: every typed-path value, every
// non-null dynamic-path value, and every decoded shared-data entry.
func (c *ObjectColumn) ReadRow(n int) Row {
	var row Row

	for i := 0; i < c.typedPaths.Len(); i++ {
		path, col := c.typedPaths.At(i)
		row = append(row, RowEntry{Path: path, Value: col.ReadAt(n)})
	}
	for i := 0; i < c.dynamicPaths.Len(); i++ {
		path, col := c.dynamicPaths.At(i)
		if col.IsNullAt(n) {
			continue
		}
		row = append(row, RowEntry{Path: path, Value: col.ReadAt(n)})
	}
	for _, e := range c.sharedData.RowEntries(n) {
		v, err := value.DefaultCodec.DecodeBytes(e.Value)
		if err != nil {
			v = value.Null()
		}
		row = append(row, RowEntry{Path: e.Path, Value: v})
	}

	return row
}

// IsDefaultAt reports whether every sub-column is default at n and
// shared-data row n is empty (boundary B4).
func (c *ObjectColumn) IsDefaultAt(n int) bool {
	for i := 0; i < c.typedPaths.Len(); i++ {
		_, col := c.typedPaths.At(i)
		if !col.IsDefaultAt(n) {
			return false
		}
	}
	for i := 0; i < c.dynamicPaths.Len(); i++ {
		_, col := c.dynamicPaths.At(i)
		if !col.IsDefaultAt(n) {
			return false
		}
	}

	return c.sharedData.RowLen(n) == 0
}

// Default appends one fully-default row across every sub-column.
func (c *ObjectColumn) Default() {
	for i := 0; i < c.typedPaths.Len(); i++ {
		_, col := c.typedPaths.At(i)
		col.InsertDefault()
	}
	for i := 0; i < c.dynamicPaths.Len(); i++ {
		_, col := c.dynamicPaths.At(i)
		col.InsertDefault()
	}
	c.sharedData.InsertManyDefaults(1)
}

// PopBack removes the last n rows from every sub-column.
func (c *ObjectColumn) PopBack(n int) {
	for i := 0; i < c.typedPaths.Len(); i++ {
		_, col := c.typedPaths.At(i)
		col.PopBack(n)
	}
	for i := 0; i < c.dynamicPaths.Len(); i++ {
		_, col := c.dynamicPaths.At(i)
		col.PopBack(n)
	}
	c.sharedData.PopBack(n)
}

// Reserve pre-allocates capacity for n additional rows across every
// sub-column.
func (c *ObjectColumn) Reserve(n int) {
	for i := 0; i < c.typedPaths.Len(); i++ {
		_, col := c.typedPaths.At(i)
		col.Reserve(n)
	}
	for i := 0; i < c.dynamicPaths.Len(); i++ {
		_, col := c.dynamicPaths.At(i)
		col.Reserve(n)
	}
}

// Expand appends n default rows across every sub-column.
func (c *ObjectColumn) Expand(n int) {
	for i := 0; i < c.typedPaths.Len(); i++ {
		_, col := c.typedPaths.At(i)
		col.InsertManyDefaults(n)
	}
	for i := 0; i < c.dynamicPaths.Len(); i++ {
		_, col := c.dynamicPaths.At(i)
		col.InsertManyDefaults(n)
	}
	c.sharedData.InsertManyDefaults(n)
}

// Finalize verifies every sub-column agrees on row count. Mutators in
// this package already maintain that agreement on every return, so
// Finalize exists as an explicit checkpoint for callers (e.g. after a
// batch of lower-level sub-column writes) rather than as a step that
// does any work of its own.
func (c *ObjectColumn) Finalize() error {
	return c.checkLengthCoherence()
}
