package column

import (
	"hash"

	objhash "github.com/arloliu/objcol/internal/hash"
)

// cloneStructure returns a new, empty ObjectColumn preserving the
// receiver's caps, statistics, and dynamic-column factory, the structure
// every bulk operation is required to preserve (§4.4).
func (c *ObjectColumn) cloneStructure() *ObjectColumn {
	return &ObjectColumn{
		typedPaths:           NewPathTable[ColumnOps](),
		dynamicPaths:         NewPathTable[DynamicColumnOps](),
		sharedData:           NewSharedDataStore(),
		maxDynamicPaths:      c.maxDynamicPaths,
		maxDynamicTypes:      c.maxDynamicTypes,
		statistics:           c.statistics,
		dynamicColumnFactory: c.dynamicColumnFactory,
	}
}

// Filter applies mask independently to every typed column, every dynamic
// column, and shared_data, and assembles the results into a new
// ObjectColumn.
func (c *ObjectColumn) Filter(mask []bool) *ObjectColumn {
	out := c.cloneStructure()
	for i := 0; i < c.typedPaths.Len(); i++ {
		path, col := c.typedPaths.At(i)
		out.typedPaths.Set(path, col.Filter(mask))
	}
	for i := 0; i < c.dynamicPaths.Len(); i++ {
		path, col := c.dynamicPaths.At(i)
		out.dynamicPaths.Set(path, col.Filter(mask).(DynamicColumnOps))
	}
	out.sharedData = c.sharedData.Filter(mask)

	return out
}

// Permute reorders rows by perm, keeping only the first limit positions
// (0 or out-of-range limit means every position).
func (c *ObjectColumn) Permute(perm []int, limit int) *ObjectColumn {
	out := c.cloneStructure()
	for i := 0; i < c.typedPaths.Len(); i++ {
		path, col := c.typedPaths.At(i)
		out.typedPaths.Set(path, col.Permute(perm, limit))
	}
	for i := 0; i < c.dynamicPaths.Len(); i++ {
		path, col := c.dynamicPaths.At(i)
		out.dynamicPaths.Set(path, col.Permute(perm, limit).(DynamicColumnOps))
	}
	out.sharedData = c.sharedData.Permute(perm, limit)

	return out
}

// Index gathers rows at the given indexes.
func (c *ObjectColumn) Index(idx []int, limit int) *ObjectColumn {
	return c.Permute(idx, limit)
}

// Replicate repeats row i counts[i] times.
func (c *ObjectColumn) Replicate(counts []int) *ObjectColumn {
	out := c.cloneStructure()
	for i := 0; i < c.typedPaths.Len(); i++ {
		path, col := c.typedPaths.At(i)
		out.typedPaths.Set(path, col.Replicate(counts))
	}
	for i := 0; i < c.dynamicPaths.Len(); i++ {
		path, col := c.dynamicPaths.At(i)
		out.dynamicPaths.Set(path, col.Replicate(counts).(DynamicColumnOps))
	}
	out.sharedData = c.sharedData.Replicate(counts)

	return out
}

// Scatter returns k independent ObjectColumns; every sub-column is
// scattered in parallel and shard i gets the i-th scattered sub-column
// from each.
func (c *ObjectColumn) Scatter(k int, selector []int) []*ObjectColumn {
	shards := make([]*ObjectColumn, k)
	for i := range shards {
		shards[i] = c.cloneStructure()
	}

	for i := 0; i < c.typedPaths.Len(); i++ {
		path, col := c.typedPaths.At(i)
		parts := col.Scatter(k, selector)
		for s, part := range parts {
			shards[s].typedPaths.Set(path, part)
		}
	}
	for i := 0; i < c.dynamicPaths.Len(); i++ {
		path, col := c.dynamicPaths.At(i)
		parts := col.Scatter(k, selector)
		for s, part := range parts {
			shards[s].dynamicPaths.Set(path, part.(DynamicColumnOps))
		}
	}
	sharedParts := c.sharedData.Scatter(k, selector)
	for s, part := range sharedParts {
		shards[s].sharedData = part
	}

	return shards
}

// StructureEquals reports whether other has the same declared shape:
// matching caps and matching typed-path sets whose columns are
// structurally equal. Dynamic paths and shared data are value-level, not
// structural, and are intentionally ignored.
func (c *ObjectColumn) StructureEquals(other *ObjectColumn) bool {
	if c.maxDynamicPaths != other.maxDynamicPaths || c.maxDynamicTypes != other.maxDynamicTypes {
		return false
	}
	if c.typedPaths.Len() != other.typedPaths.Len() {
		return false
	}
	for i := 0; i < c.typedPaths.Len(); i++ {
		path, col := c.typedPaths.At(i)
		otherCol, ok := other.typedPaths.Get(path)
		if !ok || !col.StructureEquals(otherCol) {
			return false
		}
	}

	return true
}

// GetPermutation returns the identity permutation. Object values declare
// no total order (comparability/ordering across paths is an explicit
// Non-goal), so there is no sort key to compute; callers that need one
// must route through a typed path instead.
func (c *ObjectColumn) GetPermutation() []int {
	perm := make([]int, c.Size())
	for i := range perm {
		perm[i] = i
	}

	return perm
}

// UpdateHash folds row n's full value (every typed column, every dynamic
// column, and the shared-data row) into h.
func (c *ObjectColumn) UpdateHash(n int, h hash.Hash64) {
	for i := 0; i < c.typedPaths.Len(); i++ {
		_, col := c.typedPaths.At(i)
		col.UpdateHash(n, h)
	}
	for i := 0; i < c.dynamicPaths.Len(); i++ {
		_, col := c.dynamicPaths.At(i)
		col.UpdateHash(n, h)
	}
	for _, e := range c.sharedData.RowEntries(n) {
		_, _ = h.Write([]byte(e.Path))
		_, _ = h.Write(e.Value)
	}
}

// Hash returns row n's default xxHash64 digest, seeding
// internal/hash.NewDigest and fanning UpdateHash into it. Callers that
// need a different hash algorithm (for a specific shuffle/hash-join
// partitioning scheme) call UpdateHash directly against their own
// hash.Hash64.
func (c *ObjectColumn) Hash(n int) uint64 {
	d := objhash.NewDigest()
	c.UpdateHash(n, d)

	return d.Sum64()
}
