package column

import (
	"sort"

	"github.com/arloliu/objcol/errs"
)

// TakeDynamicStructureFromSourceColumns rebuilds the receiver's dynamic-
// path table from a merge's source columns: every source's dynamic paths
// are tallied by non-null row count, and if the distinct-path total
// exceeds max_dynamic_paths, only the highest-tallied paths survive
// (ties broken lexicographically for a deterministic result independent
// of source order). The receiver must be empty; this is a one-time
// structure decision made once per merge output, not an incremental
// update.
func (c *ObjectColumn) TakeDynamicStructureFromSourceColumns(sources []*ObjectColumn) error {
	if c.Size() != 0 {
		return errs.ErrNonEmptyColumn
	}

	tally := make(map[string]int)
	order := make([]string, 0)
	seen := make(map[string]bool)

	for _, src := range sources {
		for i := 0; i < src.dynamicPaths.Len(); i++ {
			path, col := src.dynamicPaths.At(i)
			if !seen[path] {
				seen[path] = true
				order = append(order, path)
			}

			count, ok := src.statistics.Data[path]
			if !ok {
				count = src.Size() - col.NumberOfDefaultRows()
			}
			tally[path] += count
		}
	}

	kept := order
	if len(order) > c.maxDynamicPaths {
		sort.Slice(order, func(i, j int) bool {
			if tally[order[i]] != tally[order[j]] {
				return tally[order[i]] > tally[order[j]]
			}

			return order[i] < order[j]
		})
		kept = append([]string(nil), order[:c.maxDynamicPaths]...)
		sort.Strings(kept)
	}

	c.statistics = Statistics{Source: StatSourceMerge, Data: make(map[string]int, len(kept))}

	for _, path := range kept {
		newCol := c.newDynamicColumn()

		var sourceCols []DynamicColumnOps
		for _, src := range sources {
			if srcCol, ok := src.dynamicPaths.Get(path); ok {
				sourceCols = append(sourceCols, srcCol)
			}
		}
		if err := newCol.TakeDynamicStructureFromSourceColumns(sourceCols); err != nil {
			return err
		}

		c.dynamicPaths.Set(path, newCol)
		c.statistics.Data[path] = tally[path]
	}

	return nil
}
