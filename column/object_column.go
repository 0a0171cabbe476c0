package column

import (
	"fmt"

	"github.com/arloliu/objcol/errs"
	"github.com/arloliu/objcol/internal/options"
)

// StatSource records whether an ObjectColumn's statistics were observed
// directly (a freshly read/inserted column) or computed by a merge's
// structure selection pass.
type StatSource uint8

const (
	StatSourceRead StatSource = iota
	StatSourceMerge
)

// Statistics is advisory per-path non-null-row bookkeeping; it never
// affects correctness and its keys are always a subset of the current
// dynamic paths (invariant 6).
type Statistics struct {
	Source StatSource
	Data   map[string]int
}

// ObjectColumn is the columnar container for object rows: a fixed typed-
// path table, a capped dynamic-path table, and a shared-data overflow
// area, kept at identical row counts (invariant 1).
type ObjectColumn struct {
	typedPaths           *PathTable[ColumnOps]
	dynamicPaths         *PathTable[DynamicColumnOps]
	sharedData           *SharedDataStore
	maxDynamicPaths      int
	maxDynamicTypes      int
	statistics           Statistics
	dynamicColumnFactory DynamicColumnFactory
}

// DynamicColumnFactory builds an empty dynamic sub-column capped at
// maxTypes distinct value kinds. ObjectColumn treats DynamicColumn as an
// external collaborator (it never imports a concrete implementation, to
// avoid a package cycle with dynamiccol, which itself depends on the
// column.DynamicColumnOps contract) and calls this factory whenever
// ingest discovers a path that needs a brand new dynamic column.
type DynamicColumnFactory func(maxTypes int) DynamicColumnOps

type objectColumnConfig struct {
	typedPaths           *PathTable[ColumnOps]
	maxDynamicPaths      int
	maxDynamicTypes      int
	dynamicColumnFactory DynamicColumnFactory
}

// Option configures New.
type Option = options.Option[*objectColumnConfig]

// WithTypedPath declares a typed path backed by an empty column. col must
// have zero rows; a pre-filled typed-path column is a construction-time
// contract violation (§7, "constructing with a non-empty typed path
// column where one is disallowed").
func WithTypedPath(path string, col ColumnOps) Option {
	return options.New(func(c *objectColumnConfig) error {
		if col.Len() != 0 {
			return fmt.Errorf("%w: path %q", errs.ErrNonEmptyTypedPathColumn, path)
		}
		c.typedPaths.Set(path, col)

		return nil
	})
}

// WithMaxDynamicPaths sets the dynamic-path cap.
func WithMaxDynamicPaths(n int) Option {
	return options.New(func(c *objectColumnConfig) error {
		if n < 0 {
			return fmt.Errorf("%w: max dynamic paths must be >= 0", errs.ErrInvalidOption)
		}
		c.maxDynamicPaths = n

		return nil
	})
}

// WithMaxDynamicTypes sets the per-dynamic-path type-diversity cap.
func WithMaxDynamicTypes(n int) Option {
	return options.New(func(c *objectColumnConfig) error {
		if n < 0 {
			return fmt.Errorf("%w: max dynamic types must be >= 0", errs.ErrInvalidOption)
		}
		c.maxDynamicTypes = n

		return nil
	})
}

// WithDynamicColumnFactory supplies the constructor ObjectColumn uses
// whenever ingest discovers a path that needs a brand new dynamic
// column. Required whenever max dynamic paths > 0.
func WithDynamicColumnFactory(f DynamicColumnFactory) Option {
	return options.New(func(c *objectColumnConfig) error {
		if f == nil {
			return fmt.Errorf("%w: dynamic column factory must not be nil", errs.ErrInvalidOption)
		}
		c.dynamicColumnFactory = f

		return nil
	})
}

// New constructs an empty ObjectColumn.
func New(opts ...Option) (*ObjectColumn, error) {
	cfg := &objectColumnConfig{typedPaths: NewPathTable[ColumnOps]()}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}
	if cfg.maxDynamicPaths > 0 && cfg.dynamicColumnFactory == nil {
		return nil, fmt.Errorf("%w: dynamic column factory required when max dynamic paths > 0", errs.ErrInvalidOption)
	}

	return &ObjectColumn{
		typedPaths:           cfg.typedPaths,
		dynamicPaths:         NewPathTable[DynamicColumnOps](),
		sharedData:           NewSharedDataStore(),
		maxDynamicPaths:      cfg.maxDynamicPaths,
		maxDynamicTypes:      cfg.maxDynamicTypes,
		statistics:           Statistics{Source: StatSourceRead, Data: make(map[string]int)},
		dynamicColumnFactory: cfg.dynamicColumnFactory,
	}, nil
}

// newDynamicColumn builds an empty dynamic column via the configured
// factory.
func (c *ObjectColumn) newDynamicColumn() DynamicColumnOps {
	return c.dynamicColumnFactory(c.maxDynamicTypes)
}

// Size returns the row count, authoritative per invariant 1 (every
// sub-column is kept at this length).
func (c *ObjectColumn) Size() int { return c.sharedData.Len() }

// MaxDynamicPaths returns the dynamic-path cap.
func (c *ObjectColumn) MaxDynamicPaths() int { return c.maxDynamicPaths }

// MaxDynamicTypes returns the per-dynamic-path type-diversity cap.
func (c *ObjectColumn) MaxDynamicTypes() int { return c.maxDynamicTypes }

// Statistics returns the column's advisory statistics.
func (c *ObjectColumn) Statistics() Statistics { return c.statistics }

// GetTypedPaths returns the declared typed paths, in insertion order.
func (c *ObjectColumn) GetTypedPaths() []string { return c.typedPaths.Paths() }

// GetDynamicPaths returns the currently populated dynamic paths, in
// insertion order.
func (c *ObjectColumn) GetDynamicPaths() []string { return c.dynamicPaths.Paths() }

// GetTypedColumn returns the typed column for path, if declared.
func (c *ObjectColumn) GetTypedColumn(path string) (ColumnOps, bool) { return c.typedPaths.Get(path) }

// GetDynamicColumn returns the dynamic column for path, if present.
func (c *ObjectColumn) GetDynamicColumn(path string) (DynamicColumnOps, bool) {
	return c.dynamicPaths.Get(path)
}

// GetSharedDataOffsets exposes the shared-data row-offsets index.
func (c *ObjectColumn) GetSharedDataOffsets() []int {
	offsets := make([]int, c.sharedData.Len())
	for r := range offsets {
		offsets[r] = c.sharedData.rowEnd(r)
	}

	return offsets
}

// GetSharedDataPathsAndValues returns, for row n, the parallel path and
// value-byte slices of its shared-data entries, in sorted order.
func (c *ObjectColumn) GetSharedDataPathsAndValues(n int) (paths, values [][]byte) {
	return c.sharedData.RowKeys(n), c.sharedData.RowValues(n)
}

// ByteSize returns the column's total value byte size.
func (c *ObjectColumn) ByteSize() int {
	size := c.sharedData.ByteSize()
	for i := 0; i < c.typedPaths.Len(); i++ {
		_, col := c.typedPaths.At(i)
		size += col.ByteSize()
	}
	for i := 0; i < c.dynamicPaths.Len(); i++ {
		_, col := c.dynamicPaths.At(i)
		size += col.ByteSize()
	}

	return size
}

// AllocatedBytes returns the column's total memory footprint.
func (c *ObjectColumn) AllocatedBytes() int {
	size := c.sharedData.AllocatedBytes()
	for i := 0; i < c.typedPaths.Len(); i++ {
		_, col := c.typedPaths.At(i)
		size += col.AllocatedBytes()
	}
	for i := 0; i < c.dynamicPaths.Len(); i++ {
		_, col := c.dynamicPaths.At(i)
		size += col.AllocatedBytes()
	}

	return size
}

func errUnknownTypedPath(path string) error {
	return fmt.Errorf("%w: %q", errs.ErrUnknownTypedPath, path)
}

// checkLengthCoherence verifies invariant 1. Exercised by tests; callers
// never need it on a hot path since every mutator already maintains it.
func (c *ObjectColumn) checkLengthCoherence() error {
	n := c.sharedData.Len()
	for i := 0; i < c.typedPaths.Len(); i++ {
		path, col := c.typedPaths.At(i)
		if col.Len() != n {
			return fmt.Errorf("%w: typed path %q has %d rows, want %d", errs.ErrLengthMismatch, path, col.Len(), n)
		}
	}
	for i := 0; i < c.dynamicPaths.Len(); i++ {
		path, col := c.dynamicPaths.At(i)
		if col.Len() != n {
			return fmt.Errorf("%w: dynamic path %q has %d rows, want %d", errs.ErrLengthMismatch, path, col.Len(), n)
		}
	}

	return nil
}
