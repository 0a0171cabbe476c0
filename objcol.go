// Package objcol provides a convenient top-level constructor for
// ObjectColumn, the columnar container for semi-structured object rows:
// a fixed set of typed paths, a capped set of self-describing dynamic
// paths, and a shared-data overflow area for everything beyond the
// dynamic-path cap.
//
// # Basic usage
//
//	col, err := objcol.New(
//	    objcol.WithTypedPath("user", typedcol.NewStringColumn()),
//	    objcol.WithTypedPath("age", typedcol.NewInt64Column()),
//	    objcol.WithMaxDynamicPaths(8),
//	    objcol.WithMaxDynamicTypes(3),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	err = col.Insert(column.Row{
//	    {Path: "user", Value: value.FromString("alice")},
//	    {Path: "age", Value: value.FromInt64(30)},
//	    {Path: "city", Value: value.FromString("nyc")},
//	})
//
// # Package structure
//
// This package wires column.ObjectColumn to dynamiccol.Column as its
// concrete dynamic sub-column implementation, so callers don't need to
// supply a column.DynamicColumnFactory themselves. For advanced use
// cases needing a different dynamic-column implementation, construct
// directly via column.New with a custom column.WithDynamicColumnFactory.
package objcol

import (
	"github.com/arloliu/objcol/column"
	"github.com/arloliu/objcol/dynamiccol"
)

// Option configures a New ObjectColumn.
type Option = column.Option

// WithTypedPath, WithMaxDynamicPaths, and WithMaxDynamicTypes are
// re-exported from package column so most callers never need to import
// it directly.
var (
	WithTypedPath       = column.WithTypedPath
	WithMaxDynamicPaths = column.WithMaxDynamicPaths
	WithMaxDynamicTypes = column.WithMaxDynamicTypes
)

func defaultDynamicColumnFactory(maxTypes int) column.DynamicColumnOps {
	return dynamiccol.New(maxTypes)
}

// New constructs an empty ObjectColumn, wired to use dynamiccol.Column
// for any dynamic path ingest discovers. Passing a
// column.WithDynamicColumnFactory option overrides this default.
func New(opts ...Option) (*column.ObjectColumn, error) {
	allOpts := append([]Option{column.WithDynamicColumnFactory(defaultDynamicColumnFactory)}, opts...)

	return column.New(allOpts...)
}
