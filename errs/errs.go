// Package errs declares the sentinel errors shared across objcol, in the
// teacher's style of wrapping a single sentinel with call-site context via
// fmt.Errorf("%w: ...", errs.ErrXxx, ...).
package errs

import "errors"

var (
	// ErrNotObjectValue reports a value that is not an object
	// (map[path]value). No function in this module returns it:
	// ObjectColumn.TryInsert takes a Row and reports failure as false.
	ErrNotObjectValue = errors.New("value is not an object")

	// ErrUnsupportedOperation marks accessors that have no single-scalar
	// representation for an ObjectColumn. ObjectColumn defines no such
	// accessor (there is no GetDataAt or InsertData), so nothing returns it.
	ErrUnsupportedOperation = errors.New("operation not supported for object column")

	// ErrTooManyDynamicPaths reports a dynamic-path set larger than
	// MaxDynamicPaths. No function in this module returns it: there is no
	// SetDynamicPaths, and ingest past the cap spills to shared data.
	ErrTooManyDynamicPaths = errors.New("number of dynamic paths exceeds the limit")

	// ErrNonEmptyTypedPathColumn is returned by the constructor that requires
	// empty typed-path columns.
	ErrNonEmptyTypedPathColumn = errors.New("unexpected non-empty typed path column")

	// ErrNonEmptyColumn is returned when an operation requires the receiver
	// to be empty (e.g. TakeDynamicStructureFromSourceColumns).
	ErrNonEmptyColumn = errors.New("operation requires an empty column")

	// ErrLengthMismatch indicates sub-columns of an ObjectColumn have
	// diverged in row count, violating invariant I1.
	ErrLengthMismatch = errors.New("sub-column length mismatch")

	// ErrUnknownTypedPath is returned when InsertFrom/InsertRangeFrom finds
	// a destination typed path that the source column does not declare.
	ErrUnknownTypedPath = errors.New("typed path not present in source column")

	// ErrIndexOutOfRange reports an out-of-bounds row or entry index. No
	// function in this module returns it; the random-access operations do
	// not check bounds and an out-of-range index panics.
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrInvalidOption is returned when a functional option receives an
	// invalid configuration value.
	ErrInvalidOption = errors.New("invalid option value")

	// ErrValueTypeMismatch is returned when a value's kind does not match
	// the scalar type a typed column declares.
	ErrValueTypeMismatch = errors.New("value kind does not match column type")

	// ErrColumnTypeMismatch is returned by InsertFrom/InsertRangeFrom when
	// the source column is not the same concrete type as the destination.
	ErrColumnTypeMismatch = errors.New("source column type does not match destination")

	// ErrTruncatedArenaEntry is returned by an arena deserializer when the
	// input buffer ends before a complete entry has been read.
	ErrTruncatedArenaEntry = errors.New("truncated arena entry")

	// ErrDynamicPathCapacityExceeded is returned when a dynamic column is
	// asked to hold more distinct value types than max_dynamic_types allows.
	ErrDynamicPathCapacityExceeded = errors.New("dynamic column exceeds its type capacity")
)
