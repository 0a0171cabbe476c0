package column

// CompressHandle is a lazily-decompressible wrapper around a compressed
// sub-column. Until Decompress is called, it exposes only row count and
// byte size, matching the contract of a column whose bytes are not yet
// materialized.
type CompressHandle struct {
	rows       int
	byteSize   int
	decompress func() (ColumnOps, error)
}

// NewCompressHandle builds a handle around decompress, which rebuilds the
// original column on first (and every subsequent) call.
func NewCompressHandle(rows, byteSize int, decompress func() (ColumnOps, error)) *CompressHandle {
	return &CompressHandle{rows: rows, byteSize: byteSize, decompress: decompress}
}

// Len returns the row count of the compressed column.
func (h *CompressHandle) Len() int { return h.rows }

// ByteSize returns the compressed byte size.
func (h *CompressHandle) ByteSize() int { return h.byteSize }

// Decompress rebuilds the full column. It may be called more than once;
// each call re-decompresses independently.
func (h *CompressHandle) Decompress() (ColumnOps, error) { return h.decompress() }
