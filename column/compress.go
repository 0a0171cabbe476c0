package column

// objectCompressHandle bundles one CompressHandle per sub-column plus the
// shared-data store; decompression rebuilds a fully-populated ObjectColumn
// of the same structure, row by row.
type objectCompressHandle struct {
	rows int

	typedPaths   []string
	typedHandles []*CompressHandle

	dynamicPaths   []string
	dynamicHandles []*CompressHandle

	sharedData *SharedDataStore

	maxDynamicPaths      int
	maxDynamicTypes      int
	statistics           Statistics
	dynamicColumnFactory DynamicColumnFactory
}

// Len returns the row count the handle decompresses to.
func (h *objectCompressHandle) Len() int { return h.rows }

// ByteSize returns the handle's total compressed footprint, the sum of
// every sub-column's compressed size plus the (uncompressed) shared-data
// store, which is small relative to typed/dynamic payloads and is not
// separately compressed here.
func (h *objectCompressHandle) ByteSize() int {
	size := h.sharedData.ByteSize()
	for _, ch := range h.typedHandles {
		size += ch.ByteSize()
	}
	for _, ch := range h.dynamicHandles {
		size += ch.ByteSize()
	}

	return size
}

// Decompress rebuilds a fully-populated ObjectColumn from its compressed
// parts.
func (h *objectCompressHandle) Decompress() (*ObjectColumn, error) {
	out := &ObjectColumn{
		typedPaths:           NewPathTable[ColumnOps](),
		dynamicPaths:         NewPathTable[DynamicColumnOps](),
		sharedData:           h.sharedData,
		maxDynamicPaths:      h.maxDynamicPaths,
		maxDynamicTypes:      h.maxDynamicTypes,
		statistics:           h.statistics,
		dynamicColumnFactory: h.dynamicColumnFactory,
	}

	for i, path := range h.typedPaths {
		col, err := h.typedHandles[i].Decompress()
		if err != nil {
			return nil, err
		}
		out.typedPaths.Set(path, col)
	}
	for i, path := range h.dynamicPaths {
		col, err := h.dynamicHandles[i].Decompress()
		if err != nil {
			return nil, err
		}
		out.dynamicPaths.Set(path, col.(DynamicColumnOps))
	}

	return out, nil
}

// Compress builds a lazily-decompressible snapshot of the column: every
// typed and dynamic sub-column is compressed independently (each already
// picks its own codec), and shared data, being small relative to
// columnar payloads, is carried uncompressed.
func (c *ObjectColumn) Compress() (*objectCompressHandle, error) {
	h := &objectCompressHandle{
		rows:                 c.Size(),
		sharedData:           c.sharedData,
		maxDynamicPaths:      c.maxDynamicPaths,
		maxDynamicTypes:      c.maxDynamicTypes,
		statistics:           c.statistics,
		dynamicColumnFactory: c.dynamicColumnFactory,
	}

	for i := 0; i < c.typedPaths.Len(); i++ {
		path, col := c.typedPaths.At(i)
		ch, err := col.Compress()
		if err != nil {
			return nil, err
		}
		h.typedPaths = append(h.typedPaths, path)
		h.typedHandles = append(h.typedHandles, ch)
	}

	for i := 0; i < c.dynamicPaths.Len(); i++ {
		path, col := c.dynamicPaths.At(i)
		ch, err := col.Compress()
		if err != nil {
			return nil, err
		}
		h.dynamicPaths = append(h.dynamicPaths, path)
		h.dynamicHandles = append(h.dynamicHandles, ch)
	}

	return h, nil
}
