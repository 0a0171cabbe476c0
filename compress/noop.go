package compress

// NoopCodec bypasses compression entirely, returning input data unchanged.
// Useful as the default for small sub-columns where compression overhead
// would outweigh any space savings.
type NoopCodec struct{}

var _ Codec = NoopCodec{}

// NewNoopCodec creates a no-op codec.
func NewNoopCodec() NoopCodec { return NoopCodec{} }

func (NoopCodec) Compress(data []byte) ([]byte, error) { return data, nil }

func (NoopCodec) Decompress(data []byte) ([]byte, error) { return data, nil }
