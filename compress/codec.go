// Package compress provides the compression codecs backing
// column.CompressHandle: each typed and dynamic sub-column of an
// ObjectColumn is compressed independently as a flat byte payload, the
// same "compress the already-encoded bytes" strategy the teacher applies
// to its timestamp/value/tag payloads. Shared data is not compressed.
package compress

import "fmt"

// Type identifies a compression algorithm.
type Type uint8

const (
	TypeNone Type = iota
	TypeZstd
	TypeS2
	TypeLZ4
)

func (t Type) String() string {
	switch t {
	case TypeNone:
		return "None"
	case TypeZstd:
		return "Zstd"
	case TypeS2:
		return "S2"
	case TypeLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}

// Compressor compresses a byte payload.
type Compressor interface {
	Compress(data []byte) ([]byte, error)
}

// Decompressor decompresses a byte payload produced by the matching Compressor.
type Decompressor interface {
	Decompress(data []byte) ([]byte, error)
}

// Codec combines compression and decompression for one algorithm.
type Codec interface {
	Compressor
	Decompressor
}

// New returns the built-in Codec for the given compression type.
func New(t Type) (Codec, error) {
	switch t {
	case TypeNone:
		return NewNoopCodec(), nil
	case TypeZstd:
		return NewZstdCodec(), nil
	case TypeS2:
		return NewS2Codec(), nil
	case TypeLZ4:
		return NewLZ4Codec(), nil
	default:
		return nil, fmt.Errorf("unsupported compression type: %s", t)
	}
}
