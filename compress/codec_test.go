package compress

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func allCodecs(t *testing.T) map[string]Codec {
	t.Helper()

	return map[string]Codec{
		"noop": NewNoopCodec(),
		"s2":   NewS2Codec(),
		"lz4":  NewLZ4Codec(),
		"zstd": NewZstdCodec(),
	}
}

func TestRoundTrip(t *testing.T) {
	payloads := [][]byte{
		nil,
		[]byte(""),
		[]byte("x"),
		[]byte("the quick brown fox jumps over the lazy dog, repeatedly, repeatedly, repeatedly"),
	}

	for name, codec := range allCodecs(t) {
		t.Run(name, func(t *testing.T) {
			for _, p := range payloads {
				compressed, err := codec.Compress(p)
				require.NoError(t, err)

				decompressed, err := codec.Decompress(compressed)
				require.NoError(t, err)
				assert.Equal(t, p, decompressed)
			}
		})
	}
}

func TestNew(t *testing.T) {
	for _, typ := range []Type{TypeNone, TypeZstd, TypeS2, TypeLZ4} {
		codec, err := New(typ)
		require.NoError(t, err)
		assert.NotNil(t, codec)
	}

	_, err := New(Type(99))
	assert.Error(t, err)
}
