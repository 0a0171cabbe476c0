package value

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCodecRoundTrip(t *testing.T) {
	tests := []Value{
		Null(),
		FromBool(true),
		FromBool(false),
		FromInt64(-42),
		FromFloat64(3.5),
		FromString("hello, object"),
		FromString(""),
	}

	for _, v := range tests {
		b, err := DefaultCodec.EncodeToBytes(v)
		require.NoError(t, err)

		got, err := DefaultCodec.DecodeBytes(b)
		require.NoError(t, err)
		assert.True(t, v.Equal(got), "expected %s got %s", v.GoString(), got.GoString())
	}
}

func TestCodecNullNeverDecodesToNonNull(t *testing.T) {
	b, err := DefaultCodec.EncodeToBytes(Null())
	require.NoError(t, err)

	got, err := DefaultCodec.DecodeBytes(b)
	require.NoError(t, err)
	assert.True(t, got.IsNull())
}
