package value

import (
	"bytes"
	"io"

	"github.com/vmihailenco/msgpack/v5"
)

// Codec encodes and decodes a single Value to/from a byte stream. It holds
// no state, so one process-wide instance is shared read-only by every
// caller, matching the teacher's pattern of a stateless singleton
// serialization helper (see design notes on FormatSettings/ValueCodec).
type Codec struct{}

// DefaultCodec is the shared, stateless singleton used by dynamic columns
// and shared-data overflow serialization.
var DefaultCodec = Codec{}

// Encode writes v to w using msgpack, the wire format shared-data overflow
// entries and dynamic-path values are stored in.
func (Codec) Encode(v Value, w io.Writer) error {
	return msgpack.NewEncoder(w).Encode(v.ToInterface())
}

// Decode reads a single Value from r.
func (Codec) Decode(r io.Reader) (Value, error) {
	iface, err := msgpack.NewDecoder(r).DecodeInterface()
	if err != nil {
		return Value{}, err
	}

	return FromInterface(iface), nil
}

// EncodeToBytes encodes v to a freshly allocated byte slice.
func (c Codec) EncodeToBytes(v Value) ([]byte, error) {
	var buf bytes.Buffer
	if err := c.Encode(v, &buf); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// DecodeBytes decodes a single Value out of b.
func (c Codec) DecodeBytes(b []byte) (Value, error) {
	return c.Decode(bytes.NewReader(b))
}
