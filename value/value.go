// Package value defines the scalar value type carried by dynamic paths and
// shared-data overflow entries, and the codec used to (de)serialize it.
//
// This is a concrete stand-in for the external ValueCodec/Field collaborator
// the core ObjectColumn treats as out of scope: something has to actually
// hold "a heterogeneous scalar" for the rest of the module to compile and
// be tested against.
package value

import "fmt"

// Kind identifies the runtime type carried by a Value.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindInt64
	KindFloat64
	KindString
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "Null"
	case KindBool:
		return "Bool"
	case KindInt64:
		return "Int64"
	case KindFloat64:
		return "Float64"
	case KindString:
		return "String"
	default:
		return "Unknown"
	}
}

// Value is a small tagged union over the scalar kinds an object row may
// hold in a dynamic path or in shared-data overflow.
type Value struct {
	kind Kind
	b    bool
	i    int64
	f    float64
	s    string
}

// Null returns the null value.
func Null() Value { return Value{kind: KindNull} }

// FromBool wraps a bool.
func FromBool(b bool) Value { return Value{kind: KindBool, b: b} }

// FromInt64 wraps an int64.
func FromInt64(i int64) Value { return Value{kind: KindInt64, i: i} }

// FromFloat64 wraps a float64.
func FromFloat64(f float64) Value { return Value{kind: KindFloat64, f: f} }

// FromString wraps a string.
func FromString(s string) Value { return Value{kind: KindString, s: s} }

// Kind returns the value's runtime kind.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is null.
func (v Value) IsNull() bool { return v.kind == KindNull }

// Bool returns the bool payload and whether v actually holds a bool.
func (v Value) Bool() (bool, bool) { return v.b, v.kind == KindBool }

// Int64 returns the int64 payload and whether v actually holds an int64.
func (v Value) Int64() (int64, bool) { return v.i, v.kind == KindInt64 }

// Float64 returns the float64 payload and whether v actually holds a float64.
func (v Value) Float64() (float64, bool) { return v.f, v.kind == KindFloat64 }

// String returns the string payload and whether v actually holds a string.
func (v Value) String() (string, bool) { return v.s, v.kind == KindString }

// Equal reports whether two values have the same kind and payload.
// Object values are explicitly non-comparable for ordering (spec.md
// Non-goals); this is a plain equality check used only by tests.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindBool:
		return v.b == other.b
	case KindInt64:
		return v.i == other.i
	case KindFloat64:
		return v.f == other.f
	case KindString:
		return v.s == other.s
	default:
		return false
	}
}

// GoString renders the value for debugging.
func (v Value) GoString() string {
	switch v.kind {
	case KindNull:
		return "null"
	case KindBool:
		return fmt.Sprintf("%v", v.b)
	case KindInt64:
		return fmt.Sprintf("%d", v.i)
	case KindFloat64:
		return fmt.Sprintf("%g", v.f)
	case KindString:
		return fmt.Sprintf("%q", v.s)
	default:
		return "<invalid>"
	}
}

// ToInterface converts v to a plain Go value (nil/bool/int64/float64/string),
// the representation the msgpack codec actually encodes.
func (v Value) ToInterface() any {
	switch v.kind {
	case KindBool:
		return v.b
	case KindInt64:
		return v.i
	case KindFloat64:
		return v.f
	case KindString:
		return v.s
	default:
		return nil
	}
}

// FromInterface converts a plain Go value decoded by msgpack back into a Value.
func FromInterface(x any) Value {
	switch t := x.(type) {
	case nil:
		return Null()
	case bool:
		return FromBool(t)
	case int64:
		return FromInt64(t)
	case int8:
		return FromInt64(int64(t))
	case int16:
		return FromInt64(int64(t))
	case int32:
		return FromInt64(int64(t))
	case int:
		return FromInt64(int64(t))
	case uint64:
		return FromInt64(int64(t))
	case float32:
		return FromFloat64(float64(t))
	case float64:
		return FromFloat64(t)
	case string:
		return FromString(t)
	case []byte:
		return FromString(string(t))
	default:
		return Null()
	}
}
