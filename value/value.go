package value

import (
	"fmt"
	"math"
	"math/big"

	"github.com/arloliu/candy/errs"
	"github.com/arloliu/candy/format"
)

// Value is a self-describing dynamic value.
//
// The zero Value is Empty. Values are immutable: all operations are read-only and
// return new values.
type Value struct {
	kind format.Kind
	bits uint64 // fixed-width integers, float bits and bool
	ref  any    // payload of variable-length kinds
}

// optional is the payload of a present Optional.
type optional struct {
	inner Value
}

// Empty returns the empty value.
func Empty() Value {
	return Value{}
}

// Kind returns the kind tag of the value.
func (v Value) Kind() format.Kind {
	return v.kind
}

// IsEmpty reports whether v is the Empty kind.
func (v Value) IsEmpty() bool {
	return v.kind == format.KindEmpty
}

// Nat returns an arbitrary-precision unsigned integer value.
func Nat(n uint64) Value {
	return Value{kind: format.KindNat, ref: new(big.Int).SetUint64(n)}
}

// NatBig returns an arbitrary-precision unsigned integer value holding a copy of n.
//
// Returns errs.ErrOverflow if n is negative and errs.ErrNotRepresentable if n is nil.
func NatBig(n *big.Int) (Value, error) {
	if n == nil {
		return Value{}, fmt.Errorf("%w: nil Nat", errs.ErrNotRepresentable)
	}
	if n.Sign() < 0 {
		return Value{}, fmt.Errorf("%w: negative Nat %s", errs.ErrOverflow, n)
	}

	return Value{kind: format.KindNat, ref: new(big.Int).Set(n)}, nil
}

// Int returns an arbitrary-precision signed integer value.
func Int(n int64) Value {
	return Value{kind: format.KindInt, ref: big.NewInt(n)}
}

// IntBig returns an arbitrary-precision signed integer value holding a copy of n.
// A nil n is treated as zero.
func IntBig(n *big.Int) Value {
	if n == nil {
		return Value{kind: format.KindInt, ref: new(big.Int)}
	}

	return Value{kind: format.KindInt, ref: new(big.Int).Set(n)}
}

func Nat8(n uint8) Value   { return Value{kind: format.KindNat8, bits: uint64(n)} }
func Nat16(n uint16) Value { return Value{kind: format.KindNat16, bits: uint64(n)} }
func Nat32(n uint32) Value { return Value{kind: format.KindNat32, bits: uint64(n)} }
func Nat64(n uint64) Value { return Value{kind: format.KindNat64, bits: n} }

func Int8(n int8) Value   { return Value{kind: format.KindInt8, bits: uint64(n)} }  //nolint:gosec
func Int16(n int16) Value { return Value{kind: format.KindInt16, bits: uint64(n)} } //nolint:gosec
func Int32(n int32) Value { return Value{kind: format.KindInt32, bits: uint64(n)} } //nolint:gosec
func Int64(n int64) Value { return Value{kind: format.KindInt64, bits: uint64(n)} } //nolint:gosec

// Float returns a float64 value.
func Float(f float64) Value {
	return Value{kind: format.KindFloat, bits: math.Float64bits(f)}
}

// Text returns a unicode text value.
func Text(s string) Value {
	return Value{kind: format.KindText, ref: s}
}

// Bool returns a boolean value.
func Bool(b bool) Value {
	if b {
		return Value{kind: format.KindBool, bits: 1}
	}

	return Value{kind: format.KindBool}
}

// Blob returns an immutable raw byte string value holding a copy of b.
func Blob(b []byte) Value {
	return Value{kind: format.KindBlob, ref: cloneSlice(b)}
}

// Opaque returns an opaque identifier value.
func Opaque(id OpaqueID) Value {
	return Value{kind: format.KindOpaqueID, ref: id}
}

// Some returns a present Optional wrapping inner.
func Some(inner Value) Value {
	return Value{kind: format.KindOptional, ref: &optional{inner: inner}}
}

// None returns the empty Optional.
func None() Value {
	return Value{kind: format.KindOptional}
}

// Unwrap returns the value contained in a present Optional.
// It returns false for the empty Optional and for any other kind.
func (v Value) Unwrap() (Value, bool) {
	if v.kind != format.KindOptional {
		return Value{}, false
	}
	opt, ok := v.ref.(*optional)
	if !ok || opt == nil {
		return Value{}, false
	}

	return opt.inner, true
}

// IsNone reports whether v is the empty Optional.
func (v Value) IsNone() bool {
	if v.kind != format.KindOptional {
		return false
	}
	_, ok := v.Unwrap()

	return !ok
}

// AsBlob returns a copy of the raw bytes of a Blob value.
func (v Value) AsBlob() ([]byte, bool) {
	if v.kind != format.KindBlob {
		return nil, false
	}

	return cloneSlice(v.blob()), true
}

// AsOpaqueID returns the identifier held by an OpaqueID value.
func (v Value) AsOpaqueID() (OpaqueID, bool) {
	if v.kind != format.KindOpaqueID {
		return OpaqueID{}, false
	}
	id, _ := v.ref.(OpaqueID)

	return id, true
}

// Clone returns a deep copy of v in which no thawed collection is shared with v.
// Frozen payloads are immutable and are shared.
func (v Value) Clone() Value {
	switch v.kind {
	case format.KindBytes:
		c := v.bytes()
		return Value{kind: v.kind, ref: c.Clone()}
	case format.KindNats:
		c := v.nats()
		return Value{kind: v.kind, ref: c.Clone()}
	case format.KindFloats:
		c := v.floats()
		return Value{kind: v.kind, ref: c.Clone()}
	case format.KindArray:
		c := v.array()
		items := make([]Value, len(c.items))
		for i, item := range c.items {
			items[i] = item.Clone()
		}

		return Value{kind: v.kind, ref: Array{mut: c.mut, items: items}}
	case format.KindRecord:
		fields := v.fields()
		out := make([]Field, len(fields))
		for i, f := range fields {
			out[i] = Field{Name: f.Name, Value: f.Value.Clone(), Immutable: f.Immutable}
		}

		return Value{kind: v.kind, ref: out}
	case format.KindOptional:
		if inner, ok := v.Unwrap(); ok {
			return Some(inner.Clone())
		}

		return v
	default:
		return v
	}
}

func (v Value) bigInt() *big.Int {
	n, _ := v.ref.(*big.Int)
	if n == nil {
		return new(big.Int)
	}

	return n
}

func (v Value) text() string {
	s, _ := v.ref.(string)
	return s
}

func (v Value) blob() []byte {
	b, _ := v.ref.([]byte)
	return b
}

func (v Value) float() float64 {
	return math.Float64frombits(v.bits)
}

func (v Value) boolean() bool {
	return v.bits != 0
}

func (v Value) opaque() OpaqueID {
	id, _ := v.ref.(OpaqueID)
	return id
}

func (v Value) bytes() Bytes {
	c, _ := v.ref.(Bytes)
	return c
}

func (v Value) nats() Nats {
	c, _ := v.ref.(Nats)
	return c
}

func (v Value) floats() Floats {
	c, _ := v.ref.(Floats)
	return c
}

func (v Value) array() Array {
	c, _ := v.ref.(Array)
	return c
}

func (v Value) fields() []Field {
	f, _ := v.ref.([]Field)
	return f
}

// signed returns the fixed-width signed payload.
func (v Value) signed() int64 {
	switch v.kind {
	case format.KindInt8:
		return int64(int8(v.bits)) //nolint:gosec
	case format.KindInt16:
		return int64(int16(v.bits)) //nolint:gosec
	case format.KindInt32:
		return int64(int32(v.bits)) //nolint:gosec
	default:
		return int64(v.bits) //nolint:gosec
	}
}

func cloneSlice[T any](s []T) []T {
	if s == nil {
		return nil
	}
	out := make([]T, len(s))
	copy(out, s)

	return out
}
