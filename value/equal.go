package value

import (
	"bytes"

	"github.com/arloliu/candy/format"
)

// Equal reports whether v and other carry the same kind and structurally equal payloads.
//
// Different integer widths never compare equal, so Nat(5) != Nat8(5). Floats compare
// with IEEE-754 equality, NaN is unequal to itself. The frozen/thawed tag is ignored.
// Maps and sets compare by length and then membership, independent of insertion order.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}

	switch v.kind {
	case format.KindEmpty:
		return true
	case format.KindNat8, format.KindNat16, format.KindNat32, format.KindNat64,
		format.KindInt8, format.KindInt16, format.KindInt32, format.KindInt64, format.KindBool:
		return v.bits == other.bits
	case format.KindFloat:
		return v.float() == other.float()
	case format.KindNat, format.KindInt:
		return v.bigInt().Cmp(other.bigInt()) == 0
	case format.KindText:
		return v.text() == other.text()
	case format.KindBlob:
		return bytes.Equal(v.blob(), other.blob())
	case format.KindBytes:
		return bytes.Equal(v.bytes().items, other.bytes().items)
	case format.KindOpaqueID:
		return v.opaque().Equal(other.opaque())
	case format.KindOptional:
		a, okA := v.Unwrap()
		b, okB := other.Unwrap()
		if okA != okB {
			return false
		}

		return !okA || a.Equal(b)
	case format.KindRecord:
		return fieldsEqual(v.fields(), other.fields())
	case format.KindArray:
		return valuesEqual(v.array().items, other.array().items)
	case format.KindNats:
		a, b := v.nats().items, other.nats().items
		if len(a) != len(b) {
			return false
		}
		for i := range a {
			if a[i].Cmp(b[i]) != 0 {
				return false
			}
		}

		return true
	case format.KindFloats:
		a, b := v.floats().items, other.floats().items
		if len(a) != len(b) {
			return false
		}
		for i := range a {
			if a[i] != b[i] {
				return false
			}
		}

		return true
	case format.KindMap:
		return v.mapping().Equal(other.mapping())
	case format.KindSet:
		return v.set().Equal(other.set())
	default:
		return false
	}
}

// Equal reports whether both maps hold equal values under equal keys.
func (m *Map) Equal(other *Map) bool {
	if m.Len() != other.Len() {
		return false
	}
	for key, val := range m.All() {
		got, ok := other.Get(key)
		if !ok || !got.Equal(val) {
			return false
		}
	}

	return true
}

// Equal reports whether both sets hold the same members.
func (s *Set) Equal(other *Set) bool {
	if s.Len() != other.Len() {
		return false
	}
	for member := range s.All() {
		if !other.Has(member) {
			return false
		}
	}

	return true
}

func fieldsEqual(a, b []Field) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Name != b[i].Name || a[i].Immutable != b[i].Immutable || !a[i].Value.Equal(b[i].Value) {
			return false
		}
	}

	return true
}

func valuesEqual(a, b []Value) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}

	return true
}
