package value

import (
	"fmt"
	"math/big"

	"github.com/arloliu/candy/errs"
	"github.com/arloliu/candy/format"
)

// From builds a Value from a native Go value.
//
// Supported inputs:
//   - Value (returned as-is), nil (Empty)
//   - int, int8..int64 (Int, Int8..Int64); uint, uint8..uint64 (Nat, Nat8..Nat64)
//   - *big.Int (Int), float32 and float64 (Float), string (Text), bool (Bool)
//   - []byte (frozen Bytes), OpaqueID, []Field (Record)
//   - []Value, []uint64 and []float64 (frozen Array, Nats and Floats)
//   - []any (frozen Array, converting every element)
//   - Bytes, Nats, Floats and Array collections, keeping their mutability
//   - *Map and *Set
//
// Native int and uint map to the arbitrary-precision kinds.
//
// Returns errs.ErrUnsupported for any other type.
func From(x any) (Value, error) {
	switch t := x.(type) {
	case nil:
		return Empty(), nil
	case Value:
		return t, nil
	case int:
		return Int(int64(t)), nil
	case int8:
		return Int8(t), nil
	case int16:
		return Int16(t), nil
	case int32:
		return Int32(t), nil
	case int64:
		return Int64(t), nil
	case uint:
		return Nat(uint64(t)), nil
	case uint8:
		return Nat8(t), nil
	case uint16:
		return Nat16(t), nil
	case uint32:
		return Nat32(t), nil
	case uint64:
		return Nat64(t), nil
	case *big.Int:
		return IntBig(t), nil
	case float32:
		return Float(float64(t)), nil
	case float64:
		return Float(t), nil
	case string:
		return Text(t), nil
	case bool:
		return Bool(t), nil
	case []byte:
		return FrozenBytes(t), nil
	case OpaqueID:
		return Opaque(t), nil
	case []Field:
		return Record(t...), nil
	case []Value:
		return FrozenArray(t...), nil
	case []uint64:
		return NatsOf(format.Frozen, t...), nil
	case []float64:
		return FloatsOf(format.Frozen, t...), nil
	case []any:
		items := make([]Value, len(t))
		for i, item := range t {
			v, err := From(item)
			if err != nil {
				return Value{}, fmt.Errorf("element %d: %w", i, err)
			}
			items[i] = v
		}

		return Value{kind: format.KindArray, ref: Array{mut: format.Frozen, items: items}}, nil
	case Bytes:
		return FromBytes(t), nil
	case Nats:
		return FromNats(t)
	case Floats:
		return FromFloats(t), nil
	case Array:
		return FromArray(t), nil
	case *Map:
		return FromMap(t), nil
	case *Set:
		return FromSet(t), nil
	default:
		return Value{}, fmt.Errorf("%w: cannot build value from %T", errs.ErrUnsupported, x)
	}
}
