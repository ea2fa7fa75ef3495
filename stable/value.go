package stable

import (
	"fmt"
	"math"
	"math/big"

	"github.com/arloliu/candy/errs"
	"github.com/arloliu/candy/format"
	"github.com/arloliu/candy/value"
)

// Value is the persisted form of a value.Value.
//
// Only the fields relevant to Kind are set:
//   - Uint: Nat8..Nat64, Bool (0 or 1) and the IEEE-754 bits of Float
//   - Int: Int8..Int64
//   - Text: Text
//   - Raw: Blob, Bytes and OpaqueID bytes, and the magnitude of Nat and Int
//   - Negative: sign of Int
//   - Nats: big-endian magnitudes of Nats elements
//   - Floats: Floats elements
//   - Items: Array elements, Set members, and the inner value of a present Optional
//   - Fields: Record fields
//   - Entries: Map entries
//
// Mutability is set for Bytes, Nats, Floats and Array.
type Value struct {
	Kind       format.Kind       `msgpack:"k"`
	Mutability format.Mutability `msgpack:"m,omitempty"`
	Uint       uint64            `msgpack:"u,omitempty"`
	Int        int64             `msgpack:"i,omitempty"`
	Text       string            `msgpack:"t,omitempty"`
	Raw        []byte            `msgpack:"r,omitempty"`
	Negative   bool              `msgpack:"n,omitempty"`
	Nats       [][]byte          `msgpack:"ns,omitempty"`
	Floats     []float64         `msgpack:"fs,omitempty"`
	Items      []Value           `msgpack:"a,omitempty"`
	Fields     []Field           `msgpack:"c,omitempty"`
	Entries    []Entry           `msgpack:"e,omitempty"`
}

// Field is the persisted form of a value.Field.
type Field struct {
	Name      string `msgpack:"n"`
	Value     Value  `msgpack:"v"`
	Immutable bool   `msgpack:"x,omitempty"`
}

// Entry is the persisted form of a value.MapEntry.
type Entry struct {
	Key   Value `msgpack:"k"`
	Value Value `msgpack:"v"`
}

// Stabilize converts a working value into its persisted form.
//
// Thawed collections are copied, so the result never aliases working storage.
//
// Returns errs.ErrUnmirroredKind if v, or any value nested in it, has no stable form.
func Stabilize(v value.Value) (Value, error) {
	out := Value{Kind: v.Kind()}

	switch v.Kind() {
	case format.KindEmpty:
	case format.KindNat8, format.KindNat16, format.KindNat32, format.KindNat64:
		n, err := v.ToNat64()
		if err != nil {
			return Value{}, err
		}
		out.Uint = n
	case format.KindInt8, format.KindInt16, format.KindInt32, format.KindInt64:
		n, err := v.ToInt64()
		if err != nil {
			return Value{}, err
		}
		out.Int = n
	case format.KindBool:
		b, _ := v.ToBool()
		if b {
			out.Uint = 1
		}
	case format.KindFloat:
		f, _ := v.ToFloat()
		out.Uint = math.Float64bits(f)
	case format.KindNat:
		n, err := v.ToNat()
		if err != nil {
			return Value{}, err
		}
		out.Raw = n.Bytes()
	case format.KindInt:
		n, err := v.ToInt()
		if err != nil {
			return Value{}, err
		}
		out.Negative = n.Sign() < 0
		out.Raw = n.Bytes()
	case format.KindText:
		out.Text, _ = v.ToText()
	case format.KindBlob:
		out.Raw, _ = v.AsBlob()
	case format.KindOpaqueID:
		id, _ := v.AsOpaqueID()
		out.Raw = id.Bytes()
	case format.KindBytes:
		c, _ := v.AsBytes()
		out.Mutability = c.Mutability()
		out.Raw = c.Items()
	case format.KindNats:
		c, _ := v.AsNats()
		out.Mutability = c.Mutability()
		out.Nats = make([][]byte, c.Len())
		for i, n := range c.All() {
			out.Nats[i] = n.Bytes()
		}
	case format.KindFloats:
		c, _ := v.AsFloats()
		out.Mutability = c.Mutability()
		out.Floats = c.Items()
	case format.KindArray:
		c, _ := v.AsArray()
		out.Mutability = c.Mutability()
		items, err := stabilizeAll(c.Items())
		if err != nil {
			return Value{}, err
		}
		out.Items = items
	case format.KindOptional:
		if inner, ok := v.Unwrap(); ok {
			s, err := Stabilize(inner)
			if err != nil {
				return Value{}, err
			}
			out.Items = []Value{s}
		}
	case format.KindRecord:
		fields, _ := v.AsRecord()
		out.Fields = make([]Field, len(fields))
		for i, f := range fields {
			s, err := Stabilize(f.Value)
			if err != nil {
				return Value{}, fmt.Errorf("field %q: %w", f.Name, err)
			}
			out.Fields[i] = Field{Name: f.Name, Value: s, Immutable: f.Immutable}
		}
	case format.KindMap:
		m, _ := v.AsMap()
		out.Entries = make([]Entry, 0, m.Len())
		for key, val := range m.All() {
			sk, err := Stabilize(key)
			if err != nil {
				return Value{}, err
			}
			sv, err := Stabilize(val)
			if err != nil {
				return Value{}, err
			}
			out.Entries = append(out.Entries, Entry{Key: sk, Value: sv})
		}
	case format.KindSet:
		s, _ := v.AsSet()
		items, err := stabilizeAll(s.Values())
		if err != nil {
			return Value{}, err
		}
		out.Items = items
	default:
		return Value{}, fmt.Errorf("%w: %s", errs.ErrUnmirroredKind, v.Kind())
	}

	return out, nil
}

func stabilizeAll(vs []value.Value) ([]Value, error) {
	out := make([]Value, len(vs))
	for i, v := range vs {
		s, err := Stabilize(v)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		out[i] = s
	}

	return out, nil
}

// Destabilize converts a persisted value back into a working value.
//
// Returns errs.ErrUnmirroredKind for a kind with no working form, and
// errs.ErrInvalidStableValue when the stable value is internally inconsistent.
func Destabilize(s Value) (value.Value, error) {
	if err := checkMutability(s); err != nil {
		return value.Value{}, err
	}

	switch s.Kind {
	case format.KindEmpty:
		return value.Empty(), nil
	case format.KindNat8:
		if s.Uint > math.MaxUint8 {
			return value.Value{}, invalid(s, "Nat8 %d out of range", s.Uint)
		}
		return value.Nat8(uint8(s.Uint)), nil
	case format.KindNat16:
		if s.Uint > math.MaxUint16 {
			return value.Value{}, invalid(s, "Nat16 %d out of range", s.Uint)
		}
		return value.Nat16(uint16(s.Uint)), nil
	case format.KindNat32:
		if s.Uint > math.MaxUint32 {
			return value.Value{}, invalid(s, "Nat32 %d out of range", s.Uint)
		}
		return value.Nat32(uint32(s.Uint)), nil
	case format.KindNat64:
		return value.Nat64(s.Uint), nil
	case format.KindInt8:
		if s.Int < math.MinInt8 || s.Int > math.MaxInt8 {
			return value.Value{}, invalid(s, "Int8 %d out of range", s.Int)
		}
		return value.Int8(int8(s.Int)), nil
	case format.KindInt16:
		if s.Int < math.MinInt16 || s.Int > math.MaxInt16 {
			return value.Value{}, invalid(s, "Int16 %d out of range", s.Int)
		}
		return value.Int16(int16(s.Int)), nil
	case format.KindInt32:
		if s.Int < math.MinInt32 || s.Int > math.MaxInt32 {
			return value.Value{}, invalid(s, "Int32 %d out of range", s.Int)
		}
		return value.Int32(int32(s.Int)), nil
	case format.KindInt64:
		return value.Int64(s.Int), nil
	case format.KindBool:
		if s.Uint > 1 {
			return value.Value{}, invalid(s, "Bool %d", s.Uint)
		}
		return value.Bool(s.Uint == 1), nil
	case format.KindFloat:
		return value.Float(math.Float64frombits(s.Uint)), nil
	case format.KindNat:
		return value.NatBig(new(big.Int).SetBytes(s.Raw))
	case format.KindInt:
		n := new(big.Int).SetBytes(s.Raw)
		if s.Negative {
			if n.Sign() == 0 {
				return value.Value{}, invalid(s, "negative zero Int")
			}
			n.Neg(n)
		}
		return value.IntBig(n), nil
	case format.KindText:
		return value.Text(s.Text), nil
	case format.KindBlob:
		return value.Blob(s.Raw), nil
	case format.KindOpaqueID:
		id, err := value.NewOpaqueID(s.Raw)
		if err != nil {
			return value.Value{}, invalid(s, "%v", err)
		}
		return value.Opaque(id), nil
	case format.KindBytes:
		return value.FromBytes(value.NewCollection(s.Mutability, s.Raw...)), nil
	case format.KindNats:
		ns := make([]*big.Int, len(s.Nats))
		for i, raw := range s.Nats {
			ns[i] = new(big.Int).SetBytes(raw)
		}
		return value.NatsFromBig(s.Mutability, ns...)
	case format.KindFloats:
		return value.FloatsOf(s.Mutability, s.Floats...), nil
	case format.KindArray:
		items, err := destabilizeAll(s.Items)
		if err != nil {
			return value.Value{}, err
		}
		return value.FromArray(value.NewCollection(s.Mutability, items...)), nil
	case format.KindOptional:
		switch len(s.Items) {
		case 0:
			return value.None(), nil
		case 1:
			inner, err := Destabilize(s.Items[0])
			if err != nil {
				return value.Value{}, err
			}
			return value.Some(inner), nil
		default:
			return value.Value{}, invalid(s, "Optional holds %d values", len(s.Items))
		}
	case format.KindRecord:
		fields := make([]value.Field, len(s.Fields))
		for i, f := range s.Fields {
			v, err := Destabilize(f.Value)
			if err != nil {
				return value.Value{}, fmt.Errorf("field %q: %w", f.Name, err)
			}
			fields[i] = value.Field{Name: f.Name, Value: v, Immutable: f.Immutable}
		}
		return value.Record(fields...), nil
	case format.KindMap:
		entries := make([]value.MapEntry, len(s.Entries))
		for i, e := range s.Entries {
			k, err := Destabilize(e.Key)
			if err != nil {
				return value.Value{}, fmt.Errorf("entry %d key: %w", i, err)
			}
			v, err := Destabilize(e.Value)
			if err != nil {
				return value.Value{}, fmt.Errorf("entry %d value: %w", i, err)
			}
			entries[i] = value.MapEntry{Key: k, Value: v}
		}
		return value.MapOf(entries...), nil
	case format.KindSet:
		items, err := destabilizeAll(s.Items)
		if err != nil {
			return value.Value{}, err
		}
		return value.SetOf(items...), nil
	default:
		return value.Value{}, fmt.Errorf("%w: kind 0x%02x", errs.ErrUnmirroredKind, uint8(s.Kind))
	}
}

func destabilizeAll(ss []Value) ([]value.Value, error) {
	out := make([]value.Value, len(ss))
	for i, s := range ss {
		v, err := Destabilize(s)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		out[i] = v
	}

	return out, nil
}

func checkMutability(s Value) error {
	if s.Mutability != format.Frozen && s.Mutability != format.Thawed {
		return invalid(s, "mutability %d", s.Mutability)
	}

	return nil
}

func invalid(s Value, msg string, args ...any) error {
	return fmt.Errorf("%w: %s: %s", errs.ErrInvalidStableValue, s.Kind, fmt.Sprintf(msg, args...))
}
