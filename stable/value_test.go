package stable

import (
	"math"
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/candy/errs"
	"github.com/arloliu/candy/format"
	"github.com/arloliu/candy/value"
)

func sampleValues(t *testing.T) map[string]value.Value {
	t.Helper()

	id, err := value.NewOpaqueID([]byte{0, 0, 0, 0, 0, 0, 0, 1, 1, 1})
	require.NoError(t, err)
	huge, _ := new(big.Int).SetString("340282366920938463463374607431768211457", 10)
	natHuge, err := value.NatBig(huge)
	require.NoError(t, err)
	nats, err := value.NatsFromBig(format.Thawed, big.NewInt(0), huge)
	require.NoError(t, err)

	return map[string]value.Value{
		"empty":         value.Empty(),
		"nat8":          value.Nat8(math.MaxUint8),
		"nat16":         value.Nat16(2566),
		"nat32":         value.Nat32(math.MaxUint32),
		"nat64":         value.Nat64(math.MaxUint64),
		"int8":          value.Int8(math.MinInt8),
		"int16":         value.Int16(-2),
		"int32":         value.Int32(math.MinInt32),
		"int64":         value.Int64(math.MinInt64),
		"nat zero":      value.Nat(0),
		"nat huge":      natHuge,
		"int negative":  value.Int(-123456789000),
		"int huge":      value.IntBig(new(big.Int).Neg(huge)),
		"float":         value.Float(-1.5),
		"text":          value.Text("Hello, 世界"),
		"bool true":     value.Bool(true),
		"bool false":    value.Bool(false),
		"blob":          value.Blob([]byte{1, 2, 3}),
		"frozen bytes":  value.FrozenBytes([]byte{4, 5}),
		"thawed bytes":  value.ThawedBytes([]byte{6}),
		"opaque":        value.Opaque(id),
		"none":          value.None(),
		"some":          value.Some(value.Nat16(1)),
		"frozen array":  value.FrozenArray(value.Nat8(1), value.Text("a")),
		"thawed array":  value.ThawedArray(value.ThawedBytes([]byte{1}), value.None()),
		"nats":          nats,
		"floats":        value.FloatsOf(format.Thawed, 1, math.Inf(1)),
		"frozen floats": value.FloatsOf(format.Frozen),
		"record": value.Record(
			value.Field{Name: "a", Value: value.Nat8(1), Immutable: true},
			value.Field{Name: "nested", Value: value.Record(value.Field{Name: "b", Value: value.Text("x")})},
		),
		"map": value.MapOf(
			value.MapEntry{Key: value.Text("k"), Value: value.Nat8(5)},
			value.MapEntry{Key: value.Nat(1), Value: value.SetOf(value.Bool(true))},
		),
		"set": value.SetOf(value.Nat8(1), value.Text("a")),
	}
}

func assertSameMutability(t *testing.T, want, got value.Value) {
	t.Helper()

	wantMut, wantOK := want.Mutability()
	gotMut, gotOK := got.Mutability()
	require.Equal(t, wantOK, gotOK)
	require.Equal(t, wantMut, gotMut)

	if wantItems, err := want.ToArray(); err == nil {
		gotItems, err := got.ToArray()
		require.NoError(t, err)
		for i := range wantItems {
			assertSameMutability(t, wantItems[i], gotItems[i])
		}
	}
}

func TestStabilizeRoundTrip(t *testing.T) {
	for name, v := range sampleValues(t) {
		t.Run(name, func(t *testing.T) {
			s, err := Stabilize(v)
			require.NoError(t, err)
			require.Equal(t, v.Kind(), s.Kind)

			got, err := Destabilize(s)
			require.NoError(t, err)
			require.True(t, v.Equal(got), "got %s, want %s", got, v)
			require.Equal(t, v.Hash(), got.Hash())
			assertSameMutability(t, v, got)
		})
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	for name, v := range sampleValues(t) {
		t.Run(name, func(t *testing.T) {
			s, err := Stabilize(v)
			require.NoError(t, err)

			data, err := Marshal(s)
			require.NoError(t, err)
			require.NotEmpty(t, data)

			decoded, err := Unmarshal(data)
			require.NoError(t, err)

			got, err := Destabilize(decoded)
			require.NoError(t, err)
			require.True(t, v.Equal(got), "got %s, want %s", got, v)
			assertSameMutability(t, v, got)
		})
	}
}

func TestNegativeZeroFloatPreserved(t *testing.T) {
	s, err := Stabilize(value.Float(math.Copysign(0, -1)))
	require.NoError(t, err)
	data, err := Marshal(s)
	require.NoError(t, err)
	decoded, err := Unmarshal(data)
	require.NoError(t, err)
	got, err := Destabilize(decoded)
	require.NoError(t, err)

	f, err := got.ToFloat()
	require.NoError(t, err)
	require.True(t, math.Signbit(f))
}

func TestStabilizeDoesNotAliasThawed(t *testing.T) {
	v := value.ThawedBytes([]byte{1, 2})
	s, err := Stabilize(v)
	require.NoError(t, err)

	s.Raw[0] = 9
	b, _ := v.AsBytes()
	require.Equal(t, []byte{1, 2}, b.Items())
	require.Equal(t, format.Thawed, s.Mutability)
}

func TestDestabilizeUnmirroredKind(t *testing.T) {
	_, err := Destabilize(Value{Kind: format.Kind(0x40)})
	require.ErrorIs(t, err, errs.ErrUnmirroredKind)

	nested := Value{Kind: format.KindArray, Items: []Value{{Kind: format.KindNat8}, {Kind: format.Kind(0x41)}}}
	_, err = Destabilize(nested)
	require.ErrorIs(t, err, errs.ErrUnmirroredKind)
	require.Contains(t, err.Error(), "element 1")

	rec := Value{Kind: format.KindRecord, Fields: []Field{{Name: "f", Value: Value{Kind: format.Kind(0x42)}}}}
	_, err = Destabilize(rec)
	require.ErrorIs(t, err, errs.ErrUnmirroredKind)
}

func TestDestabilizeInvalid(t *testing.T) {
	tests := []struct {
		name string
		in   Value
	}{
		{"nat8 range", Value{Kind: format.KindNat8, Uint: 300}},
		{"nat16 range", Value{Kind: format.KindNat16, Uint: math.MaxUint16 + 1}},
		{"int8 range", Value{Kind: format.KindInt8, Int: -129}},
		{"int32 range", Value{Kind: format.KindInt32, Int: math.MaxInt32 + 1}},
		{"bool range", Value{Kind: format.KindBool, Uint: 2}},
		{"negative zero int", Value{Kind: format.KindInt, Negative: true}},
		{"optional arity", Value{Kind: format.KindOptional, Items: []Value{{}, {}}}},
		{"mutability", Value{Kind: format.KindBytes, Mutability: format.Mutability(7)}},
		{"opaque length", Value{Kind: format.KindOpaqueID, Raw: make([]byte, value.MaxOpaqueIDLen+1)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Destabilize(tt.in)
			require.ErrorIs(t, err, errs.ErrInvalidStableValue)
		})
	}
}

func TestUnmarshalGarbage(t *testing.T) {
	_, err := Unmarshal([]byte{0xC1})
	require.Error(t, err)
}
