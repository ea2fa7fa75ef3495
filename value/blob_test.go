package value

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/candy/errs"
	"github.com/arloliu/candy/format"
)

func TestToBlob(t *testing.T) {
	huge, _ := new(big.Int).SetString("65536", 10)
	id, err := NewOpaqueID([]byte{0xAB, 0xCD})
	require.NoError(t, err)

	tests := []struct {
		name string
		in   Value
		want []byte
	}{
		{"nat16", Nat16(2566), []byte{0x0A, 0x06}},
		{"nat8", Nat8(7), []byte{0x07}},
		{"nat32", Nat32(1), []byte{0, 0, 0, 1}},
		{"nat64", Nat64(258), []byte{0, 0, 0, 0, 0, 0, 1, 2}},
		{"int8 negative", Int8(-1), []byte{0xFF}},
		{"int16 negative", Int16(-2), []byte{0xFF, 0xFE}},
		{"int32", Int32(-1), []byte{0xFF, 0xFF, 0xFF, 0xFF}},
		{"int64", Int64(1), []byte{0, 0, 0, 0, 0, 0, 0, 1}},
		{"nat zero", Nat(0), []byte{0}},
		{"nat 256", Nat(256), []byte{1, 0}},
		{"nat big", mustNatBig(t, huge), []byte{1, 0, 0}},
		{"int negative", Int(-123), []byte{0x01, 0x7B}},
		{"int zero", Int(0), []byte{0x00, 0x00}},
		{"int base128", Int(300), []byte{0x00, 0x02, 0x2C}},
		{"text", Text("Hi"), []byte{0, 0, 0, 'H', 0, 0, 0, 'i'}},
		{"text non ascii", Text("é"), []byte{0, 0, 0, 0xE9}},
		{"blob", Blob([]byte{1, 2, 3}), []byte{1, 2, 3}},
		{"bytes", ThawedBytes([]byte{4, 5}), []byte{4, 5}},
		{"opaque", Opaque(id), []byte{0xAB, 0xCD}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.in.ToBlob()
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestToBlobUnsupported(t *testing.T) {
	unsupported := []Value{
		Bool(true),
		Float(1),
		Record(Field{Name: "a", Value: Nat8(1)}),
		FrozenArray(Nat8(1)),
		Some(Nat8(1)),
		NatsOf(format.Frozen, 1),
		FloatsOf(format.Frozen, 1),
		MapOf(),
		SetOf(),
		Empty(),
	}
	for _, v := range unsupported {
		t.Run(v.Kind().String(), func(t *testing.T) {
			_, err := v.ToBlob()
			require.ErrorIs(t, err, errs.ErrUnsupported)
			require.Contains(t, err.Error(), v.Kind().String())
		})
	}
}

func TestAppendBlob(t *testing.T) {
	buf := []byte{0xEE}
	buf, err := Nat16(2566).AppendBlob(buf)
	require.NoError(t, err)
	buf, err = Nat(0).AppendBlob(buf)
	require.NoError(t, err)
	require.Equal(t, []byte{0xEE, 0x0A, 0x06, 0x00}, buf)
}

func TestTextBlobLengthMatchesSize(t *testing.T) {
	v := Text("Hello, 世界!")
	blob, err := v.ToBlob()
	require.NoError(t, err)
	require.Equal(t, v.Size(), uint64(len(blob)))
}

func mustNatBig(t *testing.T, n *big.Int) Value {
	t.Helper()
	v, err := NatBig(n)
	require.NoError(t, err)

	return v
}
