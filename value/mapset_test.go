package value

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMapLastWriteWins(t *testing.T) {
	m := NewMap(
		MapEntry{Key: Text("a"), Value: Nat8(1)},
		MapEntry{Key: Text("b"), Value: Nat8(2)},
		MapEntry{Key: Text("a"), Value: Nat8(3)},
	)
	require.Equal(t, 2, m.Len())

	got, ok := m.Get(Text("a"))
	require.True(t, ok)
	require.True(t, got.Equal(Nat8(3)))

	entries := m.Entries()
	require.True(t, entries[0].Key.Equal(Text("a")))
	require.True(t, entries[1].Key.Equal(Text("b")))
}

func TestMapWithWithout(t *testing.T) {
	m := NewMap(MapEntry{Key: Nat8(1), Value: Text("one")})
	m2 := m.With(Nat8(2), Text("two"))
	require.Equal(t, 1, m.Len())
	require.Equal(t, 2, m2.Len())
	require.True(t, m2.Has(Nat8(2)))
	require.False(t, m2.Has(Nat16(2)))

	m3 := m2.Without(Nat8(1))
	require.Equal(t, 1, m3.Len())
	require.False(t, m3.Has(Nat8(1)))
	require.True(t, m2.Has(Nat8(1)))

	require.Equal(t, 2, m2.Without(Text("missing")).Len())

	var keys []Value
	for k := range m2.All() {
		keys = append(keys, k)
	}
	require.Len(t, keys, 2)
	require.True(t, keys[0].Equal(Nat8(1)))
}

func TestSetOperations(t *testing.T) {
	s := NewSet(Nat8(1), Nat8(1), Text("x"))
	require.Equal(t, 2, s.Len())
	require.True(t, s.Has(Text("x")))
	require.False(t, s.Has(Text("y")))

	s2 := s.With(Text("y"))
	require.Equal(t, 3, s2.Len())
	require.Equal(t, 2, s.Len())

	s3 := s2.Without(Nat8(1))
	require.Equal(t, []Value{Text("x"), Text("y")}, s3.Values())

	var nilSet *Set
	require.Equal(t, 0, nilSet.Len())
	require.False(t, nilSet.Has(Nat8(1)))
}

func TestMapValueAccess(t *testing.T) {
	v := FromMap(nil)
	m, ok := v.AsMap()
	require.True(t, ok)
	require.Equal(t, 0, m.Len())

	_, ok = v.AsSet()
	require.False(t, ok)

	s, ok := FromSet(NewSet(Nat8(1))).AsSet()
	require.True(t, ok)
	require.True(t, s.Has(Nat8(1)))
}
