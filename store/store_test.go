package store

import (
	"bytes"
	"log/slog"
	"math/big"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.etcd.io/bbolt"

	"github.com/arloliu/candy/errs"
	"github.com/arloliu/candy/format"
	"github.com/arloliu/candy/value"
	"github.com/arloliu/candy/workspace"
)

func openTestStore(t *testing.T, path string, opts ...Option) *Store {
	t.Helper()
	opts = append([]Option{WithNoSync(), WithLogger(slog.New(slog.DiscardHandler))}, opts...)
	s, err := Open(path, opts...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	return s
}

func sampleValues(t *testing.T) map[string]value.Value {
	t.Helper()

	huge, ok := new(big.Int).SetString("123456789012345678901234567890", 10)
	require.True(t, ok)
	big1, err := value.NatBig(huge)
	require.NoError(t, err)
	id, err := value.ParseOpaqueID("2vxsx-fae")
	require.NoError(t, err)

	return map[string]value.Value{
		"empty":  value.Empty(),
		"nat":    value.Nat(16),
		"bignat": big1,
		"int":    value.Int(-123456789000),
		"nat8":   value.Nat8(255),
		"int16":  value.Int16(-300),
		"float":  value.Float(3.25),
		"text":   value.Text("Hello, world!"),
		"bool":   value.Bool(true),
		"blob":   value.Blob([]byte{0xDE, 0xAD}),
		"opaque": value.Opaque(id),
		"bytes":  value.ThawedBytes([]byte{1, 2, 3}),
		"nats":   value.NatsOf(format.Frozen, 1, 2, 3),
		"floats": value.FloatsOf(format.Thawed, 0.5, -1),
		"array":  value.FrozenArray(value.Nat(1), value.Text("two")),
		"some":   value.Some(value.Int(7)),
		"none":   value.None(),
		"record": value.Record(
			value.Field{Name: "a", Value: value.Nat(1), Immutable: true},
			value.Field{Name: "b", Value: value.Text("x")},
		),
		"map": value.MapOf(
			value.MapEntry{Key: value.Text("k"), Value: value.Nat(1)},
			value.MapEntry{Key: value.Nat(2), Value: value.Bool(false)},
		),
		"set": value.SetOf(value.Nat(1), value.Text("one")),
	}
}

func TestStorePutGet(t *testing.T) {
	s := openTestStore(t, filepath.Join(t.TempDir(), "candy.db"))

	for key, v := range sampleValues(t) {
		require.NoError(t, s.Put(key, v), key)
		got, err := s.Get(key)
		require.NoError(t, err, key)
		require.True(t, v.Equal(got), "%s: want %s, got %s", key, v, got)
	}

	ok, err := s.Has("nat")
	require.NoError(t, err)
	require.True(t, ok)

	_, err = s.Get("missing")
	require.ErrorIs(t, err, errs.ErrNotFound)
}

func TestStoreSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "candy.db")
	values := sampleValues(t)

	s, err := Open(path, WithNoSync(), WithCompression(format.CompressionZstd))
	require.NoError(t, err)
	for key, v := range values {
		require.NoError(t, s.Put(key, v))
	}
	require.NoError(t, s.Close())

	// reopen with a different write compression; old records keep their own
	s = openTestStore(t, path, WithCompression(format.CompressionLZ4))
	for key, v := range values {
		got, err := s.Get(key)
		require.NoError(t, err, key)
		require.True(t, v.Equal(got), key)

		wantMut, wantOK := v.Mutability()
		gotMut, gotOK := got.Mutability()
		require.Equal(t, wantOK, gotOK, key)
		require.Equal(t, wantMut, gotMut, key)
	}

	keys, err := s.Keys()
	require.NoError(t, err)
	require.Len(t, keys, len(values))
	require.IsIncreasing(t, keys)
}

func TestStoreDelete(t *testing.T) {
	s := openTestStore(t, filepath.Join(t.TempDir(), "candy.db"))

	require.NoError(t, s.Put("a", value.Nat(1)))
	require.NoError(t, s.Delete("a"))
	require.NoError(t, s.Delete("a"))

	_, err := s.Get("a")
	require.ErrorIs(t, err, errs.ErrNotFound)

	ok, err := s.Has("a")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestStoreInvalidKey(t *testing.T) {
	s := openTestStore(t, filepath.Join(t.TempDir(), "candy.db"))

	require.ErrorIs(t, s.Put("", value.Nat(1)), errs.ErrInvalidKey)
	_, err := s.Get("")
	require.ErrorIs(t, err, errs.ErrInvalidKey)
	require.ErrorIs(t, s.PutWorkspace("", nil), errs.ErrInvalidKey)
}

func TestStoreRange(t *testing.T) {
	s := openTestStore(t, filepath.Join(t.TempDir(), "candy.db"))

	require.NoError(t, s.Put("a", value.Nat(1)))
	require.NoError(t, s.Put("b", value.Nat(2)))
	require.NoError(t, s.Put("c", value.Nat(3)))

	// corrupt b behind the store's back
	require.NoError(t, s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(valuesBucket)
		rec := bytes.Clone(b.Get([]byte("b")))
		rec[len(rec)-1] ^= 0xFF

		return b.Put([]byte("b"), rec)
	}))

	var keys []string
	require.NoError(t, s.Range(func(key string, v value.Value) bool {
		keys = append(keys, key)
		return true
	}))
	require.Equal(t, []string{"a", "c"}, keys)

	_, err := s.Get("b")
	require.ErrorIs(t, err, errs.ErrChecksumMismatch)

	keys = keys[:0]
	require.NoError(t, s.Range(func(key string, v value.Value) bool {
		keys = append(keys, key)
		return false
	}))
	require.Equal(t, []string{"a"}, keys)
}

func TestStoreWorkspace(t *testing.T) {
	path := filepath.Join(t.TempDir(), "candy.db")
	id, err := value.ParseOpaqueID("aaaaa-aa")
	require.NoError(t, err)

	ws := workspace.Workspace{
		{value.Nat(16), value.Opaque(id)},
		{},
		{value.Int(-123456789000), value.Text("Hello, world!"), value.None()},
		{},
	}

	s, err := Open(path, WithNoSync())
	require.NoError(t, err)
	require.NoError(t, s.PutWorkspace("main", ws))
	require.NoError(t, s.PutWorkspace("other", workspace.Workspace{{value.Bool(true)}}))
	require.NoError(t, s.Close())

	s = openTestStore(t, path)
	got, err := s.GetWorkspace("main")
	require.NoError(t, err)
	require.Len(t, got, len(ws))
	for z := range ws {
		require.Len(t, got[z], len(ws[z]), "zone %d", z)
		for c := range ws[z] {
			require.True(t, ws[z][c].Equal(got[z][c]), "zone %d chunk %d", z, c)
		}
	}

	names, err := s.Workspaces()
	require.NoError(t, err)
	require.Equal(t, []string{"main", "other"}, names)

	// replacing drops chunks of the previous version
	require.NoError(t, s.PutWorkspace("main", workspace.Workspace{{value.Nat(1)}}))
	got, err = s.GetWorkspace("main")
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Len(t, got[0], 1)
	require.True(t, value.Nat(1).Equal(got[0][0]))

	require.NoError(t, s.DeleteWorkspace("main"))
	require.NoError(t, s.DeleteWorkspace("main"))
	_, err = s.GetWorkspace("main")
	require.ErrorIs(t, err, errs.ErrNotFound)
}

func TestStoreEmptyWorkspace(t *testing.T) {
	s := openTestStore(t, filepath.Join(t.TempDir(), "candy.db"))

	require.NoError(t, s.PutWorkspace("empty", workspace.Workspace{}))
	got, err := s.GetWorkspace("empty")
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestStoreWorkspaceCorruptChunk(t *testing.T) {
	s := openTestStore(t, filepath.Join(t.TempDir(), "candy.db"))
	require.NoError(t, s.PutWorkspace("ws", workspace.Workspace{{value.Nat(1), value.Nat(2)}}))

	require.NoError(t, s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(workspacesBucket).Bucket([]byte("ws"))
		key := chunkKey(0, 1)
		rec := bytes.Clone(b.Get(key))
		rec[HeaderSize] ^= 0xFF

		return b.Put(key, rec)
	}))

	_, err := s.GetWorkspace("ws")
	require.ErrorIs(t, err, errs.ErrChecksumMismatch)
}

func TestStoreReadOnly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "candy.db")

	s, err := Open(path, WithNoSync())
	require.NoError(t, err)
	require.NoError(t, s.Put("a", value.Text("kept")))
	require.NoError(t, s.Close())

	ro := openTestStore(t, path, WithReadOnly())
	got, err := ro.Get("a")
	require.NoError(t, err)
	require.True(t, value.Text("kept").Equal(got))

	require.ErrorIs(t, ro.Put("b", value.Nat(1)), bbolt.ErrDatabaseReadOnly)
}

func TestStoreClosed(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "candy.db"), WithNoSync())
	require.NoError(t, err)
	require.NoError(t, s.Close())
	require.NoError(t, s.Close())

	require.ErrorIs(t, s.Put("a", value.Nat(1)), errs.ErrStoreClosed)
	_, err = s.Get("a")
	require.ErrorIs(t, err, errs.ErrStoreClosed)
	_, err = s.Keys()
	require.ErrorIs(t, err, errs.ErrStoreClosed)
	_, err = s.GetWorkspace("ws")
	require.ErrorIs(t, err, errs.ErrStoreClosed)
}

func TestOpenInvalidOption(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "candy.db"), WithCompression(format.CompressionType(0)))
	require.ErrorIs(t, err, errs.ErrInvalidCompression)
}
