package workspace

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/candy/errs"
	"github.com/arloliu/candy/format"
	"github.com/arloliu/candy/value"
)

func managementID(t *testing.T) value.Value {
	t.Helper()
	id, err := value.ParseOpaqueID("aaaaa-aa")
	require.NoError(t, err)

	return value.Opaque(id)
}

func TestToAddressedChunkArrayScenario(t *testing.T) {
	mgmt := managementID(t)
	ws := Workspace{
		{value.Nat(16), mgmt},
		{value.Nat(16), mgmt},
		{value.Int(-123456789000), value.Text("Hello, world!")},
	}

	chunks := ws.ToAddressedChunkArray()
	require.Len(t, chunks, 6)
	require.Equal(t, 6, ws.CountAddressedChunks())

	wantZones := []uint64{0, 0, 1, 1, 2, 2}
	wantChunks := []uint64{0, 1, 0, 1, 0, 1}
	for i, c := range chunks {
		require.Equal(t, wantZones[i], c.Zone, "chunk %d", i)
		require.Equal(t, wantChunks[i], c.Chunk, "chunk %d", i)
		require.True(t, c.Value.Equal(ws[c.Zone][c.Chunk]))
	}

	require.True(t, chunks.GetDataChunk(2, 1).Equal(value.Text("Hello, world!")))
}

func TestRoundTrip(t *testing.T) {
	ws := Workspace{
		{value.Nat8(1), value.Text("a"), value.Float(2.5)},
		{},
		{value.FrozenArray(value.Nat8(1)), value.Some(value.Bool(true))},
	}

	got, err := FromAddressedChunks(ws.ToAddressedChunkArray())
	require.NoError(t, err)
	require.Len(t, got, len(ws))
	for zi, zone := range ws {
		require.Len(t, got[zi], len(zone))
		for ci, chunk := range zone {
			require.True(t, chunk.Equal(got[zi][ci]), "zone %d chunk %d", zi, ci)
		}
	}
}

func TestFromAddressedChunks(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		ws, err := FromAddressedChunks(nil)
		require.NoError(t, err)
		require.Empty(t, ws)
	})

	t.Run("sparse and unsorted", func(t *testing.T) {
		ws, err := FromAddressedChunks(AddressedChunkArray{
			{Zone: 2, Chunk: 2, Value: value.Nat8(3)},
			{Zone: 0, Chunk: 1, Value: value.Nat8(1)},
		})
		require.NoError(t, err)
		require.Len(t, ws, 3)

		require.Len(t, ws[0], 2)
		require.True(t, ws[0][0].IsNone())
		require.True(t, ws[0][1].Equal(value.Nat8(1)))

		require.Empty(t, ws[1])

		require.Len(t, ws[2], 3)
		require.True(t, ws[2][0].IsNone())
		require.True(t, ws[2][1].IsNone())
		require.True(t, ws[2][2].Equal(value.Nat8(3)))
	})

	t.Run("last write wins", func(t *testing.T) {
		ws, err := FromAddressedChunks(AddressedChunkArray{
			{Zone: 0, Chunk: 0, Value: value.Nat8(1)},
			{Zone: 0, Chunk: 1, Value: value.Nat8(2)},
			{Zone: 0, Chunk: 0, Value: value.Nat8(9)},
		})
		require.NoError(t, err)
		require.Len(t, ws[0], 2)
		require.True(t, ws[0][0].Equal(value.Nat8(9)))
		require.True(t, ws[0][1].Equal(value.Nat8(2)))
	})

	t.Run("malformed address", func(t *testing.T) {
		_, err := FromAddressedChunks(AddressedChunkArray{{Zone: MaxZones, Chunk: 0, Value: value.Nat8(1)}})
		require.ErrorIs(t, err, errs.ErrMalformedAddress)

		_, err = FromAddressedChunks(AddressedChunkArray{{Zone: 0, Chunk: MaxChunksPerZone, Value: value.Nat8(1)}})
		require.ErrorIs(t, err, errs.ErrMalformedAddress)
	})
}

func TestGetDataChunk(t *testing.T) {
	chunks := AddressedChunkArray{
		{Zone: 0, Chunk: 0, Value: value.Nat8(1)},
		{Zone: 1, Chunk: 0, Value: value.Nat8(2)},
		{Zone: 1, Chunk: 0, Value: value.Nat8(3)},
	}
	require.True(t, chunks.GetDataChunk(0, 0).Equal(value.Nat8(1)))
	require.True(t, chunks.GetDataChunk(1, 0).Equal(value.Nat8(3)))
	require.True(t, chunks.GetDataChunk(5, 5).IsNone())
	require.True(t, AddressedChunkArray(nil).GetDataChunk(0, 0).IsNone())
}

func TestFlatten(t *testing.T) {
	chunks := AddressedChunkArray{
		{Zone: 0, Chunk: 1, Value: value.Nat16(2566)},
		{Zone: 256, Chunk: 0, Value: value.Text("A")},
	}
	flat, err := chunks.Flatten()
	require.NoError(t, err)
	require.Equal(t, []byte{
		0x00, 0x01, 0x0A, 0x06,
		0x01, 0x00, 0x00, 0x00, 0x00, 0x00, 'A',
	}, flat)

	_, err = AddressedChunkArray{{Value: value.Bool(true)}}.Flatten()
	require.ErrorIs(t, err, errs.ErrUnsupported)
}

func TestSizes(t *testing.T) {
	ws := Workspace{
		{value.Nat8(1), value.Nat16(1)},
		{value.Text("ab")},
	}
	require.Equal(t, uint64(3), ws[0].Size())
	require.Equal(t, uint64(11), ws.Size())
	require.Equal(t, uint64(11), ws.ToAddressedChunkArray().Size())
}

func TestDataZoneBuffers(t *testing.T) {
	zone := DataZone{value.Nat(42), value.Text("A")}
	buf, err := zone.ToBytesBuffer()
	require.NoError(t, err)
	require.Equal(t, [][]byte{{42}, {0, 0, 0, 'A'}}, buf)

	back := DataZoneFromBuffer(buf)
	require.Len(t, back, 2)
	require.True(t, back[0].Equal(value.FrozenBytes([]byte{42})))
	require.Equal(t, format.KindBytes, back[1].Kind())

	_, err = DataZone{value.Float(1)}.ToBytesBuffer()
	require.ErrorIs(t, err, errs.ErrUnsupported)
}
