package workspace

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/candy/format"
	"github.com/arloliu/candy/value"
)

func pageShapes(ws Workspace, maxPageSize uint64) [][]uint64 {
	var shapes [][]uint64
	for page := range ws.Pages(maxPageSize) {
		var sizes []uint64
		for _, c := range page.Chunks {
			sizes = append(sizes, c.Value.Size())
		}
		shapes = append(shapes, sizes)
	}

	return shapes
}

func TestPagingBoundaries(t *testing.T) {
	tests := []struct {
		name string
		ws   Workspace
		max  uint64
		want [][]uint64
	}{
		{
			name: "exact fit stays on page",
			ws:   Workspace{{value.Nat16(1), value.Nat16(2), value.Nat16(3)}},
			max:  4,
			want: [][]uint64{{2, 2}, {2}},
		},
		{
			name: "overflowing value starts next page",
			ws:   Workspace{{value.Nat32(1), value.Nat16(2)}},
			max:  4,
			want: [][]uint64{{3}, {2}},
		},
		{
			name: "oversized value sits alone",
			ws:   Workspace{{value.Nat8(1), value.Text("hello"), value.Nat8(2)}},
			max:  4,
			want: [][]uint64{{1}, {20}, {1}},
		},
		{
			name: "oversized first value",
			ws:   Workspace{{value.Text("hello"), value.Nat8(1)}},
			max:  4,
			want: [][]uint64{{20}, {1}},
		},
		{
			name: "pages span zones",
			ws:   Workspace{{value.Nat8(1)}, {value.Nat8(2), value.Nat8(3)}, {value.Nat8(4)}},
			max:  3,
			want: [][]uint64{{1, 1, 1}, {1}},
		},
		{
			name: "zero sized values",
			ws:   Workspace{{value.None(), value.Empty(), value.Nat8(1)}},
			max:  0,
			want: [][]uint64{{0, 0}, {1}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, pageShapes(tt.ws, tt.max))
			require.Equal(t, uint64(len(tt.want)), tt.ws.GetWorkspaceChunkSize(tt.max))
		})
	}
}

func TestEmptyWorkspacePaging(t *testing.T) {
	ws := Workspace{}
	require.Equal(t, uint64(1), ws.GetWorkspaceChunkSize(10))

	typ, chunks := ws.GetWorkspaceChunk(0, 10)
	require.Equal(t, format.ChunkingEOF, typ)
	require.Empty(t, chunks)
}

func TestGetWorkspaceChunk(t *testing.T) {
	ws := Workspace{
		{value.Nat16(1), value.Nat16(2)},
		{value.Nat16(3)},
	}

	typ, chunks := ws.GetWorkspaceChunk(0, 4)
	require.Equal(t, format.ChunkingChunk, typ)
	require.Equal(t, AddressedChunkArray{
		{Zone: 0, Chunk: 0, Value: value.Nat16(1)},
		{Zone: 0, Chunk: 1, Value: value.Nat16(2)},
	}, chunks)

	typ, chunks = ws.GetWorkspaceChunk(1, 4)
	require.Equal(t, format.ChunkingEOF, typ)
	require.Equal(t, AddressedChunkArray{{Zone: 1, Chunk: 0, Value: value.Nat16(3)}}, chunks)

	typ, chunks = ws.GetWorkspaceChunk(7, 4)
	require.Equal(t, format.ChunkingEOF, typ)
	require.Empty(t, chunks)
}

func TestPagingCompleteness(t *testing.T) {
	mgmt := managementID(t)
	ws := Workspace{
		{value.Nat(16), mgmt, value.Text("Hello, world!")},
		{},
		{value.Int(-123456789000), value.FrozenBytes(make([]byte, 30)), value.Nat8(1)},
		{value.NatsOf(format.Thawed, 1, 2, 3), value.Some(value.Float(1))},
		{value.Record(value.Field{Name: "k", Value: value.Nat16(7)})},
	}

	var largest uint64
	for _, c := range ws.ToAddressedChunkArray() {
		largest = max(largest, c.Value.Size())
	}

	for _, maxPageSize := range []uint64{largest, largest + 1, largest * 2, 1000} {
		var (
			union AddressedChunkArray
			pages uint64
		)
		count := ws.GetWorkspaceChunkSize(maxPageSize)
		for p := range count {
			typ, chunks := ws.GetWorkspaceChunk(p, maxPageSize)
			if p == count-1 {
				require.Equal(t, format.ChunkingEOF, typ)
			} else {
				require.Equal(t, format.ChunkingChunk, typ)
			}
			require.LessOrEqual(t, chunks.Size(), maxPageSize)
			union = append(union, chunks...)
			pages++
		}
		require.Equal(t, count, pages)
		require.True(t, ws.ToAddressedChunkArray().Equal(union), "max %d", maxPageSize)
	}
}

func TestPagesDeterministic(t *testing.T) {
	ws := Workspace{{value.Nat16(1), value.Text("abc"), value.Nat64(2), value.Nat8(3)}}

	var first, second []Page
	for p := range ws.Pages(12) {
		first = append(first, p)
	}
	for p := range ws.Pages(12) {
		second = append(second, p)
	}
	require.Equal(t, first, second)
	require.True(t, first[len(first)-1].IsEOF())
	for i, p := range first {
		require.Equal(t, uint64(i), p.ID)
	}
}

func TestPagesEarlyStop(t *testing.T) {
	ws := Workspace{{value.Nat16(1), value.Nat16(2), value.Nat16(3)}}
	n := 0
	for range ws.Pages(2) {
		n++
		break
	}
	require.Equal(t, 1, n)
}
