package stable

import (
	"fmt"

	"github.com/arloliu/candy/workspace"
)

// AddressedChunk is the persisted form of a workspace.AddressedChunk.
type AddressedChunk struct {
	Zone  uint64 `msgpack:"z"`
	Chunk uint64 `msgpack:"c"`
	Value Value  `msgpack:"v"`
}

// StabilizeChunk converts an addressed chunk into its persisted form.
func StabilizeChunk(c workspace.AddressedChunk) (AddressedChunk, error) {
	s, err := Stabilize(c.Value)
	if err != nil {
		return AddressedChunk{}, fmt.Errorf("zone %d chunk %d: %w", c.Zone, c.Chunk, err)
	}

	return AddressedChunk{Zone: c.Zone, Chunk: c.Chunk, Value: s}, nil
}

// DestabilizeChunk converts a persisted addressed chunk back into its working form.
func DestabilizeChunk(s AddressedChunk) (workspace.AddressedChunk, error) {
	v, err := Destabilize(s.Value)
	if err != nil {
		return workspace.AddressedChunk{}, fmt.Errorf("zone %d chunk %d: %w", s.Zone, s.Chunk, err)
	}

	return workspace.AddressedChunk{Zone: s.Zone, Chunk: s.Chunk, Value: v}, nil
}

// StabilizeChunks converts every chunk of a, keeping its order.
func StabilizeChunks(a workspace.AddressedChunkArray) ([]AddressedChunk, error) {
	out := make([]AddressedChunk, len(a))
	for i, c := range a {
		s, err := StabilizeChunk(c)
		if err != nil {
			return nil, err
		}
		out[i] = s
	}

	return out, nil
}

// DestabilizeChunks converts every persisted chunk back, keeping its order.
func DestabilizeChunks(ss []AddressedChunk) (workspace.AddressedChunkArray, error) {
	out := make(workspace.AddressedChunkArray, len(ss))
	for i, s := range ss {
		c, err := DestabilizeChunk(s)
		if err != nil {
			return nil, err
		}
		out[i] = c
	}

	return out, nil
}

// MarshalChunk encodes a persisted addressed chunk with MessagePack.
func MarshalChunk(c AddressedChunk) ([]byte, error) {
	return encode(&c)
}

// UnmarshalChunk decodes a persisted addressed chunk produced by MarshalChunk.
func UnmarshalChunk(data []byte) (AddressedChunk, error) {
	var c AddressedChunk
	if err := decode(data, &c); err != nil {
		return AddressedChunk{}, err
	}

	return c, nil
}

// StabilizeWorkspace converts a workspace into persisted addressed chunks.
func StabilizeWorkspace(ws workspace.Workspace) ([]AddressedChunk, error) {
	return StabilizeChunks(ws.ToAddressedChunkArray())
}

// DestabilizeWorkspace rebuilds a workspace from persisted addressed chunks.
func DestabilizeWorkspace(ss []AddressedChunk) (workspace.Workspace, error) {
	chunks, err := DestabilizeChunks(ss)
	if err != nil {
		return nil, err
	}

	return workspace.FromAddressedChunks(chunks)
}
