package workspace

import (
	"fmt"

	"github.com/arloliu/candy/errs"
	"github.com/arloliu/candy/internal/pool"
	"github.com/arloliu/candy/value"
)

// Address limits enforced when rebuilding a Workspace from untrusted chunks.
const (
	MaxZones         = 1 << 20
	MaxChunksPerZone = 1 << 20
)

// DataChunk is one addressable value within a zone.
type DataChunk = value.Value

// DataZone is an ordered group of chunks.
type DataZone []DataChunk

// Workspace is an ordered sequence of zones.
type Workspace []DataZone

// AddressedChunk is a value with its explicit zone and chunk position.
type AddressedChunk struct {
	Zone  uint64
	Chunk uint64
	Value value.Value
}

// AddressedChunkArray is a flat, explicitly addressed list of chunks.
// It is not required to be sorted or dense.
type AddressedChunkArray []AddressedChunk

// Equal reports whether both chunks carry the same address and an equal value.
func (c AddressedChunk) Equal(other AddressedChunk) bool {
	return c.Zone == other.Zone && c.Chunk == other.Chunk && c.Value.Equal(other.Value)
}

// ValidateAddress checks zone and chunk against MaxZones and MaxChunksPerZone.
func ValidateAddress(zone, chunk uint64) error {
	if zone >= MaxZones {
		return fmt.Errorf("%w: zone %d exceeds %d", errs.ErrMalformedAddress, zone, MaxZones-1)
	}
	if chunk >= MaxChunksPerZone {
		return fmt.Errorf("%w: chunk %d exceeds %d", errs.ErrMalformedAddress, chunk, MaxChunksPerZone-1)
	}

	return nil
}

// CountAddressedChunks returns the total number of chunks across all zones.
func (ws Workspace) CountAddressedChunks() int {
	total := 0
	for _, zone := range ws {
		total += len(zone)
	}

	return total
}

// ToAddressedChunkArray returns one addressed chunk per position in zone-major,
// chunk-minor order.
func (ws Workspace) ToAddressedChunkArray() AddressedChunkArray {
	out := make(AddressedChunkArray, 0, ws.CountAddressedChunks())
	for zi, zone := range ws {
		for ci, chunk := range zone {
			out = append(out, AddressedChunk{Zone: uint64(zi), Chunk: uint64(ci), Value: chunk}) //nolint:gosec
		}
	}

	return out
}

// Size returns the estimated size of all values in the workspace.
func (ws Workspace) Size() uint64 {
	var total uint64
	for _, zone := range ws {
		total += zone.Size()
	}

	return total
}

// FromAddressedChunks rebuilds a dense Workspace from chunks.
//
// The result holds max(zone)+1 zones, or none for empty input. Positions not covered
// by any chunk hold the empty Optional. When two chunks share an address the later
// one wins.
//
// Returns errs.ErrMalformedAddress if any address exceeds the address limits.
func FromAddressedChunks(chunks AddressedChunkArray) (Workspace, error) {
	zones := 0
	for _, c := range chunks {
		if err := ValidateAddress(c.Zone, c.Chunk); err != nil {
			return nil, err
		}
		zones = max(zones, int(c.Zone)+1) //nolint:gosec
	}

	ws := make(Workspace, zones)
	for _, c := range chunks {
		zone := ws[c.Zone]
		idx := int(c.Chunk) //nolint:gosec
		for len(zone) <= idx {
			zone = append(zone, value.None())
		}
		zone[idx] = c.Value
		ws[c.Zone] = zone
	}

	return ws, nil
}

// Size returns the estimated size of all chunk values.
func (a AddressedChunkArray) Size() uint64 {
	var total uint64
	for _, c := range a {
		total += c.Value.Size()
	}

	return total
}

// GetDataChunk returns the value stored at the given address, or the empty Optional
// if no chunk matches. When the address occurs more than once the last one wins,
// consistent with FromAddressedChunks.
func (a AddressedChunkArray) GetDataChunk(zone, chunk uint64) DataChunk {
	for i := len(a) - 1; i >= 0; i-- {
		if a[i].Zone == zone && a[i].Chunk == chunk {
			return a[i].Value
		}
	}

	return value.None()
}

// Equal reports whether both arrays hold equal chunks in the same order.
func (a AddressedChunkArray) Equal(other AddressedChunkArray) bool {
	if len(a) != len(other) {
		return false
	}
	for i := range a {
		if !a[i].Equal(other[i]) {
			return false
		}
	}

	return true
}

// Flatten concatenates, for every chunk in order, the blobs of Nat(zone), Nat(chunk)
// and the chunk value.
//
// The output carries no delimiters and cannot be parsed back without knowing the chunk
// boundaries out of band.
//
// Returns errs.ErrUnsupported if a chunk value has no blob form.
func (a AddressedChunkArray) Flatten() ([]byte, error) {
	bb := pool.GetFlatBuffer()
	defer pool.PutFlatBuffer(bb)

	var err error
	for i, c := range a {
		bb.B, _ = value.Nat(c.Zone).AppendBlob(bb.B)
		bb.B, _ = value.Nat(c.Chunk).AppendBlob(bb.B)
		bb.B, err = c.Value.AppendBlob(bb.B)
		if err != nil {
			return nil, fmt.Errorf("chunk %d (zone %d, chunk %d): %w", i, c.Zone, c.Chunk, err)
		}
	}

	return bb.Clone(), nil
}
