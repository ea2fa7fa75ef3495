package workspace

import (
	"fmt"

	"github.com/arloliu/candy/value"
)

// Size returns the estimated size of all chunks in the zone.
func (z DataZone) Size() uint64 {
	var total uint64
	for _, chunk := range z {
		total += chunk.Size()
	}

	return total
}

// ToBytesBuffer returns the blob of every chunk in the zone.
//
// Returns errs.ErrUnsupported if a chunk has no blob form.
func (z DataZone) ToBytesBuffer() ([][]byte, error) {
	out := make([][]byte, len(z))
	for i, chunk := range z {
		blob, err := chunk.ToBlob()
		if err != nil {
			return nil, fmt.Errorf("chunk %d: %w", i, err)
		}
		out[i] = blob
	}

	return out, nil
}

// DataZoneFromBuffer returns a zone holding one frozen Bytes chunk per buffer.
func DataZoneFromBuffer(buffers [][]byte) DataZone {
	out := make(DataZone, len(buffers))
	for i, b := range buffers {
		out[i] = value.FrozenBytes(b)
	}

	return out
}
