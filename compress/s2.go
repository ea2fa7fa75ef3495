package compress

import (
	"fmt"

	"github.com/klauspost/compress/s2"
)

// S2Compressor provides S2 compression, a faster Snappy-compatible format.
//
// S2 is the store's default codec: stable records are small and read often, and S2
// decodes them at memory speed.
type S2Compressor struct{}

var _ Codec = (*S2Compressor)(nil)

// NewS2Compressor creates a new S2 compressor.
func NewS2Compressor() S2Compressor {
	return S2Compressor{}
}

// Compress compresses data as a single S2 block. Returns nil for empty input.
func (c S2Compressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return s2.Encode(nil, data), nil
}

// Decompress decodes an S2 block.
//
// The decoded length stored in the block is checked against MaxDecodedSize before any
// allocation, so a corrupted length cannot trigger a huge allocation.
func (c S2Compressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	size, err := s2.DecodedLen(data)
	if err != nil {
		return nil, fmt.Errorf("s2: %w", err)
	}
	if size > MaxDecodedSize {
		return nil, fmt.Errorf("s2: decoded size %d exceeds %d", size, MaxDecodedSize)
	}

	out, err := s2.Decode(nil, data)
	if err != nil {
		return nil, fmt.Errorf("s2: %w", err)
	}

	return out, nil
}
