package compress

import (
	"encoding/binary"
	"fmt"
	"sync"

	"github.com/pierrec/lz4/v4"

	"github.com/arloliu/candy/errs"
)

// LZ4 frame modes. LZ4 block compression reports incompressible input, which is
// common for short stable records, so such input is stored raw.
const (
	lz4ModeRaw   = 0x0
	lz4ModeBlock = 0x1
)

// lz4CompressorPool pools lz4.Compressor instances for reuse.
var lz4CompressorPool = sync.Pool{
	New: func() any {
		return &lz4.Compressor{}
	},
}

// LZ4Compressor provides LZ4 block compression with the fastest decompression of the
// built-in codecs.
//
// Compressed data layout:
//
//	mode (1 byte) | uncompressed length (uvarint) | body
//
// The body is an LZ4 block when mode is lz4ModeBlock and the input itself otherwise.
// Recording the length lets Decompress allocate the output exactly once.
type LZ4Compressor struct{}

var _ Codec = (*LZ4Compressor)(nil)

// NewLZ4Compressor creates a new LZ4 compressor.
func NewLZ4Compressor() LZ4Compressor {
	return LZ4Compressor{}
}

// Compress compresses data with a pooled lz4.Compressor.
//
// Returns nil for empty input.
func (c LZ4Compressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	hdr := make([]byte, 0, 1+binary.MaxVarintLen64)
	hdr = append(hdr, lz4ModeBlock)
	hdr = binary.AppendUvarint(hdr, uint64(len(data)))

	dst := make([]byte, len(hdr)+lz4.CompressBlockBound(len(data)))
	copy(dst, hdr)

	lc, _ := lz4CompressorPool.Get().(*lz4.Compressor)
	defer lz4CompressorPool.Put(lc)

	n, err := lc.CompressBlock(data, dst[len(hdr):])
	if err != nil {
		return nil, fmt.Errorf("lz4: %w", err)
	}
	if n == 0 || n >= len(data) {
		dst = append(dst[:len(hdr)], data...)
		dst[0] = lz4ModeRaw

		return dst, nil
	}

	return dst[:len(hdr)+n], nil
}

// Decompress restores data produced by Compress.
//
// Returns nil for empty input, and an error when the mode byte is unknown, the
// recorded length exceeds MaxDecodedSize, or the body does not decode to exactly the
// recorded length.
func (c LZ4Compressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	mode := data[0]
	size, n := binary.Uvarint(data[1:])
	if n <= 0 {
		return nil, fmt.Errorf("lz4: malformed length prefix")
	}
	if size > MaxDecodedSize {
		return nil, fmt.Errorf("lz4: decoded size %d exceeds %d", size, MaxDecodedSize)
	}
	body := data[1+n:]

	switch mode {
	case lz4ModeRaw:
		if uint64(len(body)) != size {
			return nil, fmt.Errorf("lz4: %w: raw body %d, expected %d", errs.ErrPayloadSizeMismatch, len(body), size)
		}

		return append([]byte(nil), body...), nil
	case lz4ModeBlock:
		out := make([]byte, size)
		written, err := lz4.UncompressBlock(body, out)
		if err != nil {
			return nil, fmt.Errorf("lz4: %w", err)
		}
		if uint64(written) != size {
			return nil, fmt.Errorf("lz4: %w: decoded %d, expected %d", errs.ErrPayloadSizeMismatch, written, size)
		}

		return out, nil
	default:
		return nil, fmt.Errorf("lz4: unknown block mode 0x%02x", mode)
	}
}
