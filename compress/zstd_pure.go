//go:build !gozstd || !cgo

package compress

import (
	"fmt"
	"sync"

	"github.com/klauspost/compress/zstd"
)

// Pooled klauspost coders. EncodeAll and DecodeAll keep no state between calls,
// so a pooled coder can serve any payload.
var (
	zstdDecoderPool = sync.Pool{
		New: func() any {
			decoder, err := zstd.NewReader(nil,
				zstd.WithDecoderConcurrency(1),
				zstd.WithDecoderMaxMemory(MaxDecodedSize),
			)
			if err != nil {
				panic(fmt.Sprintf("failed to create zstd decoder for pool: %v", err))
			}

			return decoder
		},
	}

	zstdEncoderPool = sync.Pool{
		New: func() any {
			encoder, err := zstd.NewWriter(nil,
				zstd.WithEncoderLevel(zstd.SpeedDefault),
				// records carry their own xxHash64 checksum
				zstd.WithEncoderCRC(false),
			)
			if err != nil {
				panic(fmt.Sprintf("failed to create zstd encoder for pool: %v", err))
			}

			return encoder
		},
	}
)

// Compress compresses data into a single zstd frame. Returns nil for empty input.
func (c ZstdCompressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	encoder, _ := zstdEncoderPool.Get().(*zstd.Encoder)
	defer zstdEncoderPool.Put(encoder)

	return encoder.EncodeAll(data, nil), nil
}

// Decompress decodes a zstd frame produced by Compress.
//
// Frames that declare more than MaxDecodedSize bytes are rejected.
func (c ZstdCompressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	decoder, _ := zstdDecoderPool.Get().(*zstd.Decoder)
	defer zstdDecoderPool.Put(decoder)

	out, err := decoder.DecodeAll(data, nil)
	if err != nil {
		return nil, fmt.Errorf("zstd: %w", err)
	}

	return out, nil
}
