package compress

import (
	"fmt"

	"github.com/arloliu/candy/errs"
	"github.com/arloliu/candy/format"
)

// MaxDecodedSize bounds the decompressed size of a single payload (128 MiB).
// Codecs that record the decoded size reject larger values before allocating.
const MaxDecodedSize = 128 << 20

// Compressor compresses store record payloads.
//
// Payloads are MessagePack-encoded stable values, typically a few bytes to a few
// hundred kilobytes.
type Compressor interface {
	// Compress compresses data and returns the compressed result.
	//
	// Memory management:
	//   - Returned slice is owned by the caller unless documented otherwise
	//   - Input slice is not modified
	Compress(data []byte) ([]byte, error)
}

// Decompressor restores payloads produced by the matching Compressor.
//
// Example:
//
//	codec, _ := compress.GetCodec(format.CompressionZstd)
//	payload, err := codec.Decompress(stored)
//	if err != nil {
//	    return fmt.Errorf("decompression failed: %w", err)
//	}
type Decompressor interface {
	// Decompress decompresses data and returns the original payload.
	//
	// Returns an error if data is corrupted or was produced by another algorithm.
	Decompress(data []byte) ([]byte, error)
}

// Codec combines both compression and decompression capabilities.
type Codec interface {
	Compressor
	Decompressor
}

// CreateCodec creates a new Codec for the specified compression type.
//
// Parameters:
//   - compressionType: Type of compression (None, Zstd, S2, or LZ4)
//   - target: Description of target usage (for error messages)
//
// Returns:
//   - Codec: Codec instance for the specified type
//   - error: errs.ErrInvalidCompression for an unknown type
func CreateCodec(compressionType format.CompressionType, target string) (Codec, error) {
	switch compressionType {
	case format.CompressionNone:
		return NewNoOpCompressor(), nil
	case format.CompressionZstd:
		return NewZstdCompressor(), nil
	case format.CompressionS2:
		return NewS2Compressor(), nil
	case format.CompressionLZ4:
		return NewLZ4Compressor(), nil
	default:
		return nil, fmt.Errorf("%w: %s compression %s", errs.ErrInvalidCompression, target, compressionType)
	}
}

var builtinCodecs = map[format.CompressionType]Codec{
	format.CompressionNone: NewNoOpCompressor(),
	format.CompressionZstd: NewZstdCompressor(),
	format.CompressionS2:   NewS2Compressor(),
	format.CompressionLZ4:  NewLZ4Compressor(),
}

// GetCodec retrieves a shared built-in Codec for the specified compression type.
func GetCodec(compressionType format.CompressionType) (Codec, error) {
	if codec, ok := builtinCodecs[compressionType]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("%w: %s", errs.ErrInvalidCompression, compressionType)
}
