package compress

// ZstdCompressor provides Zstandard compression for record payloads.
//
// Zstd gives the best ratio of the built-in codecs and suits large checkpoints such
// as whole workspaces or text-heavy records, where storage size matters more than
// encode latency.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a new Zstd compressor with default settings.
//
// Returns:
//   - ZstdCompressor: New Zstd compressor instance
//
// Example:
//
//	compressor := NewZstdCompressor()
//	compressed, err := compressor.Compress(data)
//	if err != nil {
//		return err
//	}
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}
