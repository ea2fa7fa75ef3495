package compress

// NoOpCompressor passes payloads through unchanged.
//
// It is the right choice for tiny scalar records, where any compressed framing
// would be larger than the payload itself.
type NoOpCompressor struct{}

var _ Codec = (*NoOpCompressor)(nil)

// NewNoOpCompressor creates a new no-operation compressor.
func NewNoOpCompressor() NoOpCompressor {
	return NoOpCompressor{}
}

// Compress returns data itself. The result shares memory with the input.
func (c NoOpCompressor) Compress(data []byte) ([]byte, error) {
	return data, nil
}

// Decompress returns data itself. The result shares memory with the input, so
// callers that keep it past the lifetime of data must copy it.
func (c NoOpCompressor) Decompress(data []byte) ([]byte, error) {
	return data, nil
}
