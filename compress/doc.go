// Package compress provides compression codecs for persisted candy records.
//
// The store package frames every persisted value as a small header followed by a
// MessagePack payload; the payload is passed through one of the codecs below before
// it is written. The codec in use is recorded in the header, so readers always pick
// the matching decompressor.
//
// Supported algorithms:
//   - None: no compression (format.CompressionNone)
//   - Zstd: best ratio, moderate speed (format.CompressionZstd)
//   - S2: balanced speed and ratio (format.CompressionS2)
//   - LZ4: fastest decompression (format.CompressionLZ4)
//
// # Selection
//
//	| Workload                        | Recommended |
//	|---------------------------------|-------------|
//	| Large text or record checkpoints | Zstd        |
//	| Frequent small checkpoints       | S2          |
//	| Read-heavy restore paths         | LZ4         |
//	| Tiny scalar values               | None        |
//
// # Zstd Implementations
//
// The default Zstd codec is the pure-Go klauspost/compress implementation. Building
// with the gozstd tag (and cgo enabled) switches to the valyala/gozstd bindings of
// the reference C library. Both produce standard Zstd frames and are interchangeable.
//
// # Thread Safety
//
// All codec implementations are safe for concurrent use. Encoders and decoders are
// pooled internally.
//
// # Example
//
//	codec, err := compress.GetCodec(format.CompressionS2)
//	if err != nil {
//	    return err
//	}
//	compressed, _ := codec.Compress(payload)
//	original, _ := codec.Decompress(compressed)
package compress
