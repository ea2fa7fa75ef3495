package store

import (
	"fmt"

	"github.com/arloliu/candy/compress"
	"github.com/arloliu/candy/endian"
	"github.com/arloliu/candy/errs"
	"github.com/arloliu/candy/format"
	"github.com/arloliu/candy/internal/hash"
)

const (
	// HeaderSize is the fixed size of a record header in bytes.
	HeaderSize = 16

	RecordVersion = 1 // current record format version

	// Bit masks of the options field
	FlagChunkRecord  = 0x0001 // record holds an addressed chunk rather than a named value
	ReservedBitsMask = 0x000E // reserved flag bits (bits 1-3)
	MagicNumberMask  = 0xFFF0 // mask for magic number (bits 4-15)

	MagicRecordV1 = 0xCA10 // magic number of version 1 records
)

// RecordHeader is the fixed-size header in front of every persisted record.
//
// The header is always little-endian:
//
//	offset 0-1   options: magic number (bits 4-15) and flags (bits 0-3)
//	offset 2     version
//	offset 3     compression type of the body
//	offset 4-7   body length in bytes
//	offset 8-15  xxHash64 checksum of the body
type RecordHeader struct {
	Options     uint16
	Version     uint8
	Compression format.CompressionType
	PayloadSize uint32
	Checksum    uint64
}

// IsChunk reports whether the record holds an addressed chunk.
func (h RecordHeader) IsChunk() bool {
	return h.Options&FlagChunkRecord != 0
}

// Parse parses the header from the first HeaderSize bytes of data.
//
// Parameters:
//   - data: Byte slice starting with the header (must be at least 16 bytes)
//
// Returns:
//   - error: ErrInvalidHeaderSize, ErrInvalidMagicNumber, ErrInvalidVersion or
//     ErrInvalidCompression
func (h *RecordHeader) Parse(data []byte) error {
	if len(data) < HeaderSize {
		return fmt.Errorf("%w: got %d bytes", errs.ErrInvalidHeaderSize, len(data))
	}

	engine := endian.GetLittleEndianEngine()
	h.Options = engine.Uint16(data[0:2])
	h.Version = data[2]
	h.Compression = format.CompressionType(data[3])
	h.PayloadSize = engine.Uint32(data[4:8])
	h.Checksum = engine.Uint64(data[8:16])

	return h.Validate()
}

// Validate checks the magic number, version and compression type.
func (h RecordHeader) Validate() error {
	if h.Options&MagicNumberMask != MagicRecordV1 {
		return fmt.Errorf("%w: 0x%04x", errs.ErrInvalidMagicNumber, h.Options&MagicNumberMask)
	}
	if h.Options&ReservedBitsMask != 0 {
		return fmt.Errorf("%w: reserved bits set 0x%04x", errs.ErrInvalidMagicNumber, h.Options)
	}
	if h.Version != RecordVersion {
		return fmt.Errorf("%w: %d", errs.ErrInvalidVersion, h.Version)
	}
	if _, err := compress.GetCodec(h.Compression); err != nil {
		return err
	}

	return nil
}

// AppendTo appends the encoded header to buf.
func (h RecordHeader) AppendTo(buf []byte) []byte {
	engine := endian.GetLittleEndianEngine()
	buf = engine.AppendUint16(buf, h.Options)
	buf = append(buf, h.Version, byte(h.Compression))
	buf = engine.AppendUint32(buf, h.PayloadSize)

	return engine.AppendUint64(buf, h.Checksum)
}

// encodeRecord compresses payload and frames it with a header.
func encodeRecord(payload []byte, compression format.CompressionType, flags uint16) ([]byte, error) {
	codec, err := compress.GetCodec(compression)
	if err != nil {
		return nil, err
	}
	body, err := codec.Compress(payload)
	if err != nil {
		return nil, fmt.Errorf("compress record: %w", err)
	}

	h := RecordHeader{
		Options:     MagicRecordV1 | flags,
		Version:     RecordVersion,
		Compression: compression,
		PayloadSize: uint32(len(body)), //nolint:gosec
		Checksum:    hash.Sum64(body),
	}

	out := make([]byte, 0, HeaderSize+len(body))
	out = h.AppendTo(out)

	return append(out, body...), nil
}

// decodeRecord validates a framed record and returns its decompressed payload.
// The returned slice never aliases data.
func decodeRecord(data []byte) (RecordHeader, []byte, error) {
	var h RecordHeader
	if err := h.Parse(data); err != nil {
		return h, nil, err
	}

	body := data[HeaderSize:]
	if uint32(len(body)) != h.PayloadSize { //nolint:gosec
		return h, nil, fmt.Errorf("%w: header %d, body %d", errs.ErrPayloadSizeMismatch, h.PayloadSize, len(body))
	}
	if sum := hash.Sum64(body); sum != h.Checksum {
		return h, nil, fmt.Errorf("%w: got %016x, expected %016x", errs.ErrChecksumMismatch, sum, h.Checksum)
	}

	codec, err := compress.GetCodec(h.Compression)
	if err != nil {
		return h, nil, err
	}
	payload, err := codec.Decompress(body)
	if err != nil {
		return h, nil, fmt.Errorf("decompress record: %w", err)
	}
	if h.Compression == format.CompressionNone {
		payload = append([]byte(nil), payload...)
	}

	return h, payload, nil
}
