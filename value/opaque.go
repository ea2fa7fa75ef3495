package value

import (
	"encoding/base32"
	"fmt"
	"hash/crc32"
	"strings"

	"github.com/arloliu/candy/endian"
	"github.com/arloliu/candy/errs"
)

// MaxOpaqueIDLen is the maximum raw length of an OpaqueID in bytes.
const MaxOpaqueIDLen = 29

const (
	opaqueCRCLen    = 4
	opaqueGroupSize = 5
)

var opaqueEncoding = base32.StdEncoding.WithPadding(base32.NoPadding)

// OpaqueID is an opaque network identifier held as raw bytes.
//
// Its text form is the lowercase base32 encoding of a big-endian CRC-32 checksum
// followed by the raw bytes, grouped with a dash every five characters.
type OpaqueID struct {
	raw string
}

// NewOpaqueID returns an OpaqueID holding a copy of raw.
//
// Returns errs.ErrInvalidOpaqueID if raw is longer than MaxOpaqueIDLen.
func NewOpaqueID(raw []byte) (OpaqueID, error) {
	if len(raw) > MaxOpaqueIDLen {
		return OpaqueID{}, fmt.Errorf("%w: length %d exceeds %d", errs.ErrInvalidOpaqueID, len(raw), MaxOpaqueIDLen)
	}

	return OpaqueID{raw: string(raw)}, nil
}

// ParseOpaqueID parses the text form produced by OpaqueID.String.
//
// Returns errs.ErrInvalidOpaqueID if the text is not valid base32, the checksum does
// not match, or the grouping is not canonical.
func ParseOpaqueID(text string) (OpaqueID, error) {
	lower := strings.ToLower(text)
	decoded, err := opaqueEncoding.DecodeString(strings.ToUpper(strings.ReplaceAll(lower, "-", "")))
	if err != nil {
		return OpaqueID{}, fmt.Errorf("%w: %w", errs.ErrInvalidOpaqueID, err)
	}
	if len(decoded) < opaqueCRCLen {
		return OpaqueID{}, fmt.Errorf("%w: %q too short", errs.ErrInvalidOpaqueID, text)
	}

	id, err := NewOpaqueID(decoded[opaqueCRCLen:])
	if err != nil {
		return OpaqueID{}, err
	}

	want := endian.GetBigEndianEngine().Uint32(decoded[:opaqueCRCLen])
	if got := crc32.ChecksumIEEE(decoded[opaqueCRCLen:]); got != want {
		return OpaqueID{}, fmt.Errorf("%w: checksum %08x, expected %08x", errs.ErrInvalidOpaqueID, got, want)
	}
	if id.String() != lower {
		return OpaqueID{}, fmt.Errorf("%w: %q is not in canonical form", errs.ErrInvalidOpaqueID, text)
	}

	return id, nil
}

// Bytes returns a copy of the raw identifier bytes.
func (id OpaqueID) Bytes() []byte {
	return []byte(id.raw)
}

// Len returns the raw length in bytes.
func (id OpaqueID) Len() int {
	return len(id.raw)
}

// Equal reports whether both identifiers hold the same bytes.
func (id OpaqueID) Equal(other OpaqueID) bool {
	return id.raw == other.raw
}

// String returns the checksummed, grouped text form of the identifier.
func (id OpaqueID) String() string {
	buf := make([]byte, 0, opaqueCRCLen+len(id.raw))
	buf = endian.GetBigEndianEngine().AppendUint32(buf, crc32.ChecksumIEEE([]byte(id.raw)))
	buf = append(buf, id.raw...)

	encoded := strings.ToLower(opaqueEncoding.EncodeToString(buf))

	var sb strings.Builder
	sb.Grow(len(encoded) + len(encoded)/opaqueGroupSize)
	for i := 0; i < len(encoded); i += opaqueGroupSize {
		if i > 0 {
			sb.WriteByte('-')
		}
		sb.WriteString(encoded[i:min(i+opaqueGroupSize, len(encoded))])
	}

	return sb.String()
}
