package format

type (
	Kind            uint8
	Mutability      uint8
	ChunkingType    uint8
	CompressionType uint8
)

// Kind values are persisted by the stable encoding and mixed into value hashes,
// so existing values must never be renumbered.
const (
	KindEmpty    Kind = 0x00 // KindEmpty represents the empty value.
	KindInt      Kind = 0x01 // KindInt represents an arbitrary-precision signed integer.
	KindInt8     Kind = 0x02 // KindInt8 represents a signed 8-bit integer.
	KindInt16    Kind = 0x03 // KindInt16 represents a signed 16-bit integer.
	KindInt32    Kind = 0x04 // KindInt32 represents a signed 32-bit integer.
	KindInt64    Kind = 0x05 // KindInt64 represents a signed 64-bit integer.
	KindNat      Kind = 0x06 // KindNat represents an arbitrary-precision unsigned integer.
	KindNat8     Kind = 0x07 // KindNat8 represents an unsigned 8-bit integer.
	KindNat16    Kind = 0x08 // KindNat16 represents an unsigned 16-bit integer.
	KindNat32    Kind = 0x09 // KindNat32 represents an unsigned 32-bit integer.
	KindNat64    Kind = 0x0A // KindNat64 represents an unsigned 64-bit integer.
	KindFloat    Kind = 0x0B // KindFloat represents an IEEE-754 float64.
	KindText     Kind = 0x0C // KindText represents a unicode string.
	KindBool     Kind = 0x0D // KindBool represents a boolean.
	KindBlob     Kind = 0x0E // KindBlob represents an immutable raw byte string.
	KindBytes    Kind = 0x0F // KindBytes represents a frozen or thawed byte collection.
	KindRecord   Kind = 0x10 // KindRecord represents an ordered list of named fields.
	KindOpaqueID Kind = 0x11 // KindOpaqueID represents an opaque network identifier.
	KindOptional Kind = 0x12 // KindOptional represents an optional value.
	KindArray    Kind = 0x13 // KindArray represents a frozen or thawed heterogeneous array.
	KindNats     Kind = 0x14 // KindNats represents a vector of arbitrary-precision unsigned integers.
	KindFloats   Kind = 0x15 // KindFloats represents a vector of float64.
	KindMap      Kind = 0x16 // KindMap represents an associative value-to-value collection.
	KindSet      Kind = 0x17 // KindSet represents a set of values.
)

const (
	Frozen Mutability = 0x0 // Frozen marks an immutable collection, safe to persist and share.
	Thawed Mutability = 0x1 // Thawed marks a mutable collection owned by a single holder.
)

const (
	ChunkingChunk ChunkingType = 0x1 // ChunkingChunk marks a page that has more pages after it.
	ChunkingEOF   ChunkingType = 0x2 // ChunkingEOF marks the last page of a workspace.
)

const (
	CompressionNone CompressionType = 0x1 // CompressionNone represents no compression.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents LZ4 compression.
)

var kindNames = [...]string{
	KindEmpty:    "Empty",
	KindInt:      "Int",
	KindInt8:     "Int8",
	KindInt16:    "Int16",
	KindInt32:    "Int32",
	KindInt64:    "Int64",
	KindNat:      "Nat",
	KindNat8:     "Nat8",
	KindNat16:    "Nat16",
	KindNat32:    "Nat32",
	KindNat64:    "Nat64",
	KindFloat:    "Float",
	KindText:     "Text",
	KindBool:     "Bool",
	KindBlob:     "Blob",
	KindBytes:    "Bytes",
	KindRecord:   "Record",
	KindOpaqueID: "OpaqueID",
	KindOptional: "Optional",
	KindArray:    "Array",
	KindNats:     "Nats",
	KindFloats:   "Floats",
	KindMap:      "Map",
	KindSet:      "Set",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}

	return "Unknown"
}

// IsValid reports whether k is one of the defined kinds.
func (k Kind) IsValid() bool {
	return k <= KindSet
}

func (m Mutability) String() string {
	switch m {
	case Frozen:
		return "Frozen"
	case Thawed:
		return "Thawed"
	default:
		return "Unknown"
	}
}

func (c ChunkingType) String() string {
	switch c {
	case ChunkingChunk:
		return "Chunk"
	case ChunkingEOF:
		return "Eof"
	default:
		return "Unknown"
	}
}

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}
