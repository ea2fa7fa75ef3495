package value

import (
	"unicode/utf8"

	"github.com/arloliu/candy/format"
)

const (
	codePointSize     = 4 // bytes per character in the blob text form
	elementOverhead   = 1 // per element of arrays, records, maps and sets
	collectionTrailer = 2 // length header of Bytes, Nats and Floats
)

// Size returns the estimated encoded byte length of v.
//
// Fixed-width integers cost 1, 2, 3 and 4 bytes for 8, 16, 32 and 64 bits, matching
// the variable-length wire form. Text costs 4 bytes per character, equal to its blob
// length. The estimate is deterministic and is the cost function of workspace paging.
func (v Value) Size() uint64 {
	switch v.kind {
	case format.KindEmpty:
		return 0
	case format.KindNat8, format.KindInt8, format.KindBool:
		return 1
	case format.KindNat16, format.KindInt16:
		return 2
	case format.KindNat32, format.KindInt32:
		return 3
	case format.KindNat64, format.KindInt64, format.KindFloat:
		return 4
	case format.KindNat:
		return base256Digits(v.bigInt().BitLen())
	case format.KindInt:
		return base256Digits(v.bigInt().BitLen()) + 1
	case format.KindText:
		return textSize(v.text())
	case format.KindBlob:
		return uint64(len(v.blob()))
	case format.KindOpaqueID:
		return uint64(v.opaque().Len()) //nolint:gosec
	case format.KindBytes:
		return uint64(v.bytes().Len()) + collectionTrailer //nolint:gosec
	case format.KindNats:
		return uint64(v.nats().Len())*codePointSize + collectionTrailer //nolint:gosec
	case format.KindFloats:
		return uint64(v.floats().Len())*codePointSize + collectionTrailer //nolint:gosec
	case format.KindRecord:
		var total uint64
		for _, f := range v.fields() {
			total += elementOverhead + textSize(f.Name) + f.Value.Size()
		}

		return total
	case format.KindArray:
		var total uint64
		for _, item := range v.array().items {
			total += elementOverhead + item.Size()
		}

		return total
	case format.KindOptional:
		if inner, ok := v.Unwrap(); ok {
			return inner.Size()
		}

		return 0
	case format.KindMap:
		var total uint64
		for key, val := range v.mapping().All() {
			total += elementOverhead + key.Size() + val.Size()
		}

		return total
	case format.KindSet:
		var total uint64
		for member := range v.set().All() {
			total += elementOverhead + member.Size()
		}

		return total
	default:
		return 0
	}
}

// base256Digits returns the number of base-256 digits of a magnitude with the given
// bit length, at least one.
func base256Digits(bitLen int) uint64 {
	if bitLen == 0 {
		return 1
	}

	return uint64((bitLen + 7) / 8) //nolint:gosec
}

func textSize(s string) uint64 {
	return uint64(utf8.RuneCountInString(s)) * codePointSize //nolint:gosec
}
