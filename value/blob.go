package value

import (
	"fmt"
	"math/big"

	"github.com/arloliu/candy/endian"
	"github.com/arloliu/candy/errs"
	"github.com/arloliu/candy/format"
	"github.com/arloliu/candy/internal/pool"
)

const (
	intSignPositive = 0x0
	intSignNegative = 0x1
)

var big128 = big.NewInt(128)

// ToBlob returns the canonical byte encoding of v.
//
// Encoding per kind:
//   - Fixed-width integers: big-endian bytes of their native width.
//   - Nat: minimal big-endian base-256 digits, zero is a single zero byte.
//   - Int: a sign byte (1 for negative), then minimal big-endian base-128 digits of the magnitude.
//   - Text: a 4-byte big-endian code point per character.
//   - Blob, Bytes and OpaqueID: raw bytes.
//
// Returns errs.ErrUnsupported naming the kind for every other kind.
func (v Value) ToBlob() ([]byte, error) {
	bb := pool.GetValueBuffer()
	defer pool.PutValueBuffer(bb)

	buf, err := v.AppendBlob(bb.B)
	if err != nil {
		return nil, err
	}
	bb.B = buf

	return bb.Clone(), nil
}

// AppendBlob appends the canonical byte encoding of v to buf, see ToBlob.
func (v Value) AppendBlob(buf []byte) ([]byte, error) {
	engine := endian.GetBigEndianEngine()

	switch v.kind {
	case format.KindNat8, format.KindInt8:
		return append(buf, byte(v.bits)), nil
	case format.KindNat16:
		return engine.AppendUint16(buf, uint16(v.bits)), nil //nolint:gosec
	case format.KindNat32:
		return engine.AppendUint32(buf, uint32(v.bits)), nil //nolint:gosec
	case format.KindNat64:
		return engine.AppendUint64(buf, v.bits), nil
	case format.KindInt16:
		return endian.AppendInt16(engine, buf, int16(v.signed())), nil //nolint:gosec
	case format.KindInt32:
		return endian.AppendInt32(engine, buf, int32(v.signed())), nil //nolint:gosec
	case format.KindInt64:
		return endian.AppendInt64(engine, buf, v.signed()), nil
	case format.KindNat:
		n := v.bigInt()
		if n.Sign() == 0 {
			return append(buf, 0), nil
		}

		return append(buf, n.Bytes()...), nil
	case format.KindInt:
		return appendIntBlob(buf, v.bigInt()), nil
	case format.KindText:
		for _, r := range v.text() {
			buf = engine.AppendUint32(buf, uint32(r)) //nolint:gosec
		}

		return buf, nil
	case format.KindBlob:
		return append(buf, v.blob()...), nil
	case format.KindBytes:
		return append(buf, v.bytes().items...), nil
	case format.KindOpaqueID:
		return append(buf, v.opaque().raw...), nil
	default:
		return buf, fmt.Errorf("%w: cannot convert %s to blob", errs.ErrUnsupported, v.kind)
	}
}

func appendIntBlob(buf []byte, n *big.Int) []byte {
	if n.Sign() < 0 {
		buf = append(buf, intSignNegative)
	} else {
		buf = append(buf, intSignPositive)
	}

	mag := new(big.Int).Abs(n)
	if mag.Sign() == 0 {
		return append(buf, 0)
	}

	var digits []byte
	rem := new(big.Int)
	for mag.Sign() > 0 {
		mag.QuoRem(mag, big128, rem)
		digits = append(digits, byte(rem.Uint64()))
	}
	for i := len(digits) - 1; i >= 0; i-- {
		buf = append(buf, digits[i])
	}

	return buf
}
