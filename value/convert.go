package value

import (
	"fmt"
	"math"
	"math/big"

	"github.com/arloliu/candy/errs"
	"github.com/arloliu/candy/format"
)

// integer returns the integral magnitude of a numeric value.
//
// Floats are rounded half away from zero. When unsigned is set, a negative float
// is rejected before rounding, so -0.001 does not become zero.
func (v Value) integer(unsigned bool) (*big.Int, error) {
	switch v.kind {
	case format.KindNat8, format.KindNat16, format.KindNat32, format.KindNat64:
		return new(big.Int).SetUint64(v.bits), nil
	case format.KindInt8, format.KindInt16, format.KindInt32, format.KindInt64:
		return big.NewInt(v.signed()), nil
	case format.KindNat, format.KindInt:
		return new(big.Int).Set(v.bigInt()), nil
	case format.KindFloat:
		f := v.float()
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return nil, fmt.Errorf("%w: %v has no integer value", errs.ErrNotRepresentable, f)
		}
		if unsigned && f < 0 {
			return nil, fmt.Errorf("%w: negative float %v to unsigned", errs.ErrOverflow, f)
		}
		n, _ := big.NewFloat(math.Round(f)).Int(nil)

		return n, nil
	default:
		return nil, fmt.Errorf("%w: %s is not numeric", errs.ErrNotRepresentable, v.kind)
	}
}

func (v Value) unsigned(bits int) (uint64, error) {
	n, err := v.integer(true)
	if err != nil {
		return 0, err
	}
	if n.Sign() < 0 || n.BitLen() > bits {
		return 0, fmt.Errorf("%w: %s does not fit %d-bit unsigned", errs.ErrOverflow, n, bits)
	}

	return n.Uint64(), nil
}

func (v Value) signedN(bits int) (int64, error) {
	n, err := v.integer(false)
	if err != nil {
		return 0, err
	}
	lo := new(big.Int).Lsh(big.NewInt(-1), uint(bits-1)) //nolint:gosec
	hi := new(big.Int).Sub(new(big.Int).Neg(lo), big.NewInt(1))
	if n.Cmp(lo) < 0 || n.Cmp(hi) > 0 {
		return 0, fmt.Errorf("%w: %s does not fit %d-bit signed", errs.ErrOverflow, n, bits)
	}

	return n.Int64(), nil
}

// ToNat converts a numeric value to an arbitrary-precision unsigned integer.
//
// Returns errs.ErrOverflow for negative values and errs.ErrNotRepresentable for
// non-numeric kinds, NaN and infinities.
func (v Value) ToNat() (*big.Int, error) {
	n, err := v.integer(true)
	if err != nil {
		return nil, err
	}
	if n.Sign() < 0 {
		return nil, fmt.Errorf("%w: negative %s to Nat", errs.ErrOverflow, n)
	}

	return n, nil
}

// ToNat8 converts a numeric value to uint8, failing with errs.ErrOverflow on narrowing loss.
func (v Value) ToNat8() (uint8, error) {
	n, err := v.unsigned(8)
	return uint8(n), err //nolint:gosec
}

// ToNat16 converts a numeric value to uint16, failing with errs.ErrOverflow on narrowing loss.
func (v Value) ToNat16() (uint16, error) {
	n, err := v.unsigned(16)
	return uint16(n), err //nolint:gosec
}

// ToNat32 converts a numeric value to uint32, failing with errs.ErrOverflow on narrowing loss.
func (v Value) ToNat32() (uint32, error) {
	n, err := v.unsigned(32)
	return uint32(n), err //nolint:gosec
}

// ToNat64 converts a numeric value to uint64, failing with errs.ErrOverflow on narrowing loss.
func (v Value) ToNat64() (uint64, error) {
	return v.unsigned(64)
}

// ToInt converts a numeric value to an arbitrary-precision signed integer.
func (v Value) ToInt() (*big.Int, error) {
	return v.integer(false)
}

// ToInt8 converts a numeric value to int8, failing with errs.ErrOverflow on narrowing loss.
func (v Value) ToInt8() (int8, error) {
	n, err := v.signedN(8)
	return int8(n), err //nolint:gosec
}

// ToInt16 converts a numeric value to int16, failing with errs.ErrOverflow on narrowing loss.
func (v Value) ToInt16() (int16, error) {
	n, err := v.signedN(16)
	return int16(n), err //nolint:gosec
}

// ToInt32 converts a numeric value to int32, failing with errs.ErrOverflow on narrowing loss.
func (v Value) ToInt32() (int32, error) {
	n, err := v.signedN(32)
	return int32(n), err //nolint:gosec
}

// ToInt64 converts a numeric value to int64, failing with errs.ErrOverflow on narrowing loss.
func (v Value) ToInt64() (int64, error) {
	return v.signedN(64)
}

// ToFloat converts a numeric value to float64.
//
// Returns errs.ErrOverflow if an arbitrary-precision integer exceeds the float64 range.
func (v Value) ToFloat() (float64, error) {
	if v.kind == format.KindFloat {
		return v.float(), nil
	}
	n, err := v.integer(false)
	if err != nil {
		return 0, err
	}
	f, _ := new(big.Float).SetInt(n).Float64()
	if math.IsInf(f, 0) {
		return 0, fmt.Errorf("%w: %s exceeds float64", errs.ErrOverflow, n)
	}

	return f, nil
}

// ToBool returns the payload of a Bool value.
func (v Value) ToBool() (bool, error) {
	if v.kind != format.KindBool {
		return false, fmt.Errorf("%w: %s to Bool", errs.ErrNotRepresentable, v.kind)
	}

	return v.boolean(), nil
}

// ToOpaqueID returns the payload of an OpaqueID value.
func (v Value) ToOpaqueID() (OpaqueID, error) {
	if v.kind != format.KindOpaqueID {
		return OpaqueID{}, fmt.Errorf("%w: %s to OpaqueID", errs.ErrNotRepresentable, v.kind)
	}

	return v.opaque(), nil
}

// ToText returns the payload of a Text value.
func (v Value) ToText() (string, error) {
	if v.kind != format.KindText {
		return "", fmt.Errorf("%w: %s to Text", errs.ErrNotRepresentable, v.kind)
	}

	return v.text(), nil
}

// ToArray returns a copy of the elements of an Array value, frozen or thawed.
func (v Value) ToArray() ([]Value, error) {
	if v.kind != format.KindArray {
		return nil, fmt.Errorf("%w: %s to Array", errs.ErrNotRepresentable, v.kind)
	}

	return v.array().Items(), nil
}
