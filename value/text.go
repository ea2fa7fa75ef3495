package value

import (
	"encoding/hex"
	"math/big"
	"strconv"
	"strings"

	"github.com/arloliu/candy/format"
)

// String returns the human-readable rendering of v.
//
// Arbitrary-precision integers are grouped with an underscore every three digits; the
// grouped form is for display only and never appears in JSON. Records render as
// {name:value; ...} with a "var " prefix on mutable fields, arrays as [{v} {v}],
// numeric vectors as [v v] and the empty Optional as null.
func (v Value) String() string {
	var sb strings.Builder
	v.writeString(&sb)

	return sb.String()
}

func (v Value) writeString(sb *strings.Builder) {
	switch v.kind {
	case format.KindEmpty:
	case format.KindNat8, format.KindNat16, format.KindNat32, format.KindNat64:
		sb.WriteString(strconv.FormatUint(v.bits, 10))
	case format.KindInt8, format.KindInt16, format.KindInt32, format.KindInt64:
		sb.WriteString(strconv.FormatInt(v.signed(), 10))
	case format.KindNat, format.KindInt:
		writeGrouped(sb, v.bigInt())
	case format.KindFloat:
		sb.WriteString(formatFloat(v.float()))
	case format.KindText:
		sb.WriteString(v.text())
	case format.KindBool:
		sb.WriteString(strconv.FormatBool(v.boolean()))
	case format.KindBlob:
		sb.WriteString(hex.EncodeToString(v.blob()))
	case format.KindBytes:
		sb.WriteString(hex.EncodeToString(v.bytes().items))
	case format.KindOpaqueID:
		sb.WriteString(v.opaque().String())
	case format.KindRecord:
		writeFields(sb, v.fields())
	case format.KindOptional:
		if inner, ok := v.Unwrap(); ok {
			inner.writeString(sb)
		} else {
			sb.WriteString("null")
		}
	case format.KindArray:
		sb.WriteByte('[')
		for i, item := range v.array().items {
			if i > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteByte('{')
			item.writeString(sb)
			sb.WriteByte('}')
		}
		sb.WriteByte(']')
	case format.KindNats:
		sb.WriteByte('[')
		for i, n := range v.nats().items {
			if i > 0 {
				sb.WriteByte(' ')
			}
			writeGrouped(sb, n)
		}
		sb.WriteByte(']')
	case format.KindFloats:
		sb.WriteByte('[')
		for i, f := range v.floats().items {
			if i > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(formatFloat(f))
		}
		sb.WriteByte(']')
	case format.KindMap:
		sb.WriteByte('[')
		i := 0
		for key, val := range v.mapping().All() {
			if i > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteByte('{')
			key.writeString(sb)
			sb.WriteString("}:{")
			val.writeString(sb)
			sb.WriteByte('}')
			i++
		}
		sb.WriteByte(']')
	case format.KindSet:
		sb.WriteByte('[')
		i := 0
		for member := range v.set().All() {
			if i > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteByte('{')
			member.writeString(sb)
			sb.WriteByte('}')
			i++
		}
		sb.WriteByte(']')
	}
}

func writeFields(sb *strings.Builder, fields []Field) {
	sb.WriteByte('{')
	for i, f := range fields {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(f.Name)
		sb.WriteByte(':')
		if !f.Immutable {
			sb.WriteString("var ")
		}
		f.Value.writeString(sb)
		sb.WriteByte(';')
	}
	sb.WriteByte('}')
}

// writeGrouped writes n in decimal with an underscore every three digits from the right.
func writeGrouped(sb *strings.Builder, n *big.Int) {
	digits := n.String()
	if strings.HasPrefix(digits, "-") {
		sb.WriteByte('-')
		digits = digits[1:]
	}

	lead := len(digits) % 3
	if lead == 0 {
		lead = 3
	}
	sb.WriteString(digits[:lead])
	for i := lead; i < len(digits); i += 3 {
		sb.WriteByte('_')
		sb.WriteString(digits[i : i+3])
	}
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
