package value

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/arloliu/candy/format"
)

// JSON returns the canonical JSON rendering of v.
//
// Numbers are plain literals without grouping separators. Text is an escaped JSON
// string and records are objects in field order. Blob, Bytes and OpaqueID render as
// quoted hex, and Bool renders as the quoted string "true" or "false". Empty, the
// empty Optional and non-finite floats render as null. Map and Set have no JSON form
// and render as the empty string.
func (v Value) JSON() string {
	var sb strings.Builder
	v.writeJSON(&sb)

	return sb.String()
}

func (v Value) writeJSON(sb *strings.Builder) {
	switch v.kind {
	case format.KindEmpty:
		sb.WriteString("null")
	case format.KindNat8, format.KindNat16, format.KindNat32, format.KindNat64:
		sb.WriteString(strconv.FormatUint(v.bits, 10))
	case format.KindInt8, format.KindInt16, format.KindInt32, format.KindInt64:
		sb.WriteString(strconv.FormatInt(v.signed(), 10))
	case format.KindNat, format.KindInt:
		sb.WriteString(v.bigInt().String())
	case format.KindFloat:
		writeJSONFloat(sb, v.float())
	case format.KindText:
		writeJSONString(sb, v.text())
	case format.KindBool:
		sb.WriteByte('"')
		sb.WriteString(strconv.FormatBool(v.boolean()))
		sb.WriteByte('"')
	case format.KindBlob:
		writeJSONHex(sb, v.blob())
	case format.KindBytes:
		writeJSONHex(sb, v.bytes().items)
	case format.KindOpaqueID:
		writeJSONHex(sb, []byte(v.opaque().raw))
	case format.KindRecord:
		sb.WriteByte('{')
		for i, f := range v.fields() {
			if i > 0 {
				sb.WriteByte(',')
			}
			writeJSONString(sb, f.Name)
			sb.WriteByte(':')
			f.Value.writeJSON(sb)
		}
		sb.WriteByte('}')
	case format.KindOptional:
		if inner, ok := v.Unwrap(); ok {
			inner.writeJSON(sb)
		} else {
			sb.WriteString("null")
		}
	case format.KindArray:
		sb.WriteByte('[')
		for i, item := range v.array().items {
			if i > 0 {
				sb.WriteByte(',')
			}
			item.writeJSON(sb)
		}
		sb.WriteByte(']')
	case format.KindNats:
		sb.WriteByte('[')
		for i, n := range v.nats().items {
			if i > 0 {
				sb.WriteByte(',')
			}
			sb.WriteString(n.String())
		}
		sb.WriteByte(']')
	case format.KindFloats:
		sb.WriteByte('[')
		for i, f := range v.floats().items {
			if i > 0 {
				sb.WriteByte(',')
			}
			writeJSONFloat(sb, f)
		}
		sb.WriteByte(']')
	}
}

func writeJSONFloat(sb *strings.Builder, f float64) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		sb.WriteString("null")
		return
	}
	sb.WriteString(formatFloat(f))
}

func writeJSONHex(sb *strings.Builder, b []byte) {
	sb.WriteByte('"')
	sb.WriteString(hex.EncodeToString(b))
	sb.WriteByte('"')
}

func writeJSONString(sb *strings.Builder, s string) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		sb.WriteString(`""`)
		return
	}
	sb.Write(bytes.TrimSuffix(buf.Bytes(), []byte("\n")))
}
