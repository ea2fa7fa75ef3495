package value

import (
	"math"

	"github.com/arloliu/candy/format"
	"github.com/arloliu/candy/internal/hash"
)

// Hash returns a 64-bit structural hash of v consistent with Equal.
//
// Ordered containers fold the hashes of their elements in order. Maps and sets
// combine per-entry hashes with a wrapping sum, so insertion order never changes
// the result. The frozen/thawed tag is not hashed.
func (v Value) Hash() uint64 {
	h := hash.GetDigest()
	defer hash.PutDigest(h)

	v.writeHash(h)

	return h.Sum64()
}

func (v Value) writeHash(h *hash.Digest) {
	_ = h.WriteByte(byte(v.kind))

	switch v.kind {
	case format.KindNat8, format.KindNat16, format.KindNat32, format.KindNat64,
		format.KindInt8, format.KindInt16, format.KindInt32, format.KindInt64, format.KindBool:
		h.WriteUint64(v.bits)
	case format.KindFloat:
		f := v.float()
		if f == 0 {
			f = 0 // -0 == 0
		}
		h.WriteUint64(math.Float64bits(f))
	case format.KindNat, format.KindInt:
		n := v.bigInt()
		h.WriteBool(n.Sign() < 0)
		h.WriteBytes(n.Bytes())
	case format.KindText:
		h.WriteString(v.text())
	case format.KindBlob:
		h.WriteBytes(v.blob())
	case format.KindBytes:
		h.WriteBytes(v.bytes().items)
	case format.KindOpaqueID:
		h.WriteString(v.opaque().raw)
	case format.KindOptional:
		inner, ok := v.Unwrap()
		h.WriteBool(ok)
		if ok {
			inner.writeHash(h)
		}
	case format.KindRecord:
		fields := v.fields()
		h.WriteLen(len(fields))
		for _, f := range fields {
			h.WriteString(f.Name)
			h.WriteBool(f.Immutable)
			f.Value.writeHash(h)
		}
	case format.KindArray:
		items := v.array().items
		h.WriteLen(len(items))
		for _, item := range items {
			item.writeHash(h)
		}
	case format.KindNats:
		items := v.nats().items
		h.WriteLen(len(items))
		for _, n := range items {
			h.WriteBytes(n.Bytes())
		}
	case format.KindFloats:
		items := v.floats().items
		h.WriteLen(len(items))
		for _, f := range items {
			if f == 0 {
				f = 0
			}
			h.WriteUint64(math.Float64bits(f))
		}
	case format.KindMap:
		m := v.mapping()
		var sum uint64
		for key, val := range m.All() {
			sum += key.Hash()*31 + val.Hash()
		}
		h.WriteLen(m.Len())
		h.WriteUint64(sum)
	case format.KindSet:
		s := v.set()
		var sum uint64
		for member := range s.All() {
			sum += member.Hash()
		}
		h.WriteLen(s.Len())
		h.WriteUint64(sum)
	}
}
