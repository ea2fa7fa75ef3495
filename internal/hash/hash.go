// Package hash wraps xxHash64 for structural value hashing and payload checksums.
package hash

import (
	"encoding/binary"
	"sync"

	"github.com/cespare/xxhash/v2"
)

// Sum64 computes the xxHash64 of data. It is used as the record checksum.
func Sum64(data []byte) uint64 {
	return xxhash.Sum64(data)
}

// Sum64String computes the xxHash64 of the given string.
func Sum64String(data string) uint64 {
	return xxhash.Sum64String(data)
}

// Digest accumulates a hash from typed writes.
//
// Every variable-length write is length-prefixed so that adjacent writes can never
// be confused with each other (e.g. "ab"+"c" and "a"+"bc" hash differently).
//
// Note: a Digest is NOT safe for concurrent use.
type Digest struct {
	d       *xxhash.Digest
	scratch [binary.MaxVarintLen64]byte
}

var digestPool = sync.Pool{
	New: func() any {
		return &Digest{d: xxhash.New()}
	},
}

// GetDigest retrieves a reset Digest from the pool.
// The caller must return it with PutDigest once Sum64 has been read.
func GetDigest() *Digest {
	h, _ := digestPool.Get().(*Digest)
	h.d.Reset()

	return h
}

// PutDigest returns a Digest to the pool.
func PutDigest(h *Digest) {
	if h == nil {
		return
	}
	digestPool.Put(h)
}

// WriteByte writes a single byte, typically a kind tag.
func (h *Digest) WriteByte(b byte) error {
	h.scratch[0] = b
	_, _ = h.d.Write(h.scratch[:1])

	return nil
}

// WriteUint64 writes v as 8 little-endian bytes.
func (h *Digest) WriteUint64(v uint64) {
	binary.LittleEndian.PutUint64(h.scratch[:8], v)
	_, _ = h.d.Write(h.scratch[:8])
}

// WriteLen writes a collection length as a uvarint.
func (h *Digest) WriteLen(n int) {
	m := binary.PutUvarint(h.scratch[:], uint64(n)) //nolint:gosec
	_, _ = h.d.Write(h.scratch[:m])
}

// WriteBytes writes a length-prefixed byte string.
func (h *Digest) WriteBytes(b []byte) {
	h.WriteLen(len(b))
	_, _ = h.d.Write(b)
}

// WriteString writes a length-prefixed string.
func (h *Digest) WriteString(s string) {
	h.WriteLen(len(s))
	_, _ = h.d.WriteString(s)
}

// WriteBool writes a boolean as a single byte.
func (h *Digest) WriteBool(b bool) {
	if b {
		_ = h.WriteByte(1)
		return
	}
	_ = h.WriteByte(0)
}

// Sum64 returns the current hash.
func (h *Digest) Sum64() uint64 {
	return h.d.Sum64()
}
