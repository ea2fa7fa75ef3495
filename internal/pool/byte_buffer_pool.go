package pool

import (
	"io"
	"sync"
)

// Default sizes of pooled buffers.
const (
	ValueBufferDefaultSize  = 256             // 256B, enough for most scalar blobs and JSON fragments
	ValueBufferMaxThreshold = 1024 * 64       // 64KiB
	FlatBufferDefaultSize   = 1024 * 16       // 16KiB
	FlatBufferMaxThreshold  = 1024 * 1024 * 4 // 4MiB
)

type ByteBuffer struct {
	// B is the underlying byte slice.
	B []byte
}

// NewByteBuffer creates a new ByteBuffer with the specified default size.
func NewByteBuffer(defaultSize int) *ByteBuffer {
	return &ByteBuffer{
		B: make([]byte, 0, defaultSize),
	}
}

// Bytes returns the underlying byte slice.
func (bb *ByteBuffer) Bytes() []byte {
	return bb.B
}

// Clone returns a copy of the buffer contents that is safe to keep after Put.
func (bb *ByteBuffer) Clone() []byte {
	out := make([]byte, len(bb.B))
	copy(out, bb.B)

	return out
}

// String returns the buffer contents as a string.
func (bb *ByteBuffer) String() string {
	return string(bb.B)
}

// Reset resets the buffer to be empty, but retains the allocated memory for reuse.
func (bb *ByteBuffer) Reset() {
	bb.B = bb.B[:0]
}

// Len returns the length of the buffer.
func (bb *ByteBuffer) Len() int {
	return len(bb.B)
}

// Cap returns the capacity of the buffer.
func (bb *ByteBuffer) Cap() int {
	return cap(bb.B)
}

// Truncate discards all but the first n bytes.
// Panics if n is negative or greater than the length.
func (bb *ByteBuffer) Truncate(n int) {
	if n < 0 || n > len(bb.B) {
		panic("Truncate: invalid length")
	}
	bb.B = bb.B[:n]
}

// Grow grows the buffer to ensure it can hold requiredBytes more bytes without reallocating.
// If the buffer has sufficient capacity, Grow does nothing.
//
// Small buffers grow by ValueBufferDefaultSize, larger ones by 25% of their capacity.
func (bb *ByteBuffer) Grow(requiredBytes int) {
	available := cap(bb.B) - len(bb.B)
	if available >= requiredBytes {
		return
	}

	growBy := ValueBufferDefaultSize
	if cap(bb.B) > 4*ValueBufferDefaultSize {
		growBy = cap(bb.B) / 4
	}

	if growBy < requiredBytes {
		growBy = requiredBytes
	}

	newBuf := make([]byte, len(bb.B), len(bb.B)+growBy)
	copy(newBuf, bb.B)
	bb.B = newBuf
}

// Write appends the contents of data to the buffer, growing it as needed.
func (bb *ByteBuffer) Write(data []byte) (int, error) {
	bb.B = append(bb.B, data...)
	return len(data), nil
}

// WriteByte appends a single byte.
func (bb *ByteBuffer) WriteByte(c byte) error {
	bb.B = append(bb.B, c)
	return nil
}

// WriteString appends the string s.
func (bb *ByteBuffer) WriteString(s string) (int, error) {
	bb.B = append(bb.B, s...)
	return len(s), nil
}

// WriteTo writes the contents of the buffer to w.
func (bb *ByteBuffer) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(bb.B)
	return int64(n), err
}

// ByteBufferPool is a pool of ByteBuffers to minimize allocations.
//
// Buffers whose capacity grew beyond maxThreshold are dropped on Put instead of
// being retained by the pool.
type ByteBufferPool struct {
	pool         sync.Pool
	maxThreshold int
}

// NewByteBufferPool creates a new ByteBufferPool with buffers of the specified default size.
func NewByteBufferPool(defaultSize int, maxThreshold int) *ByteBufferPool {
	return &ByteBufferPool{
		pool: sync.Pool{
			New: func() any {
				return NewByteBuffer(defaultSize)
			},
		},
		maxThreshold: maxThreshold,
	}
}

// Get retrieves a ByteBuffer from the pool.
func (bbp *ByteBufferPool) Get() *ByteBuffer {
	bb, _ := bbp.pool.Get().(*ByteBuffer)
	return bb
}

// Put returns a ByteBuffer to the pool for reuse.
func (bbp *ByteBufferPool) Put(bb *ByteBuffer) {
	if bb == nil {
		return
	}

	if bbp.maxThreshold > 0 && cap(bb.B) > bbp.maxThreshold {
		return
	}

	bb.Reset()
	bbp.pool.Put(bb)
}

var (
	valueDefaultPool = NewByteBufferPool(ValueBufferDefaultSize, ValueBufferMaxThreshold)
	flatDefaultPool  = NewByteBufferPool(FlatBufferDefaultSize, FlatBufferMaxThreshold)
)

// GetValueBuffer retrieves a ByteBuffer sized for rendering a single value.
func GetValueBuffer() *ByteBuffer {
	return valueDefaultPool.Get()
}

// PutValueBuffer returns a ByteBuffer to the value pool.
func PutValueBuffer(bb *ByteBuffer) {
	valueDefaultPool.Put(bb)
}

// GetFlatBuffer retrieves a ByteBuffer sized for flattening a chunk array.
func GetFlatBuffer() *ByteBuffer {
	return flatDefaultPool.Get()
}

// PutFlatBuffer returns a ByteBuffer to the flat pool.
func PutFlatBuffer(bb *ByteBuffer) {
	flatDefaultPool.Put(bb)
}
