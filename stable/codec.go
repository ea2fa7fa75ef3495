package stable

import (
	"bytes"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/arloliu/candy/internal/pool"
)

// Marshal encodes a stable value with MessagePack.
func Marshal(v Value) ([]byte, error) {
	return encode(&v)
}

// Unmarshal decodes a stable value produced by Marshal.
func Unmarshal(data []byte) (Value, error) {
	var v Value
	if err := decode(data, &v); err != nil {
		return Value{}, err
	}

	return v, nil
}

func encode(obj any) ([]byte, error) {
	bb := pool.GetValueBuffer()
	defer pool.PutValueBuffer(bb)

	enc := msgpack.GetEncoder()
	defer msgpack.PutEncoder(enc)

	enc.Reset(bb)
	enc.SetSortMapKeys(true)
	if err := enc.Encode(obj); err != nil {
		return nil, fmt.Errorf("failed to encode %T using MsgPack: %w", obj, err)
	}

	return bb.Clone(), nil
}

func decode(data []byte, obj any) error {
	var r bytes.Reader
	r.Reset(data)

	dec := msgpack.GetDecoder()
	defer msgpack.PutDecoder(dec)

	dec.Reset(&r)
	if err := dec.Decode(obj); err != nil {
		return fmt.Errorf("failed to decode MsgPack into %T: %w", obj, err)
	}

	return nil
}
