// Package candy provides a dynamically typed value model with canonical binary,
// JSON and display forms, workspace paging, and a persistent stable form.
//
// A Value is a tagged union over scalars (natural and signed integers of fixed or
// arbitrary width, floats, booleans, text, blobs, opaque identifiers), optionals,
// and composites (byte, natural and float collections, arrays, records, maps and
// sets). Collections carry a frozen or thawed tag.
//
// # Basic Usage
//
// Building values and rendering them:
//
//	v, _ := candy.From([]any{uint(1_000_000), "Hello", true})
//	fmt.Println(v.String()) // [{1_000_000} {Hello} {true}]
//	fmt.Println(v.JSON())   // [1000000,"Hello","true"]
//
// Persisting values across restarts:
//
//	s, err := candy.Open("candy.db")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer s.Close()
//
//	_ = s.Put("greeting", value.Text("Hello, world!"))
//	v, _ := s.Get("greeting")
//
// Paging a workspace for transfer:
//
//	ws := workspace.Workspace{{value.Nat(16)}, {value.Text("Hello")}}
//	for page := range ws.Pages(1 << 20) {
//	    send(page)
//	}
//
// # Package Structure
//
// This package provides convenient top-level wrappers. For fine-grained control,
// use the value, stable, workspace and store packages directly.
package candy

import (
	"github.com/arloliu/candy/stable"
	"github.com/arloliu/candy/store"
	"github.com/arloliu/candy/value"
	"github.com/arloliu/candy/workspace"
)

// Value is an immutable dynamically typed value.
type Value = value.Value

// Workspace is a two-level grid of values addressed by zone and chunk.
type Workspace = workspace.Workspace

// From converts a Go value into a Value.
//
// Supported inputs are nil, the integer and float types, bool, string, []byte,
// *big.Int, value.OpaqueID, []any and Value itself.
//
// Returns errs.ErrUnsupported for any other type.
func From(x any) (Value, error) {
	return value.From(x)
}

// Stabilize converts v into its stable mirror.
//
// Returns errs.ErrUnmirroredKind if v holds a kind with no stable form.
func Stabilize(v Value) (stable.Value, error) {
	return stable.Stabilize(v)
}

// Destabilize converts a stable mirror back into a Value.
func Destabilize(s stable.Value) (Value, error) {
	return stable.Destabilize(s)
}

// Marshal encodes v into its persisted byte form.
//
// The result is the MessagePack encoding of the stable mirror of v and decodes
// back to a value equal to v with the same frozen/thawed tags.
//
// Returns errs.ErrUnmirroredKind if v holds a kind with no stable form.
func Marshal(v Value) ([]byte, error) {
	sv, err := stable.Stabilize(v)
	if err != nil {
		return nil, err
	}

	return stable.Marshal(sv)
}

// Unmarshal decodes bytes produced by Marshal.
func Unmarshal(data []byte) (Value, error) {
	sv, err := stable.Unmarshal(data)
	if err != nil {
		return Value{}, err
	}

	return stable.Destabilize(sv)
}

// Open opens or creates a persistent store at path.
//
// Example:
//
//	s, err := candy.Open("candy.db",
//	    store.WithCompression(format.CompressionZstd),
//	    store.WithLogger(logger),
//	)
func Open(path string, opts ...store.Option) (*store.Store, error) {
	return store.Open(path, opts...)
}
