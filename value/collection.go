package value

import (
	"fmt"
	"iter"
	"math/big"

	"github.com/arloliu/candy/errs"
	"github.com/arloliu/candy/format"
)

// Collection is an ordered sequence tagged frozen or thawed.
//
// A frozen collection rejects mutation and may be shared freely. A thawed collection
// is owned by a single holder; Clone deep-copies it so two holders never alias the
// same mutable storage.
type Collection[T any] struct {
	mut   format.Mutability
	items []T
}

type (
	// Bytes is a frozen or thawed byte collection.
	Bytes = Collection[byte]
	// Nats is a frozen or thawed vector of arbitrary-precision unsigned integers.
	// Its elements are never modified in place.
	Nats = Collection[*big.Int]
	// Floats is a frozen or thawed vector of float64.
	Floats = Collection[float64]
	// Array is a frozen or thawed heterogeneous array of values.
	Array = Collection[Value]
)

// NewFrozen returns a frozen collection holding a copy of items.
func NewFrozen[T any](items ...T) Collection[T] {
	return Collection[T]{mut: format.Frozen, items: cloneSlice(items)}
}

// NewThawed returns a thawed collection holding a copy of items.
func NewThawed[T any](items ...T) Collection[T] {
	return Collection[T]{mut: format.Thawed, items: cloneSlice(items)}
}

// NewCollection returns a collection with the given mutability holding a copy of items.
func NewCollection[T any](mut format.Mutability, items ...T) Collection[T] {
	return Collection[T]{mut: mut, items: cloneSlice(items)}
}

// Len returns the number of items.
func (c Collection[T]) Len() int {
	return len(c.items)
}

// At returns the item at index i. It panics if i is out of range.
func (c Collection[T]) At(i int) T {
	return c.items[i]
}

// Mutability returns the frozen/thawed tag.
func (c Collection[T]) Mutability() format.Mutability {
	return c.mut
}

// IsFrozen reports whether the collection is frozen.
func (c Collection[T]) IsFrozen() bool {
	return c.mut == format.Frozen
}

// Items returns a copy of the collection items.
func (c Collection[T]) Items() []T {
	return cloneSlice(c.items)
}

// All returns an iterator over index and item pairs.
func (c Collection[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i, item := range c.items {
			if !yield(i, item) {
				return
			}
		}
	}
}

// Append adds items to the end of a thawed collection.
//
// Returns errs.ErrImmutable if the collection is frozen.
func (c *Collection[T]) Append(items ...T) error {
	if c.mut == format.Frozen {
		return errs.ErrImmutable
	}
	c.items = append(c.items, items...)

	return nil
}

// Set replaces the item at index i of a thawed collection.
//
// Returns errs.ErrImmutable if the collection is frozen, or errs.ErrIndexOutOfRange
// if i is not a valid position.
func (c *Collection[T]) Set(i int, item T) error {
	if c.mut == format.Frozen {
		return errs.ErrImmutable
	}
	if i < 0 || i >= len(c.items) {
		return fmt.Errorf("%w: %d not in [0, %d)", errs.ErrIndexOutOfRange, i, len(c.items))
	}
	c.items[i] = item

	return nil
}

// Freeze returns a frozen copy of the collection.
func (c Collection[T]) Freeze() Collection[T] {
	if c.mut == format.Frozen {
		return c
	}

	return Collection[T]{mut: format.Frozen, items: cloneSlice(c.items)}
}

// Thaw returns a thawed copy of the collection owned by the caller.
func (c Collection[T]) Thaw() Collection[T] {
	return Collection[T]{mut: format.Thawed, items: cloneSlice(c.items)}
}

// Clone returns a copy of the collection. Frozen storage is shared, thawed storage is copied.
func (c Collection[T]) Clone() Collection[T] {
	if c.mut == format.Frozen {
		return c
	}

	return Collection[T]{mut: c.mut, items: cloneSlice(c.items)}
}

// FrozenBytes returns a frozen Bytes value holding a copy of b.
func FrozenBytes(b []byte) Value {
	return FromBytes(Collection[byte]{mut: format.Frozen, items: b})
}

// ThawedBytes returns a thawed Bytes value holding a copy of b.
func ThawedBytes(b []byte) Value {
	return FromBytes(Collection[byte]{mut: format.Thawed, items: b})
}

// FromBytes returns a Bytes value. The collection contents are copied.
func FromBytes(c Bytes) Value {
	return Value{kind: format.KindBytes, ref: Collection[byte]{mut: c.mut, items: cloneSlice(c.items)}}
}

// FrozenArray returns a frozen Array value of vs.
func FrozenArray(vs ...Value) Value {
	return FromArray(Collection[Value]{mut: format.Frozen, items: vs})
}

// ThawedArray returns a thawed Array value of vs.
func ThawedArray(vs ...Value) Value {
	return FromArray(Collection[Value]{mut: format.Thawed, items: vs})
}

// FromArray returns an Array value. The collection contents are copied.
func FromArray(c Array) Value {
	return Value{kind: format.KindArray, ref: Collection[Value]{mut: c.mut, items: cloneSlice(c.items)}}
}

// NatsOf returns a Nats value with the given mutability.
func NatsOf(mut format.Mutability, ns ...uint64) Value {
	items := make([]*big.Int, len(ns))
	for i, n := range ns {
		items[i] = new(big.Int).SetUint64(n)
	}

	return Value{kind: format.KindNats, ref: Collection[*big.Int]{mut: mut, items: items}}
}

// NatsFromBig returns a Nats value holding copies of ns.
//
// Returns errs.ErrOverflow if any element is negative and errs.ErrNotRepresentable
// if any element is nil.
func NatsFromBig(mut format.Mutability, ns ...*big.Int) (Value, error) {
	items := make([]*big.Int, len(ns))
	for i, n := range ns {
		if n == nil {
			return Value{}, fmt.Errorf("%w: nil Nats element %d", errs.ErrNotRepresentable, i)
		}
		if n.Sign() < 0 {
			return Value{}, fmt.Errorf("%w: negative Nats element %d: %s", errs.ErrOverflow, i, n)
		}
		items[i] = new(big.Int).Set(n)
	}

	return Value{kind: format.KindNats, ref: Collection[*big.Int]{mut: mut, items: items}}, nil
}

// FromNats returns a Nats value from c, see NatsFromBig.
func FromNats(c Nats) (Value, error) {
	return NatsFromBig(c.mut, c.items...)
}

// FloatsOf returns a Floats value with the given mutability.
func FloatsOf(mut format.Mutability, fs ...float64) Value {
	return Value{kind: format.KindFloats, ref: Collection[float64]{mut: mut, items: cloneSlice(fs)}}
}

// FromFloats returns a Floats value. The collection contents are copied.
func FromFloats(c Floats) Value {
	return FloatsOf(c.mut, c.items...)
}

// AsBytes returns the Bytes collection of a Bytes value.
// Thawed contents are copied so the caller owns the result.
func (v Value) AsBytes() (Bytes, bool) {
	if v.kind != format.KindBytes {
		return Bytes{}, false
	}

	return v.bytes().Clone(), true
}

// AsNats returns the Nats collection of a Nats value.
// Thawed contents are copied so the caller owns the result.
func (v Value) AsNats() (Nats, bool) {
	if v.kind != format.KindNats {
		return Nats{}, false
	}

	return v.nats().Clone(), true
}

// AsFloats returns the Floats collection of a Floats value.
// Thawed contents are copied so the caller owns the result.
func (v Value) AsFloats() (Floats, bool) {
	if v.kind != format.KindFloats {
		return Floats{}, false
	}

	return v.floats().Clone(), true
}

// AsArray returns the Array collection of an Array value.
// Thawed contents are copied so the caller owns the result.
func (v Value) AsArray() (Array, bool) {
	if v.kind != format.KindArray {
		return Array{}, false
	}

	return v.array().Clone(), true
}

// Mutability returns the frozen/thawed tag of a collection value.
// It returns false for kinds that carry no tag.
func (v Value) Mutability() (format.Mutability, bool) {
	switch v.kind {
	case format.KindBytes:
		return v.bytes().mut, true
	case format.KindNats:
		return v.nats().mut, true
	case format.KindFloats:
		return v.floats().mut, true
	case format.KindArray:
		return v.array().mut, true
	default:
		return 0, false
	}
}
