package value

import (
	"iter"

	"github.com/arloliu/candy/format"
)

// MapEntry is a key/value pair of a Map.
type MapEntry struct {
	Key   Value
	Value Value
}

// Map is an immutable associative collection keyed by structural value equality.
//
// Entries keep the position of their first insertion; inserting an existing key
// replaces its value.
type Map struct {
	entries []MapEntry
	index   map[uint64][]int
}

// NewMap builds a Map from entries. Later entries with an equal key win.
func NewMap(entries ...MapEntry) *Map {
	m := &Map{index: make(map[uint64][]int, len(entries))}
	for _, e := range entries {
		m.put(e.Key, e.Value)
	}

	return m
}

func (m *Map) put(key, val Value) {
	h := key.Hash()
	for _, i := range m.index[h] {
		if m.entries[i].Key.Equal(key) {
			m.entries[i].Value = val
			return
		}
	}
	m.index[h] = append(m.index[h], len(m.entries))
	m.entries = append(m.entries, MapEntry{Key: key, Value: val})
}

func (m *Map) find(key Value) int {
	if m == nil {
		return -1
	}
	for _, i := range m.index[key.Hash()] {
		if m.entries[i].Key.Equal(key) {
			return i
		}
	}

	return -1
}

// Len returns the number of entries.
func (m *Map) Len() int {
	if m == nil {
		return 0
	}

	return len(m.entries)
}

// Get returns the value stored under key.
func (m *Map) Get(key Value) (Value, bool) {
	i := m.find(key)
	if i < 0 {
		return Value{}, false
	}

	return m.entries[i].Value, true
}

// Has reports whether key is present.
func (m *Map) Has(key Value) bool {
	return m.find(key) >= 0
}

// All returns an iterator over entries in insertion order.
func (m *Map) All() iter.Seq2[Value, Value] {
	return func(yield func(Value, Value) bool) {
		if m == nil {
			return
		}
		for _, e := range m.entries {
			if !yield(e.Key, e.Value) {
				return
			}
		}
	}
}

// Entries returns a copy of the entries in insertion order.
func (m *Map) Entries() []MapEntry {
	if m == nil {
		return nil
	}

	return cloneSlice(m.entries)
}

// With returns a new Map with key set to val.
func (m *Map) With(key, val Value) *Map {
	out := NewMap(m.Entries()...)
	out.put(key, val)

	return out
}

// Without returns a new Map without key.
func (m *Map) Without(key Value) *Map {
	i := m.find(key)
	if i < 0 {
		return NewMap(m.Entries()...)
	}
	entries := m.Entries()

	return NewMap(append(entries[:i], entries[i+1:]...)...)
}

// Set is an immutable collection of distinct values in first-insertion order.
type Set struct {
	m *Map
}

// NewSet builds a Set from vs, dropping duplicates.
func NewSet(vs ...Value) *Set {
	s := &Set{m: NewMap()}
	for _, v := range vs {
		s.m.put(v, Value{})
	}

	return s
}

// Len returns the number of members.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}

	return s.m.Len()
}

// Has reports whether v is a member.
func (s *Set) Has(v Value) bool {
	if s == nil {
		return false
	}

	return s.m.Has(v)
}

// All returns an iterator over members in insertion order.
func (s *Set) All() iter.Seq[Value] {
	return func(yield func(Value) bool) {
		if s == nil {
			return
		}
		for k := range s.m.All() {
			if !yield(k) {
				return
			}
		}
	}
}

// Values returns the members in insertion order.
func (s *Set) Values() []Value {
	if s == nil {
		return nil
	}
	out := make([]Value, 0, s.m.Len())
	for _, e := range s.m.entries {
		out = append(out, e.Key)
	}

	return out
}

// With returns a new Set that also contains v.
func (s *Set) With(v Value) *Set {
	return NewSet(append(s.Values(), v)...)
}

// Without returns a new Set without v.
func (s *Set) Without(v Value) *Set {
	if s == nil {
		return NewSet()
	}

	return &Set{m: s.m.Without(v)}
}

// MapOf returns a Map value built from entries.
func MapOf(entries ...MapEntry) Value {
	return Value{kind: format.KindMap, ref: NewMap(entries...)}
}

// FromMap returns a Map value of m. A nil m yields an empty map.
func FromMap(m *Map) Value {
	if m == nil {
		m = NewMap()
	}

	return Value{kind: format.KindMap, ref: m}
}

// SetOf returns a Set value of vs.
func SetOf(vs ...Value) Value {
	return Value{kind: format.KindSet, ref: NewSet(vs...)}
}

// FromSet returns a Set value of s. A nil s yields an empty set.
func FromSet(s *Set) Value {
	if s == nil {
		s = NewSet()
	}

	return Value{kind: format.KindSet, ref: s}
}

// AsMap returns the Map of a Map value.
func (v Value) AsMap() (*Map, bool) {
	if v.kind != format.KindMap {
		return nil, false
	}

	return v.mapping(), true
}

// AsSet returns the Set of a Set value.
func (v Value) AsSet() (*Set, bool) {
	if v.kind != format.KindSet {
		return nil, false
	}

	return v.set(), true
}

func (v Value) mapping() *Map {
	m, _ := v.ref.(*Map)
	if m == nil {
		return NewMap()
	}

	return m
}

func (v Value) set() *Set {
	s, _ := v.ref.(*Set)
	if s == nil {
		return NewSet()
	}

	return s
}
