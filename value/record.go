package value

import "github.com/arloliu/candy/format"

// Field is a named member of a Record.
type Field struct {
	// Name is the field name, rendered as-is by String and JSON-escaped by JSON.
	Name string
	// Value is the field value.
	Value Value
	// Immutable marks a field that the owner must not reassign.
	Immutable bool
}

// Record returns a Record value of fields. The field order is preserved.
func Record(fields ...Field) Value {
	return Value{kind: format.KindRecord, ref: cloneSlice(fields)}
}

// AsRecord returns a copy of the fields of a Record value.
func (v Value) AsRecord() ([]Field, bool) {
	if v.kind != format.KindRecord {
		return nil, false
	}

	return cloneSlice(v.fields()), true
}

// Field returns the first field with the given name of a Record value.
func (v Value) Field(name string) (Field, bool) {
	if v.kind != format.KindRecord {
		return Field{}, false
	}
	for _, f := range v.fields() {
		if f.Name == name {
			return f, true
		}
	}

	return Field{}, false
}
