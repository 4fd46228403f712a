package jsonval

import "slices"

// Value is a sealed interface representing a decoded JSON value.
// Only Null, Bool, Number, String, Array, and Object implement it.
// Predicates dispatch on these tags rather than ad hoc reflection.
type Value interface {
	jsonValue() // Sealed - only these types implement it
	Kind() Kind
}

// Kind identifies the runtime tag of a Value.
type Kind string

const (
	KindNull   Kind = "null"
	KindBool   Kind = "bool"
	KindNumber Kind = "number"
	KindString Kind = "string"
	KindArray  Kind = "array"
	KindObject Kind = "object"
)

// Null represents a JSON null value.
// An explicit type keeps every Value satisfying the sealed interface.
type Null struct{}

func (Null) jsonValue() {}

// Kind implements Value.
func (Null) Kind() Kind { return KindNull }

// Bool represents a JSON boolean.
type Bool bool

func (Bool) jsonValue() {}

// Kind implements Value.
func (Bool) Kind() Kind { return KindBool }

// Number represents a JSON number. Observations come from arbitrary
// cloud APIs, so float64 is used the same way encoding/json does.
type Number float64

func (Number) jsonValue() {}

// Kind implements Value.
func (Number) Kind() Kind { return KindNumber }

// String represents a JSON string.
type String string

func (String) jsonValue() {}

// Kind implements Value.
func (String) Kind() Kind { return KindString }

// Array represents an ordered list of values.
type Array []Value

func (Array) jsonValue() {}

// Kind implements Value.
func (Array) Kind() Kind { return KindArray }

// Object represents a string-keyed map of values.
// Insertion order is irrelevant for matching; use SortedKeys for
// deterministic iteration when rendering.
type Object map[string]Value

func (Object) jsonValue() {}

// Kind implements Value.
func (Object) Kind() Kind { return KindObject }

// SortedKeys returns the object's keys in lexicographic order.
func (o Object) SortedKeys() []string {
	keys := make([]string, 0, len(o))
	for k := range o {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Pair is a key-value pair for typed Object construction in tests.
type Pair struct {
	Key   string
	Value Value
}

// ObjectOf builds an Object from typed key-value pairs.
func ObjectOf(pairs ...Pair) Object {
	obj := make(Object, len(pairs))
	for _, p := range pairs {
		obj[p.Key] = p.Value
	}
	return obj
}

// P is a shorthand for Pair for ergonomic construction.
func P(key string, value Value) Pair {
	return Pair{Key: key, Value: value}
}

// KindOf returns the kind tag for a possibly-nil Value.
// A nil interface is reported as null.
func KindOf(v Value) Kind {
	if v == nil {
		return KindNull
	}
	return v.Kind()
}
