// Package jsonschema provides the in-memory model for JSON Schema documents
// consumed by the generator.
//
// A schema node is either a bool (true accepts anything, false accepts
// nothing) or an *Object. Object keeps keywords in document order so that
// generated output follows the order in which properties were written.
// Keyword values are one of nil, bool, int64, float64, string, []any, or
// *Object.
//
// Nodes are treated as immutable once decoded. Callers that build schemas in
// code should finish mutating an Object before handing it to the generator.
package jsonschema

// Node is a decoded schema value: a bool or an *Object.
type Node = any

// Object is an insertion-ordered JSON object.
type Object struct {
	keys   []string
	values map[string]any
}

// NewObject returns an empty Object.
func NewObject() *Object {
	return &Object{values: make(map[string]any)}
}

// ObjectOf builds an Object from alternating key/value pairs.
// It panics on an odd argument count or a non-string key, and is intended
// for tests and code-built schemas.
func ObjectOf(pairs ...any) *Object {
	if len(pairs)%2 != 0 {
		panic("jsonschema: ObjectOf requires key/value pairs")
	}
	o := NewObject()
	for i := 0; i < len(pairs); i += 2 {
		key, ok := pairs[i].(string)
		if !ok {
			panic("jsonschema: ObjectOf key must be a string")
		}
		o.Set(key, pairs[i+1])
	}
	return o
}

// Set stores value under key. A new key is appended to the key order;
// an existing key keeps its position.
func (o *Object) Set(key string, value any) {
	if o.values == nil {
		o.values = make(map[string]any)
	}
	if _, exists := o.values[key]; !exists {
		o.keys = append(o.keys, key)
	}
	o.values[key] = value
}

// Get returns the value stored under key.
func (o *Object) Get(key string) (any, bool) {
	if o == nil {
		return nil, false
	}
	v, ok := o.values[key]
	return v, ok
}

// Has reports whether key is present.
func (o *Object) Has(key string) bool {
	_, ok := o.Get(key)
	return ok
}

// Len returns the number of keys.
func (o *Object) Len() int {
	if o == nil {
		return 0
	}
	return len(o.keys)
}

// Keys returns the keys in document order.
func (o *Object) Keys() []string {
	if o == nil {
		return nil
	}
	out := make([]string, len(o.keys))
	copy(out, o.keys)
	return out
}

// String returns the string value of key.
func (o *Object) String(key string) (string, bool) {
	v, ok := o.Get(key)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// Bool returns the bool value of key.
func (o *Object) Bool(key string) (bool, bool) {
	v, ok := o.Get(key)
	if !ok {
		return false, false
	}
	b, ok := v.(bool)
	return b, ok
}

// Object returns the object value of key.
func (o *Object) Object(key string) (*Object, bool) {
	v, ok := o.Get(key)
	if !ok {
		return nil, false
	}
	obj, ok := v.(*Object)
	return obj, ok
}

// Array returns the array value of key.
func (o *Object) Array(key string) ([]any, bool) {
	v, ok := o.Get(key)
	if !ok {
		return nil, false
	}
	arr, ok := v.([]any)
	return arr, ok
}

// Number returns the numeric value of key as a float64.
func (o *Object) Number(key string) (float64, bool) {
	v, ok := o.Get(key)
	if !ok {
		return 0, false
	}
	return ToFloat(v)
}

// Without returns a shallow copy of o with the named keys removed.
func (o *Object) Without(keys ...string) *Object {
	drop := make(map[string]bool, len(keys))
	for _, k := range keys {
		drop[k] = true
	}
	out := NewObject()
	for _, k := range o.Keys() {
		if drop[k] {
			continue
		}
		out.Set(k, o.values[k])
	}
	return out
}

// ToFloat converts a decoded numeric value to float64.
func ToFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int64:
		return float64(n), true
	case int:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}

// ToInt converts a decoded numeric value to an int when it has no
// fractional part.
func ToInt(v any) (int, bool) {
	switch n := v.(type) {
	case int64:
		return int(n), true
	case int:
		return n, true
	case float64:
		if n == float64(int(n)) {
			return int(n), true
		}
	}
	return 0, false
}
