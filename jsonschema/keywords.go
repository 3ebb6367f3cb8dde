package jsonschema

import "strconv"

// Keywords whose values are schema maps, single schemas, or schema arrays.
var (
	mapKeywords = []string{
		"$defs", "definitions", "properties", "patternProperties", "dependentSchemas",
	}
	singleKeywords = []string{
		"additionalProperties", "additionalItems", "items", "contains", "not",
		"if", "then", "else", "propertyNames", "unevaluatedItems",
		"unevaluatedProperties", "contentSchema",
	}
	arrayKeywords = []string{
		"allOf", "anyOf", "oneOf", "prefixItems", "items",
	}

	isMap    = toSet(mapKeywords)
	isSingle = toSet(singleKeywords)
	isArray  = toSet(arrayKeywords)
)

// IsSchema reports whether v is a schema node.
func IsSchema(v any) bool {
	switch v.(type) {
	case bool, *Object:
		return true
	default:
		return false
	}
}

// ForEachSubschema calls fn for every direct subschema of o, passing the
// reference tokens that address it relative to o. Keywords are visited in
// document order.
func ForEachSubschema(o *Object, fn func(tokens []string, child Node)) {
	if o == nil {
		return
	}
	for _, key := range o.Keys() {
		val, _ := o.Get(key)
		switch {
		case isMap[key]:
			m, ok := val.(*Object)
			if !ok {
				continue
			}
			for _, name := range m.Keys() {
				child, _ := m.Get(name)
				if IsSchema(child) {
					fn([]string{key, name}, child)
				}
			}
		case isArray[key]:
			if arr, ok := val.([]any); ok {
				for i, child := range arr {
					if IsSchema(child) {
						fn([]string{key, strconv.Itoa(i)}, child)
					}
				}
				continue
			}
			if isSingle[key] && IsSchema(val) {
				fn([]string{key}, val)
			}
		case isSingle[key]:
			if IsSchema(val) {
				fn([]string{key}, val)
			}
		}
	}
}

// Types returns the declared "type" keyword as a list.
func Types(o *Object) []string {
	v, ok := o.Get("type")
	if !ok {
		return nil
	}
	switch t := v.(type) {
	case string:
		return []string{t}
	case []any:
		out := make([]string, 0, len(t))
		for _, e := range t {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

// HasReference reports whether o carries any reference keyword.
func HasReference(o *Object) bool {
	return o.Has("$ref") || o.Has("$dynamicRef") || o.Has("$recursiveRef")
}

// IsObjectShaped reports whether o describes a plain object: its type is
// "object" (or absent with properties declared) and it is not a reference.
func IsObjectShaped(o *Object) bool {
	if o == nil || HasReference(o) {
		return false
	}
	types := Types(o)
	if len(types) == 1 && types[0] == "object" {
		return true
	}
	return len(types) == 0 && o.Has("properties")
}

func toSet(keys []string) map[string]bool {
	m := make(map[string]bool, len(keys))
	for _, k := range keys {
		m[k] = true
	}
	return m
}
