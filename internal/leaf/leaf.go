// Package leaf translates individual JSON Schema keywords into Zod
// expressions.
//
// Translators are stateless: everything that depends on the surrounding
// document (subschemas, references, naming) goes back through [Context].
// Composition keywords and references are the caller's job; leaf handles
// type-driven shapes, enum and const, not, if/then/else and annotations.
package leaf

import (
	"github.com/gabrielbryk/json-schema-to-zod-sub001/internal/compose"
	"github.com/gabrielbryk/json-schema-to-zod-sub001/jsonschema"
)

// Context is the view of the running walk a translator may use.
type Context interface {
	// Sub translates child, found at tokens below the current node.
	Sub(child jsonschema.Node, tokens ...string) *compose.Schema
	// Unknown reports whether the accept-anything schema is z.unknown().
	Unknown() bool
	// UnknownFormat reports a format keyword with no translation.
	UnknownFormat(format string)
}

// Translate builds the representation of o from its type-driven keywords,
// enum, const, not and if/then/else. Composition keywords and references
// on o are ignored.
func Translate(o *jsonschema.Object, ctx Context) *compose.Schema {
	return translate(o, ctx, nil, RequiredNames(o))
}

// TranslateMerged is Translate for an object schema whose properties and
// required names were already collected by the caller, e.g. merged from
// allOf branches.
func TranslateMerged(o *jsonschema.Object, ctx Context, props []compose.Prop, required []string) *compose.Schema {
	return translate(o, ctx, props, required)
}

func translate(o *jsonschema.Object, ctx Context, props []compose.Prop, required []string) *compose.Schema {
	var s *compose.Schema
	switch {
	case o.Has("const"):
		v, _ := o.Get("const")
		s = Const(v, ctx)
	case o.Has("enum"):
		values, _ := o.Array("enum")
		s = Enum(values, ctx)
	default:
		s = byType(o, ctx, props, required)
	}

	if not, ok := o.Get("not"); ok && jsonschema.IsSchema(not) {
		s = Not(s, ctx.Sub(not, "not"), message(o, "not"))
	}
	if cond, ok := o.Get("if"); ok && jsonschema.IsSchema(cond) {
		s = Conditional(s, o, ctx)
	}
	return s
}

// HasTypeKeywords reports whether o carries anything Translate would turn
// into a constraint.
func HasTypeKeywords(o *jsonschema.Object) bool {
	if o.Has("type") || o.Has("const") || o.Has("enum") || o.Has("not") || o.Has("if") {
		return true
	}
	return len(inferTypes(o)) > 0
}

func byType(o *jsonschema.Object, ctx Context, props []compose.Prop, required []string) *compose.Schema {
	types := jsonschema.Types(o)
	if len(types) == 0 {
		types = inferTypes(o)
	}
	if len(types) == 0 {
		return compose.Fallback(ctx.Unknown())
	}

	members := make([]*compose.Schema, 0, len(types))
	for _, t := range types {
		switch t {
		case "string":
			members = append(members, String(o, ctx))
		case "number":
			members = append(members, Number(o, ctx, false))
		case "integer":
			members = append(members, Number(o, ctx, true))
		case "boolean":
			members = append(members, compose.Opaque("z.boolean()", "boolean"))
		case "null":
			members = append(members, compose.Null())
		case "array":
			members = append(members, Array(o, ctx))
		case "object":
			if props == nil {
				props = Properties(o, ctx)
			}
			members = append(members, ObjectWith(o, ctx, props, required))
		default:
			members = append(members, compose.Fallback(ctx.Unknown()))
		}
	}
	return compose.Union(members, ctx.Unknown())
}

// inferTypes guesses the type of a schema without "type" from the
// keywords it uses. Only the first matching family is returned.
func inferTypes(o *jsonschema.Object) []string {
	families := []struct {
		typ      string
		keywords []string
	}{
		{"object", []string{"properties", "additionalProperties", "patternProperties", "required", "minProperties", "maxProperties", "propertyNames", "dependentRequired"}},
		{"array", []string{"items", "prefixItems", "additionalItems", "minItems", "maxItems", "uniqueItems", "contains"}},
		{"string", []string{"minLength", "maxLength", "pattern", "contentEncoding"}},
		{"number", []string{"minimum", "maximum", "exclusiveMinimum", "exclusiveMaximum", "multipleOf"}},
	}
	for _, f := range families {
		for _, kw := range f.keywords {
			if o.Has(kw) {
				return []string{f.typ}
			}
		}
	}
	return nil
}

// Annotate applies the keywords that decorate a finished representation:
// OpenAPI nullable, description, default and readOnly.
func Annotate(s *compose.Schema, o *jsonschema.Object) *compose.Schema {
	if o == nil {
		return s
	}
	if nullable, _ := o.Bool("nullable"); nullable {
		s = compose.Nullable(s)
	}
	if desc, ok := o.String("description"); ok && desc != "" {
		s = compose.Chain(s, ".describe("+compose.Quote(desc)+")")
	}
	if def, ok := o.Get("default"); ok {
		s = compose.Chain(s, ".default("+compose.JS(def)+")")
	}
	if ro, _ := o.Bool("readOnly"); ro {
		s = compose.Chain(s, ".readonly()")
	}
	return s
}
