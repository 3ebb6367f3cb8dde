package leaf

import (
	"strings"

	"github.com/gabrielbryk/json-schema-to-zod-sub001/internal/compose"
	"github.com/gabrielbryk/json-schema-to-zod-sub001/jsonschema"
)

// Object translates a "type": "object" schema.
//
// Declared properties become a z.object shape. additionalProperties false
// makes it strict and a schema makes it a catchall, unless patternProperties
// is present: then undeclared keys are checked by a refinement that tries
// the patterns first. An object with no declared properties and only an
// additionalProperties schema becomes a z.record. Required names that no
// property declares are checked for presence by a refinement.
func Object(o *jsonschema.Object, ctx Context) *compose.Schema {
	return ObjectWith(o, ctx, Properties(o, ctx), RequiredNames(o))
}

// ObjectWith is Object with the declared properties and required names
// supplied by the caller.
func ObjectWith(o *jsonschema.Object, ctx Context, props []compose.Prop, required []string) *compose.Schema {
	additional, hasAdditional := o.Get("additionalProperties")
	patterns, _ := o.Object("patternProperties")

	missing := undeclared(required, props)
	deps := dependentRequired(o)
	inspectsKeys := len(missing) > 0 || len(deps) > 0 ||
		o.Has("propertyNames") || o.Has("minProperties") || o.Has("maxProperties")

	var s *compose.Schema
	switch {
	case patterns != nil && patterns.Len() > 0:
		s = compose.Chain(
			compose.Object(compose.ObjectShape{Props: props, Unknown: compose.UnknownPassthrough}),
			patternCheck(o, ctx, props, patterns, additional, hasAdditional),
		)
	case len(props) == 0 && hasAdditional && additional != true && additional != false && jsonschema.IsSchema(additional):
		v := ctx.Sub(additional, "additionalProperties")
		s = compose.Opaque("z.record(z.string(), "+v.Expr+")", "Record<string, "+v.Type+">")
	default:
		shape := compose.ObjectShape{Props: props}
		switch {
		case additional == false:
			shape.Unknown = compose.UnknownStrict
		case additional == true:
			shape.Unknown = compose.UnknownPassthrough
		case hasAdditional && jsonschema.IsSchema(additional):
			shape.Catchall = ctx.Sub(additional, "additionalProperties")
		case inspectsKeys:
			// Refinements see the parsed value; stripped keys would be gone.
			shape.Unknown = compose.UnknownPassthrough
		}
		s = compose.Object(shape)
	}

	if len(missing) > 0 {
		s = compose.Chain(s, refine(
			"(value) => "+compose.JS(missing)+".every((key) => key in value)",
			message(o, "required"), "Missing required properties"))
	}
	if names, ok := o.Get("propertyNames"); ok && jsonschema.IsSchema(names) {
		k := ctx.Sub(names, "propertyNames")
		s = compose.Chain(s, refine(
			"(value) => Object.keys(value).every((key) => "+k.Expr+".safeParse(key).success)",
			message(o, "propertyNames"), "Invalid property name"))
	}
	if n, ok := intKeyword(o, "minProperties"); ok {
		s = compose.Chain(s, refine("(value) => Object.keys(value).length >= "+compose.JS(n),
			message(o, "minProperties"), "Object has too few properties"))
	}
	if n, ok := intKeyword(o, "maxProperties"); ok {
		s = compose.Chain(s, refine("(value) => Object.keys(value).length <= "+compose.JS(n),
			message(o, "maxProperties"), "Object has too many properties"))
	}
	for _, dep := range deps {
		s = compose.Chain(s, refine(
			"(value) => !("+compose.Quote(dep.key)+" in value) || "+compose.JS(dep.required)+".every((key) => key in value)",
			message(o, "dependentRequired"),
			"Properties required by "+dep.key+" are missing"))
	}
	return s
}

// Properties translates the "properties" of o; a property is optional
// unless "required" names it.
func Properties(o *jsonschema.Object, ctx Context) []compose.Prop {
	properties, ok := o.Object("properties")
	if !ok {
		return nil
	}
	required := Required(o)

	props := make([]compose.Prop, 0, properties.Len())
	for _, name := range properties.Keys() {
		child, _ := properties.Get(name)
		if !jsonschema.IsSchema(child) {
			continue
		}
		props = append(props, compose.Prop{
			Name:     name,
			Schema:   ctx.Sub(child, "properties", name),
			Optional: !required[name],
		})
	}
	return props
}

// Required returns the set named by the "required" keyword.
func Required(o *jsonschema.Object) map[string]bool {
	names := RequiredNames(o)
	out := make(map[string]bool, len(names))
	for _, name := range names {
		out[name] = true
	}
	return out
}

// RequiredNames returns the names in the "required" keyword in order.
func RequiredNames(o *jsonschema.Object) []string {
	arr, _ := o.Array("required")
	out := make([]string, 0, len(arr))
	for _, v := range arr {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// undeclared returns the required names with no property in props, once
// each, in order.
func undeclared(required []string, props []compose.Prop) []any {
	seen := make(map[string]bool, len(props)+len(required))
	for _, p := range props {
		seen[p.Name] = true
	}
	var out []any
	for _, name := range required {
		if seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, name)
	}
	return out
}

type dependency struct {
	key      string
	required []any
}

// dependentRequired reads dependentRequired and the array form of the
// older "dependencies" keyword.
func dependentRequired(o *jsonschema.Object) []dependency {
	var out []dependency
	for _, kw := range []string{"dependentRequired", "dependencies"} {
		m, ok := o.Object(kw)
		if !ok {
			continue
		}
		for _, key := range m.Keys() {
			if arr, ok := m.Array(key); ok && len(arr) > 0 {
				out = append(out, dependency{key: key, required: arr})
			}
		}
	}
	return out
}

func patternCheck(o *jsonschema.Object, ctx Context, props []compose.Prop, patterns *jsonschema.Object, additional any, hasAdditional bool) string {
	declared := make([]any, len(props))
	for i, p := range props {
		declared[i] = p.Name
	}

	var b strings.Builder
	b.WriteString(".superRefine((value, ctx) => { for (const key of Object.keys(value)) { ")
	b.WriteString("if (" + compose.JS(declared) + ".includes(key)) { continue; } ")
	b.WriteString("let matched = false; ")
	for _, pattern := range patterns.Keys() {
		child, _ := patterns.Get(pattern)
		if !jsonschema.IsSchema(child) {
			continue
		}
		p := ctx.Sub(child, "patternProperties", pattern)
		b.WriteString("if (new RegExp(" + compose.Quote(pattern) + ").test(key)) { matched = true; ")
		b.WriteString("if (!" + p.Expr + ".safeParse(value[key]).success) { ")
		b.WriteString(addIssue(message(o, "patternProperties"), `"Invalid value for key " + key`))
		b.WriteString(" } } ")
	}
	switch {
	case hasAdditional && additional == false:
		b.WriteString("if (!matched) { " + addIssue(message(o, "additionalProperties"), `"Unexpected key " + key`) + " } ")
	case hasAdditional && additional != true && jsonschema.IsSchema(additional):
		a := ctx.Sub(additional, "additionalProperties")
		b.WriteString("if (!matched && !" + a.Expr + ".safeParse(value[key]).success) { ")
		b.WriteString(addIssue(message(o, "additionalProperties"), `"Invalid value for key " + key`) + " } ")
	}
	b.WriteString("} })")
	return b.String()
}

// addIssue renders a custom issue on the current key. fallback is a JS
// expression used when msg is empty.
func addIssue(msg, fallback string) string {
	text := fallback
	if msg != "" {
		text = compose.Quote(msg)
	}
	return "ctx.addIssue({ code: z.ZodIssueCode.custom, message: " + text + ", path: [key] });"
}
