package generator

import (
	"strconv"

	"github.com/gabrielbryk/json-schema-to-zod-sub001/internal/compose"
	"github.com/gabrielbryk/json-schema-to-zod-sub001/internal/leaf"
	"github.com/gabrielbryk/json-schema-to-zod-sub001/jsonschema"
)

func hasComposition(o *jsonschema.Object) bool {
	return o.Has("allOf") || o.Has("anyOf") || o.Has("oneOf")
}

// body translates everything on o except its reference keyword: type
// keywords through the leaf translators, then allOf, anyOf and oneOf,
// intersected together.
func (r *resolution) body(o *jsonschema.Object, w *walkContext) *compose.Schema {
	ctx := leafContext{r: r, w: w}
	var parts []*compose.Schema

	allOf, _ := o.Array("allOf")
	var (
		props    []compose.Prop
		required []string
		branches = allOfBranches(allOf)
	)
	if objectTyped(o) {
		props, required, branches = r.mergeProperties(o, allOf, w)
	}

	if leaf.HasTypeKeywords(o) {
		if props != nil {
			parts = append(parts, leaf.TranslateMerged(o, ctx, props, required))
		} else {
			parts = append(parts, leaf.Translate(o, ctx))
		}
	}
	if len(branches) > 0 {
		members := make([]*compose.Schema, 0, len(branches))
		for _, i := range branches {
			members = append(members, r.sub(allOf[i], w, "allOf", strconv.Itoa(i)))
		}
		parts = append(parts, compose.Intersect(members, r.gen.UnknownFallback))
	}
	if anyOf, ok := o.Array("anyOf"); ok {
		parts = append(parts, r.union("anyOf", anyOf, w, false))
	}
	if oneOf, ok := o.Array("oneOf"); ok {
		parts = append(parts, r.union("oneOf", oneOf, w, r.gen.StrictOneOf))
	}
	return compose.Intersect(parts, r.gen.UnknownFallback)
}

// union translates the members of anyOf or oneOf. Members discriminated by
// a literal property become z.discriminatedUnion; otherwise strict selects
// the exactly-one wrapper. In a cyclic declaration a union over deferred
// references is itself deferred, once.
func (r *resolution) union(keyword string, members []any, w *walkContext, strict bool) *compose.Schema {
	cyclic := r.analysis.Cyclic(w.decl)
	mw := *w
	mw.deferred = w.deferred || cyclic

	before := r.lazyRefs
	schemas := make([]*compose.Schema, 0, len(members))
	for i, m := range members {
		if !jsonschema.IsSchema(m) {
			continue
		}
		schemas = append(schemas, r.sub(m, &mw, keyword, strconv.Itoa(i)))
	}

	var s *compose.Schema
	if key, ok := compose.Discriminator(schemas); ok {
		s = compose.Discriminated(key, schemas)
	} else if strict {
		s = compose.Exclusive(schemas, r.gen.UnknownFallback)
	} else {
		s = compose.Union(schemas, r.gen.UnknownFallback)
	}

	if cyclic && !w.deferred && r.lazyRefs > before && isUnion(s) {
		s = compose.Lazy(s)
	}
	return s
}

func isUnion(s *compose.Schema) bool {
	switch {
	case s.Kind == compose.KindNullable:
		return isUnion(s.Members[0])
	case s.Kind == compose.KindUnion:
		return true
	}
	return s.Kind == compose.KindOther && len(s.Members) > 1
}

// objectTyped reports whether o describes an object that allOf property
// branches can merge into.
func objectTyped(o *jsonschema.Object) bool {
	types := jsonschema.Types(o)
	if len(types) == 1 {
		return types[0] == "object"
	}
	return len(types) == 0 && o.Has("properties")
}

// propertyOnly reports whether an allOf branch adds nothing but object
// properties.
func propertyOnly(branch any) bool {
	o, ok := branch.(*jsonschema.Object)
	if !ok || !o.Has("properties") {
		return false
	}
	for _, key := range o.Keys() {
		switch key {
		case "properties", "required", "title", "description", "$comment":
		case "type":
			if t := jsonschema.Types(o); len(t) != 1 || t[0] != "object" {
				return false
			}
		default:
			return false
		}
	}
	return true
}

func allOfBranches(allOf []any) []int {
	out := make([]int, 0, len(allOf))
	for i, b := range allOf {
		if jsonschema.IsSchema(b) {
			out = append(out, i)
		}
	}
	return out
}

// mergeProperties collects the properties of o and of its property-only
// allOf branches into one list. A property declared more than once has
// its schemas intersected and is required if any source requires it.
// Required names from every source are returned in order, including names
// no property declares. The remaining branch indices are returned for
// intersection.
func (r *resolution) mergeProperties(o *jsonschema.Object, allOf []any, w *walkContext) ([]compose.Prop, []string, []int) {
	var merged, rest []int
	for _, i := range allOfBranches(allOf) {
		if propertyOnly(allOf[i]) {
			merged = append(merged, i)
		} else {
			rest = append(rest, i)
		}
	}
	if len(merged) == 0 {
		return nil, nil, rest
	}

	ctx := leafContext{r: r, w: w}
	props := leaf.Properties(o, ctx)
	required := leaf.RequiredNames(o)
	index := make(map[string]int, len(props))
	for i, p := range props {
		index[p.Name] = i
	}

	for _, i := range merged {
		branch := allOf[i].(*jsonschema.Object)
		required = append(required, leaf.RequiredNames(branch)...)
		properties, _ := branch.Object("properties")
		for _, name := range properties.Keys() {
			child, _ := properties.Get(name)
			if !jsonschema.IsSchema(child) {
				continue
			}
			s := r.sub(child, w, "allOf", strconv.Itoa(i), "properties", name)
			if at, ok := index[name]; ok {
				props[at].Schema = compose.Intersect([]*compose.Schema{props[at].Schema, s}, r.gen.UnknownFallback)
				continue
			}
			index[name] = len(props)
			props = append(props, compose.Prop{Name: name, Schema: s})
		}
	}

	requiredSet := make(map[string]bool, len(required))
	for _, name := range required {
		requiredSet[name] = true
	}
	for i := range props {
		props[i].Optional = !requiredSet[props[i].Name]
	}
	if props == nil {
		props = []compose.Prop{}
	}
	return props, required, rest
}
