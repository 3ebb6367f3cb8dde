package leaf

import (
	"strconv"
	"strings"

	"github.com/gabrielbryk/json-schema-to-zod-sub001/internal/compose"
	"github.com/gabrielbryk/json-schema-to-zod-sub001/jsonschema"
)

// Array translates a "type": "array" schema. prefixItems (or an items
// array in older drafts) produces a tuple whose rest comes from items (or
// additionalItems).
func Array(o *jsonschema.Object, ctx Context) *compose.Schema {
	var s *compose.Schema
	if prefix, restKey, ok := tupleKeywords(o); ok {
		s = tuple(o, ctx, prefix, restKey)
	} else {
		item := compose.Fallback(ctx.Unknown())
		if items, ok := o.Get("items"); ok && jsonschema.IsSchema(items) {
			item = ctx.Sub(items, "items")
		}
		expr := "z.array(" + item.Expr + ")" + itemBounds(o)
		s = compose.Opaque(expr, "Array<"+item.Type+">")
	}

	if unique, _ := o.Bool("uniqueItems"); unique {
		s = compose.Chain(s, refine(
			"(items) => new Set(items.map((item) => JSON.stringify(item))).size === items.length",
			message(o, "uniqueItems"), "Array items must be unique"))
	}
	if contains, ok := o.Get("contains"); ok && jsonschema.IsSchema(contains) {
		s = compose.Chain(s, containsCheck(o, ctx.Sub(contains, "contains")))
	}
	return s
}

// tupleKeywords finds the tuple form used by o: the keyword holding the
// positional schemas and the one holding the rest schema.
func tupleKeywords(o *jsonschema.Object) (string, string, bool) {
	if arr, ok := o.Array("prefixItems"); ok && len(arr) > 0 {
		return "prefixItems", "items", true
	}
	if arr, ok := o.Array("items"); ok && len(arr) > 0 {
		return "items", "additionalItems", true
	}
	return "", "", false
}

func tuple(o *jsonschema.Object, ctx Context, prefixKey, restKey string) *compose.Schema {
	prefix, _ := o.Array(prefixKey)
	exprs := make([]string, 0, len(prefix))
	types := make([]string, 0, len(prefix)+1)
	for i, child := range prefix {
		if !jsonschema.IsSchema(child) {
			continue
		}
		el := ctx.Sub(child, prefixKey, strconv.Itoa(i))
		exprs = append(exprs, el.Expr)
		types = append(types, el.Type)
	}

	expr := "z.tuple([" + strings.Join(exprs, ", ") + "])"
	rest, hasRest := o.Get(restKey)
	switch {
	case !hasRest || rest == true:
		fb := compose.Fallback(ctx.Unknown())
		expr += ".rest(" + fb.Expr + ")"
		types = append(types, "..."+fb.Type+"[]")
	case rest == false:
	case jsonschema.IsSchema(rest):
		r := ctx.Sub(rest, restKey)
		expr += ".rest(" + r.Expr + ")"
		types = append(types, "...Array<"+r.Type+">")
	}
	return compose.Opaque(expr, "["+strings.Join(types, ", ")+"]")
}

func itemBounds(o *jsonschema.Object) string {
	minItems, hasMin := intKeyword(o, "minItems")
	maxItems, hasMax := intKeyword(o, "maxItems")
	if hasMin && hasMax && minItems == maxItems {
		return call("length", message(o, "minItems"), compose.JS(minItems))
	}
	var out string
	if hasMin {
		out += call("min", message(o, "minItems"), compose.JS(minItems))
	}
	if hasMax {
		out += call("max", message(o, "maxItems"), compose.JS(maxItems))
	}
	return out
}

// containsCheck counts the items accepted by c against minContains
// (default 1) and maxContains.
func containsCheck(o *jsonschema.Object, c *compose.Schema) string {
	lo, hasLo := intKeyword(o, "minContains")
	if !hasLo {
		lo = 1
	}
	cond := "count >= " + compose.JS(lo)
	if hi, ok := intKeyword(o, "maxContains"); ok {
		cond += " && count <= " + compose.JS(hi)
	}
	fn := "(items) => { const count = items.filter((item) => " + c.Expr +
		".safeParse(item).success).length; return " + cond + "; }"
	return refine(fn, message(o, "contains"), "Array does not contain the required items")
}
