package leaf

import (
	"strings"

	"github.com/gabrielbryk/json-schema-to-zod-sub001/internal/compose"
	"github.com/gabrielbryk/json-schema-to-zod-sub001/jsonschema"
)

// Const translates the const keyword.
func Const(v any, ctx Context) *compose.Schema {
	switch v.(type) {
	case nil, string, bool, int64, float64:
		return compose.Literal(v)
	}
	fb := compose.Fallback(ctx.Unknown())
	lit := compose.JS(v)
	return compose.Opaque(
		fb.Expr+".refine((value) => JSON.stringify(value) === JSON.stringify("+lit+"), { message: "+compose.Quote("Expected "+lit)+" })",
		fb.Type,
	)
}

// Enum translates the enum keyword. All-string enums become z.enum; a
// single value becomes a literal; anything else is a union of literals.
func Enum(values []any, ctx Context) *compose.Schema {
	if len(values) == 0 {
		return compose.Never()
	}
	if len(values) == 1 {
		return Const(values[0], ctx)
	}

	if strs, ok := allStrings(values); ok {
		quoted := make([]string, len(strs))
		for i, s := range strs {
			quoted[i] = compose.Quote(s)
		}
		return compose.Opaque("z.enum(["+strings.Join(quoted, ", ")+"])", strings.Join(quoted, " | "))
	}

	members := make([]*compose.Schema, len(values))
	for i, v := range values {
		members[i] = Const(v, ctx)
	}
	return compose.Union(members, ctx.Unknown())
}

func allStrings(values []any) ([]string, bool) {
	out := make([]string, 0, len(values))
	seen := make(map[string]bool, len(values))
	for _, v := range values {
		s, ok := v.(string)
		if !ok {
			return nil, false
		}
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out, true
}

// Not rejects values accepted by n.
func Not(base, n *compose.Schema, msg string) *compose.Schema {
	return compose.Chain(base, refine(
		"(value) => !"+n.Expr+".safeParse(value).success",
		msg, "Invalid input: Should NOT be valid against schema"))
}

// Conditional applies if/then/else: values accepted by the if schema must
// satisfy then, the rest must satisfy else. A missing branch accepts
// anything.
func Conditional(base *compose.Schema, o *jsonschema.Object, ctx Context) *compose.Schema {
	cond, _ := o.Get("if")
	ifSchema := ctx.Sub(cond, "if")

	branch := func(key string) string {
		if child, ok := o.Get(key); ok && jsonschema.IsSchema(child) {
			return ctx.Sub(child, key).Expr
		}
		return compose.Fallback(ctx.Unknown()).Expr
	}
	thenExpr, elseExpr := branch("then"), branch("else")

	return compose.Chain(base, ".superRefine((value, ctx) => { "+
		"const result = ("+ifSchema.Expr+".safeParse(value).success ? "+thenExpr+" : "+elseExpr+").safeParse(value); "+
		"if (!result.success) { result.error.issues.forEach((issue) => ctx.addIssue(issue)); } })")
}
