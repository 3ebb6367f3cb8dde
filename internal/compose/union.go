package compose

import "strings"

// Union normalizes members into the smallest equivalent inclusive union.
//
// Nested unions are flattened and nullable members are split into their
// inner schema and null. Members are then deduplicated by their
// whitespace-normalized expression. A single accept-anything member absorbs
// the union; never members are dropped. A null member next to anything else
// becomes .nullable() on the rest. No members yields the fallback, one
// member is returned unwrapped.
func Union(members []*Schema, unknown bool) *Schema {
	if len(members) == 0 {
		return Fallback(unknown)
	}

	flat := flattenUnion(members, nil)
	for _, m := range flat {
		if m.Kind == KindAny {
			return m
		}
	}

	var rest []*Schema
	hasNull := false
	for _, m := range dedupe(flat) {
		switch m.Kind {
		case KindNever:
		case KindNull:
			hasNull = true
		default:
			rest = append(rest, m)
		}
	}

	var out *Schema
	switch len(rest) {
	case 0:
		if hasNull {
			return Null()
		}
		return Never()
	case 1:
		out = rest[0]
	default:
		out = &Schema{
			Expr:    "z.union([" + joinExprs(rest) + "])",
			Type:    joinTypes(rest, " | "),
			Kind:    KindUnion,
			Members: rest,
		}
	}
	if hasNull {
		return Nullable(out)
	}
	return out
}

func flattenUnion(members, out []*Schema) []*Schema {
	for _, m := range members {
		switch m.Kind {
		case KindUnion:
			out = flattenUnion(m.Members, out)
		case KindNullable:
			out = flattenUnion(m.Members, out)
			out = append(out, Null())
		default:
			out = append(out, m)
		}
	}
	return out
}

// Exclusive builds a union that accepts a value only when exactly one
// member accepts it. Members are counted as given, so duplicate,
// accept-anything and null members each count; the normalized Union is
// only the pipe target. A single member needs no count.
func Exclusive(members []*Schema, unknown bool) *Schema {
	target := Union(members, unknown)
	if len(members) < 2 {
		return target
	}

	list := "[" + joinExprs(members) + "]"
	return &Schema{
		Expr: "z.any().superRefine((value, ctx) => { " +
			"const matches = " + list + ".filter((schema) => schema.safeParse(value).success).length; " +
			"if (matches !== 1) { ctx.addIssue({ code: z.ZodIssueCode.custom, " +
			"message: \"Expected exactly one matching schema, got \" + matches }); } " +
			"}).pipe(" + target.Expr + ")",
		Type:    target.Type,
		Kind:    KindOther,
		Members: members,
	}
}

// Discriminator returns the property that discriminates members: every
// member is object-like and requires the property with a literal value,
// and no two members share that value.
func Discriminator(members []*Schema) (string, bool) {
	if len(members) < 2 {
		return "", false
	}
	for _, m := range members {
		if !IsObjectLike(m) {
			return "", false
		}
	}

	for _, candidate := range ObjectProps(members[0]) {
		if discriminates(candidate.Name, members) {
			return candidate.Name, true
		}
	}
	return "", false
}

func discriminates(key string, members []*Schema) bool {
	seen := make(map[string]bool, len(members))
	for _, m := range members {
		p, ok := m.Prop(key)
		if !ok || p.Optional || p.Schema.Kind != KindLiteral {
			return false
		}
		switch p.Schema.Literal.(type) {
		case string, bool, int64, float64:
		default:
			return false
		}
		lit := JS(p.Schema.Literal)
		if seen[lit] {
			return false
		}
		seen[lit] = true
	}
	return true
}

// Discriminated builds z.discriminatedUnion keyed on key.
func Discriminated(key string, members []*Schema) *Schema {
	return &Schema{
		Expr:    "z.discriminatedUnion(" + Quote(key) + ", [" + joinExprs(members) + "])",
		Type:    joinTypes(members, " | "),
		Kind:    KindOther,
		Members: members,
	}
}

// Intersect combines members into a balanced tree of z.intersection calls.
// Nested intersections are flattened, duplicates and accept-anything
// members are dropped and a never member makes the result never.
func Intersect(members []*Schema, unknown bool) *Schema {
	var flat []*Schema
	for _, m := range flattenIntersection(members, nil) {
		switch m.Kind {
		case KindAny:
			continue
		case KindNever:
			return Never()
		}
		flat = append(flat, m)
	}
	flat = dedupe(flat)

	switch len(flat) {
	case 0:
		return Fallback(unknown)
	case 1:
		return flat[0]
	}
	out := balanced(flat)
	out.Members = flat
	return out
}

func balanced(members []*Schema) *Schema {
	if len(members) == 1 {
		return members[0]
	}
	mid := len(members) / 2
	left, right := balanced(members[:mid]), balanced(members[mid:])
	return &Schema{
		Expr: "z.intersection(" + left.Expr + ", " + right.Expr + ")",
		Type: parenUnion(left.Type) + " & " + parenUnion(right.Type),
		Kind: KindIntersection,
	}
}

func flattenIntersection(members, out []*Schema) []*Schema {
	for _, m := range members {
		if m.Kind == KindIntersection && len(m.Members) > 0 {
			out = flattenIntersection(m.Members, out)
			continue
		}
		out = append(out, m)
	}
	return out
}

// dedupe keeps the first occurrence of each expression.
func dedupe(members []*Schema) []*Schema {
	seen := make(map[string]bool, len(members))
	out := make([]*Schema, 0, len(members))
	for _, m := range members {
		key := canonical(m.Expr)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, m)
	}
	return out
}

func joinExprs(members []*Schema) string {
	parts := make([]string, len(members))
	for i, m := range members {
		parts[i] = m.Expr
	}
	return strings.Join(parts, ", ")
}

func joinTypes(members []*Schema, sep string) string {
	parts := make([]string, len(members))
	for i, m := range members {
		parts[i] = m.Type
	}
	return strings.Join(parts, sep)
}

// parenUnion parenthesizes a union type so it can be an operand of &.
func parenUnion(typ string) string {
	if strings.Contains(typ, " | ") {
		return "(" + typ + ")"
	}
	return typ
}
