// Package compose holds the translated form of a schema node and the
// union and intersection normalizer that combines translated members.
//
// A [Schema] pairs a Zod construction expression with a TypeScript type
// descriptor. Every expression is a self-contained sub-expression, so any
// Schema can be embedded in a larger one without escaping. Structural
// metadata (kind, members, object properties, literal value, referenced
// declaration) lets the normalizer reason about members without parsing
// expressions.
package compose

import "strings"

// Kind classifies a Schema for normalization.
type Kind int

const (
	// KindOther is any expression the normalizer treats as opaque.
	KindOther Kind = iota
	// KindAny accepts every value (z.any() or z.unknown()).
	KindAny
	// KindNever rejects every value.
	KindNever
	// KindNull accepts only null.
	KindNull
	// KindNullable is Members[0] or null.
	KindNullable
	// KindLiteral accepts a single value held in Literal.
	KindLiteral
	// KindObject is a z.object expression with known Props.
	KindObject
	// KindUnion is an inclusive union of Members.
	KindUnion
	// KindIntersection is an intersection of Members.
	KindIntersection
	// KindRef names another declaration.
	KindRef
	// KindLazy defers construction of Members[0] until first use.
	KindLazy
)

// Schema is a translated schema node.
type Schema struct {
	// Expr is the Zod construction code.
	Expr string
	// Type is the TypeScript type descriptor.
	Type string
	// Kind classifies the expression.
	Kind Kind
	// Members are the operands of unions, intersections and wrappers.
	Members []*Schema
	// Props are the properties of a KindObject schema.
	Props []Prop
	// Literal is the value of a KindLiteral schema.
	Literal any
	// Ref is the declaration name of a KindRef schema.
	Ref string
	// Target is the completed representation of the referenced
	// declaration, nil while that declaration is still being built.
	Target *Schema
}

// Fallback returns the "accept anything" schema: z.unknown() when unknown
// is set, otherwise z.any().
func Fallback(unknown bool) *Schema {
	if unknown {
		return &Schema{Expr: "z.unknown()", Type: "unknown", Kind: KindAny}
	}
	return &Schema{Expr: "z.any()", Type: "any", Kind: KindAny}
}

// Never returns the schema that rejects every value.
func Never() *Schema {
	return &Schema{Expr: "z.never()", Type: "never", Kind: KindNever}
}

// Null returns the schema that accepts only null.
func Null() *Schema {
	return &Schema{Expr: "z.null()", Type: "null", Kind: KindNull}
}

// Opaque wraps an expression the normalizer does not look into.
func Opaque(expr, typ string) *Schema {
	return &Schema{Expr: expr, Type: typ, Kind: KindOther}
}

// Literal returns z.literal(v) for a string, number or bool, and z.null()
// for nil.
func Literal(v any) *Schema {
	if v == nil {
		return Null()
	}
	lit := JS(v)
	return &Schema{Expr: "z.literal(" + lit + ")", Type: lit, Kind: KindLiteral, Literal: v}
}

// Ref returns a reference to a declaration. When self is set the reference
// points back at the declaration being built, whose name then doubles as
// its type; other references infer their type from the referenced value.
func Ref(name string, target *Schema, self bool) *Schema {
	typ := "z.infer<typeof " + name + ">"
	if self {
		typ = name
	}
	return &Schema{Expr: name, Type: typ, Kind: KindRef, Ref: name, Target: target}
}

// Lazy wraps s so it is constructed on first use. Wrapping twice is a
// no-op.
func Lazy(s *Schema) *Schema {
	if s.Kind == KindLazy {
		return s
	}
	return &Schema{
		Expr:    "z.lazy(() => " + s.Expr + ")",
		Type:    s.Type,
		Kind:    KindLazy,
		Members: []*Schema{s},
	}
}

// Nullable marks s as also accepting null.
func Nullable(s *Schema) *Schema {
	switch s.Kind {
	case KindNull, KindAny, KindNullable:
		return s
	case KindNever:
		return Null()
	}
	return &Schema{
		Expr:    s.Expr + ".nullable()",
		Type:    s.Type + " | null",
		Kind:    KindNullable,
		Members: []*Schema{s},
	}
}

// Optional marks s as accepting undefined. The type descriptor is
// unchanged; optionality is expressed on the owning property.
func Optional(s *Schema) *Schema {
	return &Schema{Expr: s.Expr + ".optional()", Type: s.Type, Kind: KindOther, Members: []*Schema{s}}
}

// Chain appends a method call that keeps the value type, such as
// .describe("...") or .min(1). Objects and literals keep their kind only
// for calls that return the same Zod class.
func Chain(s *Schema, call string) *Schema {
	out := *s
	out.Expr = s.Expr + call
	if !keepsKind(s.Kind, call) {
		out.Kind = KindOther
		out.Members = []*Schema{s}
		out.Props = nil
	}
	return &out
}

func keepsKind(kind Kind, call string) bool {
	switch kind {
	case KindObject:
		return strings.HasPrefix(call, ".describe(") || strings.HasPrefix(call, ".strict()") ||
			strings.HasPrefix(call, ".passthrough()") || strings.HasPrefix(call, ".catchall(")
	case KindLiteral:
		return strings.HasPrefix(call, ".describe(")
	}
	return false
}

// IsObjectLike reports whether s is a z.object expression, directly or
// through a completed, non-deferred reference.
func IsObjectLike(s *Schema) bool {
	switch s.Kind {
	case KindObject:
		return true
	case KindRef:
		return s.Target != nil && IsObjectLike(s.Target)
	}
	return false
}

// ObjectProps returns the properties of an object-like schema.
func ObjectProps(s *Schema) []Prop {
	switch s.Kind {
	case KindObject:
		return s.Props
	case KindRef:
		if s.Target != nil {
			return ObjectProps(s.Target)
		}
	}
	return nil
}
