package compose

import "strings"

// Prop is one property of an object schema.
type Prop struct {
	Name     string
	Schema   *Schema
	Optional bool
}

// UnknownKeys selects how an object treats properties it does not declare.
type UnknownKeys int

const (
	// UnknownStrip accepts and drops undeclared keys (Zod's default).
	UnknownStrip UnknownKeys = iota
	// UnknownStrict rejects undeclared keys.
	UnknownStrict
	// UnknownPassthrough accepts and keeps undeclared keys.
	UnknownPassthrough
)

// ObjectShape describes a z.object expression.
type ObjectShape struct {
	Props   []Prop
	Unknown UnknownKeys
	// Catchall validates undeclared keys; it overrides Unknown.
	Catchall *Schema
}

// Object builds z.object({ ... }) from shape.
func Object(shape ObjectShape) *Schema {
	var expr, typ strings.Builder
	expr.WriteString("z.object({")
	typ.WriteString("{")
	for i, p := range shape.Props {
		if i > 0 {
			expr.WriteString(",")
			typ.WriteString(";")
		}
		key, typeKey := PropKey(p.Name), PropKey(p.Name)
		value := p.Schema.Expr
		if p.Optional {
			value += ".optional()"
			typeKey += "?"
		}
		expr.WriteString(" " + key + ": " + value)
		typ.WriteString(" " + typeKey + ": " + p.Schema.Type)
	}
	if len(shape.Props) > 0 {
		expr.WriteString(" ")
		typ.WriteString(" ")
	}
	expr.WriteString("})")
	typ.WriteString("}")

	out := &Schema{Kind: KindObject, Props: shape.Props}
	out.Expr = expr.String()
	out.Type = typ.String()

	var rest string
	switch {
	case shape.Catchall != nil:
		out.Expr += ".catchall(" + shape.Catchall.Expr + ")"
		rest = shape.Catchall.Type
	case shape.Unknown == UnknownStrict:
		out.Expr += ".strict()"
	case shape.Unknown == UnknownPassthrough:
		out.Expr += ".passthrough()"
		rest = "unknown"
	}
	if rest != "" {
		index := "{ [key: string]: " + rest + " }"
		if len(shape.Props) == 0 {
			out.Type = index
		} else {
			out.Type += " & " + index
		}
	}
	return out
}

// Prop returns the property called name and whether it exists.
func (s *Schema) Prop(name string) (Prop, bool) {
	for _, p := range ObjectProps(s) {
		if p.Name == name {
			return p, true
		}
	}
	return Prop{}, false
}
