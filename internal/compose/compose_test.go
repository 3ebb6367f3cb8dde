package compose

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gabrielbryk/json-schema-to-zod-sub001/jsonschema"
)

func str() *Schema { return Opaque("z.string()", "string") }
func num() *Schema { return Opaque("z.number()", "number") }

func TestUnion_ReductionLaws(t *testing.T) {
	tests := []struct {
		name     string
		members  []*Schema
		unknown  bool
		wantExpr string
		wantType string
	}{
		{"empty gives fallback", nil, false, "z.any()", "any"},
		{"empty gives unknown fallback", nil, true, "z.unknown()", "unknown"},
		{"single member unwrapped", []*Schema{str()}, false, "z.string()", "string"},
		{"duplicate collapses", []*Schema{str(), str()}, false, "z.string()", "string"},
		{"whitespace-insensitive duplicate", []*Schema{
			Opaque("z.object({ a: z.string() })", "{ a: string }"),
			Opaque("z.object({a:z.string()})", "{ a: string }"),
		}, false, "z.object({ a: z.string() })", "{ a: string }"},
		{"null folds to nullable", []*Schema{str(), Null()}, false, "z.string().nullable()", "string | null"},
		{"null first folds too", []*Schema{Null(), str()}, false, "z.string().nullable()", "string | null"},
		{"only null", []*Schema{Null(), Null()}, false, "z.null()", "null"},
		{"any absorbs", []*Schema{str(), Fallback(false)}, false, "z.any()", "any"},
		{"never dropped", []*Schema{Never(), str()}, false, "z.string()", "string"},
		{"all never", []*Schema{Never()}, false, "z.never()", "never"},
		{"two members", []*Schema{str(), num()}, false, "z.union([z.string(), z.number()])", "string | number"},
		{"two members and null", []*Schema{str(), Null(), num()}, false,
			"z.union([z.string(), z.number()]).nullable()", "string | number | null"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Union(tt.members, tt.unknown)
			assert.Equal(t, tt.wantExpr, got.Expr)
			assert.Equal(t, tt.wantType, got.Type)
		})
	}
}

func TestUnion_Flattens(t *testing.T) {
	inner := Union([]*Schema{str(), num()}, false)
	nullableInner := Nullable(Opaque("z.boolean()", "boolean"))
	got := Union([]*Schema{inner, nullableInner, str()}, false)

	assert.Equal(t, "z.union([z.string(), z.number(), z.boolean()]).nullable()", got.Expr)
	require.Equal(t, KindNullable, got.Kind)
	assert.Len(t, got.Members[0].Members, 3)
}

func TestUnion_LazyIsOpaque(t *testing.T) {
	lazy := Lazy(Union([]*Schema{str(), num()}, false))
	got := Union([]*Schema{lazy, Opaque("z.boolean()", "boolean")}, false)
	assert.Equal(t, "z.union([z.lazy(() => z.union([z.string(), z.number()])), z.boolean()])", got.Expr)
}

func TestExclusive(t *testing.T) {
	got := Exclusive([]*Schema{str(), num()}, false)
	assert.Contains(t, got.Expr, "z.any().superRefine((value, ctx) => {")
	assert.Contains(t, got.Expr, "[z.string(), z.number()].filter((schema) => schema.safeParse(value).success).length")
	assert.Contains(t, got.Expr, "if (matches !== 1)")
	assert.Contains(t, got.Expr, ".pipe(z.union([z.string(), z.number()]))")
	assert.Equal(t, "string | number", got.Type)

	tests := []struct {
		name    string
		members []*Schema
		count   string
		pipe    string
	}{
		{"duplicates are counted twice", []*Schema{str(), str()}, "[z.string(), z.string()]", ".pipe(z.string())"},
		{"accept-anything does not absorb", []*Schema{Fallback(false), str()}, "[z.any(), z.string()]", ".pipe(z.any())"},
		{"null overlap is counted", []*Schema{Nullable(str()), Null()}, "[z.string().nullable(), z.null()]", ".pipe(z.string().nullable())"},
		{"nested unions are not flattened", []*Schema{Union([]*Schema{str(), num()}, false), str()},
			"[z.union([z.string(), z.number()]), z.string()]", ".pipe(z.union([z.string(), z.number()]))"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Exclusive(tt.members, false)
			assert.Contains(t, got.Expr, "const matches = "+tt.count+".filter(")
			assert.True(t, strings.HasSuffix(got.Expr, tt.pipe), got.Expr)
			assert.Len(t, got.Members, len(tt.members))
		})
	}

	single := Exclusive([]*Schema{str()}, false)
	assert.Equal(t, "z.string()", single.Expr)

	// The wrapped union is not flattened into an enclosing one.
	outer := Union([]*Schema{got, Opaque("z.boolean()", "boolean")}, false)
	assert.Len(t, outer.Members, 2)
}

func variant(kind string, extra ...Prop) *Schema {
	props := append([]Prop{{Name: "kind", Schema: Literal(kind)}}, extra...)
	return Object(ObjectShape{Props: props})
}

func TestDiscriminator(t *testing.T) {
	a := variant("a", Prop{Name: "x", Schema: str()})
	b := variant("b", Prop{Name: "y", Schema: num()})

	key, ok := Discriminator([]*Schema{a, b})
	require.True(t, ok)
	assert.Equal(t, "kind", key)

	got := Discriminated(key, []*Schema{a, b})
	assert.Equal(t,
		`z.discriminatedUnion("kind", [z.object({ kind: z.literal("a"), x: z.string() }), z.object({ kind: z.literal("b"), y: z.number() })])`,
		got.Expr)

	tests := []struct {
		name    string
		members []*Schema
	}{
		{"shared value", []*Schema{variant("a"), variant("a")}},
		{"non-object member", []*Schema{variant("a"), str()}},
		{"optional key", []*Schema{
			variant("a"),
			Object(ObjectShape{Props: []Prop{{Name: "kind", Schema: Literal("b"), Optional: true}}}),
		}},
		{"pending reference", []*Schema{variant("a"), Ref("B", nil, false)}},
		{"single member", []*Schema{variant("a")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := Discriminator(tt.members)
			assert.False(t, ok)
		})
	}

	// Completed references are looked through.
	key, ok = Discriminator([]*Schema{Ref("A", a, false), Ref("B", b, false)})
	assert.True(t, ok)
	assert.Equal(t, "kind", key)
}

func TestIntersect(t *testing.T) {
	a, b, c := Opaque("A", "A"), Opaque("B", "B"), Opaque("C", "C")
	d := Opaque("D", "D")

	tests := []struct {
		name     string
		members  []*Schema
		wantExpr string
	}{
		{"empty", nil, "z.any()"},
		{"single", []*Schema{a}, "A"},
		{"any dropped", []*Schema{a, Fallback(false)}, "A"},
		{"never wins", []*Schema{a, Never()}, "z.never()"},
		{"duplicates", []*Schema{a, a, b}, "z.intersection(A, B)"},
		{"three balanced", []*Schema{a, b, c}, "z.intersection(A, z.intersection(B, C))"},
		{"four balanced", []*Schema{a, b, c, d}, "z.intersection(z.intersection(A, B), z.intersection(C, D))"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantExpr, Intersect(tt.members, false).Expr)
		})
	}

	nested := Intersect([]*Schema{Intersect([]*Schema{a, b}, false), c, d}, false)
	assert.Equal(t, "z.intersection(z.intersection(A, B), z.intersection(C, D))", nested.Expr)

	typed := Intersect([]*Schema{Union([]*Schema{str(), num()}, false), Opaque("z.object({})", "{}")}, false)
	assert.Equal(t, "(string | number) & {}", typed.Type)
}

func TestObject(t *testing.T) {
	shape := ObjectShape{Props: []Prop{
		{Name: "id", Schema: str()},
		{Name: "display-name", Schema: str(), Optional: true},
	}}
	got := Object(shape)
	assert.Equal(t, `z.object({ id: z.string(), "display-name": z.string().optional() })`, got.Expr)
	assert.Equal(t, `{ id: string; "display-name"?: string }`, got.Type)
	assert.True(t, IsObjectLike(got))

	shape.Unknown = UnknownStrict
	assert.Equal(t, `z.object({ id: z.string(), "display-name": z.string().optional() }).strict()`, Object(shape).Expr)

	catchall := Object(ObjectShape{Catchall: num()})
	assert.Equal(t, "z.object({}).catchall(z.number())", catchall.Expr)
	assert.Equal(t, "{ [key: string]: number }", catchall.Type)

	passthrough := Object(ObjectShape{Props: shape.Props[:1], Unknown: UnknownPassthrough})
	assert.Equal(t, "{ id: string } & { [key: string]: unknown }", passthrough.Type)

	p, ok := got.Prop("display-name")
	require.True(t, ok)
	assert.True(t, p.Optional)
}

func TestChain(t *testing.T) {
	obj := Object(ObjectShape{Props: []Prop{{Name: "a", Schema: str()}}})
	described := Chain(obj, `.describe("x")`)
	assert.Equal(t, KindObject, described.Kind)
	assert.Len(t, described.Props, 1)

	refined := Chain(obj, ".refine((v) => true)")
	assert.Equal(t, KindOther, refined.Kind)
	assert.False(t, IsObjectLike(refined))

	lit := Chain(Literal("a"), `.describe("x")`)
	assert.Equal(t, KindLiteral, lit.Kind)
}

func TestJS(t *testing.T) {
	obj := jsonschema.ObjectOf("a", int64(1), "b-c", []any{true, nil, "x"})
	tests := []struct {
		name string
		in   any
		want string
	}{
		{"null", nil, "null"},
		{"bool", false, "false"},
		{"int", int64(42), "42"},
		{"float", 1.5, "1.5"},
		{"string", "a\"b", `"a\"b"`},
		{"unicode", "ü<>&", `"ü<>&"`},
		{"object", obj, `{ a: 1, "b-c": [true, null, "x"] }`},
		{"empty object", jsonschema.NewObject(), "{}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, JS(tt.in))
		})
	}
}

func TestCanonical(t *testing.T) {
	assert.Equal(t, `z.object({a:z.literal("x y")})`, canonical("z.object({ a: z.literal(\"x y\") })"))
	assert.Equal(t, `z.string().regex(new RegExp("a b"))`, canonical(`z.string().regex(new RegExp("a b"))`))
}

func TestNullable(t *testing.T) {
	assert.Equal(t, "z.null()", Nullable(Never()).Expr)
	assert.Equal(t, "z.any()", Nullable(Fallback(false)).Expr)
	once := Nullable(str())
	assert.Same(t, once, Nullable(once))

	lazy := Lazy(once)
	assert.Same(t, lazy, Lazy(lazy))
	assert.Equal(t, "z.lazy(() => z.string().nullable())", lazy.Expr)
}
