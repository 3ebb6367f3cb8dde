package leaf

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gabrielbryk/json-schema-to-zod-sub001/internal/compose"
	"github.com/gabrielbryk/json-schema-to-zod-sub001/jsonschema"
)

// fakeContext translates subschemas recursively with Translate and records
// unknown formats and visited paths.
type fakeContext struct {
	unknown bool
	formats []string
	paths   []string
}

func (c *fakeContext) Sub(child jsonschema.Node, tokens ...string) *compose.Schema {
	c.paths = append(c.paths, strings.Join(tokens, "/"))
	switch v := child.(type) {
	case bool:
		if v {
			return compose.Fallback(c.unknown)
		}
		return compose.Never()
	case *jsonschema.Object:
		return Translate(v, c)
	}
	return compose.Fallback(c.unknown)
}

func (c *fakeContext) Unknown() bool               { return c.unknown }
func (c *fakeContext) UnknownFormat(format string) { c.formats = append(c.formats, format) }

func translateSrc(t *testing.T, src string) (*compose.Schema, *fakeContext) {
	t.Helper()
	obj, ok := jsonschema.MustParse(src).(*jsonschema.Object)
	if !ok {
		t.Fatalf("not an object schema: %s", src)
	}
	ctx := &fakeContext{}
	return Translate(obj, ctx), ctx
}

func TestTranslate_Scalars(t *testing.T) {
	tests := []struct {
		name     string
		schema   string
		wantExpr string
		wantType string
	}{
		{"string bounds", `{"type": "string", "minLength": 1, "maxLength": 5}`, "z.string().min(1).max(5)", "string"},
		{"string exact length", `{"type": "string", "minLength": 3, "maxLength": 3}`, "z.string().length(3)", "string"},
		{"pattern", `{"type": "string", "pattern": "^a\\d+$"}`, `z.string().regex(new RegExp("^a\\d+$"))`, "string"},
		{"email", `{"type": "string", "format": "email"}`, "z.string().email()", "string"},
		{"date-time", `{"type": "string", "format": "date-time"}`, "z.string().datetime({ offset: true })", "string"},
		{"ipv4", `{"type": "string", "format": "ipv4"}`, `z.string().ip({ version: "v4" })`, "string"},
		{"base64 encoding", `{"type": "string", "contentEncoding": "base64"}`, "z.string().base64()", "string"},
		{"number bounds", `{"type": "number", "minimum": 0, "maximum": 10.5}`, "z.number().gte(0).lte(10.5)", "number"},
		{"draft6 exclusive", `{"type": "number", "exclusiveMinimum": 0, "exclusiveMaximum": 1}`, "z.number().gt(0).lt(1)", "number"},
		{"draft4 exclusive", `{"type": "number", "minimum": 2, "exclusiveMinimum": true, "maximum": 3, "exclusiveMaximum": false}`, "z.number().gt(2).lte(3)", "number"},
		{"integer", `{"type": "integer", "multipleOf": 5}`, "z.number().int().multipleOf(5)", "number"},
		{"int32", `{"type": "integer", "format": "int32"}`, "z.number().int().gte(-2147483648).lte(2147483647)", "number"},
		{"boolean", `{"type": "boolean"}`, "z.boolean()", "boolean"},
		{"null", `{"type": "null"}`, "z.null()", "null"},
		{"nullable string", `{"type": ["string", "null"]}`, "z.string().nullable()", "string | null"},
		{"type union", `{"type": ["string", "integer"]}`, "z.union([z.string(), z.number().int()])", "string | number"},
		{"inferred string", `{"maxLength": 2}`, "z.string().max(2)", "string"},
		{"nothing", `{"title": "x"}`, "z.any()", "any"},
		{"custom message", `{"type": "string", "minLength": 2, "errorMessage": {"minLength": "too short"}}`, `z.string().min(2, "too short")`, "string"},
		{"format message", `{"type": "string", "format": "date-time", "errorMessage": {"format": "bad"}}`, `z.string().datetime({ offset: true, message: "bad" })`, "string"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _ := translateSrc(t, tt.schema)
			assert.Equal(t, tt.wantExpr, got.Expr)
			assert.Equal(t, tt.wantType, got.Type)
		})
	}
}

func TestTranslate_UnknownFormat(t *testing.T) {
	got, ctx := translateSrc(t, `{"type": "string", "format": "x-custom"}`)
	assert.Equal(t, "z.string()", got.Expr)
	assert.Equal(t, []string{"x-custom"}, ctx.formats)

	_, ctx = translateSrc(t, `{"type": "string", "format": "hostname"}`)
	assert.Empty(t, ctx.formats)

	_, ctx = translateSrc(t, `{"type": "number", "format": "percent"}`)
	assert.Equal(t, []string{"percent"}, ctx.formats)
}

func TestTranslate_EnumConst(t *testing.T) {
	tests := []struct {
		name     string
		schema   string
		wantExpr string
		wantType string
	}{
		{"string enum", `{"enum": ["a", "b", "a"]}`, `z.enum(["a", "b"])`, `"a" | "b"`},
		{"single enum", `{"enum": ["only"]}`, `z.literal("only")`, `"only"`},
		{"mixed enum", `{"enum": [1, "a", null]}`, `z.union([z.literal(1), z.literal("a")]).nullable()`, `1 | "a" | null`},
		{"const", `{"const": true}`, "z.literal(true)", "true"},
		{"const null", `{"const": null}`, "z.null()", "null"},
		{"object const", `{"const": {"a": 1}}`, `z.any().refine((value) => JSON.stringify(value) === JSON.stringify({ a: 1 }), { message: "Expected { a: 1 }" })`, "any"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _ := translateSrc(t, tt.schema)
			assert.Equal(t, tt.wantExpr, got.Expr)
			assert.Equal(t, tt.wantType, got.Type)
		})
	}
}

func TestTranslate_Array(t *testing.T) {
	tests := []struct {
		name     string
		schema   string
		wantExpr string
		wantType string
	}{
		{"items", `{"type": "array", "items": {"type": "string"}, "minItems": 1}`, "z.array(z.string()).min(1)", "Array<string>"},
		{"no items", `{"type": "array"}`, "z.array(z.any())", "Array<any>"},
		{"prefixItems closed", `{"type": "array", "prefixItems": [{"type": "string"}, {"type": "number"}], "items": false}`,
			"z.tuple([z.string(), z.number()])", "[string, number]"},
		{"prefixItems open", `{"prefixItems": [{"type": "string"}]}`, "z.tuple([z.string()]).rest(z.any())", "[string, ...any[]]"},
		{"legacy tuple", `{"type": "array", "items": [{"type": "boolean"}], "additionalItems": {"type": "number"}}`,
			"z.tuple([z.boolean()]).rest(z.number())", "[boolean, ...Array<number>]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _ := translateSrc(t, tt.schema)
			assert.Equal(t, tt.wantExpr, got.Expr)
			assert.Equal(t, tt.wantType, got.Type)
		})
	}

	unique, _ := translateSrc(t, `{"type": "array", "uniqueItems": true}`)
	assert.Contains(t, unique.Expr, `new Set(items.map((item) => JSON.stringify(item))).size === items.length`)

	contains, _ := translateSrc(t, `{"type": "array", "contains": {"const": 1}, "maxContains": 2}`)
	assert.Contains(t, contains.Expr, "items.filter((item) => z.literal(1).safeParse(item).success).length; return count >= 1 && count <= 2;")
}

func TestTranslate_Object(t *testing.T) {
	got, ctx := translateSrc(t, `{
		"type": "object",
		"properties": {"id": {"type": "integer"}, "tags": {"type": "array", "items": {"type": "string"}}},
		"required": ["id"],
		"additionalProperties": false
	}`)
	assert.Equal(t, "z.object({ id: z.number().int(), tags: z.array(z.string()).optional() }).strict()", got.Expr)
	assert.Equal(t, "{ id: number; tags?: Array<string> }", got.Type)
	assert.Equal(t, compose.KindObject, got.Kind)
	assert.Equal(t, []string{"properties/id", "properties/tags", "items"}, ctx.paths)

	record, _ := translateSrc(t, `{"type": "object", "additionalProperties": {"type": "number"}}`)
	assert.Equal(t, "z.record(z.string(), z.number())", record.Expr)
	assert.Equal(t, "Record<string, number>", record.Type)

	catchall, _ := translateSrc(t, `{"properties": {"a": {"type": "string"}}, "additionalProperties": {"type": "number"}}`)
	assert.Equal(t, "z.object({ a: z.string().optional() }).catchall(z.number())", catchall.Expr)

	patterns, _ := translateSrc(t, `{"type": "object", "properties": {"a": {}}, "patternProperties": {"^x-": {"type": "string"}}, "additionalProperties": false}`)
	assert.True(t, strings.HasPrefix(patterns.Expr, "z.object({ a: z.any().optional() }).passthrough().superRefine("))
	assert.Contains(t, patterns.Expr, `if (["a"].includes(key)) { continue; }`)
	assert.Contains(t, patterns.Expr, `new RegExp("^x-").test(key)`)
	assert.Contains(t, patterns.Expr, `"Unexpected key " + key`)

	deps, _ := translateSrc(t, `{"type": "object", "dependentRequired": {"card": ["billing"]}, "minProperties": 1}`)
	assert.True(t, strings.HasPrefix(deps.Expr, "z.object({}).passthrough().refine("), deps.Expr)
	assert.Contains(t, deps.Expr, `.refine((value) => Object.keys(value).length >= 1`)
	assert.Contains(t, deps.Expr, `!("card" in value) || ["billing"].every((key) => key in value)`)
}

func TestTranslate_NotAndConditional(t *testing.T) {
	not, _ := translateSrc(t, `{"type": "string", "not": {"const": "x"}}`)
	assert.Equal(t, `z.string().refine((value) => !z.literal("x").safeParse(value).success, { message: "Invalid input: Should NOT be valid against schema" })`, not.Expr)

	cond, _ := translateSrc(t, `{"if": {"properties": {"a": {"const": 1}}}, "then": {"required": ["b"]}}`)
	assert.True(t, strings.HasPrefix(cond.Expr, "z.any().superRefine((value, ctx) => { const result = (z.object({ a: z.literal(1).optional() }).safeParse(value).success ? "))
	assert.Contains(t, cond.Expr, " : z.any()).safeParse(value);")
}

func TestAnnotate(t *testing.T) {
	obj := jsonschema.MustParse(`{"description": "A \"name\"", "default": "x", "readOnly": true, "nullable": true}`).(*jsonschema.Object)
	got := Annotate(compose.Opaque("z.string()", "string"), obj)
	assert.Equal(t, `z.string().nullable().describe("A \"name\"").default("x").readonly()`, got.Expr)
	assert.Equal(t, "string | null", got.Type)

	plain := compose.Opaque("z.string()", "string")
	assert.Same(t, plain, Annotate(plain, nil))
	assert.False(t, HasTypeKeywords(jsonschema.MustParse(`{"description": "x"}`).(*jsonschema.Object)))
	assert.True(t, HasTypeKeywords(jsonschema.MustParse(`{"minimum": 1}`).(*jsonschema.Object)))
}

func TestTranslateMerged(t *testing.T) {
	obj := jsonschema.MustParse(`{"type": "object", "properties": {"a": {"type": "string"}}, "additionalProperties": false}`).(*jsonschema.Object)
	ctx := &fakeContext{}
	props := []compose.Prop{
		{Name: "a", Schema: compose.Opaque("z.string()", "string")},
		{Name: "b", Schema: compose.Opaque("z.number()", "number"), Optional: true},
	}

	got := TranslateMerged(obj, ctx, props, []string{"a"})
	assert.Equal(t, "z.object({ a: z.string(), b: z.number().optional() }).strict()", got.Expr)
	assert.Empty(t, ctx.paths)

	// A name required by a merged branch but declared nowhere is still enforced.
	withMissing := TranslateMerged(obj, ctx, props, []string{"a", "c", "a"})
	assert.Equal(t,
		`z.object({ a: z.string(), b: z.number().optional() }).strict().refine((value) => ["c"].every((key) => key in value), { message: "Missing required properties" })`,
		withMissing.Expr)
}

func TestTranslate_RequiredWithoutProperty(t *testing.T) {
	got, _ := translateSrc(t, `{"type": "object", "properties": {"a": {"type": "string"}}, "required": ["a", "b"]}`)
	assert.Equal(t,
		`z.object({ a: z.string() }).passthrough().refine((value) => ["b"].every((key) => key in value), { message: "Missing required properties" })`,
		got.Expr)

	onlyRequired, _ := translateSrc(t, `{"required": ["id", "name"], "errorMessage": {"required": "id and name are required"}}`)
	assert.Equal(t,
		`z.object({}).passthrough().refine((value) => ["id", "name"].every((key) => key in value), { message: "id and name are required" })`,
		onlyRequired.Expr)

	declared, _ := translateSrc(t, `{"type": "object", "properties": {"a": {"type": "string"}}, "required": ["a"]}`)
	assert.Equal(t, "z.object({ a: z.string() })", declared.Expr)

	catchall, _ := translateSrc(t, `{"properties": {"a": {}}, "required": ["b"], "additionalProperties": {"type": "number"}}`)
	assert.Equal(t,
		`z.object({ a: z.any().optional() }).catchall(z.number()).refine((value) => ["b"].every((key) => key in value), { message: "Missing required properties" })`,
		catchall.Expr)
}
