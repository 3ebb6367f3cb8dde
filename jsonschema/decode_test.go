package jsonschema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_JSONPreservesKeyOrder(t *testing.T) {
	node, format, err := ParseWithFormat([]byte(`{"type":"object","properties":{"zeta":{"type":"string"},"alpha":{"type":"integer","minimum":3}}}`))
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, format)

	obj, ok := node.(*Object)
	require.True(t, ok)
	props, ok := obj.Object("properties")
	require.True(t, ok)
	assert.Equal(t, []string{"zeta", "alpha"}, props.Keys())

	alpha, ok := props.Object("alpha")
	require.True(t, ok)
	min, ok := alpha.Get("minimum")
	require.True(t, ok)
	assert.Equal(t, int64(3), min)
}

func TestParse_YAML(t *testing.T) {
	node, format, err := ParseWithFormat([]byte(`
title: Pet
type: object
required: [name]
properties:
  name:
    type: string
  weight:
    type: number
    maximum: 1.5
`))
	require.NoError(t, err)
	assert.Equal(t, FormatYAML, format)

	obj := node.(*Object)
	assert.Equal(t, []string{"title", "type", "required", "properties"}, obj.Keys())
	req, ok := obj.Array("required")
	require.True(t, ok)
	assert.Equal(t, []any{"name"}, req)

	weight, _ := obj.Object("properties")
	w, _ := weight.Object("weight")
	max, ok := w.Number("maximum")
	require.True(t, ok)
	assert.InDelta(t, 1.5, max, 1e-9)
}

func TestParse_BooleanRoot(t *testing.T) {
	node, err := Parse([]byte("true"))
	require.NoError(t, err)
	assert.Equal(t, true, node)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", "   "},
		{"scalar root", `"hello"`},
		{"trailing data", `{"a":1} {"b":2}`},
		{"broken json", `{"a":`},
		{"array root", `[1,2]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.input))
			assert.Error(t, err)
		})
	}
}

func TestFromValue_SortsKeys(t *testing.T) {
	node := FromValue(map[string]any{
		"type":       "object",
		"properties": map[string]any{"b": map[string]any{}, "a": true},
	})
	obj := node.(*Object)
	assert.Equal(t, []string{"properties", "type"}, obj.Keys())
	props, _ := obj.Object("properties")
	assert.Equal(t, []string{"a", "b"}, props.Keys())
}

func TestObject_SetKeepsPosition(t *testing.T) {
	o := ObjectOf("a", 1, "b", 2)
	o.Set("a", 3)
	assert.Equal(t, []string{"a", "b"}, o.Keys())
	v, _ := o.Get("a")
	assert.Equal(t, 3, v)

	trimmed := o.Without("a")
	assert.Equal(t, []string{"b"}, trimmed.Keys())
	assert.Equal(t, 2, o.Len())
}
