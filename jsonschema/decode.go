package jsonschema

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"

	json "github.com/goccy/go-json"
	"go.yaml.in/yaml/v4"
)

// Format identifies the syntax a document was decoded from.
type Format string

const (
	// FormatJSON marks JSON input.
	FormatJSON Format = "json"
	// FormatYAML marks YAML input.
	FormatYAML Format = "yaml"
)

// Parse decodes a JSON or YAML document into a schema node.
// JSON input is recognized by its first significant byte.
func Parse(data []byte) (Node, error) {
	node, _, err := ParseWithFormat(data)
	return node, err
}

// ParseWithFormat is Parse that also reports the detected syntax.
func ParseWithFormat(data []byte) (Node, Format, error) {
	trimmed := bytes.TrimLeft(bytes.TrimPrefix(data, []byte("\xef\xbb\xbf")), " \t\r\n")
	if len(trimmed) == 0 {
		return nil, "", errors.New("jsonschema: empty document")
	}
	var (
		v      any
		err    error
		format Format
	)
	switch trimmed[0] {
	case '{', '[':
		format = FormatJSON
		v, err = decodeJSON(trimmed)
	default:
		format = FormatYAML
		v, err = decodeYAML(trimmed)
	}
	if err != nil {
		return nil, format, err
	}
	switch v.(type) {
	case bool, *Object:
		return v, format, nil
	default:
		return nil, format, fmt.Errorf("jsonschema: document root must be an object or boolean, got %T", v)
	}
}

// MustParse is Parse that panics on error. Intended for tests and fixed
// schemas embedded in code.
func MustParse(data string) Node {
	n, err := Parse([]byte(data))
	if err != nil {
		panic(err)
	}
	return n
}

func decodeJSON(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	v, err := decodeJSONValue(dec)
	if err != nil {
		return nil, fmt.Errorf("jsonschema: decoding JSON: %w", err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("jsonschema: decoding JSON: trailing data after document")
	}
	return v, nil
}

func decodeJSONValue(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			obj := NewObject()
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return nil, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return nil, fmt.Errorf("unexpected object key %v", keyTok)
				}
				val, err := decodeJSONValue(dec)
				if err != nil {
					return nil, err
				}
				obj.Set(key, val)
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return obj, nil
		case '[':
			arr := make([]any, 0)
			for dec.More() {
				val, err := decodeJSONValue(dec)
				if err != nil {
					return nil, err
				}
				arr = append(arr, val)
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return arr, nil
		}
		return nil, fmt.Errorf("unexpected delimiter %q", rune(t))
	case json.Number:
		return convertNumber(string(t))
	case float64:
		return t, nil
	case string, bool, nil:
		return t, nil
	default:
		return nil, fmt.Errorf("unexpected token %T", tok)
	}
}

func convertNumber(s string) (any, error) {
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid number %q: %w", s, err)
	}
	return f, nil
}

func decodeYAML(data []byte) (any, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("jsonschema: decoding YAML: %w", err)
	}
	v, err := fromYAMLNode(&root)
	if err != nil {
		return nil, fmt.Errorf("jsonschema: decoding YAML: %w", err)
	}
	return v, nil
}

// fromYAMLNode converts a yaml.Node tree, keeping mapping key order.
func fromYAMLNode(node *yaml.Node) (any, error) {
	switch node.Kind {
	case yaml.DocumentNode:
		if len(node.Content) == 0 {
			return nil, errors.New("empty document")
		}
		return fromYAMLNode(node.Content[0])
	case yaml.MappingNode:
		obj := NewObject()
		for i := 0; i+1 < len(node.Content); i += 2 {
			keyNode := node.Content[i]
			if keyNode.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("line %d: non-scalar mapping key", keyNode.Line)
			}
			val, err := fromYAMLNode(node.Content[i+1])
			if err != nil {
				return nil, err
			}
			obj.Set(keyNode.Value, val)
		}
		return obj, nil
	case yaml.SequenceNode:
		arr := make([]any, 0, len(node.Content))
		for _, child := range node.Content {
			val, err := fromYAMLNode(child)
			if err != nil {
				return nil, err
			}
			arr = append(arr, val)
		}
		return arr, nil
	case yaml.AliasNode:
		if node.Alias == nil {
			return nil, fmt.Errorf("line %d: dangling alias", node.Line)
		}
		return fromYAMLNode(node.Alias)
	case yaml.ScalarNode:
		var v any
		if err := node.Decode(&v); err != nil {
			return nil, fmt.Errorf("line %d: %w", node.Line, err)
		}
		return normalizeScalar(v), nil
	default:
		return nil, fmt.Errorf("line %d: unsupported YAML node kind %v", node.Line, node.Kind)
	}
}

func normalizeScalar(v any) any {
	switch n := v.(type) {
	case int:
		return int64(n)
	case int32:
		return int64(n)
	case uint64:
		if n <= 1<<63-1 {
			return int64(n)
		}
		return float64(n)
	case float32:
		return float64(n)
	default:
		return v
	}
}

// FromValue converts generic decoded values (map[string]any, []any and
// scalars, as produced by encoding/json) into the schema model. Map keys
// have no inherent order and are sorted.
func FromValue(v any) Node {
	switch t := v.(type) {
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		obj := NewObject()
		for _, k := range keys {
			obj.Set(k, FromValue(t[k]))
		}
		return obj
	case *Object:
		return t
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = FromValue(e)
		}
		return out
	case json.Number:
		n, err := convertNumber(string(t))
		if err != nil {
			return string(t)
		}
		return n
	default:
		return normalizeScalar(v)
	}
}
