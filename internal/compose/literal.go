package compose

import (
	"math"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"

	"github.com/gabrielbryk/json-schema-to-zod-sub001/jsonschema"
)

// JS renders a decoded JSON value as a JavaScript literal.
func JS(v any) string {
	switch t := v.(type) {
	case nil:
		return "null"
	case bool:
		if t {
			return "true"
		}
		return "false"
	case int64:
		return strconv.FormatInt(t, 10)
	case int:
		return strconv.Itoa(t)
	case float64:
		if math.IsInf(t, 0) || math.IsNaN(t) {
			return "null"
		}
		return strconv.FormatFloat(t, 'g', -1, 64)
	case string:
		return Quote(t)
	case []any:
		parts := make([]string, len(t))
		for i, e := range t {
			parts[i] = JS(e)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case *jsonschema.Object:
		if t.Len() == 0 {
			return "{}"
		}
		parts := make([]string, 0, t.Len())
		for _, k := range t.Keys() {
			val, _ := t.Get(k)
			parts = append(parts, PropKey(k)+": "+JS(val))
		}
		return "{ " + strings.Join(parts, ", ") + " }"
	default:
		return "null"
	}
}

// Quote renders s as a double-quoted string literal.
func Quote(s string) string {
	b, err := json.MarshalNoEscape(s)
	if err != nil {
		return strconv.Quote(s)
	}
	return string(b)
}

// PropKey renders an object key: bare when it is a plain ASCII
// identifier, quoted otherwise.
func PropKey(name string) string {
	if isPlainIdent(name) {
		return name
	}
	return Quote(name)
}

func isPlainIdent(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '_' || c == '$' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z'):
		case c >= '0' && c <= '9' && i > 0:
		default:
			return false
		}
	}
	return true
}

// canonical strips whitespace outside string literals so that
// expressions differing only in layout compare equal.
func canonical(expr string) string {
	var b strings.Builder
	b.Grow(len(expr))
	var quote byte
	for i := 0; i < len(expr); i++ {
		c := expr[i]
		if quote != 0 {
			b.WriteByte(c)
			switch c {
			case '\\':
				if i+1 < len(expr) {
					i++
					b.WriteByte(expr[i])
				}
			case quote:
				quote = 0
			}
			continue
		}
		switch c {
		case '"', '\'', '`':
			quote = c
			b.WriteByte(c)
		case ' ', '\t', '\n', '\r':
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}
