package jsonschema

import (
	"fmt"
	"strconv"
	"strings"
)

// EscapeToken escapes a JSON Pointer reference token (RFC 6901).
func EscapeToken(token string) string {
	if !strings.ContainsAny(token, "~/") {
		return token
	}
	token = strings.ReplaceAll(token, "~", "~0")
	return strings.ReplaceAll(token, "/", "~1")
}

// UnescapeToken reverses EscapeToken. ~1 is replaced before ~0 so that
// "~01" decodes to "~1".
func UnescapeToken(token string) string {
	if !strings.Contains(token, "~") {
		return token
	}
	token = strings.ReplaceAll(token, "~1", "/")
	return strings.ReplaceAll(token, "~0", "~")
}

// ParsePointer splits a JSON Pointer into unescaped reference tokens.
// The empty pointer addresses the whole document and yields no tokens.
func ParsePointer(pointer string) ([]string, error) {
	if pointer == "" {
		return nil, nil
	}
	if !strings.HasPrefix(pointer, "/") {
		return nil, fmt.Errorf("jsonschema: invalid JSON pointer %q: must be empty or start with '/'", pointer)
	}
	parts := strings.Split(pointer[1:], "/")
	for i, p := range parts {
		parts[i] = UnescapeToken(p)
	}
	return parts, nil
}

// FormatPointer joins reference tokens into a JSON Pointer.
func FormatPointer(tokens []string) string {
	if len(tokens) == 0 {
		return ""
	}
	var b strings.Builder
	for _, t := range tokens {
		b.WriteByte('/')
		b.WriteString(EscapeToken(t))
	}
	return b.String()
}

// AppendPointer returns pointer extended by the given tokens.
func AppendPointer(pointer string, tokens ...string) string {
	var b strings.Builder
	b.WriteString(pointer)
	for _, t := range tokens {
		b.WriteByte('/')
		b.WriteString(EscapeToken(t))
	}
	return b.String()
}

// Child returns the value addressed by a single reference token.
func Child(node any, token string) (any, bool) {
	switch n := node.(type) {
	case *Object:
		return n.Get(token)
	case []any:
		idx, err := strconv.Atoi(token)
		if err != nil || idx < 0 || idx >= len(n) {
			return nil, false
		}
		// Leading zeros are not valid array indices.
		if len(token) > 1 && token[0] == '0' {
			return nil, false
		}
		return n[idx], true
	default:
		return nil, false
	}
}

// Walk follows tokens from root and returns the addressed value.
func Walk(root any, tokens []string) (any, bool) {
	cur := root
	for _, t := range tokens {
		next, ok := Child(cur, t)
		if !ok {
			return nil, false
		}
		cur = next
	}
	return cur, true
}
