package leaf

import (
	"strings"

	"github.com/gabrielbryk/json-schema-to-zod-sub001/internal/compose"
	"github.com/gabrielbryk/json-schema-to-zod-sub001/jsonschema"
)

// message returns the custom error text for keyword from the errorMessage
// extension. A string errorMessage applies to every keyword.
func message(o *jsonschema.Object, keyword string) string {
	v, ok := o.Get("errorMessage")
	if !ok {
		return ""
	}
	switch m := v.(type) {
	case string:
		return m
	case *jsonschema.Object:
		s, _ := m.String(keyword)
		return s
	}
	return ""
}

// call renders .method(args...) with msg appended as the last argument.
func call(method, msg string, args ...string) string {
	if msg != "" {
		args = append(args, compose.Quote(msg))
	}
	return "." + method + "(" + strings.Join(args, ", ") + ")"
}

// optionsCall renders .method({ opts... }) with msg as the message option.
func optionsCall(method, msg string, opts ...string) string {
	if msg != "" {
		opts = append(opts, "message: "+compose.Quote(msg))
	}
	if len(opts) == 0 {
		return "." + method + "()"
	}
	return "." + method + "({ " + strings.Join(opts, ", ") + " })"
}

// refine renders .refine(fn, { message }) using fallback when msg is empty.
func refine(fn, msg, fallback string) string {
	if msg == "" {
		msg = fallback
	}
	return ".refine(" + fn + ", { message: " + compose.Quote(msg) + " })"
}
