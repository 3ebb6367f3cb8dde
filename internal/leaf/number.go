package leaf

import (
	"github.com/gabrielbryk/json-schema-to-zod-sub001/internal/compose"
	"github.com/gabrielbryk/json-schema-to-zod-sub001/jsonschema"
)

// knownNumberFormats are numeric formats accepted without a constraint.
var knownNumberFormats = map[string]bool{
	"int64": true, "float": true, "double": true, "decimal": true,
}

// Number translates a "type": "number" or "integer" schema. Both the
// draft-4 boolean and the draft-6 numeric forms of exclusive bounds are
// understood.
func Number(o *jsonschema.Object, ctx Context, integer bool) *compose.Schema {
	expr := "z.number()"
	if integer {
		expr += call("int", message(o, "type"))
	}

	if format, ok := o.String("format"); ok && format != "" {
		switch {
		case format == "int32":
			if !integer {
				expr += call("int", message(o, "format"))
			}
			expr += call("gte", "", "-2147483648") + call("lte", "", "2147483647")
		case format == "uint32":
			expr += call("gte", "", "0") + call("lte", "", "4294967295")
		case knownNumberFormats[format]:
		default:
			ctx.UnknownFormat(format)
		}
	}

	expr += lowerBound(o) + upperBound(o)

	if step, ok := o.Get("multipleOf"); ok {
		if _, isNum := jsonschema.ToFloat(step); isNum {
			expr += call("multipleOf", message(o, "multipleOf"), compose.JS(step))
		}
	}
	return compose.Opaque(expr, "number")
}

func lowerBound(o *jsonschema.Object) string {
	excl, hasExcl := o.Get("exclusiveMinimum")
	bound, hasMin := o.Get("minimum")
	if b, isBool := excl.(bool); hasExcl && isBool {
		if b && hasMin {
			return call("gt", message(o, "exclusiveMinimum"), compose.JS(bound))
		}
		hasExcl = false
	}
	switch {
	case hasExcl:
		return call("gt", message(o, "exclusiveMinimum"), compose.JS(excl))
	case hasMin:
		return call("gte", message(o, "minimum"), compose.JS(bound))
	}
	return ""
}

func upperBound(o *jsonschema.Object) string {
	excl, hasExcl := o.Get("exclusiveMaximum")
	bound, hasMax := o.Get("maximum")
	if b, isBool := excl.(bool); hasExcl && isBool {
		if b && hasMax {
			return call("lt", message(o, "exclusiveMaximum"), compose.JS(bound))
		}
		hasExcl = false
	}
	switch {
	case hasExcl:
		return call("lt", message(o, "exclusiveMaximum"), compose.JS(excl))
	case hasMax:
		return call("lte", message(o, "maximum"), compose.JS(bound))
	}
	return ""
}
