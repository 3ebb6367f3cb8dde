package leaf

import (
	"github.com/gabrielbryk/json-schema-to-zod-sub001/internal/compose"
	"github.com/gabrielbryk/json-schema-to-zod-sub001/jsonschema"
)

// knownFormats are string formats accepted without a constraint.
var knownFormats = map[string]bool{
	"binary": true, "password": true, "regex": true, "hostname": true,
	"idn-hostname": true, "uri-reference": true, "iri-reference": true,
	"uri-template": true, "json-pointer": true, "relative-json-pointer": true,
}

// String translates a "type": "string" schema.
func String(o *jsonschema.Object, ctx Context) *compose.Schema {
	expr := "z.string()"

	if format, ok := o.String("format"); ok && format != "" {
		if check, known := stringFormat(format, message(o, "format")); known {
			expr += check
		} else {
			ctx.UnknownFormat(format)
		}
	}
	if enc, _ := o.String("contentEncoding"); enc == "base64" && !o.Has("format") {
		expr += call("base64", message(o, "contentEncoding"))
	}

	minLen, hasMin := intKeyword(o, "minLength")
	maxLen, hasMax := intKeyword(o, "maxLength")
	switch {
	case hasMin && hasMax && minLen == maxLen:
		expr += call("length", message(o, "minLength"), compose.JS(minLen))
	default:
		if hasMin {
			expr += call("min", message(o, "minLength"), compose.JS(minLen))
		}
		if hasMax {
			expr += call("max", message(o, "maxLength"), compose.JS(maxLen))
		}
	}

	if pattern, ok := o.String("pattern"); ok {
		expr += call("regex", message(o, "pattern"), "new RegExp("+compose.Quote(pattern)+")")
	}
	return compose.Opaque(expr, "string")
}

// stringFormat returns the check for format and whether format is known.
func stringFormat(format, msg string) (string, bool) {
	switch format {
	case "email", "idn-email":
		return call("email", msg), true
	case "uri", "iri":
		return call("url", msg), true
	case "uuid":
		return call("uuid", msg), true
	case "date-time":
		return optionsCall("datetime", msg, "offset: true"), true
	case "date":
		return call("date", msg), true
	case "time":
		return call("time", msg), true
	case "duration":
		return call("duration", msg), true
	case "ipv4":
		return optionsCall("ip", msg, `version: "v4"`), true
	case "ipv6":
		return optionsCall("ip", msg, `version: "v6"`), true
	case "byte", "base64":
		return call("base64", msg), true
	case "cuid":
		return call("cuid", msg), true
	case "cuid2":
		return call("cuid2", msg), true
	case "ulid":
		return call("ulid", msg), true
	case "emoji":
		return call("emoji", msg), true
	}
	return "", knownFormats[format]
}

func intKeyword(o *jsonschema.Object, key string) (int64, bool) {
	v, ok := o.Get(key)
	if !ok {
		return 0, false
	}
	n, ok := jsonschema.ToInt(v)
	return int64(n), ok
}
