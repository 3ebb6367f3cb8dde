// Package options provides shared utilities for option validation.
package options

import (
	"fmt"
	"strings"

	"github.com/gabrielbryk/json-schema-to-zod-sub001/zoderrors"
)

// Source is one way of supplying the input document.
type Source struct {
	// Option is the option name that sets this source, e.g. "WithBytes".
	Option string
	// Set reports whether the option was given.
	Set bool
}

// ValidateSingleInputSource ensures exactly one input source is specified.
// The returned error is a *zoderrors.ConfigError naming the input options.
func ValidateSingleInputSource(pkg string, sources ...Source) error {
	var names, set []string
	for _, s := range sources {
		names = append(names, s.Option)
		if s.Set {
			set = append(set, s.Option)
		}
	}

	switch len(set) {
	case 1:
		return nil
	case 0:
		return &zoderrors.ConfigError{
			Option:  "input",
			Message: fmt.Sprintf("%s: must specify an input source (use %s)", pkg, joinOr(names)),
		}
	default:
		return &zoderrors.ConfigError{
			Option:  "input",
			Value:   strings.Join(set, ", "),
			Message: fmt.Sprintf("%s: must specify exactly one input source", pkg),
		}
	}
}

func joinOr(names []string) string {
	switch len(names) {
	case 0:
		return ""
	case 1:
		return names[0]
	}
	return strings.Join(names[:len(names)-1], ", ") + " or " + names[len(names)-1]
}
