// Package issues provides the issue type reported by the generator.
package issues

import (
	"fmt"

	"github.com/gabrielbryk/json-schema-to-zod-sub001/internal/severity"
)

// Issue represents a single finding made while generating a module.
type Issue struct {
	// Pointer is the canonical pointer of the schema the issue concerns
	// (e.g., "#/$defs/Pet/properties/tag").
	Pointer string
	// Message is a human-readable description of the issue
	Message string
	// Severity indicates the severity level of the issue
	Severity severity.Severity
	// Keyword is the schema keyword involved, if any
	Keyword string
	// Value is the problematic value (optional)
	Value any
	// Declaration is the name of the declaration being built (optional)
	Declaration string
}

// String returns a formatted string representation of the issue.
// Uses different symbols based on severity level:
// - "✗" for Error or Critical severity
// - "⚠" for Warning severity
// - "ℹ" for Info severity
func (i Issue) String() string {
	var symbol string
	switch i.Severity {
	case severity.SeverityError, severity.SeverityCritical:
		symbol = "✗"
	case severity.SeverityWarning:
		symbol = "⚠"
	case severity.SeverityInfo:
		symbol = "ℹ"
	default:
		symbol = "?"
	}

	where := i.Pointer
	if i.Keyword != "" {
		where += " (" + i.Keyword + ")"
	}
	result := fmt.Sprintf("%s %s: %s", symbol, where, i.Message)
	if i.Declaration != "" {
		result += fmt.Sprintf("\n    In: %s", i.Declaration)
	}
	return result
}
