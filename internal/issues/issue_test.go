package issues

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gabrielbryk/json-schema-to-zod-sub001/internal/severity"
)

func TestIssueString(t *testing.T) {
	tests := []struct {
		name     string
		issue    Issue
		expected string
	}{
		{
			name:     "warning with keyword",
			issue:    Issue{Pointer: "#/properties/a", Keyword: "$ref", Message: "unresolved reference", Severity: severity.SeverityWarning},
			expected: "⚠ #/properties/a ($ref): unresolved reference",
		},
		{
			name:     "info",
			issue:    Issue{Pointer: "#", Message: "lifted", Severity: severity.SeverityInfo},
			expected: "ℹ #: lifted",
		},
		{
			name:     "critical with declaration",
			issue:    Issue{Pointer: "#/$defs/A", Message: "no representation", Severity: severity.SeverityCritical, Declaration: "A"},
			expected: "✗ #/$defs/A: no representation\n    In: A",
		},
		{
			name:     "unknown severity",
			issue:    Issue{Pointer: "#", Message: "x", Severity: severity.Severity(42)},
			expected: "? #: x",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.issue.String())
		})
	}
}
