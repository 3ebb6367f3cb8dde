// Package severity provides severity level constants for issues reported
// while generating validator modules.
//
// The levels are ordered from least to most severe:
// Info < Warning < Error < Critical
package severity

// Severity indicates the severity level of a generation issue.
type Severity int

const (
	// SeverityError indicates a malformed schema construct.
	SeverityError Severity = iota

	// SeverityWarning indicates a construct that was translated loosely,
	// such as an unresolved reference replaced by the fallback.
	SeverityWarning

	// SeverityInfo indicates informational messages about generation choices.
	SeverityInfo

	// SeverityCritical indicates a construct that could not be translated.
	SeverityCritical
)

// String returns the string representation of the severity level.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}
