package severity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSeverityString(t *testing.T) {
	names := map[Severity]string{
		SeverityInfo:     "info",
		SeverityWarning:  "warning",
		SeverityError:    "error",
		SeverityCritical: "critical",
		Severity(-1):     "unknown",
		Severity(42):     "unknown",
	}
	for sev, want := range names {
		assert.Equal(t, want, sev.String(), "Severity(%d)", int(sev))
	}
}

// Issue strings embed the level as a single lowercase word.
func TestSeverityStringConsistency(t *testing.T) {
	for _, sev := range []Severity{SeverityError, SeverityWarning, SeverityInfo, SeverityCritical} {
		s := sev.String()
		assert.NotEmpty(t, s)
		assert.Regexp(t, `^[a-z]+$`, s)
	}
}
