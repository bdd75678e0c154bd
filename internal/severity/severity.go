// Package severity grades the issues reported while processing a document.
package severity

// Severity grades an issue. The zero value is SeverityError.
type Severity int

const (
	// SeverityError is a resolution failure local to one pattern or entry:
	// a reference out of range or an unknown option name.
	SeverityError Severity = iota
	// SeverityCritical is an engine failure outside the compile/match contract.
	SeverityCritical
)

var names = [...]string{
	SeverityError:    "error",
	SeverityCritical: "critical",
}

func (s Severity) String() string {
	if s < 0 || int(s) >= len(names) {
		return "unknown"
	}
	return names[s]
}

// MarshalText renders the level by name.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Symbol is the marker printed before an issue in text reports.
func (s Severity) Symbol() string {
	switch s {
	case SeverityError:
		return "✗"
	case SeverityCritical:
		return "‼"
	default:
		return "?"
	}
}
