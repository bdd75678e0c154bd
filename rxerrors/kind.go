package rxerrors

import "errors"

// Kind classifies errors for the processing report.
type Kind int

const (
	// KindUnknown is an error outside the rxdoc taxonomy.
	KindUnknown Kind = iota
	// KindInvalidDocument is a structural violation; fatal for the document.
	KindInvalidDocument
	// KindReferenceOutOfRange is a reference outside its collection.
	KindReferenceOutOfRange
	// KindUnknownOption is an option missing from the symbol table.
	KindUnknownOption
	// KindCompileFailure names a rejected pattern in reports. It never comes from KindOf.
	KindCompileFailure
	// KindExternalEngine is an engine failure outside its contract.
	KindExternalEngine
	// KindConfig is an invalid configuration.
	KindConfig
)

// String returns the report name of the kind.
func (k Kind) String() string {
	switch k {
	case KindInvalidDocument:
		return "InvalidDocument"
	case KindReferenceOutOfRange:
		return "ReferenceOutOfRange"
	case KindUnknownOption:
		return "UnknownOption"
	case KindCompileFailure:
		return "CompileFailure"
	case KindExternalEngine:
		return "ExternalEngineError"
	case KindConfig:
		return "ConfigError"
	default:
		return "Unknown"
	}
}

// MarshalText renders the kind by name in JSON and YAML reports.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// KindOf maps err onto the reporting taxonomy.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return KindUnknown
	case errors.Is(err, ErrInvalidDocument):
		return KindInvalidDocument
	case errors.Is(err, ErrReferenceOutOfRange):
		return KindReferenceOutOfRange
	case errors.Is(err, ErrUnknownOption):
		return KindUnknownOption
	case errors.Is(err, ErrExternalEngine):
		return KindExternalEngine
	case errors.Is(err, ErrConfig):
		return KindConfig
	default:
		return KindUnknown
	}
}

// IsLocal reports whether err only affects the pattern or entry that raised it.
func IsLocal(err error) bool {
	switch KindOf(err) {
	case KindReferenceOutOfRange, KindUnknownOption, KindExternalEngine:
		return true
	default:
		return false
	}
}
