package rxerrors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinels matched by the structured types below through errors.Is.
var (
	ErrInvalidDocument     = errors.New("invalid document")
	ErrReferenceOutOfRange = errors.New("reference out of range")
	ErrUnknownOption       = errors.New("unknown option")
	ErrExternalEngine      = errors.New("external engine error")
	ErrConfig              = errors.New("configuration error")
)

// DocumentError reports a structural violation of a document: missing or
// empty patterns, a value of the wrong type, a nested option reference.
type DocumentError struct {
	Path    string // e.g. "patterns[2].value"
	Message string
	Cause   error
}

func (e *DocumentError) Error() string {
	var at string
	if e.Path != "" {
		at = " at " + e.Path
	}
	return compose("invalid document"+at, e.Message, e.Cause)
}

func (e *DocumentError) Unwrap() error        { return e.Cause }
func (e *DocumentError) Is(target error) bool { return target == ErrInvalidDocument }

// ReferenceError reports an integer reference that selects no element of
// its collection.
type ReferenceError struct {
	Collection string // "pattern_strings", "compile_options", ...
	Index      int
	Length     int // collection length when the reference was resolved
}

func (e *ReferenceError) Error() string {
	return fmt.Sprintf("reference out of range: %s[%d] (length %d)", e.Collection, e.Index, e.Length)
}

func (e *ReferenceError) Is(target error) bool { return target == ErrReferenceOutOfRange }

// OptionError reports an option name missing from the symbol table.
type OptionError struct {
	Name      string // as written in the document
	Namespace string // "compile" or "execute"; may be empty
}

func (e *OptionError) Error() string {
	if e.Namespace == "" {
		return fmt.Sprintf("unknown option %q", e.Name)
	}
	return fmt.Sprintf("unknown option %q (%s options)", e.Name, e.Namespace)
}

func (e *OptionError) Is(target error) bool { return target == ErrUnknownOption }

// EngineError reports an engine failure that is neither a compile failure
// nor a non-match.
type EngineError struct {
	Op      string // "compile", "execute" or "captures"
	Message string
	Cause   error
}

func (e *EngineError) Error() string {
	head := "engine error"
	if e.Op != "" {
		head += " during " + e.Op
	}
	return compose(head, e.Message, e.Cause)
}

func (e *EngineError) Unwrap() error        { return e.Cause }
func (e *EngineError) Is(target error) bool { return target == ErrExternalEngine }

// ConfigError reports an invalid processor, CLI or server setting.
type ConfigError struct {
	Option  string
	Value   any // nil when no value applies
	Message string
	Cause   error
}

func (e *ConfigError) Error() string {
	head := "configuration error"
	if e.Option != "" {
		head += " for " + e.Option
	}
	if e.Value != nil {
		head += fmt.Sprintf(" (value: %v)", e.Value)
	}
	return compose(head, e.Message, e.Cause)
}

func (e *ConfigError) Unwrap() error        { return e.Cause }
func (e *ConfigError) Is(target error) bool { return target == ErrConfig }

// compose joins the non-empty parts of a message with ": ".
func compose(head, msg string, cause error) string {
	var b strings.Builder
	b.WriteString(head)
	if msg != "" {
		b.WriteString(": ")
		b.WriteString(msg)
	}
	if cause != nil {
		b.WriteString(": ")
		b.WriteString(cause.Error())
	}
	return b.String()
}
