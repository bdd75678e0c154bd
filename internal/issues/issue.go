// Package issues provides the issue type reported next to an annotated
// document when a pattern or execute entry could not be processed.
package issues

import (
	"fmt"

	"github.com/erraggy/rxdoc/internal/severity"
	"github.com/erraggy/rxdoc/rxerrors"
)

// NoEntry marks an issue that concerns a whole pattern.
const NoEntry = -1

// Issue is a single local failure.
type Issue struct {
	// Kind classifies the failure.
	Kind rxerrors.Kind `json:"kind" yaml:"kind"`
	// Path locates the failure, e.g. "patterns[0].execute[1].subject".
	Path string `json:"path" yaml:"path"`
	// Pattern is the index of the pattern concerned.
	Pattern int `json:"pattern" yaml:"pattern"`
	// Entry is the index of the execute entry concerned, or NoEntry.
	Entry int `json:"entry" yaml:"entry"`
	// Message is a human-readable description.
	Message string `json:"message" yaml:"message"`
	// Severity is Error for resolution failures and Critical for engine
	// failures.
	Severity severity.Severity `json:"severity" yaml:"severity"`
	// Err is the underlying error.
	Err error `json:"-" yaml:"-"`
}

// New builds an issue from err, deriving kind, severity and message.
func New(path string, pattern, entry int, err error) Issue {
	kind := rxerrors.KindOf(err)
	sev := severity.SeverityError
	if kind == rxerrors.KindExternalEngine {
		sev = severity.SeverityCritical
	}
	msg := ""
	if err != nil {
		msg = err.Error()
	}
	return Issue{
		Kind:     kind,
		Path:     path,
		Pattern:  pattern,
		Entry:    entry,
		Message:  msg,
		Severity: sev,
		Err:      err,
	}
}

// IsEntry reports whether the issue concerns a single execute entry.
func (i Issue) IsEntry() bool {
	return i.Entry != NoEntry
}

// String renders the issue on one line, led by its severity symbol.
func (i Issue) String() string {
	return fmt.Sprintf("%s %s [%s]: %s", i.Severity.Symbol(), i.Path, i.Kind, i.Message)
}

// Unwrap returns the underlying error.
func (i Issue) Unwrap() error {
	return i.Err
}
