package processor

import (
	"time"

	"github.com/erraggy/rxdoc/document"
	"github.com/erraggy/rxdoc/internal/issues"
)

// Issue is a pattern-local failure reported next to the annotated document.
type Issue = issues.Issue

// Stats counts what a processing pass did.
type Stats struct {
	Patterns        int `json:"patterns" yaml:"patterns"`
	Compiled        int `json:"compiled" yaml:"compiled"`
	CompileFailures int `json:"compile_failures" yaml:"compile_failures"`
	Entries         int `json:"entries" yaml:"entries"`
	Matched         int `json:"matched" yaml:"matched"`
	NotMatched      int `json:"not_matched" yaml:"not_matched"`
	// Skipped counts entries not executed because their pattern failed to
	// compile or could not be resolved.
	Skipped int `json:"skipped" yaml:"skipped"`
	Issues  int `json:"issues" yaml:"issues"`
}

func (s *Stats) add(o Stats) {
	s.Patterns += o.Patterns
	s.Compiled += o.Compiled
	s.CompileFailures += o.CompileFailures
	s.Entries += o.Entries
	s.Matched += o.Matched
	s.NotMatched += o.NotMatched
	s.Skipped += o.Skipped
	s.Issues += o.Issues
}

// Result is the outcome of processing a document.
type Result struct {
	// Document is the annotated copy of the input.
	Document *document.Document `json:"document" yaml:"document"`
	// Issues lists local failures in document order.
	Issues []Issue `json:"issues" yaml:"issues"`
	Stats  Stats   `json:"stats" yaml:"stats"`
	// RunID identifies the pass in logs.
	RunID       string        `json:"run_id" yaml:"run_id"`
	ProcessTime time.Duration `json:"process_time" yaml:"process_time"`
}

// HasIssues reports whether any local failure occurred.
func (r *Result) HasIssues() bool {
	return len(r.Issues) > 0
}
