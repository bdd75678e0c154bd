package engine

import "fmt"

// Handle is an opaque compiled pattern. It is only valid for the engine that
// produced it and only until it is released.
type Handle any

// Match is the raw result of executing a subject.
type Match struct {
	Matched bool
	// Groups holds group 0 (the whole match) followed by every capturing
	// group in order. Non-participating groups are nil.
	Groups []*string
	// Names maps each named group to its index in Groups. A name shared by
	// several groups maps to the first of them that participated.
	Names map[string]int
}

// CompileError is an engine rejecting a pattern.
type CompileError struct {
	Message string
	// Offset is the byte position within the pattern text where the engine
	// detected the problem.
	Offset int
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("%s at offset %d", e.Message, e.Offset)
}

// Engine compiles patterns and executes subjects against them.
type Engine interface {
	// Compile compiles pattern under flags. A rejected pattern is reported as
	// a *CompileError; any other error is an engine failure.
	Compile(pattern string, flags Flags) (Handle, error)
	// Execute matches subject against a compiled handle. A non-match is a
	// Match with Matched false, never an error.
	Execute(h Handle, subject string, flags Flags) (*Match, error)
	// Release frees a handle. Releasing twice is a no-op.
	Release(h Handle)
	// Symbols returns the option table the engine understands.
	Symbols() *SymbolTable
}

// Reentrant is implemented by engines whose methods may be called from
// several goroutines at once.
type Reentrant interface {
	Reentrant() bool
}

// IsReentrant reports whether e declares itself safe for concurrent use.
func IsReentrant(e Engine) bool {
	r, ok := e.(Reentrant)
	return ok && r.Reentrant()
}
