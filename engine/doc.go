// Package engine defines the regex engine collaborator used by rxdoc and
// provides a default implementation backed by github.com/coregx/coregex.
//
// An [Engine] compiles a pattern under a set of PCRE option bits into an
// opaque [Handle], executes subjects against that handle, and releases it.
// Compile-time rejection of a pattern is reported as a [*CompileError] and
// is an expected outcome. Any other failure is an engine error.
//
// Option names are resolved through a [SymbolTable]. [DefaultSymbols]
// returns the standard PCRE table, where some bit values are shared between
// a compile-time and an execute-time option:
//
//	s, ok := engine.DefaultSymbols().Lookup("PCRE_CASELESS", engine.NamespaceCompile)
//	// s.Value == engine.Caseless
//
// The coregex engine returned by [New] honours a subset of the PCRE options
// (see [SupportedCompileFlags] and [SupportedExecuteFlags]); other known
// options are rejected instead of being silently ignored.
package engine
