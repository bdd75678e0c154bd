// Package rxerrors provides structured error types for the rxdoc library.
//
// Import path: github.com/erraggy/rxdoc/rxerrors
//
// This package enables programmatic error handling via [errors.Is] and [errors.As],
// allowing callers to distinguish a malformed document (which aborts processing)
// from pattern-local failures (which are collected and reported next to the
// annotated document).
//
// # Error Types
//
//   - [DocumentError]: structural violations of the document itself
//   - [ReferenceError]: an integer reference outside its collection's bounds
//   - [OptionError]: an option name missing from the engine's symbol table
//   - [EngineError]: the engine failed outside the compile-failure/non-match contract
//   - [ConfigError]: invalid processor or CLI configuration
//
// A compile failure is not an error: it is an expected outcome recorded in the
// document through the "compile" and "error" fields.
//
// # Sentinel Errors
//
//   - [ErrInvalidDocument]: Matches any [DocumentError]
//   - [ErrReferenceOutOfRange]: Matches any [ReferenceError]
//   - [ErrUnknownOption]: Matches any [OptionError]
//   - [ErrExternalEngine]: Matches any [EngineError]
//   - [ErrConfig]: Matches any [ConfigError]
//
// # Usage Examples
//
//	result, err := processor.Process(doc)
//	if errors.Is(err, rxerrors.ErrInvalidDocument) {
//	    // nothing was processed
//	}
//	for _, issue := range result.Issues {
//	    var refErr *rxerrors.ReferenceError
//	    if errors.As(issue.Err, &refErr) {
//	        fmt.Printf("%s[%d] is out of range\n", refErr.Collection, refErr.Index)
//	    }
//	}
//
// Use [KindOf] to map any error onto the reporting taxonomy.
package rxerrors
