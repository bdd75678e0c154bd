// Package pathutil builds the dotted locations used in rxdoc diagnostics,
// such as "patterns[0].execute[1].subject".
//
// [PathBuilder] uses push/pop semantics so a traversal only materializes a
// string when it needs to report something:
//
//	path := pathutil.Get()
//	defer pathutil.Put(path)
//
//	path.Push("patterns")
//	path.PushIndex(i)
//	// ... descend ...
//	path.Pop()
//
// The helpers [PatternPath], [EntryPath] and [CollectionRef] cover the fixed
// shapes used by the processor.
//
// [SanitizeOutputPath] validates output file paths for the CLI and rejects
// symlinks.
package pathutil
