// Package resolver turns the reference-laden parts of a document into the
// concrete inputs an engine needs.
//
// [ResolveValue] maps a pattern value or subject to its text, following an
// integer reference into pattern_strings or subject_strings. [NormalizeOptions]
// maps any of the three option representations (a pipe-delimited string, a
// list of names, or a reference into compile_options / execute_options) to
// a [CanonicalSet]: the sorted, de-duplicated PCRE_ names plus their OR-ed
// bits. Two representations are equivalent exactly when their canonical
// sets are equal:
//
//	a, _ := resolver.NormalizeOptions(document.OptionsString("caseless|anchored"), nil, engine.NamespaceCompile, table)
//	b, _ := resolver.NormalizeOptions(document.OptionsList("PCRE_ANCHORED", "Caseless"), nil, engine.NamespaceCompile, table)
//	a.Equal(b) // true
//
// [NormalizeDocument] rewrites every option representation in a document
// to its canonical list form.
package resolver
