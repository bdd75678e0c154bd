// Package document defines the rxdoc document model and its JSON/YAML codecs.
//
// A document declares reusable collections (pattern strings, subject strings,
// compile option sets, execute option sets) and an ordered list of patterns.
// Each pattern names its regex either literally or by integer reference into
// pattern_strings, and lists zero or more subjects to execute against it:
//
//	pattern_strings: ['^(?P<word>\w+)']
//	subject_strings: ['hello world']
//	compile_options: ['caseless|anchored']
//	patterns:
//	  - value: 0
//	    options: 0
//	    execute:
//	      - subject: 0
//	      - subject: 'Bonjour'
//	        options: [notempty]
//
// Fields that may hold either a literal or a reference are decoded once into
// the tagged unions [Value] and [OptionSet]; the encoded type alone decides
// which variant applies (a string is a literal, an integer is a reference).
//
// Processing writes exactly four kinds of fields: "compile", "error", "match"
// and "captures". Every other field, including unknown keys such as "meta",
// round-trips unchanged through [Decode] and [Encode].
package document
