// Package rxdoc compiles and matches regular expressions described by a
// document, and writes the outcome back into that document.
//
// A document lists patterns, each with the subjects to match against it.
// Pattern text, subjects and option sets can be written inline or shared
// through four collections and referenced by index:
//
//	pattern_strings: ['(?P<word>\w+) (\d+)?']
//	compile_options: ['caseless|multiline']
//	patterns:
//	  - value: 0
//	    options: 0
//	    execute:
//	      - subject: 'value '
//	      - subject: 'abc 42'
//	        options: [notempty]
//
// Processing annotates every pattern with "compile" (and "error" when the
// engine rejects it) and every execute entry with "match" and "captures":
//
//	- value: 0
//	  options: 0
//	  compile: true
//	  execute:
//	    - subject: 'value '
//	      match: true
//	      captures:
//	        by_index: [value, null]
//	        by_name: {word: value}
//
// # Packages
//
//   - document: the document model, JSON/YAML codecs and document factories
//   - engine: the regex engine contract, the PCRE option table and the
//     coregex-backed default engine
//   - resolver: reference resolution and option normalization
//   - processor: the compile and execute pipeline
//   - rxerrors: sentinel and typed errors
//   - extproc: runs the pipeline in a separate rxdoc process
//
// The rxdoc command (cmd/rxdoc) exposes the pipeline on the command line
// and as an MCP server.
//
// # Quick Start
//
//	doc, _, err := document.DecodeFile("patterns.yaml")
//	if err != nil {
//		log.Fatal(err)
//	}
//	result, err := processor.Process(doc, processor.WithConcurrency(4))
//	if err != nil {
//		log.Fatal(err)
//	}
//	out, err := document.Encode(result.Document, document.FormatYAML)
package rxdoc
