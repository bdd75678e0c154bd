// Package processor annotates rxdoc documents with compile and match results.
//
// Processing never modifies its input. It validates the document, takes a
// deep copy and then, pattern by pattern, resolves the pattern text and
// its options, compiles it and executes every subject listed under it:
//
//	doc, _, err := document.DecodeFile("patterns.yaml")
//	if err != nil {
//		log.Fatal(err)
//	}
//	result, err := processor.Process(doc)
//	if err != nil {
//		log.Fatal(err) // the document itself is malformed
//	}
//	for _, issue := range result.Issues {
//		fmt.Println(issue)
//	}
//	out, _ := document.Encode(result.Document, document.FormatYAML)
//
// A pattern the engine rejects is not a failure: it is annotated with
// compile: false and the engine's message and offset. Failures such as an
// out-of-range reference or an unknown option name are local. They leave the
// affected pattern or entry without outputs and are listed in
// [Result.Issues], while the rest of the document is still processed.
//
// Outputs are always recomputed, so processing an annotated document again
// gives back the same document.
package processor
