// Package testutil provides test utilities and fixtures for unit tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/erraggy/rxdoc/document"
)

// NewSimpleDocument creates a document with one literal pattern and one
// literal subject, and no collections.
func NewSimpleDocument() *document.Document {
	return &document.Document{
		Patterns: []*document.Pattern{
			{
				Value: document.Literal(`^(?i)hello`),
				Execute: []*document.Execution{
					{Subject: document.Literal("Hello!")},
				},
			},
		},
	}
}

// NewDetailedDocument creates a document that exercises every collection,
// both option representations, references and a pattern that fails to
// compile.
func NewDetailedDocument() *document.Document {
	return &document.Document{
		PatternStrings: []string{`(?P<word>\w+) (\d+)?`, `hello(`},
		SubjectStrings: []string{"value", "abc 42"},
		CompileOptions: []document.OptionSet{*document.OptionsString("caseless|PCRE_MULTILINE")},
		ExecuteOptions: []document.OptionSet{*document.OptionsList("notempty")},
		Patterns: []*document.Pattern{
			{
				Value:   document.Ref(0),
				Options: document.OptionsRef(0),
				Execute: []*document.Execution{
					{Subject: document.Literal("value ")},
					{Subject: document.Ref(1), Options: document.OptionsRef(0)},
					{Subject: document.Literal("!!!")},
				},
			},
			{
				Value: document.Ref(1),
				Execute: []*document.Execution{
					{Subject: document.Ref(0)},
				},
			},
			{
				Value: document.Literal(`^$`),
			},
		},
		Extra: map[string]any{"meta": "fixture"},
	}
}

// WriteTempYAML encodes a document as YAML and writes it to a temporary file.
// Returns the path to the temporary file.
// The file is automatically cleaned up when the test completes (via t.TempDir).
func WriteTempYAML(t *testing.T, doc *document.Document) string {
	t.Helper()
	return writeTemp(t, doc, document.FormatYAML, "test.yaml")
}

// WriteTempJSON encodes a document as JSON and writes it to a temporary file.
// Returns the path to the temporary file.
// The file is automatically cleaned up when the test completes (via t.TempDir).
func WriteTempJSON(t *testing.T, doc *document.Document) string {
	t.Helper()
	return writeTemp(t, doc, document.FormatJSON, "test.json")
}

func writeTemp(t *testing.T, doc *document.Document, format document.Format, name string) string {
	t.Helper()

	data, err := document.Encode(doc, format)
	if err != nil {
		t.Fatalf("Failed to encode document as %s: %v", format, err)
	}

	tmpFile := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(tmpFile, data, 0600); err != nil {
		t.Fatalf("Failed to write temporary %s file: %v", format, err)
	}

	return tmpFile
}
