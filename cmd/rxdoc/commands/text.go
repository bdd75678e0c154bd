package commands

import (
	"io"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/erraggy/rxdoc/document"
	"github.com/erraggy/rxdoc/engine"
	"github.com/erraggy/rxdoc/resolver"
)

const indent = "  "

// WriteText renders an annotated document as plain text: every pattern
// with its options and compilation outcome, then every subject with its
// match and captures. Numbering starts at 1.
func WriteText(w io.Writer, doc *document.Document) {
	table := engine.DefaultSymbols()
	for i, p := range doc.Patterns {
		Writef(w, "Pattern #%d: %s\n", i+1, displayValue(p.Value, doc.PatternStrings, document.PatternStrings))
		Writef(w, "%sOptions: %s\n", indent, displayOptions(p.Options, doc.CompileOptions, engine.NamespaceCompile, table))
		Writef(w, "%sCompilation: %s\n", indent, displayBool(p.Compile))
		if p.Compile == nil {
			continue
		}
		if !*p.Compile {
			if p.Error != nil {
				Writef(w, "%sError message: %s\n", indent, displayString(p.Error.Message))
				Writef(w, "%sError offset: %s\n", indent, displayInt(p.Error.Offset))
			}
			continue
		}
		for j, e := range p.Execute {
			Writef(w, "%sSubject #%d: %s\n", indent, j+1, displayValue(e.Subject, doc.SubjectStrings, document.SubjectStrings))
			Writef(w, "%sOptions: %s\n", indent, displayOptions(e.Options, doc.ExecuteOptions, engine.NamespaceExecute, table))
			Writef(w, "%sMatch: %s\n", indent+indent, displayBool(e.Match))
			if e.Captures == nil {
				continue
			}
			if len(e.Captures.ByIndex) > 0 {
				Writef(w, "%sCaptures by index:\n", indent+indent)
				for k, c := range e.Captures.ByIndex {
					Writef(w, "%s[%d] %s\n", indent+indent+indent, k+1, displayString(c))
				}
			}
			if len(e.Captures.ByName) > 0 {
				Writef(w, "%sCaptures by name:\n", indent+indent)
				for _, name := range slices.Sorted(maps.Keys(e.Captures.ByName)) {
					Writef(w, "%s[%s] %s\n", indent+indent+indent, name, displayString(e.Captures.ByName[name]))
				}
			}
		}
	}
}

func displayValue(v document.Value, collection []string, name string) string {
	s, err := resolver.ResolveValue(v, collection, name)
	if err != nil {
		return v.String() + " (unresolved)"
	}
	return s
}

func displayOptions(o *document.OptionSet, collection []document.OptionSet, ns engine.Namespace, table *engine.SymbolTable) string {
	set, err := resolver.NormalizeOptions(o, collection, ns, table)
	if err != nil {
		return o.String() + " (invalid)"
	}
	return "[" + strings.Join(set.Tokens, ", ") + "]"
}

func displayBool(b *bool) string {
	if b == nil {
		return "not processed"
	}
	return strconv.FormatBool(*b)
}

func displayString(s *string) string {
	if s == nil {
		return "null"
	}
	return *s
}

func displayInt(n *int) string {
	if n == nil {
		return "null"
	}
	return strconv.Itoa(*n)
}
