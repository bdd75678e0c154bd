package resolver

import (
	"github.com/erraggy/rxdoc/document"
	"github.com/erraggy/rxdoc/engine"
)

// NormalizeDocument returns a copy of doc in which every option
// representation, in the collections and inline, is rewritten as the list
// of its canonical tokens. References are kept as references. A
// representation that fails to normalize is left as written so that
// processing reports it. The number of rewritten representations is
// returned alongside the copy.
func NormalizeDocument(doc *document.Document, table *engine.SymbolTable) (*document.Document, int) {
	out := doc.Clone()
	if out == nil {
		return nil, 0
	}
	n := &normalizer{table: table}

	for i := range out.CompileOptions {
		n.rewrite(&out.CompileOptions[i], engine.NamespaceCompile)
	}
	for i := range out.ExecuteOptions {
		n.rewrite(&out.ExecuteOptions[i], engine.NamespaceExecute)
	}
	for _, p := range out.Patterns {
		if p == nil {
			continue
		}
		if p.Options != nil {
			n.rewrite(p.Options, engine.NamespaceCompile)
		}
		for _, e := range p.Execute {
			if e != nil && e.Options != nil {
				n.rewrite(e.Options, engine.NamespaceExecute)
			}
		}
	}
	return out, n.count
}

type normalizer struct {
	table *engine.SymbolTable
	count int
}

// rewrite replaces o in place with its canonical list form. References and
// representations with unknown names are left alone.
func (n *normalizer) rewrite(o *document.OptionSet, ns engine.Namespace) {
	if o.Kind != document.OptionString && o.Kind != document.OptionList {
		return
	}
	set, err := NormalizeOptions(o, nil, ns, n.table)
	if err != nil {
		return
	}
	*o = *set.OptionSet()
	n.count++
}
