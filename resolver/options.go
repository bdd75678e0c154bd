package resolver

import (
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/erraggy/rxdoc/document"
	"github.com/erraggy/rxdoc/engine"
	"github.com/erraggy/rxdoc/internal/pathutil"
	"github.com/erraggy/rxdoc/rxerrors"
)

const namePrefix = "PCRE_"

// CanonicalSet is a normalized option representation.
type CanonicalSet struct {
	// Tokens are PCRE_ names in symbol table order, without duplicates.
	Tokens []string
	// Mask is the OR of every token's bits.
	Mask engine.Flags
}

// Equal reports whether s and other name the same options.
func (s CanonicalSet) Equal(other CanonicalSet) bool {
	return s.Mask == other.Mask && slices.Equal(s.Tokens, other.Tokens)
}

// IsEmpty reports whether the set holds no options.
func (s CanonicalSet) IsEmpty() bool {
	return len(s.Tokens) == 0
}

// String joins the tokens with '|'.
func (s CanonicalSet) String() string {
	return strings.Join(s.Tokens, "|")
}

// OptionSet returns the set as a list representation.
func (s CanonicalSet) OptionSet() *document.OptionSet {
	return document.OptionsList(slices.Clone(s.Tokens)...)
}

// CollectionName returns the document key of the option collection that
// references in namespace ns point into.
func CollectionName(ns engine.Namespace) string {
	if ns == engine.NamespaceExecute {
		return document.ExecuteOptions
	}
	return document.CompileOptions
}

// NormalizeOptions resolves rep to a CanonicalSet. A nil rep is the empty
// set. A reference must index collection and resolves one level only.
// Names are looked up in table within namespace ns.
func NormalizeOptions(rep *document.OptionSet, collection []document.OptionSet, ns engine.Namespace, table *engine.SymbolTable) (CanonicalSet, error) {
	if rep == nil {
		return CanonicalSet{}, nil
	}
	if rep.Kind == document.OptionRef {
		name := CollectionName(ns)
		if rep.Index < 0 || rep.Index >= len(collection) {
			return CanonicalSet{}, &rxerrors.ReferenceError{Collection: name, Index: rep.Index, Length: len(collection)}
		}
		target := &collection[rep.Index]
		if target.Kind == document.OptionRef {
			return CanonicalSet{}, &rxerrors.DocumentError{
				Path:    pathutil.CollectionRef(name, rep.Index),
				Message: "option set collections cannot hold references",
			}
		}
		rep = target
	}

	var names []string
	switch rep.Kind {
	case document.OptionString:
		names = SplitNames(rep.Text)
	case document.OptionList:
		for _, item := range rep.Names {
			names = append(names, SplitNames(item)...)
		}
	default:
		return CanonicalSet{}, &rxerrors.DocumentError{Message: "options must be a string, a list of strings or an integer"}
	}

	upper := cases.Upper(language.Und)
	symbols := make([]engine.Symbol, 0, len(names))
	for _, name := range names {
		sym, ok := table.Lookup(CanonicalName(&upper, name), ns)
		if !ok {
			return CanonicalSet{}, &rxerrors.OptionError{Name: name, Namespace: ns.String()}
		}
		symbols = append(symbols, sym)
	}

	slices.SortFunc(symbols, func(a, b engine.Symbol) int { return a.Order - b.Order })
	symbols = slices.CompactFunc(symbols, func(a, b engine.Symbol) bool { return a.Order == b.Order })

	set := CanonicalSet{Tokens: make([]string, len(symbols))}
	for i, sym := range symbols {
		set.Tokens[i] = sym.Name
		set.Mask |= sym.Value
	}
	return set, nil
}

// SplitNames splits a pipe-delimited option string into trimmed names,
// dropping empty ones.
func SplitNames(text string) []string {
	var names []string
	for part := range strings.SplitSeq(text, "|") {
		if part = strings.TrimSpace(part); part != "" {
			names = append(names, part)
		}
	}
	return names
}

// CanonicalName upper-cases name and adds the PCRE_ prefix when missing.
// A nil caser uses a fresh Unicode upper-caser.
func CanonicalName(upper *cases.Caser, name string) string {
	if upper == nil {
		c := cases.Upper(language.Und)
		upper = &c
	}
	name = upper.String(strings.TrimSpace(name))
	if !strings.HasPrefix(name, namePrefix) {
		name = namePrefix + name
	}
	return name
}
