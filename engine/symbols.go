package engine

import (
	"fmt"
	"maps"
	"strings"
)

// Flags is an OR-ed set of PCRE option bits.
type Flags uint32

// PCRE option bits, as defined by pcre.h. Some values are shared between a
// compile-time and an execute-time option; the namespace decides which one
// a name refers to.
const (
	Caseless         Flags = 0x00000001
	Multiline        Flags = 0x00000002
	Dotall           Flags = 0x00000004
	Extended         Flags = 0x00000008
	Anchored         Flags = 0x00000010
	DollarEndOnly    Flags = 0x00000020
	Extra            Flags = 0x00000040
	NotBOL           Flags = 0x00000080
	NotEOL           Flags = 0x00000100
	Ungreedy         Flags = 0x00000200
	NotEmpty         Flags = 0x00000400
	UTF8             Flags = 0x00000800
	NoAutoCapture    Flags = 0x00001000
	NoUTF8Check      Flags = 0x00002000
	AutoCallout      Flags = 0x00004000
	PartialSoft      Flags = 0x00008000
	NeverUTF         Flags = 0x00010000
	DFAShortest      Flags = 0x00010000
	NoAutoPossess    Flags = 0x00020000
	DFARestart       Flags = 0x00020000
	Firstline        Flags = 0x00040000
	DupNames         Flags = 0x00080000
	NewlineCR        Flags = 0x00100000
	NewlineLF        Flags = 0x00200000
	NewlineCRLF      Flags = 0x00300000
	NewlineAny       Flags = 0x00400000
	NewlineAnyCRLF   Flags = 0x00500000
	BSRAnyCRLF       Flags = 0x00800000
	BSRUnicode       Flags = 0x01000000
	JavascriptCompat Flags = 0x02000000
	NoStartOptimize  Flags = 0x04000000
	PartialHard      Flags = 0x08000000
	NotEmptyAtStart  Flags = 0x10000000
	UCP              Flags = 0x20000000
)

// String renders the mask in hexadecimal.
func (f Flags) String() string {
	return fmt.Sprintf("0x%08x", uint32(f))
}

// Namespace selects which options a name may refer to.
type Namespace uint8

const (
	// NamespaceCompile holds options accepted when compiling a pattern.
	NamespaceCompile Namespace = 1 << iota
	// NamespaceExecute holds options accepted when executing a subject.
	NamespaceExecute

	// NamespaceBoth is shorthand for options valid at both stages.
	NamespaceBoth = NamespaceCompile | NamespaceExecute
)

// String returns "compile", "execute" or "compile|execute".
func (n Namespace) String() string {
	switch n {
	case NamespaceCompile:
		return "compile"
	case NamespaceExecute:
		return "execute"
	case NamespaceBoth:
		return "compile|execute"
	default:
		return fmt.Sprintf("Namespace(%d)", uint8(n))
	}
}

// Has reports whether n includes every namespace in other.
func (n Namespace) Has(other Namespace) bool {
	return other != 0 && n&other == other
}

// Symbol is one named option.
type Symbol struct {
	// Name is the upper-case PCRE_ name.
	Name       string
	Value      Flags
	Namespaces Namespace
	// Order is the position of the symbol in its table. It is assigned by
	// NewSymbolTable and gives canonical sets a stable ordering.
	Order int
}

// SymbolTable maps option names to values. A table is immutable once built
// and safe for concurrent use.
type SymbolTable struct {
	symbols []Symbol
	byName  map[string]int
	aliases map[string]string
}

// NewSymbolTable builds a table from symbols, in order, plus aliases mapping
// an alternate name to the name of a symbol. All names must carry the PCRE_
// prefix and be upper case.
func NewSymbolTable(symbols []Symbol, aliases map[string]string) (*SymbolTable, error) {
	t := &SymbolTable{
		symbols: make([]Symbol, 0, len(symbols)),
		byName:  make(map[string]int, len(symbols)),
		aliases: make(map[string]string, len(aliases)),
	}
	for _, s := range symbols {
		if err := checkName(s.Name); err != nil {
			return nil, err
		}
		if _, dup := t.byName[s.Name]; dup {
			return nil, fmt.Errorf("engine: duplicate option %s", s.Name)
		}
		if s.Namespaces&NamespaceBoth == 0 {
			return nil, fmt.Errorf("engine: option %s belongs to no namespace", s.Name)
		}
		s.Order = len(t.symbols)
		t.byName[s.Name] = s.Order
		t.symbols = append(t.symbols, s)
	}
	for alias, target := range aliases {
		if err := checkName(alias); err != nil {
			return nil, err
		}
		if _, clash := t.byName[alias]; clash {
			return nil, fmt.Errorf("engine: alias %s shadows an option", alias)
		}
		if _, ok := t.byName[target]; !ok {
			return nil, fmt.Errorf("engine: alias %s targets unknown option %s", alias, target)
		}
		t.aliases[alias] = target
	}
	return t, nil
}

func checkName(name string) error {
	if !strings.HasPrefix(name, "PCRE_") || len(name) == len("PCRE_") {
		return fmt.Errorf("engine: option name %q must start with PCRE_", name)
	}
	if strings.ToUpper(name) != name {
		return fmt.Errorf("engine: option name %q must be upper case", name)
	}
	return nil
}

// Lookup resolves a normalized name in namespace ns. Aliases resolve to the
// symbol they stand for. The second result is false when the name is unknown
// or does not belong to ns.
func (t *SymbolTable) Lookup(name string, ns Namespace) (Symbol, bool) {
	if target, ok := t.aliases[name]; ok {
		name = target
	}
	i, ok := t.byName[name]
	if !ok {
		return Symbol{}, false
	}
	s := t.symbols[i]
	if !s.Namespaces.Has(ns) {
		return Symbol{}, false
	}
	return s, true
}

// Symbols returns the primary symbols in table order.
func (t *SymbolTable) Symbols() []Symbol {
	return append([]Symbol(nil), t.symbols...)
}

// Aliases returns a copy of the alias map.
func (t *SymbolTable) Aliases() map[string]string {
	return maps.Clone(t.aliases)
}

// Len returns the number of primary symbols.
func (t *SymbolTable) Len() int {
	return len(t.symbols)
}

var defaultSymbols = mustSymbolTable(
	[]Symbol{
		{Name: "PCRE_CASELESS", Value: Caseless, Namespaces: NamespaceCompile},
		{Name: "PCRE_MULTILINE", Value: Multiline, Namespaces: NamespaceCompile},
		{Name: "PCRE_DOTALL", Value: Dotall, Namespaces: NamespaceCompile},
		{Name: "PCRE_EXTENDED", Value: Extended, Namespaces: NamespaceCompile},
		{Name: "PCRE_ANCHORED", Value: Anchored, Namespaces: NamespaceBoth},
		{Name: "PCRE_DOLLAR_ENDONLY", Value: DollarEndOnly, Namespaces: NamespaceCompile},
		{Name: "PCRE_EXTRA", Value: Extra, Namespaces: NamespaceCompile},
		{Name: "PCRE_NOTBOL", Value: NotBOL, Namespaces: NamespaceExecute},
		{Name: "PCRE_NOTEOL", Value: NotEOL, Namespaces: NamespaceExecute},
		{Name: "PCRE_UNGREEDY", Value: Ungreedy, Namespaces: NamespaceCompile},
		{Name: "PCRE_NOTEMPTY", Value: NotEmpty, Namespaces: NamespaceExecute},
		{Name: "PCRE_UTF8", Value: UTF8, Namespaces: NamespaceCompile},
		{Name: "PCRE_NO_AUTO_CAPTURE", Value: NoAutoCapture, Namespaces: NamespaceCompile},
		{Name: "PCRE_NO_UTF8_CHECK", Value: NoUTF8Check, Namespaces: NamespaceBoth},
		{Name: "PCRE_AUTO_CALLOUT", Value: AutoCallout, Namespaces: NamespaceCompile},
		{Name: "PCRE_PARTIAL_SOFT", Value: PartialSoft, Namespaces: NamespaceExecute},
		{Name: "PCRE_NEVER_UTF", Value: NeverUTF, Namespaces: NamespaceCompile},
		{Name: "PCRE_DFA_SHORTEST", Value: DFAShortest, Namespaces: NamespaceExecute},
		{Name: "PCRE_NO_AUTO_POSSESS", Value: NoAutoPossess, Namespaces: NamespaceCompile},
		{Name: "PCRE_DFA_RESTART", Value: DFARestart, Namespaces: NamespaceExecute},
		{Name: "PCRE_FIRSTLINE", Value: Firstline, Namespaces: NamespaceCompile},
		{Name: "PCRE_DUPNAMES", Value: DupNames, Namespaces: NamespaceCompile},
		{Name: "PCRE_NEWLINE_CR", Value: NewlineCR, Namespaces: NamespaceBoth},
		{Name: "PCRE_NEWLINE_LF", Value: NewlineLF, Namespaces: NamespaceBoth},
		{Name: "PCRE_NEWLINE_CRLF", Value: NewlineCRLF, Namespaces: NamespaceBoth},
		{Name: "PCRE_NEWLINE_ANY", Value: NewlineAny, Namespaces: NamespaceBoth},
		{Name: "PCRE_NEWLINE_ANYCRLF", Value: NewlineAnyCRLF, Namespaces: NamespaceBoth},
		{Name: "PCRE_BSR_ANYCRLF", Value: BSRAnyCRLF, Namespaces: NamespaceBoth},
		{Name: "PCRE_BSR_UNICODE", Value: BSRUnicode, Namespaces: NamespaceBoth},
		{Name: "PCRE_JAVASCRIPT_COMPAT", Value: JavascriptCompat, Namespaces: NamespaceCompile},
		{Name: "PCRE_NO_START_OPTIMIZE", Value: NoStartOptimize, Namespaces: NamespaceBoth},
		{Name: "PCRE_PARTIAL_HARD", Value: PartialHard, Namespaces: NamespaceExecute},
		{Name: "PCRE_NOTEMPTY_ATSTART", Value: NotEmptyAtStart, Namespaces: NamespaceExecute},
		{Name: "PCRE_UCP", Value: UCP, Namespaces: NamespaceCompile},
	},
	map[string]string{
		"PCRE_UTF16":             "PCRE_UTF8",
		"PCRE_UTF32":             "PCRE_UTF8",
		"PCRE_NO_UTF16_CHECK":    "PCRE_NO_UTF8_CHECK",
		"PCRE_NO_UTF32_CHECK":    "PCRE_NO_UTF8_CHECK",
		"PCRE_PARTIAL":           "PCRE_PARTIAL_SOFT",
		"PCRE_NO_START_OPTIMISE": "PCRE_NO_START_OPTIMIZE",
	},
)

func mustSymbolTable(symbols []Symbol, aliases map[string]string) *SymbolTable {
	t, err := NewSymbolTable(symbols, aliases)
	if err != nil {
		panic(err)
	}
	return t
}

// DefaultSymbols returns the standard PCRE option table.
func DefaultSymbols() *SymbolTable {
	return defaultSymbols
}
