package engine

import (
	"fmt"
	"maps"
	"regexp/syntax"
	"strings"
	"sync/atomic"
	"unicode/utf8"

	"github.com/coregx/coregex"

	"github.com/erraggy/rxdoc/rxerrors"
)

// SupportedCompileFlags are the compile-time options the coregex engine
// honours. DollarEndOnly, NoUTF8Check, NoStartOptimize, NoAutoPossess and
// NewlineLF describe the engine's fixed behavior and are accepted as is.
const SupportedCompileFlags = Caseless | Multiline | Dotall | Extended | Ungreedy |
	Anchored | NoAutoCapture | UTF8 | DupNames | DollarEndOnly | NoUTF8Check |
	NoStartOptimize | NoAutoPossess | NewlineLF

// SupportedExecuteFlags are the execute-time options the coregex engine
// honours.
const SupportedExecuteFlags = Anchored | NotEmpty | NotEmptyAtStart |
	NoUTF8Check | NoStartOptimize | NewlineLF

// Coregex is an Engine backed by github.com/coregx/coregex.
// It holds no state between documents and is safe for concurrent use.
type Coregex struct {
	symbols *SymbolTable
}

// New returns a coregex-backed engine using the default symbol table.
func New() *Coregex {
	return &Coregex{symbols: DefaultSymbols()}
}

// program is the Handle produced by Coregex.
type program struct {
	re        *coregex.Regex
	names     map[string]int   // leftmost group per name
	shared    map[string][]int // names used by several groups (PCRE_DUPNAMES)
	checkUTF8 bool
	released  atomic.Bool
}

// Symbols implements Engine.
func (c *Coregex) Symbols() *SymbolTable {
	return c.symbols
}

// Reentrant implements Reentrant.
func (c *Coregex) Reentrant() bool {
	return true
}

// Compile implements Engine. The pattern is validated before it is rewritten
// to apply flags, and error offsets always refer to the caller's text, even
// when Extended has stripped whitespace and comments first. Without
// DupNames, two groups sharing a name are rejected.
func (c *Coregex) Compile(pattern string, flags Flags) (Handle, error) {
	if bad := flags &^ SupportedCompileFlags; bad != 0 {
		return nil, &CompileError{
			Message: fmt.Sprintf("option bit(s) %s not supported by this engine", bad),
			Offset:  0,
		}
	}

	source, offsets := pattern, []int(nil)
	if flags&Extended != 0 {
		source, offsets = stripExtended(pattern)
	}
	tree, err := syntax.Parse(source, syntax.Perl)
	if err != nil {
		ce := compileErrorFrom(source, err)
		ce.Offset = originalOffset(offsets, ce.Offset)
		return nil, ce
	}
	if flags&DupNames == 0 {
		if at := duplicateName(source); at >= 0 {
			return nil, &CompileError{
				Message: "two named subpatterns have the same name",
				Offset:  originalOffset(offsets, at),
			}
		}
	}

	if flags&NoAutoCapture != 0 {
		source = dropUnnamedCaptures(tree).String()
	}
	source = applyCompileFlags(source, flags)

	re, err := coregex.Compile(source)
	if err != nil {
		// Parsed above, so this is a limit of the matcher itself.
		return nil, &CompileError{Message: err.Error(), Offset: 0}
	}

	p := &program{re: re, checkUTF8: flags&UTF8 != 0 && flags&NoUTF8Check == 0}
	for i, name := range re.SubexpNames() {
		if name == "" {
			continue
		}
		if p.names == nil {
			p.names = make(map[string]int)
		}
		if first, dup := p.names[name]; dup {
			if p.shared == nil {
				p.shared = make(map[string][]int)
			}
			if len(p.shared[name]) == 0 {
				p.shared[name] = []int{first}
			}
			p.shared[name] = append(p.shared[name], i)
			continue
		}
		p.names[name] = i
	}
	return p, nil
}

// namesFor resolves shared names to the first of their groups that took
// part in the match at loc, or the leftmost group when none did.
func (p *program) namesFor(loc []int) map[string]int {
	if len(p.shared) == 0 {
		return p.names
	}
	names := maps.Clone(p.names)
	for name, idxs := range p.shared {
		for _, i := range idxs {
			if loc[2*i] >= 0 {
				names[name] = i
				break
			}
		}
	}
	return names
}

// applyCompileFlags prefixes source with the inline flags and anchoring
// equivalent to flags.
func applyCompileFlags(source string, flags Flags) string {
	if flags&Anchored != 0 {
		source = `\A(?:` + source + `)`
	}
	var inline strings.Builder
	for _, f := range []struct {
		bit    Flags
		letter byte
	}{
		{Caseless, 'i'},
		{Multiline, 'm'},
		{Dotall, 's'},
		{Ungreedy, 'U'},
	} {
		if flags&f.bit != 0 {
			inline.WriteByte(f.letter)
		}
	}
	if inline.Len() == 0 {
		return source
	}
	return "(?" + inline.String() + ")" + source
}

// dropUnnamedCaptures turns unnamed capturing groups into plain groups and
// renumbers the remaining named groups.
func dropUnnamedCaptures(re *syntax.Regexp) *syntax.Regexp {
	next := 1
	var walk func(r *syntax.Regexp) *syntax.Regexp
	walk = func(r *syntax.Regexp) *syntax.Regexp {
		if r.Op == syntax.OpCapture && r.Name == "" {
			return walk(r.Sub[0])
		}
		if r.Op == syntax.OpCapture {
			r.Cap = next
			next++
		}
		for i, sub := range r.Sub {
			r.Sub[i] = walk(sub)
		}
		return r
	}
	return walk(re)
}

// Execute implements Engine.
func (c *Coregex) Execute(h Handle, subject string, flags Flags) (*Match, error) {
	p, ok := h.(*program)
	if !ok || p == nil {
		return nil, &rxerrors.EngineError{Op: "execute", Message: fmt.Sprintf("invalid handle of type %T", h)}
	}
	if p.released.Load() {
		return nil, &rxerrors.EngineError{Op: "execute", Message: "handle already released"}
	}
	if bad := flags &^ SupportedExecuteFlags; bad != 0 {
		return nil, &rxerrors.EngineError{
			Op:      "execute",
			Message: fmt.Sprintf("option bit(s) %s not supported by this engine", bad),
		}
	}
	if p.checkUTF8 && flags&NoUTF8Check == 0 && !utf8.ValidString(subject) {
		return nil, &rxerrors.EngineError{
			Op:      "execute",
			Message: fmt.Sprintf("subject is not valid UTF-8 at offset %d", invalidUTF8Offset(subject)),
		}
	}

	loc := p.find(subject, flags)
	if loc == nil {
		return &Match{Matched: false}, nil
	}

	groups := make([]*string, len(loc)/2)
	for i := range groups {
		start, end := loc[2*i], loc[2*i+1]
		if start < 0 || end < 0 {
			continue
		}
		s := subject[start:end]
		groups[i] = &s
	}
	return &Match{Matched: true, Groups: groups, Names: p.namesFor(loc)}, nil
}

// find returns the submatch indices of the first acceptable match.
func (p *program) find(subject string, flags Flags) []int {
	anchored := flags&Anchored != 0
	notEmpty := flags&NotEmpty != 0
	notEmptyAtStart := flags&NotEmptyAtStart != 0
	if !anchored && !notEmpty && !notEmptyAtStart {
		return p.re.FindStringSubmatchIndex(subject)
	}

	// Matches come back ordered by start position, so an anchored search
	// only has to inspect the ones starting at 0.
	for _, loc := range p.re.FindAllStringSubmatchIndex(subject, -1) {
		if anchored && loc[0] != 0 {
			return nil
		}
		empty := loc[0] == loc[1]
		if empty && (notEmpty || (notEmptyAtStart && loc[0] == 0)) {
			continue
		}
		return loc
	}
	return nil
}

// Release implements Engine.
func (c *Coregex) Release(h Handle) {
	if p, ok := h.(*program); ok && p != nil {
		p.released.Store(true)
	}
}
