package document

import (
	"fmt"
	"maps"

	"github.com/erraggy/rxdoc/internal/pathutil"
	"github.com/erraggy/rxdoc/rxerrors"
)

// Collection names as they appear in documents and error reports.
const (
	PatternStrings = "pattern_strings"
	SubjectStrings = "subject_strings"
	CompileOptions = "compile_options"
	ExecuteOptions = "execute_options"
)

// Document is a parsed rxdoc document.
type Document struct {
	PatternStrings []string    `yaml:"pattern_strings,omitempty" json:"pattern_strings,omitempty"`
	SubjectStrings []string    `yaml:"subject_strings,omitempty" json:"subject_strings,omitempty"`
	CompileOptions []OptionSet `yaml:"compile_options,omitempty" json:"compile_options,omitempty"`
	ExecuteOptions []OptionSet `yaml:"execute_options,omitempty" json:"execute_options,omitempty"`
	Patterns       []*Pattern  `yaml:"patterns" json:"patterns"`
	// Extra captures any other top-level key (e.g. "meta") for pass-through
	Extra map[string]any `yaml:",inline" json:"-"`
}

// Pattern is a regex to compile plus the subjects to execute against it.
type Pattern struct {
	Value   Value         `yaml:"value" json:"value"`
	Options *OptionSet    `yaml:"options,omitempty" json:"options,omitempty"`
	Compile *bool         `yaml:"compile,omitempty" json:"compile,omitempty"`
	Error   *CompileError `yaml:"error,omitempty" json:"error,omitempty"`
	Execute []*Execution  `yaml:"execute,omitempty" json:"execute,omitempty"`
	// Extra captures unknown keys for pass-through
	Extra map[string]any `yaml:",inline" json:"-"`
}

// Execution is one subject to match against its pattern.
type Execution struct {
	Subject  Value      `yaml:"subject" json:"subject"`
	Options  *OptionSet `yaml:"options,omitempty" json:"options,omitempty"`
	Match    *bool      `yaml:"match,omitempty" json:"match,omitempty"`
	Captures *Captures  `yaml:"captures,omitempty" json:"captures,omitempty"`
	// Extra captures unknown keys for pass-through
	Extra map[string]any `yaml:",inline" json:"-"`
}

// CompileError is the engine's report for a rejected pattern.
type CompileError struct {
	Message *string `yaml:"message" json:"message"`
	Offset  *int    `yaml:"offset" json:"offset"`
}

// NewCompileError returns a CompileError with both fields set.
func NewCompileError(message string, offset int) *CompileError {
	return &CompileError{Message: &message, Offset: &offset}
}

// Captures holds the groups bound by a successful match.
// Non-participating groups are nil.
type Captures struct {
	ByIndex []*string          `yaml:"by_index" json:"by_index"`
	ByName  map[string]*string `yaml:"by_name" json:"by_name"`
}

// Bool returns a pointer to b, for the optional output fields.
func Bool(b bool) *bool {
	return &b
}

// Clone returns a deep copy of the document.
// Extra values are copied shallowly; they are never written by processing.
func (d *Document) Clone() *Document {
	if d == nil {
		return nil
	}
	c := &Document{
		PatternStrings: cloneSlice(d.PatternStrings),
		SubjectStrings: cloneSlice(d.SubjectStrings),
		CompileOptions: cloneOptionSets(d.CompileOptions),
		ExecuteOptions: cloneOptionSets(d.ExecuteOptions),
		Extra:          maps.Clone(d.Extra),
	}
	if d.Patterns != nil {
		c.Patterns = make([]*Pattern, len(d.Patterns))
		for i, p := range d.Patterns {
			c.Patterns[i] = p.Clone()
		}
	}
	return c
}

// Clone returns a deep copy of the pattern.
func (p *Pattern) Clone() *Pattern {
	if p == nil {
		return nil
	}
	c := &Pattern{
		Value:   p.Value,
		Options: p.Options.Clone(),
		Compile: cloneBool(p.Compile),
		Error:   p.Error.Clone(),
		Extra:   maps.Clone(p.Extra),
	}
	if p.Execute != nil {
		c.Execute = make([]*Execution, len(p.Execute))
		for i, e := range p.Execute {
			c.Execute[i] = e.Clone()
		}
	}
	return c
}

// Clone returns a deep copy of the execution.
func (e *Execution) Clone() *Execution {
	if e == nil {
		return nil
	}
	return &Execution{
		Subject:  e.Subject,
		Options:  e.Options.Clone(),
		Match:    cloneBool(e.Match),
		Captures: e.Captures.Clone(),
		Extra:    maps.Clone(e.Extra),
	}
}

// Clone returns a deep copy of the compile error.
func (e *CompileError) Clone() *CompileError {
	if e == nil {
		return nil
	}
	c := &CompileError{}
	if e.Message != nil {
		m := *e.Message
		c.Message = &m
	}
	if e.Offset != nil {
		o := *e.Offset
		c.Offset = &o
	}
	return c
}

// Clone returns a deep copy of the captures.
func (c *Captures) Clone() *Captures {
	if c == nil {
		return nil
	}
	out := &Captures{
		ByIndex: make([]*string, len(c.ByIndex)),
		ByName:  make(map[string]*string, len(c.ByName)),
	}
	for i, v := range c.ByIndex {
		out.ByIndex[i] = cloneString(v)
	}
	for k, v := range c.ByName {
		out.ByName[k] = cloneString(v)
	}
	return out
}

// Validate checks the structural invariants processing relies on.
// It returns a *rxerrors.DocumentError for the first violation found.
func (d *Document) Validate() error {
	if d == nil {
		return &rxerrors.DocumentError{Message: "document is nil"}
	}
	if err := validateCollection(CompileOptions, d.CompileOptions); err != nil {
		return err
	}
	if err := validateCollection(ExecuteOptions, d.ExecuteOptions); err != nil {
		return err
	}
	if len(d.Patterns) == 0 {
		return &rxerrors.DocumentError{Path: "patterns", Message: "patterns must be a non-empty sequence"}
	}

	path := pathutil.Get()
	defer pathutil.Put(path)

	path.Push("patterns")
	for i, p := range d.Patterns {
		path.PushIndex(i)
		if p == nil {
			return &rxerrors.DocumentError{Path: path.String(), Message: "pattern must be a mapping"}
		}
		if err := validateValue(path, "value", p.Value); err != nil {
			return err
		}
		if err := validateOptionSet(path, p.Options); err != nil {
			return err
		}
		path.Push("execute")
		for j, e := range p.Execute {
			path.PushIndex(j)
			if e == nil {
				return &rxerrors.DocumentError{Path: path.String(), Message: "execute entry must be a mapping"}
			}
			if err := validateValue(path, "subject", e.Subject); err != nil {
				return err
			}
			if err := validateOptionSet(path, e.Options); err != nil {
				return err
			}
			path.Pop()
		}
		path.Pop()
		path.Pop()
	}
	return nil
}

func validateCollection(name string, sets []OptionSet) error {
	for i := range sets {
		switch sets[i].Kind {
		case OptionString, OptionList:
		case OptionRef:
			return &rxerrors.DocumentError{
				Path:    fmt.Sprintf("%s[%d]", name, i),
				Message: "option set collections cannot hold references",
			}
		default:
			return &rxerrors.DocumentError{
				Path:    fmt.Sprintf("%s[%d]", name, i),
				Message: "option set must be a string or a list of strings",
			}
		}
	}
	return nil
}

func validateValue(path *pathutil.PathBuilder, field string, v Value) error {
	path.Push(field)
	defer path.Pop()
	switch v.Kind {
	case ValueLiteral:
		return nil
	case ValueRef:
		if v.Index < 0 {
			return &rxerrors.DocumentError{Path: path.String(), Message: "reference must be non-negative"}
		}
		return nil
	default:
		return &rxerrors.DocumentError{Path: path.String(), Message: field + " is required"}
	}
}

func validateOptionSet(path *pathutil.PathBuilder, o *OptionSet) error {
	if o == nil {
		return nil
	}
	path.Push("options")
	defer path.Pop()
	switch o.Kind {
	case OptionString, OptionList:
		return nil
	case OptionRef:
		if o.Index < 0 {
			return &rxerrors.DocumentError{Path: path.String(), Message: "reference must be non-negative"}
		}
		return nil
	default:
		return &rxerrors.DocumentError{Path: path.String(), Message: "options must be a string, a list of strings or an integer"}
	}
}

func cloneSlice(s []string) []string {
	if s == nil {
		return nil
	}
	return append([]string(nil), s...)
}

func cloneOptionSets(sets []OptionSet) []OptionSet {
	if sets == nil {
		return nil
	}
	out := make([]OptionSet, len(sets))
	for i := range sets {
		out[i] = *sets[i].Clone()
	}
	return out
}

func cloneBool(b *bool) *bool {
	if b == nil {
		return nil
	}
	v := *b
	return &v
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
