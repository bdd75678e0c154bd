package document

// metaKey is the pass-through key factories use for caller metadata.
const metaKey = "meta"

func withMeta(extra map[string]any, meta any) map[string]any {
	if meta == nil {
		return extra
	}
	if extra == nil {
		extra = make(map[string]any, 1)
	}
	extra[metaKey] = meta
	return extra
}

// CompileOnlyFactory builds documents that only compile patterns.
type CompileOnlyFactory struct {
	meta     any
	patterns []*Pattern
}

// NewCompileOnlyFactory returns a factory seeded with patterns, each
// compiled with options (which may be nil).
func NewCompileOnlyFactory(patterns []string, options *OptionSet, meta any) *CompileOnlyFactory {
	f := &CompileOnlyFactory{meta: meta}
	for _, p := range patterns {
		f.AddPattern(p, options, nil)
	}
	return f
}

// NewCompileOnly is shorthand for a compile-only document without metadata.
func NewCompileOnly(patterns []string, options *OptionSet) *Document {
	return NewCompileOnlyFactory(patterns, options, nil).Document()
}

// AddPattern appends a pattern with optional compile options and metadata.
func (f *CompileOnlyFactory) AddPattern(pattern string, options *OptionSet, meta any) {
	f.patterns = append(f.patterns, &Pattern{
		Value:   Literal(pattern),
		Options: options.Clone(),
		Extra:   withMeta(nil, meta),
	})
}

// Document returns a fresh document; the factory can keep being used.
func (f *CompileOnlyFactory) Document() *Document {
	d := &Document{Patterns: f.patterns, Extra: withMeta(nil, f.meta)}
	return d.Clone()
}

// OneSubjectFactory builds documents that match one subject against many
// patterns. The subject lives in subject_strings[0] and every pattern
// executes it by reference.
type OneSubjectFactory struct {
	subject  string
	meta     any
	patterns []*Pattern
}

// NewOneSubjectFactory returns a factory for subject.
func NewOneSubjectFactory(subject string, meta any) *OneSubjectFactory {
	return &OneSubjectFactory{subject: subject, meta: meta}
}

// AddPattern appends a pattern that executes the shared subject.
func (f *OneSubjectFactory) AddPattern(pattern string, options *OptionSet, meta any) {
	f.patterns = append(f.patterns, &Pattern{
		Value:   Literal(pattern),
		Options: options.Clone(),
		Execute: []*Execution{{Subject: Ref(0)}},
		Extra:   withMeta(nil, meta),
	})
}

// Len returns the number of patterns added so far.
func (f *OneSubjectFactory) Len() int {
	return len(f.patterns)
}

// Document returns a fresh document; the factory can keep being used.
func (f *OneSubjectFactory) Document() *Document {
	d := &Document{
		SubjectStrings: []string{f.subject},
		Patterns:       f.patterns,
		Extra:          withMeta(nil, f.meta),
	}
	return d.Clone()
}

// OnePatternFactory builds documents that match many subjects against a
// single pattern.
type OnePatternFactory struct {
	meta    any
	pattern *Pattern
}

// NewOnePatternFactory returns a factory for pattern compiled with options.
func NewOnePatternFactory(pattern string, options *OptionSet, meta any) *OnePatternFactory {
	return &OnePatternFactory{
		meta: meta,
		pattern: &Pattern{
			Value:   Literal(pattern),
			Options: options.Clone(),
			Execute: []*Execution{},
		},
	}
}

// AddSubject appends a subject with optional execute options and metadata.
func (f *OnePatternFactory) AddSubject(subject string, options *OptionSet, meta any) {
	f.pattern.Execute = append(f.pattern.Execute, &Execution{
		Subject: Literal(subject),
		Options: options.Clone(),
		Extra:   withMeta(nil, meta),
	})
}

// Len returns the number of subjects added so far.
func (f *OnePatternFactory) Len() int {
	return len(f.pattern.Execute)
}

// Document returns a fresh document; the factory can keep being used.
func (f *OnePatternFactory) Document() *Document {
	d := &Document{Patterns: []*Pattern{f.pattern}, Extra: withMeta(nil, f.meta)}
	return d.Clone()
}

// NewMatrix builds a document that executes every subject against every
// pattern. Patterns use compile_options[0] and entries use
// execute_options[0], which hold compileOptions and executeOptions as
// option lists. A pattern gets no execute entries when subjects is empty.
func NewMatrix(patterns, subjects, compileOptions, executeOptions []string) *Document {
	d := &Document{
		CompileOptions: []OptionSet{*OptionsList(compileOptions...)},
		ExecuteOptions: []OptionSet{*OptionsList(executeOptions...)},
		Patterns:       make([]*Pattern, 0, len(patterns)),
	}
	for _, p := range patterns {
		pat := &Pattern{Value: Literal(p), Options: OptionsRef(0)}
		for _, s := range subjects {
			pat.Execute = append(pat.Execute, &Execution{Subject: Literal(s), Options: OptionsRef(0)})
		}
		d.Patterns = append(d.Patterns, pat)
	}
	return d.Clone()
}
