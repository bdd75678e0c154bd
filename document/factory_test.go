package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompileOnlyFactory(t *testing.T) {
	f := NewCompileOnlyFactory([]string{`^hello`, `goodbye$`}, OptionsList("PCRE_CASELESS"), 42)
	doc := f.Document()

	require.Len(t, doc.Patterns, 2)
	assert.Equal(t, Literal(`^hello`), doc.Patterns[0].Value)
	assert.Equal(t, []string{"PCRE_CASELESS"}, doc.Patterns[1].Options.Names)
	assert.Equal(t, 42, doc.Extra["meta"])

	f.AddPattern(`^(cat|dog)$`, nil, "meta")
	doc = f.Document()
	require.Len(t, doc.Patterns, 3)
	assert.Nil(t, doc.Patterns[2].Options)
	assert.Equal(t, "meta", doc.Patterns[2].Extra["meta"])
	require.NoError(t, doc.Validate())
}

func TestOneSubjectFactory(t *testing.T) {
	f := NewOneSubjectFactory("hello", map[string]any{"mykey": "myvar"})
	assert.Equal(t, 0, f.Len())

	f.AddPattern(`^hello`, nil, nil)
	f.AddPattern(`^hello`, OptionsList("PCRE_CASELESS"), nil)
	f.AddPattern(`goodbye$`, OptionsList("PCRE_CASELESS"), 42)
	assert.Equal(t, 3, f.Len())

	doc := f.Document()
	assert.Equal(t, []string{"hello"}, doc.SubjectStrings)
	require.Len(t, doc.Patterns, 3)
	for _, p := range doc.Patterns {
		require.Len(t, p.Execute, 1)
		assert.Equal(t, Ref(0), p.Execute[0].Subject)
	}
	assert.Equal(t, 42, doc.Patterns[2].Extra["meta"])

	// Entries are distinct so annotating one pattern leaves the others alone.
	doc.Patterns[0].Execute[0].Match = Bool(true)
	assert.Nil(t, doc.Patterns[1].Execute[0].Match)
}

func TestOnePatternFactory(t *testing.T) {
	f := NewOnePatternFactory(`^hello`, nil, map[string]any{"mykey": "myvar"})
	f.AddSubject("hello", nil, nil)
	f.AddSubject("Hello", OptionsList(), nil)
	f.AddSubject("HELLO", OptionsList("PCRE_CASELESS"), nil)
	f.AddSubject("HeLlO", nil, 42)
	assert.Equal(t, 4, f.Len())

	doc := f.Document()
	require.Len(t, doc.Patterns, 1)
	entries := doc.Patterns[0].Execute
	require.Len(t, entries, 4)
	assert.Equal(t, Literal("hello"), entries[0].Subject)
	assert.Equal(t, OptionList, entries[1].Options.Kind)
	assert.Empty(t, entries[1].Options.Names)
	assert.Equal(t, 42, entries[3].Extra["meta"])

	// Document returns a copy.
	entries[0].Subject = Literal("changed")
	assert.Equal(t, Literal("hello"), f.Document().Patterns[0].Execute[0].Subject)
}

func TestNewMatrix(t *testing.T) {
	doc := NewMatrix([]string{"a", "b"}, []string{"x", "y", "z"}, []string{"caseless|anchored"}, nil)
	require.NoError(t, doc.Validate())

	require.Len(t, doc.CompileOptions, 1)
	assert.Equal(t, []string{"caseless|anchored"}, doc.CompileOptions[0].Names)
	require.Len(t, doc.ExecuteOptions, 1)
	assert.Empty(t, doc.ExecuteOptions[0].Names)

	require.Len(t, doc.Patterns, 2)
	for _, p := range doc.Patterns {
		assert.Equal(t, OptionsRef(0), p.Options)
		require.Len(t, p.Execute, 3)
		for _, e := range p.Execute {
			assert.Equal(t, OptionsRef(0), e.Options)
		}
	}
	assert.Equal(t, Literal("z"), doc.Patterns[1].Execute[2].Subject)

	noSubjects := NewMatrix([]string{"a"}, nil, nil, nil)
	assert.Empty(t, noSubjects.Patterns[0].Execute)
}
