package testutil

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/rxdoc/document"
	"github.com/erraggy/rxdoc/engine"
)

func TestNewSimpleDocument(t *testing.T) {
	doc := NewSimpleDocument()
	require.NoError(t, doc.Validate())
	require.Len(t, doc.Patterns, 1)
	assert.Equal(t, document.Literal(`^(?i)hello`), doc.Patterns[0].Value)
	require.Len(t, doc.Patterns[0].Execute, 1)
	assert.Equal(t, document.Literal("Hello!"), doc.Patterns[0].Execute[0].Subject)
}

func TestNewDetailedDocument(t *testing.T) {
	doc := NewDetailedDocument()
	require.NoError(t, doc.Validate())
	assert.Len(t, doc.Patterns, 3)
	assert.Len(t, doc.PatternStrings, 2)
	assert.Len(t, doc.SubjectStrings, 2)
	assert.Equal(t, "fixture", doc.Extra["meta"])
	assert.Empty(t, doc.Patterns[2].Execute, "third pattern has no subjects")
}

func TestWriteTempFiles(t *testing.T) {
	tests := []struct {
		name   string
		write  func(*testing.T, *document.Document) string
		format document.Format
	}{
		{"yaml", WriteTempYAML, document.FormatYAML},
		{"json", WriteTempJSON, document.FormatJSON},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			want := NewDetailedDocument()
			path := tt.write(t, want)

			got, format, err := document.DecodeFile(path)
			require.NoError(t, err)
			assert.Equal(t, tt.format, format)
			assert.Equal(t, want.PatternStrings, got.PatternStrings)
			assert.Equal(t, want.Patterns[0].Value, got.Patterns[0].Value)
			assert.Equal(t, "fixture", got.Extra["meta"])
		})
	}
}

func TestFakeEngine(t *testing.T) {
	boom := errors.New("boom")
	f := &FakeEngine{
		CompileErrors: map[string]error{"bad": &engine.CompileError{Message: "nope", Offset: 1}},
		ExecuteErrors: map[string]error{"explode": boom},
		Matches: map[string]*engine.Match{
			MatchKey("a", "abc"): {Matched: true, Groups: []*string{Str("a")}},
		},
	}

	_, err := f.Compile("bad", engine.Caseless)
	var ce *engine.CompileError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, 1, ce.Offset)

	h, err := f.Compile("a", 0)
	require.NoError(t, err)
	assert.Equal(t, 1, f.Live())

	m, err := f.Execute(h, "abc", 0)
	require.NoError(t, err)
	assert.True(t, m.Matched)

	m, err = f.Execute(h, "xyz", engine.NotEmpty)
	require.NoError(t, err)
	assert.False(t, m.Matched)

	_, err = f.Execute(h, "explode", 0)
	assert.ErrorIs(t, err, boom)

	f.Release(h)
	f.Release(h)
	assert.Equal(t, 0, f.Live())

	assert.Equal(t, []FakeCall{{Pattern: "bad", Flags: engine.Caseless}, {Pattern: "a"}}, f.Compiled())
	assert.Len(t, f.Executed(), 3)
	assert.Equal(t, engine.NotEmpty, f.Executed()[1].Flags)
	assert.False(t, engine.IsReentrant(f))
	assert.NotNil(t, f.Symbols())
}
