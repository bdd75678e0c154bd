package commands

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/rxdoc/document"
	"github.com/erraggy/rxdoc/internal/testutil"
	"github.com/erraggy/rxdoc/rxerrors"
)

func TestSetupProcessFlags(t *testing.T) {
	fs, flags := SetupProcessFlags()

	t.Run("default values", func(t *testing.T) {
		assert.Equal(t, FormatText, flags.Format)
		assert.Empty(t, flags.Output)
		assert.False(t, flags.NoNorm)
		assert.Equal(t, 1, flags.Concurrency)
		assert.False(t, flags.Quiet)
		assert.False(t, flags.Verbose)
	})

	t.Run("parse flags", func(t *testing.T) {
		args := []string{"--format", "yaml", "--no-norm", "--concurrency", "4", "-q", "-v", "doc.yaml"}
		require.NoError(t, fs.Parse(args))

		assert.Equal(t, FormatYAML, flags.Format)
		assert.True(t, flags.NoNorm)
		assert.Equal(t, 4, flags.Concurrency)
		assert.True(t, flags.Quiet)
		assert.True(t, flags.Verbose)
		assert.Equal(t, "doc.yaml", fs.Arg(0))
	})
}

func TestHandleProcess_ArgumentErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"no args", []string{}},
		{"two inputs", []string{"a.yaml", "b.yaml"}},
		{"bad format", []string{"--format", "xml", "a.yaml"}},
		{"bad concurrency", []string{"--concurrency", "0", "a.yaml"}},
		{"unknown flag", []string{"--bogus", "a.yaml"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			captureStreams(t, "")
			assert.Error(t, HandleProcess(tt.args))
		})
	}
}

func TestHandleProcess_Help(t *testing.T) {
	captureStreams(t, "")
	assert.NoError(t, HandleProcess([]string{"--help"}))
}

func TestHandleProcess_JSONFile(t *testing.T) {
	path := testutil.WriteTempYAML(t, testutil.NewDetailedDocument())
	out, errOut := captureStreams(t, "")

	require.NoError(t, HandleProcess([]string{"--format", "json", "-q", path}))
	assert.Empty(t, errOut.String())

	doc, err := document.Decode(out.Bytes(), document.FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, document.Bool(true), doc.Patterns[0].Compile)
	assert.Equal(t, document.Bool(false), doc.Patterns[1].Compile)
	assert.Equal(t, document.NewCompileError("missing closing )", 6), doc.Patterns[1].Error)

	// Options are normalized before processing.
	require.Len(t, doc.CompileOptions, 1)
	assert.Equal(t, []string{"PCRE_CASELESS", "PCRE_MULTILINE"}, doc.CompileOptions[0].Names)
	assert.Equal(t, "fixture", doc.Extra["meta"])
}

func TestHandleProcess_NoNorm(t *testing.T) {
	path := testutil.WriteTempJSON(t, testutil.NewDetailedDocument())
	out, _ := captureStreams(t, "")

	require.NoError(t, HandleProcess([]string{"--format", "json", "--no-norm", "-q", path}))

	doc, err := document.Decode(out.Bytes(), document.FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, document.OptionString, doc.CompileOptions[0].Kind)
	assert.Equal(t, "caseless|PCRE_MULTILINE", doc.CompileOptions[0].Text)
}

func TestHandleProcess_Stdin(t *testing.T) {
	input := `patterns:
  - value: '^(?i)hello'
    execute:
      - subject: 'Hello!'
`
	out, _ := captureStreams(t, input)
	require.NoError(t, HandleProcess([]string{"--format", "yaml", "-"}))

	doc, err := document.Decode(out.Bytes(), document.FormatYAML)
	require.NoError(t, err)
	assert.Equal(t, document.Bool(true), doc.Patterns[0].Execute[0].Match)
}

func TestHandleProcess_TextOutput(t *testing.T) {
	path := testutil.WriteTempYAML(t, testutil.NewDetailedDocument())
	out, errOut := captureStreams(t, "")

	require.NoError(t, HandleProcess([]string{path}))
	assert.Contains(t, errOut.String(), "rxdoc Document Processor")
	assert.Contains(t, errOut.String(), "Patterns: 3 (2 compiled, 1 rejected)")
	assert.Contains(t, out.String(), "Pattern #2: hello(")
	assert.Contains(t, out.String(), "Error offset: 6")
}

func TestHandleProcess_Issues(t *testing.T) {
	input := `{"patterns": [{"value": 3}, {"value": "a", "execute": [{"subject": "a"}]}]}`
	out, errOut := captureStreams(t, input)

	err := HandleProcess([]string{"--format", "json", "-"})
	require.ErrorIs(t, err, ErrIssuesReported)
	assert.Contains(t, errOut.String(), "Issues (1):")
	assert.Contains(t, errOut.String(), "patterns[0].value [ReferenceOutOfRange]")

	var raw map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &raw), "document is still written")
}

func TestHandleProcess_InvalidDocument(t *testing.T) {
	captureStreams(t, `{"patterns": []}`)
	err := HandleProcess([]string{"-"})
	require.Error(t, err)
	assert.ErrorIs(t, err, rxerrors.ErrInvalidDocument)
	assert.NotErrorIs(t, err, ErrIssuesReported)
}

func TestHandleProcess_OutputFile(t *testing.T) {
	input := testutil.WriteTempJSON(t, testutil.NewSimpleDocument())
	target := filepath.Join(t.TempDir(), "annotated.yaml")
	out, _ := captureStreams(t, "")

	require.NoError(t, HandleProcess([]string{"-f", "yaml", "-q", "-o", target, input}))
	assert.Empty(t, out.String(), "nothing written to stdout")

	doc, _, err := document.DecodeFile(target)
	require.NoError(t, err)
	assert.Equal(t, document.Bool(true), doc.Patterns[0].Execute[0].Match)
}

func TestHandleProcess_OutputFileRejected(t *testing.T) {
	input := testutil.WriteTempJSON(t, testutil.NewSimpleDocument())
	dir := t.TempDir()
	link := filepath.Join(dir, "link.json")
	require.NoError(t, os.Symlink(filepath.Join(dir, "real.json"), link))
	captureStreams(t, "")

	err := HandleProcess([]string{"-o", link, input})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "symlink")
}
