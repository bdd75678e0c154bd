package mcpserver

import (
	"context"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/rxdoc/document"
	"github.com/erraggy/rxdoc/internal/testutil"
	"github.com/erraggy/rxdoc/processor"
)

func TestProcessTool_File(t *testing.T) {
	docCache.reset()
	path := testutil.WriteTempYAML(t, testutil.NewDetailedDocument())

	result, output, err := handleProcess(context.Background(), &mcp.CallToolRequest{}, processInput{
		Document: documentInput{File: path},
	})
	require.NoError(t, err)
	require.Nil(t, result)

	assert.Equal(t, "json", output.Format)
	assert.NotEmpty(t, output.RunID)
	assert.Equal(t, processor.Stats{
		Patterns: 3, Compiled: 2, CompileFailures: 1,
		Entries: 4, Matched: 2, NotMatched: 1, Skipped: 1,
	}, output.Stats)
	assert.Zero(t, output.IssueCount)
	assert.Empty(t, output.Issues)

	doc, err := document.Decode([]byte(output.Document), document.FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, document.Bool(false), doc.Patterns[1].Compile)
	assert.Equal(t, []string{"PCRE_CASELESS", "PCRE_MULTILINE"}, doc.CompileOptions[0].Names)
}

func TestProcessTool_ContentYAML(t *testing.T) {
	docCache.reset()
	_, output, err := handleProcess(context.Background(), &mcp.CallToolRequest{}, processInput{
		Document: documentInput{Content: simpleYAML},
		Format:   "yaml",
	})
	require.NoError(t, err)
	assert.Equal(t, "yaml", output.Format)

	doc, err := document.Decode([]byte(output.Document), document.FormatYAML)
	require.NoError(t, err)
	assert.Equal(t, document.Bool(true), doc.Patterns[0].Execute[0].Match)
}

func TestProcessTool_NoNorm(t *testing.T) {
	docCache.reset()
	_, output, err := handleProcess(context.Background(), &mcp.CallToolRequest{}, processInput{
		Document: documentInput{Content: `{"compile_options": ["caseless"], "patterns": [{"value": "a", "options": 0}]}`},
		NoNorm:   true,
	})
	require.NoError(t, err)

	doc, err := document.Decode([]byte(output.Document), document.FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, []string{"caseless"}, doc.CompileOptions[0].Names)
	assert.Equal(t, document.Bool(true), doc.Patterns[0].Compile)
}

func TestProcessTool_CachedDocumentIsNotMutated(t *testing.T) {
	docCache.reset()
	input := processInput{Document: documentInput{Content: simpleYAML}}

	_, _, err := handleProcess(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)

	cached, err := input.Document.resolve()
	require.NoError(t, err)
	assert.Nil(t, cached.Patterns[0].Compile)
	assert.Nil(t, cached.Patterns[0].Execute[0].Match)
}

func TestProcessTool_Issues(t *testing.T) {
	docCache.reset()
	content := `{
  "subject_strings": ["x"],
  "patterns": [
    {"value": 4},
    {"value": "x", "options": "bogus"},
    {"value": "x", "execute": [{"subject": 9}, {"subject": 0}]}
  ]
}`

	t.Run("all issues", func(t *testing.T) {
		_, output, err := handleProcess(context.Background(), &mcp.CallToolRequest{}, processInput{
			Document: documentInput{Content: content},
		})
		require.NoError(t, err)
		assert.Equal(t, 3, output.IssueCount)
		assert.Equal(t, 3, output.Returned)
		require.Len(t, output.Issues, 3)

		assert.Equal(t, "ReferenceOutOfRange", output.Issues[0].Kind)
		assert.Equal(t, "error", output.Issues[0].Severity)
		assert.Equal(t, "patterns[0].value", output.Issues[0].Path)
		assert.Nil(t, output.Issues[0].Entry)

		assert.Equal(t, "UnknownOption", output.Issues[1].Kind)
		assert.Equal(t, 1, output.Issues[1].Pattern)

		assert.Equal(t, "patterns[2].execute[0].subject", output.Issues[2].Path)
		require.NotNil(t, output.Issues[2].Entry)
		assert.Equal(t, 0, *output.Issues[2].Entry)

		assert.Equal(t, 1, output.Stats.Matched)
	})

	t.Run("paginated", func(t *testing.T) {
		_, output, err := handleProcess(context.Background(), &mcp.CallToolRequest{}, processInput{
			Document: documentInput{Content: content},
			Offset:   1,
			Limit:    1,
		})
		require.NoError(t, err)
		assert.Equal(t, 3, output.IssueCount)
		assert.Equal(t, 1, output.Returned)
		assert.Equal(t, "UnknownOption", output.Issues[0].Kind)
	})
}

func TestProcessTool_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input processInput
	}{
		{"no document", processInput{}},
		{"bad format", processInput{Document: documentInput{Content: simpleYAML}, Format: "xml"}},
		{"malformed", processInput{Document: documentInput{Content: "{"}}},
		{"invalid document", processInput{Document: documentInput{Content: `{"patterns": []}`}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			docCache.reset()
			result, _, err := handleProcess(context.Background(), &mcp.CallToolRequest{}, tt.input)
			require.NoError(t, err)
			require.NotNil(t, result)
			assert.True(t, result.IsError)
		})
	}
}
