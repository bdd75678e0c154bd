package mcpserver

import (
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/rxdoc/document"
	"github.com/erraggy/rxdoc/internal/testutil"
	"github.com/erraggy/rxdoc/rxerrors"
)

const simpleYAML = `patterns:
  - value: '^(?i)hello'
    execute:
      - subject: 'Hello!'
`

func TestDocumentInput_ResolveFile(t *testing.T) {
	docCache.reset()
	path := testutil.WriteTempYAML(t, testutil.NewDetailedDocument())

	doc, err := documentInput{File: path}.resolve()
	require.NoError(t, err)
	assert.Len(t, doc.Patterns, 3)
	assert.Equal(t, "fixture", doc.Extra["meta"])
}

func TestDocumentInput_ResolveContent(t *testing.T) {
	docCache.reset()
	doc, err := documentInput{Content: simpleYAML}.resolve()
	require.NoError(t, err)
	require.Len(t, doc.Patterns, 1)
	assert.Equal(t, document.Literal("^(?i)hello"), doc.Patterns[0].Value)
}

func TestDocumentInput_ResolveJSONContent(t *testing.T) {
	docCache.reset()
	doc, err := documentInput{Content: `{"subject_strings": ["x"], "patterns": [{"value": "x", "execute": [{"subject": 0}]}]}`}.resolve()
	require.NoError(t, err)
	assert.Equal(t, document.Ref(0), doc.Patterns[0].Execute[0].Subject)
}

func TestDocumentInput_ResolveErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   documentInput
		wantErr string
	}{
		{"none provided", documentInput{}, "exactly one of file or content must be provided"},
		{"both provided", documentInput{File: "a.yaml", Content: "b"}, "exactly one of file or content must be provided"},
		{"file not found", documentInput{File: "/nonexistent/doc.yaml"}, "no such file"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			docCache.reset()
			_, err := tt.input.resolve()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestDocumentInput_ResolveMalformed(t *testing.T) {
	docCache.reset()
	_, err := documentInput{Content: `{"patterns": [`}.resolve()
	require.Error(t, err)
	assert.ErrorIs(t, err, rxerrors.ErrInvalidDocument)
	assert.Equal(t, 0, docCache.size(), "failures are not cached")
}

func TestDocumentInput_ContentSizeLimit(t *testing.T) {
	docCache.reset()
	old := cfg.MaxContentSize
	cfg.MaxContentSize = 16
	t.Cleanup(func() { cfg.MaxContentSize = old })

	_, err := documentInput{Content: simpleYAML}.resolve()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exceeds maximum 16 bytes")

	path := testutil.WriteTempYAML(t, testutil.NewSimpleDocument())
	_, err = documentInput{File: path}.resolve()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "RXDOC_MAX_CONTENT_SIZE")
}

func TestDocCache_HitOnSameFile(t *testing.T) {
	docCache.reset()
	path := testutil.WriteTempJSON(t, testutil.NewSimpleDocument())
	input := documentInput{File: path}

	doc1, err := input.resolve()
	require.NoError(t, err)
	assert.Equal(t, 1, docCache.size())

	doc2, err := input.resolve()
	require.NoError(t, err)
	assert.Same(t, doc1, doc2, "expected same pointer from cache hit")
}

func TestDocCache_MissOnModifiedFile(t *testing.T) {
	docCache.reset()

	path := filepath.Join(t.TempDir(), "doc.yaml")
	require.NoError(t, os.WriteFile(path, []byte("patterns:\n  - value: 'v1'\n"), 0600))

	input := documentInput{File: path}
	doc1, err := input.resolve()
	require.NoError(t, err)
	assert.Equal(t, document.Literal("v1"), doc1.Patterns[0].Value)

	require.NoError(t, os.WriteFile(path, []byte("patterns:\n  - value: 'v2'\n"), 0600))

	// Ensure mtime differs from the first write on coarse-grained filesystems.
	future := time.Now().Add(2 * time.Second)
	require.NoError(t, os.Chtimes(path, future, future))

	doc2, err := input.resolve()
	require.NoError(t, err)
	assert.NotSame(t, doc1, doc2)
	assert.Equal(t, document.Literal("v2"), doc2.Patterns[0].Value)
}

func TestDocCache_ContentHash(t *testing.T) {
	docCache.reset()
	input := documentInput{Content: simpleYAML}

	doc1, err := input.resolve()
	require.NoError(t, err)
	doc2, err := input.resolve()
	require.NoError(t, err)
	assert.Same(t, doc1, doc2)

	assert.Equal(t, contentKey(simpleYAML), makeCacheKey(input))
	assert.NotEqual(t, contentKey(simpleYAML), contentKey(simpleYAML+" "))
	assert.Len(t, contentKey(""), len("content:")+64)
}

func TestDocCache_Disabled(t *testing.T) {
	docCache.reset()
	old := cfg.CacheEnabled
	cfg.CacheEnabled = false
	t.Cleanup(func() { cfg.CacheEnabled = old })

	input := documentInput{Content: simpleYAML}
	doc1, err := input.resolve()
	require.NoError(t, err)
	doc2, err := input.resolve()
	require.NoError(t, err)
	assert.NotSame(t, doc1, doc2)
	assert.Equal(t, 0, docCache.size())
}

func TestDocCache_LRUEviction(t *testing.T) {
	docCache.reset()

	var firstKey string
	for i := range docCache.maxSize + 1 {
		content := "patterns:\n  - value: 'p" + strconv.Itoa(i) + "'\n"
		if i == 0 {
			firstKey = makeCacheKey(documentInput{Content: content})
		}
		_, err := documentInput{Content: content}.resolve()
		require.NoError(t, err)
	}

	assert.Equal(t, docCache.maxSize, docCache.size())
	assert.Nil(t, docCache.get(firstKey), "expected oldest entry to be evicted")
}

func TestDocCache_Expiry(t *testing.T) {
	docCache.reset()
	doc := testutil.NewSimpleDocument()

	docCache.put("expired", doc, -time.Second)
	docCache.put("live", doc, time.Hour)
	assert.Equal(t, 2, docCache.size())

	docCache.sweep()
	assert.Equal(t, 1, docCache.size())
	assert.Nil(t, docCache.get("expired"))
	assert.Same(t, doc, docCache.get("live"))
}
