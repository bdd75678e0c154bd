package mcpserver

import (
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"github.com/zeebo/blake3"

	"github.com/erraggy/rxdoc/document"
)

// documentInput represents the two ways a document can be provided to a tool.
// Exactly one of File or Content must be set.
type documentInput struct {
	File    string `json:"file,omitempty"    jsonschema:"Path to an rxdoc document on disk (.json, .yaml or .yml)"`
	Content string `json:"content,omitempty" jsonschema:"Inline rxdoc document content (JSON or YAML)"`
}

// contentKey keys inline content by its BLAKE3 digest.
func contentKey(content string) string {
	sum := blake3.Sum256([]byte(content))
	return "content:" + hex.EncodeToString(sum[:])
}

// makeCacheKey returns "" for inputs that cannot be cached. File keys carry
// the modification time so an edited file misses.
func makeCacheKey(in documentInput) string {
	switch {
	case in.File != "":
		absPath, err := filepath.Abs(in.File)
		if err != nil {
			return ""
		}
		info, err := os.Stat(absPath)
		if err != nil {
			return ""
		}
		return fmt.Sprintf("file:%s:%d", absPath, info.ModTime().UnixNano())
	case in.Content != "":
		return contentKey(in.Content)
	default:
		return ""
	}
}

// resolve decodes the input, consulting the cache when it is enabled.
// Validation is left to the processor.
func (in documentInput) resolve() (*document.Document, error) {
	if (in.File == "") == (in.Content == "") {
		return nil, fmt.Errorf("exactly one of file or content must be provided")
	}
	if err := in.checkSize(); err != nil {
		return nil, err
	}

	key := ""
	if cfg.CacheEnabled {
		key = makeCacheKey(in)
	}
	if key != "" {
		if doc := docCache.get(key); doc != nil {
			return doc, nil
		}
	}

	doc, err := in.decode()
	if err != nil {
		return nil, err
	}
	if key != "" {
		docCache.put(key, doc, cfg.CacheTTL)
	}
	return doc, nil
}

func (in documentInput) checkSize() error {
	limit := cfg.MaxContentSize
	if in.Content != "" {
		if n := int64(len(in.Content)); n > limit {
			return fmt.Errorf("inline content size %d bytes exceeds maximum %d bytes; use file input instead, or set RXDOC_MAX_CONTENT_SIZE to increase", n, limit)
		}
		return nil
	}
	info, err := os.Stat(in.File)
	if err != nil {
		return err
	}
	if info.Size() > limit {
		return fmt.Errorf("file size %d bytes exceeds maximum %d bytes; set RXDOC_MAX_CONTENT_SIZE to increase", info.Size(), limit)
	}
	return nil
}

func (in documentInput) decode() (*document.Document, error) {
	if in.File != "" {
		doc, _, err := document.DecodeFile(in.File)
		return doc, err
	}
	return document.Decode([]byte(in.Content), document.FormatAuto)
}
