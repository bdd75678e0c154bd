package document

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v4"

	"github.com/erraggy/rxdoc/document/internal/jsonhelpers"
	"github.com/erraggy/rxdoc/rxerrors"
)

// Format is the serialization of a document.
type Format string

const (
	// FormatAuto detects JSON or YAML from the content.
	FormatAuto Format = ""
	// FormatJSON is JSON.
	FormatJSON Format = "json"
	// FormatYAML is YAML.
	FormatYAML Format = "yaml"
)

// ParseFormat maps a user-supplied name to a Format.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "auto":
		return FormatAuto, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return FormatAuto, fmt.Errorf("unknown document format %q (expected json or yaml)", name)
	}
}

// FormatFromPath returns the format implied by a file extension,
// or FormatAuto when the extension is not recognized.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatAuto
	}
}

// DetectFormat guesses the format from content: JSON starts with '{' or '['.
func DetectFormat(data []byte) Format {
	trimmed := bytes.TrimLeft(data, " \t\n\r")
	if len(trimmed) > 0 && (trimmed[0] == '{' || trimmed[0] == '[') {
		return FormatJSON
	}
	return FormatYAML
}

// Decode parses a document. FormatAuto detects the format from content.
// Decoding failures are returned as *rxerrors.DocumentError. Decode does
// not call [Document.Validate].
func Decode(data []byte, format Format) (*Document, error) {
	if format == FormatAuto {
		format = DetectFormat(data)
	}
	doc := &Document{}
	switch format {
	case FormatJSON:
		if err := json.Unmarshal(data, doc); err != nil {
			return nil, &rxerrors.DocumentError{Message: "malformed JSON", Cause: err}
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, doc); err != nil {
			return nil, &rxerrors.DocumentError{Message: "malformed YAML", Cause: err}
		}
	default:
		return nil, &rxerrors.DocumentError{Message: fmt.Sprintf("unsupported format %q", format)}
	}
	return doc, nil
}

// DecodeReader reads r fully and decodes it.
func DecodeReader(r io.Reader, format Format) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("document: failed to read input: %w", err)
	}
	return Decode(data, format)
}

// DecodeFile reads and decodes the file at path. The format comes from the
// extension, falling back to content detection. The detected format is
// returned so callers can write results back in kind.
func DecodeFile(path string) (*Document, Format, error) {
	data, err := os.ReadFile(path) //nolint:gosec // G304 - path is user-provided input (CLI)
	if err != nil {
		return nil, FormatAuto, fmt.Errorf("document: failed to read file: %w", err)
	}
	format := FormatFromPath(path)
	if format == FormatAuto {
		format = DetectFormat(data)
	}
	doc, err := Decode(data, format)
	if err != nil {
		return nil, format, err
	}
	return doc, format, nil
}

// Encode serializes a document. JSON is indented with two spaces and ends
// with a newline.
func Encode(doc *Document, format Format) ([]byte, error) {
	switch format {
	case FormatJSON, FormatAuto:
		out, err := jsonhelpers.MarshalIndent(doc, "  ")
		if err != nil {
			return nil, fmt.Errorf("document: failed to encode JSON: %w", err)
		}
		return append(out, '\n'), nil
	case FormatYAML:
		out, err := yaml.Marshal(doc)
		if err != nil {
			return nil, fmt.Errorf("document: failed to encode YAML: %w", err)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("document: unsupported format %q", format)
	}
}
