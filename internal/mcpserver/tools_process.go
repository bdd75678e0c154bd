package mcpserver

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/rxdoc/document"
	"github.com/erraggy/rxdoc/engine"
	"github.com/erraggy/rxdoc/internal/issues"
	"github.com/erraggy/rxdoc/processor"
	"github.com/erraggy/rxdoc/resolver"
)

type processInput struct {
	Document documentInput `json:"document"            jsonschema:"The rxdoc document to process"`
	NoNorm   bool          `json:"no_norm,omitempty"   jsonschema:"Keep option representations as written instead of normalizing them"`
	Format   string        `json:"format,omitempty"    jsonschema:"Encoding of the returned document: json (default) or yaml"`
	Offset   int           `json:"offset,omitempty"    jsonschema:"Skip the first N issues (for pagination)"`
	Limit    int           `json:"limit,omitempty"     jsonschema:"Maximum number of issues to return (default 100)"`
}

type issueOutput struct {
	Kind     string `json:"kind"`
	Severity string `json:"severity"`
	Path     string `json:"path"`
	Pattern  int    `json:"pattern"`
	Entry    *int   `json:"entry,omitempty"`
	Message  string `json:"message"`
}

type processOutput struct {
	Document   string          `json:"document"`
	Format     string          `json:"format"`
	RunID      string          `json:"run_id"`
	Stats      processor.Stats `json:"stats"`
	IssueCount int             `json:"issue_count"`
	Returned   int             `json:"returned"`
	Issues     []issueOutput   `json:"issues,omitempty"`
}

// outputFormat maps the format argument onto the document codec.
func outputFormat(format string) (document.Format, error) {
	switch format {
	case "", "json":
		return document.FormatJSON, nil
	case "yaml":
		return document.FormatYAML, nil
	default:
		return "", fmt.Errorf("invalid format %q; valid formats: json, yaml", format)
	}
}

// runDocument normalizes (unless noNorm) and processes doc.
func runDocument(doc *document.Document, noNorm bool) (*processor.Result, error) {
	if !noNorm {
		doc, _ = resolver.NormalizeDocument(doc, engine.DefaultSymbols())
	}
	return processor.Process(doc, newProcessOptions()...)
}

// convertIssues renders issues for tool output.
func convertIssues(in []processor.Issue) []issueOutput {
	out := makeSlice[issueOutput](len(in))
	for _, is := range in {
		o := issueOutput{
			Kind:     is.Kind.String(),
			Severity: is.Severity.String(),
			Path:     is.Path,
			Pattern:  is.Pattern,
			Message:  pathPattern.ReplaceAllString(is.Message, "<path>"),
		}
		if is.Entry != issues.NoEntry {
			entry := is.Entry
			o.Entry = &entry
		}
		out = append(out, o)
	}
	return out
}

func handleProcess(_ context.Context, _ *mcp.CallToolRequest, input processInput) (*mcp.CallToolResult, processOutput, error) {
	format, err := outputFormat(input.Format)
	if err != nil {
		return errResult(err), processOutput{}, nil
	}

	doc, err := input.Document.resolve()
	if err != nil {
		return errResult(err), processOutput{}, nil
	}

	result, err := runDocument(doc, input.NoNorm)
	if err != nil {
		return errResult(err), processOutput{}, nil
	}

	data, err := document.Encode(result.Document, format)
	if err != nil {
		return errResult(err), processOutput{}, nil
	}

	output := processOutput{
		Document:   string(data),
		Format:     string(format),
		RunID:      result.RunID,
		Stats:      result.Stats,
		IssueCount: len(result.Issues),
		Issues:     paginate(convertIssues(result.Issues), input.Offset, input.Limit),
	}
	output.Returned = len(output.Issues)

	return nil, output, nil
}
