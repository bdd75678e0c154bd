package mcpserver

import (
	"context"
	"errors"
	"maps"
	"slices"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/rxdoc/document"
	"github.com/erraggy/rxdoc/resolver"
)

type matchInput struct {
	Patterns       []string `json:"patterns"                  jsonschema:"Regular expressions to compile"`
	Subjects       []string `json:"subjects,omitempty"        jsonschema:"Subjects to match against every pattern"`
	CompileOptions []string `json:"compile_options,omitempty" jsonschema:"Compile option names applied to every pattern, e.g. caseless or PCRE_MULTILINE"`
	ExecuteOptions []string `json:"execute_options,omitempty" jsonschema:"Execute option names applied to every subject, e.g. notempty"`
	Offset         int      `json:"offset,omitempty"          jsonschema:"Skip the first N issues (for pagination)"`
	Limit          int      `json:"limit,omitempty"           jsonschema:"Maximum number of issues to return (default 100)"`
}

type captureOutput struct {
	Group int    `json:"group,omitempty"`
	Name  string `json:"name,omitempty"`
	Value string `json:"value"`
	// Set is false for groups that did not participate in the match.
	Set bool `json:"set"`
}

type subjectOutput struct {
	Subject  string          `json:"subject"`
	Matched  bool            `json:"matched"`
	Executed bool            `json:"executed"`
	Captures []captureOutput `json:"captures,omitempty"`
	Named    []captureOutput `json:"named,omitempty"`
}

type patternOutput struct {
	Pattern     string          `json:"pattern"`
	Compiled    bool            `json:"compiled"`
	Error       string          `json:"error,omitempty"`
	ErrorOffset *int            `json:"error_offset,omitempty"`
	Subjects    []subjectOutput `json:"subjects,omitempty"`
}

type matchOutput struct {
	Options    []string        `json:"options"`
	Patterns   []patternOutput `json:"patterns"`
	RunID      string          `json:"run_id"`
	IssueCount int             `json:"issue_count"`
	Returned   int             `json:"returned"`
	Issues     []issueOutput   `json:"issues,omitempty"`
}

// splitAll splits every '|' separated argument into single names.
func splitAll(args []string) []string {
	var names []string
	for _, a := range args {
		names = append(names, resolver.SplitNames(a)...)
	}
	return names
}

func handleMatch(_ context.Context, _ *mcp.CallToolRequest, input matchInput) (*mcp.CallToolResult, matchOutput, error) {
	if len(input.Patterns) == 0 {
		return errResult(errors.New("at least one pattern is required")), matchOutput{}, nil
	}

	doc := document.NewMatrix(input.Patterns, input.Subjects, splitAll(input.CompileOptions), splitAll(input.ExecuteOptions))
	result, err := runDocument(doc, false)
	if err != nil {
		return errResult(err), matchOutput{}, nil
	}

	out := result.Document
	output := matchOutput{
		Options:    []string{},
		Patterns:   make([]patternOutput, 0, len(out.Patterns)),
		RunID:      result.RunID,
		IssueCount: len(result.Issues),
		Issues:     paginate(convertIssues(result.Issues), input.Offset, input.Limit),
	}
	if len(out.CompileOptions) > 0 && out.CompileOptions[0].Kind == document.OptionList {
		output.Options = append(output.Options, out.CompileOptions[0].Names...)
	}
	output.Returned = len(output.Issues)

	for i, p := range out.Patterns {
		po := patternOutput{Pattern: input.Patterns[i]}
		if p.Compile != nil && *p.Compile {
			po.Compiled = true
			po.Subjects = makeSlice[subjectOutput](len(p.Execute))
			for j, e := range p.Execute {
				po.Subjects = append(po.Subjects, summarizeExecution(input.Subjects[j], e))
			}
		} else if p.Error != nil {
			if p.Error.Message != nil {
				po.Error = *p.Error.Message
			}
			po.ErrorOffset = p.Error.Offset
		}
		output.Patterns = append(output.Patterns, po)
	}

	return nil, output, nil
}

// summarizeExecution flattens an execute entry's outputs.
func summarizeExecution(subject string, e *document.Execution) subjectOutput {
	so := subjectOutput{Subject: subject, Executed: e.Match != nil}
	if e.Match == nil || !*e.Match {
		return so
	}
	so.Matched = true
	if e.Captures == nil {
		return so
	}

	so.Captures = makeSlice[captureOutput](len(e.Captures.ByIndex))
	for k, v := range e.Captures.ByIndex {
		so.Captures = append(so.Captures, newCapture(captureOutput{Group: k + 1}, v))
	}
	so.Named = makeSlice[captureOutput](len(e.Captures.ByName))
	for _, name := range slices.Sorted(maps.Keys(e.Captures.ByName)) {
		so.Named = append(so.Named, newCapture(captureOutput{Name: name}, e.Captures.ByName[name]))
	}
	return so
}

func newCapture(c captureOutput, v *string) captureOutput {
	if v != nil {
		c.Value = *v
		c.Set = true
	}
	return c
}
