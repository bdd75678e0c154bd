package mcpserver

import (
	"context"
	"fmt"
	"maps"
	"slices"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/rxdoc/engine"
)

type optionsInput struct {
	Namespace string `json:"namespace,omitempty" jsonschema:"Only list options valid in this namespace: compile or execute"`
}

type optionOutput struct {
	Name       string   `json:"name"`
	Value      string   `json:"value"`
	Namespaces []string `json:"namespaces"`
	Aliases    []string `json:"aliases,omitempty"`
}

type optionsOutput struct {
	Count   int            `json:"count"`
	Options []optionOutput `json:"options"`
}

var namespaces = []engine.Namespace{engine.NamespaceCompile, engine.NamespaceExecute}

func handleOptions(_ context.Context, _ *mcp.CallToolRequest, input optionsInput) (*mcp.CallToolResult, optionsOutput, error) {
	var filter engine.Namespace
	switch input.Namespace {
	case "":
	case "compile":
		filter = engine.NamespaceCompile
	case "execute":
		filter = engine.NamespaceExecute
	default:
		return errResult(fmt.Errorf("invalid namespace %q; valid values: compile, execute", input.Namespace)), optionsOutput{}, nil
	}

	table := engine.DefaultSymbols()
	aliases := table.Aliases()
	byTarget := make(map[string][]string)
	for _, alias := range slices.Sorted(maps.Keys(aliases)) {
		byTarget[aliases[alias]] = append(byTarget[aliases[alias]], alias)
	}

	output := optionsOutput{Options: []optionOutput{}}
	for _, sym := range table.Symbols() {
		if filter != 0 && !sym.Namespaces.Has(filter) {
			continue
		}
		o := optionOutput{
			Name:       sym.Name,
			Value:      sym.Value.String(),
			Namespaces: []string{},
			Aliases:    byTarget[sym.Name],
		}
		for _, ns := range namespaces {
			if sym.Namespaces.Has(ns) {
				o.Namespaces = append(o.Namespaces, ns.String())
			}
		}
		output.Options = append(output.Options, o)
	}
	output.Count = len(output.Options)

	return nil, output, nil
}
