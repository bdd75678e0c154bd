// Package mcpserver serves the rxdoc pipeline to MCP (Model Context
// Protocol) clients over stdio.
package mcpserver

import (
	"context"
	"log/slog"

	"github.com/coregx/coregex"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/rxdoc"
	"github.com/erraggy/rxdoc/processor"
)

const serverInstructions = `rxdoc MCP server: compiles regular expressions and matches subjects against them, driven by rxdoc documents.

Tools:
- process: run a whole document (file or inline JSON/YAML) and get back the annotated document, stats and issues
- match: quick ad-hoc matching of a few patterns against a few subjects
- options: list the option names accepted in compile and execute option sets

Settings come from RXDOC_* environment variables in the MCP client config:
- RXDOC_CACHE_ENABLED (default: true): cache decoded documents per session
- RXDOC_CACHE_TTL (default: 15m): cache TTL for decoded documents
- RXDOC_CONCURRENCY (default: 1): patterns processed in parallel per call
- RXDOC_MAX_CONTENT_SIZE (default: 10MiB): maximum inline or file document size
- RXDOC_ISSUE_LIMIT (default: 100): issues returned per call when no limit is given
- RXDOC_MAX_LIMIT (default: 1000): upper bound on limit

Files are cached by path and modification time, so editing a file invalidates it. Inline content is cached by its BLAKE3 hash. Expired entries are swept every RXDOC_CACHE_SWEEP_INTERVAL (default: 60s).`

// Run serves until the client disconnects or ctx is done.
func Run(ctx context.Context) error {
	if cfg.CacheEnabled {
		docCache.startSweeper(ctx, cfg.CacheSweepInterval)
	}

	impl := &mcp.Implementation{Name: "rxdoc", Version: rxdoc.Version()}
	server := mcp.NewServer(impl, &mcp.ServerOptions{Instructions: serverInstructions})
	registerAllTools(server)
	return server.Run(ctx, &mcp.StdioTransport{})
}

func registerAllTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "process",
		Description: "Process an rxdoc document: compile every pattern, execute every subject against its compiled pattern and return the annotated document with compile/error/match/captures filled in. Failures local to one pattern or subject (out-of-range references, unknown option names, engine errors) are returned as issues and never abort the run. Option representations are normalized to canonical PCRE_* lists unless no_norm is set. Use offset/limit to paginate through issues.",
	}, handleProcess)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "match",
		Description: "Compile each pattern and match every subject against every pattern. Returns per-pattern compilation results (with error message and offset on failure) and per-subject match results with captured groups. compile_options and execute_options take option names such as caseless, multiline, anchored or notempty; the PCRE_ prefix is optional and '|' may join several names.",
	}, handleMatch)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "options",
		Description: "List the option names accepted in compile and execute option sets, with their PCRE bit values and aliases. Filter with namespace=compile or namespace=execute.",
	}, handleOptions)
}

// newProcessOptions applies the server settings to a processor run.
func newProcessOptions() []processor.Option {
	return []processor.Option{
		processor.WithConcurrency(cfg.Concurrency),
		processor.WithLogger(processor.NewSlogAdapter(slog.Default())),
	}
}

// paginate returns items[offset:offset+limit], clipped. A non-positive
// limit means cfg.IssueLimit; no page exceeds cfg.MaxLimit.
func paginate[T any](items []T, offset, limit int) []T {
	if offset < 0 || offset >= len(items) {
		return nil
	}
	if limit <= 0 {
		limit = cfg.IssueLimit
	}
	limit = min(limit, cfg.MaxLimit, len(items)-offset)
	return items[offset : offset+limit]
}

// makeSlice keeps empty results nil so omitempty drops them.
func makeSlice[T any](n int) []T {
	if n == 0 {
		return nil
	}
	return make([]T, 0, n)
}

// pathPattern finds absolute paths under common system roots.
var pathPattern = coregex.MustCompile(`(?:/(?:home|tmp|var|Users|etc|opt|usr|private|root|mnt|srv|run|snap|nix)[a-zA-Z0-9._/-]*)`)

// sanitizeError replaces absolute paths in err with "<path>".
func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	return pathPattern.ReplaceAllString(err.Error(), "<path>")
}

// errResult reports err to the client as a tool error.
func errResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: sanitizeError(err)}},
	}
}
