// Package commands provides CLI command handlers for rxdoc.
package commands

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/erraggy/rxdoc"
	"github.com/erraggy/rxdoc/document"
	"github.com/erraggy/rxdoc/engine"
	"github.com/erraggy/rxdoc/internal/cliutil"
	"github.com/erraggy/rxdoc/processor"
	"github.com/erraggy/rxdoc/resolver"
)

// Output format constants
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// StdinFilePath is the special file path used to indicate reading from stdin.
const StdinFilePath = "-"

// ErrIssuesReported is returned by commands that completed but reported at
// least one issue. The caller exits with status 1 without printing it.
var ErrIssuesReported = errors.New("issues reported")

// Streams used by the handlers. Tests replace them.
var (
	stdin  io.Reader = os.Stdin
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

// Writef writes formatted output to the writer.
func Writef(w io.Writer, format string, args ...any) {
	cliutil.Writef(w, format, args...)
}

// ValidateOutputFormat validates an output format and returns an error if invalid.
func ValidateOutputFormat(format string) error {
	if format != FormatText && format != FormatJSON && format != FormatYAML {
		return fmt.Errorf("invalid format '%s'. Valid formats: %s, %s, %s", format, FormatText, FormatJSON, FormatYAML)
	}
	return nil
}

// documentFormat maps a structured output format onto the document codec.
func documentFormat(format string) document.Format {
	if format == FormatYAML {
		return document.FormatYAML
	}
	return document.FormatJSON
}

// OutputDocument writes doc to stdout in the given structured format.
func OutputDocument(doc *document.Document, format string) error {
	return writeDocument(stdout, doc, format)
}

func writeDocument(w io.Writer, doc *document.Document, format string) error {
	data, err := document.Encode(doc, documentFormat(format))
	if err != nil {
		return fmt.Errorf("encoding document as %s: %w", format, err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("writing document: %w", err)
	}
	return nil
}

// FormatInputPath returns a display-friendly path for the input document.
// Returns "<stdin>" if the path is StdinFilePath, otherwise returns the path as-is.
func FormatInputPath(path string) string {
	if path == StdinFilePath {
		return "<stdin>"
	}
	return path
}

// readInput reads the document at path, or stdin for StdinFilePath, and
// returns it with its size in bytes.
func readInput(path string) (*document.Document, int, error) {
	var data []byte
	var err error
	if path == StdinFilePath {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path) //nolint:gosec // G304 - reading the user's own input file
	}
	if err != nil {
		return nil, 0, fmt.Errorf("reading %s: %w", FormatInputPath(path), err)
	}
	format := document.FormatAuto
	if path != StdinFilePath {
		format = document.FormatFromPath(path)
	}
	doc, err := document.Decode(data, format)
	if err != nil {
		return nil, len(data), err
	}
	return doc, len(data), nil
}

// newLogger returns a processor logger writing to stderr. Verbose enables
// debug records; otherwise only warnings and errors are shown.
func newLogger(verbose bool) processor.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return processor.NewSlogAdapter(slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level})))
}

// runPipeline optionally normalizes options, then processes doc.
func runPipeline(doc *document.Document, normalize bool, concurrency int, logger processor.Logger) (*processor.Result, error) {
	if normalize {
		var rewritten int
		doc, rewritten = resolver.NormalizeDocument(doc, engine.DefaultSymbols())
		logger.Debug("options normalized", "rewritten", rewritten)
	}
	return processor.Process(doc,
		processor.WithConcurrency(concurrency),
		processor.WithLogger(logger),
	)
}

// outputHeader writes the diagnostic header shared by process and match.
func outputHeader(title, input string, size int, result *processor.Result) {
	Writef(stderr, "%s\n%s\n\n", title, strings.Repeat("=", len(title)))
	Writef(stderr, "rxdoc version: %s\n", rxdoc.Version())
	if input != "" {
		Writef(stderr, "Input: %s\n", input)
	}
	if size > 0 {
		Writef(stderr, "Input Size: %s\n", humanize.Bytes(uint64(size))) //nolint:gosec // G115 - size is a non-negative length
	}
	s := result.Stats
	Writef(stderr, "Patterns: %d (%d compiled, %d rejected)\n", s.Patterns, s.Compiled, s.CompileFailures)
	Writef(stderr, "Subjects: %d (%d matched, %d not matched, %d skipped)\n", s.Entries, s.Matched, s.NotMatched, s.Skipped)
	Writef(stderr, "Process Time: %v\n\n", result.ProcessTime)
}

// outputIssues writes the issue report to stderr.
func outputIssues(result *processor.Result) {
	if !result.HasIssues() {
		return
	}
	Writef(stderr, "Issues (%d):\n", len(result.Issues))
	for _, issue := range result.Issues {
		Writef(stderr, "  %s\n", issue.String())
	}
	Writef(stderr, "\n")
}

// emit writes result to out in the requested format and reports whether
// issues occurred through ErrIssuesReported. Diagnostics go to stderr.
func emit(out io.Writer, result *processor.Result, format string, quiet bool, title, input string, size int) error {
	if format == FormatJSON || format == FormatYAML {
		if err := writeDocument(out, result.Document, format); err != nil {
			return err
		}
		if !quiet {
			outputIssues(result)
		}
	} else {
		if !quiet {
			outputHeader(title, input, size, result)
		}
		WriteText(out, result.Document)
		outputIssues(result)
	}
	if result.HasIssues() {
		return ErrIssuesReported
	}
	return nil
}
