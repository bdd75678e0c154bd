package commands

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/erraggy/rxdoc/internal/pathutil"
)

// ProcessFlags contains flags for the process command
type ProcessFlags struct {
	Format      string
	Output      string
	NoNorm      bool
	Concurrency int
	Quiet       bool
	Verbose     bool
}

// SetupProcessFlags creates and configures a FlagSet for the process command.
// Returns the FlagSet and a ProcessFlags struct with bound flag variables.
func SetupProcessFlags() (*flag.FlagSet, *ProcessFlags) {
	fs := flag.NewFlagSet("process", flag.ContinueOnError)
	flags := &ProcessFlags{}

	fs.StringVar(&flags.Format, "format", FormatText, "output format: text, json, or yaml")
	fs.StringVar(&flags.Format, "f", FormatText, "output format: text, json, or yaml")
	fs.StringVar(&flags.Output, "output", "", "write the document to this file instead of stdout")
	fs.StringVar(&flags.Output, "o", "", "write the document to this file instead of stdout")
	fs.BoolVar(&flags.NoNorm, "no-norm", false, "do not normalize option representations before processing")
	fs.IntVar(&flags.Concurrency, "concurrency", 1, "number of patterns processed at once")
	fs.BoolVar(&flags.Quiet, "q", false, "quiet mode: only output the document, no diagnostic messages")
	fs.BoolVar(&flags.Quiet, "quiet", false, "quiet mode: only output the document, no diagnostic messages")
	fs.BoolVar(&flags.Verbose, "v", false, "log processing details to stderr")
	fs.BoolVar(&flags.Verbose, "verbose", false, "log processing details to stderr")

	fs.Usage = func() {
		Writef(fs.Output(), "Usage: rxdoc process [flags] <file|->\n\n")
		Writef(fs.Output(), "Compile and execute every pattern of an rxdoc document (JSON or YAML) and output the annotated document.\n\n")
		Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		Writef(fs.Output(), "\nOutput Formats:\n")
		Writef(fs.Output(), "  text (default)  Human-readable dump of patterns, subjects and captures\n")
		Writef(fs.Output(), "  json            Annotated document as JSON\n")
		Writef(fs.Output(), "  yaml            Annotated document as YAML\n")
		Writef(fs.Output(), "\nExamples:\n")
		Writef(fs.Output(), "  rxdoc process patterns.yaml\n")
		Writef(fs.Output(), "  rxdoc process --format json patterns.json > annotated.json\n")
		Writef(fs.Output(), "  cat patterns.yaml | rxdoc process -q --format yaml -\n")
		Writef(fs.Output(), "  rxdoc process --concurrency 8 --verbose large.yaml\n")
		Writef(fs.Output(), "  rxdoc process -f yaml -o annotated.yaml patterns.yaml\n")
		Writef(fs.Output(), "\nExit Codes:\n")
		Writef(fs.Output(), "  0    Every pattern and subject was processed\n")
		Writef(fs.Output(), "  1    Issues were reported, or the document is invalid\n")
	}

	return fs, flags
}

// HandleProcess executes the process command
func HandleProcess(args []string) (err error) {
	fs, flags := SetupProcessFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("process command requires exactly one file path or '-' for stdin")
	}

	// Validate flags early to fail fast before reading input
	if err := ValidateOutputFormat(flags.Format); err != nil {
		return err
	}
	if flags.Concurrency < 1 {
		return fmt.Errorf("invalid concurrency %d: must be at least 1", flags.Concurrency)
	}

	inputPath := fs.Arg(0)
	doc, size, err := readInput(inputPath)
	if err != nil {
		return err
	}

	result, err := runPipeline(doc, !flags.NoNorm, flags.Concurrency, newLogger(flags.Verbose))
	if err != nil {
		return fmt.Errorf("processing %s: %w", FormatInputPath(inputPath), err)
	}

	var out io.Writer = stdout
	if flags.Output != "" {
		path, err := pathutil.SanitizeOutputPath(flags.Output)
		if err != nil {
			return err
		}
		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600) //nolint:gosec // G304 - path validated by SanitizeOutputPath
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer func() {
			if cerr := f.Close(); cerr != nil && err == nil {
				err = fmt.Errorf("closing output file: %w", cerr)
			}
		}()
		out = f
	}

	return emit(out, result, flags.Format, flags.Quiet, "rxdoc Document Processor", FormatInputPath(inputPath), size)
}
