package commands

import (
	"errors"
	"flag"
	"fmt"

	"github.com/erraggy/rxdoc/document"
	"github.com/erraggy/rxdoc/internal/cliutil"
	"github.com/erraggy/rxdoc/resolver"
)

// MatchFlags contains flags for the match command
type MatchFlags struct {
	Subjects       cliutil.StringList
	CompileOptions cliutil.StringList
	ExecuteOptions cliutil.StringList

	Caseless  bool
	DupNames  bool
	Multiline bool
	DotAll    bool
	Ungreedy  bool
	Extended  bool

	Format  string
	NoNorm  bool
	Quiet   bool
	Verbose bool
}

// SetupMatchFlags creates and configures a FlagSet for the match command.
// Returns the FlagSet and a MatchFlags struct with bound flag variables.
func SetupMatchFlags() (*flag.FlagSet, *MatchFlags) {
	fs := flag.NewFlagSet("match", flag.ContinueOnError)
	flags := &MatchFlags{}

	fs.Var(&flags.Subjects, "S", "subject to match against every pattern (repeatable)")
	fs.Var(&flags.Subjects, "subject", "subject to match against every pattern (repeatable)")
	fs.Var(&flags.CompileOptions, "co", "compile options, '|' separated (repeatable)")
	fs.Var(&flags.CompileOptions, "compile-options", "compile options, '|' separated (repeatable)")
	fs.Var(&flags.ExecuteOptions, "eo", "execute options, '|' separated (repeatable)")
	fs.Var(&flags.ExecuteOptions, "execute-options", "execute options, '|' separated (repeatable)")

	fs.BoolVar(&flags.Caseless, "i", false, "ignore case; same as (?i) or -co caseless")
	fs.BoolVar(&flags.DupNames, "J", false, "allow duplicate group names; same as -co dupnames")
	fs.BoolVar(&flags.Multiline, "m", false, "multiline; same as (?m) or -co multiline")
	fs.BoolVar(&flags.DotAll, "s", false, "dot matches newline; same as (?s) or -co dotall")
	fs.BoolVar(&flags.Ungreedy, "U", false, "ungreedy; same as (?U) or -co ungreedy")
	fs.BoolVar(&flags.Extended, "x", false, "free-spacing mode; same as -co extended")

	fs.StringVar(&flags.Format, "format", FormatText, "output format: text, json, or yaml")
	fs.StringVar(&flags.Format, "f", FormatText, "output format: text, json, or yaml")
	fs.BoolVar(&flags.NoNorm, "no-norm", false, "do not normalize option representations before processing")
	fs.BoolVar(&flags.Quiet, "q", false, "quiet mode: only output the result, no diagnostic messages")
	fs.BoolVar(&flags.Quiet, "quiet", false, "quiet mode: only output the result, no diagnostic messages")
	fs.BoolVar(&flags.Verbose, "v", false, "log processing details to stderr")
	fs.BoolVar(&flags.Verbose, "verbose", false, "log processing details to stderr")

	fs.Usage = func() {
		Writef(fs.Output(), "Usage: rxdoc match [flags] <pattern>... [-S subject]...\n\n")
		Writef(fs.Output(), "Compile patterns given as arguments and match every subject against each of them.\n\n")
		Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		Writef(fs.Output(), "\nOption Names:\n")
		Writef(fs.Output(), "  - PCRE_* names, e.g. PCRE_NO_AUTO_CAPTURE\n")
		Writef(fs.Output(), "  - the PCRE_ prefix is optional and case does not matter: no_auto_capture\n")
		Writef(fs.Output(), "  - several names per argument are separated with '|'\n")
		Writef(fs.Output(), "  - run 'rxdoc options' for the full list\n")
		Writef(fs.Output(), "\nExamples:\n")
		Writef(fs.Output(), "  rxdoc match -i '^hello' -S 'Hello world'\n")
		Writef(fs.Output(), "  rxdoc match '(?P<year>\\d{4})' '(\\d+)-(\\d+)' -S 2024-01 -S 1999\n")
		Writef(fs.Output(), "  rxdoc match -co 'anchored|no_auto_capture' -eo notempty 'a*' -S baa\n")
		Writef(fs.Output(), "  rxdoc match --format yaml 'x(' > rejected.yaml\n")
	}

	return fs, flags
}

// parseInterleaved parses flags that may appear before, between or after
// positional arguments and returns the positional arguments in order.
// Everything after a "--" terminator is positional.
func parseInterleaved(fs *flag.FlagSet, args []string) ([]string, error) {
	var positional []string
	for {
		if err := fs.Parse(args); err != nil {
			return nil, err
		}
		rest := fs.Args()
		if consumed := len(args) - len(rest); consumed > 0 && args[consumed-1] == "--" {
			return append(positional, rest...), nil
		}
		if len(rest) == 0 {
			return positional, nil
		}
		positional = append(positional, rest[0])
		args = rest[1:]
	}
}

// compileOptionNames returns the compile option names selected by the
// shorthand flags followed by every -co value.
func (f *MatchFlags) compileOptionNames() []string {
	var names []string
	for _, opt := range []struct {
		set  bool
		name string
	}{
		{f.Caseless, "PCRE_CASELESS"},
		{f.DupNames, "PCRE_DUPNAMES"},
		{f.Multiline, "PCRE_MULTILINE"},
		{f.DotAll, "PCRE_DOTALL"},
		{f.Ungreedy, "PCRE_UNGREEDY"},
		{f.Extended, "PCRE_EXTENDED"},
	} {
		if opt.set {
			names = append(names, opt.name)
		}
	}
	for _, v := range f.CompileOptions {
		names = append(names, resolver.SplitNames(v)...)
	}
	return names
}

func (f *MatchFlags) executeOptionNames() []string {
	var names []string
	for _, v := range f.ExecuteOptions {
		names = append(names, resolver.SplitNames(v)...)
	}
	return names
}

// HandleMatch executes the match command
func HandleMatch(args []string) error {
	fs, flags := SetupMatchFlags()

	patterns, err := parseInterleaved(fs, args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if len(patterns) == 0 {
		fs.Usage()
		return fmt.Errorf("match command requires at least one pattern")
	}

	if err := ValidateOutputFormat(flags.Format); err != nil {
		return err
	}

	doc := document.NewMatrix(patterns, flags.Subjects, flags.compileOptionNames(), flags.executeOptionNames())
	result, err := runPipeline(doc, !flags.NoNorm, 1, newLogger(flags.Verbose))
	if err != nil {
		return fmt.Errorf("processing patterns: %w", err)
	}

	return emit(stdout, result, flags.Format, flags.Quiet, "rxdoc Pattern Matcher", "", 0)
}
