package commands

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"maps"
	"slices"
	"text/tabwriter"

	"go.yaml.in/yaml/v4"

	"github.com/erraggy/rxdoc/engine"
)

// OptionsFlags contains flags for the options command
type OptionsFlags struct {
	Format string
}

// OptionEntry is one row of the option table in structured output.
type OptionEntry struct {
	Name       string   `json:"name" yaml:"name"`
	Value      string   `json:"value" yaml:"value"`
	Namespaces []string `json:"namespaces" yaml:"namespaces"`
	Aliases    []string `json:"aliases,omitempty" yaml:"aliases,omitempty"`
}

// SetupOptionsFlags creates and configures a FlagSet for the options command.
func SetupOptionsFlags() (*flag.FlagSet, *OptionsFlags) {
	fs := flag.NewFlagSet("options", flag.ContinueOnError)
	flags := &OptionsFlags{}

	fs.StringVar(&flags.Format, "format", FormatText, "output format: text, json, or yaml")
	fs.StringVar(&flags.Format, "f", FormatText, "output format: text, json, or yaml")

	fs.Usage = func() {
		Writef(fs.Output(), "Usage: rxdoc options [flags]\n\n")
		Writef(fs.Output(), "List the option names accepted in compile and execute option sets.\n\n")
		Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
	}

	return fs, flags
}

// OptionTable returns the default option table as output rows, in table
// order.
func OptionTable() []OptionEntry {
	table := engine.DefaultSymbols()
	aliases := make(map[string][]string)
	for _, alias := range slices.Sorted(maps.Keys(table.Aliases())) {
		target := table.Aliases()[alias]
		aliases[target] = append(aliases[target], alias)
	}

	symbols := table.Symbols()
	out := make([]OptionEntry, 0, len(symbols))
	for _, sym := range symbols {
		entry := OptionEntry{
			Name:    sym.Name,
			Value:   sym.Value.String(),
			Aliases: aliases[sym.Name],
		}
		for _, ns := range []engine.Namespace{engine.NamespaceCompile, engine.NamespaceExecute} {
			if sym.Namespaces.Has(ns) {
				entry.Namespaces = append(entry.Namespaces, ns.String())
			}
		}
		out = append(out, entry)
	}
	return out
}

// HandleOptions executes the options command
func HandleOptions(args []string) error {
	fs, flags := SetupOptionsFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	if fs.NArg() != 0 {
		fs.Usage()
		return fmt.Errorf("options command takes no arguments")
	}
	if err := ValidateOutputFormat(flags.Format); err != nil {
		return err
	}

	entries := OptionTable()
	switch flags.Format {
	case FormatJSON:
		data, err := json.MarshalIndent(entries, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling to json: %w", err)
		}
		Writef(stdout, "%s\n", data)
	case FormatYAML:
		data, err := yaml.Marshal(entries)
		if err != nil {
			return fmt.Errorf("marshaling to yaml: %w", err)
		}
		Writef(stdout, "%s", data)
	default:
		tw := tabwriter.NewWriter(stdout, 0, 0, 2, ' ', 0)
		Writef(tw, "NAME\tVALUE\tNAMESPACES\tALIASES\n")
		for _, e := range entries {
			Writef(tw, "%s\t%s\t%s\t%s\n", e.Name, e.Value, joinOrDash(e.Namespaces), joinOrDash(e.Aliases))
		}
		if err := tw.Flush(); err != nil {
			return fmt.Errorf("writing option table: %w", err)
		}
	}
	return nil
}

func joinOrDash(items []string) string {
	if len(items) == 0 {
		return "-"
	}
	return fmt.Sprint(items)
}
