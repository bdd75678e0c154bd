package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/erraggy/rxdoc"
	"github.com/erraggy/rxdoc/cmd/rxdoc/commands"
)

// commandNames lists every subcommand, for typo suggestions.
var commandNames = []string{"process", "match", "options", "mcp", "version", "help"}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	var err error
	switch command {
	case "version", "-v", "--version":
		fmt.Printf("rxdoc %s\n", rxdoc.Version())
		if len(args) > 0 && (args[0] == "-l" || args[0] == "--long") {
			fmt.Println(rxdoc.BuildInfo())
		}
		return
	case "help", "-h", "--help":
		printUsage()
		return
	case "process":
		err = commands.HandleProcess(args)
	case "match":
		err = commands.HandleMatch(args)
	case "options":
		err = commands.HandleOptions(args)
	case "mcp":
		err = commands.HandleMCP(args)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		if s := suggestCommand(command); s != "" {
			fmt.Fprintf(os.Stderr, "Did you mean '%s'?\n", s)
		}
		fmt.Fprintln(os.Stderr)
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		if !errors.Is(err, commands.ErrIssuesReported) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

// suggestCommand returns the closest command name within an edit distance
// of 2, or "" when none is close enough.
func suggestCommand(input string) string {
	best, bestDist := "", 3
	for _, name := range commandNames {
		if d := editDistance(input, name); d < bestDist {
			best, bestDist = name, d
		}
	}
	return best
}

// editDistance is the Levenshtein distance between a and b.
func editDistance(a, b string) int {
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}

func printUsage() {
	fmt.Println(`rxdoc - Document-driven regular expression compiler and matcher

Usage:
  rxdoc <command> [options]

Commands:
  process     Compile and match every pattern of a JSON or YAML document
  match       Compile patterns given as arguments and match subjects against them
  options     List the option names accepted in option sets
  mcp         Serve rxdoc tools over the Model Context Protocol (stdio)
  version     Show version information (--long for build details)
  help        Show this help message

Examples:
  rxdoc process patterns.yaml
  cat patterns.json | rxdoc process --format json -
  rxdoc process -f yaml -o annotated.yaml patterns.yaml
  rxdoc match -i '^hello' -S 'Hello world'
  rxdoc options --format yaml

Run 'rxdoc <command> --help' for more information on a command.`)
}
