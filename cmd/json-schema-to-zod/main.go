package main

import (
	"fmt"
	"os"

	jsonschematozod "github.com/gabrielbryk/json-schema-to-zod-sub001"
	"github.com/gabrielbryk/json-schema-to-zod-sub001/cmd/json-schema-to-zod/commands"
	"github.com/gabrielbryk/json-schema-to-zod-sub001/internal/cliutil"
)

var commandNames = []string{"generate", "mcp", "version", "help"}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]

	var err error
	switch command {
	case "version", "-v", "--version":
		printVersion()
	case "help", "-h", "--help":
		printUsage()
	case "generate", "gen":
		err = commands.HandleGenerate(os.Args[2:])
	case "mcp":
		err = commands.HandleMCP(os.Args[2:])
	default:
		cliutil.Writef(os.Stderr, "Unknown command: %s\n", command)
		if suggestion := suggestCommand(command); suggestion != "" {
			cliutil.Writef(os.Stderr, "Did you mean '%s'?\n", suggestion)
		}
		cliutil.Writef(os.Stderr, "\n")
		printUsage()
		os.Exit(1)
	}
	if err != nil {
		cliutil.Writef(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printVersion() {
	fmt.Printf("json-schema-to-zod v%s\n", jsonschematozod.Version())
	fmt.Printf("commit: %s\n", jsonschematozod.Commit())
	fmt.Printf("built: %s\n", jsonschematozod.BuildTime())
	fmt.Printf("go: %s\n", jsonschematozod.GoVersion())
}

// suggestCommand returns the known command closest to input, or "" when
// none is within an edit distance of 2.
func suggestCommand(input string) string {
	best, bestDist := "", 3
	for _, name := range commandNames {
		if d := levenshtein(input, name); d < bestDist {
			best, bestDist = name, d
		}
	}
	return best
}

func levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	prev := make([]int, len(rb)+1)
	cur := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(ra); i++ {
		cur[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			cur[j] = min(prev[j]+1, cur[j-1]+1, prev[j-1]+cost)
		}
		prev, cur = cur, prev
	}
	return prev[len(rb)]
}

func printUsage() {
	fmt.Println(`json-schema-to-zod - Generate Zod validators from JSON Schema

Usage:
  json-schema-to-zod <command> [options]

Commands:
  generate    Generate a Zod module from a schema file, URL or stdin
  mcp         Run the MCP server over stdio
  version     Show version information
  help        Show this help message

Examples:
  json-schema-to-zod generate schema.json
  json-schema-to-zod generate -n Pet --type -o pet.ts pet.schema.json
  json-schema-to-zod generate --module cjs --lift https://example.com/schema.json
  cat schema.yaml | json-schema-to-zod generate -

Run 'json-schema-to-zod <command> --help' for more information on a command.`)
}
