package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	jsonschematozod "github.com/gabrielbryk/json-schema-to-zod-sub001"
	"github.com/gabrielbryk/json-schema-to-zod-sub001/generator"
	"github.com/gabrielbryk/json-schema-to-zod-sub001/internal/cliutil"
)

// GenerateFlags contains flags for the generate command
type GenerateFlags struct {
	Output      string
	Name        string
	Module      string
	TypeExport  bool
	NoImports   bool
	Unknown     bool
	StrictOneOf bool
	Lift        bool
	LiftDefs    bool
	Strict      bool
	NoWarnings  bool
	Format      string
	Quiet       bool
	Verbose     bool
}

// SetupGenerateFlags creates and configures a FlagSet for the generate command.
// Returns the FlagSet and a GenerateFlags struct with bound flag variables.
func SetupGenerateFlags() (*flag.FlagSet, *GenerateFlags) {
	fs := flag.NewFlagSet("generate", flag.ContinueOnError)
	flags := &GenerateFlags{}

	fs.StringVar(&flags.Output, "o", "", "output file for the generated module (default: stdout)")
	fs.StringVar(&flags.Output, "output", "", "output file for the generated module (default: stdout)")
	fs.StringVar(&flags.Name, "n", "", "name of the top-level declaration (default: default export)")
	fs.StringVar(&flags.Name, "name", "", "name of the top-level declaration (default: default export)")
	fs.StringVar(&flags.Module, "m", string(generator.ModuleESM), "module convention: esm, cjs or none")
	fs.StringVar(&flags.Module, "module", string(generator.ModuleESM), "module convention: esm, cjs or none")
	fs.BoolVar(&flags.TypeExport, "type", false, "also export the inferred TypeScript type (requires --name and esm)")
	fs.BoolVar(&flags.NoImports, "no-imports", false, "omit the zod import statement")
	fs.BoolVar(&flags.Unknown, "unknown", false, "use z.unknown() instead of z.any() for schemas that accept anything")
	fs.BoolVar(&flags.StrictOneOf, "strict-oneof", false, "require exactly one oneOf member to match")
	fs.BoolVar(&flags.Lift, "lift", false, "lift inline object schemas into named declarations")
	fs.BoolVar(&flags.LiftDefs, "lift-defs", false, "also lift inside $defs and definitions declarations (implies --lift)")
	fs.BoolVar(&flags.Strict, "strict", false, "fail on any generation issues (even warnings)")
	fs.BoolVar(&flags.NoWarnings, "no-warnings", false, "suppress info messages")
	fs.StringVar(&flags.Format, "format", FormatText, "report format: text, json, or yaml")
	fs.BoolVar(&flags.Quiet, "q", false, "do not print the report")
	fs.BoolVar(&flags.Quiet, "quiet", false, "do not print the report")
	fs.BoolVar(&flags.Verbose, "verbose", false, "log generation progress to stderr")

	fs.Usage = func() {
		cliutil.Writef(fs.Output(), "Usage: json-schema-to-zod generate [flags] <file|url|->\n\n")
		cliutil.Writef(fs.Output(), "Generate a Zod validator module from a JSON Schema document.\n\n")
		cliutil.Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		cliutil.Writef(fs.Output(), "\nExamples:\n")
		cliutil.Writef(fs.Output(), "  json-schema-to-zod generate schema.json\n")
		cliutil.Writef(fs.Output(), "  json-schema-to-zod generate -n Pet --type -o pet.ts pet.schema.json\n")
		cliutil.Writef(fs.Output(), "  json-schema-to-zod generate --module cjs --lift https://example.com/schema.json\n")
		cliutil.Writef(fs.Output(), "  json-schema-to-zod generate --format json -o out.ts schema.yaml\n")
		cliutil.Writef(fs.Output(), "  cat schema.yaml | json-schema-to-zod generate -\n")
		cliutil.Writef(fs.Output(), "\nNotes:\n")
		cliutil.Writef(fs.Output(), "  - The module is written to stdout unless -o is given; the report goes to stderr\n")
		cliutil.Writef(fs.Output(), "  - Relative $ref values are resolved next to the source file or URL\n")
		cliutil.Writef(fs.Output(), "  - Recursive references are wrapped in z.lazy and annotated z.ZodTypeAny\n")
	}

	return fs, flags
}

// HandleGenerate executes the generate command
func HandleGenerate(args []string) error {
	return runGenerate(args, os.Stdout, os.Stderr)
}

func runGenerate(args []string, stdout, stderr io.Writer) error {
	fs, flags := SetupGenerateFlags()
	fs.SetOutput(stderr)

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("generate command requires exactly one file path, URL, or '-' for stdin")
	}
	source := fs.Arg(0)

	if err := ValidateOutputFormat(flags.Format); err != nil {
		return err
	}

	ctx := context.Background()
	opts := []generator.Option{
		generator.WithFilePath(source),
		generator.WithContext(ctx),
		generator.WithName(flags.Name),
		generator.WithModule(generator.Module(flags.Module)),
		generator.WithTypeExport(flags.TypeExport),
		generator.WithImports(!flags.NoImports),
		generator.WithUnknownFallback(flags.Unknown),
		generator.WithStrictOneOf(flags.StrictOneOf),
		generator.WithLiftInlineObjects(flags.Lift || flags.LiftDefs),
		generator.WithLiftDefs(flags.LiftDefs),
		generator.WithStrictMode(flags.Strict),
		generator.WithIncludeInfo(!flags.NoWarnings),
	}
	if flags.Verbose {
		handler := slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelDebug})
		opts = append(opts, generator.WithLogger(generator.NewSlogAdapter(slog.New(handler))))
	}

	startTime := time.Now()
	result, err := generator.GenerateWithOptions(opts...)
	totalTime := time.Since(startTime)
	if err != nil {
		if result != nil && !flags.Quiet {
			writeIssues(stderr, result)
		}
		return fmt.Errorf("generating module: %w", err)
	}

	module := result.Output
	if flags.Output == "" && !strings.HasSuffix(module, "\n") {
		module += "\n"
	}
	if err := writeOutput(stdout, flags.Output, []byte(module), []string{source}); err != nil {
		return err
	}

	if flags.Quiet {
		return nil
	}
	if flags.Format != FormatText {
		data, err := MarshalStructured(newGenerateReport(source, flags.Output, result), flags.Format)
		if err != nil {
			return err
		}
		cliutil.Writef(stderr, "%s\n", data)
		return nil
	}

	cliutil.Heading(stderr, "JSON Schema to Zod Generator")
	cliutil.Field(stderr, "json-schema-to-zod version", jsonschematozod.Version())
	cliutil.Field(stderr, "Schema", FormatSourcePath(source))
	cliutil.Field(stderr, "Source Format", result.SourceFormat)
	cliutil.Field(stderr, "Root", result.Name)
	cliutil.Field(stderr, "Declarations", len(result.Declarations))
	cliutil.Field(stderr, "Cycles", len(result.Cycles))
	cliutil.Field(stderr, "Lifted", len(result.Lifted))
	cliutil.Field(stderr, "Total Time", totalTime)
	cliutil.Writef(stderr, "\n")

	writeIssues(stderr, result)

	if flags.Output != "" {
		cliutil.Writef(stderr, "Output: %s (%d bytes)\n\n", flags.Output, len(module))
	}
	cliutil.Writef(stderr, "✓ Generation successful")
	if result.InfoCount > 0 || result.WarningCount > 0 {
		cliutil.Writef(stderr, " (%d info, %d warnings)", result.InfoCount, result.WarningCount)
	}
	cliutil.Writef(stderr, "\n")
	return nil
}

func writeIssues(w io.Writer, result *generator.GenerateResult) {
	if len(result.Issues) == 0 {
		return
	}
	cliutil.Writef(w, "Generation Issues (%d):\n", len(result.Issues))
	for _, issue := range result.Issues {
		cliutil.Writef(w, "  %s\n", issue.String())
	}
	cliutil.Writef(w, "\n")
}

// generateReport is the structured form of the generate report.
type generateReport struct {
	Schema       string              `json:"schema" yaml:"schema"`
	Output       string              `json:"output,omitempty" yaml:"output,omitempty"`
	Root         string              `json:"root" yaml:"root"`
	Declarations []declarationReport `json:"declarations" yaml:"declarations"`
	Cycles       [][]string          `json:"cycles,omitempty" yaml:"cycles,omitempty"`
	Lifted       []string            `json:"lifted,omitempty" yaml:"lifted,omitempty"`
	Issues       []string            `json:"issues,omitempty" yaml:"issues,omitempty"`
	InfoCount    int                 `json:"info_count" yaml:"info_count"`
	WarningCount int                 `json:"warning_count" yaml:"warning_count"`
}

type declarationReport struct {
	Name         string   `json:"name" yaml:"name"`
	Pointer      string   `json:"pointer" yaml:"pointer"`
	Cyclic       bool     `json:"cyclic,omitempty" yaml:"cyclic,omitempty"`
	Dependencies []string `json:"dependencies,omitempty" yaml:"dependencies,omitempty"`
}

func newGenerateReport(source, output string, result *generator.GenerateResult) generateReport {
	report := generateReport{
		Schema:       FormatSourcePath(source),
		Output:       output,
		Root:         result.Name,
		Cycles:       result.Cycles,
		Lifted:       result.Lifted,
		InfoCount:    result.InfoCount,
		WarningCount: result.WarningCount,
	}
	for _, d := range result.Declarations {
		report.Declarations = append(report.Declarations, declarationReport{
			Name:         d.Name,
			Pointer:      d.Pointer,
			Cyclic:       d.Cyclic,
			Dependencies: d.Dependencies,
		})
	}
	for _, issue := range result.Issues {
		report.Issues = append(report.Issues, issue.String())
	}
	return report
}
