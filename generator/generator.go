package generator

import (
	"context"
	"fmt"
	"time"

	"github.com/gabrielbryk/json-schema-to-zod-sub001/internal/issues"
	"github.com/gabrielbryk/json-schema-to-zod-sub001/internal/loader"
	"github.com/gabrielbryk/json-schema-to-zod-sub001/internal/naming"
	"github.com/gabrielbryk/json-schema-to-zod-sub001/internal/severity"
	"github.com/gabrielbryk/json-schema-to-zod-sub001/jsonschema"
	"github.com/gabrielbryk/json-schema-to-zod-sub001/zoderrors"
)

// Severity indicates the severity level of a generation issue
type Severity = severity.Severity

const (
	// SeverityInfo indicates informational messages about generation choices
	SeverityInfo = severity.SeverityInfo
	// SeverityWarning indicates schema parts that were translated loosely
	SeverityWarning = severity.SeverityWarning
	// SeverityError indicates schema errors
	SeverityError = severity.SeverityError
	// SeverityCritical indicates parts that could not be translated
	SeverityCritical = severity.SeverityCritical
)

// GenerateIssue represents a single generation issue or limitation
type GenerateIssue = issues.Issue

// Module selects the module convention of the output.
type Module string

const (
	// ModuleESM emits ES module exports.
	ModuleESM Module = "esm"
	// ModuleCJS emits a CommonJS module.exports assignment.
	ModuleCJS Module = "cjs"
	// ModuleNone emits plain statements.
	ModuleNone Module = "none"
)

// Declaration is one named declaration of the output.
type Declaration struct {
	// Name is the declared identifier.
	Name string
	// Pointer is the canonical pointer of the schema it was built from.
	Pointer string
	// Expression is the Zod construction code.
	Expression string
	// Type is the TypeScript type descriptor.
	Type string
	// Cyclic is true when the declaration belongs to a reference cycle.
	Cyclic bool
	// Dependencies are the declarations it references, explicit and inferred.
	Dependencies []string
}

// GenerateResult contains the results of generating validators from a schema
type GenerateResult struct {
	// Output is the generated module text.
	Output string
	// Name is the name of the top-level declaration.
	Name string
	// Declarations lists every declaration in output order.
	Declarations []Declaration
	// Lifted lists the names introduced by inline-object lifting.
	Lifted []string
	// Cycles lists the reference cycles, one sorted name list per cycle.
	Cycles [][]string
	// Issues contains all generation issues
	Issues []GenerateIssue
	// InfoCount is the total number of info messages
	InfoCount int
	// WarningCount is the total number of warnings
	WarningCount int
	// CriticalCount is the total number of critical issues
	CriticalCount int
	// Success is true if generation completed without critical issues
	Success bool
	// SourceFormat is the format of the source document
	SourceFormat jsonschema.Format
	// LoadTime is the time taken to load the source data
	LoadTime time.Duration
	// GenerateTime is the time taken to generate code
	GenerateTime time.Duration
}

// HasCriticalIssues returns true if there are any critical issues
func (r *GenerateResult) HasCriticalIssues() bool {
	return r.CriticalCount > 0
}

// HasWarnings returns true if there are any warnings
func (r *GenerateResult) HasWarnings() bool {
	return r.WarningCount > 0
}

// GetDeclaration returns the declaration called name, or nil.
func (r *GenerateResult) GetDeclaration(name string) *Declaration {
	for i := range r.Declarations {
		if r.Declarations[i].Name == name {
			return &r.Declarations[i]
		}
	}
	return nil
}

// URIResolver loads an external schema document by absolute URI. A nil
// node without error means the URI is unknown.
type URIResolver func(uri string) (jsonschema.Node, error)

// NameFunc proposes a declaration name for the schema at pointer. path
// holds the reference tokens from the nearest named ancestor. Returning ""
// declines.
type NameFunc func(pointer string, path []string) string

// UnresolvedRefFunc observes a reference that could not be resolved. path
// is the canonical pointer of the referencing schema.
type UnresolvedRefFunc func(ref, path string)

// UnknownFormatFunc observes a format keyword with no translation.
type UnknownFormatFunc func(format, path string)

// OverrideInfo describes the declaration an OverrideFunc is consulted for.
type OverrideInfo struct {
	Name    string
	Pointer string
}

// OverrideFunc replaces the translation of a declaration. It returns the
// Zod expression to use and true, or false to fall through to the default
// translation. The expression may reference other declarations by name.
type OverrideFunc func(node jsonschema.Node, info OverrideInfo) (string, bool)

// Generator turns JSON Schema documents into Zod validator modules. A
// Generator may be used concurrently: every call allocates its own state.
type Generator struct {
	// Name is the top-level declaration name. Empty means the schema title,
	// or "Schema", exported as the module default.
	Name string

	// Module selects the output module convention.
	// Default: ModuleESM
	Module Module

	// TypeExport adds "export type <Name>" for the top-level value.
	// Requires Name and ModuleESM.
	TypeExport bool

	// Imports emits the zod import statement.
	// Default: true
	Imports bool

	// UnknownFallback uses z.unknown() instead of z.any() for schemas
	// that accept anything.
	UnknownFallback bool

	// StrictOneOf enforces that exactly one oneOf member matches.
	StrictOneOf bool

	// LiftInlineObjects extracts nested object schemas into named
	// declarations.
	LiftInlineObjects bool

	// LiftDefs also lifts inside declarations from $defs/definitions.
	LiftDefs bool

	// LiftNameFunc names lifted objects.
	LiftNameFunc NameFunc

	// NameFunc names every declaration before title and path synthesis.
	NameFunc NameFunc

	// OnUnresolvedRef is called for each reference that cannot be resolved.
	OnUnresolvedRef UnresolvedRefFunc

	// OnUnknownFormat is called for each unrecognized format keyword.
	OnUnknownFormat UnknownFormatFunc

	// URIResolver loads documents for references to unknown URIs.
	URIResolver URIResolver

	// Override replaces the translation of individual declarations.
	Override OverrideFunc

	// StrictMode fails generation when any warning is reported.
	StrictMode bool

	// IncludeInfo keeps informational issues in the result.
	// Default: true
	IncludeInfo bool

	// Logger receives structured progress logs.
	Logger Logger
}

// New creates a new Generator instance with default settings
func New() *Generator {
	return &Generator{
		Module:      ModuleESM,
		Imports:     true,
		IncludeInfo: true,
		Logger:      NopLogger{},
	}
}

// Generate loads a schema from a file path, URL or "-" for stdin and
// generates its module. Relative references to other files or URLs are
// resolved next to the source unless URIResolver is set.
func (g *Generator) Generate(ctx context.Context, source string) (*GenerateResult, error) {
	loadStart := time.Now()
	doc, err := loader.Load(ctx, source)
	if err != nil {
		return nil, fmt.Errorf("generator: failed to load schema: %w", err)
	}
	loadTime := time.Since(loadStart)

	node, format, err := jsonschema.ParseWithFormat(doc.Data)
	if err != nil {
		return nil, fmt.Errorf("generator: %w", &zoderrors.ParseError{Path: source, Message: "invalid schema document", Cause: err})
	}

	resolver := g.URIResolver
	if resolver == nil && doc.BaseURI != "" {
		fetch := loader.NewResolver(ctx, doc.BaseURI)
		resolver = func(uri string) (jsonschema.Node, error) {
			return fetch.Resolve(uri)
		}
	}

	result, err := g.generate(node, doc.BaseURI, resolver)
	if result != nil {
		result.SourceFormat = format
		result.LoadTime = loadTime
	}
	return result, err
}

// GenerateBytes generates a module from a JSON or YAML document.
func (g *Generator) GenerateBytes(data []byte) (*GenerateResult, error) {
	return g.generateBytes(data, "")
}

func (g *Generator) generateBytes(data []byte, baseURI string) (*GenerateResult, error) {
	node, format, err := jsonschema.ParseWithFormat(data)
	if err != nil {
		return nil, fmt.Errorf("generator: %w", &zoderrors.ParseError{Message: "invalid schema document", Cause: err})
	}
	result, err := g.generate(node, baseURI, g.URIResolver)
	if result != nil {
		result.SourceFormat = format
	}
	return result, err
}

// GenerateSchema generates a module from a decoded schema.
func (g *Generator) GenerateSchema(node jsonschema.Node) (*GenerateResult, error) {
	return g.generate(node, "", g.URIResolver)
}

func (g *Generator) generate(node jsonschema.Node, baseURI string, resolver URIResolver) (*GenerateResult, error) {
	if err := g.validate(); err != nil {
		return nil, fmt.Errorf("generator: %w", err)
	}
	if !jsonschema.IsSchema(node) {
		return nil, fmt.Errorf("generator: %w", &zoderrors.ParseError{Message: fmt.Sprintf("schema must be an object or boolean, got %T", node)})
	}

	start := time.Now()
	result, err := newRun(g, node, baseURI, resolver).execute()
	if err != nil {
		return nil, fmt.Errorf("generator: %w", err)
	}
	result.GenerateTime = time.Since(start)
	g.updateCounts(result)
	result.Success = result.CriticalCount == 0

	if g.StrictMode && (result.CriticalCount > 0 || result.WarningCount > 0) {
		return result, fmt.Errorf("generator: generation failed in strict mode: %d critical issue(s), %d warning(s)",
			result.CriticalCount, result.WarningCount)
	}

	if !g.IncludeInfo {
		filtered := make([]GenerateIssue, 0, len(result.Issues))
		for _, issue := range result.Issues {
			if issue.Severity != SeverityInfo {
				filtered = append(filtered, issue)
			}
		}
		result.Issues = filtered
		result.InfoCount = 0
	}
	return result, nil
}

// validate rejects option combinations before any walk begins.
func (g *Generator) validate() error {
	switch g.Module {
	case ModuleESM, ModuleCJS, ModuleNone:
	default:
		return &zoderrors.ConfigError{Option: "module", Value: g.Module, Message: "must be one of esm, cjs, none"}
	}
	if g.Name != "" && !naming.IsIdentifier(g.Name) {
		return &zoderrors.ConfigError{Option: "name", Value: g.Name, Message: "is not a valid identifier"}
	}
	if g.TypeExport {
		if g.Name == "" {
			return &zoderrors.ConfigError{Option: "type", Value: true, Message: "a type export requires a name"}
		}
		if g.Module != ModuleESM {
			return &zoderrors.ConfigError{Option: "type", Value: true, Message: "a type export requires the esm module convention"}
		}
	}
	return nil
}

// updateCounts updates the issue counts in the result
func (g *Generator) updateCounts(result *GenerateResult) {
	result.InfoCount = 0
	result.WarningCount = 0
	result.CriticalCount = 0

	for _, issue := range result.Issues {
		switch issue.Severity {
		case SeverityInfo:
			result.InfoCount++
		case SeverityWarning:
			result.WarningCount++
		case SeverityCritical:
			result.CriticalCount++
		}
	}
}

func (g *Generator) log() Logger {
	if g.Logger == nil {
		return NopLogger{}
	}
	return g.Logger
}
