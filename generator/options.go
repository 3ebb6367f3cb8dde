package generator

import (
	"context"
	"fmt"

	json "github.com/goccy/go-json"
	"github.com/google/jsonschema-go/jsonschema"

	"github.com/gabrielbryk/json-schema-to-zod-sub001/internal/options"
	schema "github.com/gabrielbryk/json-schema-to-zod-sub001/jsonschema"
	"github.com/gabrielbryk/json-schema-to-zod-sub001/zoderrors"
)

// Option is a function that configures a generate operation
type Option func(*generateConfig) error

// generateConfig holds configuration for a generate operation
type generateConfig struct {
	// Input source (exactly one must be set)
	filePath *string
	data     []byte
	node     schema.Node
	hasNode  bool
	fromJSON bool
	ctx      context.Context
	baseURI  string

	gen *Generator
}

// GenerateWithOptions generates a Zod module using functional options.
//
// Example:
//
//	result, err := generator.GenerateWithOptions(
//	    generator.WithFilePath("schema.json"),
//	    generator.WithName("Pet"),
//	    generator.WithTypeExport(true),
//	)
func GenerateWithOptions(opts ...Option) (*GenerateResult, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, fmt.Errorf("generator: invalid options: %w", err)
	}

	switch {
	case cfg.filePath != nil:
		return cfg.gen.Generate(cfg.ctx, *cfg.filePath)
	case cfg.data != nil:
		return cfg.gen.generateBytes(cfg.data, cfg.baseURI)
	default:
		return cfg.gen.generate(cfg.node, cfg.baseURI, cfg.gen.URIResolver)
	}
}

// applyOptions applies option functions and validates configuration
func applyOptions(opts ...Option) (*generateConfig, error) {
	cfg := &generateConfig{
		ctx: context.Background(),
		gen: New(),
	}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	if err := options.ValidateSingleInputSource("generator",
		options.Source{Option: "WithFilePath", Set: cfg.filePath != nil},
		options.Source{Option: "WithBytes", Set: cfg.data != nil},
		options.Source{Option: "WithSchema", Set: cfg.hasNode},
		options.Source{Option: "WithJSONSchema", Set: cfg.fromJSON},
	); err != nil {
		return nil, err
	}
	return cfg, nil
}

// WithFilePath specifies a file path, URL or "-" (stdin) as the input source
func WithFilePath(path string) Option {
	return func(cfg *generateConfig) error {
		cfg.filePath = &path
		return nil
	}
}

// WithBytes specifies a JSON or YAML document as the input source
func WithBytes(data []byte) Option {
	return func(cfg *generateConfig) error {
		if data == nil {
			data = []byte{}
		}
		cfg.data = data
		return nil
	}
}

// WithSchema specifies a decoded schema as the input source
func WithSchema(node schema.Node) Option {
	return func(cfg *generateConfig) error {
		cfg.node = node
		cfg.hasNode = true
		return nil
	}
}

// WithJSONSchema specifies a schema built with github.com/google/jsonschema-go
// as the input source.
func WithJSONSchema(s *jsonschema.Schema) Option {
	return func(cfg *generateConfig) error {
		if s == nil {
			return &zoderrors.ConfigError{Option: "schema", Message: "schema cannot be nil"}
		}
		data, err := json.Marshal(s)
		if err != nil {
			return &zoderrors.ConfigError{Option: "schema", Message: "cannot encode schema", Cause: err}
		}
		node, err := schema.Parse(data)
		if err != nil {
			return &zoderrors.ConfigError{Option: "schema", Message: "cannot decode schema", Cause: err}
		}
		cfg.node = node
		cfg.fromJSON = true
		return nil
	}
}

// WithBaseURI sets the URI relative references in a WithBytes or
// WithSchema input resolve against. File path inputs use their location.
func WithBaseURI(uri string) Option {
	return func(cfg *generateConfig) error {
		cfg.baseURI = uri
		return nil
	}
}

// WithContext sets the context used for loading the input source
func WithContext(ctx context.Context) Option {
	return func(cfg *generateConfig) error {
		if ctx == nil {
			return &zoderrors.ConfigError{Option: "context", Message: "context cannot be nil"}
		}
		cfg.ctx = ctx
		return nil
	}
}

// WithName sets the top-level declaration name
func WithName(name string) Option {
	return func(cfg *generateConfig) error {
		cfg.gen.Name = name
		return nil
	}
}

// WithModule sets the output module convention
// Default: ModuleESM
func WithModule(m Module) Option {
	return func(cfg *generateConfig) error {
		cfg.gen.Module = m
		return nil
	}
}

// WithTypeExport enables the companion type alias for the top-level value
func WithTypeExport(enabled bool) Option {
	return func(cfg *generateConfig) error {
		cfg.gen.TypeExport = enabled
		return nil
	}
}

// WithImports enables or disables the zod import statement
// Default: true
func WithImports(enabled bool) Option {
	return func(cfg *generateConfig) error {
		cfg.gen.Imports = enabled
		return nil
	}
}

// WithUnknownFallback uses z.unknown() for schemas that accept anything
func WithUnknownFallback(enabled bool) Option {
	return func(cfg *generateConfig) error {
		cfg.gen.UnknownFallback = enabled
		return nil
	}
}

// WithStrictOneOf enforces exactly-one semantics for oneOf
func WithStrictOneOf(enabled bool) Option {
	return func(cfg *generateConfig) error {
		cfg.gen.StrictOneOf = enabled
		return nil
	}
}

// WithLiftInlineObjects extracts nested object schemas into declarations
func WithLiftInlineObjects(enabled bool) Option {
	return func(cfg *generateConfig) error {
		cfg.gen.LiftInlineObjects = enabled
		return nil
	}
}

// WithLiftDefs also lifts objects nested inside $defs declarations
func WithLiftDefs(enabled bool) Option {
	return func(cfg *generateConfig) error {
		cfg.gen.LiftDefs = enabled
		return nil
	}
}

// WithLiftNameFunc sets the naming hook for lifted objects
func WithLiftNameFunc(fn NameFunc) Option {
	return func(cfg *generateConfig) error {
		cfg.gen.LiftNameFunc = fn
		return nil
	}
}

// WithNameFunc sets the naming hook for every declaration
func WithNameFunc(fn NameFunc) Option {
	return func(cfg *generateConfig) error {
		cfg.gen.NameFunc = fn
		return nil
	}
}

// WithUnresolvedRefHook sets the observer for unresolvable references
func WithUnresolvedRefHook(fn UnresolvedRefFunc) Option {
	return func(cfg *generateConfig) error {
		cfg.gen.OnUnresolvedRef = fn
		return nil
	}
}

// WithUnknownFormatHook sets the observer for unknown format keywords
func WithUnknownFormatHook(fn UnknownFormatFunc) Option {
	return func(cfg *generateConfig) error {
		cfg.gen.OnUnknownFormat = fn
		return nil
	}
}

// WithURIResolver sets the loader for external documents
func WithURIResolver(fn URIResolver) Option {
	return func(cfg *generateConfig) error {
		cfg.gen.URIResolver = fn
		return nil
	}
}

// WithOverride sets the per-declaration translation override
func WithOverride(fn OverrideFunc) Option {
	return func(cfg *generateConfig) error {
		cfg.gen.Override = fn
		return nil
	}
}

// WithStrictMode fails generation on warnings
func WithStrictMode(enabled bool) Option {
	return func(cfg *generateConfig) error {
		cfg.gen.StrictMode = enabled
		return nil
	}
}

// WithIncludeInfo keeps or drops informational issues
// Default: true
func WithIncludeInfo(enabled bool) Option {
	return func(cfg *generateConfig) error {
		cfg.gen.IncludeInfo = enabled
		return nil
	}
}

// WithLogger sets the structured logger
func WithLogger(l Logger) Option {
	return func(cfg *generateConfig) error {
		if l == nil {
			l = NopLogger{}
		}
		cfg.gen.Logger = l
		return nil
	}
}
