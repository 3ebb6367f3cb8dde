// Package mcpserver implements an MCP (Model Context Protocol) server
// that exposes schema-to-Zod generation as MCP tools over stdio.
package mcpserver

import (
	"context"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	jsonschematozod "github.com/gabrielbryk/json-schema-to-zod-sub001"
)

const serverInstructions = `json-schema-to-zod MCP server: generates Zod validator modules from JSON Schema documents and reports their declaration structure.

Configuration: All defaults are configurable via JSZ_* environment variables set in your MCP client config.

Key settings:
- JSZ_MODULE (default: esm) - default module convention (esm, cjs, none)
- JSZ_STRICT_ONEOF (default: false) - require exactly one oneOf member to match
- JSZ_UNKNOWN_FALLBACK (default: false) - use z.unknown() instead of z.any()
- JSZ_CACHE_ENABLED (default: true) - disable document caching entirely
- JSZ_CACHE_FILE_TTL (default: 15m) - cache TTL for local files
- JSZ_CACHE_URL_TTL (default: 5m) - cache TTL for URL-fetched documents
- JSZ_LIST_LIMIT (default: 100) - default result limit for analyze
- JSZ_ALLOW_PRIVATE_IPS (default: false) - allow URL inputs on private networks

Caching: Loaded documents are cached per session. File entries use path+mtime as key (auto-invalidated on change).`

// Run starts the MCP server over stdio and blocks until the client disconnects
// or the context is cancelled.
func Run(ctx context.Context) error {
	if cfg.CacheEnabled {
		documentCache.startSweeper(ctx, cfg.CacheSweepInterval)
	}

	server := mcp.NewServer(
		&mcp.Implementation{Name: "json-schema-to-zod", Version: jsonschematozod.Version()},
		&mcp.ServerOptions{
			Instructions: serverInstructions,
		},
	)
	registerAllTools(server)
	return server.Run(ctx, &mcp.StdioTransport{})
}

func registerAllTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "generate",
		Description: "Generate a Zod validator module from a JSON Schema document. Every referenced schema becomes a named declaration, ordered so each is defined before use; recursive references are wrapped in z.lazy. Returns the module text, or writes it to output when given. Set name to export a named top-level declaration with an inferred TypeScript type.",
	}, handleGenerate)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "analyze",
		Description: "Analyze the declarations a JSON Schema document generates without returning the module. Lists each declaration with its source pointer, TypeScript type, dependencies and whether it is part of a reference cycle, plus the cycles themselves. Filter by name (supports * glob) or cyclic=true. Use offset/limit to paginate.",
	}, handleAnalyze)
}

// paginate applies offset/limit pagination to a slice, returning the
// requested page. A non-positive limit defaults to cfg.ListLimit.
func paginate[T any](items []T, offset, limit int) []T {
	if limit <= 0 {
		limit = cfg.ListLimit
	}
	if limit > cfg.MaxLimit {
		limit = cfg.MaxLimit
	}
	if offset < 0 || offset >= len(items) {
		return nil
	}
	end := offset + limit
	if end < offset || end > len(items) { // overflow or beyond slice
		end = len(items)
	}
	return items[offset:end]
}

// makeSlice returns nil when n is 0 (preserving omitempty JSON semantics),
// otherwise returns make([]T, 0, n) for pre-allocated appending.
func makeSlice[T any](n int) []T {
	if n == 0 {
		return nil
	}
	return make([]T, 0, n)
}

// sanitizeError strips absolute filesystem paths from error messages
// to prevent leaking internal directory structure to MCP clients.
var pathPattern = regexp.MustCompile(`(?:/(?:home|tmp|var|Users|etc|opt|usr|private|root|mnt|srv|run|snap|nix)[a-zA-Z0-9._/-]*)`)

func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	return pathPattern.ReplaceAllString(err.Error(), "<path>")
}

// errResult creates an MCP error result from an error.
func errResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: sanitizeError(err)}},
	}
}

// validateGlobPattern checks whether a glob pattern is syntactically valid.
// Call this once before a filter loop so matchGlobName never encounters an
// invalid pattern at match time.
func validateGlobPattern(pattern string) error {
	if pattern == "" || !strings.ContainsAny(pattern, "*?[") {
		return nil
	}
	if _, err := filepath.Match(pattern, ""); err != nil {
		return fmt.Errorf("invalid glob pattern %q: %w", pattern, err)
	}
	return nil
}

// matchGlobName reports whether name matches pattern. Patterns without
// glob characters match exactly.
func matchGlobName(name, pattern string) bool {
	if !strings.ContainsAny(pattern, "*?[") {
		return name == pattern
	}
	ok, _ := filepath.Match(pattern, name)
	return ok
}
