// Package loader reads schema documents from files, URLs and stdin, and
// resolves references to other documents next to the source.
package loader

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	jsonschematozod "github.com/gabrielbryk/json-schema-to-zod-sub001"
	"github.com/gabrielbryk/json-schema-to-zod-sub001/jsonschema"
	"github.com/gabrielbryk/json-schema-to-zod-sub001/zoderrors"
)

const (
	// MaxDocumentSize is the maximum size (in bytes) of any loaded document.
	MaxDocumentSize = 10 * 1024 * 1024 // 10MB

	// MaxCachedDocuments is the maximum number of external documents one
	// Resolver loads.
	MaxCachedDocuments = 100

	// DefaultTimeout bounds each HTTP request.
	DefaultTimeout = 30 * time.Second

	// StdinSource is the source name that reads from standard input.
	StdinSource = "-"
)

// Stdin is read when the source is StdinSource.
var Stdin io.Reader = os.Stdin

// HTTPClient is used for URL sources and references. Nil means a client
// with DefaultTimeout.
var HTTPClient *http.Client

// Document is a loaded source.
type Document struct {
	// Data is the raw document text.
	Data []byte
	// BaseURI is the absolute URI relative references resolve against:
	// a file:// URI for files, the URL for URLs, empty for stdin.
	BaseURI string
}

// Load reads source, which is a file path, an http(s) URL or "-".
func Load(ctx context.Context, source string) (*Document, error) {
	return LoadWithClient(ctx, source, HTTPClient)
}

// LoadWithClient is Load with the HTTP client used for URL sources.
func LoadWithClient(ctx context.Context, source string, client *http.Client) (*Document, error) {
	switch {
	case source == StdinSource:
		data, err := readLimited(Stdin, "stdin")
		if err != nil {
			return nil, err
		}
		return &Document{Data: data}, nil
	case IsURL(source):
		data, err := fetch(ctx, client, source)
		if err != nil {
			return nil, err
		}
		return &Document{Data: data, BaseURI: source}, nil
	}

	abs, err := filepath.Abs(source)
	if err != nil {
		return nil, fmt.Errorf("loader: failed to resolve path %s: %w", source, err)
	}
	data, err := readFile(abs)
	if err != nil {
		return nil, err
	}
	return &Document{Data: data, BaseURI: FileURI(abs)}, nil
}

// IsURL reports whether s is an http or https URL.
func IsURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

// FileURI returns the file:// URI of an absolute path.
func FileURI(abs string) string {
	return (&url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}).String()
}

func readFile(path string) ([]byte, error) {
	f, err := os.Open(path) //nolint:gosec // path is user-provided input
	if err != nil {
		return nil, fmt.Errorf("loader: failed to open %s: %w", path, err)
	}
	defer func() {
		_ = f.Close()
	}()
	return readLimited(f, path)
}

// readLimited reads r, failing when it holds more than MaxDocumentSize bytes.
func readLimited(r io.Reader, name string) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxDocumentSize+1))
	if err != nil {
		return nil, fmt.Errorf("loader: failed to read %s: %w", name, err)
	}
	if int64(len(data)) > MaxDocumentSize {
		return nil, &zoderrors.ResourceLimitError{
			ResourceType: "file_size",
			Limit:        MaxDocumentSize,
			Message:      name + " exceeds the maximum document size",
		}
	}
	return data, nil
}

func fetch(ctx context.Context, client *http.Client, rawURL string) ([]byte, error) {
	if client == nil {
		client = HTTPClient
	}
	if client == nil {
		client = &http.Client{Timeout: DefaultTimeout}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("loader: failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", jsonschematozod.UserAgent())
	req.Header.Set("Accept", "application/schema+json, application/json, application/yaml;q=0.9, */*;q=0.5")

	resp, err := client.Do(req) //nolint:gosec // URL is user-provided input
	if err != nil {
		return nil, fmt.Errorf("loader: failed to fetch URL: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("loader: HTTP %d: %s", resp.StatusCode, resp.Status)
	}
	return readLimited(resp.Body, rawURL)
}

// Resolver loads the documents that references point to. File references
// must stay inside the directory of the source document.
type Resolver struct {
	// Client fetches http and https references. Nil means HTTPClient.
	Client *http.Client

	ctx     context.Context
	baseDir string
	cache   map[string]jsonschema.Node
}

// NewResolver creates a Resolver for references found in the document
// loaded from baseURI.
func NewResolver(ctx context.Context, baseURI string) *Resolver {
	r := &Resolver{ctx: ctx, cache: make(map[string]jsonschema.Node)}
	if u, err := url.Parse(baseURI); err == nil && u.Scheme == "file" {
		r.baseDir = filepath.Dir(filepath.FromSlash(u.Path))
	}
	return r
}

// Resolve loads the document at uri. Schemes other than file, http and
// https are unknown and yield a nil node.
func (r *Resolver) Resolve(uri string) (jsonschema.Node, error) {
	if node, ok := r.cache[uri]; ok {
		return node, nil
	}
	u, err := url.Parse(uri)
	if err != nil {
		return nil, &zoderrors.ReferenceError{Ref: uri, RefType: "file", Message: "malformed URI", Cause: err}
	}

	var data []byte
	switch u.Scheme {
	case "http", "https":
		if err := r.reserve(); err != nil {
			return nil, err
		}
		data, err = fetch(r.ctx, r.Client, uri)
	case "file":
		if err := r.reserve(); err != nil {
			return nil, err
		}
		data, err = r.readFile(uri, filepath.FromSlash(u.Path))
	default:
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	node, err := jsonschema.Parse(data)
	if err != nil {
		return nil, &zoderrors.ParseError{Path: uri, Message: "invalid referenced document", Cause: err}
	}
	r.cache[uri] = node
	return node, nil
}

func (r *Resolver) reserve() error {
	if len(r.cache) >= MaxCachedDocuments {
		return &zoderrors.ResourceLimitError{
			ResourceType: "cached_documents",
			Limit:        MaxCachedDocuments,
			Actual:       int64(len(r.cache)),
			Message:      "too many external references",
		}
	}
	return nil
}

func (r *Resolver) readFile(uri, path string) ([]byte, error) {
	if r.baseDir == "" {
		return nil, &zoderrors.ReferenceError{Ref: uri, RefType: "file", Message: "file references require a file source"}
	}
	// Use filepath.Rel to detect path traversal attempts
	rel, err := filepath.Rel(r.baseDir, filepath.Clean(path))
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return nil, &zoderrors.ReferenceError{Ref: uri, RefType: "file", IsPathTraversal: true}
	}
	return readFile(path)
}
