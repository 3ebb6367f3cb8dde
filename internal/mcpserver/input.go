package mcpserver

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gabrielbryk/json-schema-to-zod-sub001/generator"
	"github.com/gabrielbryk/json-schema-to-zod-sub001/internal/loader"
	"github.com/gabrielbryk/json-schema-to-zod-sub001/jsonschema"
)

// schemaInput represents the three ways a schema can be provided to a tool.
// Exactly one of File, URL, or Content must be set.
type schemaInput struct {
	File    string `json:"file,omitempty"    jsonschema:"Path to a JSON Schema file on disk"`
	URL     string `json:"url,omitempty"     jsonschema:"URL to fetch a JSON Schema document from"`
	Content string `json:"content,omitempty" jsonschema:"Inline JSON Schema document content (JSON or YAML)"`
}

// cacheEntry holds a loaded document with LRU ordering and TTL expiry.
type cacheEntry struct {
	doc       *loader.Document
	insertAt  time.Time
	expiresAt time.Time
}

// documentCacheStore provides a session-scoped cache for loaded documents.
// File inputs are keyed by (absolutePath, modTime). Content inputs are keyed
// by a SHA-256 hash. URL inputs are keyed by URL string.
type documentCacheStore struct {
	mu             sync.Mutex
	entries        map[string]*cacheEntry
	maxSize        int
	sweeperStarted atomic.Bool
}

var documentCache = &documentCacheStore{
	entries: make(map[string]*cacheEntry),
	maxSize: cfg.CacheMaxSize,
}

// get returns a cached document or nil. Expired entries are lazily removed.
func (c *documentCacheStore) get(key string) *loader.Document {
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.entries[key]; ok {
		if !e.expiresAt.IsZero() && time.Now().After(e.expiresAt) {
			delete(c.entries, key)
			return nil
		}
		e.insertAt = time.Now()
		return e.doc
	}
	return nil
}

// putWithTTL stores a document, evicting the least recently used entry if at capacity.
func (c *documentCacheStore) putWithTTL(key string, doc *loader.Document, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	entry := &cacheEntry{doc: doc, insertAt: now, expiresAt: now.Add(ttl)}

	if _, ok := c.entries[key]; ok {
		c.entries[key] = entry
		return
	}

	if len(c.entries) >= c.maxSize {
		var oldestKey string
		var oldestTime time.Time
		for k, e := range c.entries {
			if oldestKey == "" || e.insertAt.Before(oldestTime) {
				oldestKey = k
				oldestTime = e.insertAt
			}
		}
		if oldestKey != "" {
			delete(c.entries, oldestKey)
		}
	}

	c.entries[key] = entry
}

// sweep removes all expired entries from the cache.
func (c *documentCacheStore) sweep() {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := time.Now()
	for k, e := range c.entries {
		if !e.expiresAt.IsZero() && now.After(e.expiresAt) {
			delete(c.entries, k)
		}
	}
}

// startSweeper launches a background goroutine that periodically removes
// expired entries. Only the first call spawns a sweeper; it stops when ctx
// is cancelled.
func (c *documentCacheStore) startSweeper(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	if !c.sweeperStarted.CompareAndSwap(false, true) {
		return
	}
	go func() {
		defer c.sweeperStarted.Store(false)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				c.sweep()
			}
		}
	}()
}

// reset clears all cached entries. Used in tests.
func (c *documentCacheStore) reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*cacheEntry)
}

// size returns the number of cached entries.
func (c *documentCacheStore) size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// makeCacheKey creates a cache key for the given schema input.
func makeCacheKey(s schemaInput) string {
	switch {
	case s.File != "":
		absPath, err := filepath.Abs(s.File)
		if err != nil {
			return ""
		}
		info, err := os.Stat(absPath)
		if err != nil {
			return ""
		}
		return fmt.Sprintf("file:%s:%d", absPath, info.ModTime().UnixNano())
	case s.Content != "":
		h := sha256.Sum256([]byte(s.Content))
		return fmt.Sprintf("content:%s", hex.EncodeToString(h[:]))
	case s.URL != "":
		return fmt.Sprintf("url:%s", s.URL)
	default:
		return ""
	}
}

// load reads the schema document from whichever input was provided, using
// the cache for file, URL, and content inputs.
func (s schemaInput) load(ctx context.Context) (*loader.Document, error) {
	count := 0
	if s.File != "" {
		count++
	}
	if s.URL != "" {
		count++
	}
	if s.Content != "" {
		count++
	}
	if count != 1 {
		return nil, fmt.Errorf("exactly one of file, url, or content must be provided (got %d)", count)
	}

	if s.Content != "" && int64(len(s.Content)) > cfg.MaxInlineSize {
		return nil, fmt.Errorf("inline content size %d bytes exceeds maximum %d bytes; use file input instead, or set JSZ_MAX_INLINE_SIZE to increase",
			len(s.Content), cfg.MaxInlineSize)
	}

	var key string
	var ttl time.Duration
	if cfg.CacheEnabled {
		key = makeCacheKey(s)
		switch {
		case s.File != "":
			ttl = cfg.CacheFileTTL
		case s.URL != "":
			ttl = cfg.CacheURLTTL
		default:
			ttl = cfg.CacheContentTTL
		}
	}

	if key != "" {
		if cached := documentCache.get(key); cached != nil {
			return cached, nil
		}
	}

	var doc *loader.Document
	var err error
	switch {
	case s.File != "":
		doc, err = loader.Load(ctx, s.File)
	case s.URL != "":
		if !loader.IsURL(s.URL) {
			return nil, fmt.Errorf("url must use http or https: %s", s.URL)
		}
		doc, err = loader.LoadWithClient(ctx, s.URL, httpClient())
	default:
		doc = &loader.Document{Data: []byte(s.Content)}
	}
	if err != nil {
		return nil, err
	}

	if key != "" {
		documentCache.putWithTTL(key, doc, ttl)
	}
	return doc, nil
}

// httpClient returns the client for URL inputs and references. Nil means
// the loader default.
func httpClient() *http.Client {
	if cfg.AllowPrivateIPs {
		return nil
	}
	return newSafeHTTPClient()
}

// generationOptions are the generator settings a tool call selects.
type generationOptions struct {
	Name        string
	Module      string
	TypeExport  bool
	NoImports   bool
	StrictOneOf *bool
	Lift        bool
	LiftDefs    bool
}

// options builds generator options for doc. References to other documents
// are loaded next to the source; content inputs have no base and cannot
// follow relative references.
func (o generationOptions) options(ctx context.Context, doc *loader.Document) []generator.Option {
	module := cfg.Module
	if o.Module != "" {
		module = generator.Module(o.Module)
	}
	strict := cfg.StrictOneOf
	if o.StrictOneOf != nil {
		strict = *o.StrictOneOf
	}

	opts := []generator.Option{
		generator.WithBytes(doc.Data),
		generator.WithBaseURI(doc.BaseURI),
		generator.WithContext(ctx),
		generator.WithName(o.Name),
		generator.WithModule(module),
		generator.WithTypeExport(o.TypeExport),
		generator.WithImports(!o.NoImports),
		generator.WithStrictOneOf(strict),
		generator.WithUnknownFallback(cfg.UnknownFallback),
		generator.WithLiftInlineObjects(o.Lift || o.LiftDefs),
		generator.WithLiftDefs(o.LiftDefs),
	}
	if doc.BaseURI != "" {
		r := loader.NewResolver(ctx, doc.BaseURI)
		r.Client = httpClient()
		opts = append(opts, generator.WithURIResolver(func(uri string) (jsonschema.Node, error) {
			return r.Resolve(uri)
		}))
	}
	return opts
}
