package mcpserver

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSchema(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "schema.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestSchemaInput_LoadFile(t *testing.T) {
	documentCache.reset()
	path := writeSchema(t, `{"type": "string"}`)

	doc, err := schemaInput{File: path}.load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, `{"type": "string"}`, string(doc.Data))
	assert.True(t, strings.HasPrefix(doc.BaseURI, "file://"))
}

func TestSchemaInput_LoadContent(t *testing.T) {
	documentCache.reset()
	doc, err := schemaInput{Content: "type: string"}.load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "type: string", string(doc.Data))
	assert.Empty(t, doc.BaseURI)
}

func TestSchemaInput_LoadNoneOrMultiple(t *testing.T) {
	_, err := schemaInput{}.load(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exactly one of file, url, or content must be provided")

	_, err = schemaInput{File: "a.json", Content: "{}"}.load(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "(got 2)")
}

func TestSchemaInput_LoadInlineSizeLimit(t *testing.T) {
	old := cfg.MaxInlineSize
	t.Cleanup(func() { cfg.MaxInlineSize = old })
	cfg.MaxInlineSize = 8

	_, err := schemaInput{Content: `{"type": "string"}`}.load(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JSZ_MAX_INLINE_SIZE")
}

func TestSchemaInput_LoadURLBlocksPrivateAddresses(t *testing.T) {
	documentCache.reset()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"type": "string"}`))
	}))
	defer srv.Close()

	_, err := schemaInput{URL: srv.URL + "/schema.json"}.load(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "blocked request")

	old := cfg.AllowPrivateIPs
	t.Cleanup(func() { cfg.AllowPrivateIPs = old })
	cfg.AllowPrivateIPs = true

	doc, err := schemaInput{URL: srv.URL + "/schema.json"}.load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, srv.URL+"/schema.json", doc.BaseURI)
}

func TestSchemaInput_LoadRejectsOtherSchemes(t *testing.T) {
	_, err := schemaInput{URL: "ftp://example.com/schema.json"}.load(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "http or https")
}

func TestDocumentCache_HitOnSameFile(t *testing.T) {
	documentCache.reset()
	input := schemaInput{File: writeSchema(t, `{"type": "number"}`)}

	first, err := input.load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, documentCache.size())

	second, err := input.load(context.Background())
	require.NoError(t, err)
	assert.Same(t, first, second, "expected same pointer from cache hit")
}

func TestDocumentCache_MissOnModifiedFile(t *testing.T) {
	documentCache.reset()
	path := writeSchema(t, `{"type": "number"}`)
	input := schemaInput{File: path}

	first, err := input.load(context.Background())
	require.NoError(t, err)

	later := time.Now().Add(2 * time.Second)
	require.NoError(t, os.WriteFile(path, []byte(`{"type": "boolean"}`), 0o600))
	require.NoError(t, os.Chtimes(path, later, later))

	second, err := input.load(context.Background())
	require.NoError(t, err)
	assert.NotSame(t, first, second)
	assert.Equal(t, `{"type": "boolean"}`, string(second.Data))
}

func TestDocumentCache_Eviction(t *testing.T) {
	c := &documentCacheStore{entries: make(map[string]*cacheEntry), maxSize: 2}
	c.putWithTTL("a", nil, time.Minute)
	time.Sleep(time.Millisecond)
	c.putWithTTL("b", nil, time.Minute)
	time.Sleep(time.Millisecond)
	c.putWithTTL("c", nil, time.Minute)

	assert.Equal(t, 2, c.size())
	_, hasA := c.entries["a"]
	assert.False(t, hasA, "oldest entry should be evicted")
}

func TestDocumentCache_Expiry(t *testing.T) {
	c := &documentCacheStore{entries: make(map[string]*cacheEntry), maxSize: 10}
	c.putWithTTL("short", nil, time.Nanosecond)
	c.putWithTTL("long", nil, time.Hour)
	time.Sleep(time.Millisecond)

	c.sweep()
	assert.Equal(t, 1, c.size())
	_, hasLong := c.entries["long"]
	assert.True(t, hasLong)
}

func TestDocumentCache_Sweeper(t *testing.T) {
	c := &documentCacheStore{entries: make(map[string]*cacheEntry), maxSize: 10}
	c.putWithTTL("short", nil, time.Nanosecond)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	c.startSweeper(ctx, 5*time.Millisecond)

	assert.Eventually(t, func() bool { return c.size() == 0 }, time.Second, 5*time.Millisecond)
}
