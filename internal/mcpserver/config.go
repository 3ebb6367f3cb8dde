package mcpserver

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/gabrielbryk/json-schema-to-zod-sub001/generator"
)

// serverConfig holds all configurable MCP server defaults.
// Loaded once at startup from environment variables via loadConfig().
type serverConfig struct {
	// Cache settings.
	CacheEnabled       bool
	CacheMaxSize       int
	CacheFileTTL       time.Duration
	CacheURLTTL        time.Duration
	CacheContentTTL    time.Duration
	CacheSweepInterval time.Duration

	// Listing defaults for the analyze tool.
	ListLimit int
	MaxLimit  int

	// Generation defaults.
	Module          generator.Module
	StrictOneOf     bool
	UnknownFallback bool

	// Input limits.
	MaxInlineSize   int64
	AllowPrivateIPs bool
}

// cfg is the active server configuration, initialized at package load time.
var cfg = loadConfig()

// loadConfig reads configuration from JSZ_* environment variables.
// Invalid values log a warning and fall back to the hardcoded default.
func loadConfig() *serverConfig {
	return &serverConfig{
		CacheEnabled:       envBool("JSZ_CACHE_ENABLED", true),
		CacheMaxSize:       envInt("JSZ_CACHE_MAX_SIZE", 10),
		CacheFileTTL:       envDuration("JSZ_CACHE_FILE_TTL", 15*time.Minute),
		CacheURLTTL:        envDuration("JSZ_CACHE_URL_TTL", 5*time.Minute),
		CacheContentTTL:    envDuration("JSZ_CACHE_CONTENT_TTL", 15*time.Minute),
		CacheSweepInterval: envDuration("JSZ_CACHE_SWEEP_INTERVAL", 60*time.Second),
		ListLimit:          envInt("JSZ_LIST_LIMIT", 100),
		MaxLimit:           envInt("JSZ_MAX_LIMIT", 1000),
		Module:             envModule("JSZ_MODULE"),
		StrictOneOf:        envBool("JSZ_STRICT_ONEOF", false),
		UnknownFallback:    envBool("JSZ_UNKNOWN_FALLBACK", false),
		MaxInlineSize:      int64(envInt("JSZ_MAX_INLINE_SIZE", 10*1024*1024)),
		AllowPrivateIPs:    envBool("JSZ_ALLOW_PRIVATE_IPS", false),
	}
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		slog.Warn("invalid bool env var, using default", "key", key, "value", v, "default", fallback) //nolint:gosec // G706: values are structured log fields, not format strings
		return fallback
	}
	return b
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		slog.Warn("invalid int env var, using default", "key", key, "value", v, "default", fallback) //nolint:gosec // G706: values are structured log fields, not format strings
		return fallback
	}
	return n
}

func envModule(key string) generator.Module {
	v := generator.Module(os.Getenv(key))
	switch v {
	case "":
		return generator.ModuleESM
	case generator.ModuleESM, generator.ModuleCJS, generator.ModuleNone:
		return v
	}
	slog.Warn("invalid module env var, using default", "key", key, "value", v, "default", generator.ModuleESM) //nolint:gosec // G706: values are structured log fields, not format strings
	return generator.ModuleESM
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		slog.Warn("invalid duration env var, using default", "key", key, "value", v, "default", fallback) //nolint:gosec // G706: values are structured log fields, not format strings
		return fallback
	}
	return d
}
