package mcpserver

import (
	"log/slog"
	"math"
	"os"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
)

// serverConfig is read once from RXDOC_* variables when the package loads.
type serverConfig struct {
	// Cache settings.
	CacheEnabled       bool
	CacheMaxSize       int
	CacheTTL           time.Duration
	CacheSweepInterval time.Duration

	// Processing defaults.
	Concurrency int

	// Input and output limits.
	MaxContentSize int64
	IssueLimit     int
	MaxLimit       int
}

var cfg = loadConfig()

func loadConfig() *serverConfig {
	return &serverConfig{
		CacheEnabled:       envBool("RXDOC_CACHE_ENABLED", true),
		CacheMaxSize:       envInt("RXDOC_CACHE_MAX_SIZE", 10),
		CacheTTL:           envDuration("RXDOC_CACHE_TTL", 15*time.Minute),
		CacheSweepInterval: envDuration("RXDOC_CACHE_SWEEP_INTERVAL", 60*time.Second),
		Concurrency:        envInt("RXDOC_CONCURRENCY", 1),
		MaxContentSize:     envBytes("RXDOC_MAX_CONTENT_SIZE", 10*1024*1024),
		IssueLimit:         envInt("RXDOC_ISSUE_LIMIT", 100),
		MaxLimit:           envInt("RXDOC_MAX_LIMIT", 1000),
	}
}

// envOr parses the variable key with parse. Unset variables yield fallback;
// values that fail to parse, or that valid rejects, are logged and ignored.
func envOr[T any](key string, fallback T, parse func(string) (T, error), valid func(T) bool) T {
	raw, ok := os.LookupEnv(key)
	if !ok || raw == "" {
		return fallback
	}
	v, err := parse(raw)
	if err == nil && (valid == nil || valid(v)) {
		return v
	}
	slog.Warn("ignoring invalid environment value", "key", key, "value", raw, "default", fallback) //nolint:gosec // G706: structured fields
	return fallback
}

func positive[T int | int64 | time.Duration](v T) bool { return v > 0 }

func envBool(key string, fallback bool) bool {
	return envOr(key, fallback, strconv.ParseBool, nil)
}

func envInt(key string, fallback int) int {
	return envOr(key, fallback, strconv.Atoi, positive[int])
}

// envBytes accepts plain byte counts as well as sizes such as "5MB" or "2MiB".
func envBytes(key string, fallback int64) int64 {
	parse := func(s string) (int64, error) {
		n, err := humanize.ParseBytes(s)
		if err != nil {
			return 0, err
		}
		if n > math.MaxInt64 {
			return 0, strconv.ErrRange
		}
		return int64(n), nil
	}
	return envOr(key, fallback, parse, positive[int64])
}

func envDuration(key string, fallback time.Duration) time.Duration {
	return envOr(key, fallback, time.ParseDuration, positive[time.Duration])
}
