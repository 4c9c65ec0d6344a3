package config

import (
	"os"
	"strconv"
	"time"
)

// CacheConfig controls the Redis response cache in front of the public
// schedule and pitch endpoints.
type CacheConfig struct {
	Enabled     bool
	TTL         time.Duration
	KeyPrefix   string
	BypassParam string
}

// LoadCacheConfig reads cache settings from the environment with
// sensible defaults.  The cache is on by default; set CACHE_ENABLED to
// "false" to turn it off without removing the middleware.
func LoadCacheConfig() CacheConfig {
	return CacheConfig{
		Enabled:     getenvBool("CACHE_ENABLED", true),
		TTL:         getenvDur("CACHE_TTL", 30*time.Second),
		KeyPrefix:   getenv("CACHE_KEY_PREFIX", "sportify:cache"),
		BypassParam: getenv("CACHE_BYPASS_PARAM", "nocache"),
	}
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

func getenvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func getenvDur(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}
