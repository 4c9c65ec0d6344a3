package config

import "time"

// RateLimitConfig tunes the Redis token-bucket limiter applied to the
// API.  Burst is the bucket size, Rate the refill per Window.
type RateLimitConfig struct {
	Enabled bool
	Rate    int
	Burst   int
	Window  time.Duration
	Prefix  string
}

// LoadRateLimitConfig reads limiter settings from the environment.
func LoadRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{
		Enabled: getenvBool("RATELIMIT_ENABLED", true),
		Rate:    getenvInt("RATELIMIT_RATE", 60),
		Burst:   getenvInt("RATELIMIT_BURST", 20),
		Window:  getenvDur("RATELIMIT_WINDOW", time.Minute),
		Prefix:  getenv("RATELIMIT_PREFIX", "sportify:rl"),
	}
}
