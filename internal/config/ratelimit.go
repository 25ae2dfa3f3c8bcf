package config

import "time"

// RateLimitConfig controls the Redis-backed token bucket limiter. Capacity
// is the burst size, RefillTokens/RefillInterval describe the steady refill
// rate, and TTL bounds how long idle bucket state is kept in Redis.
type RateLimitConfig struct {
	Enabled        bool
	Capacity       int
	RefillTokens   int
	RefillInterval time.Duration
	TTL            time.Duration
	Prefix         string
	Debug          bool
}

// LoadRateLimitConfig reads rate limiter settings from the environment with
// conservative defaults (60 requests burst, one token per second).
func LoadRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{
		Enabled:        getenv("RATELIMIT_ENABLED", "true") == "true",
		Capacity:       atoi(getenv("RATELIMIT_CAPACITY", "60")),
		RefillTokens:   atoi(getenv("RATELIMIT_REFILL_TOKENS", "1")),
		RefillInterval: parseDur(getenv("RATELIMIT_REFILL_INTERVAL", "1s")),
		TTL:            parseDur(getenv("RATELIMIT_TTL", "10m")),
		Prefix:         getenv("RATELIMIT_PREFIX", "ratelimit"),
		Debug:          getenv("RATELIMIT_DEBUG", "false") == "true",
	}
}
