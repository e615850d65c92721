package config

import (
	"os"
	"strconv"
)

type Config struct {
	Host               string
	Port               int
	LogLevel           string
	RateLimitRequests  int
	RateLimitWindowMin int
	KomootBaseURL      string
}

func Load() Config {
	return Config{
		Host:               envStr("HOST", "0.0.0.0"),
		Port:               envInt("PORT", 5000),
		LogLevel:           envStr("LOG_LEVEL", "info"),
		RateLimitRequests:  envInt("RATE_LIMIT_REQUESTS", 10),
		RateLimitWindowMin: envInt("RATE_LIMIT_WINDOW_MINUTES", 60),
		KomootBaseURL:      envStr("KOMOOT_BASE_URL", ""),
	}
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
