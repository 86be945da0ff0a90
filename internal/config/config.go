package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	APIPort  string
	LogLevel string

	NATSURL     string
	NATSSubject string

	GeminiAPIKey string
	GeminiModel  string

	FetchTimeoutSeconds int
	FetchRatePerSecond  float64
	FetchBurst          int

	DefaultPostCount int
	ExportPath       string

	WorkerMetricsPort string
}

func Load() Config {
	return Config{
		APIPort:  mustEnv("API_PORT", "8080"),
		LogLevel: mustEnv("LOG_LEVEL", "info"),

		NATSURL:     mustEnv("NATS_URL", "nats://localhost:4222"),
		NATSSubject: mustEnv("NATS_SUBJECT", "campaigns.requested"),

		GeminiAPIKey: mustEnv("GEMINI_API_KEY", ""),
		GeminiModel:  mustEnv("GEMINI_MODEL", "gemini-2.0-flash"),

		FetchTimeoutSeconds: mustEnvInt("FETCH_TIMEOUT_SECONDS", 8),
		FetchRatePerSecond:  mustEnvFloat("FETCH_RATE_PER_SECOND", 2),
		FetchBurst:          mustEnvInt("FETCH_BURST", 4),

		DefaultPostCount: mustEnvInt("DEFAULT_POST_COUNT", 3),
		ExportPath:       mustEnv("EXPORT_PATH", "./data/exports"),

		WorkerMetricsPort: mustEnv("WORKER_METRICS_PORT", "9090"),
	}
}

func (c Config) FetchTimeout() time.Duration {
	return time.Duration(c.FetchTimeoutSeconds) * time.Second
}

func mustEnv(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}

func mustEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func mustEnvFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return f
}
