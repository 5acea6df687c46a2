package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"
)

const (
	DEFAULT_SENTIMENT_WEIGHT = 0.6
	DEFAULT_TREND_WEIGHT     = 0.4
	DEFAULT_TRENDS_GEO       = "us"
	DEFAULT_PORT             = "8080"
	DEFAULT_API_TIMEOUT      = 10 * time.Second
)

// Settings collects everything the service reads from the environment.
// Request handlers and services receive these values through their
// constructors instead of calling os.Getenv themselves.
type Settings struct {
	Env  string
	Port string

	SentimentWeight float64
	TrendWeight     float64

	SerpAPIKey   string
	TrendsGeo    string
	TrendTimeout time.Duration

	ModelPath    string
	VaderEnabled bool

	ValkeyAddress  string
	ValkeyPassword string
	ValkeyTLS      bool
}

func LoadSettings() Settings {
	s := Settings{
		Env:             envOr("APP_ENV", "dev"),
		Port:            envOr("PORT", DEFAULT_PORT),
		SentimentWeight: envFloat("SENTIMENT_WEIGHT", DEFAULT_SENTIMENT_WEIGHT),
		TrendWeight:     envFloat("TREND_WEIGHT", DEFAULT_TREND_WEIGHT),
		SerpAPIKey:      os.Getenv("SERPAPI_KEY"),
		TrendsGeo:       envOr("TRENDS_GEO", DEFAULT_TRENDS_GEO),
		TrendTimeout:    DEFAULT_API_TIMEOUT,
		ModelPath:       os.Getenv("SENTIMENT_MODEL_PATH"),
		VaderEnabled:    os.Getenv("SENTIMENT_VADER_ENABLED") == "true",
		ValkeyAddress:   os.Getenv("VALKEY_INIT_ADDRESS"),
		ValkeyPassword:  os.Getenv("VALKEY_PASSWORD"),
		ValkeyTLS:       os.Getenv("VALKEY_TLS") == "true",
	}
	return s
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		slog.Warn("[Settings] Invalid float value, using default",
			slog.String("key", key),
			slog.String("value", raw))
		return fallback
	}
	return v
}

// LogLevel maps LOG_LEVEL to a slog level, defaulting to info.
func LogLevel() slog.Level {
	switch os.Getenv("LOG_LEVEL") {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
