package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type AppConfig struct {
	// TravelAPIKey authenticates the future-flights service. Empty leaves
	// that pipeline failing with a configuration error.
	TravelAPIKey     string
	TravelAPIBaseURL string

	PastAPIBaseURL string
	PastAPIToken   string // optional bearer token

	// HTTPTimeout bounds each outbound call.
	HTTPTimeout time.Duration

	// ProbeInterval controls how often upstreams are probed (0 = disabled).
	ProbeInterval time.Duration

	// Probe status retention.
	ProbeMaxHistory int           // max statuses per upstream (0 = unlimited)
	ProbeMaxAge     time.Duration // max age of statuses (0 = unlimited)

	Port string
}

// Load reads configuration from the environment with sensible defaults.
// Call godotenv.Load first to pick up a .env file.
func Load() (*AppConfig, error) {
	cfg := &AppConfig{}

	cfg.TravelAPIKey = getenvDefault("TRAVEL_API_KEY", os.Getenv("VITE_GOOGLE_TRAVEL_API_KEY"))
	cfg.TravelAPIBaseURL = os.Getenv("TRAVEL_API_BASE_URL")
	cfg.PastAPIBaseURL = os.Getenv("PAST_API_BASE_URL")
	cfg.PastAPIToken = os.Getenv("PAST_API_TOKEN")

	timeout, err := time.ParseDuration(getenvDefault("HTTP_TIMEOUT", "15s"))
	if err != nil {
		return nil, fmt.Errorf("invalid HTTP_TIMEOUT: %w", err)
	}
	cfg.HTTPTimeout = timeout

	interval, err := time.ParseDuration(getenvDefault("PROBE_INTERVAL", "0s"))
	if err != nil {
		return nil, fmt.Errorf("invalid PROBE_INTERVAL: %w", err)
	}
	cfg.ProbeInterval = interval

	cfg.ProbeMaxHistory = getenvInt("PROBE_MAX_HISTORY", 20)

	maxAge, err := time.ParseDuration(getenvDefault("PROBE_MAX_AGE", "24h"))
	if err != nil {
		return nil, fmt.Errorf("invalid PROBE_MAX_AGE: %w", err)
	}
	cfg.ProbeMaxAge = maxAge

	cfg.Port = getenvDefault("PORT", "8080")

	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}
