package config

import (
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config is the env-driven wiring for the client. Component packages carry
// their own Config structs; this one only resolves the shared endpoints and
// credentials they are built from.
type Config struct {
	// BaseURL is the RedPulse function gateway, e.g.
	// https://<project>.redpulse.app/functions/v1/server
	BaseURL string
	// AuthURL is the identity service root. Defaults to <BaseURL>/../auth.
	AuthURL string
	// DataURL is the data service root used by the diagnostics probe.
	DataURL string
	// AnonKey is the public anonymous bearer used before sign-in.
	AnonKey string
	// InternetProbeURL is a public well-known host for the generic
	// reachability probe.
	InternetProbeURL string

	// StorePath is the file backing the durable local store. Empty selects
	// the in-memory store.
	StorePath string

	Env      string
	LogLevel string

	CallTimeout         time.Duration
	DemoLatency         bool
	StrictDemoEndpoints bool
}

var ErrBaseURLRequired = errors.New("REDPULSE_BASE_URL is required")
var ErrAnonKeyRequired = errors.New("REDPULSE_ANON_KEY is required")

// Load reads configuration from the environment, honoring a local .env file
// when present.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		BaseURL:             os.Getenv("REDPULSE_BASE_URL"),
		AuthURL:             getEnv("REDPULSE_AUTH_URL", os.Getenv("REDPULSE_BASE_URL")+"/auth/v1"),
		DataURL:             getEnv("REDPULSE_DATA_URL", os.Getenv("REDPULSE_BASE_URL")+"/rest/v1"),
		AnonKey:             os.Getenv("REDPULSE_ANON_KEY"),
		InternetProbeURL:    getEnv("REDPULSE_INTERNET_PROBE_URL", "https://www.google.com"),
		StorePath:           os.Getenv("REDPULSE_STORE_PATH"),
		Env:                 getEnv("ENV", "development"),
		LogLevel:            getEnv("LOG_LEVEL", "info"),
		CallTimeout:         getDurationEnv("REDPULSE_CALL_TIMEOUT", 5*time.Second),
		DemoLatency:         getBoolEnv("REDPULSE_DEMO_LATENCY", true),
		StrictDemoEndpoints: getBoolEnv("REDPULSE_STRICT_DEMO_ENDPOINTS", false),
	}
}

func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return ErrBaseURLRequired
	}
	if c.AnonKey == "" {
		return ErrAnonKeyRequired
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getBoolEnv(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return parsed
}
