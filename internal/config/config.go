// Package config resolves the gateway's runtime settings from the process
// environment, with optional .env overlay for local development.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	// DefaultBaseURL is used when STREAMTAPE_BASE_URL is unset.
	DefaultBaseURL = "https://api.streamtape.com"
	// DefaultAddr is the listen address when AURAHUB_ADDR is unset.
	DefaultAddr = ":8080"
	// DefaultUpstreamTimeout bounds a single outbound provider call.
	DefaultUpstreamTimeout = 30 * time.Second
)

// Config holds the immutable settings resolved once at startup. It is passed
// explicitly into constructors; nothing reads the environment after Load.
type Config struct {
	Addr            string
	BaseURL         string
	Login           string
	Key             string
	AllowedOrigins  []string
	LogLevel        string
	LogFormat       string
	TLSCertFile     string
	TLSKeyFile      string
	UpstreamTimeout time.Duration
}

// Load reads the gateway configuration from the environment. A .env file in
// the working directory is applied first when present; a missing file is not
// an error. Load fails when the provider credentials are absent.
func Load() (Config, error) {
	_ = godotenv.Load()
	return fromEnv(os.Getenv)
}

func fromEnv(getenv func(string) string) (Config, error) {
	cfg := Config{
		Addr:            strings.TrimSpace(getenv("AURAHUB_ADDR")),
		BaseURL:         strings.TrimSpace(getenv("STREAMTAPE_BASE_URL")),
		Login:           strings.TrimSpace(getenv("STREAMTAPE_LOGIN")),
		Key:             strings.TrimSpace(getenv("STREAMTAPE_KEY")),
		LogLevel:        strings.TrimSpace(getenv("AURAHUB_LOG_LEVEL")),
		LogFormat:       strings.TrimSpace(getenv("AURAHUB_LOG_FORMAT")),
		TLSCertFile:     strings.TrimSpace(getenv("AURAHUB_TLS_CERT")),
		TLSKeyFile:      strings.TrimSpace(getenv("AURAHUB_TLS_KEY")),
		UpstreamTimeout: DefaultUpstreamTimeout,
	}

	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")

	if timeout := strings.TrimSpace(getenv("AURAHUB_UPSTREAM_TIMEOUT")); timeout != "" {
		parsed, err := time.ParseDuration(timeout)
		if err != nil {
			return Config{}, fmt.Errorf("parse AURAHUB_UPSTREAM_TIMEOUT: %w", err)
		}
		if parsed > 0 {
			cfg.UpstreamTimeout = parsed
		}
	}

	cfg.AllowedOrigins = ParseOrigins(getenv("ALLOWED_ORIGINS"))

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate enforces the required provider credentials and TLS pairing.
func (c Config) Validate() error {
	if c.Login == "" || c.Key == "" {
		return errors.New("streamtape credentials are required: set STREAMTAPE_LOGIN and STREAMTAPE_KEY")
	}
	if (c.TLSCertFile == "") != (c.TLSKeyFile == "") {
		return errors.New("AURAHUB_TLS_CERT and AURAHUB_TLS_KEY must be set together")
	}
	return nil
}

// AllowAllOrigins reports whether the origin allow-list is the wildcard set.
func (c Config) AllowAllOrigins() bool {
	return len(c.AllowedOrigins) == 1 && c.AllowedOrigins[0] == "*"
}

// ParseOrigins normalizes the ALLOWED_ORIGINS value. The literal wildcard
// stays a single-element wildcard set; any other value is split on commas and
// trimmed, dropping empty entries. An unset value defaults to the wildcard.
func ParseOrigins(value string) []string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" || trimmed == "*" {
		return []string{"*"}
	}
	parts := strings.Split(trimmed, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		origin := strings.TrimSpace(part)
		if origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}
