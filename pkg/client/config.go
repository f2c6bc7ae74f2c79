// AngelaMos | 2026
// config.go

package client

import (
	"log/slog"
	"net/http"
	"time"
)

const (
	DefaultTimeout  = 15 * time.Second
	DefaultCacheTTL = time.Minute
)

// Config is everything the client needs besides the session. BaseURL
// includes the API version prefix, e.g. https://api.example.com/v1.
type Config struct {
	BaseURL    string
	HTTPClient *http.Client
	Timeout    time.Duration

	// CacheTTL bounds how long shared reads (role, company, payment
	// status) are served from memory.
	CacheTTL time.Duration

	// Isolated turns off the shared read cache so every call reaches the
	// server.
	Isolated bool

	Logger *slog.Logger
}

func (c Config) withDefaults() Config {
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	if c.HTTPClient == nil {
		c.HTTPClient = &http.Client{Timeout: c.Timeout}
	}
	if c.CacheTTL <= 0 {
		c.CacheTTL = DefaultCacheTTL
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	return c
}
