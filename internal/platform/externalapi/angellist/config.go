// Package angellist provides a client for the AngelList directory API.
package angellist

import "time"

const (
	// DefaultBaseURL is the versioned API root used when none is configured.
	DefaultBaseURL = "http://api.angel.co/1"
	// DefaultTimeout bounds every request, including reading the body.
	DefaultTimeout = 3 * time.Second
	// DefaultRateLimit is the number of calls AngelList allows per DefaultRateInterval.
	DefaultRateLimit = 1000
	// DefaultRateInterval is the window the rate limit applies to.
	DefaultRateInterval = time.Hour
)

// Config holds configuration for the AngelList API client.
type Config struct {
	BaseURL      string        // API root (e.g., "http://api.angel.co/1")
	Timeout      time.Duration // HTTP request timeout
	RateLimit    int           // Calls allowed per RateInterval, 0 disables limiting
	RateInterval time.Duration // Rate limit window
}

// WithDefaults returns a copy of cfg with zero fields replaced by defaults.
func (cfg Config) WithDefaults() Config {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.RateInterval <= 0 {
		cfg.RateInterval = DefaultRateInterval
	}
	return cfg
}
