package config

import "time"

// Config holds runtime settings for the iTrade operator console.
//
// Fields:
//   - APIBaseURL: base URL of the backend REST API.
//   - ActivationPollInterval: how often the pending-activation view re-verifies
//     the session.
//   - RequestTimeout: per-request deadline for API calls.
//   - CredentialDBPath: path to the local sqlite file holding the session slots.
//   - RateLimitPerSec / RateBurst: client-side throttle for API calls.
type Config struct {
	APIBaseURL             string
	ActivationPollInterval time.Duration
	RequestTimeout         time.Duration
	CredentialDBPath       string
	RateLimitPerSec        float64
	RateBurst              int
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://localhost:8000"
	c.ActivationPollInterval = 5 * time.Second
	c.RequestTimeout = 15 * time.Second
	c.CredentialDBPath = "itradectl.db"
	c.RateLimitPerSec = 5
	c.RateBurst = 10
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJSON(cfg)
	parseFlags(cfg)
	return cfg
}
