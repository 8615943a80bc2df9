package config

import (
	"encoding/json"
	"os"

	"github.com/itradeops/itradectl/internal/flagx"
	"github.com/itradeops/itradectl/internal/timex"
)

// JSONConfig is a DTO used exclusively for JSON unmarshalling. It relies on
// timex.Duration so intervals can be written either as strings like "5s" or as
// integer nanoseconds. After parsing, values are copied into the runtime
// Config.
type JSONConfig struct {
	APIBaseURL             string         `json:"api_base_url"`
	ActivationPollInterval timex.Duration `json:"activation_poll_interval"`
	RequestTimeout         timex.Duration `json:"request_timeout"`
	CredentialDBPath       string         `json:"credential_db_path"`
	RateLimitPerSec        float64        `json:"rate_limit_per_sec"`
	RateBurst              int            `json:"rate_burst"`
}

// parseJSON overlays Config with values loaded from a JSON file. The file path
// comes from the -c/-config flags; when neither is given, nothing is loaded.
// Read or unmarshal errors panic (the loader runs before anything else).
//
// Intended usage is: defaults -> parseJSON -> parseFlags, where later stages
// override earlier ones.
func parseJSON(cfg *Config) {
	jsonConfigFile := flagx.JSONConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JSONConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.APIBaseURL != "" {
		cfg.APIBaseURL = jc.APIBaseURL
	}
	if jc.ActivationPollInterval.Duration > 0 {
		cfg.ActivationPollInterval = jc.ActivationPollInterval.Duration
	}
	if jc.RequestTimeout.Duration > 0 {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.CredentialDBPath != "" {
		cfg.CredentialDBPath = jc.CredentialDBPath
	}
	if jc.RateLimitPerSec > 0 {
		cfg.RateLimitPerSec = jc.RateLimitPerSec
	}
	if jc.RateBurst > 0 {
		cfg.RateBurst = jc.RateBurst
	}
}
