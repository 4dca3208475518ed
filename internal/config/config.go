package config

import "time"

// Config holds runtime settings for the prediction-market CLI.
//
// Fields:
//   - APIBaseURL: base URL of the backend REST API, including the /api/v1 prefix.
//   - RequestTimeout: per-request HTTP timeout.
//   - DatabaseDSN: sqlite DSN for the local session database.
type Config struct {
	APIBaseURL     string
	RequestTimeout time.Duration
	DatabaseDSN    string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://127.0.0.1:8000/api/v1"
	c.RequestTimeout = 15 * time.Second
	c.DatabaseDSN = "predmarket.db"
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from JSON (if present), environment variables, and command-line flags.
// Later sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
