package config

import (
	"time"

	"github.com/caarlos0/env/v11"
)

// envConfig is a DTO for environment parsing. Only variables that are
// actually set override the current Config values.
type envConfig struct {
	APIBaseURL     string        `env:"PREDMARKET_API_URL"`
	RequestTimeout time.Duration `env:"PREDMARKET_REQUEST_TIMEOUT"`
	DatabaseDSN    string        `env:"PREDMARKET_DATABASE_DSN"`
}

// parseEnv overlays Config with values from the environment.
// Panics on malformed values (e.g. an unparsable duration).
func parseEnv(cfg *Config) {
	var ec envConfig
	if err := env.Parse(&ec); err != nil {
		panic(err)
	}

	if ec.APIBaseURL != "" {
		cfg.APIBaseURL = ec.APIBaseURL
	}
	if ec.RequestTimeout != 0 {
		cfg.RequestTimeout = ec.RequestTimeout
	}
	if ec.DatabaseDSN != "" {
		cfg.DatabaseDSN = ec.DatabaseDSN
	}
}
