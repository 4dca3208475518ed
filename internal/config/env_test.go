package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func Test_parseEnv(t *testing.T) {
	t.Run("overrides set variables only", func(t *testing.T) {
		t.Setenv("PREDMARKET_API_URL", "http://env.example/api/v1")
		t.Setenv("PREDMARKET_REQUEST_TIMEOUT", "30s")

		cfg := &Config{}
		cfg.LoadDefaults()
		parseEnv(cfg)

		assert.Equal(t, "http://env.example/api/v1", cfg.APIBaseURL)
		assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
		assert.Equal(t, "predmarket.db", cfg.DatabaseDSN, "unset variable keeps the default")
	})

	t.Run("empty environment keeps defaults", func(t *testing.T) {
		cfg := &Config{}
		cfg.LoadDefaults()
		parseEnv(cfg)

		assert.Equal(t, "http://127.0.0.1:8000/api/v1", cfg.APIBaseURL)
	})
}
