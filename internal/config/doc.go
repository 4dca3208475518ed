// Package config loads runtime configuration for the prediction-market CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Environment variables (see parseEnv): PREDMARKET_API_URL,
//     PREDMARKET_REQUEST_TIMEOUT, PREDMARKET_DATABASE_DSN.
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the backend API
//	-t int      request timeout (seconds)
//	-d string   local session database file
//
// # JSON schema
//
// The JSON loader uses timex.Duration for the timeout, so values can be
// either strings like "15s" or integer nanoseconds:
//
//	{
//	  "api_base_url": "http://127.0.0.1:8000/api/v1",
//	  "request_timeout": "15s",
//	  "database_dsn": "predmarket.db"
//	}
package config
