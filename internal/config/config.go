package config

import "time"

// Config holds runtime settings for the LifeVault CLI.
//
// Fields:
//   - ServerEndpointURL: base URL of the backend HTTP API.
//   - DatabaseDSN: SQLite DSN of the local store.
//   - ForceLocalOnly: when true the app never talks to the backend and the
//     persisted data-mode preference is overwritten.
//   - RequestTimeout: per-request timeout for remote calls.
type Config struct {
	ServerEndpointURL string
	DatabaseDSN       string
	ForceLocalOnly    bool
	RequestTimeout    time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerEndpointURL = "http://127.0.0.1:8080"
	c.DatabaseDSN = "lifevault.db"
	c.ForceLocalOnly = false
	c.RequestTimeout = 15 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from JSON (if present), the environment, and command-line flags. Later
// sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
