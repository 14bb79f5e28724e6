package config

import (
	"time"
)

// Config holds runtime settings for the Meggy CLI.
//
// Fields:
//   - ServerURL: base URL of the REST API, including the /api prefix.
//   - DatabasePath: SQLite file holding the session; "" keeps it in memory.
//   - RequestTimeout: upper bound for a single HTTP round trip.
//   - OnlineCheckInterval: how often the client probes server reachability.
//   - AccessTokenTTL, RefreshTokenTTL: storage windows of the two tokens.
//   - RefreshOnUnauthorized: refresh the access token and replay on 401.
//   - LogLevel: debug, info, warn or error.
type Config struct {
	ServerURL             string
	DatabasePath          string
	RequestTimeout        time.Duration
	OnlineCheckInterval   time.Duration
	AccessTokenTTL        time.Duration
	RefreshTokenTTL       time.Duration
	RefreshOnUnauthorized bool
	LogLevel              string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://127.0.0.1:8000/api"
	c.DatabasePath = "meggy.db"
	c.RequestTimeout = 30 * time.Second
	c.OnlineCheckInterval = 5 * time.Second
	c.AccessTokenTTL = time.Hour
	c.RefreshTokenTTL = 7 * 24 * time.Hour
	c.RefreshOnUnauthorized = true
	c.LogLevel = "info"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// a config file (if given) and command-line flags (if present). Later sources
// take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseFile(cfg)
	parseFlags(cfg)
	return cfg
}
