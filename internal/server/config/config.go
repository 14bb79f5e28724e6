// Package config handles configuration for the development server,
// including defaults, a JSON or YAML file overlay and command-line flags.
package config

import "time"

// Config holds runtime settings for the Meggy development server.
//
// Fields:
//   - Address: bind address of the HTTP listener.
//   - SecretKey: HMAC secret for signing JWTs (HS256). Do not use the default outside development.
//   - AccessTokenTTL / RefreshTokenTTL: token lifetimes.
//   - LogLevel: debug, info, warn or error.
type Config struct {
	Address         string
	SecretKey       string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
	LogLevel        string
}

// LoadDefaults populates Config with development defaults.
// NOTE: These values are insecure for production and should be overridden.
func (c *Config) LoadDefaults() {
	c.Address = ":8000"
	c.SecretKey = "secretKey"
	c.AccessTokenTTL = 60 * time.Minute
	c.RefreshTokenTTL = 7 * 24 * time.Hour
	c.LogLevel = "info"
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional config file and finally from command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseFile(cfg)
	parseFlags(cfg)
	return cfg
}
