package config

import (
	"github.com/dmitrijs2005/meggy/internal/configfile"
	"github.com/dmitrijs2005/meggy/internal/flagx"
	"github.com/dmitrijs2005/meggy/internal/timex"
)

type fileConfig struct {
	Address         string         `json:"address" yaml:"address"`
	SecretKey       string         `json:"secret_key" yaml:"secret_key"`
	AccessTokenTTL  timex.Duration `json:"access_token_ttl" yaml:"access_token_ttl"`
	RefreshTokenTTL timex.Duration `json:"refresh_token_ttl" yaml:"refresh_token_ttl"`
	LogLevel        string         `json:"log_level" yaml:"log_level"`
}

// parseFile overlays cfg with the file named by -c/-config. Errors panic.
func parseFile(cfg *Config) {
	path := flagx.ConfigFile()
	if path == "" {
		return
	}

	var fc fileConfig
	if err := configfile.Decode(path, &fc); err != nil {
		panic(err)
	}

	if fc.Address != "" {
		cfg.Address = fc.Address
	}
	if fc.SecretKey != "" {
		cfg.SecretKey = fc.SecretKey
	}
	if fc.AccessTokenTTL.Duration > 0 {
		cfg.AccessTokenTTL = fc.AccessTokenTTL.Duration
	}
	if fc.RefreshTokenTTL.Duration > 0 {
		cfg.RefreshTokenTTL = fc.RefreshTokenTTL.Duration
	}
	if fc.LogLevel != "" {
		cfg.LogLevel = fc.LogLevel
	}
}
