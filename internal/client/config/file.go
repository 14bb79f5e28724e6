package config

import (
	"time"

	"github.com/dmitrijs2005/meggy/internal/configfile"
	"github.com/dmitrijs2005/meggy/internal/flagx"
	"github.com/dmitrijs2005/meggy/internal/timex"
)

// fileConfig is the on-disk shape, JSON or YAML. Durations go through
// timex.Duration so both "30s" and integer nanoseconds work. Absent fields
// leave the current value alone.
type fileConfig struct {
	ServerURL             string         `json:"server_url" yaml:"server_url"`
	DatabasePath          *string        `json:"database_path" yaml:"database_path"`
	RequestTimeout        timex.Duration `json:"request_timeout" yaml:"request_timeout"`
	OnlineCheckInterval   timex.Duration `json:"online_check_interval" yaml:"online_check_interval"`
	AccessTokenTTL        timex.Duration `json:"access_token_ttl" yaml:"access_token_ttl"`
	RefreshTokenTTL       timex.Duration `json:"refresh_token_ttl" yaml:"refresh_token_ttl"`
	RefreshOnUnauthorized *bool          `json:"refresh_on_unauthorized" yaml:"refresh_on_unauthorized"`
	LogLevel              string         `json:"log_level" yaml:"log_level"`
}

// parseFile overlays cfg with the file named by -c/-config. No flag, no
// change. Read or parse errors panic, like flag errors do.
func parseFile(cfg *Config) {
	path := flagx.ConfigFile()
	if path == "" {
		return
	}

	var fc fileConfig
	if err := configfile.Decode(path, &fc); err != nil {
		panic(err)
	}

	if fc.ServerURL != "" {
		cfg.ServerURL = fc.ServerURL
	}
	if fc.DatabasePath != nil {
		cfg.DatabasePath = *fc.DatabasePath
	}
	setDuration(&cfg.RequestTimeout, fc.RequestTimeout)
	setDuration(&cfg.OnlineCheckInterval, fc.OnlineCheckInterval)
	setDuration(&cfg.AccessTokenTTL, fc.AccessTokenTTL)
	setDuration(&cfg.RefreshTokenTTL, fc.RefreshTokenTTL)
	if fc.RefreshOnUnauthorized != nil {
		cfg.RefreshOnUnauthorized = *fc.RefreshOnUnauthorized
	}
	if fc.LogLevel != "" {
		cfg.LogLevel = fc.LogLevel
	}
}

func setDuration(dst *time.Duration, v timex.Duration) {
	if v.Duration > 0 {
		*dst = v.Duration
	}
}
