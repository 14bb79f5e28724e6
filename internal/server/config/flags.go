package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/meggy/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string  listen address
//	-s string  JWT signing secret
//	-t int     access token lifetime (in minutes)
//	-r int     refresh token lifetime (in minutes)
//	-l string  log level
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-s", "-t", "-r", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.Address, "a", cfg.Address, "listen address")
	fs.StringVar(&cfg.SecretKey, "s", cfg.SecretKey, "JWT signing secret")
	accessTTL := fs.Int("t", int(cfg.AccessTokenTTL.Minutes()), "access token lifetime (in minutes)")
	refreshTTL := fs.Int("r", int(cfg.RefreshTokenTTL.Minutes()), "refresh token lifetime (in minutes)")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level: debug, info, warn, error")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.AccessTokenTTL = time.Duration(*accessTTL) * time.Minute
	cfg.RefreshTokenTTL = time.Duration(*refreshTTL) * time.Minute
}
