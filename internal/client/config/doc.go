// Package config loads runtime configuration for the Meggy CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional config file selected with -c or -config. Files ending in
//     .yaml or .yml are read as YAML, anything else as JSON.
//  3. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-a string     base URL of the REST API (default http://127.0.0.1:8000/api)
//	-d string     session database path (default meggy.db)
//	-ephemeral    keep the session in memory only
//	-t int        request timeout (seconds)
//	-i int        online status check interval (seconds)
//	-l string     log level
//
// # File schema
//
// Durations use timex.Duration, so values can be either strings like "30s"
// or integer nanoseconds:
//
//	{
//	  "server_url": "https://meggy.example.com/api",
//	  "database_path": "/var/lib/meggy/session.db",
//	  "request_timeout": "30s",
//	  "online_check_interval": "5s",
//	  "access_token_ttl": "1h",
//	  "refresh_token_ttl": "168h",
//	  "refresh_on_unauthorized": true,
//	  "log_level": "debug"
//	}
//
// This package does not read environment variables.
package config
