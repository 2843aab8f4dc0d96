// Package config loads runtime configuration for the tradeboard CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. TRADEBOARD_* environment variables, optionally read from a .env file.
//  3. Optional config file selected via -c or -config. The format follows
//     the extension: .yaml/.yml, .jsonc (JSON with comments) or plain JSON.
//  4. Command-line flags, which override everything above.
//
// Supported flags
//
//	-a string   base URL of the listings API
//	-r int      maximum attempts for retried reads
//	-s string   path to the session database
//	-l string   log level (debug, info, warn, error)
//	-i int      online status check interval (seconds)
//	-m string   address for the Prometheus /metrics listener (empty disables)
//
// # File schema
//
// Durations accept strings like "1s" or integer nanoseconds:
//
//	{
//	  "api_base_url": "http://localhost:3000/api",
//	  "max_attempts": 5,
//	  "base_delay": "1s",
//	  "max_delay": "5s",
//	  "request_timeout": "10s",
//	  "session_db_path": "tradeboard.db",
//	  "log_level": "warn",
//	  "online_check_interval": "5s",
//	  "metrics_addr": ""
//	}
//
// Zero values in the file leave the current setting untouched.
package config
