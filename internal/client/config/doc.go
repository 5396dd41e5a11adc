// Package config loads runtime configuration for the WatchKeeper CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the backend HTTP API
//	-d string   path to the local state database file
//	-t int      request timeout (seconds)
//
// # JSON schema
//
// The JSON loader uses timex.Duration for the timeout, so values can be
// either strings like "20s" or integer nanoseconds:
//
//	{
//	  "server_url": "http://localhost:3000",
//	  "database_path": "watchkeeper.db",
//	  "request_timeout": "20s"
//	}
package config
