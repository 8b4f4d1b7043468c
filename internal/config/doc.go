// Package config loads runtime configuration for the LifeVault CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Environment (see parseEnv): LIFEVAULT_LOCAL_ONLY forces local-only
//     mode and overwrites any persisted preference.
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the vault backend
//	-d string   SQLite DSN of the local store
//	-l          force local-only mode (no remote calls)
//	-t int      remote request timeout (seconds)
//
// # JSON schema
//
// The JSON loader uses timex.Duration for intervals, so values can be either
// strings like "15s" or integer nanoseconds:
//
//	{
//	  "server_endpoint_url": "https://vault.example.com",
//	  "database_dsn": "lifevault.db",
//	  "force_local_only": false,
//	  "request_timeout": "15s"
//	}
package config
