// Package config loads scrivener's TOML configuration.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/scrivener/config.toml (default)
//  3. If the config file doesn't exist, fall back to defaults
//  4. If the file exists but fields are missing/empty, use defaults
//  5. SCRIVENER_API_BASE, when set, overrides api_base
//
// # Default Values
//
//   - api_base: http://localhost:8008
//   - credential_path: $XDG_STATE_HOME/scrivener/credentials.db
//   - log_level: warn
//   - log_format: text
//   - poll_interval: 5s
//
// # TOML Format
//
//	api_base = "http://localhost:8008"
//	credential_path = "~/.local/state/scrivener/credentials.db"
//	log_level = "info"
//	log_format = "json"
//	poll_interval = "10s"
//
// Values are trimmed, paths expand a leading "~", and poll_interval uses
// time.ParseDuration syntax. Load only reports I/O and parse errors;
// Validate rejects values that parse but make no sense, returning one of
// the Err* sentinels.
package config
