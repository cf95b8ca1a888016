// Package config loads, normalizes, and validates ytbridge configuration.
//
// Configuration is TOML with a small surface: filesystem paths, external
// tool binaries and timeouts, download defaults, and logging. Load merges
// repository defaults, the config file, and environment overrides into an
// immutable value owned by the caller; nothing in this package mutates
// configuration after Load returns.
package config
