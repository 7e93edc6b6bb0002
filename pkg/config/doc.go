// Package config handles configuration management for dynmacros.
// It layers the embedded defaults, an optional dynmacros.toml at the
// repository root (or an explicit file) and DYNMACROS_ environment
// variables, using koanf.
package config
