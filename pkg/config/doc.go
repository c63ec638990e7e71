// Package config loads relink's configuration.
//
// Values are layered with koanf: the embedded defaults first, then the first
// repository config file found (.relink.toml, relink.toml, .relink.yaml,
// relink.yaml), then command-line overrides.
package config
