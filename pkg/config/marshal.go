package config

import (
	"github.com/pelletier/go-toml/v2"
)

// Marshal renders the configuration as TOML
func (c *Config) Marshal() ([]byte, error) {
	return toml.Marshal(c)
}
