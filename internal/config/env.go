package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Env holds process credentials and overrides loaded from environment
// variables at startup. The platform token never lives in the config
// file.
type Env struct {
	Token   string `env:"DECKHERALD_TOKEN"`
	Listen  string `env:"DECKHERALD_LISTEN"`
	Library string `env:"DECKHERALD_LIBRARY"`
}

// ParseEnv loads the environment overrides.
func ParseEnv() (Env, error) {
	var e Env
	if err := env.Parse(&e); err != nil {
		return Env{}, fmt.Errorf("parse env: %w", err)
	}
	return e, nil
}

// Apply overlays the environment values onto a loaded config.
func (e Env) Apply(c *Config) {
	if e.Listen != "" {
		c.Listen = e.Listen
	}
	if e.Library != "" {
		c.LibraryPath = e.Library
	}
}
