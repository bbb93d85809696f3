package auth

import (
	"fmt"

	"tareasapi/auth/password"
	"tareasapi/auth/token"
)

// Config holds all authentication configuration.
// It composes subpackage configs for loading from YAML/env via mapstructure.
type Config struct {
	// Token configures session token signing and verification.
	Token token.Config `yaml:"token" mapstructure:"token"`

	// Password configures password hashing.
	Password password.Config `yaml:"password" mapstructure:"password"`
}

// ApplyDefaults sets sensible defaults for the sub-configurations.
func (c *Config) ApplyDefaults() {
	c.Token.ApplyDefaults()
	c.Password.ApplyDefaults()
}

// Validate checks the sub-configurations.
func (c *Config) Validate() error {
	if err := c.Token.Validate(); err != nil {
		return fmt.Errorf("auth.token: %w", err)
	}
	if err := c.Password.Validate(); err != nil {
		return fmt.Errorf("auth.password: %w", err)
	}
	return nil
}
