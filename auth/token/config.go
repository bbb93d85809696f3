package token

import (
	"errors"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
)

// SigningMethod defines supported HMAC signing algorithms.
type SigningMethod string

const (
	HS256 SigningMethod = "HS256"
	HS384 SigningMethod = "HS384"
	HS512 SigningMethod = "HS512"
)

// Config configures the session token codec.
// Loadable from YAML/env via mapstructure tags.
type Config struct {
	// Secret is the HMAC signing key (required).
	Secret string `yaml:"secret" mapstructure:"secret"`

	// Method is the signing algorithm (default: HS256).
	Method SigningMethod `yaml:"method" mapstructure:"method"`

	// Issuer is the "iss" claim stamped on issued tokens (optional).
	Issuer string `yaml:"issuer" mapstructure:"issuer"`

	// TTL is the lifetime of issued tokens (default: 1h).
	TTL time.Duration `yaml:"ttl" mapstructure:"ttl"`

	// Leeway is the clock-skew allowance applied when validating expiry.
	// Default is 0: an expired token is rejected immediately.
	Leeway time.Duration `yaml:"leeway" mapstructure:"leeway"`
}

// ApplyDefaults fills in zero-value fields with sensible defaults.
func (c *Config) ApplyDefaults() {
	if c.Method == "" {
		c.Method = HS256
	}
	if c.TTL == 0 {
		c.TTL = time.Hour
	}
}

// Validate checks required fields.
func (c *Config) Validate() error {
	if c.Secret == "" {
		return errors.New("secret is required")
	}
	switch c.Method {
	case HS256, HS384, HS512:
	default:
		return errors.New("unsupported signing method: " + string(c.Method))
	}
	if c.TTL <= 0 {
		return errors.New("ttl must be positive")
	}
	if c.Leeway < 0 {
		return errors.New("leeway must not be negative")
	}
	return nil
}

// signingMethod returns the golang-jwt SigningMethod instance.
func (c *Config) signingMethod() gojwt.SigningMethod {
	switch c.Method {
	case HS384:
		return gojwt.SigningMethodHS384
	case HS512:
		return gojwt.SigningMethodHS512
	default:
		return gojwt.SigningMethodHS256
	}
}

// key returns the HMAC key used for signing and verification.
func (c *Config) key() []byte {
	return []byte(c.Secret)
}
