package observability

import (
	"fmt"
	"time"
)

// Config configures tracing and metrics export.
type Config struct {
	// Enabled switches observability on. Off by default: the service
	// runs fine without a collector.
	Enabled bool `yaml:"enabled" mapstructure:"enabled"`

	// Endpoint is the OTLP HTTP endpoint host:port (default: "localhost:4318").
	Endpoint string `yaml:"endpoint" mapstructure:"endpoint"`

	// Insecure allows plain HTTP to the collector (default: true).
	Insecure bool `yaml:"insecure" mapstructure:"insecure"`

	// SampleRate is the trace sampling rate from 0.0 to 1.0 (default: 1.0).
	SampleRate float64 `yaml:"sample_rate" mapstructure:"sample_rate"`

	// Interval is the metric export interval (default: 15s).
	Interval time.Duration `yaml:"interval" mapstructure:"interval"`
}

// ApplyDefaults sets sensible defaults for zero-valued fields.
func (c *Config) ApplyDefaults() {
	if c.Endpoint == "" {
		c.Endpoint = "localhost:4318"
		c.Insecure = true
	}
	if c.SampleRate == 0 {
		c.SampleRate = 1.0
	}
	if c.Interval == 0 {
		c.Interval = 15 * time.Second
	}
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if !c.Enabled {
		return nil
	}
	if c.Endpoint == "" {
		return fmt.Errorf("endpoint is required when observability is enabled")
	}
	if c.SampleRate < 0 || c.SampleRate > 1 {
		return fmt.Errorf("sample_rate must be between 0.0 and 1.0 (got: %f)", c.SampleRate)
	}
	return nil
}
