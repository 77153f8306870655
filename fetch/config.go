package fetch

import (
	"time"

	"github.com/kbukum/gofetch/security"
	"github.com/kbukum/gofetch/validation"
)

const (
	// DefaultTimeout applies when neither the request nor the config sets one.
	DefaultTimeout = 60 * time.Second

	defaultName = "default"
)

// Config holds the executor-wide defaults. It is copied by New and never
// modified afterwards.
type Config struct {
	// Name identifies the executor in logs, spans and metrics.
	Name string `yaml:"name" mapstructure:"name"`

	// Timeout is the default request timeout. Defaults to 60s.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout" validate:"gt=0"`

	// UserAgent is sent when the request sets no User-Agent header.
	// Defaults to "gofetch/<version>".
	UserAgent string `yaml:"user_agent" mapstructure:"user_agent"`

	// TLS configures the encrypted transport. Nil uses the system roots.
	TLS *security.TLSConfig `yaml:"tls" mapstructure:"tls"`
}

// ApplyDefaults fills in zero-value fields.
func (c *Config) ApplyDefaults() {
	if c.Name == "" {
		c.Name = defaultName
	}
	if c.Timeout == 0 {
		c.Timeout = DefaultTimeout
	}
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if err := validation.Validate(c); err != nil {
		return err
	}
	return c.TLS.Validate()
}
