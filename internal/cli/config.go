package cli

import (
	"fmt"

	"github.com/kbukum/gofetch/config"
	apperrors "github.com/kbukum/gofetch/errors"
	"github.com/kbukum/gofetch/fetch"
	"github.com/kbukum/gofetch/observability"
	"github.com/kbukum/gofetch/validation"
)

const appName = "gofetch"

// Output formats.
const (
	FormatRaw  = "raw"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Config is the gofetch command configuration, read from gofetch.yml and
// GOFETCH_* environment variables.
type Config struct {
	config.ServiceConfig `yaml:",inline" mapstructure:",squash"`

	Fetch         fetch.Config         `yaml:"fetch" mapstructure:"fetch"`
	Observability observability.Config `yaml:"observability" mapstructure:"observability"`
	Output        OutputConfig         `yaml:"output" mapstructure:"output"`
}

// OutputConfig controls how responses are printed.
type OutputConfig struct {
	Format  string `yaml:"format" mapstructure:"format" validate:"oneof=raw json yaml"`
	NoColor bool   `yaml:"no_color" mapstructure:"no_color"`
}

// ApplyDefaults fills zero fields.
func (c *Config) ApplyDefaults() {
	if c.Name == "" {
		c.Name = appName
	}
	c.ServiceConfig.ApplyDefaults()
	c.Fetch.ApplyDefaults()
	if c.Output.Format == "" {
		c.Output.Format = FormatRaw
	}
}

// Validate checks every section.
func (c *Config) Validate() error {
	if err := c.ServiceConfig.Validate(); err != nil {
		return err
	}
	if err := c.Fetch.Validate(); err != nil {
		return err
	}
	if c.Observability.Enabled {
		if err := c.Observability.Validate(); err != nil {
			return err
		}
	}
	return validation.Validate(&c.Output)
}

// loadConfig reads the configuration. path is optional; when empty the
// default locations are searched.
func loadConfig(path string, opts ...config.LoaderOption) (*Config, error) {
	opts = append([]config.LoaderOption{
		config.WithDefault("logging.level", "warn"),
		config.WithDefault("logging.format", "console"),
	}, opts...)
	if path != "" {
		opts = append(opts, config.WithConfigFile(path))
	}

	var cfg Config
	if err := config.LoadConfig(appName, &cfg, opts...); err != nil {
		return nil, apperrors.InvalidConfig(fmt.Sprintf("loading configuration: %v", err)).WithCause(err)
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
