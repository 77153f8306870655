package observability

import (
	"context"
	"errors"
	"time"

	"github.com/kbukum/gofetch/validation"
)

const (
	// DefaultEndpoint is the OTLP HTTP endpoint of a local collector.
	DefaultEndpoint = "localhost:4318"
	// DefaultMetricInterval is the metric export interval.
	DefaultMetricInterval = 15 * time.Second
)

// Config enables OTLP export of request spans and metrics.
type Config struct {
	Enabled        bool          `mapstructure:"enabled"`
	ServiceName    string        `mapstructure:"service_name"`
	ServiceVersion string        `mapstructure:"service_version"`
	Environment    string        `mapstructure:"environment"`
	Endpoint       string        `mapstructure:"endpoint"`
	Insecure       bool          `mapstructure:"insecure"`
	SampleRate     float64       `mapstructure:"sample_rate" validate:"gte=0,lte=1"`
	MetricInterval time.Duration `mapstructure:"metric_interval" validate:"gte=0"`
}

// ApplyDefaults fills zero fields with local-collector defaults.
func (c *Config) ApplyDefaults() {
	if c.ServiceName == "" {
		c.ServiceName = "gofetch"
	}
	if c.ServiceVersion == "" {
		c.ServiceVersion = "dev"
	}
	if c.Environment == "" {
		c.Environment = "development"
	}
	if c.Endpoint == "" {
		c.Endpoint = DefaultEndpoint
	}
	if c.MetricInterval == 0 {
		c.MetricInterval = DefaultMetricInterval
	}
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	return validation.Validate(c)
}

// TracerConfig derives the tracer settings.
func (c *Config) TracerConfig() TracerConfig {
	return TracerConfig{
		ServiceName:    c.ServiceName,
		ServiceVersion: c.ServiceVersion,
		Environment:    c.Environment,
		Endpoint:       c.Endpoint,
		Insecure:       c.Insecure,
		SampleRate:     c.SampleRate,
	}
}

// MeterConfig derives the meter settings.
func (c *Config) MeterConfig() MeterConfig {
	return MeterConfig{
		ServiceName:    c.ServiceName,
		ServiceVersion: c.ServiceVersion,
		Environment:    c.Environment,
		Endpoint:       c.Endpoint,
		Insecure:       c.Insecure,
		Interval:       c.MetricInterval,
	}
}

// ShutdownFunc flushes and stops installed providers.
type ShutdownFunc func(ctx context.Context) error

// Setup installs the tracer and meter providers when enabled and returns
// metrics bound to the installed meter. A disabled config yields nil metrics
// and a no-op shutdown.
func Setup(ctx context.Context, cfg Config) (*Metrics, ShutdownFunc, error) {
	noop := func(context.Context) error { return nil }
	if !cfg.Enabled {
		return nil, noop, nil
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, noop, err
	}

	tp, err := InitTracer(ctx, cfg.TracerConfig())
	if err != nil {
		return nil, noop, err
	}
	mp, err := InitMeter(ctx, cfg.MeterConfig())
	if err != nil {
		_ = tp.Shutdown(ctx)
		return nil, noop, err
	}

	metrics, err := NewMetrics(mp.Meter(defaultTracerName))
	if err != nil {
		_ = tp.Shutdown(ctx)
		_ = mp.Shutdown(ctx)
		return nil, noop, err
	}

	shutdown := func(ctx context.Context) error {
		return errors.Join(tp.Shutdown(ctx), mp.Shutdown(ctx))
	}
	return metrics, shutdown, nil
}
