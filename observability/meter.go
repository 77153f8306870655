package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/kbukum/gofetch/logger"
)

// MeterConfig configures the OpenTelemetry meter provider.
type MeterConfig struct {
	ServiceName    string
	ServiceVersion string
	Environment    string
	// Endpoint is the OTLP HTTP endpoint host:port (e.g., "localhost:4318").
	Endpoint string
	Insecure bool
	// Interval is the metric export interval.
	Interval time.Duration
}

// DefaultMeterConfig returns defaults for a local collector.
func DefaultMeterConfig(serviceName string) MeterConfig {
	return MeterConfig{
		ServiceName:    serviceName,
		ServiceVersion: "dev",
		Environment:    "development",
		Endpoint:       DefaultEndpoint,
		Insecure:       true,
		Interval:       DefaultMetricInterval,
	}
}

// InitMeter installs an OTLP-exporting meter provider as the global one.
// The returned provider must be shut down to flush pending points.
func InitMeter(ctx context.Context, cfg MeterConfig) (*sdkmetric.MeterProvider, error) {
	opts := []otlpmetrichttp.Option{
		otlpmetrichttp.WithEndpoint(cfg.Endpoint),
	}
	if cfg.Insecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}

	exporter, err := otlpmetrichttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating metric exporter: %w", err)
	}

	res, err := newResource(cfg.ServiceName, cfg.ServiceVersion, cfg.Environment)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	var readerOpts []sdkmetric.PeriodicReaderOption
	if cfg.Interval > 0 {
		readerOpts = append(readerOpts, sdkmetric.WithInterval(cfg.Interval))
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, readerOpts...)),
		sdkmetric.WithResource(res),
	)

	otel.SetMeterProvider(mp)

	logger.Debug("meter initialized", logger.Fields(
		"service", cfg.ServiceName,
		"endpoint", cfg.Endpoint,
		"interval", cfg.Interval.String(),
	))

	return mp, nil
}

// Meter returns a named meter from the global provider.
func Meter(name string) metric.Meter {
	return otel.Meter(name)
}

// Metrics holds the instruments recorded around each request.
type Metrics struct {
	requestTotal    metric.Int64Counter
	requestDuration metric.Float64Histogram
	requestActive   metric.Int64UpDownCounter
	responseBytes   metric.Int64Histogram
	errorTotal      metric.Int64Counter
}

// NewMetrics creates metric instruments on the given meter.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	requestTotal, err := meter.Int64Counter("fetch.request.total",
		metric.WithDescription("Total number of completed requests"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating fetch.request.total counter: %w", err)
	}

	requestDuration, err := meter.Float64Histogram("fetch.request.duration",
		metric.WithDescription("Duration of requests in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating fetch.request.duration histogram: %w", err)
	}

	requestActive, err := meter.Int64UpDownCounter("fetch.request.active",
		metric.WithDescription("Number of requests in flight"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating fetch.request.active gauge: %w", err)
	}

	responseBytes, err := meter.Int64Histogram("fetch.response.size",
		metric.WithDescription("Size of buffered response bodies"),
		metric.WithUnit("By"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating fetch.response.size histogram: %w", err)
	}

	errorTotal, err := meter.Int64Counter("fetch.error.total",
		metric.WithDescription("Total failed requests by error kind"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating fetch.error.total counter: %w", err)
	}

	return &Metrics{
		requestTotal:    requestTotal,
		requestDuration: requestDuration,
		requestActive:   requestActive,
		responseBytes:   responseBytes,
		errorTotal:      errorTotal,
	}, nil
}

// RecordRequestStart increments the in-flight request count.
func (m *Metrics) RecordRequestStart(ctx context.Context) {
	m.requestActive.Add(ctx, 1)
}

// RecordRequestEnd decrements in-flight requests and records the finished one.
func (m *Metrics) RecordRequestEnd(ctx context.Context, executor, method, status string, duration time.Duration) {
	m.requestActive.Add(ctx, -1)
	m.requestTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("executor", executor),
		attribute.String("method", method),
		attribute.String("status", status),
	))
	m.requestDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(
		attribute.String("executor", executor),
		attribute.String("method", method),
	))
}

// RecordResponseSize records the size of a buffered response body.
func (m *Metrics) RecordResponseSize(ctx context.Context, executor string, n int) {
	m.responseBytes.Record(ctx, int64(n), metric.WithAttributes(
		attribute.String("executor", executor),
	))
}

// RecordError records a failed request by error kind.
func (m *Metrics) RecordError(ctx context.Context, kind, executor string) {
	m.errorTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("kind", kind),
		attribute.String("executor", executor),
	))
}
