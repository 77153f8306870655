package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Status labels recorded on finished requests.
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// RequestScope tracks the span and metrics of one outbound request.
type RequestScope struct {
	Executor  string
	Method    string
	URL       string
	RequestID string
	StartTime time.Time
	// Metrics may be nil, in which case metric recording is skipped.
	Metrics *Metrics

	span trace.Span
}

// StartRequest opens a client span for an outbound request and marks it in flight.
func StartRequest(ctx context.Context, executor, method, url, requestID string, metrics *Metrics) (context.Context, *RequestScope) {
	ctx, span := StartSpan(ctx, SpanHTTPRequest,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String(AttrExecutorName, executor),
			attribute.String(AttrHTTPMethod, method),
			attribute.String(AttrURL, url),
			attribute.String(AttrRequestID, requestID),
		),
	)

	if metrics != nil {
		metrics.RecordRequestStart(ctx)
	}

	return ctx, &RequestScope{
		Executor:  executor,
		Method:    method,
		URL:       url,
		RequestID: requestID,
		StartTime: time.Now(),
		Metrics:   metrics,
		span:      span,
	}
}

// Span returns the request span.
func (s *RequestScope) Span() trace.Span {
	return s.span
}

// SetAttributes adds attributes to the request span.
func (s *RequestScope) SetAttributes(kv ...attribute.KeyValue) {
	s.span.SetAttributes(kv...)
}

// Succeed ends the scope for a request that produced a response.
func (s *RequestScope) Succeed(ctx context.Context, statusCode, size int) {
	duration := s.Duration()
	s.span.SetAttributes(
		attribute.Int(AttrStatusCode, statusCode),
		attribute.Int(AttrResponseBytes, size),
		attribute.Int64(AttrDurationMs, duration.Milliseconds()),
	)
	s.span.End()

	if s.Metrics != nil {
		s.Metrics.RecordResponseSize(ctx, s.Executor, size)
		s.Metrics.RecordRequestEnd(ctx, s.Executor, s.Method, StatusOK, duration)
	}
}

// Fail ends the scope for a request that produced no response.
func (s *RequestScope) Fail(ctx context.Context, kind string, err error) {
	duration := s.Duration()
	s.span.RecordError(err)
	s.span.SetStatus(codes.Error, err.Error())
	s.span.SetAttributes(
		attribute.String(AttrErrorKind, kind),
		attribute.String(AttrErrorMessage, err.Error()),
		attribute.Int64(AttrDurationMs, duration.Milliseconds()),
	)
	s.span.End()

	if s.Metrics != nil {
		s.Metrics.RecordError(ctx, kind, s.Executor)
		s.Metrics.RecordRequestEnd(ctx, s.Executor, s.Method, StatusError, duration)
	}
}

// Duration returns the elapsed time since the request started.
func (s *RequestScope) Duration() time.Duration {
	return time.Since(s.StartTime)
}
