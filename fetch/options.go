package fetch

import (
	"net/http"
	"time"

	"github.com/kbukum/gofetch/logger"
	"github.com/kbukum/gofetch/observability"
)

// Request methods.
const (
	MethodGet    = http.MethodGet
	MethodPost   = http.MethodPost
	MethodPut    = http.MethodPut
	MethodDelete = http.MethodDelete
	MethodPatch  = http.MethodPatch
)

// Options describes a single request. The zero value is a GET without a
// body using the executor's timeout.
type Options struct {
	// Method defaults to GET. Other tokens are passed through unchanged.
	Method string
	// Headers are copied per call and never modified.
	Headers map[string]string
	Body    Body
	// Auth is sent as HTTP Basic credentials, typically "user:password".
	Auth string
	// Timeout overrides the executor default when positive.
	Timeout time.Duration
	// ResponseDetails makes Fetch return a *ResponseEnvelope instead of the
	// decoded payload.
	ResponseDetails bool
}

func (o Options) method() string {
	if o.Method == "" {
		return MethodGet
	}
	return o.Method
}

func (o Options) timeout(def time.Duration) time.Duration {
	if o.Timeout > 0 {
		return o.Timeout
	}
	return def
}

// Option configures an Executor.
type Option func(*Executor)

// WithPlainTransport sets the transport used for http:// URLs.
func WithPlainTransport(rt http.RoundTripper) Option {
	return func(e *Executor) { e.plain = rt }
}

// WithSecureTransport sets the transport used for every other URL.
func WithSecureTransport(rt http.RoundTripper) Option {
	return func(e *Executor) { e.secure = rt }
}

// WithLogger sets the logger. Defaults to the global logger.
func WithLogger(l *logger.Logger) Option {
	return func(e *Executor) { e.log = l }
}

// WithMetrics records request metrics on m.
func WithMetrics(m *observability.Metrics) Option {
	return func(e *Executor) { e.metrics = m }
}
