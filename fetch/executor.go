package fetch

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/kbukum/gofetch/logger"
	"github.com/kbukum/gofetch/observability"
	"github.com/kbukum/gofetch/version"
)

// Executor issues requests and decodes their responses. It is safe for
// concurrent use; calls share nothing but the immutable config and the
// transports.
type Executor struct {
	config  Config
	plain   http.RoundTripper
	secure  http.RoundTripper
	log     *logger.Logger
	metrics *observability.Metrics

	plainClient  *http.Client
	secureClient *http.Client
}

// New creates an executor. Transports not supplied through options are
// built from cfg.
func New(cfg Config, opts ...Option) (*Executor, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = version.UserAgent()
	}

	e := &Executor{config: cfg}
	for _, opt := range opts {
		opt(e)
	}

	if e.plain == nil {
		e.plain = newPlainTransport()
	}
	if e.secure == nil {
		t, err := newSecureTransport(cfg.TLS)
		if err != nil {
			return nil, err
		}
		e.secure = t
	}
	if e.log == nil {
		e.log = logger.WithComponent("fetch")
	}
	e.log = e.log.WithFields(logger.Fields("executor", cfg.Name))

	e.plainClient = newClient(e.plain)
	e.secureClient = newClient(e.secure)
	return e, nil
}

// Config returns the effective configuration.
func (e *Executor) Config() Config {
	return e.config
}

// Fetch performs the request and returns the decoded payload, or a
// *ResponseEnvelope when opts.ResponseDetails is set. Non-2xx responses are
// not errors. Failures are *Error values.
func (e *Executor) Fetch(ctx context.Context, url string, opts Options) (any, error) {
	env, err := e.Do(ctx, url, opts)
	if err != nil {
		return nil, err
	}
	if opts.ResponseDetails {
		return env, nil
	}
	return env.Data, nil
}

// Do performs the request and always returns the response envelope.
func (e *Executor) Do(ctx context.Context, url string, opts Options) (*ResponseEnvelope, error) {
	method := opts.method()
	timeout := opts.timeout(e.config.Timeout)
	requestID := uuid.NewString()

	ctx, scope := observability.StartRequest(ctx, e.config.Name, method, url, requestID, e.metrics)
	scope.SetAttributes(
		attribute.Int64(observability.AttrTimeoutMs, timeout.Milliseconds()),
		attribute.String(observability.AttrBodyKind, opts.Body.Kind().String()),
	)

	env, err := e.execute(ctx, url, method, timeout, requestID, opts)
	if err != nil {
		kind := "unknown"
		if fe, ok := err.(*Error); ok {
			kind = fe.Kind.String()
		}
		scope.Fail(ctx, kind, err)
		return nil, err
	}

	scope.SetAttributes(attribute.String(observability.AttrContentClass,
		ClassifyContentType(env.ContentType()).String()))
	scope.Succeed(ctx, env.StatusCode, len(env.RawData))
	return env, nil
}

type roundTripResult struct {
	resp *http.Response
	body []byte
	err  error
}

func (e *Executor) execute(ctx context.Context, url, method string, timeout time.Duration, requestID string, opts Options) (*ResponseEnvelope, error) {
	body, headers, err := prepareBody(opts.Body, opts.Headers)
	if err != nil {
		return nil, err
	}

	client := e.secureClient
	if isPlain(url) {
		client = e.plainClient
	}
	target := targetURL(url)

	reqCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, method, target, body)
	if err != nil {
		return nil, newTransportError(target, nil, timeout, err)
	}
	applyHeaders(req, headers, e.config.UserAgent)
	applyAuth(req, opts.Auth)

	e.log.Debug("dispatching request", logger.Fields(
		logger.FieldRequestID, requestID,
		logger.FieldMethod, method,
		logger.FieldURL, target,
		"timeout_ms", timeout.Milliseconds(),
	))
	start := time.Now()

	done := make(chan roundTripResult, 1)
	go func() {
		done <- roundTrip(client, req)
	}()

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	var res roundTripResult
	select {
	case res = <-done:
	case <-timer.C:
		// A response that completed while the timer fired still wins.
		select {
		case res = <-done:
		default:
			cancel()
			return nil, newTimeoutError(target, req, timeout)
		}
	}
	if res.err != nil {
		return nil, newTransportError(target, req, timeout, res.err)
	}

	env := newEnvelope(res.resp, res.body)
	e.log.Debug("request completed", logger.MergeWithDuration(logger.Fields(
		logger.FieldRequestID, requestID,
		logger.FieldStatusCode, env.StatusCode,
		logger.FieldBytes, len(env.RawData),
	), time.Since(start)))
	return env, nil
}

// roundTrip sends req and buffers the whole response body.
func roundTrip(client *http.Client, req *http.Request) roundTripResult {
	resp, err := client.Do(req)
	if err != nil {
		return roundTripResult{err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return roundTripResult{err: err}
	}
	return roundTripResult{resp: resp, body: body}
}

// Close releases idle connections held by both transports.
func (e *Executor) Close() error {
	e.plainClient.CloseIdleConnections()
	e.secureClient.CloseIdleConnections()
	return nil
}
