// Package observability provides OpenTelemetry tracing and metrics for
// outbound requests.
//
// Every request runs inside a client span named "http.request":
//
//	ctx, scope := observability.StartRequest(ctx, "default", "GET", url, id, metrics)
//	...
//	scope.Succeed(ctx, resp.StatusCode, len(body))
//
// Export to an OTLP collector is opt-in:
//
//	metrics, shutdown, err := observability.Setup(ctx, observability.Config{Enabled: true})
//	defer shutdown(ctx)
package observability
