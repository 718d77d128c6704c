// Package tracing provides OpenTelemetry tracing integration.
//
// Init installs an SDK tracer provider and the W3C trace-context propagator.
// Middleware opens a server span per HTTP request; StartSpan is used for
// outbound provider calls.
//
// Example usage:
//
//	import "newsfox/internal/observability/tracing"
//
//	func main() {
//	    shutdown := tracing.Init("newsfox-api")
//	    defer func() { _ = shutdown(context.Background()) }()
//	}
//
//	func fetch(ctx context.Context) {
//	    ctx, span := tracing.StartSpan(ctx, "provider.fetch_page")
//	    defer span.End()
//	}
package tracing
