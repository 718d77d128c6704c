// Package observability groups structured logging, Prometheus metrics and
// OpenTelemetry tracing.
//
// Subpackages:
//   - logging: Structured logging utilities with slog
//   - metrics: Prometheus metrics for providers, cache and favorites
//   - tracing: OpenTelemetry tracer setup and HTTP middleware
package observability
