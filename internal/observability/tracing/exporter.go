package tracing

import (
	"context"
	"log/slog"
	"strings"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"newsfox/pkg/config"
)

// LogExporter writes finished spans to a slog logger, one record per span.
type LogExporter struct {
	logger *slog.Logger
}

// NewLogExporter returns an exporter that logs spans through logger.
func NewLogExporter(logger *slog.Logger) *LogExporter {
	return &LogExporter{logger: logger}
}

// ExportSpans implements sdktrace.SpanExporter.
func (e *LogExporter) ExportSpans(ctx context.Context, spans []sdktrace.ReadOnlySpan) error {
	for _, s := range spans {
		attrs := []slog.Attr{
			slog.String("span", s.Name()),
			slog.String("trace_id", s.SpanContext().TraceID().String()),
			slog.String("span_id", s.SpanContext().SpanID().String()),
			slog.Int64("duration_ms", s.EndTime().Sub(s.StartTime()).Milliseconds()),
			slog.String("status", s.Status().Code.String()),
		}
		if p := s.Parent(); p.IsValid() {
			attrs = append(attrs, slog.String("parent_span_id", p.SpanID().String()))
		}
		if d := s.Status().Description; d != "" {
			attrs = append(attrs, slog.String("status_message", d))
		}
		for _, kv := range s.Attributes() {
			attrs = append(attrs, slog.String(string(kv.Key), kv.Value.Emit()))
		}
		e.logger.LogAttrs(ctx, slog.LevelDebug, "span finished", attrs...)
	}
	return nil
}

// Shutdown implements sdktrace.SpanExporter.
func (e *LogExporter) Shutdown(context.Context) error { return nil }

// exporterFromEnv picks the span exporter named by TRACING_EXPORTER.
// "log" logs spans at debug level; anything else keeps spans in-process only.
func exporterFromEnv(logger *slog.Logger) sdktrace.SpanExporter {
	switch strings.ToLower(config.GetEnvString("TRACING_EXPORTER", "none")) {
	case "log":
		return NewLogExporter(logger)
	default:
		return nil
	}
}
