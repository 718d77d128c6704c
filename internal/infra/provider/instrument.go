package provider

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"newsfox/internal/domain/entity"
	"newsfox/internal/observability/metrics"
	"newsfox/internal/observability/tracing"
	"newsfox/internal/usecase/headline"
)

// Instrumented records a span, metrics and a log line for every provider call.
type Instrumented struct {
	next headline.Provider
}

// WithInstrumentation decorates next.
func WithInstrumentation(next headline.Provider) *Instrumented {
	return &Instrumented{next: next}
}

// Name returns the wrapped provider's name.
func (i *Instrumented) Name() string { return i.next.Name() }

// FetchPage delegates to the wrapped provider.
func (i *Instrumented) FetchPage(ctx context.Context, category entity.Category, page, pageSize int) (*entity.Page, error) {
	ctx, span := tracing.StartSpan(ctx, "provider.FetchPage",
		attribute.String("provider", i.Name()),
		attribute.String("category", category.String()),
		attribute.Int("page", page),
		attribute.Int("page_size", pageSize))
	start := time.Now()

	p, err := i.next.FetchPage(ctx, category, page, pageSize)

	elapsed := time.Since(start)
	metrics.RecordProviderRequest(i.Name(), category.String(), err, elapsed)
	if err == nil {
		span.SetAttributes(attribute.Int("articles", len(p.Articles)), attribute.Int("total", p.TotalAvailable))
	}
	tracing.EndSpan(span, err)

	if err != nil {
		slog.WarnContext(ctx, "provider request failed",
			slog.String("provider", i.Name()),
			slog.String("category", category.String()),
			slog.Int("page", page),
			slog.Duration("duration", elapsed),
			slog.Any("error", err))
		return nil, err
	}
	metrics.RecordArticlesReturned(i.Name(), len(p.Articles))
	slog.DebugContext(ctx, "provider request completed",
		slog.String("provider", i.Name()),
		slog.String("category", category.String()),
		slog.Int("page", page),
		slog.Int("articles", len(p.Articles)),
		slog.Duration("duration", elapsed))
	return p, nil
}
