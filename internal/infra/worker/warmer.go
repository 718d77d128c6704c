package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"newsfox/internal/domain/entity"
	"newsfox/internal/handler/http/respond"
	"newsfox/internal/infra/notifier"
)

// alertTimeout bounds delivery of a failure alert.
const alertTimeout = 30 * time.Second

// WarmService refreshes page 1 of the given categories.
type WarmService interface {
	Warm(ctx context.Context, categories []entity.Category, parallelism int) (failed int, err error)
}

// Warmer runs WarmService on the configured schedule.
type Warmer struct {
	Service    WarmService
	Categories []entity.Category
	Config     WorkerConfig
	Metrics    *WorkerMetrics
	Logger     *slog.Logger
	// Notifier receives an alert when a run fails or skips categories. Optional.
	Notifier notifier.Notifier
}

// RunOnce performs a single warm run bounded by Config.WarmTimeout.
func (w *Warmer) RunOnce(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, w.Config.WarmTimeout)
	defer cancel()

	start := time.Now()
	w.Logger.Info("cache warm started", slog.Int("categories", len(w.Categories)))

	failed, err := w.Service.Warm(ctx, w.Categories, w.Config.WarmParallelism)
	elapsed := time.Since(start)
	if w.Metrics != nil {
		w.Metrics.RecordRun(failed, err, elapsed.Seconds())
	}
	if err != nil {
		w.Logger.Error("cache warm failed",
			slog.String("error", respond.SanitizeError(err)),
			slog.Duration("duration", elapsed))
		w.alert(ctx, notifier.Alert{
			Title:   "Cache warm failed",
			Message: respond.SanitizeError(err),
			Failed:  failed,
			Total:   len(w.Categories),
			At:      start,
		})
		return err
	}

	level := slog.LevelInfo
	if failed > 0 {
		level = slog.LevelWarn
	}
	w.Logger.Log(ctx, level, "cache warm completed",
		slog.Int("categories", len(w.Categories)),
		slog.Int("failed", failed),
		slog.Duration("duration", elapsed))
	if failed > 0 {
		w.alert(ctx, notifier.Alert{
			Title:   "Cache warm incomplete",
			Message: fmt.Sprintf("%d of %d categories could not be refreshed", failed, len(w.Categories)),
			Failed:  failed,
			Total:   len(w.Categories),
			At:      start,
		})
	}
	return nil
}

// alert sends a to the notifier, even if the run's context already expired.
func (w *Warmer) alert(ctx context.Context, a notifier.Alert) {
	if w.Notifier == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), alertTimeout)
	defer cancel()
	if err := w.Notifier.Notify(ctx, a); err != nil {
		w.Logger.Warn("failure alert not delivered", slog.Any("error", err))
	}
}

// Schedule registers the warm job on a new cron scheduler in the configured
// timezone. Overlapping runs are skipped. The caller starts and stops it.
func (w *Warmer) Schedule(ctx context.Context) (*cron.Cron, error) {
	loc, err := time.LoadLocation(w.Config.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone: %w", err)
	}

	c := cron.New(
		cron.WithLocation(loc),
		cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
	)
	if _, err := c.AddFunc(w.Config.CronSchedule, func() {
		_ = w.RunOnce(ctx)
	}); err != nil {
		return nil, fmt.Errorf("add cron job: %w", err)
	}
	return c, nil
}
