// Package worker holds the configuration, metrics and health server of the
// cache-warming worker, which refreshes page 1 of every category on a cron
// schedule so interactive requests hit a warm Redis cache.
package worker

import (
	"fmt"
	"log/slog"
	"time"

	"newsfox/internal/pkg/config"
)

// WorkerConfig controls the warm schedule and the worker's own HTTP port.
type WorkerConfig struct {
	// CronSchedule is a 5-field cron expression. It should fire more often
	// than the cache TTL so entries are replaced before they expire.
	CronSchedule string

	// Timezone is the IANA zone the schedule is evaluated in.
	Timezone string

	// WarmParallelism caps concurrent provider calls per run (1-7, one per category).
	WarmParallelism int

	// WarmTimeout bounds one warm run.
	WarmTimeout time.Duration

	// HealthPort serves /health, /health/ready and /metrics.
	HealthPort int
}

// DefaultConfig warms every four minutes, ahead of the default five minute cache TTL.
func DefaultConfig() WorkerConfig {
	return WorkerConfig{
		CronSchedule:    "*/4 * * * *",
		Timezone:        "UTC",
		WarmParallelism: 2,
		WarmTimeout:     2 * time.Minute,
		HealthPort:      9091,
	}
}

// Validate reports every invalid field at once.
func (c *WorkerConfig) Validate() error {
	var errs []error

	if err := config.ValidateCronSchedule(c.CronSchedule); err != nil {
		errs = append(errs, fmt.Errorf("cron schedule: %w", err))
	}
	if err := config.ValidateTimezone(c.Timezone); err != nil {
		errs = append(errs, fmt.Errorf("timezone: %w", err))
	}
	if err := config.ValidateIntRange(c.WarmParallelism, 1, 7); err != nil {
		errs = append(errs, fmt.Errorf("warm parallelism: %w", err))
	}
	if err := config.ValidateDuration(c.WarmTimeout, 10*time.Second, 30*time.Minute); err != nil {
		errs = append(errs, fmt.Errorf("warm timeout: %w", err))
	}
	if err := config.ValidateIntRange(c.HealthPort, 1024, 65535); err != nil {
		errs = append(errs, fmt.Errorf("health port: %w", err))
	}

	if len(errs) > 0 {
		return fmt.Errorf("validation failed: %v", errs)
	}
	return nil
}

// LoadConfigFromEnv reads CRON_SCHEDULE, WORKER_TIMEZONE, WARM_PARALLELISM,
// WARM_TIMEOUT and WORKER_HEALTH_PORT. Invalid values fall back to the
// defaults with a warning; the returned error is always nil.
func LoadConfigFromEnv(logger *slog.Logger, metrics *WorkerMetrics) (*WorkerConfig, error) {
	cfg := DefaultConfig()
	fallbackApplied := false

	apply := func(field string, applied bool, warnings []string) {
		if !applied {
			return
		}
		fallbackApplied = true
		metrics.RecordFallback(field)
		for _, warning := range warnings {
			logger.Warn("Configuration fallback applied",
				slog.String("field", field),
				slog.String("warning", warning))
		}
	}

	cron := config.LoadString("CRON_SCHEDULE", cfg.CronSchedule, config.ValidateCronSchedule)
	cfg.CronSchedule = cron.Value
	apply("cron_schedule", cron.FallbackApplied, cron.Warnings)

	tz := config.LoadString("WORKER_TIMEZONE", cfg.Timezone, config.ValidateTimezone)
	cfg.Timezone = tz.Value
	apply("timezone", tz.FallbackApplied, tz.Warnings)

	par := config.LoadInt("WARM_PARALLELISM", cfg.WarmParallelism, func(v int) error {
		return config.ValidateIntRange(v, 1, 7)
	})
	cfg.WarmParallelism = par.Value
	apply("warm_parallelism", par.FallbackApplied, par.Warnings)

	timeout := config.LoadDuration("WARM_TIMEOUT", cfg.WarmTimeout, func(d time.Duration) error {
		return config.ValidateDuration(d, 10*time.Second, 30*time.Minute)
	})
	cfg.WarmTimeout = timeout.Value
	apply("warm_timeout", timeout.FallbackApplied, timeout.Warnings)

	port := config.LoadInt("WORKER_HEALTH_PORT", cfg.HealthPort, func(v int) error {
		return config.ValidateIntRange(v, 1024, 65535)
	})
	cfg.HealthPort = port.Value
	apply("health_port", port.FallbackApplied, port.Warnings)

	metrics.SetFallbackActive(fallbackApplied)
	metrics.RecordLoadTimestamp()
	return &cfg, nil
}
