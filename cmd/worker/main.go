package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"newsfox/internal/config"
	"newsfox/internal/domain/entity"
	"newsfox/internal/infra/cache"
	"newsfox/internal/infra/notifier"
	"newsfox/internal/infra/provider"
	workerPkg "newsfox/internal/infra/worker"
	"newsfox/internal/observability/logging"
	"newsfox/internal/observability/tracing"
	"newsfox/internal/resilience/retry"
	hlUC "newsfox/internal/usecase/headline"
	pkgconfig "newsfox/pkg/config"
)

func main() {
	configPath := flag.String("config", pkgconfig.GetEnvString("NEWSFOX_CONFIG", "configs/newsfox.yaml"), "path to the YAML config file")
	once := flag.Bool("once", false, "warm the cache once and exit")
	flag.Parse()

	_ = godotenv.Load()

	logger := logging.NewLogger()
	slog.SetDefault(logger)

	if err := run(logger, *configPath, *once); err != nil {
		logger.Error("worker failed", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(logger *slog.Logger, configPath string, once bool) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing := tracing.Init("newsfox-worker")
	defer func() { _ = shutdownTracing(context.Background()) }()

	workerMetrics := workerPkg.NewWorkerMetrics()
	workerConfig, _ := workerPkg.LoadConfigFromEnv(logger, workerMetrics)
	logger.Info("worker configuration loaded",
		slog.String("cron_schedule", workerConfig.CronSchedule),
		slog.String("timezone", workerConfig.Timezone),
		slog.Int("warm_parallelism", workerConfig.WarmParallelism),
		slog.Duration("warm_timeout", workerConfig.WarmTimeout),
		slog.Int("health_port", workerConfig.HealthPort))

	// キャッシュがなければウォームする意味がない
	rawURL := os.Getenv(cfg.Cache.RedisURLEnv)
	if cfg.Cache.RedisURLEnv == "" || rawURL == "" || cfg.Cache.TTL <= 0 {
		return errors.New("worker requires a configured redis cache")
	}
	rdb, err := cache.Connect(ctx, rawURL)
	if err != nil {
		return err
	}
	defer func() { _ = rdb.Close() }()

	p, err := provider.New(cfg.Provider, nil)
	if err != nil {
		return fmt.Errorf("create provider: %w", err)
	}
	svc := hlUC.NewService(cache.WithPageCache(p, rdb, cfg.Cache.TTL))
	svc.Timeout = cfg.Provider.Timeout
	// 誰も待っていないので長めに粘る
	svc.Retry = retry.WarmConfig()

	warmer := &workerPkg.Warmer{
		Service:    svc,
		Categories: entity.Categories(),
		Config:     *workerConfig,
		Metrics:    workerMetrics,
		Logger:     logger,
		Notifier:   notifier.FromEnv(),
	}

	if once {
		return warmer.RunOnce(ctx)
	}

	healthServer := workerPkg.NewHealthServer(fmt.Sprintf(":%d", workerConfig.HealthPort), logger)
	go func() {
		if err := healthServer.Start(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("health server failed", slog.Any("error", err))
		}
	}()

	c, err := warmer.Schedule(ctx)
	if err != nil {
		return err
	}
	c.Start()
	healthServer.SetReady(true)
	logger.Info("worker started",
		slog.String("schedule", workerConfig.CronSchedule),
		slog.String("timezone", workerConfig.Timezone))

	// 起動直後に一度ウォームしておく
	go func() { _ = warmer.RunOnce(ctx) }()

	<-ctx.Done()
	healthServer.SetReady(false)
	logger.Info("worker stopping")
	<-c.Stop().Done()
	logger.Info("worker stopped")
	return nil
}
